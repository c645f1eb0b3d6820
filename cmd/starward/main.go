package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/config"
	"github.com/starward/starward/internal/crypto"
	"github.com/starward/starward/internal/render"
	"github.com/starward/starward/internal/session"
	"github.com/starward/starward/internal/tokenstore"
	"github.com/starward/starward/internal/transport"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "starward",
	Short: "Starward — Star Award terminal client",
	Long:  "Starward is a terminal client for the Star Award employee recognition backend: nominate colleagues, review and shortlist nominations, vote on finalists, and run the award cycle.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/starward.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// app bundles the wired client stack shared by every command.
type app struct {
	cfg     *config.Config
	tokens  *tokenstore.Store
	client  *api.Client
	session *session.Session
}

// newApp builds the full stack: config, token store, authenticating
// transport, API client and session.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	cipher, err := crypto.NewCipher(cfg.Tokens.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("token encryption key: %w", err)
	}
	tokens := tokenstore.New(cfg.Tokens.File, cipher)

	// The client is constructed twice on purpose: the transport needs the
	// refresh URL, which the client derives from the base URL, and the
	// final client needs the transport-backed http.Client.
	plain, err := api.New(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.Timeout})
	if err != nil {
		return nil, err
	}

	rt := &transport.Transport{
		Tokens:     tokens,
		RefreshURL: plain.RefreshURL(),
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired, run `starward login` again")
		},
	}
	client, err := api.New(cfg.Backend.BaseURL, &http.Client{
		Timeout:   cfg.Backend.Timeout,
		Transport: rt,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		tokens:  tokens,
		client:  client,
		session: session.New(tokens, client),
	}, nil
}

// newAuthedApp wires the stack and requires a live login.
func newAuthedApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.session.Bootstrap(cmd.Context()); err != nil {
		return nil, err
	}
	if !a.session.IsAuthenticated() {
		return nil, fmt.Errorf("not logged in, run `starward login` first")
	}
	return a, nil
}

// requireRole rejects commands the current user's role cannot use. The
// backend enforces this too; checking here just gives a clearer message.
func (a *app) requireRole(roles ...api.Role) error {
	u := a.session.CurrentUser()
	if u == nil {
		return fmt.Errorf("not logged in")
	}
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return fmt.Errorf("this command needs one of roles %v, you are %s", roles, u.Role)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorMessage(err))
		os.Exit(1)
	}
}
