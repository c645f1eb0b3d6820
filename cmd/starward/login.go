package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/render"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session tokens",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session tokens",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user's profile",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	username := loginUsername
	if username == "" {
		if username, err = prompt("username: "); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		if password, err = prompt("password: "); err != nil {
			return err
		}
	}

	user, err := a.session.Login(cmd.Context(), api.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Username, user.Role)
	fmt.Printf("dashboard: %s\n", a.session.DefaultDashboard())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	a.session.Logout()
	fmt.Println("logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	render.User(os.Stdout, a.session.CurrentUser())
	return nil
}

func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
