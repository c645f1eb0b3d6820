package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/render"
)

var (
	nomNominee int
	nomReason  string
	nomMetrics []string
)

var nominateCmd = &cobra.Command{
	Use:   "nominate",
	Short: "Submit or manage your own nomination",
	RunE:  runNominateSubmit,
}

var nominateUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace your existing nomination",
	RunE:  runNominateUpdate,
}

var nominateWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw your nomination",
	RunE:  runNominateWithdraw,
}

var nominateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your nomination and how many you have received",
	RunE:  runNominateStatus,
}

var nominateCriteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "List the evaluation categories and their metrics",
	RunE:  runNominateCriteria,
}

func init() {
	for _, c := range []*cobra.Command{nominateCmd, nominateUpdateCmd} {
		c.Flags().IntVar(&nomNominee, "nominee", 0, "nominee user id (see `starward browse`)")
		c.Flags().StringVar(&nomReason, "reason", "", "why this person deserves the award")
		c.Flags().StringArrayVar(&nomMetrics, "metric", nil, "selected metric as category=metric, repeatable")
		c.MarkFlagRequired("nominee")
		c.MarkFlagRequired("reason")
	}
	nominateCmd.AddCommand(nominateUpdateCmd, nominateWithdrawCmd, nominateStatusCmd, nominateCriteriaCmd)
	rootCmd.AddCommand(nominateCmd)
}

func nominationFromFlags() (api.NominationRequest, error) {
	req := api.NominationRequest{Nominee: nomNominee, Reason: nomReason}
	for _, m := range nomMetrics {
		category, metric, ok := strings.Cut(m, "=")
		if !ok || category == "" || metric == "" {
			return req, fmt.Errorf("invalid --metric %q, want category=metric", m)
		}
		req.SelectedMetrics = append(req.SelectedMetrics, api.Metric{Category: category, Metric: metric})
	}
	return req, nil
}

func runNominateSubmit(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	req, err := nominationFromFlags()
	if err != nil {
		return err
	}
	if err := a.client.SubmitNomination(cmd.Context(), req); err != nil {
		return err
	}
	fmt.Println("nomination submitted")
	return nil
}

func runNominateUpdate(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	req, err := nominationFromFlags()
	if err != nil {
		return err
	}
	if err := a.client.UpdateNomination(cmd.Context(), req); err != nil {
		return err
	}
	fmt.Println("nomination updated")
	return nil
}

func runNominateWithdraw(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	if err := a.client.WithdrawNomination(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("nomination withdrawn")
	return nil
}

func runNominateStatus(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	st, err := a.client.MyNominationStatus(cmd.Context())
	if err != nil {
		return err
	}
	render.NominationStatus(os.Stdout, st)
	return nil
}

func runNominateCriteria(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	criteria, err := a.client.NominationCriteria(cmd.Context())
	if err != nil {
		return err
	}
	categories := make([]string, 0, len(criteria))
	for c := range criteria {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Printf("%s\n", c)
		for _, m := range criteria[c] {
			fmt.Printf("  - %s\n", m)
		}
	}
	return nil
}
