package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/render"
)

var profileLocation string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your own profile",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileLocation, "location", "", "work location")
	profileCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	user, err := a.client.UpdateProfile(cmd.Context(), api.ProfileUpdate{Location: profileLocation})
	if err != nil {
		return err
	}
	fmt.Println("profile updated")
	render.User(os.Stdout, user)
	return nil
}
