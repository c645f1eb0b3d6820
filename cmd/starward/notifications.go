package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/notify"
	"github.com/starward/starward/internal/render"
)

var notificationsOpen bool

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"inbox"},
	Short:   "List notifications, optionally marking them read",
	RunE:    runNotifications,
}

func init() {
	notificationsCmd.Flags().BoolVar(&notificationsOpen, "open", false, "mark unread notifications as read")
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	service := notify.NewService(a.client)

	if notificationsOpen {
		items, marked, err := service.Open(cmd.Context())
		if err != nil {
			return err
		}
		render.Notifications(os.Stdout, items)
		if marked > 0 {
			fmt.Printf("\nmarked %d notification(s) as read\n", marked)
		}
		return nil
	}

	items, err := service.List(cmd.Context())
	if err != nil {
		return err
	}
	render.Notifications(os.Stdout, items)
	return nil
}
