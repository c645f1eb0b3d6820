package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/render"
	"github.com/starward/starward/internal/review"
)

var reviewTab string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Coordinator review of submitted nominations",
	RunE:  runReviewList,
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <nomination-id>",
	Short: "Shortlist a nomination",
	Args:  cobra.ExactArgs(1),
	RunE:  decideFunc("APPROVE", coordinatorBoard),
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject <nomination-id>",
	Short: "Reject a nomination",
	Args:  cobra.ExactArgs(1),
	RunE:  decideFunc("REJECT", coordinatorBoard),
}

var reviewUndoCmd = &cobra.Command{
	Use:   "undo <nomination-id>",
	Short: "Revert a nomination to pending",
	Args:  cobra.ExactArgs(1),
	RunE:  decideFunc("UNDO", coordinatorBoard),
}

var reviewExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the nominations spreadsheet",
	RunE:  runReviewExport,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewTab, "tab", "pending", "pending or history")
	reviewCmd.AddCommand(reviewApproveCmd, reviewRejectCmd, reviewUndoCmd, reviewExportCmd)
	rootCmd.AddCommand(reviewCmd)
}

func coordinatorBoard(a *app) (*review.Board, error) {
	if err := a.requireRole(api.RoleCoordinator, api.RoleAdmin); err != nil {
		return nil, err
	}
	return review.NewBoard(a.client, api.FilterPending, nil), nil
}

func runReviewList(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	board, err := coordinatorBoard(a)
	if err != nil {
		return err
	}
	return listBoard(cmd, board, reviewTab)
}

func runReviewExport(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleCoordinator, api.RoleCommittee, api.RoleAdmin); err != nil {
		return err
	}
	export, err := a.client.ExportStarAwards(cmd.Context())
	if err != nil {
		return err
	}
	return saveExport(export)
}

// listBoard switches the board to the requested tab, loads it and renders
// the nomination groups. Shared between the coordinator and committee
// dashboards.
func listBoard(cmd *cobra.Command, board *review.Board, tab string) error {
	switch review.Tab(tab) {
	case review.TabPending, review.TabHistory:
	default:
		return fmt.Errorf("unknown tab %q, want pending or history", tab)
	}
	board.SwitchTab(review.Tab(tab))
	if err := board.Refresh(cmd.Context()); err != nil {
		return err
	}
	render.Groups(os.Stdout, board.Groups())
	return nil
}

// decideFunc builds a RunE that applies one review action and renders the
// reloaded pending queue.
func decideFunc(action string, boardFor func(*app) (*review.Board, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp(cmd)
		if err != nil {
			return err
		}
		board, err := boardFor(a)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("nomination id must be a number: %q", args[0])
		}
		msg, err := board.Decide(cmd.Context(), id, action)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		render.Groups(os.Stdout, board.Groups())
		return nil
	}
}

func saveExport(export *api.Export) error {
	if err := os.WriteFile(export.Filename, export.Data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("saved %s (%d bytes)\n", export.Filename, len(export.Data))
	return nil
}
