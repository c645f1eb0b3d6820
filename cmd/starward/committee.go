package main

import (
	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/review"
)

var committeeTab string

var committeeCmd = &cobra.Command{
	Use:   "committee",
	Short: "Committee review of coordinator-approved nominations",
	RunE:  runCommitteeList,
}

var committeeApproveCmd = &cobra.Command{
	Use:   "approve <nomination-id>",
	Short: "Advance a nomination to the finalist pool",
	Args:  cobra.ExactArgs(1),
	RunE:  decideFunc("APPROVE", committeeBoard),
}

var committeeRejectCmd = &cobra.Command{
	Use:   "reject <nomination-id>",
	Short: "Reject a shortlisted nomination",
	Args:  cobra.ExactArgs(1),
	RunE:  decideFunc("REJECT", committeeBoard),
}

var committeeUndoCmd = &cobra.Command{
	Use:   "undo <nomination-id>",
	Short: "Revert a committee decision",
	Args:  cobra.ExactArgs(1),
	RunE:  decideFunc("UNDO", committeeBoard),
}

func init() {
	committeeCmd.Flags().StringVar(&committeeTab, "tab", "pending", "pending or history")
	committeeCmd.AddCommand(committeeApproveCmd, committeeRejectCmd, committeeUndoCmd)
	rootCmd.AddCommand(committeeCmd)
}

// committeeBoard sees only coordinator-approved nominations, and its
// history tab shows committee-stage outcomes rather than every decided
// nomination.
func committeeBoard(a *app) (*review.Board, error) {
	if err := a.requireRole(api.RoleCommittee, api.RoleAdmin); err != nil {
		return nil, err
	}
	policies := map[review.Tab]review.FilterPolicy{
		review.TabHistory: review.CommitteeHistoryPolicy,
	}
	return review.NewBoard(a.client, api.FilterCommitteePending, policies), nil
}

func runCommitteeList(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	board, err := committeeBoard(a)
	if err != nil {
		return err
	}
	return listBoard(cmd, board, committeeTab)
}
