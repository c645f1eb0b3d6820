package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/paging"
	"github.com/starward/starward/internal/render"
)

var votePage int

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "View finalists and cast your vote",
	RunE:  runVoteList,
}

var voteCastCmd = &cobra.Command{
	Use:   "cast <finalist-id>",
	Short: "Vote for a finalist",
	Args:  cobra.ExactArgs(1),
	RunE:  runVoteCast,
}

var voteResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the vote tally",
	RunE:  runVoteResults,
}

func init() {
	voteCmd.Flags().IntVar(&votePage, "page", 1, "finalist page number")
	voteCmd.AddCommand(voteCastCmd, voteResultsCmd)
	rootCmd.AddCommand(voteCmd)
}

// runVoteList fetches the whole finalist pool and pages it locally; the
// voting endpoint has no server-side pagination.
func runVoteList(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	state, err := a.client.VotingState(cmd.Context())
	if err != nil {
		return err
	}

	pager := paging.NewSlicer(state.Finalists, a.cfg.Paging.VotingPageSize)
	pager.SetPage(votePage)
	render.Finalists(os.Stdout, pager.Page(), state.HasVoted)
	render.PageIndicator(os.Stdout, pager.PageNumber(), pager.TotalPages())
	return nil
}

func runVoteCast(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("finalist id must be a number: %q", args[0])
	}
	if err := a.client.CastVote(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Println("vote recorded")
	return nil
}

func runVoteResults(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	results, err := a.client.VoteResults(cmd.Context())
	if err != nil {
		return err
	}
	render.VoteResults(os.Stdout, results)
	return nil
}
