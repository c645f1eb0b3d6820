package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/render"
)

var (
	timelineFlags api.Timeline
	promoteUser   int
	promoteRole   string
	promoteSearch string
	upsertFlags   api.EmployeeUpsert
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer the award cycle",
}

var adminTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the award phase schedule",
	RunE:  runAdminTimeline,
}

var adminTimelineSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the award phase schedule",
	RunE:  runAdminTimelineSet,
}

var adminWinnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "Show winners by stage",
	RunE:  runAdminWinners,
}

var adminAnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show nomination analytics",
	RunE:  runAdminAnalytics,
}

var adminReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Download the full award report spreadsheet",
	RunE:  runAdminReport,
}

var adminInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show the AI analysis of submitted nominations",
	RunE:  runAdminInsights,
}

var adminPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Change another user's role",
	RunE:  runAdminPromote,
}

var adminPromoteListCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List users whose role can be changed",
	RunE:  runAdminPromoteList,
}

var adminEmployeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Create or update one employee record",
	RunE:  runAdminEmployee,
}

var adminUploadCmd = &cobra.Command{
	Use:   "upload <spreadsheet>",
	Short: "Bulk import employees from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminUpload,
}

func init() {
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.NominationStart, "nomination-start", "", "nomination phase start")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.NominationEnd, "nomination-end", "", "nomination phase end")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.CoordinatorStart, "coordinator-start", "", "coordinator phase start")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.CoordinatorEnd, "coordinator-end", "", "coordinator phase end")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.CommitteeStart, "committee-start", "", "committee phase start")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.CommitteeEnd, "committee-end", "", "committee phase end")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.VotingStart, "voting-start", "", "voting phase start")
	adminTimelineSetCmd.Flags().StringVar(&timelineFlags.VotingEnd, "voting-end", "", "voting phase end")
	adminTimelineCmd.AddCommand(adminTimelineSetCmd)

	adminPromoteCmd.Flags().IntVar(&promoteUser, "user", 0, "user id to promote")
	adminPromoteCmd.Flags().StringVar(&promoteRole, "role", "", "new role (EMPLOYEE, COORDINATOR, COMMITTEE, ADMIN)")
	adminPromoteCmd.MarkFlagRequired("user")
	adminPromoteCmd.MarkFlagRequired("role")
	adminPromoteListCmd.Flags().StringVar(&promoteSearch, "search", "", "match on name or employee id")

	adminEmployeeCmd.Flags().StringVar(&upsertFlags.Name, "name", "", "employee name")
	adminEmployeeCmd.Flags().StringVar(&upsertFlags.Email, "email", "", "employee email")
	adminEmployeeCmd.Flags().StringVar(&upsertFlags.EmployeeID, "employee-id", "", "employee id")
	adminEmployeeCmd.MarkFlagRequired("name")
	adminEmployeeCmd.MarkFlagRequired("email")
	adminEmployeeCmd.MarkFlagRequired("employee-id")

	adminCmd.AddCommand(
		adminTimelineCmd, adminWinnersCmd, adminAnalyticsCmd, adminReportCmd,
		adminInsightsCmd, adminPromoteCmd, adminPromoteListCmd,
		adminEmployeeCmd, adminUploadCmd,
	)
	rootCmd.AddCommand(adminCmd)
}

// adminApp wires the stack and requires the ADMIN role.
func adminApp(cmd *cobra.Command) (*app, error) {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.requireRole(api.RoleAdmin); err != nil {
		return nil, err
	}
	return a, nil
}

func runAdminTimeline(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	tl, err := a.client.Timeline(cmd.Context())
	if err != nil {
		return err
	}
	render.Timeline(os.Stdout, tl)
	return nil
}

func runAdminTimelineSet(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}

	// Start from the current schedule so unset flags leave phases alone.
	current, err := a.client.Timeline(cmd.Context())
	if err != nil {
		return err
	}
	merged := mergeTimeline(*current, timelineFlags)
	if err := a.client.SetTimeline(cmd.Context(), merged); err != nil {
		return err
	}
	fmt.Println("timeline updated")
	render.Timeline(os.Stdout, &merged)
	return nil
}

func mergeTimeline(base, upd api.Timeline) api.Timeline {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.NominationStart, upd.NominationStart)
	pick(&base.NominationEnd, upd.NominationEnd)
	pick(&base.CoordinatorStart, upd.CoordinatorStart)
	pick(&base.CoordinatorEnd, upd.CoordinatorEnd)
	pick(&base.CommitteeStart, upd.CommitteeStart)
	pick(&base.CommitteeEnd, upd.CommitteeEnd)
	pick(&base.VotingStart, upd.VotingStart)
	pick(&base.VotingEnd, upd.VotingEnd)
	return base
}

func runAdminWinners(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	winners, err := a.client.Winners(cmd.Context())
	if err != nil {
		return err
	}
	render.Winners(os.Stdout, winners)
	return nil
}

func runAdminAnalytics(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	analytics, err := a.client.Analytics(cmd.Context())
	if err != nil {
		return err
	}
	render.Analytics(os.Stdout, analytics)
	return nil
}

func runAdminReport(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	export, err := a.client.AdminReport(cmd.Context())
	if err != nil {
		return err
	}
	return saveExport(export)
}

func runAdminInsights(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	insights, err := a.client.AIAnalysis(cmd.Context())
	if err != nil {
		return err
	}
	render.Insights(os.Stdout, insights)
	return nil
}

func runAdminPromote(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	p := api.Promotion{UserIDToPromote: promoteUser, NewRole: api.Role(promoteRole)}
	if err := a.client.Promote(cmd.Context(), p); err != nil {
		return err
	}
	fmt.Printf("user %d is now %s\n", promoteUser, promoteRole)
	return nil
}

func runAdminPromoteList(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	users, err := a.client.PromotableUsers(cmd.Context(), promoteSearch)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			fmt.Sprint(u.ID), u.Username, u.EmployeeID, string(u.Role), u.EmployeeDept,
		})
	}
	render.Table(os.Stdout, []string{"ID", "USERNAME", "EMPLOYEE", "ROLE", "DEPT"}, rows)
	return nil
}

func runAdminEmployee(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	msg, err := a.client.UpsertEmployee(cmd.Context(), upsertFlags)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runAdminUpload(cmd *cobra.Command, args []string) error {
	a, err := adminApp(cmd)
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	msg, err := a.client.UploadEmployees(cmd.Context(), filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
