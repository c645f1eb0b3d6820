// Package render writes the dashboard views to a terminal. Everything
// takes an io.Writer so commands stay testable.
package render

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/review"
	"github.com/starward/starward/internal/transport"
)

// ErrorMessage turns an error into the single line shown to the user.
// Backend messages surface as decoded (business-rule rejections verbatim);
// transport-level failures collapse into a generic message instead of a
// raw dial error.
func ErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.IsBusinessRule() {
			return apiErr.Message
		}
		if apiErr.IsAuthError() {
			return apiErr.Message + " (run `starward login`)"
		}
		return apiErr.Message
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		switch transport.ClassifyNetworkError(urlErr) {
		case "timeout":
			return "the backend took too long to respond"
		case "canceled":
			return "canceled"
		case "connection_refused":
			return "cannot reach the backend, is it running?"
		case "dns":
			return "cannot resolve the backend host"
		default:
			return "network error talking to the backend"
		}
	}

	return err.Error()
}

// Table writes a plain aligned table.
func Table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// PageIndicator writes the shared pagination footer. Hidden when there is
// nothing to navigate.
func PageIndicator(w io.Writer, page, totalPages int) {
	if totalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "\npage %d of %d  (--page N, 1..%d)\n", page, totalPages, totalPages)
}

// User writes a profile block.
func User(w io.Writer, u *api.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "employee id:\t%s\n", u.EmployeeID)
	if u.EmployeeDept != "" {
		fmt.Fprintf(tw, "department:\t%s\n", u.EmployeeDept)
	}
	if u.EmployeeRole != "" {
		fmt.Fprintf(tw, "position:\t%s\n", u.EmployeeRole)
	}
	if u.Location != "" {
		fmt.Fprintf(tw, "location:\t%s\n", u.Location)
	}
	tw.Flush()
}

// Employees writes one browse page as a table.
func Employees(w io.Writer, page *api.EmployeePage) {
	rows := make([][]string, 0, len(page.Results))
	for _, e := range page.Results {
		rows = append(rows, []string{
			fmt.Sprint(e.ID), e.Username, e.EmployeeID, e.EmployeeDept, e.EmployeeRole, e.Location,
		})
	}
	Table(w, []string{"ID", "USERNAME", "EMPLOYEE", "DEPT", "ROLE", "LOCATION"}, rows)
}

// Groups writes nomination groups as cards, one per nominee, each listing
// the individual nominations beneath it.
func Groups(w io.Writer, groups []review.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "nothing here")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s  [%s]  %s / %s  (%d nomination(s))\n",
			g.NomineeName, g.Status.Label(), g.NomineeDept, g.NomineeRole, len(g.List))
		for _, n := range g.List {
			fmt.Fprintf(w, "  #%d  by %s, %s\n", n.ID, n.NominatorName, humanize.Time(n.SubmittedAt))
			if n.Reason != "" {
				fmt.Fprintf(w, "      %s\n", n.Reason)
			}
			for _, m := range n.SelectedMetrics {
				fmt.Fprintf(w, "      - %s: %s\n", m.Category, m.Metric)
			}
		}
		fmt.Fprintln(w)
	}
}

// Finalists writes one voting page.
func Finalists(w io.Writer, finalists []api.Finalist, hasVoted bool) {
	if hasVoted {
		fmt.Fprintln(w, "you have already voted")
	}
	rows := make([][]string, 0, len(finalists))
	for _, f := range finalists {
		rows = append(rows, []string{
			fmt.Sprint(f.ID), f.NomineeName, f.NomineeDept, f.NomineeRole, f.Reason,
		})
	}
	Table(w, []string{"ID", "FINALIST", "DEPT", "ROLE", "REASON"}, rows)
}

// Notifications writes the notification list, unread first marker style.
func Notifications(w io.Writer, items []api.Notification) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no notifications")
		return
	}
	for _, n := range items {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d  %s\n", marker, n.ID, n.Message)
	}
}

// VoteResults writes the tally table.
func VoteResults(w io.Writer, results []api.VoteResult) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprint(r.ID), r.NomineeName, r.EmployeeDept, r.Status.Label(), fmt.Sprint(r.VoteCount),
		})
	}
	Table(w, []string{"ID", "FINALIST", "DEPT", "STATUS", "VOTES"}, rows)
}

// Winners writes the three winner tiers.
func Winners(w io.Writer, winners *api.Winners) {
	tier := func(title string, list []api.Winner) {
		fmt.Fprintf(w, "%s\n", title)
		if len(list) == 0 {
			fmt.Fprintln(w, "  (none yet)")
			return
		}
		for _, win := range list {
			fmt.Fprintf(w, "  %s  %s  %s / %s\n", win.Username, win.EmployeeID, win.EmployeeDept, win.EmployeeRole)
		}
	}
	tier("Final winners", winners.FinalWinners)
	tier("Committee finalists", winners.CommitteeWinners)
	tier("Coordinator shortlist", winners.CoordinatorWinners)
}

// Timeline writes the four-phase schedule.
func Timeline(w io.Writer, tl *api.Timeline) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PHASE\tSTART\tEND")
	fmt.Fprintf(tw, "nomination\t%s\t%s\n", tl.NominationStart, tl.NominationEnd)
	fmt.Fprintf(tw, "coordinator\t%s\t%s\n", tl.CoordinatorStart, tl.CoordinatorEnd)
	fmt.Fprintf(tw, "committee\t%s\t%s\n", tl.CommitteeStart, tl.CommitteeEnd)
	fmt.Fprintf(tw, "voting\t%s\t%s\n", tl.VotingStart, tl.VotingEnd)
	tw.Flush()
}

// Analytics writes the KPI summary, department table and daily trend.
func Analytics(w io.Writer, a *api.Analytics) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "total nominations:\t%d\n", a.Summary.TotalNominations)
	fmt.Fprintf(tw, "coordinator approved:\t%d\n", a.Summary.CoordinatorApproved)
	fmt.Fprintf(tw, "committee finalists:\t%d\n", a.Summary.CommitteeFinalists)
	fmt.Fprintf(tw, "final winners:\t%d\n", a.Summary.FinalWinner)
	fmt.Fprintf(tw, "total rejections:\t%d\n", a.Summary.TotalRejections)
	fmt.Fprintf(tw, "employees not nominated:\t%d\n", a.Summary.EmployeesNotNominated)
	tw.Flush()

	if len(a.DepartmentStats) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(a.DepartmentStats))
		for _, d := range a.DepartmentStats {
			rows = append(rows, []string{d.Department, fmt.Sprint(d.Count)})
		}
		Table(w, []string{"DEPARTMENT", "NOMINATIONS"}, rows)
	}
	if len(a.DailyTrend) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(a.DailyTrend))
		for _, p := range a.DailyTrend {
			rows = append(rows, []string{p.Date, fmt.Sprint(p.Count)})
		}
		Table(w, []string{"DATE", "NOMINATIONS"}, rows)
	}
}

// Insights writes the AI analysis list.
func Insights(w io.Writer, items []api.Insight) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no submitted nominations to analyze")
		return
	}
	for _, in := range items {
		fmt.Fprintf(w, "%s  (%d nomination(s), %s)\n", in.Name, in.Votes, in.Sentiment)
		fmt.Fprintf(w, "  %s\n\n", in.Summary)
	}
}

// NominationStatus writes the caller's own nomination state.
func NominationStatus(w io.Writer, st *api.NominationStatus) {
	if !st.HasNominated {
		fmt.Fprintln(w, "you have not nominated anyone yet")
	} else {
		fmt.Fprintf(w, "you nominated %s", st.NomineeName)
		if st.NominationDate != nil {
			fmt.Fprintf(w, " (%s)", humanize.Time(*st.NominationDate))
		}
		fmt.Fprintln(w)
		if st.Reason != "" {
			fmt.Fprintf(w, "  reason: %s\n", st.Reason)
		}
	}
	fmt.Fprintf(w, "nominations received: %d\n", st.NominationsReceivedCount)
}
