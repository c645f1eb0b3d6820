package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
	"github.com/starward/starward/internal/paging"
	"github.com/starward/starward/internal/render"
)

var browseFlags api.BrowseFilter

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse nominee-eligible employees",
	RunE:  runBrowse,
}

var browseFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the distinct dept/role/location values usable as browse filters",
	RunE:  runBrowseFilters,
}

func init() {
	browseCmd.Flags().IntVar(&browseFlags.Page, "page", 1, "page number")
	browseCmd.Flags().StringVar(&browseFlags.Search, "search", "", "match on name or employee id")
	browseCmd.Flags().StringVar(&browseFlags.Dept, "dept", "", "filter by department")
	browseCmd.Flags().StringVar(&browseFlags.Role, "role", "", "filter by job position")
	browseCmd.Flags().StringVar(&browseFlags.Location, "location", "", "filter by location")
	browseCmd.AddCommand(browseFiltersCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}

	page, err := a.client.BrowseNominees(cmd.Context(), browseFlags)
	if err != nil {
		return err
	}
	render.Employees(os.Stdout, page)

	pager := paging.NewServer(a.cfg.Paging.BrowsePageSize)
	pager.SetTotalCount(page.Count)
	pager.SetPage(browseFlags.Page)
	render.PageIndicator(os.Stdout, pager.PageNumber(), pager.TotalPages())
	return nil
}

func runBrowseFilters(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	options, err := a.client.FilterOptions(cmd.Context())
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(options))
	for _, o := range options {
		rows = append(rows, []string{o.EmployeeDept, o.EmployeeRole, o.Location})
	}
	render.Table(os.Stdout, []string{"DEPT", "ROLE", "LOCATION"}, rows)
	return nil
}
