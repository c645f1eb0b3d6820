package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starward/starward/internal/api"
)

var regFlags api.Registration

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&regFlags.Username, "username", "", "username")
	registerCmd.Flags().StringVar(&regFlags.Email, "email", "", "email address")
	registerCmd.Flags().StringVar(&regFlags.Password, "password", "", "password")
	registerCmd.Flags().StringVar(&regFlags.EmployeeID, "employee-id", "", "employee id")
	registerCmd.Flags().StringVar(&regFlags.EmployeeDept, "dept", "", "department")
	registerCmd.Flags().StringVar(&regFlags.EmployeeRole, "position", "", "job position")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("employee-id")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.session.Register(cmd.Context(), regFlags); err != nil {
		return err
	}
	fmt.Printf("account %s created, run `starward login` to sign in\n", regFlags.Username)
	return nil
}
