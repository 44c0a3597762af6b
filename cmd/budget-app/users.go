package main

import (
	"fmt"

	"budget-app-go/internal/app"
	userdomain "budget-app-go/internal/domain/user"
	"github.com/spf13/cobra"
)

func createUserCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create-user <username>",
		Short: "Register an account with its Personal circle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			user, err := application.CreateUser(cmd.Context(), userdomain.RegisterInput{
				Username:     args[0],
				Email:        email,
				Password:     password,
				Confirmation: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func resetDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-demo",
		Short: "Reseed the demo account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.EnsureDemoUser(cmd.Context()); err != nil {
				return err
			}
			report, err := application.ResetDemo(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "circles=%d categories=%d sub_categories=%d transactions=%d\n",
				report.Circles, report.Categories, report.SubCategories, report.Transactions)
			for _, skipped := range report.Skipped {
				fmt.Fprintf(out, "skipped line %d: %s\n", skipped.Line, skipped.Reason)
			}
			return nil
		},
	}
}
