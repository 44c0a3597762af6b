package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"budget-app-go/internal/config"
	"budget-app-go/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
	log       logger.Logger
	cfg       config.Config
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "budget-app",
		Short:         "Shared household budget tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log = logger.NewWithOptions(os.Stdout, logger.Options{
				Env:     os.Getenv("ENV"),
				Level:   firstNonEmpty(logLevel, os.Getenv("LOG_LEVEL")),
				Format:  firstNonEmpty(logFormat, os.Getenv("LOG_FORMAT")),
				Service: "budget-app",
			})

			loaded, err := config.Load(log)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, text); defaults to LOG_FORMAT")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(resetDemoCmd())
	cmd.AddCommand(createUserCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if log != nil {
			log.Critical("app: command failed", "err", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
