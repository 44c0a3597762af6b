package main

import (
	"context"
	"errors"
	"net/http"

	"budget-app-go/internal/app"
	"budget-app-go/internal/db"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !skipMigrate {
				if err := db.MigrateUp(cfg.DB, log); err != nil {
					return err
				}
			}

			application, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					log.Error("app: close failed", "err", err)
				}
			}()

			if err := application.EnsureDemoUser(ctx); err != nil {
				return err
			}

			srv := application.HTTPServer()
			group, groupCtx := errgroup.WithContext(ctx)

			group.Go(func() error {
				log.Info("http: listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			group.Go(func() error {
				<-groupCtx.Done()
				log.Info("app: shutting down")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			if err := group.Wait(); err != nil {
				return err
			}
			log.Info("app: stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on start")
	return cmd
}
