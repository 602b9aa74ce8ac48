package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/faq-translate/internal/infra/config"
	"github.com/yanqian/faq-translate/internal/infra/faqrepo"
	"github.com/yanqian/faq-translate/pkg/logger"
)

var version = "dev"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:     "faq-translate",
		Short:   "FAQ service with cached on-the-fly translation",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configPath != "" {
				_ = os.Setenv("CONFIG_PATH", configPath)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file (overrides CONFIG_PATH)")

	root.AddCommand(newServeCmd(), newMigrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	app, cleanup, err := initializeApp()
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the faqs table in the configured SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New().With("component", "migrate")

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			switch cfg.Store.Driver {
			case config.StorePostgres:
				pool, err := openPostgresPool(ctx, cfg.Store.Postgres)
				if err != nil {
					return err
				}
				repo := faqrepo.NewPostgresRepository(pool)
				defer func() { _ = repo.Close() }()
				if err := repo.Migrate(ctx); err != nil {
					return fmt.Errorf("migrate postgres: %w", err)
				}
			case config.StoreSQLite:
				repo, err := faqrepo.OpenSQLite(ctx, cfg.Store.SQLite.Path)
				if err != nil {
					return err
				}
				defer func() { _ = repo.Close() }()
			default:
				log.Info("memory store needs no migration")
				return nil
			}
			log.Info("schema up to date", "driver", cfg.Store.Driver)
			return nil
		},
	}
}
