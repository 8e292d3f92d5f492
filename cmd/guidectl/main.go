// guidectl is the operations CLI: seeding the known-journal catalog into
// postgres and checking a catalog file without touching the database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"guidesync/internal/config"
	"guidesync/internal/repository/postgres"
	"guidesync/internal/service/guideline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "guidectl",
		Short:         "GuideSync operations CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd(), newCheckCmd(), newResetCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the journal catalog into the database",
		Long:  "Reads a YAML journal catalog, validates every entry, and upserts them keyed by journal name. Safe to re-run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			if catalogPath == "" {
				catalogPath = cfg.JournalCatalog
			}
			entries, err := guideline.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			tables := postgres.NewTableNames(cfg.TablePrefix)
			if err := postgres.Migrate(ctx, pool, tables); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			repo := postgres.NewJournalRepository(&postgres.RepositoryConfig{
				Pool:   pool,
				Tables: tables,
				Logger: logger,
			})

			// All-or-nothing: a bad entry must not leave a half-seeded catalog.
			txManager := postgres.NewTransactionManager(pool)
			err = txManager.ExecTx(ctx, func(ctx context.Context) error {
				for i := range entries {
					if err := repo.Upsert(ctx, &entries[i]); err != nil {
						return fmt.Errorf("upsert %q: %w", entries[i].Name, err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d journals from %s\n", len(entries), catalogPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to the journal catalog (defaults to JOURNAL_CATALOG)")
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all tables for the current environment prefix",
		Long:  "Drops the documents and journals tables for the configured table prefix. Refuses to run against the prod prefix.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := config.Load()

			if cfg.TablePrefix == "prod_" {
				return fmt.Errorf("refusing to drop prod tables")
			}
			if !yes {
				return fmt.Errorf("pass --yes to confirm dropping tables with prefix %q", cfg.TablePrefix)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			tables := postgres.NewTableNames(cfg.TablePrefix)
			if err := postgres.DropTables(ctx, pool, tables); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "dropped tables with prefix %q\n", cfg.TablePrefix)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the drop")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <catalog.yaml>",
		Short: "Validate a journal catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := guideline.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s (%s)\n", entry.Name, entry.Profile.CitationStyle, entry.Profile.Spacing)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d journals ok\n", len(entries))
			return nil
		},
	}
}
