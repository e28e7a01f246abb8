// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	authpg "github.com/staffpass/staffpass/internal/auth/postgres"
	"github.com/staffpass/staffpass/internal/config"
	"github.com/staffpass/staffpass/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd, func(m *store.Migrator) error {
					if err := m.Up(); err != nil {
						return err
					}
					cmd.Println("Migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd, func(m *store.Migrator) error {
					if err := m.Down(); err != nil {
						return err
					}
					cmd.Println("Rolled back one migration")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current migration version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd, func(m *store.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					cmd.Printf("version: %d dirty: %v\n", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "sweep",
			Short: "Purge expired reset credentials",
			Long: `Delete reset credentials whose expiry has passed. The request path
checks expiry lazily, so sweeping is housekeeping, not correctness.`,
			RunE: runSweep,
		},
	)

	return cmd
}

// withMigrator loads config, builds a migrator, runs fn, and closes it.
func withMigrator(cmd *cobra.Command, fn func(*store.Migrator) error) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errDatabaseURLRequired()
	}

	m, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		_ = m.Close() //nolint:errcheck // close error after a completed run is not actionable
	}()

	return fn(m)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errDatabaseURLRequired()
	}

	ctx := context.Background()
	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	deleted, err := authpg.NewResetCredentialRepository(pool).DeleteExpired(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Deleted %d expired reset credentials\n", deleted)
	return nil
}

func errDatabaseURLRequired() error {
	return oops.Code("CONFIG_INVALID").Errorf("database.url is required (or set DATABASE_URL)")
}
