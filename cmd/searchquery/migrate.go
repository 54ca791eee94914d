// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"io"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/codecrumbs/search/internal/query/store"
)

// migrator is the minimal interface runMigrateUpLogic/runMigrateDownLogic
// need from *store.Migrator, so tests can exercise the CLI output logic
// without a live database.
type migrator interface {
	Up() error
	Down() error
	Close() error
}

// migratorFactory builds a migrator for a DSN. Overridable in tests;
// defaults to store.NewMigrator the way the teacher's CoreDeps.MigratorFactory
// defaults to store.NewMigrator for the core command.
var migratorFactory = func(dsn string) (migrator, error) {
	return store.NewMigrator(dsn)
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		Long:  `Apply or roll back the query core's files/lines/trigram_index schema.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runMigrateUp,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations (destructive)",
		RunE:  runMigrateDown,
	})

	return cmd
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	m, err := dialMigrator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return runMigrateUpLogic(cmd.OutOrStdout(), m)
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	m, err := dialMigrator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return runMigrateDownLogic(cmd.OutOrStdout(), m)
}

func dialMigrator(cmd *cobra.Command) (migrator, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if cfg.StoreDSN == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("store DSN is required (--store-dsn, SEARCHQUERY_STORE_DSN, or config file)")
	}
	m, err := migratorFactory(cfg.StoreDSN)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "build migrator").Wrap(err)
	}
	return m, nil
}

func runMigrateUpLogic(w io.Writer, m migrator) error {
	_, _ = io.WriteString(w, "running migrations...\n")
	if err := m.Up(); err != nil {
		return err
	}
	_, _ = io.WriteString(w, "migrations completed successfully\n")
	return nil
}

func runMigrateDownLogic(w io.Writer, m migrator) error {
	_, _ = io.WriteString(w, "rolling back all migrations...\n")
	if err := m.Down(); err != nil {
		return err
	}
	_, _ = io.WriteString(w, "rollback completed successfully\n")
	return nil
}
