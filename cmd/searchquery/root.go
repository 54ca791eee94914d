// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands. storeDSN is registered
// here (rather than per-subcommand) so --store-dsn, SEARCHQUERY_STORE_DSN,
// and a config file's store-dsn key all layer through the same koanf key.
var configFile string
var storeDSN string

// NewRootCmd creates the root command for the searchquery CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "searchquery",
		Short: "searchquery - a source-code search engine query core",
		Long: `searchquery parses, plans, and executes search queries over a
PostgreSQL-backed trigram index, the same relational retrieval model
a DXR-style code search engine uses.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")
	cmd.PersistentFlags().StringVar(&storeDSN, "store-dsn", "", "PostgreSQL connection string")

	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewMenuCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
