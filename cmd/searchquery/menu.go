// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codecrumbs/search/internal/query"
	"github.com/codecrumbs/search/internal/query/store"
)

// NewMenuCmd creates the menu subcommand.
func NewMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the {name, description} filter menu",
		RunE:  runMenu,
	}
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := connectPool(ctx, cfg.StoreDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	engine, err := query.New(store.NewPostgresStore(pool))
	if err != nil {
		return err
	}

	for _, item := range engine.Menu() {
		cmd.Printf("%-12s %s\n", item.Name, item.Description)
	}
	return nil
}
