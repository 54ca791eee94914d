// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codecrumbs/search/internal/logging"
	"github.com/codecrumbs/search/internal/query"
	"github.com/codecrumbs/search/internal/query/store"
)

// queryFlags holds the query subcommand's own flags, layered into the
// config the same way posflag layers cobra flags into koanf.
type queryFlags struct {
	explain       bool
	caseSensitive bool
	limit         int
	offset        int
}

// NewQueryCmd creates the query subcommand.
func NewQueryCmd() *cobra.Command {
	qf := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query <terms...>",
		Short: "Run a search query and print grouped, highlighted results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, strings.Join(args, " "), qf)
		},
	}

	cmd.Flags().BoolVar(&qf.explain, "explain", false, "capture and print the store's query-plan explanation")
	cmd.Flags().BoolVar(&qf.caseSensitive, "case-sensitive", false, "match text terms case-sensitively")
	cmd.Flags().IntVar(&qf.limit, "limit", 0, "maximum result rows to return, lines when a line filter applies, else files (0 uses the configured default)")
	cmd.Flags().IntVar(&qf.offset, "offset", 0, "result row offset to start from")

	return cmd
}

func runQuery(cmd *cobra.Command, querystr string, qf *queryFlags) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logging.SetDefault("searchquery", "dev", cfg.LogFormat)

	ctx := context.Background()
	pool, err := connectPool(ctx, cfg.StoreDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	opts := []query.Option{query.WithMarkers(cfg.MarkOpen, cfg.MarkClose)}
	if qf.explain || cfg.ExplainByDefault {
		opts = append(opts, query.WithProfiling())
	}

	engine, err := query.New(store.NewPostgresStore(pool), opts...)
	if err != nil {
		return err
	}

	limit := qf.limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}
	offset := qf.offset
	if offset == 0 {
		offset = cfg.DefaultOffset
	}

	result, err := engine.Search(ctx, querystr, qf.caseSensitive, limit, offset)
	if err != nil {
		return err
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result query.Result) {
	if result.Direct != nil {
		cmd.Printf("%s:%d\n", result.Direct.Path, result.Direct.Line)
		return
	}

	for _, file := range result.Files {
		cmd.Printf("%s %s\n", file.Icon, file.Path)
		for _, line := range file.Lines {
			cmd.Printf("  %d: %s\n", line.Number, line.Highlighted)
		}
	}

	if result.Report != nil {
		cmd.Println()
		cmd.Println(fmt.Sprintf("plan: %s", result.Report.SQL))
		if result.Report.Explain != "" {
			cmd.Println(result.Report.Explain)
		}
	}
}
