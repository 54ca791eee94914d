// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/pflag"

	"github.com/codecrumbs/search/internal/config"
	"github.com/codecrumbs/search/internal/query/store"
	"github.com/codecrumbs/search/internal/xdg"
)

// defaultConfigPath is where loadConfig looks for a YAML file when
// --config wasn't given: the XDG config directory a user's other tools
// already know about.
func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigDir(), "config.yaml")
}

// loadConfig layers defaults, the --config YAML file (or the XDG
// default, if present), SEARCHQUERY_*-prefixed environment variables,
// and cmd's flags.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath()); err == nil {
			path = defaultConfigPath()
		}
	}
	return config.Load(path, flags, os.Environ())
}

// connectPool dials the store's PostgreSQL DSN with a bounded retry
// around the initial connection attempt only — the query core itself
// never retries (spec §7); this retry lives strictly in the CLI's
// startup bootstrap.
func connectPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").With("operation", "parse DSN").Wrap(err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return store.RegisterExtentType(ctx, conn)
	}

	var pool *pgxpool.Pool
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return retry.RetryableError(err)
		}
		pool = p
		return nil
	}); err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}

	return pool, nil
}
