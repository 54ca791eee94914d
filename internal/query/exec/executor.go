// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package exec runs a synthesized plan against a store handle (spec
// §4.E). It owns no state beyond the borrowed store; in profiling mode
// it eagerly materializes rows to measure accurate timing, exactly as
// the source's execute_sql does when should_explain is set.
package exec

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/codecrumbs/search/internal/query/plan"
	"github.com/codecrumbs/search/internal/query/store"
)

// Report is one profiled statement: its text, bound parameters, the
// store's own query-plan explanation, elapsed wall time, and resulting
// row count (spec §4.E).
type Report struct {
	SQL      string
	Args     []any
	Explain  string
	Elapsed  time.Duration
	RowCount int
}

// Executor runs a Plan. When Profile is true, Run eagerly materializes
// the result set to measure accurate timing, the same tradeoff the
// source's should_explain flag makes.
type Executor struct {
	store   store.Store
	profile bool
	logger  *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithProfiling turns on EXPLAIN capture and eager row materialization.
func WithProfiling() Option { return func(e *Executor) { e.profile = true } }

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option { return func(e *Executor) { e.logger = l } }

// New builds an Executor over the given store handle.
func New(s store.Store, opts ...Option) *Executor {
	e := &Executor{store: s, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes p's statement. The returned Report is non-nil only when
// profiling is enabled. correlationID tags the statement in logs the
// way the teacher tags audit rows with a ULID.
func (e *Executor) Run(ctx context.Context, p plan.Plan) (store.Rows, *Report, error) {
	correlationID := ulid.Make().String()
	logger := e.logger.With("correlation_id", correlationID)

	if !e.profile {
		logger.Debug("running query", "sql", p.SQL, "arg_count", len(p.Args))
		rows, err := e.store.Query(ctx, p.SQL, p.Args...)
		if err != nil {
			return nil, nil, err
		}
		return rows, nil, nil
	}

	explanation, err := e.store.Explain(ctx, p.SQL, p.Args...)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	rows, err := e.store.Query(ctx, p.SQL, p.Args...)
	if err != nil {
		return nil, nil, err
	}

	materialized, count, err := materialize(rows, p.NumResult)
	elapsed := time.Since(start)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{
		SQL:      p.SQL,
		Args:     p.Args,
		Explain:  explanation.Text,
		Elapsed:  elapsed,
		RowCount: count,
	}
	logger.Info("profiled query",
		"sql", p.SQL, "row_count", count, "elapsed", elapsed.String())
	return materialized, report, nil
}

// materialize drains rows into an in-memory cursor so profiling can
// measure the full elapsed time, including row fetch — the same
// "fetch results eagerly" tradeoff the source's execute_sql makes.
func materialize(rows store.Rows, numCols int) (store.Rows, int, error) {
	defer rows.Close()

	var buf [][]any
	for rows.Next() {
		dest := make([]any, numCols)
		ptrs := make([]any, numCols)
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, 0, err
		}
		buf = append(buf, dest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return &memRows{buf: buf, pos: -1}, len(buf), nil
}

// memRows is a store.Rows over an already-fetched row slice.
type memRows struct {
	buf [][]any
	pos int
}

func (r *memRows) Next() bool {
	r.pos++
	return r.pos < len(r.buf)
}

func (r *memRows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.buf) {
		return fmt.Errorf("exec: Scan called out of row range")
	}
	row := r.buf[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("exec: Scan expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		if err := assign(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRows) Err() error { return nil }
func (r *memRows) Close()     {}

// assign copies v into the pointer dest, the way pgx's Scan would for
// a *any destination — materialize always builds its buffer with *any
// pointers, so the common case is the direct-pointer assignment.
func assign(dest, v any) error {
	switch d := dest.(type) {
	case *any:
		*d = v
		return nil
	default:
		return fmt.Errorf("exec: unsupported scan destination %T", dest)
	}
}
