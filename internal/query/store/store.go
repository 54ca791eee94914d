// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package store is the query core's relational handle (spec §6): it
// runs a synthesized plan's SQL text and arguments and hands back rows
// whose columns are read by position, classifying backend failures into
// the core's error kinds. The core depends only on the Store interface; PostgresStore is
// the one concrete implementation.
package store

import "context"

// Row is a single result row. Its columns are read positionally, in the
// order the plan's SELECT list declared them; there is no access by
// column name.
type Row interface {
	// Scan copies the row's columns, in SELECT order, into dest.
	Scan(dest ...any) error
}

// Rows is a cursor over a statement's result set. Callers must call
// Close exactly once, on every exit path including early termination
// and error (spec §5's cancellation guarantee).
type Rows interface {
	Next() bool
	Row
	Err() error
	Close()
}

// Explanation is the store's query-plan explanation, captured for
// profiling (spec §4.E).
type Explanation struct {
	Text string
}

// Store is the relational handle the executor runs plans against.
type Store interface {
	// Query runs sql with args bound positionally (the '?' placeholders
	// a Plan produces; Store implementations translate them to their
	// backend's native parameter syntax) and returns a row cursor.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	// Explain returns the backend's query-plan explanation for sql, for
	// profiling mode.
	Explain(ctx context.Context, sql string, args ...any) (Explanation, error)
	// QueryRow runs sql and returns at most one row, for callers that
	// only ever want the first match.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}
