// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codecrumbs/search/internal/query/queryerr"
)

// matchClause is the exact literal the filter package emits for a
// trigram-match predicate (see internal/query/filter's TrigramTextFilter).
const matchClause = "trg_index.contents MATCH ?"

// matchFunctionCall is matchClause's PostgreSQL equivalent: a call to
// the trigram_match SQL function installed by this package's migrations.
const matchFunctionCall = "trigram_match(trg_index.contents, ?)"

// ExtentPair is one (start, end) byte-offset span, as returned by the
// extents() SQL function's extent_pair[] column (spec §6). pgx decodes
// the array into a []ExtentPair automatically once the composite type
// is registered on the pool's connections — see RegisterExtentType.
type ExtentPair struct {
	Start int32
	End   int32
}

// RegisterExtentType loads the extent_pair composite type installed by
// migrations/000003_trigram_match.up.sql and registers its Go mapping
// on conn's type map, so every extents()-returning column pgx scans
// decodes straight into []ExtentPair. Callers wire this into
// pgxpool.Config.AfterConnect at pool-construction time, the same
// per-connection setup hook the teacher's pool configuration uses for
// statement timeouts.
func RegisterExtentType(ctx context.Context, conn *pgx.Conn) error {
	t, err := conn.LoadType(ctx, "extent_pair")
	if err != nil {
		return queryerr.Store(err, "load extent_pair type")
	}
	conn.TypeMap().RegisterType(t)

	arrT, err := conn.LoadType(ctx, "_extent_pair")
	if err != nil {
		return queryerr.Store(err, "load extent_pair array type")
	}
	conn.TypeMap().RegisterType(arrT)
	return nil
}

// pgxPool is the slice of *pgxpool.Pool this package calls. Depending
// on the interface rather than the concrete type lets tests substitute
// pgxmock's pool fake without a live database.
type pgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using PostgreSQL with pg_trgm and the
// trigram_match/extents functions installed by this package's
// migrations.
type PostgresStore struct {
	pool pgxPool
}

// NewPostgresStore creates a PostgresStore backed by the given
// connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// adaptDialect rewrites a plan's dialect-neutral SQL text (spec §6's
// "col MATCH ?" trigram predicate, '?' positional placeholders) into
// PostgreSQL's own syntax: MATCH has no valid operator spelling in
// Postgres (operator names are symbol-only), so it becomes a call to
// the trigram_match SQL function; placeholders are renumbered to
// $1, $2, … in left-to-right order, matching the order Plan.Args were
// assembled in.
func adaptDialect(sql string) string {
	sql = strings.ReplaceAll(sql, matchClause, matchFunctionCall)

	var b strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *PostgresStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := s.pool.Query(ctx, adaptDialect(sql), args...)
	if err != nil {
		return nil, classify(err, "query")
	}
	return &pgxRows{rows: rows}, nil
}

func (s *PostgresStore) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return s.pool.QueryRow(ctx, adaptDialect(sql), args...)
}

func (s *PostgresStore) Explain(ctx context.Context, sql string, args ...any) (Explanation, error) {
	rows, err := s.pool.Query(ctx, "EXPLAIN "+adaptDialect(sql), args...)
	if err != nil {
		return Explanation{}, classify(err, "explain")
	}
	defer rows.Close()
	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return Explanation{}, classify(err, "explain")
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return Explanation{}, classify(err, "explain")
	}
	return Explanation{Text: strings.Join(lines, "\n")}, nil
}

// pgxRows adapts pgx.Rows to the Store-level Rows interface and maps
// terminal scan/iteration errors through classify.
type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool { return r.rows.Next() }

func (r *pgxRows) Scan(dest ...any) error {
	if err := r.rows.Scan(dest...); err != nil {
		return classify(err, "scan row")
	}
	return nil
}

func (r *pgxRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return classify(err, "iterate rows")
	}
	return nil
}

func (r *pgxRows) Close() { r.rows.Close() }

// IsBadPattern reports whether err is a queryerr.BadPattern failure,
// the one store error callers are expected to recover from per-term.
func IsBadPattern(err error) bool {
	return queryerr.Is(err, queryerr.BadPattern)
}
