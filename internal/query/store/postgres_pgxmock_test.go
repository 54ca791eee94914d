// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockStore builds a PostgresStore over a pgxmock pool so the
// dynamic dialect-adaptation and row-scanning path can be exercised
// without a live database, the same trade the teacher's declared (but
// unwired) pgxmock dependency was meant for.
func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_Query_RewritesPlaceholdersBeforeDispatch(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT files\.path FROM files WHERE files\.path LIKE \$1 LIMIT \$2 OFFSET \$3`).
		WithArgs("%foo%", int64(10), int64(0)).
		WillReturnRows(pgxmock.NewRows([]string{"path"}).AddRow("src/foo.go"))

	rows, err := s.Query(context.Background(),
		"SELECT files.path FROM files WHERE files.path LIKE ? LIMIT ? OFFSET ?",
		"%foo%", int64(10), int64(0))
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var path string
	require.NoError(t, rows.Scan(&path))
	assert.Equal(t, "src/foo.go", path)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Query_ClassifiesBackendFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT 1`).WillReturnError(simpleErr("connection reset"))

	_, err := s.Query(context.Background(), "SELECT 1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Explain_PrependsExplainKeyword(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`EXPLAIN SELECT files\.path FROM files`).
		WillReturnRows(pgxmock.NewRows([]string{"QUERY PLAN"}).AddRow("Seq Scan on files"))

	exp, err := s.Explain(context.Background(), "SELECT files.path FROM files")
	require.NoError(t, err)
	assert.Equal(t, "Seq Scan on files", exp.Text)
}
