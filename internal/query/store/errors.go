// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/codecrumbs/search/internal/query/queryerr"
)

// classify turns a pgx/Postgres error into one of the core's error
// kinds. invalid_regular_expression is the one backend failure the
// core expects a caller to recover from per-term (spec §7's
// BadPattern); everything else is an opaque StoreError.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidRegularExpression {
		return queryerr.BadPatternf(pgErr.Message, "invalid regular expression: %s", pgErr.Message)
	}
	return queryerr.Store(err, op)
}
