// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package direct resolves a single-term query straight to a navigation
// target when the term unambiguously names one file, type, or function
// (spec §4.G), short-circuiting the full retrieval plan. Ported from
// dxr/query.py's Query.direct_result.
package direct

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/codecrumbs/search/internal/query/store"
)

// Target is a resolved jump-to-definition destination.
type Target struct {
	Path string
	Line int
}

// Resolver runs the direct-result heuristic against a store handle.
type Resolver struct {
	store store.Store
}

// New builds a Resolver over the given store handle.
func New(s store.Store) *Resolver {
	return &Resolver{store: s}
}

var trailingLineNumber = regexp.MustCompile(`^(.*):([0-9]+)$`)

// Resolve runs the ordered heuristic steps against term, returning the
// first step's unique hit. ok is false when no step found exactly one
// match. An error from any step's query is returned as is and ends the
// resolution.
func (r *Resolver) Resolve(ctx context.Context, term string) (Target, bool, error) {
	name := term
	line := 1
	if m := trailingLineNumber.FindStringSubmatch(term); m != nil {
		name = m[1]
		if n, err := strconv.Atoi(m[2]); err == nil {
			line = n
		}
	}

	// Step 2: path = name OR path LIKE '%/' + name.
	if path, ok, err := r.uniquePath(ctx, name); err != nil {
		return Target{}, false, err
	} else if ok {
		return Target{Path: path, Line: line}, true, nil
	}

	// Step 3: types by exact name.
	if target, ok, err := r.uniqueStructural(ctx, "types", "name = ?", name); err != nil {
		return Target{}, false, err
	} else if ok {
		return target, true, nil
	}

	// Step 4: functions by exact name.
	if target, ok, err := r.uniqueStructural(ctx, "functions", "name = ?", name); err != nil {
		return Target{}, false, err
	} else if ok {
		return target, true, nil
	}

	// Step 5: fully qualified identifier.
	if strings.Contains(name, "::") {
		if target, ok, err := r.uniqueStructural(ctx, "types", "qualname LIKE ?", name); err != nil {
			return Target{}, false, err
		} else if ok {
			return target, true, nil
		}
		if target, ok, err := r.uniqueStructural(ctx, "functions", "qualname LIKE ?", name+"%"); err != nil {
			return Target{}, false, err
		} else if ok {
			return target, true, nil
		}
	}

	// Step 6: case-insensitive fallback.
	if target, ok, err := r.uniqueStructural(ctx, "types", "name ILIKE ?", name); err != nil {
		return Target{}, false, err
	} else if ok {
		return target, true, nil
	}
	if target, ok, err := r.uniqueStructural(ctx, "functions", "name ILIKE ?", name); err != nil {
		return Target{}, false, err
	} else if ok {
		return target, true, nil
	}

	return Target{}, false, nil
}

// uniquePath implements step 2: a unique files.path match, by exact
// equality or by being the final path component after a slash.
func (r *Resolver) uniquePath(ctx context.Context, name string) (string, bool, error) {
	const q = `SELECT path FROM files WHERE path = ? OR path LIKE ? ESCAPE '\' LIMIT 2`
	suffix := "%/" + escapeLike(name)
	return r.uniqueRow(ctx, q, name, suffix)
}

// uniqueStructural implements steps 3-6: a unique (name or qualname)
// match against one structural relation (always "types" or
// "functions", the only two relations that carry file_line), joined
// back to its file path. The returned Target's Line is the matched
// definition's own starting line, not the term's parsed line number.
func (r *Resolver) uniqueStructural(ctx context.Context, relation, predicate string, arg string) (Target, bool, error) {
	q := "SELECT files.path, " + relation + ".file_line FROM " + relation +
		" JOIN files ON files.id = " + relation + ".file_id WHERE " +
		relation + "." + predicate + " LIMIT 2"
	return r.uniqueTarget(ctx, q, arg)
}

// uniqueRow runs a LIMIT-2 query and returns its single path column
// only when exactly one row came back.
func (r *Resolver) uniqueRow(ctx context.Context, sql string, args ...any) (string, bool, error) {
	rows, err := r.store.Query(ctx, sql, args...)
	if err != nil {
		return "", false, err
	}
	defer rows.Close()

	var path string
	count := 0
	for rows.Next() {
		count++
		if count > 2 {
			break
		}
		if err := rows.Scan(&path); err != nil {
			return "", false, err
		}
	}
	if err := rows.Err(); err != nil {
		return "", false, err
	}
	return path, count == 1, nil
}

// uniqueTarget runs a LIMIT-2 (path, file_line) query and returns a
// Target only when exactly one row came back.
func (r *Resolver) uniqueTarget(ctx context.Context, sql string, args ...any) (Target, bool, error) {
	rows, err := r.store.Query(ctx, sql, args...)
	if err != nil {
		return Target{}, false, err
	}
	defer rows.Close()

	var target Target
	count := 0
	for rows.Next() {
		count++
		if count > 2 {
			break
		}
		if err := rows.Scan(&target.Path, &target.Line); err != nil {
			return Target{}, false, err
		}
	}
	if err := rows.Err(); err != nil {
		return Target{}, false, err
	}
	return target, count == 1, nil
}

// escapeLike applies spec §6's LIKE escaping (\ → \\, _ → \_, % → \%)
// to a literal fragment embedded in a LIKE pattern; name is used here
// as a literal suffix, not a wildcard pattern, so ? and * are not
// translated to _ and %.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `_`, `\_`, `%`, `\%`)
	return r.Replace(s)
}
