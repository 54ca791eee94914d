// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package filter is the fixed, ordered catalog of filter kinds a query
// can invoke: free-text/regexp matching against the trigram index,
// simple file-attribute predicates, structural code relations, and
// unions over several underlying relations answering one user-visible
// kind. Each filter is a process-lifetime singleton and pure with
// respect to the store — it only builds SQL fragments and arguments,
// never touches the database itself.
package filter

import "github.com/codecrumbs/search/internal/query/lang"

// Contribution is what a Filter yields for one positive or negative
// term: extra output columns (each one extent_pair[] expression), an
// optional join bringing in the relation those columns read
// from, and a predicate to AND into the plan's WHERE clause.
//
// Placeholder order matters: a rendered SELECT ... FROM ... WHERE
// statement places Columns first, then Join, then Predicate, so the
// synthesizer concatenates ColumnArgs, then JoinArgs, then Args across
// every contribution, in contribution-processing order, to get a flat
// argument list matching the '?' placeholders' left-to-right order in
// the final SQL text.
type Contribution struct {
	// Columns are SQL expressions to append to the SELECT list, each
	// yielding one extent_pair[] value: either a join alias's extents
	// column or a single function call expression that may itself carry a '?' placeholder (the
	// trigram filter's extents(contents, ?) call).
	Columns []string
	// ColumnArgs are the bound values for placeholders embedded in
	// Columns entries, in order.
	ColumnArgs []any
	// Join, if non-empty, is a full join clause (e.g. a LEFT JOIN
	// LATERAL bringing in a structural relation's own extents) to
	// append to the plan's FROM clause. Used by filters whose extent
	// columns can each yield more than one row per line (spec §4.F's
	// cross-product case).
	Join string
	// JoinArgs are the bound values for Join's placeholders, in order.
	JoinArgs []any
	// Predicate is a SQL boolean expression using positional
	// placeholders ('?'), ANDed into the plan's WHERE clause.
	Predicate string
	// Args are the bound values for Predicate's placeholders, in order.
	Args []any
}

// Filter is a catalog entry: a claimed kind name, whether it restricts
// to individual lines (requiring the line/trigram join), and the
// operation that turns a TermSet into zero or more Contributions.
//
// The source models filter kinds via class inheritance (SearchFilter
// and its subclasses); that's recast here as a closed set of variant
// structs sharing this interface, with no open extension at runtime —
// the grammar is derived from the registry once at startup, so nothing
// outside this package ever needs to add a new kind dynamically.
type Filter interface {
	// Names returns the kind name(s) this filter claims from the
	// TermSet (the trigram filter claims more than one: "text",
	// "regexp", and the legacy alias "re").
	Names() []string
	// HasLines reports whether this filter's matches are per-line
	// (requiring the plan to join in the line and trigram-index
	// relations) or per-file.
	HasLines() bool
	// Contribute returns this filter's contributions for the given
	// term set. nextAlias allocates a fresh, query-unique table alias
	// for filters that join in their own relation (mirroring dxr's
	// alias_iter); filters that need no alias ignore it. The returned
	// slice is finite and may be recomputed each call; callers must not
	// assume laziness.
	Contribute(ts lang.TermSet, nextAlias func() string) []Contribution
	// MenuItem returns the {name, description} pair shown in a filter
	// menu (spec §6 "Menu metadata").
	MenuItem() MenuItem
}

// MenuItem is one entry of the filter menu exposed to callers.
type MenuItem struct {
	Name        string
	Description string
}
