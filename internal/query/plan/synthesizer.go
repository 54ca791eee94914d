// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package plan synthesizes a single parameterized SQL statement from a
// parsed term set and the filter registry. It owns no store handle; it
// only assembles text and a flat argument list for the executor to run.
package plan

import (
	"fmt"
	"strings"

	"github.com/codecrumbs/search/internal/query/filter"
	"github.com/codecrumbs/search/internal/query/lang"
)

// baseColumns are selected unconditionally, in file-only shape.
var baseColumns = []string{"files.path", "files.icon"}

// lineColumns are appended, after baseColumns, the first time the plan
// switches to line-joined shape. trg_index is the alias the plan gives
// the trigram_index relation (spec §6), the short name every filter
// contribution that reads it uses.
var lineColumns = []string{
	"files.encoding", "lines.file_id", "lines.id", "lines.number",
	"trg_index.text", "extents(trg_index.contents)",
}

// Plan is a fully assembled statement: its text, its bound arguments in
// the order the placeholders appear, and whether it joined in the line
// relations (the shaper needs this to pick its file-only vs
// line-joined row decoding path).
type Plan struct {
	SQL       string
	Args      []any
	HasLines  bool
	NumResult int // number of result columns, for row scanning
}

// Synthesize builds a Plan from a parsed term set, the registry's
// filters (in registration order — callers pass filter.Registry()),
// and the page window. Filter order and, within a kind, term order
// (preserved by lang.TermSet) together make assembly deterministic
// (spec §8 law 7).
func Synthesize(ts lang.TermSet, filters []filter.Filter, limit, offset int) Plan {
	columns := append([]string{}, baseColumns...)
	relations := []string{"files"}
	var predicates []string
	var joins []string
	var columnArgs []any
	var joinArgs []any
	var args []any
	ordering := []string{"files.path"}
	hasLines := false

	nextAlias := aliasGenerator()

	// TODO: the original iterated only filters[0] and filters[2] here,
	// commented "XXX: filters:" with no further explanation. That looks
	// like a leftover debugging slice rather than intended behavior, so
	// every registered filter is consulted.
	for _, f := range filters {
		for _, c := range f.Contribute(ts, nextAlias) {
			if !hasLines && f.HasLines() {
				hasLines = true
				columns = append(columns, lineColumns...)
				relations = append(relations, "lines", "trigram_index AS trg_index")
				predicates = append(predicates, "files.id = lines.file_id AND lines.id = trg_index.id")
				ordering = append(ordering, "lines.number")
			}

			columns = append(columns, c.Columns...)
			columnArgs = append(columnArgs, c.ColumnArgs...)
			if c.Join != "" {
				joins = append(joins, c.Join)
				joinArgs = append(joinArgs, c.JoinArgs...)
			}
			if c.Predicate != "" {
				predicates = append(predicates, c.Predicate)
				args = append(args, c.Args...)
			}
		}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(strings.Join(relations, " CROSS JOIN "))
	for _, j := range joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(predicates) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(predicates, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(ordering, ", "))
	b.WriteString(" LIMIT ? OFFSET ?")

	finalArgs := make([]any, 0, len(columnArgs)+len(joinArgs)+len(args)+2)
	finalArgs = append(finalArgs, columnArgs...)
	finalArgs = append(finalArgs, joinArgs...)
	finalArgs = append(finalArgs, args...)
	finalArgs = append(finalArgs, limit, offset)

	return Plan{
		SQL:       b.String(),
		Args:      finalArgs,
		HasLines:  hasLines,
		NumResult: len(columns),
	}
}

// aliasGenerator yields lat0, lat1, lat2, … for LATERAL join aliases,
// mirroring the source's count()-based alias_iter.
func aliasGenerator() func() string {
	n := 0
	return func() string {
		alias := fmt.Sprintf("lat%d", n)
		n++
		return alias
	}
}
