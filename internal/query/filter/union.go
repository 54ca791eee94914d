// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package filter

import (
	"fmt"

	"github.com/codecrumbs/search/internal/query/lang"
)

// UnionFilter answers one user-visible kind by OR-ing together several
// inner filters that each look at a different underlying relation
// (e.g. "type" matches both the types and typedefs relations). All
// inner filters must share the same claimed name; this is checked once
// at construction, the way dxr's UnionFilter validates its inner
// filters' params up front.
type UnionFilter struct {
	param       string
	description string
	inner       []*StructuralFilter
}

var _ Filter = (*UnionFilter)(nil)

// NewUnionFilter builds a union over inner structural filters that all
// claim the same param name. It panics on a name mismatch, since that
// can only happen from a programming error in the registry, never from
// user input.
func NewUnionFilter(description string, inner ...*StructuralFilter) *UnionFilter {
	if len(inner) == 0 {
		panic("filter: NewUnionFilter requires at least one inner filter")
	}
	param := inner[0].param
	for _, f := range inner[1:] {
		if f.param != param {
			panic(fmt.Sprintf("filter: union filter members disagree on name: %q vs %q", param, f.param))
		}
	}
	return &UnionFilter{param: param, description: description, inner: inner}
}

func (f *UnionFilter) Names() []string { return []string{f.param} }
func (f *UnionFilter) HasLines() bool  { return true }

// Contribute yields one contribution per term (not one per inner
// filter per term): every inner filter's predicate for that term is
// OR-joined into a single parenthesized clause, and every inner
// filter's extent join is kept, so a positive term surfaces the
// disjunction of all inner relations' extents (spec §8 law 11).
func (f *UnionFilter) Contribute(ts lang.TermSet, nextAlias func() string) []Contribution {
	var out []Contribution
	for _, term := range ts.Get(f.param) {
		if term.Arg == "" {
			continue
		}

		single := lang.TermSet{f.param: []lang.Term{term}}

		var predicates []string
		var args []any
		var columns []string
		var joins []string
		var joinArgs []any

		for _, inner := range f.inner {
			contribs := inner.Contribute(single, nextAlias)
			if len(contribs) == 0 {
				continue
			}
			c := contribs[0]
			predicates = append(predicates, c.Predicate)
			args = append(args, c.Args...)
			columns = append(columns, c.Columns...)
			if c.Join != "" {
				joins = append(joins, c.Join)
				joinArgs = append(joinArgs, c.JoinArgs...)
			}
		}

		out = append(out, Contribution{
			Columns:   columns,
			Join:      joinList(joins),
			JoinArgs:  joinArgs,
			Predicate: "(" + orJoin(predicates) + ")",
			Args:      args,
		})
	}
	return out
}

// joinList concatenates zero or more join clauses with a separating
// space, suitable for appending to a FROM clause.
func joinList(joins []string) string {
	if len(joins) == 0 {
		return ""
	}
	out := joins[0]
	for _, j := range joins[1:] {
		out += " " + j
	}
	return out
}

func (f *UnionFilter) MenuItem() MenuItem {
	return MenuItem{Name: f.param, Description: f.description}
}
