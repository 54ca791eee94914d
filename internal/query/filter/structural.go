// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package filter

import (
	"fmt"

	"github.com/codecrumbs/search/internal/query/lang"
)

// StructuralFilter asks "does a row matching this name exist in some
// structural relation for this file", contributing an EXISTS/NOT
// EXISTS predicate plus, for positive matches, a LEFT JOIN LATERAL
// bringing in that relation's own extents. It is parameterized rather
// than subclassed (spec §4.C): each instance supplies the relation's
// file-selection and extent-retrieval templates and which columns hold
// the plain and qualified names.
//
// A structural match can have more than one extent in the same file
// (e.g. several calls to the same function), so the LATERAL aggregates
// them with array_agg into one extent_pair[] column rather than
// returning one row per extent — every Contribution's extra column is
// scanned the same way (engine.scanRow), whether it came from the
// trigram filter's extents() call or here, and the result shaper
// merges that column's extents into whichever line it rode in on
// (spec §4.F).
type StructuralFilter struct {
	param       string
	description string
	// existsSQL is "SELECT 1 FROM <rel> WHERE %s AND <rel>.file_id =
	// files.id", with %s replaced by the name-match placeholder.
	existsSQL string
	// extentSQL is "SELECT extent_start, extent_end FROM <rel> WHERE
	// <rel>.file_id = files.id AND %s ORDER BY <rel>.extent_start",
	// correlated directly against the outer files.id since it is
	// joined in rather than issued as a standalone query.
	extentSQL  string
	likeColumn string
	qualColumn string
}

var _ Filter = (*StructuralFilter)(nil)

// NewStructuralFilter builds a structural filter. existsSQL and
// extentSQL must each contain exactly one "%s" for the name-match
// placeholder.
func NewStructuralFilter(param, description, existsSQL, extentSQL, likeColumn, qualColumn string) *StructuralFilter {
	return &StructuralFilter{
		param:       param,
		description: description,
		existsSQL:   existsSQL,
		extentSQL:   extentSQL,
		likeColumn:  likeColumn,
		qualColumn:  qualColumn,
	}
}

func (f *StructuralFilter) Names() []string { return []string{f.param} }
func (f *StructuralFilter) HasLines() bool  { return true }

// nameMatch returns the placeholder clause and its bound argument for
// one term: exact equality against the qualified-name column when the
// term was '+'-prefixed, else a LIKE '%arg%' against the plain-name
// column.
func (f *StructuralFilter) nameMatch(term lang.Term) (clause string, arg any) {
	if term.Qualified {
		return f.qualColumn + " = ?", term.Arg
	}
	return f.likeColumn + ` LIKE ? ESCAPE '\'`, "%" + likeEscape(term.Arg) + "%"
}

func (f *StructuralFilter) Contribute(ts lang.TermSet, nextAlias func() string) []Contribution {
	var out []Contribution
	for _, term := range ts.Get(f.param) {
		if term.Arg == "" {
			continue
		}
		clause, arg := f.nameMatch(term)

		if term.Negated {
			out = append(out, Contribution{
				Predicate: "NOT EXISTS (" + fmt.Sprintf(f.existsSQL, clause) + ")",
				Args:      []any{arg},
			})
			continue
		}

		alias := nextAlias()
		out = append(out, Contribution{
			Columns: []string{alias + ".extents"},
			Join: fmt.Sprintf(
				"LEFT JOIN LATERAL (SELECT array_agg(ROW(extent_start, extent_end)::extent_pair ORDER BY extent_start) AS extents FROM (%s) AS %s_rows(extent_start, extent_end)) AS %s(extents) ON TRUE",
				fmt.Sprintf(f.extentSQL, clause), alias, alias),
			JoinArgs:  []any{arg},
			Predicate: "EXISTS (" + fmt.Sprintf(f.existsSQL, clause) + ")",
			Args:      []any{arg},
		})
	}
	return out
}

func (f *StructuralFilter) MenuItem() MenuItem {
	return MenuItem{Name: f.param, Description: f.description}
}
