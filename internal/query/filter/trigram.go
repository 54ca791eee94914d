// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package filter

import "github.com/codecrumbs/search/internal/query/lang"

// TrigramTextFilter is the free-text/regexp filter backed by the
// trigram index. It claims "text" (bare words), "regexp", and the
// legacy alias "re". Positive terms each contribute their own
// trigram_match predicate plus an extents() column; negative terms are
// gathered into a single NOT EXISTS subquery so that "none of these
// match this line" is expressed once rather than as several ANDed
// negatives (the one filter with this shape, per spec §4.C).
type TrigramTextFilter struct{}

var _ Filter = (*TrigramTextFilter)(nil)

func (f *TrigramTextFilter) Names() []string { return []string{"text", "regexp", "re"} }
func (f *TrigramTextFilter) HasLines() bool  { return true }

func (f *TrigramTextFilter) Contribute(ts lang.TermSet, _ func() string) []Contribution {
	var out []Contribution
	var notPredicates []string
	var notArgs []any

	for _, term := range ts.Get(lang.Text) {
		if term.Arg == "" {
			continue
		}
		if term.Negated {
			notPredicates = append(notPredicates, "trg_index.contents MATCH ?")
			notArgs = append(notArgs, textScheme(term, false)+term.Arg)
			continue
		}
		scheme := textScheme(term, true) + term.Arg
		out = append(out, Contribution{
			Columns:    []string{"extents(trg_index.contents, ?)"},
			ColumnArgs: []any{scheme},
			Predicate:  "trg_index.contents MATCH ?",
			Args:       []any{scheme},
		})
	}

	for _, kind := range []string{"re", "regexp"} {
		for _, term := range ts.Get(kind) {
			if term.Arg == "" {
				continue
			}
			if term.Negated {
				notPredicates = append(notPredicates, "trg_index.contents MATCH ?")
				notArgs = append(notArgs, "regexp:"+term.Arg)
				continue
			}
			scheme := "regexp-extents:" + term.Arg
			out = append(out, Contribution{
				Columns:    []string{"extents(trg_index.contents, ?)"},
				ColumnArgs: []any{scheme},
				Predicate:  "trg_index.contents MATCH ?",
				Args:       []any{scheme},
			})
		}
	}

	if len(notPredicates) > 0 {
		out = append(out, Contribution{
			Predicate: "NOT EXISTS (SELECT 1 FROM trigram_index AS trg_index WHERE trg_index.id = lines.id AND (" +
				orJoin(notPredicates) + "))",
			Args: notArgs,
		})
	}
	return out
}

// textScheme picks the bound-argument scheme prefix for a plain text
// term: substr/isubstr, with the -extents suffix for positive matches
// that need highlight positions back.
func textScheme(term lang.Term, extents bool) string {
	scheme := "substr:"
	if !term.CaseSensitive {
		scheme = "isubstr:"
	}
	if extents {
		scheme = scheme[:len(scheme)-1] + "-extents:"
	}
	return scheme
}

func orJoin(conds []string) string {
	out := conds[0]
	for _, c := range conds[1:] {
		out += " OR " + c
	}
	return out
}

func (f *TrigramTextFilter) MenuItem() MenuItem {
	return MenuItem{
		Name:        "regexp",
		Description: `Regular expression. Examples: regexp:(?i)\bs?printf regexp:"(three|3) mice"`,
	}
}
