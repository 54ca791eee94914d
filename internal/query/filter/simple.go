// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package filter

import "github.com/codecrumbs/search/internal/query/lang"

// SimpleFilter matches a single file-level attribute with no line
// restriction: path and ext. Positive terms LIKE-match; negative terms
// NOT LIKE-match. Neither contributes extent columns.
type SimpleFilter struct {
	param       string
	description string
	column      string
	// format turns a term's raw argument into the LIKE pattern bound to
	// the placeholder (path wraps with '%…%', ext normalizes a leading
	// dot and wraps with '%.…').
	format func(arg string) string
}

var _ Filter = (*SimpleFilter)(nil)

// NewPathFilter matches files whose path contains the given sub-path.
func NewPathFilter() *SimpleFilter {
	return &SimpleFilter{
		param:       "path",
		description: `File or directory sub-path to search within. '*' and '?' act as shell wildcards.`,
		column:      "files.path",
		format:      func(arg string) string { return "%" + likeEscape(arg) + "%" },
	}
}

// NewExtFilter matches files by extension, with or without a leading dot.
func NewExtFilter() *SimpleFilter {
	return &SimpleFilter{
		param:       "ext",
		description: "Filename extension: ext:cpp",
		column:      "files.path",
		format: func(arg string) string {
			if len(arg) == 0 || arg[0] != '.' {
				arg = "." + arg
			}
			return "%" + likeEscape(arg)
		},
	}
}

func (f *SimpleFilter) Names() []string { return []string{f.param} }
func (f *SimpleFilter) HasLines() bool  { return false }

func (f *SimpleFilter) Contribute(ts lang.TermSet, _ func() string) []Contribution {
	var out []Contribution
	for _, term := range ts.Get(f.param) {
		pattern := f.format(term.Arg)
		predicate := f.column + ` LIKE ? ESCAPE '\'`
		if term.Negated {
			predicate = f.column + ` NOT LIKE ? ESCAPE '\'`
		}
		out = append(out, Contribution{Predicate: predicate, Args: []any{pattern}})
	}
	return out
}

func (f *SimpleFilter) MenuItem() MenuItem {
	return MenuItem{Name: f.param, Description: f.description}
}
