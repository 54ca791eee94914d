// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package result

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codecrumbs/search/internal/query/highlight"
)

func TestShape_FileOnlyRowsHaveNoLines(t *testing.T) {
	rows := []RawRow{
		{Path: "a.go", Icon: "go"},
		{Path: "b.go", Icon: "go"},
	}
	got := Shape(rows, "<b>", "</b>")
	assert.Equal(t, []File{
		{Icon: "go", Path: "a.go"},
		{Icon: "go", Path: "b.go"},
	}, got)
}

func TestShape_GroupsConsecutiveRowsByFileID(t *testing.T) {
	rows := []RawRow{
		{Path: "a.go", Icon: "go", HasLine: true, FileID: 1, LineNumber: 3, Text: "foo bar"},
		{Path: "a.go", Icon: "go", HasLine: true, FileID: 1, LineNumber: 9, Text: "baz"},
		{Path: "b.go", Icon: "go", HasLine: true, FileID: 2, LineNumber: 1, Text: "qux"},
	}
	got := Shape(rows, "[", "]")
	assert.Len(t, got, 2)
	assert.Equal(t, "a.go", got[0].Path)
	assert.Equal(t, []Line{{Number: 3, Highlighted: "foo bar"}, {Number: 9, Highlighted: "baz"}}, got[0].Lines)
	assert.Equal(t, "b.go", got[1].Path)
	assert.Equal(t, []Line{{Number: 1, Highlighted: "qux"}}, got[1].Lines)
}

func TestShape_MergesExtentsAcrossCrossProductRowsForSameLine(t *testing.T) {
	// A structural filter's LATERAL join can produce two rows for the
	// same (file_id, line_number) tuple, one per matching extent pair.
	rows := []RawRow{
		{
			Path: "a.go", HasLine: true, FileID: 1, LineNumber: 1, Text: "func foo() {}",
			ExtraExtents: []highlight.Extent{{Start: 5, End: 8}},
		},
		{
			Path: "a.go", HasLine: true, FileID: 1, LineNumber: 1, Text: "func foo() {}",
			ExtraExtents: []highlight.Extent{{Start: 0, End: 4}},
		},
	}
	got := Shape(rows, "<", ">")
	assert.Len(t, got, 1)
	assert.Equal(t, []Line{{Number: 1, Highlighted: "<func> <foo>() {}"}}, got[0].Lines)
}

func TestShape_EmptyInputYieldsNoFiles(t *testing.T) {
	got := Shape(nil, "<", ">")
	assert.Nil(t, got)
}
