// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package result groups a plan's raw row stream into the file/line
// tree callers render (spec §4.F). It receives already-decoded rows;
// decoding a line's bytes using its declared encoding, and skipping
// lines that fail to decode (spec §7's EncodingError), happens before
// a RawRow reaches this package.
package result

import "github.com/codecrumbs/search/internal/query/highlight"

// RawRow is one row of a plan's output, decoded into Go values. For a
// file-only plan, only Path/Icon are populated. For a line-joined
// plan, every field is populated; ExtraExtents holds the concatenation
// of that particular row's own extent-pair columns (a structural
// filter's LATERAL-joined extents, or the trigram filter's
// extents(...) column) — the cross-product the plan's joins produce
// means several RawRows can share the same (FileID, LineNumber).
type RawRow struct {
	Path, Icon   string
	HasLine      bool
	FileID       int64
	LineNumber   int
	Text         string
	BaseExtents  []highlight.Extent
	ExtraExtents []highlight.Extent
}

// Line is one highlighted line of a file result.
type Line struct {
	Number      int
	Highlighted string
}

// File is one file's worth of results: its icon, its path, and (for a
// line-joined query) its matched lines in ascending line-number order.
type File struct {
	Icon  string
	Path  string
	Lines []Line
}

// Shape groups rows by FileID (the plan's ORDER BY guarantees
// contiguity, spec §4.F step 2), and within each file groups rows
// sharing a LineNumber, merging every row's BaseExtents and
// ExtraExtents before highlighting (step 1 and step 3).
//
// A file-only plan has no FileID to group by (it never selects
// files.id) and no lines to merge, so each row becomes its own File
// with no Lines, per spec §4.F's "(icon, path, [])" rule.
func Shape(rows []RawRow, markOpen, markClose string) []File {
	var out []File

	i := 0
	for i < len(rows) {
		if !rows[i].HasLine {
			out = append(out, File{Icon: rows[i].Icon, Path: rows[i].Path})
			i++
			continue
		}

		fileStart := i
		fileID := rows[i].FileID
		path, icon := rows[i].Path, rows[i].Icon
		for i < len(rows) && rows[i].HasLine && rows[i].FileID == fileID {
			i++
		}
		fileRows := rows[fileStart:i]

		out = append(out, File{
			Icon:  icon,
			Path:  path,
			Lines: shapeLines(fileRows, markOpen, markClose),
		})
	}
	return out
}

// shapeLines groups one file's rows by line number and merges their
// extents before highlighting, preserving line-number order.
func shapeLines(rows []RawRow, markOpen, markClose string) []Line {
	var lines []Line

	j := 0
	for j < len(rows) {
		number := rows[j].LineNumber
		text := rows[j].Text
		var extents []highlight.Extent
		for j < len(rows) && rows[j].LineNumber == number {
			extents = highlight.Flatten(extents, rows[j].BaseExtents, rows[j].ExtraExtents)
			j++
		}
		lines = append(lines, Line{
			Number:      number,
			Highlighted: highlight.Highlight(text, extents, markOpen, markClose),
		})
	}
	return lines
}
