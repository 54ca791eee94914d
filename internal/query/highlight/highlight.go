// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package highlight wraps matched byte spans of a line's text in
// marker strings, merging overlapping or contained spans first (spec
// §4.H). The source's dxr.extents module isn't in the retrieval pack;
// this is reconstructed from query.py's calling contract.
package highlight

import "sort"

// Extent is a byte-offset span [Start, End) into a line's text.
type Extent struct {
	Start, End int
}

// Flatten concatenates zero or more extent-pair sources (the base
// line's own extents plus each filter contribution's extent columns)
// into a single slice, unlabeled (spec §4.F: "the minimal contract
// merges them unlabeled").
func Flatten(sources ...[]Extent) []Extent {
	var out []Extent
	for _, s := range sources {
		out = append(out, s...)
	}
	return out
}

// Merge clips extents to [0, textLen), drops empty or fully-out-of-
// range spans, sorts by start, and merges any that overlap or touch,
// so Highlight never wraps the same byte twice.
func Merge(extents []Extent, textLen int) []Extent {
	var clipped []Extent
	for _, e := range extents {
		start, end := e.Start, e.End
		if start < 0 {
			start = 0
		}
		if end > textLen {
			end = textLen
		}
		if start >= end {
			continue
		}
		clipped = append(clipped, Extent{Start: start, End: end})
	}
	if len(clipped) == 0 {
		return nil
	}

	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start < clipped[j].Start })

	merged := []Extent{clipped[0]}
	for _, e := range clipped[1:] {
		last := &merged[len(merged)-1]
		if e.Start <= last.End {
			if e.End > last.End {
				last.End = e.End
			}
			continue
		}
		merged = append(merged, e)
	}
	return merged
}

// Highlight wraps each non-overlapping, merged extent span of text in
// open/close marker strings. Extents are interpreted as byte offsets
// into text (callers decode using the line's declared encoding before
// calling Highlight and re-encode the result, per spec §4.H).
func Highlight(text string, extents []Extent, open, close string) string {
	spans := Merge(extents, len(text))
	if len(spans) == 0 {
		return text
	}

	var b []byte
	pos := 0
	for _, span := range spans {
		b = append(b, text[pos:span.Start]...)
		b = append(b, open...)
		b = append(b, text[span.Start:span.End]...)
		b = append(b, close...)
		pos = span.End
	}
	b = append(b, text[pos:]...)
	return string(b)
}
