// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight_OverlappingExtentsAreMerged(t *testing.T) {
	got := Highlight("abcdef", []Extent{{0, 3}, {2, 5}}, "<b>", "</b>")
	assert.Equal(t, "<b>abcde</b>f", got)
}

func TestHighlight_EmptyExtentSetIsIdentity(t *testing.T) {
	got := Highlight("<b>already</b>", nil, "<b>", "</b>")
	assert.Equal(t, "<b>already</b>", got)
}

func TestHighlight_NonOverlappingExtentsWrapSeparately(t *testing.T) {
	got := Highlight("open file handle", []Extent{{0, 4}, {5, 9}}, "[", "]")
	assert.Equal(t, "[open] [file] handle", got)
}

func TestHighlight_TouchingExtentsMerge(t *testing.T) {
	got := Highlight("abcdef", []Extent{{0, 2}, {2, 4}}, "<", ">")
	assert.Equal(t, "<abcd>ef", got)
}

func TestHighlight_ExtentsOutsideRangeAreClipped(t *testing.T) {
	got := Highlight("abc", []Extent{{-5, 2}, {1, 100}}, "<", ">")
	assert.Equal(t, "<abc>", got)
}

func TestHighlight_EmptyOrInvalidSpanIsDropped(t *testing.T) {
	got := Highlight("abc", []Extent{{2, 2}, {3, 1}}, "<", ">")
	assert.Equal(t, "abc", got)
}

func TestFlatten_ConcatenatesInOrder(t *testing.T) {
	got := Flatten([]Extent{{0, 1}}, nil, []Extent{{2, 3}, {4, 5}})
	assert.Equal(t, []Extent{{0, 1}, {2, 3}, {4, 5}}, got)
}

func TestMerge_SortsBeforeMerging(t *testing.T) {
	got := Merge([]Extent{{10, 12}, {0, 3}, {2, 5}}, 20)
	assert.Equal(t, []Extent{{0, 5}, {10, 12}}, got)
}
