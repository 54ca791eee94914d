// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecrumbs/search/internal/query/store"
)

// scriptedStore answers successive Query calls with canned row sets,
// in call order, so a test can script both the direct-result
// resolver's steps and the eventual full-plan query without a live
// database.
type scriptedStore struct {
	calls   int
	results [][][]any
}

func (s *scriptedStore) Query(_ context.Context, _ string, _ ...any) (store.Rows, error) {
	var rs [][]any
	if s.calls < len(s.results) {
		rs = s.results[s.calls]
	}
	s.calls++
	return &scriptedRows{rows: rs, pos: -1}, nil
}

func (s *scriptedStore) Explain(_ context.Context, _ string, _ ...any) (store.Explanation, error) {
	return store.Explanation{}, nil
}

func (s *scriptedStore) QueryRow(_ context.Context, _ string, _ ...any) store.Row { return nil }

type scriptedRows struct {
	rows [][]any
	pos  int
}

func (r *scriptedRows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *scriptedRows) Scan(dest ...any) error {
	row := r.rows[r.pos]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int64:
			*p = row[i].(int64)
		case *int32:
			*p = row[i].(int32)
		case *[]store.ExtentPair:
			*p = row[i].([]store.ExtentPair)
		default:
			return fmt.Errorf("scriptedRows: unsupported dest %T", d)
		}
	}
	return nil
}

func (r *scriptedRows) Err() error { return nil }
func (r *scriptedRows) Close()     {}

func TestSearch_DirectResultShortCircuitsFullPlan(t *testing.T) {
	s := &scriptedStore{results: [][][]any{
		{{"src/foo.go"}}, // step 2: unique path match
	}}
	e, err := New(s)
	require.NoError(t, err)

	got, err := e.Search(context.Background(), "foo", false, 25, 0)
	require.NoError(t, err)
	require.NotNil(t, got.Direct)
	assert.Equal(t, "src/foo.go", got.Direct.Path)
	assert.Equal(t, 1, got.Direct.Line)
	assert.Nil(t, got.Files)
	assert.Equal(t, 1, s.calls, "should not run the full plan once a direct result is found")
}

func TestSearch_FileOnlyPlanWhenNoLineFilterFires(t *testing.T) {
	s := &scriptedStore{results: [][][]any{
		{{"a.go", "go"}, {"b.go", "go"}},
	}}
	e, err := New(s)
	require.NoError(t, err)

	got, err := e.Search(context.Background(), "path:internal", false, 25, 0)
	require.NoError(t, err)
	assert.Nil(t, got.Direct)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "a.go", got.Files[0].Path)
	assert.Nil(t, got.Files[0].Lines)
}

func TestSearch_LineJoinedPlanHighlightsAndSkipsAmbiguousDirectResult(t *testing.T) {
	ambiguous := [][]any{{"a"}, {"b"}}
	lineRow := []any{
		"src/main.go", "go", "utf-8", int64(1), int64(7), int32(3),
		"open the file", []store.ExtentPair{}, []store.ExtentPair{{Start: 0, End: 4}},
	}
	s := &scriptedStore{results: [][][]any{
		ambiguous, ambiguous, ambiguous, ambiguous, ambiguous, // 5 direct-result steps, all ambiguous
		{lineRow}, // the full plan's own query
	}}
	e, err := New(s)
	require.NoError(t, err)

	got, err := e.Search(context.Background(), "open", false, 25, 0)
	require.NoError(t, err)
	assert.Nil(t, got.Direct)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "src/main.go", got.Files[0].Path)
	require.Len(t, got.Files[0].Lines, 1)
	assert.Equal(t, "<b>open</b> the file", got.Files[0].Lines[0].Highlighted)
}

func TestSearch_StructuralFilterScansAggregatedExtentColumn(t *testing.T) {
	lineRow := []any{
		"src/main.go", "go", "utf-8", int64(1), int64(7), int32(3),
		"func main() {}", []store.ExtentPair{},
		[]store.ExtentPair{{Start: 5, End: 9}},
	}
	s := &scriptedStore{results: [][][]any{
		{lineRow}, // function: has no bare text term, so the resolver is skipped
	}}
	e, err := New(s)
	require.NoError(t, err)

	got, err := e.Search(context.Background(), "function:main", false, 25, 0)
	require.NoError(t, err)
	assert.Nil(t, got.Direct)
	require.Len(t, got.Files, 1)
	require.Len(t, got.Files[0].Lines, 1)
	assert.Equal(t, "func <b>main</b>() {}", got.Files[0].Lines[0].Highlighted)
	assert.Equal(t, 1, s.calls, "the structural term bypasses the direct-result resolver entirely")
}

func TestSearch_UnterminatedQuoteParsesInsteadOfErroring(t *testing.T) {
	s := &scriptedStore{}
	e, err := New(s)
	require.NoError(t, err)

	// An unclosed quote is tolerated by the grammar (spec §8 law 3); with
	// no store rows scripted, every resolver step and the final plan
	// query just come back empty.
	got, err := e.Search(context.Background(), `"unterminated`, false, 25, 0)
	assert.NoError(t, err)
	assert.Nil(t, got.Direct)
	assert.Empty(t, got.Files)
}

func TestMenu_ListsEveryRegisteredFilterKind(t *testing.T) {
	e, err := New(&scriptedStore{})
	require.NoError(t, err)

	items := e.Menu()
	assert.NotEmpty(t, items)
}
