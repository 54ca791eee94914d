// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package direct

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecrumbs/search/internal/query/store"
)

// scriptedStore answers each Query call with the next canned row set
// in order, letting a test express "step 2 finds nothing, step 3
// finds exactly one" without a live database.
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
	for i, v := range dest {
		switch p := v.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		}
	}
	return nil
}

func (r *scriptedRows) Err() error { return nil }
func (r *scriptedRows) Close()     {}

func TestResolve_UniquePathMatchReturnsLineOne(t *testing.T) {
	s := &scriptedStore{results: [][][]any{
		{{"src/foo.go"}},
	}}
	target, ok, err := New(s).Resolve(context.Background(), "foo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Target{Path: "src/foo.go", Line: 1}, target)
}

func TestResolve_TrailingLineNumberIsSplitOff(t *testing.T) {
	s := &scriptedStore{results: [][][]any{
		{{"src/foo.go"}},
	}}
	target, ok, err := New(s).Resolve(context.Background(), "foo:42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Target{Path: "src/foo.go", Line: 42}, target)
}

func TestResolve_FallsThroughToFunctionsWhenPathAmbiguous(t *testing.T) {
	s := &scriptedStore{results: [][][]any{
		{{"a"}, {"b"}},        // step 2: ambiguous path
		{},                    // step 3: no type match
		{{"src/main.go", 12}}, // step 4: unique function match, own file_line
	}}
	target, ok, err := New(s).Resolve(context.Background(), "main")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Target{Path: "src/main.go", Line: 12}, target)
}

func TestResolve_AmbiguousAtEveryStepReturnsNothing(t *testing.T) {
	onePath := [][]any{{"a"}, {"b"}}
	twoCols := [][]any{{"a", 1}, {"b", 2}}
	s := &scriptedStore{results: [][][]any{onePath, twoCols, twoCols, twoCols, twoCols}}
	_, ok, err := New(s).Resolve(context.Background(), "common")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_QualifiedNameTriesTypesThenFunctions(t *testing.T) {
	s := &scriptedStore{results: [][][]any{
		{},                       // step 2
		{},                       // step 3
		{},                       // step 4
		{},                       // step 5 types qualname
		{{"src/vector.go", 99}}, // step 5 functions qualname, own file_line
	}}
	target, ok, err := New(s).Resolve(context.Background(), "std::make_vector")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Target{Path: "src/vector.go", Line: 99}, target)
}

func TestResolve_NoMatchAnywhereReturnsFalse(t *testing.T) {
	s := &scriptedStore{}
	_, ok, err := New(s).Resolve(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
