// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser([]string{
		"path", "ext", "text", "regexp", "re",
		"function", "function-ref", "function-decl",
		"type", "type-ref", "type-decl",
	})
	require.NoError(t, err)
	return p
}

func TestParse_BareTextTerm(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse("open file", true)
	require.NoError(t, err)
	assert.Equal(t, []Term{
		{Kind: Text, Arg: "open", CaseSensitive: true},
		{Kind: Text, Arg: "file", CaseSensitive: true},
	}, ts.Get(Text))
}

func TestParse_FilteredTerm(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse("function:main", false)
	require.NoError(t, err)
	assert.Equal(t, []Term{{Kind: "function", Arg: "main"}}, ts.Get("function"))
}

// Law 2: -kind:x <-> negated, +kind:x <-> qualified, -+kind:x <-> both.
func TestParse_NegationAndQualification(t *testing.T) {
	p := testParser(t)

	ts, err := p.Parse("-path:test", false)
	require.NoError(t, err)
	require.Len(t, ts.Get("path"), 1)
	assert.True(t, ts.Get("path")[0].Negated)
	assert.False(t, ts.Get("path")[0].Qualified)

	ts, err = p.Parse("+function:N::f", false)
	require.NoError(t, err)
	require.Len(t, ts.Get("function"), 1)
	assert.False(t, ts.Get("function")[0].Negated)
	assert.True(t, ts.Get("function")[0].Qualified)
	assert.Equal(t, "N::f", ts.Get("function")[0].Arg)

	ts, err = p.Parse("-+type:Foo", false)
	require.NoError(t, err)
	require.Len(t, ts.Get("type"), 1)
	assert.True(t, ts.Get("type")[0].Negated)
	assert.True(t, ts.Get("type")[0].Qualified)
}

func TestParse_LongestFilterNameWins(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse("type-ref:Foo", false)
	require.NoError(t, err)
	assert.Len(t, ts.Get("type-ref"), 1)
	assert.Empty(t, ts.Get("type"))
}

func TestParse_QuotedText(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse(`regexp:"(three|3) mice"`, false)
	require.NoError(t, err)
	require.Len(t, ts.Get("regexp"), 1)
	assert.Equal(t, "(three|3) mice", ts.Get("regexp")[0].Arg)
}

// Law 3: an unclosed quote runs to EOL, with nothing lost or truncated
// from the front.
func TestParse_UnclosedQuoteRunsToEOL(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse(`"hi there`, false)
	require.NoError(t, err)
	require.Len(t, ts.Get(Text), 1)
	assert.Equal(t, "hi there", ts.Get(Text)[0].Arg)
}

func TestParse_EscapedQuoteBecomesLiteral(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse(`"say \"hi\""`, false)
	require.NoError(t, err)
	require.Len(t, ts.Get(Text), 1)
	assert.Equal(t, `say "hi"`, ts.Get(Text)[0].Arg)
}

// Law 1: parsing is deterministic for a given input.
func TestParse_Deterministic(t *testing.T) {
	p := testParser(t)
	const q = `function:main -path:test "free text"`
	first, err := p.Parse(q, false)
	require.NoError(t, err)
	second, err := p.Parse(q, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_DashIsLiteralInsideArgument(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse("type-ref:foo-bar", false)
	require.NoError(t, err)
	require.Len(t, ts.Get("type-ref"), 1)
	assert.Equal(t, "foo-bar", ts.Get("type-ref")[0].Arg)
}

func TestParse_LoneDashIsLiteralText(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse("- foo", false)
	require.NoError(t, err)
	assert.Equal(t, []Term{
		{Kind: Text, Arg: "-"},
		{Kind: Text, Arg: "foo"},
	}, ts.Get(Text))
}

func TestParse_EmptyQuery(t *testing.T) {
	p := testParser(t)
	ts, err := p.Parse("   ", false)
	require.NoError(t, err)
	assert.Empty(t, ts)
}

func TestSingleTextTerm(t *testing.T) {
	p := testParser(t)

	ts, err := p.Parse("foo", false)
	require.NoError(t, err)
	arg, ok := ts.SingleTextTerm()
	assert.True(t, ok)
	assert.Equal(t, "foo", arg)

	ts, err = p.Parse("foo bar", false)
	require.NoError(t, err)
	_, ok = ts.SingleTextTerm()
	assert.False(t, ok)

	ts, err = p.Parse("function:main", false)
	require.NoError(t, err)
	_, ok = ts.SingleTextTerm()
	assert.False(t, ok)
}
