// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package lang

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/oops"

	"github.com/codecrumbs/search/internal/query/queryerr"
)

// Parser turns a raw query string into a TermSet. It is built once at
// startup from the registered filter kind names: the FILTER alternation
// in the grammar has to come from the registry, because "unknown kind"
// is supposed to be structurally impossible rather than a runtime check
// (invariant 1). That dynamic alternation, plus the quote regex that
// tolerates an unclosed quote, is why this is hand-written recursive
// descent instead of a struct-tag grammar: see DESIGN.md.
type Parser struct {
	filterRe *regexp.Regexp
}

// doubleQuoted and singleQuoted are ported verbatim (translated from
// Python's named groups to Go's) from dxr's query_grammar. They match a
// quote, its content, and either a closing "quote then space", a
// closing "quote then EOF", or plain EOF — so a query can be evaluated
// while a quote is still open.
var (
	doubleQuoted = regexp.MustCompile(`^"((?:[^"\\]*(?:\\"|\\|"[^ ])*)*)(?:"(?: |$)|$)`)
	singleQuoted = regexp.MustCompile(`^'((?:[^'\\]*(?:\\'|\\|'[^ ])*)*)(?:'(?: |$)|$)`)
	bareText     = regexp.MustCompile(`^[^ ]+`)
)

// NewParser builds a Parser whose FILTER alternation matches exactly
// the given kind names, longest first so that no name is prematurely
// matched as a prefix of a longer one (e.g. "type" before "type-ref").
func NewParser(kindNames []string) (*Parser, error) {
	names := make([]string, len(kindNames))
	copy(names, kindNames)
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	alts := make([]string, len(names))
	for i, n := range names {
		alts[i] = regexp.QuoteMeta(n)
	}

	filterRe, err := regexp.Compile("^(?:" + strings.Join(alts, "|") + ")")
	if err != nil {
		return nil, oops.Code(queryerr.MalformedQuery).Wrapf(err, "compiling filter alternation")
	}
	return &Parser{filterRe: filterRe}, nil
}

// Parse parses querystr into a TermSet. caseSensitive is copied onto
// every Term per spec §3 ("set uniformly from a query-wide flag").
func (p *Parser) Parse(querystr string, caseSensitive bool) (TermSet, error) {
	c := &cursor{s: querystr}
	c.skipSpace()

	ts := TermSet{}
	for !c.atEnd() {
		term, ok := p.parseTerm(c)
		if !ok {
			return nil, queryerr.Malformedf(querystr, "could not parse query at byte %d", c.pos)
		}
		term.CaseSensitive = caseSensitive
		ts.add(term)
	}
	return ts, nil
}

// cursor walks a query string byte by byte. It never needs to back up
// more than one term, so plain integer positions (rather than a rune
// reader) suffice — the grammar itself is defined over bytes.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) atEnd() bool  { return c.pos >= len(c.s) }
func (c *cursor) rest() string { return c.s[c.pos:] }

func (c *cursor) peek() byte {
	if c.atEnd() {
		return 0
	}
	return c.s[c.pos]
}

// skipSpace consumes the grammar's "_" rule: zero or more spaces or tabs.
func (c *cursor) skipSpace() {
	for c.pos < len(c.s) && (c.s[c.pos] == ' ' || c.s[c.pos] == '\t') {
		c.pos++
	}
}

// parseTerm implements "term := not_term / positive_term".
func (p *Parser) parseTerm(c *cursor) (Term, bool) {
	if c.peek() == '-' {
		save := c.pos
		c.pos++
		if t, ok := p.parsePositiveTerm(c); ok {
			t.Negated = true
			return t, true
		}
		// positive_term failed right after consuming '-'; backtrack so
		// the '-' can be reclaimed as ordinary bare text below.
		c.pos = save
	}
	return p.parsePositiveTerm(c)
}

// parsePositiveTerm implements "positive_term := filtered_term / text".
// filtered_term is "maybe_plus FILTER ':' text"; its maybe_plus only
// counts if the whole filtered_term goes on to match, mirroring PEG
// backtracking — a lone '+' with no FILTER ':' after it falls through
// to plain bare text, '+' included.
func (p *Parser) parsePositiveTerm(c *cursor) (Term, bool) {
	if c.atEnd() || c.peek() == ' ' || c.peek() == '\t' {
		return Term{}, false
	}

	afterPlus := c.pos
	qualified := false
	if c.peek() == '+' {
		afterPlus = c.pos + 1
		qualified = true
	}

	if afterPlus < len(c.s) {
		if m := p.filterRe.FindString(c.s[afterPlus:]); m != "" {
			colonPos := afterPlus + len(m)
			if colonPos < len(c.s) && c.s[colonPos] == ':' {
				c.pos = colonPos + 1
				arg, ok := parseText(c)
				if !ok {
					return Term{}, false
				}
				return Term{Kind: m, Arg: arg, Qualified: qualified}, true
			}
		}
	}

	// Not a filtered_term: fall back to plain text, '+' included.
	arg, ok := parseText(c)
	if !ok {
		return Term{}, false
	}
	return Term{Kind: Text, Arg: arg}, true
}

// parseText implements "text := (double_quoted / single_quoted / bare) _".
func parseText(c *cursor) (string, bool) {
	var arg string

	switch c.peek() {
	case '"':
		m := doubleQuoted.FindStringSubmatchIndex(c.rest())
		if m == nil {
			return "", false
		}
		arg = strings.ReplaceAll(c.rest()[m[2]:m[3]], `\"`, `"`)
		c.pos += m[1]
	case '\'':
		m := singleQuoted.FindStringSubmatchIndex(c.rest())
		if m == nil {
			return "", false
		}
		arg = strings.ReplaceAll(c.rest()[m[2]:m[3]], `\'`, `'`)
		c.pos += m[1]
	default:
		m := bareText.FindString(c.rest())
		if m == "" {
			return "", false
		}
		arg = m
		c.pos += len(m)
	}

	c.skipSpace()
	return arg, true
}
