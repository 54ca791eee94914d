// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package textenc decodes a line's raw bytes using its declared
// encoding (spec §4.H) before the result package slices and
// highlights it, and re-encodes highlighted output back to bytes.
//
// Source files indexed by this system are overwhelmingly UTF-8, with
// Latin-1 (ISO-8859-1) the only encoding seen often enough in the wild
// to be worth a real decode path; any other declared encoding is
// rejected rather than guessed at.
package textenc

import (
	"strings"
	"unicode/utf8"

	"github.com/codecrumbs/search/internal/query/queryerr"
)

// Name is a declared line encoding, as stored in the files table.
type Name string

const (
	UTF8   Name = "utf-8"
	Latin1 Name = "iso-8859-1"
)

// Canonical lowercases and trims an encoding name the way Postgres's
// column value arrives, and maps empty to UTF8 (the default a freshly
// migrated files row carries, per migrations/000001_schema.up.sql).
func Canonical(raw string) Name {
	n := Name(strings.ToLower(strings.TrimSpace(raw)))
	if n == "" {
		return UTF8
	}
	return n
}

// Decode turns raw line bytes into a Go string ready for byte-offset
// slicing by the highlight package. UTF-8 input is validated and
// converted unchanged; Latin-1 input is transcoded byte-for-byte, since every
// Latin-1 code point maps directly onto the identically numbered
// Unicode code point. Any other declared encoding, or invalid UTF-8,
// is rejected with a queryerr.Encodingf failure tagged with the
// line's id, per spec §7 — there's no ecosystem charset table wired
// into this module to decode it correctly, and guessing would
// silently corrupt highlighted output.
func Decode(raw []byte, enc Name, lineID int64) (string, error) {
	switch enc {
	case UTF8, "":
		if !utf8.Valid(raw) {
			return "", queryerr.Encodingf(lineID, "line declared utf-8 but is not valid UTF-8")
		}
		return string(raw), nil
	case Latin1:
		var b strings.Builder
		b.Grow(len(raw) * 2)
		for _, c := range raw {
			b.WriteRune(rune(c))
		}
		return b.String(), nil
	default:
		return "", queryerr.Encodingf(lineID, "unsupported line encoding %q", enc)
	}
}

// Encode reverses Decode for output: UTF-8 passes through unchanged,
// Latin-1 drops each rune back to its single low byte (callers only
// ever pass Decode's own output back in, so every rune is <= 0xFF).
func Encode(s string, enc Name, lineID int64) ([]byte, error) {
	switch enc {
	case UTF8, "":
		return []byte(s), nil
	case Latin1:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xFF {
				return nil, queryerr.Encodingf(lineID, "rune %U has no iso-8859-1 representation", r)
			}
			out = append(out, byte(r))
		}
		return out, nil
	default:
		return nil, queryerr.Encodingf(lineID, "unsupported line encoding %q", enc)
	}
}
