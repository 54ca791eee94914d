// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package queryerr defines the error kinds the query core raises and the
// predicates callers use to tell them apart, the way the teacher's
// policy store distinguishes POLICY_NOT_FOUND from other oops codes.
package queryerr

import "github.com/samber/oops"

// Error kind codes. Each is reported via oops.Code so callers can recover
// it with Is without caring how deep the error was wrapped.
const (
	MalformedQuery = "MALFORMED_QUERY"
	BadPattern     = "BAD_PATTERN"
	StoreError     = "STORE_ERROR"
	EncodingError  = "ENCODING_ERROR"
)

// Is reports whether err is an oops error carrying the given code.
func Is(err error, code string) bool {
	if err == nil {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	return oopsErr.Code() == code
}

// Code returns err's oops code, or "" if err is nil or isn't one of
// this package's coded failures. Callers use this to label metrics by
// error kind without a long Is chain.
func Code(err error) string {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	return oopsErr.Code()
}

// Malformed wraps err as a MalformedQuery failure.
func Malformed(err error, query string) error {
	return oops.Code(MalformedQuery).With("query", query).Wrap(err)
}

// Malformedf builds a MalformedQuery failure from a format string.
func Malformedf(query, format string, args ...any) error {
	return oops.Code(MalformedQuery).With("query", query).Errorf(format, args...)
}

// BadPatternf builds a BadPattern failure for a single offending term.
func BadPatternf(term, format string, args ...any) error {
	return oops.Code(BadPattern).With("term", term).Errorf(format, args...)
}

// Store wraps err as a StoreError failure.
func Store(err error, op string) error {
	return oops.Code(StoreError).With("op", op).Wrap(err)
}

// Encodingf builds an EncodingError failure for a single offending line.
func Encodingf(lineID int64, format string, args ...any) error {
	return oops.Code(EncodingError).With("line_id", lineID).Errorf(format, args...)
}
