package repository

import (
	"strings"
)

// The skills columns are Postgres text[] values. They cross the driver
// boundary as array literals ("{go,\"c++\"}"), and this file is the only
// place that literal form is parsed or produced, so a malformed value is
// normalized in exactly one spot.

// parseTextArray converts a Postgres text[] literal into a string slice.
// Unparseable input yields an empty slice rather than an error; the column
// has a '{}' default so a bad value is always a data problem, not a request
// problem.
func parseTextArray(literal string) []string {
	literal = strings.TrimSpace(literal)
	if len(literal) < 2 || literal[0] != '{' || literal[len(literal)-1] != '}' {
		return []string{}
	}
	inner := literal[1 : len(literal)-1]
	if inner == "" {
		return []string{}
	}

	var (
		out      []string
		sb       strings.Builder
		inQuotes bool
		escaped  bool
	)
	flush := func() {
		elem := sb.String()
		sb.Reset()
		if elem == "NULL" {
			elem = ""
		}
		out = append(out, elem)
	}
	for _, r := range inner {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return out
}

// formatTextArray converts a string slice into a Postgres text[] literal,
// quoting every element so commas, braces, and quotes survive the trip.
func formatTextArray(elems []string) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		e = strings.ReplaceAll(e, `\`, `\\`)
		e = strings.ReplaceAll(e, `"`, `\"`)
		sb.WriteString(e)
		sb.WriteByte('"')
	}
	sb.WriteByte('}')
	return sb.String()
}
