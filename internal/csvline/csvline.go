// Package csvline splits a single deck record line into fields.
//
// The format is looser than RFC 4180: a double quote only toggles quoted mode
// and is never emitted, doubled quotes are not an escape, and unbalanced quotes
// are not an error.
package csvline

import "strings"

// ParseLine splits line on commas that are outside quoted sections. Every
// field is trimmed of surrounding whitespace. The final field is always
// emitted, so an empty line yields a single empty field.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}
