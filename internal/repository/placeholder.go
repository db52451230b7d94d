package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

const paramPrefix = "param"

// placeholderOffsets returns the byte offsets of every bare '?' in query, in
// order of appearance. Question marks inside string literals, quoted
// identifiers, dollar-quoted bodies and comments are not placeholders.
func placeholderOffsets(query string) []int {
	var offsets []int
	n := len(query)

	for i := 0; i < n; i++ {
		switch c := query[i]; {
		case c == '\'' || c == '"':
			i = skipQuoted(query, i, c, c == '\'' && escapeString(query, i))
		case c == '-' && i+1 < n && query[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				return offsets
			}
			i += end
		case c == '/' && i+1 < n && query[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				return offsets
			}
			i += end + 3
		case c == '$':
			if tag, ok := dollarTag(query[i:]); ok {
				end := strings.Index(query[i+len(tag):], tag)
				if end < 0 {
					return offsets
				}
				i += len(tag) + end + len(tag) - 1
			}
		case c == '?':
			offsets = append(offsets, i)
		}
	}

	return offsets
}

// skipQuoted returns the offset of the quote closing the literal opened at
// start. A doubled quote is an escaped quote, not a terminator. With
// backslash set, a backslash also escapes the byte after it.
func skipQuoted(query string, start int, quote byte, backslash bool) int {
	for i := start + 1; i < len(query); i++ {
		if backslash && query[i] == '\\' {
			i++
			continue
		}
		if query[i] != quote {
			continue
		}
		if i+1 < len(query) && query[i+1] == quote {
			i++
			continue
		}
		return i
	}
	return len(query) - 1
}

// escapeString reports whether the quote at start opens an E'...' literal:
// an E prefix that is not the tail of a longer identifier.
func escapeString(query string, start int) bool {
	if start == 0 || (query[start-1] != 'E' && query[start-1] != 'e') {
		return false
	}
	if start == 1 {
		return true
	}
	return !isIdentByte(query[start-2])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c >= 0x80
}

// dollarTag reports whether s opens a dollar-quoted body ($$ or $tag$) and
// returns the full opening tag. Positional parameters like $1 are not tags.
func dollarTag(s string) (string, bool) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$':
			return s[:i+1], true
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 1:
		default:
			return "", false
		}
	}
	return "", false
}

// Bind rewrites the positional placeholders of query into pgx named
// parameters (@param0, @param1, ...) and registers args[n] under paramN.
// The placeholder count must match len(args).
func Bind(query string, args []any) (string, pgx.NamedArgs, error) {
	offsets := placeholderOffsets(query)
	if len(offsets) != len(args) {
		return "", nil, fmt.Errorf("%w: %d placeholders, %d arguments", ErrArgCount, len(offsets), len(args))
	}
	if len(offsets) == 0 {
		return query, nil, nil
	}

	named := make(pgx.NamedArgs, len(args))
	var b strings.Builder
	b.Grow(len(query) + len(offsets)*(len(paramPrefix)+2))

	prev := 0
	for idx, off := range offsets {
		name := paramPrefix + strconv.Itoa(idx)
		b.WriteString(query[prev:off])
		b.WriteByte('@')
		b.WriteString(name)
		named[name] = args[idx]
		prev = off + 1
	}
	b.WriteString(query[prev:])

	return b.String(), named, nil
}
