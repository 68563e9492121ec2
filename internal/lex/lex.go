// Package lex implements the small lexical utilities the preprocessor
// leans on repeatedly: comment truncation, separator trimming, backslash
// continuation joining, and bracket/quote-aware substring search.
package lex

import "strings"

// TruncateComment chops a line at the first unquoted, unbracketed '#'.
func TruncateComment(line string) string {
	depth := 0
	inQuote := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			continue
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == '#' && depth == 0:
			return line[:i]
		}
	}
	return line
}

// TrimSeparators trims leading and trailing whitespace (spaces and tabs).
func TrimSeparators(s string) string {
	return strings.Trim(s, " \t")
}

// EndsWithContinuation reports whether the line ends with a backslash
// (escaped or not), meaning the next physical line should be joined to it.
func EndsWithContinuation(line string) bool {
	return strings.HasSuffix(line, "\\")
}

// JoinLines implements the JoinedLine accumulation invariant: if next ends
// in a backslash, the backslash and any whitespace immediately before it
// are stripped, and the remainder is appended to acc with exactly one
// interposed space when acc is non-empty.
func JoinLines(acc, next string) string {
	rest := next
	if EndsWithContinuation(rest) {
		rest = strings.TrimRight(rest[:len(rest)-1], " \t")
	}
	if acc == "" {
		return rest
	}
	return acc + " " + rest
}

// IndexTopLevel returns the index of the first occurrence of sep in s that
// is not inside a "..." quoted region or a [...] bracketed region, or -1
// if none exists.
func IndexTopLevel(s, sep string) int {
	depth := 0
	inQuote := false
	for i := 0; i+len(sep) <= len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			continue
		case c == '[':
			depth++
			continue
		case c == ']':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 && !inQuote && s[i:i+len(sep)] == sep {
			return i
		}
	}
	return -1
}

// SkipBracketedOrQuoted scans s starting at i, which must point at '[' or
// '"', and returns the index one past the matching close. If the region is
// unterminated, it returns len(s).
func SkipBracketedOrQuoted(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	switch s[i] {
	case '"':
		for j := i + 1; j < len(s); j++ {
			if s[j] == '"' {
				return j + 1
			}
		}
		return len(s)
	case '[':
		depth := 1
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return j + 1
				}
			}
		}
		return len(s)
	default:
		return i + 1
	}
}
