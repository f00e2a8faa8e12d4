// Package cjk provides character classification and punctuation tables for
// CJK text structure heuristics. Everything here is stateless and total:
// predicates over runes and short strings, plus read-only lookup tables
// shared by the reflow engine.
package cjk

import "unicode"

// IsCJK reports whether r is a Han ideograph in the BMP ranges used by the
// reflow heuristics: CJK Unified Ideographs, Extension A, and the
// Compatibility Ideographs block.
func IsCJK(r rune) bool {
	return (r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0xF900 && r <= 0xFAFF)
}

// IsDigit reports whether r is an ASCII digit or a full-width digit (０-９).
func IsDigit(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return r >= '０' && r <= '９'
}

// IsAllASCII reports whether every byte of s is in the ASCII range.
func IsAllASCII(s string) bool {
	for _, r := range s {
		if r > 0x7F {
			return false
		}
	}
	return true
}

// IsAllCJK reports whether every character of s is a CJK ideograph.
// If allowWhitespace is true, whitespace is skipped; otherwise any
// whitespace fails the check. Empty and whitespace-only strings are false.
func IsAllCJK(s string, allowWhitespace bool) bool {
	seen := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !allowWhitespace {
				return false
			}
			continue
		}
		seen = true
		if !IsCJK(r) {
			return false
		}
	}
	return seen
}

// IsMostlyCJK reports whether s reads as CJK text: at least one ideograph,
// and no fewer ideographs than ASCII letters. Digits (ASCII or full-width)
// and whitespace are neutral, as is ASCII punctuation.
func IsMostlyCJK(s string) bool {
	var cjkCount, asciiCount int
	for _, r := range s {
		if unicode.IsSpace(r) || IsDigit(r) {
			continue
		}
		if IsCJK(r) {
			cjkCount++
			continue
		}
		if r <= 0x7F && isASCIILetter(r) {
			asciiCount++
		}
	}
	return cjkCount > 0 && cjkCount >= asciiCount
}

// IsMixedCJKASCII reports whether s mixes CJK ideographs with ASCII
// alphanumerics, tolerating only a small set of neutral ASCII punctuation
// (space, hyphen, slash, colon, period). Any other ASCII symbol, or any
// non-CJK non-ASCII character, invalidates the match. Catches Western-style
// catalog codes mixed into CJK labels.
func IsMixedCJKASCII(s string) bool {
	var hasCJK, hasASCII bool
	for _, r := range s {
		switch r {
		case ' ', '-', '/', ':', '.':
			continue
		}

		switch {
		case r <= 0x7F:
			if isASCIILetter(r) || (r >= '0' && r <= '9') {
				hasASCII = true
			} else {
				return false
			}
		case r >= '０' && r <= '９':
			hasASCII = true
		case IsCJK(r):
			hasCJK = true
		default:
			return false
		}

		if hasCJK && hasASCII {
			return true
		}
	}
	return false
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// StripHalfwidthIndent removes leading half-width spaces only, preserving a
// leading ideographic space (U+3000), the conventional CJK paragraph indent.
func StripHalfwidthIndent(s string) string {
	for i, r := range s {
		if r == ' ' {
			continue
		}
		return s[i:]
	}
	return ""
}

// LastNonSpace returns the last non-whitespace rune of s.
func LastNonSpace(s string) (rune, bool) {
	rs := []rune(s)
	for i := len(rs) - 1; i >= 0; i-- {
		if !unicode.IsSpace(rs[i]) {
			return rs[i], true
		}
	}
	return 0, false
}

// LastTwoNonSpace returns the last and second-to-last non-whitespace runes.
func LastTwoNonSpace(s string) (last, prev rune, ok bool) {
	rs := []rune(s)
	i := len(rs) - 1
	for ; i >= 0; i-- {
		if !unicode.IsSpace(rs[i]) {
			last = rs[i]
			break
		}
	}
	if i < 0 {
		return 0, 0, false
	}
	for i--; i >= 0; i-- {
		if !unicode.IsSpace(rs[i]) {
			return last, rs[i], true
		}
	}
	return 0, 0, false
}
