package cjk

import (
	"strings"
	"unicode"
)

// EndsWithSentenceBoundary reports whether s already forms a complete
// sentence-like unit. It accepts the strong terminal marks, tolerates the
// OCR artifacts ASCII '.' and ':' at the true end of mostly-CJK text, treats
// a quote or bracket closer as terminal when the mark before it is, accepts
// a trailing colon in mostly-CJK text as a weak boundary (dialogue often
// continues on the next line), and accepts a trailing ellipsis.
//
// A bare bracket closer is NOT a boundary on its own; that splits inside
// parenthetical asides like （亦作肥）.
func EndsWithSentenceBoundary(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	rs := []rune(s)
	lastIdx, prevIdx := lastTwoNonSpaceIdx(rs)
	if lastIdx < 0 {
		return false
	}
	last := rs[lastIdx]
	if prevIdx < 0 {
		return IsStrongSentenceEnd(last)
	}
	prev := rs[prevIdx]

	if IsStrongSentenceEnd(last) {
		return true
	}

	// OCR '.' / ':' at end of line, preceded by an ideograph.
	if (last == '.' || last == ':') && isOCRPunctAtLineEnd(rs, lastIdx) {
		return true
	}

	// Closer after a strong end, covering ”。 and the OCR shapes .」 / .）.
	if IsDialogueCloser(last) || IsAllowedPostfixCloser(last) {
		if IsStrongSentenceEnd(prev) {
			return true
		}
		if prev == '.' && isOCRPunctBeforeClosers(rs, prevIdx) {
			return true
		}
	}

	// Weak boundary: trailing colon in CJK narration ("他说：").
	if IsColonLike(last) && IsMostlyCJK(s) {
		return true
	}

	if EndsWithEllipsis(s) {
		return true
	}

	return false
}

func lastTwoNonSpaceIdx(rs []rune) (last, prev int) {
	last, prev = -1, -1
	for i := len(rs) - 1; i >= 0; i-- {
		if unicode.IsSpace(rs[i]) {
			continue
		}
		if last < 0 {
			last = i
			continue
		}
		prev = i
		return
	}
	return
}

// isOCRPunctAtLineEnd: the mark sits at the true end of the line (only
// whitespace after it) and follows an ideograph in mostly-CJK text.
func isOCRPunctAtLineEnd(rs []rune, idx int) bool {
	if idx == 0 {
		return false
	}
	for _, r := range rs[idx+1:] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return IsCJK(rs[idx-1]) && IsMostlyCJK(string(rs))
}

// isOCRPunctBeforeClosers: relaxed form allowing trailing quote/bracket
// closers after the mark, so “.” / .」 / .） count as boundaries.
func isOCRPunctBeforeClosers(rs []rune, idx int) bool {
	if idx == 0 {
		return false
	}
	for _, r := range rs[idx+1:] {
		if unicode.IsSpace(r) || IsDialogueCloser(r) || IsBracketCloser(r) {
			continue
		}
		return false
	}
	return IsCJK(rs[idx-1]) && IsMostlyCJK(string(rs))
}

// HasUnclosedBracket reports whether s contains bracket structure that is
// not safely closed. The scan is deliberately pessimistic: a stray closer or
// an opener/closer type mismatch counts as unclosed, so weak boundaries
// never flush inside text like （...... spanning pages.
func HasUnclosedBracket(s string) bool {
	var stack []rune
	seen := false

	for _, r := range s {
		if IsBracketOpener(r) {
			seen = true
			stack = append(stack, r)
			continue
		}
		if IsBracketCloser(r) {
			seen = true
			if len(stack) == 0 {
				return true
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !IsMatchingBracket(open, r) {
				return true
			}
		}
	}

	return seen && len(stack) > 0
}

// EndsWithCJKBracketBoundary reports whether s is a bracket-wrapped unit
// like （完）, 【番外】 or 《後記》: it starts with an opener, ends with the
// matching closer, reads as CJK (rejecting Latin asides like "(test)"), and
// that bracket type is depth-balanced across the whole string so an
// OCR-truncated inner close is not mistaken for the outer one.
func EndsWithCJKBracketBoundary(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}

	rs := []rune(t)
	open := rs[0]
	close := rs[len(rs)-1]

	if !IsMatchingBracket(open, close) {
		return false
	}
	if !IsMostlyCJK(t) {
		return false
	}

	depth := 0
	for _, r := range rs {
		switch r {
		case open:
			depth++
		case close:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// IsVisualDividerLine reports whether every non-whitespace character of s is
// a divider glyph (box drawing, -=_~～, asterisks and stars) and there are
// at least three of them.
func IsVisualDividerLine(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case r >= 0x2500 && r <= 0x257F:
		case r == '-' || r == '=' || r == '_' || r == '~' || r == '～':
		case r == '*' || r == '＊' || r == '★' || r == '☆':
		default:
			return false
		}
	}
	return total >= 3
}
