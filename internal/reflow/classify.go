package reflow

import (
	"strings"
	"unicode"

	"github.com/papercrane/reflow/internal/cjk"
)

// lineClass is the structural category of a normalized line, computed once
// per line so the merge-decision table stays auditable.
type lineClass int

const (
	classText lineClass = iota
	classPageMarker
	classMetadata
	classTitleHeading
	classShortHeading
)

// classify tags a normalized line. probe is the line with left indentation
// removed; line is the full normalized text. Visual dividers are detected
// earlier, before repeated-content collapsing, and never reach here.
func classify(probe, line string) lineClass {
	switch {
	case isPageMarker(probe):
		return classPageMarker
	case isMetadataLine(line):
		return classMetadata
	case isTitleHeading(probe):
		return classTitleHeading
	case isHeadingLike(line):
		return classShortHeading
	}
	return classText
}

func isPageMarker(s string) bool {
	return strings.HasPrefix(s, "=== ") && strings.HasSuffix(s, "===")
}

// isMetadataLine matches front-matter key/value lines like 書名：三體.
// The key must be a known label, the separator must sit within the first
// ten characters, and the value must exist and not open a dialogue (which
// would indicate narration such as 他说：「...」).
func isMetadataLine(line string) bool {
	s := strings.TrimSpace(line)
	rs := []rune(s)
	if len(rs) == 0 || len(rs) > 30 {
		return false
	}

	sepIdx := -1
	for i, r := range rs {
		if cjk.MetadataSeparators[r] {
			if i == 0 || i > 10 {
				return false
			}
			sepIdx = i
			break
		}
	}
	if sepIdx < 0 {
		return false
	}

	key := strings.TrimSpace(string(rs[:sepIdx]))
	if !cjk.MetadataKeys[key] {
		return false
	}

	for _, r := range rs[sepIdx+1:] {
		if unicode.IsSpace(r) {
			continue
		}
		return !cjk.IsDialogueOpener(r)
	}
	return false
}

// isTitleHeading matches strong chapter/section headings that always stand
// alone: known keyword prefixes, bonus-chapter lines, 卷/章 + numeral
// openers, and 第…章-style markers.
func isTitleHeading(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	rs := []rune(s)
	if len(rs) > 50 {
		return false
	}

	// Sentence-like lines are never headings.
	for _, r := range rs {
		if cjk.HeadingRejectPunct[r] {
			return false
		}
	}

	// 番外 allows a short subtitle tail; the other keywords match as plain
	// prefixes.
	if rest, ok := strings.CutPrefix(s, "番外"); ok {
		return len([]rune(rest)) <= 15
	}
	for _, kw := range cjk.HeadingKeywords {
		if strings.HasPrefix(s, kw) {
			return true
		}
	}

	// 卷一 / 章十 openers.
	if len(rs) >= 2 && (rs[0] == '卷' || rs[0] == '章') && cjk.CJKNumerals[rs[1]] && len(rs) <= 17 {
		return true
	}

	// 第…章/节/部/卷/回: the marker must appear within six characters of a
	// 第 that itself sits in the first ten, must not be followed by a
	// sub-volume glyph, and leaves at most twenty trailing characters.
	for i := 0; i < len(rs); i++ {
		if rs[i] != '第' || i > 10 {
			continue
		}
		for j := i + 1; j < len(rs); j++ {
			if j-i > 6 {
				break
			}
			if !cjk.ChapterMarkers[rs[j]] {
				continue
			}
			if j+1 < len(rs) && cjk.InvalidAfterMarker[rs[j+1]] {
				return false
			}
			if len(rs)-(j+1) <= 20 {
				return true
			}
		}
	}

	return false
}

// isChapterEndingLine matches short lines whose last character (after any
// trailing run of closing brackets) is a chapter marker, e.g. 第十章】.
func isChapterEndingLine(s string) bool {
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) == 0 || len(rs) > 15 {
		return false
	}

	end := len(rs)
	for end > 0 && cjk.ChapterTrailBrackets[rs[end-1]] {
		end--
	}
	if end == 0 {
		return false
	}
	return cjk.ChapterMarkers[rs[end-1]]
}

// isHeadingLike matches short label-like lines. The classification is
// provisional: whether such a line actually starts a new segment depends on
// the state of the paragraph buffer.
func isHeadingLike(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	if isPageMarker(s) {
		return false
	}
	if cjk.HasUnclosedBracket(s) {
		return false
	}

	rs := []rune(s)

	// A line fully wrapped in one matching bracket pair with a real CJK
	// interior is a heading: （第一章）, 【序章】, 《后记》.
	if len(rs) >= 2 && cjk.IsMatchingBracket(rs[0], rs[len(rs)-1]) {
		inner := string(rs[1 : len(rs)-1])
		if strings.TrimSpace(inner) != "" && cjk.IsMostlyCJK(inner) {
			return true
		}
	}

	length := len(rs)
	maxLen := 8
	if cjk.IsAllASCII(s) || cjk.IsMixedCJKASCII(s) {
		maxLen = 16
	}

	last := rs[length-1]
	if cjk.IsColonLike(last) && length < maxLen {
		body := string(rs[:length-1])
		if cjk.IsAllCJK(body, false) {
			return true
		}
	}
	if cjk.IsAllowedPostfixCloser(last) && !cjk.ContainsCommaLike(s) {
		return true
	}
	if cjk.PunctEnd[last] {
		return false
	}

	if cjk.ContainsCommaLike(s) {
		return false
	}

	if length <= maxLen {
		for _, r := range rs {
			if cjk.PunctEnd[r] {
				return false
			}
		}

		var hasNonASCII, hasLetter, hasNonWS bool
		allDigits := true
		allASCII := true

		for _, r := range rs {
			if unicode.IsSpace(r) {
				continue
			}
			hasNonWS = true
			if !cjk.IsDigit(r) {
				allDigits = false
			}
			if r > 0x7F {
				hasNonASCII = true
				allASCII = false
			} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				hasLetter = true
			}
		}

		if hasNonWS && allDigits {
			return true
		}
		if hasNonASCII {
			return true
		}
		if allASCII && hasLetter {
			return true
		}
	}

	return false
}
