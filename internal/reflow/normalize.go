package reflow

import "strings"

const (
	// Phrase collapsing: a whitespace-delimited token sequence must repeat
	// at least this many times before it is folded to one occurrence.
	minPhraseRepeats = 3
	maxPhraseLen     = 8

	// Token collapsing: a single token that is an exact repetition of a
	// short unit (OCR/style-layer duplication) is folded to one unit.
	minTokenUnit  = 4
	maxTokenUnit  = 10
	maxTokenRunes = 200
)

// collapseRepeatedSegments removes style-layer duplication from one line:
// first a token sequence repeated three or more times consecutively is
// folded to a single occurrence, then each remaining token that is itself a
// repetition of a 4–10 character unit is folded to one unit. This runs
// before heading and metadata classification, since duplicated decorative
// text defeats the length-based heuristics.
func collapseRepeatedSegments(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return line
	}

	collapsed := collapsePhraseRepeats(parts)
	for i, tok := range collapsed {
		collapsed[i] = collapseTokenRepeat(tok)
	}

	return strings.Join(collapsed, " ")
}

// collapsePhraseRepeats folds the first run of a phrase (1–8 tokens)
// repeated 3+ times down to one occurrence.
func collapsePhraseRepeats(parts []string) []string {
	n := len(parts)
	if n < minPhraseRepeats {
		return parts
	}

	for start := 0; start < n; start++ {
		for phraseLen := 1; phraseLen <= maxPhraseLen; phraseLen++ {
			if start+phraseLen > n {
				break
			}

			count := 1
			for {
				next := start + count*phraseLen
				if next+phraseLen > n {
					break
				}
				if !equalRange(parts, start, next, phraseLen) {
					break
				}
				count++
			}

			if count >= minPhraseRepeats {
				result := make([]string, 0, n-(count-1)*phraseLen)
				result = append(result, parts[:start]...)
				result = append(result, parts[start:start+phraseLen]...)
				result = append(result, parts[start+count*phraseLen:]...)
				return result
			}
		}
	}

	return parts
}

func equalRange(parts []string, a, b, n int) bool {
	for k := 0; k < n; k++ {
		if parts[a+k] != parts[b+k] {
			return false
		}
	}
	return true
}

// collapseTokenRepeat folds a token like "购物帐单购物帐单购物帐单" down to
// its repeating unit.
func collapseTokenRepeat(token string) string {
	rs := []rune(token)
	length := len(rs)
	if length < minTokenUnit || length > maxTokenRunes {
		return token
	}

	for unitLen := minTokenUnit; unitLen <= maxTokenUnit; unitLen++ {
		if unitLen > length/3 {
			break
		}
		if length%unitLen != 0 {
			continue
		}

		allMatch := true
		for i := unitLen; i < length; i += unitLen {
			if string(rs[i:i+unitLen]) != string(rs[:unitLen]) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return string(rs[:unitLen])
		}
	}

	return token
}
