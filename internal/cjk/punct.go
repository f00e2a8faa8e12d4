package cjk

import "strings"

// PunctEnd is the broad set of punctuation that can close a logical unit.
// Used by heading heuristics and other loose checks; it is deliberately wider
// than the strong sentence enders and must not be used as a strong boundary
// signal on its own.
var PunctEnd = map[rune]bool{
	'。': true, '！': true, '？': true, '；': true, '：': true,
	'…': true, '—': true, '”': true, '」': true, '’': true,
	'』': true, '）': true, '】': true, '》': true, '〗': true,
	'〔': true, '〕': true, '〉': true, '⟩': true, '］': true,
	'｝': true, '＞': true, '.': true, '?': true, '!': true,
}

// IsClauseOrEndPunct reports whether r closes a clause or sentence.
func IsClauseOrEndPunct(r rune) bool {
	return PunctEnd[r]
}

// IsStrongSentenceEnd reports whether r is a strong terminal mark.
func IsStrongSentenceEnd(r rune) bool {
	switch r {
	case '。', '！', '？', '!', '?':
		return true
	}
	return false
}

// IsCommaLike reports whether r separates clauses the way a comma does.
func IsCommaLike(r rune) bool {
	switch r {
	case '，', ',', '、':
		return true
	}
	return false
}

// ContainsCommaLike reports whether s contains any comma-like rune.
func ContainsCommaLike(s string) bool {
	return strings.ContainsAny(s, "，,、")
}

// IsColonLike reports whether r is an ASCII or full-width colon.
func IsColonLike(r rune) bool {
	return r == '：' || r == ':'
}

// EndsWithColonLike reports whether s, ignoring trailing whitespace, ends
// with a colon.
func EndsWithColonLike(s string) bool {
	t := strings.TrimRight(s, " \t　")
	return strings.HasSuffix(t, "：") || strings.HasSuffix(t, ":")
}

// EndsWithEllipsis reports whether s ends in a CJK or ASCII ellipsis.
func EndsWithEllipsis(s string) bool {
	t := strings.TrimRight(s, " \t　")
	return strings.HasSuffix(t, "…") || strings.HasSuffix(t, "...") || strings.HasSuffix(t, "..")
}

// DialogueOpeners are quotation glyphs that begin spoken dialogue.
var DialogueOpeners = map[rune]bool{
	'“': true, '‘': true, '「': true, '『': true, '﹁': true, '﹃': true,
}

// DialogueClosers are quotation glyphs that end spoken dialogue, including
// compatibility variants occasionally produced by OCR.
var DialogueClosers = map[rune]bool{
	'”': true, '’': true, '」': true, '』': true, '﹂': true, '﹄': true,
	'〞': true, '〟': true,
}

// IsDialogueOpener reports whether r opens a dialogue quotation.
func IsDialogueOpener(r rune) bool { return DialogueOpeners[r] }

// IsDialogueCloser reports whether r closes a dialogue quotation.
func IsDialogueCloser(r rune) bool { return DialogueClosers[r] }

// BeginsWithDialogueOpener reports whether the first character of s, after
// half-width and ideographic indentation, opens a dialogue quotation.
func BeginsWithDialogueOpener(s string) bool {
	t := strings.TrimLeft(s, " 　")
	for _, r := range t {
		return IsDialogueOpener(r)
	}
	return false
}

// BracketPairs maps each opening bracket to its matching closer, covering
// ASCII, full-width, and CJK publishing forms.
var BracketPairs = map[rune]rune{
	'（': '）',
	'(': ')',
	'［': '］',
	'[': ']',
	'｛': '｝',
	'{': '}',
	'＜': '＞',
	'<': '>',
	'⟨': '⟩',
	'〈': '〉',
	'【': '】',
	'《': '》',
	'〔': '〕',
	'〖': '〗',
}

// bracketClosers is the reverse index of BracketPairs.
var bracketClosers = func() map[rune]bool {
	m := make(map[rune]bool, len(BracketPairs))
	for _, close := range BracketPairs {
		m[close] = true
	}
	return m
}()

// IsBracketOpener reports whether r opens a known bracket pair.
func IsBracketOpener(r rune) bool {
	_, ok := BracketPairs[r]
	return ok
}

// IsBracketCloser reports whether r closes a known bracket pair.
func IsBracketCloser(r rune) bool {
	return bracketClosers[r]
}

// IsMatchingBracket reports whether open and close form a known pair.
func IsMatchingBracket(open, close rune) bool {
	c, ok := BracketPairs[open]
	return ok && c == close
}

// IsAllowedPostfixCloser reports whether r is a closing parenthesis allowed
// to trail a heading-like label.
func IsAllowedPostfixCloser(r rune) bool {
	return r == '）' || r == ')'
}

// EndsWithAllowedPostfixCloser reports whether the last non-whitespace rune
// of s is an allowed postfix closer.
func EndsWithAllowedPostfixCloser(s string) bool {
	r, ok := LastNonSpace(s)
	return ok && IsAllowedPostfixCloser(r)
}

// ChapterMarkers are the glyphs that terminate a chapter designator.
var ChapterMarkers = map[rune]bool{
	'章': true, '节': true, '部': true, '卷': true, '節': true, '回': true,
}

// InvalidAfterMarker are suffix glyphs that demote a chapter marker to a
// sub-volume or omnibus designation (第三部分, 第一卷合集).
var InvalidAfterMarker = map[rune]bool{'分': true, '合': true}

// HeadingRejectPunct disqualifies a line from being a title heading.
var HeadingRejectPunct = map[rune]bool{
	'，': true, ',': true, '。': true, '！': true, '？': true, '；': true,
}

// CJKNumerals are the ideographic numerals accepted after 卷/章 openers.
var CJKNumerals = map[rune]bool{
	'一': true, '二': true, '三': true, '四': true, '五': true,
	'六': true, '七': true, '八': true, '九': true, '十': true,
}

// ChapterTrailBrackets may trail a chapter marker, e.g. "第十章】".
var ChapterTrailBrackets = map[rune]bool{
	'】': true, '》': true, '〗': true, '〕': true, '〉': true, '」': true,
	'』': true, '）': true, '］': true, '＞': true, '⟩': true,
}

// MetadataSeparators split a metadata key from its value.
var MetadataSeparators = map[rune]bool{
	'：': true, ':': true, '・': true, '　': true,
}

// HeadingKeywords are prefixes that mark a strong title heading.
var HeadingKeywords = []string{
	"前言", "序章", "终章", "尾声", "后记", "番外", "尾聲", "後記",
}

// MetadataKeys are the known front-matter key labels (title, author,
// publisher, ISBN and friends) in both simplified and traditional forms.
var MetadataKeys = map[string]bool{
	"書名": true, "书名": true,
	"作者": true,
	"譯者": true, "译者": true,
	"校訂": true, "校订": true,
	"出版社": true,
	"出版時間": true, "出版时间": true,
	"出版日期": true,
	"版權": true, "版权": true,
	"版權頁": true, "版权页": true,
	"版權信息": true, "版权信息": true,
	"責任編輯": true, "责任编辑": true,
	"編輯": true, "编辑": true,
	"責編": true, "责编": true,
	"定價": true, "定价": true,
	"前言": true,
	"序章": true,
	"終章": true, "终章": true,
	"尾聲": true, "尾声": true,
	"後記": true, "后记": true,
	"品牌方": true, "出品方": true,
	"授權方": true, "授权方": true,
	"電子版權": true, "数字版权": true,
	"掃描": true, "扫描": true,
	"OCR": true, "CIP": true,
	"在版編目": true, "在版编目": true,
	"分類號": true, "分类号": true,
	"主題詞": true, "主题词": true,
	"發行日": true, "发行日": true,
	"初版": true, "ISBN": true,
}
