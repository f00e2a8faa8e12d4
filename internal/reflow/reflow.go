// Package reflow reconstructs logical paragraphs from text extracted out of
// scanned or exported CJK documents. Page layout, OCR, and PDF text
// extraction break paragraphs into arbitrary physical lines, inject
// page-break artifacts, and duplicate decorative text; the engine walks the
// lines once, classifying each and deciding merge or split from the current
// paragraph buffer, a small amount of quote/bracket nesting state, and a
// strict priority order over the heuristics.
package reflow

import (
	"strings"
	"unicode"

	"github.com/papercrane/reflow/internal/cjk"
)

// Options controls reflow output shape.
type Options struct {
	// PageHeaders preserves page-boundary blank lines. When false, blank
	// lines that look like page-break artifacts (no strong sentence end
	// before them) are suppressed so paragraphs merge across pages.
	PageHeaders bool

	// Compact joins segments with a single newline instead of a blank line.
	Compact bool
}

// Reflow rebuilds paragraphs from text and joins the resulting segments.
// It is a pure function: whitespace-only input is returned unchanged, and
// no input can make it fail.
func Reflow(text string, opts Options) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	segments := Segments(text, opts)

	sep := "\n\n"
	if opts.Compact {
		sep = "\n"
	}
	return strings.Join(segments, sep)
}

// Segments rebuilds paragraphs from text and returns them as a slice: one
// element per finished paragraph, heading, divider, page marker, or
// metadata line, in input order.
func Segments(text string, opts Options) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	d := driver{opts: opts}
	for _, raw := range strings.Split(normalized, "\n") {
		d.consume(raw)
	}
	d.finish()
	return d.segments
}

// driver is the merge state machine. Two states: empty buffer and
// accumulating buffer; the nesting state is ancillary context reset
// together with the buffer.
type driver struct {
	opts     Options
	segments []string
	buffer   string
	state    dialogueState
}

// flush emits the buffer as a segment and clears buffer and nesting state.
func (d *driver) flush() {
	if d.buffer == "" {
		return
	}
	d.segments = append(d.segments, d.buffer)
	d.buffer = ""
	d.state.reset()
}

// restart begins a new buffer holding line, resetting nesting state first.
func (d *driver) restart(line string) {
	d.buffer = line
	d.state.reset()
	d.state.update(line)
}

func (d *driver) consume(raw string) {
	// Visual form: trailing whitespace trimmed, half-width indent removed,
	// full-width indent kept.
	visual := cjk.StripHalfwidthIndent(trimRight(raw))

	// Dividers are matched before repeated-content collapsing and emitted
	// in their visual form.
	probe := strings.TrimLeft(visual, " 　")
	if cjk.IsVisualDividerLine(probe) {
		d.flush()
		d.segments = append(d.segments, visual)
		return
	}

	line := collapseRepeatedSegments(visual)
	headProbe := strings.TrimLeft(line, " 　")

	if strings.TrimSpace(headProbe) == "" {
		d.consumeBlank()
		return
	}

	class := classify(headProbe, line)

	// Page markers, metadata lines, and strong headings always stand alone.
	switch class {
	case classPageMarker, classMetadata, classTitleHeading:
		d.flush()
		d.segments = append(d.segments, line)
		return
	}

	bufferUnclosed := cjk.HasUnclosedBracket(d.buffer)

	if class == classShortHeading {
		if d.splitAsHeading(headProbe, bufferUnclosed) {
			d.flush()
			d.segments = append(d.segments, line)
			return
		}
		// Otherwise the heading-like line is a continuation; fall through
		// to the normal merge logic.
	}

	// A line that itself ends in a strong terminator closes the paragraph
	// immediately: single-line sentences never merge into what follows.
	stripped := trimRight(line)
	if d.buffer != "" && !d.state.unclosed() && !bufferUnclosed {
		if last, ok := lastRune(stripped); ok && cjk.IsStrongSentenceEnd(last) {
			d.buffer += line
			d.segments = append(d.segments, d.buffer)
			d.buffer = ""
			d.state.reset()
			d.state.update(line)
			return
		}
	}

	dialogueStart := cjk.BeginsWithDialogueOpener(line)

	if d.buffer == "" {
		d.restart(line)
		return
	}

	// A dialogue opener starts a new paragraph only when the narration
	// before it genuinely ended: not after a comma, not after a bare
	// ideograph (mid-sentence wrap), and not after a colon, which announces
	// the quotation ("他說：" then 「...」 on the next line).
	if dialogueStart {
		if last, ok := lastRune(trimRight(d.buffer)); ok {
			if !cjk.IsCommaLike(last) && !cjk.IsCJK(last) && !cjk.IsColonLike(last) {
				d.flush()
				d.restart(line)
				return
			}
		} else {
			d.flush()
			d.restart(line)
			return
		}
	}

	// Dialogue-closing line: append, then flush if the quote nesting is now
	// fully closed, the mark before the closer ends a clause, and the only
	// bracket issue (if any) was introduced by this very line.
	if last, prev, ok := cjk.LastTwoNonSpace(stripped); ok && cjk.IsDialogueCloser(last) {
		strongBefore := cjk.IsClauseOrEndPunct(prev)
		lineIssue := cjk.HasUnclosedBracket(stripped)

		d.buffer += stripped
		d.state.update(stripped)

		if !d.state.unclosed() && strongBefore && (!bufferUnclosed || lineIssue) {
			d.flush()
		}
		return
	}

	// The buffer already reads as a complete sentence: flush it and start
	// over with the current line.
	if !d.state.unclosed() && !bufferUnclosed && cjk.EndsWithSentenceBoundary(d.buffer) {
		d.flush()
		d.restart(line)
		return
	}

	// Balanced bracket unit like （完） or 【番外】.
	if !d.state.unclosed() && cjk.EndsWithCJKBracketBoundary(d.buffer) {
		d.flush()
		d.restart(line)
		return
	}

	// Chapter-ending buffer such as 第十章】.
	if !d.state.unclosed() && isChapterEndingLine(d.buffer) {
		d.flush()
		d.restart(line)
		return
	}

	// Default: soft join with no separator.
	d.buffer += line
	d.state.update(line)
}

// consumeBlank handles an empty line. With page-gap suppression active, a
// blank is treated as a soft cross-page artifact unless the buffer already
// ends in a strong sentence boundary; a blank never flushes while inside an
// open quotation or bracket.
func (d *driver) consumeBlank() {
	if !d.opts.PageHeaders && d.buffer != "" {
		if d.state.unclosed() || cjk.HasUnclosedBracket(d.buffer) {
			return
		}
		last, ok := cjk.LastNonSpace(d.buffer)
		if !ok || !cjk.IsStrongSentenceEnd(last) {
			return
		}
	}
	// Blank lines alone never emit a segment.
	d.flush()
}

// splitAsHeading decides whether a provisional short heading actually
// starts a new segment, given the buffer state.
func (d *driver) splitAsHeading(probe string, bufferUnclosed bool) bool {
	if d.buffer == "" {
		return true
	}
	if bufferUnclosed {
		// Unsafe previous paragraph: must be a continuation.
		return false
	}

	last, ok := lastRune(trimRight(d.buffer))
	if !ok {
		// Whitespace-only buffer behaves like an empty one.
		return true
	}

	if cjk.IsCommaLike(last) {
		return false
	}

	// A candidate that reads like a continuation marker (all-CJK, or
	// colon/parenthesis terminated) merges when the previous text has not
	// ended yet.
	contMarker := cjk.IsAllCJK(probe, true) ||
		cjk.EndsWithColonLike(probe) ||
		cjk.EndsWithAllowedPostfixCloser(probe)
	if contMarker && !cjk.IsClauseOrEndPunct(last) {
		return false
	}

	return true
}

func (d *driver) finish() {
	if d.buffer != "" {
		d.segments = append(d.segments, d.buffer)
		d.buffer = ""
	}
}

func lastRune(s string) (rune, bool) {
	var r rune
	ok := false
	for _, c := range s {
		r = c
		ok = true
	}
	return r, ok
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
