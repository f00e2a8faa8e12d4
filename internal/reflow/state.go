package reflow

// dialogueState tracks quote nesting across the lines of one paragraph
// buffer. Each counter is clamped at zero so an orphan closer never drives
// it negative. Quotes are tracked here with counters while general brackets
// go through the stack-based scan in package cjk: quotes nest shallowly and
// rarely mismatch, general brackets must reject genuine mismatches strictly.
type dialogueState struct {
	doubleQuote int
	singleQuote int
	corner      int
	cornerBold  int
	cornerTop   int
	cornerWide  int
}

func (d *dialogueState) reset() {
	*d = dialogueState{}
}

func (d *dialogueState) update(s string) {
	for _, r := range s {
		switch r {
		case '“':
			d.doubleQuote++
		case '”':
			d.doubleQuote = clampDec(d.doubleQuote)
		case '‘':
			d.singleQuote++
		case '’':
			d.singleQuote = clampDec(d.singleQuote)
		case '「':
			d.corner++
		case '」':
			d.corner = clampDec(d.corner)
		case '『':
			d.cornerBold++
		case '』':
			d.cornerBold = clampDec(d.cornerBold)
		case '﹁':
			d.cornerTop++
		case '﹂':
			d.cornerTop = clampDec(d.cornerTop)
		case '﹃':
			d.cornerWide++
		case '﹄':
			d.cornerWide = clampDec(d.cornerWide)
		}
	}
}

func (d *dialogueState) unclosed() bool {
	return d.doubleQuote > 0 || d.singleQuote > 0 || d.corner > 0 ||
		d.cornerBold > 0 || d.cornerTop > 0 || d.cornerWide > 0
}

func clampDec(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
