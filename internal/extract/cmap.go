package extract

import (
	"encoding/hex"
	"strings"
	"unicode/utf16"
)

// cmap is a parsed ToUnicode CMap. CID-keyed CJK fonts encode text as 1-4
// byte character codes that mean nothing without this mapping; a font
// without one falls back to byte-level decoding.
type cmap struct {
	single    map[uint32]string
	ranges    []bfRange
	codeSizes []int
}

type bfRange struct {
	lo, hi uint32
	size   int
	base   []rune
	// list holds explicit destinations for [ ... ] form ranges.
	list []string
}

// parseToUnicode parses the bfchar, bfrange, and codespacerange sections of
// a ToUnicode CMap stream. The surrounding PostScript scaffolding is skipped;
// only the operators the mapping needs are interpreted.
func parseToUnicode(data []byte) *cmap {
	cm := &cmap{single: make(map[uint32]string)}

	toks := tokenizeCMap(data)
	for i := 0; i < len(toks); i++ {
		switch toks[i] {
		case "begincodespacerange":
			i = cm.parseCodespace(toks, i+1)
		case "beginbfchar":
			i = cm.parseBFChar(toks, i+1)
		case "beginbfrange":
			i = cm.parseBFRange(toks, i+1)
		}
	}

	if len(cm.codeSizes) == 0 {
		cm.codeSizes = []int{2}
	}
	return cm
}

func (cm *cmap) parseCodespace(toks []string, i int) int {
	seen := map[int]bool{}
	for ; i+1 < len(toks); i += 2 {
		if toks[i] == "endcodespacerange" {
			return i
		}
		lo, ok := hexToken(toks[i])
		if !ok {
			return i
		}
		size := len(lo)
		if size >= 1 && size <= 4 && !seen[size] {
			seen[size] = true
			cm.codeSizes = append(cm.codeSizes, size)
		}
	}
	return i
}

func (cm *cmap) parseBFChar(toks []string, i int) int {
	for ; i+1 < len(toks); i += 2 {
		if toks[i] == "endbfchar" {
			return i
		}
		src, ok1 := hexToken(toks[i])
		dst, ok2 := hexToken(toks[i+1])
		if !ok1 || !ok2 {
			return i
		}
		cm.single[beUint(src)] = utf16BEString(dst)
	}
	return i
}

func (cm *cmap) parseBFRange(toks []string, i int) int {
	for i < len(toks) {
		if toks[i] == "endbfrange" {
			return i
		}
		if i+2 >= len(toks) {
			return i
		}
		lo, ok1 := hexToken(toks[i])
		hi, ok2 := hexToken(toks[i+1])
		if !ok1 || !ok2 {
			return i
		}

		r := bfRange{lo: beUint(lo), hi: beUint(hi), size: len(lo)}
		if toks[i+2] == "[" {
			// Explicit destination list, one entry per code.
			j := i + 3
			for j < len(toks) && toks[j] != "]" {
				if dst, ok := hexToken(toks[j]); ok {
					r.list = append(r.list, utf16BEString(dst))
				}
				j++
			}
			i = j + 1
		} else {
			dst, ok := hexToken(toks[i+2])
			if !ok {
				return i
			}
			r.base = []rune(utf16BEString(dst))
			i += 3
		}
		cm.ranges = append(cm.ranges, r)
	}
	return i
}

// lookup maps one character code of the given byte size.
func (cm *cmap) lookup(code uint32, size int) (string, bool) {
	if s, ok := cm.single[code]; ok {
		return s, true
	}
	for _, r := range cm.ranges {
		if r.size != size || code < r.lo || code > r.hi {
			continue
		}
		off := code - r.lo
		if r.list != nil {
			if int(off) < len(r.list) {
				return r.list[off], true
			}
			continue
		}
		if len(r.base) == 0 {
			continue
		}
		// Offset applies to the last code unit of the destination.
		rs := make([]rune, len(r.base))
		copy(rs, r.base)
		rs[len(rs)-1] += rune(off)
		return string(rs), true
	}
	return "", false
}

// decode maps raw string bytes through the CMap. Codes are matched greedily
// against the known codespace sizes; unmappable codes are dropped, matching
// how readers treat text a broken font cannot name.
func (cm *cmap) decode(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); {
		matched := false
		for _, size := range cm.codeSizes {
			if i+size > len(raw) {
				continue
			}
			code := beUint(raw[i : i+size])
			if s, ok := cm.lookup(code, size); ok {
				b.WriteString(s)
				i += size
				matched = true
				break
			}
		}
		if !matched {
			// Advance by the smallest codespace size to resync.
			step := cm.codeSizes[0]
			for _, s := range cm.codeSizes {
				if s < step {
					step = s
				}
			}
			if i+step > len(raw) {
				break
			}
			i += step
		}
	}
	return b.String()
}

// tokenizeCMap splits CMap source into whitespace-delimited tokens, keeping
// <...> hex strings and [ ] markers as single tokens.
func tokenizeCMap(data []byte) []string {
	var toks []string
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isPDFWhitespace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case c == '<':
			j := i + 1
			for j < len(data) && data[j] != '>' {
				j++
			}
			toks = append(toks, string(data[i:min(j+1, len(data))]))
			i = j + 1
		case c == '[' || c == ']':
			toks = append(toks, string(c))
			i++
		default:
			j := i
			for j < len(data) && !isPDFWhitespace(data[j]) &&
				data[j] != '<' && data[j] != '[' && data[j] != ']' && data[j] != '%' {
				j++
			}
			toks = append(toks, string(data[i:j]))
			i = j
		}
	}
	return toks
}

// hexToken decodes a <...> token into bytes.
func hexToken(tok string) ([]byte, bool) {
	if len(tok) < 2 || tok[0] != '<' || tok[len(tok)-1] != '>' {
		return nil, false
	}
	h := tok[1 : len(tok)-1]
	if len(h)%2 != 0 {
		h += "0"
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, false
	}
	return b, true
}

func beUint(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// utf16BEString interprets bytes as UTF-16BE, the destination encoding of
// ToUnicode CMaps.
func utf16BEString(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(units))
}

func isPDFWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
