package extract

import (
	"strings"
	"unicode/utf16"
)

// textFromContent decodes the text-showing operators of one page content
// stream. fonts maps resource font names (without the leading slash) to
// their ToUnicode CMaps; fonts with no CMap decode byte-wise.
//
// Only the operators that affect extracted text are interpreted: BT/ET text
// objects, Tf font selection, Tj/TJ/'/" text showing, and the line-moving
// operators Td, TD, T* (plus the implicit newlines of ' and ").
func textFromContent(content []byte, fonts map[string]*cmap) string {
	var (
		b        strings.Builder
		operands []token
		current  *cmap
		inText   bool
	)

	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
	}
	show := func(t token) {
		if t.kind != tokString {
			return
		}
		b.WriteString(decodeTextString(t.raw, current))
	}

	lex := newContentLexer(content)
	for {
		t, ok := lex.next()
		if !ok {
			break
		}
		if t.kind != tokOperator {
			operands = append(operands, t)
			continue
		}

		switch t.text {
		case "BT":
			inText = true
		case "ET":
			inText = false
			newline()
		case "Tf":
			// Tf's operands are /FontName size.
			for _, op := range operands {
				if op.kind == tokName {
					current = fonts[op.text]
				}
			}
		case "Tj":
			if inText && len(operands) > 0 {
				show(operands[len(operands)-1])
			}
		case "'":
			if inText {
				newline()
				if len(operands) > 0 {
					show(operands[len(operands)-1])
				}
			}
		case "\"":
			if inText {
				newline()
				if len(operands) > 0 {
					show(operands[len(operands)-1])
				}
			}
		case "TJ":
			if inText {
				for _, op := range operands {
					show(op)
				}
			}
		case "Td", "TD", "T*":
			if inText {
				newline()
			}
		}
		operands = operands[:0]
	}

	return b.String()
}

// decodeTextString maps raw PDF string bytes to text. With a CMap the bytes
// are character codes; without one, a UTF-16BE BOM selects UTF-16, and
// anything else decodes byte-wise (simple fonts with standard encodings).
func decodeTextString(raw []byte, cm *cmap) string {
	if cm != nil {
		return cm.decode(raw)
	}
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		units := make([]uint16, 0, (len(raw)-2)/2)
		for i := 2; i+1 < len(raw); i += 2 {
			units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
		}
		return string(utf16.Decode(units))
	}
	rs := make([]rune, len(raw))
	for i, c := range raw {
		rs[i] = rune(c)
	}
	return string(rs)
}

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokString
	tokName
	tokNumber
	tokDelim
)

type token struct {
	kind tokenKind
	text string
	raw  []byte // string contents for tokString
}

// contentLexer tokenizes a PDF content stream: literal and hex strings,
// names, numbers, array/dict delimiters, and operators.
type contentLexer struct {
	data []byte
	pos  int
}

func newContentLexer(data []byte) *contentLexer {
	return &contentLexer{data: data}
}

func (l *contentLexer) next() (token, bool) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isPDFWhitespace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' {
				l.pos++
			}
		case c == '(':
			return l.literalString(), true
		case c == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				l.pos += 2
				return token{kind: tokDelim, text: "<<"}, true
			}
			return l.hexString(), true
		case c == '>':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '>' {
				l.pos += 2
				return token{kind: tokDelim, text: ">>"}, true
			}
			l.pos++
		case c == '[' || c == ']' || c == '{' || c == '}':
			l.pos++
			return token{kind: tokDelim, text: string(c)}, true
		case c == '/':
			return l.name(), true
		default:
			return l.bareToken(), true
		}
	}
	return token{}, false
}

// literalString reads a (...) string honoring nested parentheses and escape
// sequences, including octal escapes.
func (l *contentLexer) literalString() token {
	l.pos++ // consume '('
	var raw []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch c {
		case '\\':
			l.pos++
			if l.pos >= len(l.data) {
				break
			}
			e := l.data[l.pos]
			switch e {
			case 'n':
				raw = append(raw, '\n')
			case 'r':
				raw = append(raw, '\r')
			case 't':
				raw = append(raw, '\t')
			case 'b':
				raw = append(raw, '\b')
			case 'f':
				raw = append(raw, '\f')
			case '(', ')', '\\':
				raw = append(raw, e)
			case '\n':
				// Line continuation: nothing emitted.
			case '\r':
				if l.pos+1 < len(l.data) && l.data[l.pos+1] == '\n' {
					l.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && l.pos+1 < len(l.data); k++ {
						d := l.data[l.pos+1]
						if d < '0' || d > '7' {
							break
						}
						v = v*8 + int(d-'0')
						l.pos++
					}
					raw = append(raw, byte(v))
				} else {
					raw = append(raw, e)
				}
			}
			l.pos++
		case '(':
			depth++
			raw = append(raw, c)
			l.pos++
		case ')':
			depth--
			l.pos++
			if depth == 0 {
				return token{kind: tokString, raw: raw}
			}
			raw = append(raw, c)
		default:
			raw = append(raw, c)
			l.pos++
		}
	}
	return token{kind: tokString, raw: raw}
}

// hexString reads a <...> string.
func (l *contentLexer) hexString() token {
	l.pos++ // consume '<'
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		c := l.data[l.pos]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++ // consume '>'
	if len(digits)%2 != 0 {
		digits = append(digits, '0')
	}
	raw := make([]byte, len(digits)/2)
	for i := 0; i < len(raw); i++ {
		raw[i] = hexVal(digits[2*i])<<4 | hexVal(digits[2*i+1])
	}
	return token{kind: tokString, raw: raw}
}

func (l *contentLexer) name() token {
	l.pos++ // consume '/'
	start := l.pos
	for l.pos < len(l.data) && !isPDFDelimiter(l.data[l.pos]) && !isPDFWhitespace(l.data[l.pos]) {
		l.pos++
	}
	return token{kind: tokName, text: string(l.data[start:l.pos])}
}

func (l *contentLexer) bareToken() token {
	start := l.pos
	for l.pos < len(l.data) && !isPDFDelimiter(l.data[l.pos]) && !isPDFWhitespace(l.data[l.pos]) {
		l.pos++
	}
	text := string(l.data[start:l.pos])
	if isNumeric(text) {
		return token{kind: tokNumber, text: text}
	}
	return token{kind: tokOperator, text: text}
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if (c == '+' || c == '-') && i == 0 {
			continue
		}
		if c == '.' {
			continue
		}
		return false
	}
	return true
}
