package extract

import "testing"

func TestTextFromContent_Tj(t *testing.T) {
	content := []byte(`BT /F1 12 Tf (Hello) Tj ET`)
	got := textFromContent(content, nil)
	if got != "Hello\n" {
		t.Errorf("got %q, want %q", got, "Hello\n")
	}
}

func TestTextFromContent_TJArray(t *testing.T) {
	content := []byte(`BT /F1 12 Tf [(He) -20 (llo)] TJ ET`)
	got := textFromContent(content, nil)
	if got != "Hello\n" {
		t.Errorf("got %q, want %q", got, "Hello\n")
	}
}

func TestTextFromContent_LineBreaks(t *testing.T) {
	content := []byte(`BT (first) Tj 0 -14 Td (second) Tj T* (third) Tj ET`)
	got := textFromContent(content, nil)
	want := "first\nsecond\nthird\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextFromContent_QuoteOperators(t *testing.T) {
	content := []byte(`BT (one) Tj (two) ' 1 1 (three) " ET`)
	got := textFromContent(content, nil)
	want := "one\ntwo\nthree\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextFromContent_EscapesAndNesting(t *testing.T) {
	content := []byte(`BT (a\(b\)c) Tj ((nested)) Tj (\101) Tj ET`)
	got := textFromContent(content, nil)
	want := "a(b)c(nested)A\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextFromContent_HexStringWithCMap(t *testing.T) {
	// Two-byte codes 0001 and 0002 mapped through a ToUnicode CMap.
	cm := parseToUnicode([]byte(`
/CIDInit /ProcSet findresource begin
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 beginbfchar
<0001> <4F60>
<0002> <597D>
endbfchar
endcmap
`))
	fonts := map[string]*cmap{"F1": cm}

	content := []byte(`BT /F1 12 Tf <00010002> Tj ET`)
	got := textFromContent(content, fonts)
	if got != "你好\n" {
		t.Errorf("got %q, want %q", got, "你好\n")
	}
}

func TestTextFromContent_IgnoresNonTextOperators(t *testing.T) {
	content := []byte(`q 1 0 0 1 50 700 cm BT (text) Tj ET Q 0 0 100 100 re f`)
	got := textFromContent(content, nil)
	if got != "text\n" {
		t.Errorf("got %q, want %q", got, "text\n")
	}
}

func TestDecodeTextString_UTF16BOM(t *testing.T) {
	raw := []byte{0xFE, 0xFF, 0x4F, 0x60, 0x59, 0x7D}
	if got := decodeTextString(raw, nil); got != "你好" {
		t.Errorf("got %q, want 你好", got)
	}
}

func TestParseToUnicode_BFRange(t *testing.T) {
	cm := parseToUnicode([]byte(`
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0010> <0012> <4E00>
endbfrange
`))

	cases := []struct {
		code uint32
		want string
	}{
		{0x0010, "一"}, // U+4E00
		{0x0011, "丁"}, // U+4E01
		{0x0012, "丂"}, // U+4E02
	}
	for _, c := range cases {
		got, ok := cm.lookup(c.code, 2)
		if !ok || got != c.want {
			t.Errorf("lookup(%#x) = (%q, %v), want %q", c.code, got, ok, c.want)
		}
	}
	if _, ok := cm.lookup(0x0013, 2); ok {
		t.Error("lookup past range end should fail")
	}
}

func TestParseToUnicode_BFRangeList(t *testing.T) {
	cm := parseToUnicode([]byte(`
1 beginbfrange
<0005> <0006> [<4F60> <597D>]
endbfrange
`))

	if got, ok := cm.lookup(0x0005, 2); !ok || got != "你" {
		t.Errorf("lookup(0x0005) = (%q, %v), want 你", got, ok)
	}
	if got, ok := cm.lookup(0x0006, 2); !ok || got != "好" {
		t.Errorf("lookup(0x0006) = (%q, %v), want 好", got, ok)
	}
}

func TestCMapDecode_UnmappableCodesDropped(t *testing.T) {
	cm := parseToUnicode([]byte(`
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfchar
<0001> <4F60>
endbfchar
`))

	got := cm.decode([]byte{0x00, 0x01, 0xAB, 0xCD, 0x00, 0x01})
	if got != "你你" {
		t.Errorf("got %q, want 你你", got)
	}
}
