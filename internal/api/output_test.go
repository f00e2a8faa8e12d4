package api

import (
	"bytes"
	"strings"
	"testing"
)

type stringerVal struct{ s string }

func (v stringerVal) String() string { return v.s }

func TestOutputTo(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, map[string]int{"pages": 3}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"pages": 3`) {
			t.Errorf("json output = %q", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, map[string]int{"pages": 3}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "pages: 3") {
			t.Errorf("yaml output = %q", buf.String())
		}
	})

	t.Run("text writes strings verbatim", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatText, "第一段。\n\n第二段。"); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "第一段。\n\n第二段。" {
			t.Errorf("text output = %q", buf.String())
		}
	})

	t.Run("text writes stringers verbatim", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatText, stringerVal{"段落"}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "段落" {
			t.Errorf("text output = %q", buf.String())
		}
	})

	t.Run("text falls back to yaml for records", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatText, map[string]int{"pages": 3}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "pages: 3") {
			t.Errorf("fallback output = %q", buf.String())
		}
	})

	t.Run("unknown format errors", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormat("xml"), "x"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	cases := []struct {
		in   string
		want OutputFormat
	}{
		{"json", OutputFormatJSON},
		{"yaml", OutputFormatYAML},
		{"text", OutputFormatText},
		{"bogus", DefaultOutput},
	}
	for _, c := range cases {
		SetOutputFormat(c.in)
		if globalOutputFormat != c.want {
			t.Errorf("SetOutputFormat(%q): format = %q, want %q", c.in, globalOutputFormat, c.want)
		}
	}
}
