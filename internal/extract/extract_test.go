package extract

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestNormalizePageText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"blank page", "", "\n\n"},
		{"whitespace page", "  \n\t\n", "\n\n"},
		{"trailing newlines trimmed", "正文\n\n\n", "正文\n\n"},
		{"no trailing newline", "正文", "正文\n\n"},
		{"crlf unified", "第一行\r\n第二行\r", "第一行\n第二行\n\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := normalizePageText(c.in); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestPagesWithProgress_MissingFile(t *testing.T) {
	e := New(nil)
	err := e.PagesWithProgress(filepath.Join(t.TempDir(), "missing.pdf"), func(int, int, string) {})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}
