// Package extract pulls text out of PDF files page by page. It walks the
// page tree with pdfcpu, decodes each page's content streams, and runs the
// text-showing operators through per-font ToUnicode CMaps so CID-keyed CJK
// fonts extract as text rather than raw character codes.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrNoText indicates the document produced no extractable text at all.
var ErrNoText = errors.New("no extractable text")

// ProgressFunc receives each extracted page: its 1-based number, the total
// page count, and the normalized page text.
type ProgressFunc func(page, total int, text string)

// Extractor extracts text from PDF files.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{logger: logger}
}

// Text extracts the whole document as one string, pages concatenated in
// order. Returns ErrNoText if the document yields no text.
func (e *Extractor) Text(path string) (string, error) {
	pages, err := e.Pages(path)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, ""), nil
}

// Pages extracts the document one page at a time, returning the normalized
// text of each page. A page that fails to decode is logged and returned as
// a blank page; a document where every page is blank returns ErrNoText.
func (e *Extractor) Pages(path string) ([]string, error) {
	var pages []string
	err := e.PagesWithProgress(path, func(_, total int, text string) {
		if pages == nil {
			pages = make([]string, 0, total)
		}
		pages = append(pages, text)
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// PagesWithProgress streams extracted pages through fn in page order. Pages
// with a broken content stream are reported as blank rather than aborting
// the document. A PDF with an empty page tree falls back to scanning every
// content stream in the file, reported as a single page 1/1.
func (e *Extractor) PagesWithProgress(path string, fn ProgressFunc) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("input file: %w", err)
		}
		return fmt.Errorf("failed to stat input file: %w", err)
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return fmt.Errorf("failed to read pdf: %w", err)
	}

	total := ctx.PageCount
	if total == 0 {
		text, err := e.wholeDocumentText(ctx)
		if err != nil {
			return err
		}
		fn(1, 1, normalizePageText(text))
		return nil
	}

	sawText := false
	for pageNum := 1; pageNum <= total; pageNum++ {
		text, err := e.pageText(ctx, pageNum)
		if err != nil {
			e.logger.Warn("failed to extract page, treating as blank",
				"page", pageNum, "total", total, "error", err)
			text = ""
		}
		if strings.TrimSpace(text) != "" {
			sawText = true
		}
		fn(pageNum, total, normalizePageText(text))
	}

	if !sawText {
		return fmt.Errorf("%s: %w", path, ErrNoText)
	}
	return nil
}

// pageText decodes one page's content streams into text.
func (e *Extractor) pageText(ctx *model.Context, pageNum int) (string, error) {
	pageDict, _, _, err := ctx.PageDict(pageNum, false)
	if err != nil {
		return "", fmt.Errorf("failed to resolve page dict: %w", err)
	}
	if pageDict == nil {
		return "", fmt.Errorf("page %d has no dictionary", pageNum)
	}

	fonts := e.pageFonts(ctx, pageDict)

	contentsObj, found := pageDict.Find("Contents")
	if !found {
		return "", nil
	}

	var b strings.Builder
	switch obj := contentsObj.(type) {
	case types.IndirectRef:
		data, err := streamData(ctx, obj)
		if err != nil {
			return "", err
		}
		b.Write(data)
	case types.Array:
		for _, item := range obj {
			ref, ok := item.(types.IndirectRef)
			if !ok {
				continue
			}
			data, err := streamData(ctx, ref)
			if err != nil {
				return "", err
			}
			b.Write(data)
			b.WriteByte('\n')
		}
	}

	return textFromContent([]byte(b.String()), fonts), nil
}

// pageFonts resolves the page's font resources to their ToUnicode CMaps.
// Fonts without a usable CMap map to nil and decode byte-wise.
func (e *Extractor) pageFonts(ctx *model.Context, pageDict types.Dict) map[string]*cmap {
	fonts := make(map[string]*cmap)

	resObj, found := pageDict.Find("Resources")
	if !found {
		return fonts
	}
	resDict, err := ctx.DereferenceDict(resObj)
	if err != nil || resDict == nil {
		return fonts
	}

	fontObj, found := resDict.Find("Font")
	if !found {
		return fonts
	}
	fontDict, err := ctx.DereferenceDict(fontObj)
	if err != nil || fontDict == nil {
		return fonts
	}

	for name, ref := range fontDict {
		fonts[name] = nil

		fd, err := ctx.DereferenceDict(ref)
		if err != nil || fd == nil {
			continue
		}
		tuObj, found := fd.Find("ToUnicode")
		if !found {
			continue
		}
		data, err := streamData(ctx, tuObj)
		if err != nil {
			e.logger.Warn("failed to decode ToUnicode stream", "font", name, "error", err)
			continue
		}
		fonts[name] = parseToUnicode(data)
	}

	return fonts
}

// wholeDocumentText scans every stream object in the file for text content,
// the fallback for documents whose page tree is empty or broken. Font
// resources cannot be tied to pages here, so strings decode byte-wise or
// via their UTF-16 BOM.
func (e *Extractor) wholeDocumentText(ctx *model.Context) (string, error) {
	objNrs := make([]int, 0, len(ctx.Table))
	for objNr := range ctx.Table {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var b strings.Builder
	for _, objNr := range objNrs {
		data, err := streamData(ctx, *types.NewIndirectRef(objNr, 0))
		if err != nil {
			continue
		}
		text := textFromContent(data, nil)
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}

// streamData dereferences a stream object and returns its decoded content.
func streamData(ctx *model.Context, obj types.Object) ([]byte, error) {
	sd, _, err := ctx.DereferenceStreamDict(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference stream: %w", err)
	}
	if sd == nil {
		return nil, errors.New("not a stream")
	}
	if sd.Content == nil {
		if err := sd.Decode(); err != nil {
			return nil, fmt.Errorf("failed to decode stream: %w", err)
		}
	}
	return sd.Content, nil
}

// normalizePageText canonicalizes one page's text: line endings unified,
// a blank page becomes a bare paragraph gap, and any other page ends with
// exactly one blank line so pages concatenate into reflowable input.
func normalizePageText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if strings.TrimSpace(text) == "" {
		return "\n\n"
	}
	return strings.TrimRight(text, "\n") + "\n\n"
}
