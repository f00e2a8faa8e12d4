// Package pipeline wires extraction, paragraph reflow, and script conversion
// into one job: PDF in, reflowed text file out.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/papercrane/reflow/internal/convert"
	"github.com/papercrane/reflow/internal/extract"
	"github.com/papercrane/reflow/internal/reflow"
)

// PageSource yields a document's pages in order. *extract.Extractor is the
// production implementation.
type PageSource interface {
	PagesWithProgress(path string, fn extract.ProgressFunc) error
}

// Options controls a processing job.
type Options struct {
	// PageMarkers inserts "=== [i/N] ===" lines between extracted pages so
	// page provenance survives into the reflowed output.
	PageMarkers bool

	// Reflow options applied to the assembled document text.
	Reflow reflow.Options

	// Convert runs the reflowed text through the script converter.
	Convert bool

	// Punct also converts punctuation style during script conversion.
	Punct bool
}

// Result reports what a job produced.
type Result struct {
	JobID      string `json:"job_id" yaml:"job_id"`
	Input      string `json:"input" yaml:"input"`
	Output     string `json:"output" yaml:"output"`
	Pages      int    `json:"pages" yaml:"pages"`
	Paragraphs int    `json:"paragraphs" yaml:"paragraphs"`
	Converted  bool   `json:"converted" yaml:"converted"`
}

// Runner executes processing jobs.
type Runner struct {
	source    PageSource
	converter convert.Converter
	logger    *slog.Logger
}

// New creates a Runner. converter may be nil when conversion is never
// requested; a nil logger disables logging.
func New(source PageSource, converter convert.Converter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{source: source, converter: converter, logger: logger}
}

// Run processes one input file and writes the result to outputPath.
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string, opts Options) (*Result, error) {
	jobID := uuid.New().String()
	log := r.logger.With("job_id", jobID, "input", inputPath)
	log.Info("starting processing job")

	var (
		b     strings.Builder
		pages int
	)
	err := r.source.PagesWithProgress(inputPath, func(page, total int, text string) {
		pages = total
		if opts.PageMarkers {
			fmt.Fprintf(&b, "=== [%d/%d] ===\n", page, total)
		}
		b.WriteString(text)
	})
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	log.Info("extraction complete", "pages", pages)

	segments := reflow.Segments(b.String(), opts.Reflow)
	sep := "\n\n"
	if opts.Reflow.Compact {
		sep = "\n"
	}
	text := strings.Join(segments, sep)

	result := &Result{
		JobID:      jobID,
		Input:      inputPath,
		Output:     outputPath,
		Pages:      pages,
		Paragraphs: len(segments),
	}

	if opts.Convert {
		if r.converter == nil {
			return nil, fmt.Errorf("conversion requested but no converter configured")
		}
		converted, err := r.converter.Convert(ctx, text, opts.Punct)
		if err != nil {
			return nil, fmt.Errorf("conversion failed: %w", err)
		}
		text = converted
		result.Converted = true
		log.Info("conversion complete")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(strings.TrimRight(text, "\n")+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	log.Info("job complete", "output", outputPath, "paragraphs", result.Paragraphs)
	return result, nil
}
