package main

import (
	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/api"
	"github.com/papercrane/reflow/internal/extract"
	"github.com/papercrane/reflow/internal/pipeline"
	"github.com/papercrane/reflow/internal/reflow"
	"github.com/papercrane/reflow/internal/svcctx"
)

var (
	processOut         string
	processConvert     bool
	processPunct       bool
	processCompact     bool
	processPageHeaders bool
)

var processCmd = &cobra.Command{
	Use:   "process <file.pdf>",
	Short: "Run the full pipeline: extract, reflow, and optionally convert",
	Long: `Process extracts text from a PDF, reflows it into logical paragraphs,
optionally converts the script variant, and writes the result as a UTF-8
text file. The default output path is <home>/exports/<input>.txt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := svcctx.LoggerFrom(ctx)
		h := svcctx.HomeFrom(ctx)

		outputPath := processOut
		if outputPath == "" {
			if err := h.EnsureExists(); err != nil {
				return err
			}
			outputPath = h.ExportPath(args[0])
		}

		opts := pipeline.Options{
			PageMarkers: processPageHeaders,
			Reflow: reflow.Options{
				Compact:     processCompact,
				PageHeaders: processPageHeaders,
			},
			Convert: processConvert,
			Punct:   processPunct,
		}
		if mgr := svcctx.ConfigFrom(ctx); mgr != nil {
			cfg := mgr.Get()
			if !cmd.Flags().Changed("compact") {
				opts.Reflow.Compact = cfg.Reflow.Compact
			}
			if !cmd.Flags().Changed("page-headers") {
				opts.Reflow.PageHeaders = cfg.Reflow.PageHeaders
				opts.PageMarkers = cfg.Extract.PageMarkers
			}
		}

		runner := pipeline.New(extract.New(logger), svcctx.ConverterFrom(ctx), logger)
		result, err := runner.Run(ctx, args[0], outputPath, opts)
		if err != nil {
			return err
		}
		return api.Output(result)
	},
}

func init() {
	processCmd.Flags().StringVar(&processOut, "out", "", "output file (default: <home>/exports/<input>.txt)")
	processCmd.Flags().BoolVar(&processConvert, "convert", false, "convert the reflowed text via the conversion service")
	processCmd.Flags().BoolVar(&processPunct, "punct", false, "also convert punctuation style")
	processCmd.Flags().BoolVar(&processCompact, "compact", false, "join paragraphs with a single newline")
	processCmd.Flags().BoolVar(&processPageHeaders, "page-headers", false, "insert page markers and preserve page gaps")
}
