package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/extract"
	"github.com/papercrane/reflow/internal/svcctx"
)

var extractPages bool

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract text from a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := svcctx.LoggerFrom(cmd.Context())
		e := extract.New(logger)

		markers := extractPages
		if mgr := svcctx.ConfigFrom(cmd.Context()); mgr != nil && !cmd.Flags().Changed("pages") {
			markers = mgr.Get().Extract.PageMarkers
		}

		var b strings.Builder
		err := e.PagesWithProgress(args[0], func(page, total int, text string) {
			logger.Info("extracted page", "page", page, "total", total)
			if markers {
				fmt.Fprintf(&b, "=== [%d/%d] ===\n", page, total)
			}
			b.WriteString(text)
		})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), b.String())
		return nil
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractPages, "pages", false, "insert === [i/N] === markers between pages")
}
