package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/reflow"
	"github.com/papercrane/reflow/internal/svcctx"
)

var (
	reflowCompact     bool
	reflowPageHeaders bool
)

var reflowCmd = &cobra.Command{
	Use:   "reflow [file]",
	Short: "Reflow text from a file or stdin into logical paragraphs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		opts := reflowOptions(cmd)
		out := reflow.Reflow(text, opts)

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	reflowCmd.Flags().BoolVar(&reflowCompact, "compact", false, "join paragraphs with a single newline")
	reflowCmd.Flags().BoolVar(&reflowPageHeaders, "page-headers", false, "preserve page-boundary blank lines")
}

// reflowOptions resolves reflow options from flags, falling back to config
// defaults for flags the user did not set.
func reflowOptions(cmd *cobra.Command) reflow.Options {
	opts := reflow.Options{Compact: reflowCompact, PageHeaders: reflowPageHeaders}

	if mgr := svcctx.ConfigFrom(cmd.Context()); mgr != nil {
		cfg := mgr.Get().Reflow
		if !cmd.Flags().Changed("compact") {
			opts.Compact = cfg.Compact
		}
		if !cmd.Flags().Changed("page-headers") {
			opts.PageHeaders = cfg.PageHeaders
		}
	}
	return opts
}

// readInput returns the contents of the named file, or stdin when no file
// (or "-") is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
