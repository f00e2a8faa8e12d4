package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/api"
	"github.com/papercrane/reflow/internal/config"
	"github.com/papercrane/reflow/internal/convert"
	"github.com/papercrane/reflow/internal/home"
	"github.com/papercrane/reflow/internal/svcctx"
	"github.com/papercrane/reflow/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "reflow",
	Short: "Paragraph reflow for CJK text extracted from PDFs and OCR",
	Long: `Reflow reconstructs logical paragraphs from CJK text that page layout,
OCR, or PDF extraction broke into arbitrary physical lines.

It detects headings, dividers, metadata lines, and dialogue structure,
merges wrapped lines back into paragraphs, and can extract text from
PDFs and convert between simplified and traditional Chinese via an
OpenCC-compatible service.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.reflow/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "reflow home directory (default: ~/.reflow)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml, json, or text",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		api.SetOutputFormat(outputFormat)

		svcs, err := buildServices()
		if err != nil {
			return err
		}
		cmd.SetContext(svcctx.WithServices(cmd.Context(), svcs))
		return nil
	}

	rootCmd.AddCommand(reflowCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(zhoCheckCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildServices wires the logger, home dir, config manager, and converter
// client shared by all commands.
func buildServices() (*svcctx.Services, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	cfgPath := cfgFile
	if cfgPath == "" && h.ConfigExists() {
		cfgPath = h.ConfigPath()
	}
	mgr, err := config.NewManager(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	svcs := &svcctx.Services{
		Config: mgr,
		Logger: logger,
		Home:   h,
	}

	cc := mgr.Get().Convert
	if cc.URL != "" {
		client, err := convert.NewClient(cc.URL, cc.Config,
			convert.WithRetries(cc.Retries),
			convert.WithTimeout(time.Duration(cc.Timeout)*time.Second),
		)
		if err != nil {
			logger.Warn("conversion service misconfigured, conversion disabled", "error", err)
		} else {
			svcs.Converter = client
		}
	}

	return svcs, nil
}
