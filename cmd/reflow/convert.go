package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/convert"
	"github.com/papercrane/reflow/internal/svcctx"
)

var (
	convertConversion string
	convertPunct      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert text between simplified and traditional Chinese",
	Long: `Convert reads text from a file or stdin and converts it between Chinese
script variants via the configured conversion service. The conversion is
named OpenCC-style: s2t, t2s, s2tw, tw2sp, and so on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		converter, err := resolveConverter(cmd)
		if err != nil {
			return err
		}

		out, err := converter.Convert(cmd.Context(), text, convertPunct)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertConversion, "conversion", "", "conversion config name (default from config, s2t otherwise)")
	convertCmd.Flags().BoolVar(&convertPunct, "punct", false, "also convert punctuation style")
}

// resolveConverter returns the context converter, or a new client when the
// --conversion flag asks for a different conversion than the configured one.
func resolveConverter(cmd *cobra.Command) (convert.Converter, error) {
	mgr := svcctx.ConfigFrom(cmd.Context())

	if convertConversion != "" && mgr != nil {
		cc := mgr.Get().Convert
		return convert.NewClient(cc.URL, convertConversion,
			convert.WithRetries(cc.Retries),
			convert.WithTimeout(time.Duration(cc.Timeout)*time.Second),
		)
	}

	if c := svcctx.ConverterFrom(cmd.Context()); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("no conversion service configured (set convert.url in config)")
}
