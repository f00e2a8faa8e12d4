package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercrane/reflow/internal/api"
	"github.com/papercrane/reflow/internal/svcctx"
)

// zhoCheckResult names the numeric variant codes for structured output.
type zhoCheckResult struct {
	Result  int    `json:"result" yaml:"result"`
	Variant string `json:"variant" yaml:"variant"`
}

var zhoCheckCmd = &cobra.Command{
	Use:   "zho-check [file]",
	Short: "Detect whether text is simplified or traditional Chinese",
	Long: `Zho-check reports the script variant of the input text:
0 for neither, 1 for traditional Chinese, 2 for simplified Chinese.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		converter := svcctx.ConverterFrom(cmd.Context())
		if converter == nil {
			return fmt.Errorf("no conversion service configured (set convert.url in config)")
		}

		result, err := converter.ZhoCheck(cmd.Context(), text)
		if err != nil {
			return err
		}

		variant := "neither"
		switch result {
		case 1:
			variant = "traditional"
		case 2:
			variant = "simplified"
		}
		return api.Output(zhoCheckResult{Result: result, Variant: variant})
	},
}
