// Package convert provides Chinese script conversion between simplified and
// traditional variants. The conversion dictionaries live in an external
// OpenCC-compatible service; this package defines the client-side interface
// and validates conversion config names.
package convert

import (
	"context"
	"fmt"
)

// Converter converts text between Chinese script variants.
type Converter interface {
	// Convert converts text according to the configured conversion. punct
	// also converts punctuation style (corner quotes vs curly quotes).
	Convert(ctx context.Context, text string, punct bool) (string, error)

	// ZhoCheck reports the script variant of text: 0 for neither, 1 for
	// traditional Chinese, 2 for simplified Chinese.
	ZhoCheck(ctx context.Context, text string) (int, error)
}

// DefaultConfig is the conversion applied when none is specified.
const DefaultConfig = "s2t"

// Configs are the supported OpenCC conversion config names.
var Configs = []string{
	"s2t", "t2s", "s2tw", "tw2s", "s2twp", "tw2sp", "s2hk", "hk2s",
	"t2tw", "tw2t", "t2twp", "tw2tp", "t2hk", "hk2t", "t2jp", "jp2t",
}

// ValidateConfig checks name against the supported conversion configs.
// An empty name resolves to DefaultConfig.
func ValidateConfig(name string) (string, error) {
	if name == "" {
		return DefaultConfig, nil
	}
	for _, c := range Configs {
		if c == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown conversion config %q (supported: %v)", name, Configs)
}
