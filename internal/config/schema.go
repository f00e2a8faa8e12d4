package config

// Config holds reflow configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Reflow  ReflowCfg  `mapstructure:"reflow" yaml:"reflow"`
	Convert ConvertCfg `mapstructure:"convert" yaml:"convert"`
	Extract ExtractCfg `mapstructure:"extract" yaml:"extract"`
}

// ReflowCfg specifies default paragraph-reflow behavior.
type ReflowCfg struct {
	// Compact joins paragraphs with a single newline instead of a blank line.
	Compact bool `mapstructure:"compact" yaml:"compact"`
	// PageHeaders preserves page-boundary blank lines instead of merging
	// paragraphs across pages.
	PageHeaders bool `mapstructure:"page_headers" yaml:"page_headers"`
}

// ConvertCfg configures the script-conversion service client.
type ConvertCfg struct {
	URL     string `mapstructure:"url" yaml:"url"`         // Conversion service base URL
	Config  string `mapstructure:"config" yaml:"config"`   // Conversion config name (s2t, t2s, ...)
	Punct   bool   `mapstructure:"punct" yaml:"punct"`     // Convert punctuation as well
	Retries uint   `mapstructure:"retries" yaml:"retries"` // Attempts per request
	Timeout int    `mapstructure:"timeout" yaml:"timeout"` // Request timeout in seconds
}

// ExtractCfg specifies default PDF extraction behavior.
type ExtractCfg struct {
	// PageMarkers inserts "=== [i/N] ===" lines between extracted pages.
	PageMarkers bool `mapstructure:"page_markers" yaml:"page_markers"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Reflow: ReflowCfg{
			Compact:     false,
			PageHeaders: false,
		},
		Convert: ConvertCfg{
			URL:     "http://localhost:8091",
			Config:  "s2t",
			Punct:   false,
			Retries: 3,
			Timeout: 30,
		},
		Extract: ExtractCfg{
			PageMarkers: false,
		},
	}
}
