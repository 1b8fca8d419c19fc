package configs

import "os"

const (
	// EnvOutputFormat is the environment variable for global output format
	EnvOutputFormat = "CTOW_OUTPUT_FORMAT"
	// EnvUI is the environment variable selecting the interactive front-end
	EnvUI = "CTOW_UI"
)

// GetGlobalOutputFormat resolves the global output format name from:
// 1. Environment variable CTOW_OUTPUT_FORMAT (highest priority)
// 2. Config file OutputFormat setting
// 3. Default to empty string (caller should use default format)
func (c *Config) GetGlobalOutputFormat() string {
	if envFormat := os.Getenv(EnvOutputFormat); envFormat != "" {
		return envFormat
	}

	if c != nil && c.OutputFormat != "" {
		return c.OutputFormat
	}

	return ""
}

// GetUI resolves the interactive front-end, CTOW_UI first.
func (c *Config) GetUI() string {
	if ui := os.Getenv(EnvUI); ui != "" {
		return ui
	}
	if c != nil && c.UI != "" {
		return c.UI
	}
	return defaultUI
}
