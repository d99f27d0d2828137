package main

import (
	"github.com/gobeaver/beaver-kit/config"
	"github.com/spf13/cobra"
)

// Config holds environment defaults. Flags given on the command line win.
// The loader prefixes each variable with BEAVER_, e.g. BEAVER_HEXKIT_LINE_WIDTH.
type Config struct {
	LineWidth     int    `env:"HEXKIT_LINE_WIDTH,default:16"`
	RowsPerHeader int    `env:"HEXKIT_ROWS_PER_HEADER,default:16"`
	Encoding      string `env:"HEXKIT_ENCODING,default:utf-8"`
	Mode          string `env:"HEXKIT_MODE,default:auto"`
	Color         string `env:"HEXKIT_COLOR,default:auto"`
	LogFile       string `env:"HEXKIT_LOG_FILE"`
	Verbose       bool   `env:"HEXKIT_VERBOSE,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyConfig copies cfg into the global flag variables whose flags were
// not set explicitly.
func applyConfig(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if !flags.Changed("bytes") && cfg.LineWidth > 0 {
		lineWidth = cfg.LineWidth
	}
	if !flags.Changed("encoding") && cfg.Encoding != "" {
		encodingName = cfg.Encoding
	}
	if !flags.Changed("mode") && cfg.Mode != "" {
		modeName = cfg.Mode
	}
	if !flags.Changed("color") && cfg.Color != "" {
		colorMode = cfg.Color
	}
	if !flags.Changed("log-file") && cfg.LogFile != "" {
		logFile = cfg.LogFile
	}
	if !flags.Changed("verbose") && cfg.Verbose {
		verbose = true
	}
	if flags.Lookup("lines") != nil && !flags.Changed("lines") && cfg.RowsPerHeader > 0 {
		rowsPerHeader = cfg.RowsPerHeader
	}
}
