package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/cmd/hexkit/logger"
	"github.com/joshuapare/hexkit/dump"
	"github.com/joshuapare/hexkit/storage"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	lineWidth    int
	encodingName string
	modeName     string
	colorMode    string
	logFile      string

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "hexkit",
	Short: "View, search and patch binary files",
	Long: `hexkit provides a hex/character view of binary files, substring search
with context, and safe editing through a scratch copy that only replaces the
original file on commit.

Large files are worked on through the file handle; small files are loaded
into memory. The choice is automatic unless --mode is given.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := GetConfig()
		if err != nil {
			printVerbose("Ignoring environment config: %v\n", err)
		} else {
			applyConfig(cmd, cfg)
		}
		closeLog, err = logger.Init(logger.Options{Quiet: quiet, Verbose: verbose, File: logFile})
		return err
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return closeLog()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.IntVarP(&lineWidth, "bytes", "b", storage.DefaultLineWidth, "Bytes per line")
	pf.StringVar(&encodingName, "encoding", "utf-8", "String encoding")
	pf.StringVar(&modeName, "mode", "auto", "Storage mode: auto, mapped or buffered")
	pf.StringVar(&colorMode, "color", "auto", "Color headers: auto, always or never")
	pf.StringVar(&logFile, "log-file", "", "Write JSON logs to this file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// parseOffset accepts decimal, 0x-prefixed hex, 0o octal and 0b binary.
func parseOffset(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("offset %q must not be negative", s)
	}
	return v, nil
}

// parseMode maps the --mode flag to storage options.
func parseMode(s string) (auto bool, mode storage.Mode, err error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return true, storage.ModeMapped, nil
	case "mapped", "bigfile":
		return false, storage.ModeMapped, nil
	case "buffered", "memory":
		return false, storage.ModeBuffered, nil
	default:
		return false, 0, fmt.Errorf("invalid mode %q (want auto, mapped or buffered)", s)
	}
}

// sessionOptions builds storage options from the global flags.
func sessionOptions() (storage.Options, error) {
	auto, mode, err := parseMode(modeName)
	if err != nil {
		return storage.Options{}, err
	}
	if lineWidth <= 0 || lineWidth > dump.MaxLineWidth {
		return storage.Options{}, fmt.Errorf("--bytes must be between 1 and %d", dump.MaxLineWidth)
	}
	return storage.Options{
		AutoMode:  auto,
		Mode:      mode,
		Encoding:  encodingName,
		LineWidth: lineWidth,
		Logger:    logger.L,
	}, nil
}

// openSession opens path with the global flags; edit tweaks the options.
func openSession(path string, edit func(*storage.Options)) (*storage.Session, error) {
	opts, err := sessionOptions()
	if err != nil {
		return nil, err
	}
	if edit != nil {
		edit(&opts)
	}
	printVerbose("Opening file: %s\n", path)
	s, err := storage.Open(path, opts)
	if err != nil {
		return nil, err
	}
	printVerbose("Storage mode: %s\n", s.Mode())
	return s, nil
}
