package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/internal/memstat"
	"github.com/joshuapare/hexkit/storage"
)

var infoJSON bool

func init() {
	cmd := newInfoCmd()
	cmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show size, storage mode and checksum of a file",
		Long: `The info command reports how hexkit would open a file: its size, the
storage mode chosen for it, the text encoding and an xxhash64 checksum of the
contents. Memory statistics used by the automatic mode choice are included
when the platform provides them.

Example:
  hexkit info firmware.bin
  hexkit info firmware.bin --mode buffered --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// FileInfo is the info command's report.
type FileInfo struct {
	Path      string          `json:"path"`
	Size      int64           `json:"size"`
	Mode      string          `json:"mode"`
	Encoding  string          `json:"encoding"`
	LineWidth int             `json:"line_width"`
	Checksum  string          `json:"xxhash64"`
	Memory    *memstat.Memory `json:"memory,omitempty"`
}

func runInfo(args []string) error {
	s, err := openSession(args[0], nil)
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := s.Checksum()
	if err != nil {
		return err
	}
	info := FileInfo{
		Path:      s.Path(),
		Size:      s.Len(),
		Mode:      s.Mode().String(),
		Encoding:  s.Encoding().Name(),
		LineWidth: s.LineWidth(),
		Checksum:  fmt.Sprintf("%016x", sum),
	}
	if mem, err := memstat.Unused(); err == nil {
		info.Memory = &mem
	} else {
		printVerbose("Memory statistics unavailable: %v\n", err)
	}

	if infoJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	printInfo("File:      %s\n", info.Path)
	printInfo("Size:      %d bytes (0x%X)\n", info.Size, info.Size)
	printInfo("Mode:      %s\n", info.Mode)
	printInfo("Encoding:  %s\n", info.Encoding)
	printInfo("Checksum:  %s (xxhash64)\n", info.Checksum)
	if info.Memory != nil {
		printInfo("Memory:    %d free of %d bytes\n", info.Memory.Free, info.Memory.Total)
	}
	if info.Size > 0 && s.Mode() == storage.ModeBuffered {
		printVerbose("File is held in memory\n")
	}
	return nil
}
