package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/dump"
)

var (
	dumpStart     string
	dumpEnd       string
	rowsPerHeader int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVarP(&dumpStart, "start", "s", "0", "First offset to show")
	cmd.Flags().StringVarP(&dumpEnd, "end", "e", "", "End offset, exclusive (default: end of file)")
	cmd.Flags().IntVarP(&rowsPerHeader, "lines", "l", dump.DefaultRowsPerHeader, "Lines to print before repeating the header")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a hex and character view of a file",
		Long: `The dump command prints a byte range as rows of hex values next to their
characters. Offsets accept decimal or 0x-prefixed hex.

Example:
  hexkit dump firmware.bin
  hexkit dump firmware.bin --start 0x100 --end 0x200
  hexkit dump firmware.bin -b 8 -l 32 --encoding cp1252`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	s, err := openSession(args[0], nil)
	if err != nil {
		return err
	}
	defer s.Close()

	begin, err := parseOffset(dumpStart)
	if err != nil {
		return err
	}
	end := s.Len()
	if dumpEnd != "" {
		if end, err = parseOffset(dumpEnd); err != nil {
			return err
		}
		if end <= begin {
			return fmt.Errorf("--end (0x%X) must be greater than --start (0x%X)", end, begin)
		}
	}
	style, err := headerStyler()
	if err != nil {
		return err
	}

	return dump.Render(os.Stdout, s, dump.Options{
		Begin:         begin,
		End:           end,
		RowsPerHeader: rowsPerHeader,
		StyleHeader:   style,
	})
}
