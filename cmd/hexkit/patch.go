package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/dump"
	"github.com/joshuapare/hexkit/storage"
)

var (
	patchEnd     string
	patchHex     bool
	patchOutput  string
	patchInPlace bool
	patchDryRun  bool
)

func init() {
	cmd := newPatchCmd()
	cmd.Flags().StringVarP(&patchEnd, "end", "e", "", "Fill up to this offset (exclusive) by repeating the value")
	cmd.Flags().BoolVar(&patchHex, "hex", false, "Treat the value as hex bytes")
	cmd.Flags().StringVarP(&patchOutput, "output", "o", "", "Write the patched copy here and leave the input untouched")
	cmd.Flags().BoolVar(&patchInPlace, "in-place", false, "Write directly into the input file (no scratch copy)")
	cmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Show the patched rows without saving")
	rootCmd.AddCommand(cmd)
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <file> <offset> <value>",
		Short: "Overwrite bytes at an offset",
		Long: `The patch command writes value at offset. With --end the value is repeated
and truncated to fill exactly [offset, end), so a short pattern can blot out a
whole region.

Edits go to a scratch copy that replaces the file only once the write
succeeded. Use --output to keep the input and write a patched copy instead.

Example:
  hexkit patch firmware.bin 0x20 "HELLO"
  hexkit patch firmware.bin 0x100 --end 0x200 --hex 00
  hexkit patch firmware.bin 0 --hex "7f454c46" -o patched.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(args)
		},
	}
	return cmd
}

func runPatch(args []string) error {
	if patchOutput != "" && patchInPlace {
		return fmt.Errorf("--output and --in-place are mutually exclusive")
	}
	offset, err := parseOffset(args[1])
	if err != nil {
		return err
	}
	r := storage.From(offset)
	if patchEnd != "" {
		end, err := parseOffset(patchEnd)
		if err != nil {
			return err
		}
		r = storage.Span(offset, end)
	}

	s, err := openSession(args[0], func(o *storage.Options) {
		o.Editable = true
		if !patchDryRun {
			o.OutputPath = patchOutput
			o.InPlace = patchInPlace
		}
	})
	if err != nil {
		return err
	}
	defer s.Close()

	value, err := needleBytes(s, args[2], patchHex)
	if err != nil {
		return err
	}
	if err := s.Write(r, value); err != nil {
		return err
	}

	if patchDryRun || verbose {
		style, err := headerStyler()
		if err != nil {
			return err
		}
		opts := dump.AroundOptions{RowsAbove: 1, RowsBelow: 1}
		opts.StyleHeader = style
		if err := dump.RenderAround(os.Stdout, s, offset, opts); err != nil {
			return err
		}
	}
	if patchDryRun {
		printInfo("Dry run, nothing saved\n")
		return nil
	}

	res, err := s.Commit()
	if err != nil {
		return err
	}
	switch res {
	case storage.CommitOutputFile:
		printInfo("Patched copy written to %s\n", s.ScratchPath())
	default:
		printInfo("Patched %s at 0x%08X (%s)\n", s.Path(), offset, res)
	}
	return nil
}
