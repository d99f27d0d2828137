package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/hexkit/dump"
	"github.com/joshuapare/hexkit/storage"
)

var (
	findAll   bool
	findHex   bool
	findFrom  string
	findAbove int
	findBelow int
)

func init() {
	cmd := newFindCmd()
	cmd.Flags().BoolVar(&findAll, "all", false, "List every match offset instead of showing context")
	cmd.Flags().BoolVar(&findHex, "hex", false, "Treat the needle as hex bytes (e.g. \"de ad be ef\")")
	cmd.Flags().StringVar(&findFrom, "from", "0", "Offset to start searching at")
	cmd.Flags().IntVar(&findAbove, "above", dump.DefaultRowsAbove, "Context rows before the match")
	cmd.Flags().IntVar(&findBelow, "below", dump.DefaultRowsBelow, "Context rows after the match")
	rootCmd.AddCommand(cmd)
}

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <file> <needle>",
		Short: "Search a file for a string or byte sequence",
		Long: `The find command locates the first occurrence of needle and prints the
rows around it. The needle is encoded with --encoding unless --hex is given.

Example:
  hexkit find firmware.bin "VERSION"
  hexkit find firmware.bin --hex "7f 45 4c 46"
  hexkit find firmware.bin "AB" --all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(args)
		},
	}
	return cmd
}

// decodeHex parses hex bytes, ignoring whitespace and an optional 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return b, nil
}

// needleBytes turns a command-line value into bytes for s.
func needleBytes(s *storage.Session, value string, asHex bool) ([]byte, error) {
	if asHex {
		return decodeHex(value)
	}
	return s.Encoding().Encode(value)
}

func runFind(args []string) error {
	s, err := openSession(args[0], nil)
	if err != nil {
		return err
	}
	defer s.Close()

	needle, err := needleBytes(s, args[1], findHex)
	if err != nil {
		return err
	}
	if len(needle) == 0 {
		return fmt.Errorf("needle must not be empty")
	}
	from, err := parseOffset(findFrom)
	if err != nil {
		return err
	}

	if findAll {
		hits, err := s.FindAll(needle, from, storage.ToEnd)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			return fmt.Errorf("%q not found", args[1])
		}
		for _, hit := range hits {
			printInfo("0x%08X\n", hit)
		}
		printVerbose("%d match(es)\n", len(hits))
		return nil
	}

	style, err := headerStyler()
	if err != nil {
		return err
	}
	opts := dump.AroundOptions{RowsAbove: findAbove, RowsBelow: findBelow}
	opts.StyleHeader = style

	_, ok, err := dump.Search(os.Stdout, s, needle, from, opts)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q not found", args[1])
	}
	return nil
}
