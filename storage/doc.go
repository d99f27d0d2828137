// Package storage provides byte-addressable, random-access sessions over a
// single binary file.
//
// # Modes
//
// A Session uses one of two representations, fixed at open:
//
//   - ModeMapped: work goes through an open file handle. Searches map the
//     file read-only for the duration of one call. Suited to large files.
//   - ModeBuffered: the whole file is read into memory. Suited to small
//     files and many random writes.
//
// With Options.AutoMode the mode comes from SelectMode, which consults
// memory statistics and falls back to a fixed size threshold.
//
// # Editing
//
// Sessions are read-only unless opened with Editable (or upgraded with
// MakeEditable). Edits never touch the input file until Commit:
//
//	s, err := storage.Open("firmware.bin", storage.Options{Editable: true})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	// Blot out 16 bytes with a two-byte pattern.
//	if err := s.Write(storage.Span(0x40, 0x50), []byte{0xDE, 0xAD}); err != nil {
//	    return err
//	}
//	if _, err := s.Commit(); err != nil {
//	    return err
//	}
//
// In ModeMapped the writes land in a scratch copy beside the input
// ("<name>_abcd_.phe") which Commit copies over the input and Close
// removes. In ModeBuffered the in-memory buffer plays that role.
// Options.InPlace writes straight into the input; Options.OutputPath
// writes into a separate output file. In both cases Commit has nothing to do.
//
// # Thread Safety
//
// Sessions are not safe for concurrent use, and concurrent sessions on the
// same path are unsupported.
package storage
