package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/joshuapare/hexkit/dump"
	"github.com/joshuapare/hexkit/storage"
)

// resetFlags restores every flag variable to its default
func resetFlags() {
	verbose = false
	quiet = false
	lineWidth = storage.DefaultLineWidth
	encodingName = "utf-8"
	modeName = "auto"
	colorMode = "never"
	logFile = ""

	dumpStart = "0"
	dumpEnd = ""
	rowsPerHeader = dump.DefaultRowsPerHeader

	findAll = false
	findHex = false
	findFrom = "0"
	findAbove = dump.DefaultRowsAbove
	findBelow = dump.DefaultRowsBelow

	patchEnd = ""
	patchHex = false
	patchOutput = ""
	patchInPlace = false
	patchDryRun = false

	infoJSON = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs don't block the writer
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput: %s", err, output)
	}
	return result
}
