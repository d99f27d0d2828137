package storage

import (
	"io"
	"log/slog"

	"github.com/joshuapare/hexkit/internal/memstat"
)

const (
	// DefaultLineWidth is the number of bytes per dump row.
	DefaultLineWidth = 16

	// mappedThreshold is the file size above which Mapped mode is chosen
	// when memory statistics are unavailable.
	mappedThreshold = 80_000_000

	// MaxExtend is how far past the current end a fill may reach.
	MaxExtend int64 = 1 << 30

	// fillChunk is the largest tiled pattern written in one store call.
	fillChunk = 64 << 10
)

// Mode is the storage representation of a session.
type Mode int

const (
	// ModeMapped keeps the data on disk and works through a file handle.
	ModeMapped Mode = iota
	// ModeBuffered reads the whole file into one owned buffer.
	ModeBuffered
)

func (m Mode) String() string {
	switch m {
	case ModeMapped:
		return "mapped"
	case ModeBuffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// SelectMode picks a Mode for a file of size bytes. mem is nil when
// memory statistics could not be obtained.
func SelectMode(size int64, mem *memstat.Memory) Mode {
	if mem != nil {
		if int64(mem.Free)-size > int64(mem.Total/10) {
			return ModeMapped
		}
		return ModeBuffered
	}
	if size > mappedThreshold {
		return ModeMapped
	}
	return ModeBuffered
}

// Options controls how a file is opened.
type Options struct {
	// Editable allows Write and Commit. Without InPlace or OutputPath the
	// writes go to a scratch copy until Commit.
	Editable bool

	// OutputPath, when set, receives a copy of the input and all writes.
	// It implies Editable and ModeMapped, and makes Commit a no-op.
	OutputPath string

	// InPlace writes straight into the input file. Implies ModeMapped.
	InPlace bool

	// AutoMode picks the mode with SelectMode. When false, Mode is used.
	AutoMode bool

	// Mode is the forced mode when AutoMode is false.
	Mode Mode

	// Encoding names the charset used for string conversions.
	// Default: "utf-8".
	Encoding string

	// LineWidth is the number of bytes per dump row. Default: 16.
	LineWidth int

	// Logger receives diagnostics. Default: discarded.
	Logger *slog.Logger

	// MemoryProbe reports memory statistics for AutoMode.
	// Default: memstat.Unused.
	MemoryProbe memstat.Probe
}

func (o Options) withDefaults() Options {
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.MemoryProbe == nil {
		o.MemoryProbe = memstat.Unused
	}
	return o
}
