package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/hexkit/internal/memstat"
)

func TestSelectMode(t *testing.T) {
	const gb = 1 << 30
	tests := []struct {
		name string
		size int64
		mem  *memstat.Memory
		want Mode
	}{
		{
			name: "plenty of free memory",
			size: 10 << 20,
			mem:  &memstat.Memory{Total: 16 * gb, Free: 8 * gb},
			want: ModeMapped,
		},
		{
			name: "margin below a tenth of total",
			size: 7 * gb,
			mem:  &memstat.Memory{Total: 16 * gb, Free: 8 * gb},
			want: ModeBuffered,
		},
		{
			name: "file larger than free memory",
			size: 9 * gb,
			mem:  &memstat.Memory{Total: 16 * gb, Free: 8 * gb},
			want: ModeBuffered,
		},
		{
			name: "no stats, small file",
			size: 1024,
			want: ModeBuffered,
		},
		{
			name: "no stats, threshold exactly",
			size: 80_000_000,
			want: ModeBuffered,
		},
		{
			name: "no stats, above threshold",
			size: 80_000_001,
			want: ModeMapped,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectMode(tt.size, tt.mem))
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "mapped", ModeMapped.String())
	assert.Equal(t, "buffered", ModeBuffered.String())
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultLineWidth, o.LineWidth)
	assert.NotNil(t, o.Logger)
	assert.NotNil(t, o.MemoryProbe)
}
