// Package memstat reports physical memory statistics used to decide
// whether a file is small enough to hold in memory.
package memstat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUnsupportedPlatform is returned when the platform cannot report
// memory statistics.
var ErrUnsupportedPlatform = errors.New("memstat: memory statistics not available on this platform")

// Memory holds physical memory counters in bytes.
type Memory struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
	Used  uint64 `json:"used"`
}

// Probe is the signature of Unused, so callers can substitute it in tests.
type Probe func() (Memory, error)

// ParseMeminfo reads a /proc/meminfo style listing. Free memory counts
// MemFree, Buffers and Cached, since the page cache is reclaimable.
func ParseMeminfo(r io.Reader) (Memory, error) {
	var (
		m        Memory
		gotTotal bool
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "MemTotal:", "MemFree:", "Buffers:", "Cached:":
		default:
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Memory{}, fmt.Errorf("memstat: parse %s: %w", fields[0], err)
		}
		if fields[0] == "MemTotal:" {
			m.Total = kb * 1024
			gotTotal = true
			continue
		}
		m.Free += kb * 1024
	}
	if err := sc.Err(); err != nil {
		return Memory{}, err
	}
	if !gotTotal {
		return Memory{}, fmt.Errorf("memstat: MemTotal missing: %w", ErrUnsupportedPlatform)
	}
	if m.Free > m.Total {
		m.Free = m.Total
	}
	m.Used = m.Total - m.Free
	return m, nil
}
