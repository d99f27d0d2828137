//go:build linux

package memstat

import (
	"os"

	"golang.org/x/sys/unix"
)

const meminfoPath = "/proc/meminfo"

// Unused returns the current memory statistics. /proc/meminfo is
// preferred; sysinfo(2) is used when procfs is not mounted.
func Unused() (Memory, error) {
	if f, err := os.Open(meminfoPath); err == nil {
		defer f.Close()
		if m, perr := ParseMeminfo(f); perr == nil {
			return m, nil
		}
	}
	return fromSysinfo()
}

func fromSysinfo() (Memory, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return Memory{}, ErrUnsupportedPlatform
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	m := Memory{
		Total: uint64(info.Totalram) * unit,
		Free:  (uint64(info.Freeram) + uint64(info.Bufferram)) * unit,
	}
	if m.Free > m.Total {
		m.Free = m.Total
	}
	m.Used = m.Total - m.Free
	return m, nil
}
