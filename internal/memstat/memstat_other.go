//go:build !linux

package memstat

// Unused always fails outside Linux; callers fall back to a constant
// size threshold.
func Unused() (Memory, error) {
	return Memory{}, ErrUnsupportedPlatform
}
