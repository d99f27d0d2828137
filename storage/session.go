package storage

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/joshuapare/hexkit/internal/buf"
	"github.com/joshuapare/hexkit/internal/memstat"
	"github.com/joshuapare/hexkit/internal/textenc"
)

// CommitResult tells the caller what Commit actually did.
type CommitResult int

const (
	// CommitWritten means pending writes were copied to the input file.
	CommitWritten CommitResult = iota
	// CommitNoChanges means there was nothing to write.
	CommitNoChanges
	// CommitInPlace means writes already landed in the input file.
	CommitInPlace
	// CommitOutputFile means writes already landed in the output file.
	CommitOutputFile
)

func (r CommitResult) String() string {
	switch r {
	case CommitWritten:
		return "written"
	case CommitNoChanges:
		return "no changes"
	case CommitInPlace:
		return "in-place"
	case CommitOutputFile:
		return "output file"
	default:
		return "unknown"
	}
}

// Session is one opened file plus its storage mode and edit bookkeeping.
//
// A Session is NOT safe for concurrent use, and two sessions must not
// edit the same path.
type Session struct {
	path          string
	scratch       string // scratch copy, or the output path when outputIsFinal
	editable      bool
	inPlace       bool
	outputIsFinal bool
	mode          Mode
	dirty         bool
	cachedLen     int64
	lineWidth     int
	enc           *textenc.Encoding
	log           *slog.Logger

	st     store // nil when closed
	closed bool
}

// Open validates path and opens it according to opts. The caller must
// Close the returned session.
func Open(path string, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		opts.Logger.Error("input file does not exist", "path", path)
		return nil, newError(ErrKindNotFound, "open", path, err)
	case err != nil:
		opts.Logger.Error("stat input file", "path", path, "error", err)
		return nil, newError(ErrKindIO, "open", path, err)
	case info.IsDir():
		opts.Logger.Error("input must be a file, not a directory", "path", path)
		return nil, newError(ErrKindNotAFile, "open", path, nil)
	case !info.Mode().IsRegular():
		return nil, newError(ErrKindNotAFile, "open", path, nil)
	}

	enc, err := textenc.Lookup(opts.Encoding)
	if err != nil {
		return nil, newError(ErrKindInvalidValue, "open", path, err)
	}

	s := &Session{
		path:      path,
		editable:  opts.Editable,
		inPlace:   opts.InPlace,
		cachedLen: info.Size(),
		lineWidth: opts.LineWidth,
		enc:       enc,
		log:       opts.Logger.With("path", path),
	}

	switch {
	case opts.OutputPath != "":
		s.scratch = opts.OutputPath
		s.outputIsFinal = true
		s.editable = true
		s.inPlace = false
		s.mode = ModeMapped
	case opts.InPlace:
		s.mode = ModeMapped
	case opts.AutoMode:
		s.mode = s.autoMode(opts.MemoryProbe)
	default:
		s.mode = opts.Mode
	}
	if s.editable && !s.inPlace && s.scratch == "" {
		s.scratch = scratchPath(path)
	}

	s.log.Debug("opening file",
		"mode", s.mode.String(),
		"editable", s.editable,
		"in_place", s.inPlace,
		"scratch", s.scratch,
		"size", s.cachedLen,
	)

	if err := s.open(true); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) autoMode(probe memstat.Probe) Mode {
	mem, err := probe()
	if err != nil {
		s.log.Warn("memory statistics unavailable, using size threshold", "error", err)
		return SelectMode(s.cachedLen, nil)
	}
	return SelectMode(s.cachedLen, &mem)
}

// usesScratchFile reports whether writes target a copy on disk that this
// session created and therefore owns.
func (s *Session) usesScratchFile() bool {
	return s.editable && s.mode == ModeMapped && !s.inPlace && !s.outputIsFinal && s.scratch != ""
}

// open acquires the backing store. copyFirst controls whether an
// editable Mapped session re-copies the input to its target first.
func (s *Session) open(copyFirst bool) error {
	if s.mode == ModeBuffered {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.log.Error("input file is not readable", "op", "read", "error", err)
			return newError(ErrKindIO, "open", s.path, err)
		}
		s.st = &bufferedStore{buf: data}
		return nil
	}

	target, flag := s.path, os.O_RDONLY
	switch {
	case s.editable && s.inPlace:
		flag = os.O_RDWR
	case s.editable:
		target, flag = s.scratch, os.O_RDWR
		if copyFirst {
			if err := copyFile(s.path, target); err != nil {
				s.log.Error("copy input to edit target", "op", "copy", "target", target, "error", err)
				if s.usesScratchFile() {
					_ = os.Remove(target)
				}
				return newError(ErrKindIO, "copy", target, err)
			}
		}
	}

	f, err := os.OpenFile(target, flag, 0)
	if err != nil {
		s.log.Error("file is not readable, check permissions", "op", "open", "target", target, "error", err)
		if copyFirst && s.usesScratchFile() {
			_ = os.Remove(target)
		}
		return newError(ErrKindIO, "open", target, err)
	}
	s.st = &mappedStore{f: f}
	return nil
}

// closeStore releases the backing store and remembers the last length.
func (s *Session) closeStore() error {
	if s.st == nil {
		return nil
	}
	if n, err := s.st.size(); err == nil {
		s.cachedLen = n
	}
	err := s.st.close()
	s.st = nil
	return err
}

func (s *Session) ready(op string) error {
	if s.closed || s.st == nil {
		return newError(ErrKindClosed, op, s.path, nil)
	}
	return nil
}

// Path returns the input file path.
func (s *Session) Path() string { return s.path }

// ScratchPath returns the edit target when it differs from the input:
// the scratch copy, or the output path. Empty otherwise.
func (s *Session) ScratchPath() string { return s.scratch }

// Mode returns the storage mode chosen at open.
func (s *Session) Mode() Mode { return s.mode }

// Editable reports whether writes are allowed.
func (s *Session) Editable() bool { return s.editable }

// InPlace reports whether writes go straight into the input file.
func (s *Session) InPlace() bool { return s.inPlace }

// Dirty reports whether writes happened since the last commit.
func (s *Session) Dirty() bool { return s.dirty }

// LineWidth returns the configured bytes per dump row.
func (s *Session) LineWidth() int { return s.lineWidth }

// Encoding returns the session's text encoding.
func (s *Session) Encoding() *textenc.Encoding { return s.enc }

// Len returns the content length. It never fails: a closed session, or
// one whose handle can no longer report a size, returns the last known
// length.
func (s *Session) Len() int64 {
	if s.st == nil {
		return s.cachedLen
	}
	n, err := s.st.size()
	if err != nil {
		s.log.Warn("size unavailable, using cached length", "error", err, "cached", s.cachedLen)
		return s.cachedLen
	}
	s.cachedLen = n
	return n
}

// Read returns the bytes in r. Stops past the end are clamped.
func (s *Session) Read(r Range) ([]byte, error) {
	if err := s.ready("read"); err != nil {
		return nil, err
	}
	if err := r.validate("read", s.path); err != nil {
		return nil, err
	}
	length := s.Len()
	want := length - r.Start
	if !r.Open() {
		want = r.Stop - r.Start
	}
	stop, ok := buf.Clamp(r.Start, want, length)
	if !ok {
		return nil, newError(ErrKindOutOfRange, "read", s.path,
			fmt.Errorf("start %d beyond length %d", r.Start, length))
	}
	data, err := s.st.read(r.Start, stop-r.Start)
	if err != nil {
		s.log.Error("read failed", "op", "read", "start", r.Start, "stop", stop, "error", err)
		return nil, newError(ErrKindIO, "read", s.path, err)
	}
	return data, nil
}

// Write stores value at r. With an explicit stop the value is repeated
// and truncated to fill the span exactly; an open range writes value
// once. Writes may extend the content but may not start past its end.
func (s *Session) Write(r Range, value []byte) error {
	if err := s.ready("write"); err != nil {
		return err
	}
	if !s.editable {
		return newError(ErrKindNotEditable, "write", s.path,
			errors.New("open with Editable or call MakeEditable first"))
	}
	if err := r.validate("write", s.path); err != nil {
		return err
	}
	length := s.Len()
	if r.Start > length {
		return newError(ErrKindOutOfRange, "write", s.path,
			fmt.Errorf("start %d beyond length %d", r.Start, length))
	}
	var err error
	if r.Open() {
		err = s.st.write(r.Start, value)
	} else {
		span := r.Stop - r.Start
		if len(value) == 0 && span > 0 {
			return newError(ErrKindInvalidValue, "write", s.path,
				errors.New("empty value cannot fill a non-empty range"))
		}
		if limit, ok := buf.Add(length, MaxExtend); !ok || r.Stop > limit {
			return newError(ErrKindOutOfRange, "write", s.path,
				fmt.Errorf("stop %d more than %d bytes past length %d", r.Stop, MaxExtend, length))
		}
		err = s.writeTiled(r.Start, value, span)
	}
	if err != nil {
		s.log.Error("write failed", "op", "write", "start", r.Start, "len", len(value), "error", err)
		return newError(ErrKindIO, "write", s.path, err)
	}
	s.dirty = true
	return nil
}

// writeTiled writes value repeated and truncated to n bytes at off, one
// bounded chunk at a time. Each chunk holds whole copies of value so the
// pattern stays in phase across chunks.
func (s *Session) writeTiled(off int64, value []byte, n int64) error {
	if int64(len(value)) == n {
		return s.st.write(off, value)
	}
	reps := max(1, fillChunk/len(value))
	tile := fill(value, min(n, int64(reps*len(value))))
	for n > 0 {
		k := min(n, int64(len(tile)))
		if err := s.st.write(off, tile[:k]); err != nil {
			return err
		}
		off += k
		n -= k
	}
	return nil
}

// WriteString encodes v with the session encoding and writes it.
func (s *Session) WriteString(r Range, v string) error {
	b, err := s.enc.Encode(v)
	if err != nil {
		return newError(ErrKindInvalidValue, "write", s.path, err)
	}
	return s.Write(r, b)
}

// Find returns the first offset at or after start where needle occurs
// entirely before stop. stop may be ToEnd. Searches see pending writes.
func (s *Session) Find(needle []byte, start, stop int64) (int64, bool, error) {
	if err := s.ready("find"); err != nil {
		return 0, false, err
	}
	if start < 0 || stop < ToEnd {
		return 0, false, newError(ErrKindOutOfRange, "find", s.path, nil)
	}
	if stop == ToEnd {
		stop = s.Len()
	}
	pos, err := s.st.index(needle, start, stop)
	if err != nil {
		s.log.Error("search failed", "op", "find", "error", err)
		return 0, false, newError(ErrKindIO, "find", s.path, err)
	}
	if pos < 0 {
		return 0, false, nil
	}
	return pos, true, nil
}

// FindString encodes needle with the session encoding and calls Find.
func (s *Session) FindString(needle string, start, stop int64) (int64, bool, error) {
	b, err := s.enc.Encode(needle)
	if err != nil {
		return 0, false, newError(ErrKindInvalidValue, "find", s.path, err)
	}
	return s.Find(b, start, stop)
}

// Matches yields every offset of needle in [start, stop) in ascending
// order, resuming one byte past each hit. The sequence may be ranged over
// more than once.
func (s *Session) Matches(needle []byte, start, stop int64) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		for from := start; stop == ToEnd || from <= stop; {
			pos, ok, err := s.Find(needle, from, stop)
			if err != nil {
				yield(0, err)
				return
			}
			if !ok || !yield(pos, nil) {
				return
			}
			from = pos + 1
		}
	}
}

// FindAll collects Matches.
func (s *Session) FindAll(needle []byte, start, stop int64) ([]int64, error) {
	var hits []int64
	for pos, err := range s.Matches(needle, start, stop) {
		if err != nil {
			return hits, err
		}
		hits = append(hits, pos)
	}
	return hits, nil
}

// MakeEditable grants edit rights after open. A Mapped session reopens on
// a fresh scratch copy; the input file is never touched.
func (s *Session) MakeEditable() error {
	if s.editable {
		return nil
	}
	if err := s.ready("make editable"); err != nil {
		return err
	}
	if s.mode == ModeBuffered {
		s.editable = true
		if !s.inPlace && s.scratch == "" {
			s.scratch = scratchPath(s.path)
		}
		return nil
	}

	if err := s.closeStore(); err != nil {
		s.log.Warn("close before reopen", "error", err)
	}
	s.editable = true
	if !s.inPlace && s.scratch == "" {
		s.scratch = scratchPath(s.path)
	}
	return s.open(true)
}

// Commit makes pending writes visible in the input file. When writes
// already landed in their final place, or there are none, it does nothing
// and says so in the result.
func (s *Session) Commit() (CommitResult, error) {
	if !s.editable {
		return CommitNoChanges, newError(ErrKindNotEditable, "commit", s.path,
			errors.New("the file is not editable and cannot be saved"))
	}
	switch {
	case s.inPlace:
		s.log.Info("in-place edit mode, changes are already in the file, nothing to do")
		return CommitInPlace, nil
	case s.outputIsFinal:
		s.log.Info("output file mode, changes are already in the output file, nothing to do",
			"output", s.scratch)
		return CommitOutputFile, nil
	case !s.dirty:
		s.log.Info("no changes made, nothing to do")
		return CommitNoChanges, nil
	}
	if err := s.ready("commit"); err != nil {
		return CommitNoChanges, err
	}

	var err error
	if s.mode == ModeBuffered {
		err = s.commitBuffered()
	} else {
		err = s.commitMapped()
	}
	if err != nil {
		return CommitNoChanges, err
	}
	s.dirty = false
	return CommitWritten, nil
}

func (s *Session) commitBuffered() error {
	b := s.st.(*bufferedStore)
	if err := writeFile(s.path, b.buf); err != nil {
		s.log.Error("write buffer to input file", "op", "commit", "error", err)
		return newError(ErrKindIO, "commit", s.path, err)
	}
	return nil
}

func (s *Session) commitMapped() error {
	want, err := s.st.checksum()
	if err != nil {
		return newError(ErrKindIO, "commit", s.scratch, err)
	}
	if err := s.closeStore(); err != nil {
		s.log.Warn("close scratch before commit", "error", err)
	}

	copyErr := copyFile(s.scratch, s.path)
	if copyErr == nil {
		got, sumErr := fileChecksum(s.path)
		switch {
		case sumErr != nil:
			copyErr = sumErr
		case got != want:
			copyErr = fmt.Errorf("checksum mismatch after copy: got %016x, want %016x", got, want)
		}
	}

	// Reopen the scratch copy either way so the session stays usable.
	if err := s.open(false); err != nil {
		s.closed = true
		return err
	}
	if copyErr != nil {
		s.log.Error("copy scratch over input file", "op", "commit", "scratch", s.scratch, "error", copyErr)
		return newError(ErrKindIO, "commit", s.path, copyErr)
	}
	return nil
}

// Close releases the handle or buffer and removes the scratch file this
// session created. It is safe to call more than once. Cleanup failures
// are logged and swallowed, so the result is always nil.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.closeStore(); err != nil {
		s.log.Warn("close backing store", "error", err)
	}
	if s.usesScratchFile() {
		if err := os.Remove(s.scratch); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("remove scratch file", "scratch", s.scratch, "error", err)
		}
	}
	return nil
}

// Bytes returns a copy of the whole content.
func (s *Session) Bytes() ([]byte, error) {
	if err := s.ready("bytes"); err != nil {
		return nil, err
	}
	data, err := s.st.snapshot()
	if err != nil {
		return nil, newError(ErrKindIO, "bytes", s.path, err)
	}
	return data, nil
}

// String decodes the whole content with the session encoding. Decoding
// errors yield an empty string.
func (s *Session) String() string {
	data, err := s.Bytes()
	if err != nil {
		return ""
	}
	str, err := s.enc.Decode(data)
	if err != nil {
		return ""
	}
	return str
}

// Checksum returns the xxhash64 digest of the current content, pending
// writes included.
func (s *Session) Checksum() (uint64, error) {
	if err := s.ready("checksum"); err != nil {
		return 0, err
	}
	sum, err := s.st.checksum()
	if err != nil {
		return 0, newError(ErrKindIO, "checksum", s.path, err)
	}
	return sum, nil
}
