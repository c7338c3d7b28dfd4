package ioreader

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// FileReader adapts an *os.File to pull.Reader, retrying on transient
// interruption the way §4.6 requires ("the core retries transient
// interruption internally") and the original FD_Reader did with its
// EINTR retry loop. Grounded on tests/posix.hh / tests/posix.cpp
// (original_source), adapted from a raw fd to *os.File since Go exposes
// no portable raw-fd read primitive worth wrapping here.
type FileReader struct {
	f      *os.File
	closed bool
}

// NewFileReader wraps f. The reader closes f itself on EOF or the first
// unrecoverable error, mirroring FD_Reader's destructor-closes-fd
// behavior; reading a reader whose file already closed returns (0, io.EOF).
func NewFileReader(f *os.File) *FileReader {
	return &FileReader{f: f}
}

// Read implements pull.Reader / io.Reader.
func (r *FileReader) Read(buf []byte) (int, error) {
	if r.closed {
		return 0, io.EOF
	}
	for {
		n, err := r.f.Read(buf)
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			r.closed = true
			r.f.Close()
			if err == io.EOF {
				return n, io.EOF
			}
			return n, err
		}
		if n == 0 {
			r.closed = true
			r.f.Close()
			return 0, io.EOF
		}
		return n, nil
	}
}

// Close releases the underlying file early, before EOF is reached.
func (r *FileReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}
