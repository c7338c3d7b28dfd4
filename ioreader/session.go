package ioreader

import (
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrSessionTooLarge is returned by Session.Read once MaxBytes have been
// pulled from the underlying document (reads are clamped so the total
// never goes past it), a safety valve for
// fuzz/property-test harnesses that feed adversarial input and must not
// let a single session run away with memory.
var ErrSessionTooLarge = errors.New("ioreader: session exceeded max bytes")

// Session wraps a BytesReader with a stable ID and a hard byte ceiling,
// used by the property-based fragmentation harness (SPEC_FULL.md §8
// property 5) to run many independently-identifiable parses of random
// generated documents without any one of them over-reading.
type Session struct {
	ID       uuid.UUID
	MaxBytes int

	r     *BytesReader
	total int
}

// NewSession starts a session over doc, tagging it with a fresh random
// ID for log correlation across a fuzz run.
func NewSession(doc []byte, maxBytes int) *Session {
	return &Session{
		ID:       uuid.New(),
		MaxBytes: maxBytes,
		r:        NewBytesReader(doc),
	}
}

// Read implements pull.Reader / io.Reader, enforcing MaxBytes.
func (s *Session) Read(dst []byte) (int, error) {
	if s.total >= s.MaxBytes {
		return 0, ErrSessionTooLarge
	}
	if remaining := s.MaxBytes - s.total; len(dst) > remaining {
		dst = dst[:remaining]
	}
	n, err := s.r.Read(dst)
	s.total += n
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, err
}

// BytesRead reports how many bytes this session has pulled so far.
func (s *Session) BytesRead() int {
	return s.total
}
