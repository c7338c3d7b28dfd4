package pull

import (
	"fmt"

	"github.com/dbender/streamjson"
)

// InputError is the typed error Cursor and the typed extractors return.
// It plays the role of BNJ::PullParser::input_error in the original: every
// caller-visible failure other than an error returned by the Reader
// itself (which is passed through unchanged), including type and key
// mismatches the original source threw from Get()/Verify*(), surfaces
// through this one type.
type InputError struct {
	// Err is the underlying cause: an *streamjson.ParseError, or one of
	// the sentinels below (ErrTypeMismatch, ErrKeyMismatch,
	// ErrNotIntegral, ErrOutOfRange, ErrUnexpectedEnd, ErrOverlongKey,
	// ErrShortDst).
	Err error

	// Offset is the file offset (§9 "file offset reporting", upgraded
	// per the open question) of the value the error concerns.
	Offset uint64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("streamjson/pull: %s at offset %d", e.Err, e.Offset)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Sentinels for the pull layer's own error conditions, distinct from the
// byte-scanner's streamjson.ErrorCode taxonomy.
var (
	// ErrTypeMismatch is returned by a typed extractor when the current
	// value's Kind doesn't match what was asked for.
	ErrTypeMismatch = errTypeMismatch{}

	// ErrKeyMismatch is returned when a caller-supplied key_enum doesn't
	// match the current value's key.
	ErrKeyMismatch = errKeyMismatch{}

	// ErrNotIntegral is returned by Int/Uint when the current numeric
	// value carries a nonzero decimal exponent.
	ErrNotIntegral = sentinelErr("value is not integral")

	// ErrOutOfRange is returned by Int/Uint when the significand does
	// not fit the requested width.
	ErrOutOfRange = sentinelErr("value out of range")

	// ErrUnexpectedEnd is returned when the reader is exhausted before
	// the document's top-level container closes.
	ErrUnexpectedEnd = sentinelErr("unexpected end of input")

	// ErrOverlongKey is returned by Cursor.GetKey when the caller's
	// destination slice is shorter than the current value's key.
	ErrOverlongKey = sentinelErr("key longer than destination buffer")

	// ErrShortDst is returned by Cursor.ChunkRead when the destination
	// slice cannot hold even one decoded code point (4 bytes is always
	// enough), which would otherwise be indistinguishable from a fully
	// drained string.
	ErrShortDst = sentinelErr("destination too small for a code point")
)

type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }

type errTypeMismatch struct{}

func (errTypeMismatch) Error() string { return "type mismatch" }

type errKeyMismatch struct{}

func (errKeyMismatch) Error() string { return "key mismatch" }

// typeMismatch builds an InputError describing an expected-vs-actual Kind
// mismatch, grounded on s_throw_type_error in the original pull.cpp.
func typeMismatch(want, got streamjson.Kind, offset uint64) *InputError {
	return &InputError{
		Err:    fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want, got),
		Offset: offset,
	}
}

// keyMismatch builds an InputError describing an expected-vs-actual
// key_enum mismatch, grounded on s_throw_key_error in the original
// pull.cpp.
func keyMismatch(wantEnum, gotEnum uint32, offset uint64) *InputError {
	return &InputError{
		Err:    fmt.Errorf("%w: expected key index %d, got %d", ErrKeyMismatch, wantEnum, gotEnum),
		Offset: offset,
	}
}
