package pull

import "io"

// Reader supplies more input bytes to a Cursor. It is exactly io.Reader's
// contract (a 0, io.EOF return signals the end of input) — the original
// source's BNJ::PullParser::Reader::Read hand-rolled this same shape
// (bytes read, or 0 at end, or an error) before Go had an interface for
// it; io.Reader is the idiomatic equivalent, so Cursor.Begin takes one
// directly rather than defining a parallel interface. See ioreader for
// adapters from common sources (a fixed []byte, an *os.File).
type Reader = io.Reader
