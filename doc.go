// Package streamjson implements the byte-driven half of an incremental,
// allocation-free JSON scanner (Layer A). Parse consumes a caller-owned
// buffer and writes completed Values into a caller-owned slice, resuming
// exactly where it left off across arbitrarily split input — including
// inside a multi-byte UTF-8 sequence or a \uXXXX surrogate pair.
//
// Nothing in this package allocates on the parse path: ParseStack and
// the value slice are sized once by the caller via NewParseStack and
// NewParserState. See package streamjson/pull for the buffered,
// cursor-style wrapper most callers want instead of driving Parse
// directly.
package streamjson
