package pull

import (
	"io"

	"github.com/dbender/streamjson"
)

// State is the result of one Pull call, mirroring
// BNJ::PullParser::State in pull.hh.
type State uint8

const (
	StateBegin State = iota
	StateNoData
	StateMap
	StateList
	StateDatum
	StateAscendMap
	StateAscendList
)

func (s State) String() string {
	switch s {
	case StateBegin:
		return "begin"
	case StateNoData:
		return "no-data"
	case StateMap:
		return "map"
	case StateList:
		return "list"
	case StateDatum:
		return "datum"
	case StateAscendMap:
		return "ascend-map"
	case StateAscendList:
		return "ascend-list"
	default:
		return "unknown"
	}
}

// Cursor is the buffered, depth-lagging pull-style wrapper around
// streamjson.Parse. It owns a caller-sized scratch buffer and reader, and
// turns the byte scanner's value stream into a sequence of Map/List
// descents, Datum events (scalars, or an object/array's key just before
// a descent), and AscendMap/AscendList events. Grounded on
// BNJ::PullParser (benejson/pull.hh, pull.cpp).
//
// A Cursor is not safe for concurrent use; it is meant to be driven by
// one goroutine the way the byte scanner underneath it is.
type Cursor struct {
	buffer []byte
	reader Reader

	st   *streamjson.ParserState
	pctx streamjson.ParseContext

	depth uint32
	state State

	firstUnparsed uint32
	firstEmpty    uint32
	parseBase     uint32 // firstUnparsed at the time of the Value currently held

	// keyBias is the §4.7 key-length bias: how many bytes at the buffer
	// head belong to a key (or key-owning fragment) carried over from
	// before the current parse window. The pending value's KeyOffset is
	// window-relative, so its absolute position is
	// parseBase + KeyOffset - keyBias. Zero whenever no key straddles.
	keyBias uint32

	bufferBase uint64 // file offset corresponding to buffer[0] right now
	eof        bool

	// In-progress string chunk, valid while state == StateDatum and the
	// current value's Kind is KindString.
	needDrain bool
	chunkMore bool
	chunkPos  uint32
	chunkEnd  uint32
	haveLead  bool
	leadCP    uint32

	drainScratch [64]byte
}

// NewCursor builds a Cursor around a caller-owned scratch buffer and
// nesting stack, both sized once and reused across every document parsed
// by successive calls to Begin.
func NewCursor(buffer []byte, stack *streamjson.ParseStack) *Cursor {
	c := &Cursor{buffer: buffer}
	c.st = streamjson.NewParserState(make([]streamjson.Value, 1), stack)
	return c
}

// Begin readies the cursor to read a fresh top-level document from
// reader, reusing its buffer and stack. keySet, if non-nil, must be
// sorted lexicographically (ASCII only, §9) and applies to every key
// read until the next Begin or SetKeySet.
func (c *Cursor) Begin(reader Reader, keySet []string) {
	c.reader = reader
	c.pctx = streamjson.ParseContext{KeySet: keySet}
	c.state = StateBegin
	c.depth = 0
	c.firstUnparsed = 0
	c.firstEmpty = 0
	c.parseBase = 0
	c.keyBias = 0
	c.bufferBase = 0
	c.eof = false
	c.needDrain = false
	c.chunkMore = false
	c.haveLead = false
	c.st.Reset()
}

// SetKeySet changes the eagerly-matched key set applied to keys read
// from this point forward, without restarting the document. Grounded on
// jsongrab.cpp's per-call `Pull(keys, 1)`, which re-targets the key set
// on every call while walking down a path; Cursor instead exposes the
// retarget as an explicit step since Go's Pull takes no arguments.
func (c *Cursor) SetKeySet(keySet []string) {
	c.pctx.KeySet = keySet
}

// State reports the result of the most recent Pull.
func (c *Cursor) State() State { return c.state }

// Depth reports the cursor's own lagged nesting depth (§4.4).
func (c *Cursor) Depth() uint32 { return c.depth }

// Value returns the value Pull most recently produced, valid only while
// State() == StateDatum.
func (c *Cursor) Value() *streamjson.Value {
	return &c.st.Values()[0]
}

// FileOffset reports the (advisory, §9) file offset at which v's payload
// begins, maintaining the monotonic total-bytes-consumed counter the
// open question recommends in place of the original's FileOffset() stub.
func (c *Cursor) FileOffset(v *streamjson.Value) uint64 {
	if v.Kind == streamjson.KindString {
		return c.bufferBase + uint64(c.parseBase) + uint64(v.StrvalOffset)
	}
	return c.bufferBase + uint64(c.parseBase+v.KeyOffset-c.keyBias)
}

// GetKey copies the current value's object key into dst, grounded on
// BNJ::GetKey. Returns the number of bytes written.
func (c *Cursor) GetKey(dst []byte) (int, error) {
	v := c.Value()
	if int(v.KeyLength) > len(dst) {
		return 0, &InputError{Err: ErrOverlongKey, Offset: c.FileOffset(v)}
	}
	start := c.parseBase + v.KeyOffset - c.keyBias
	return copy(dst, c.buffer[start:start+uint32(v.KeyLength)]), nil
}

// Up drives Pull repeatedly, discarding whatever it returns, until the
// cursor's depth drops by one. Grounded on BNJ::PullParser::Up.
func (c *Cursor) Up() (State, error) {
	target := c.depth - 1
	for c.depth > target {
		state, err := c.Pull()
		if err != nil {
			return state, err
		}
	}
	return c.state, nil
}

// Pull drives the scanner forward far enough to produce exactly one of:
// a new descent (Map/List), a new ascent (AscendMap/AscendList), or a
// Datum (a scalar, or a container-begin value carrying its key) — never
// more than one event per call (§4.4 "value ordering guarantee").
// Grounded on BNJ::PullParser::Pull.
func (c *Cursor) Pull() (State, error) {
	if c.depth == 0 && c.state != StateBegin {
		c.state = StateNoData
		return c.state, nil
	}

	if c.state == StateDatum && c.needDrain {
		if err := c.drainCurrentString(); err != nil {
			return c.state, err
		}
	}

	for {
		if c.depth < c.st.Depth() {
			c.depth++
			if c.st.FrameIsObject(c.depth) {
				c.state = StateMap
			} else {
				c.state = StateList
			}
			return c.state, nil
		}
		if c.depth > c.st.Depth() {
			isObject := c.st.FrameIsObject(c.depth)
			c.depth--
			if isObject {
				c.state = StateAscendMap
			} else {
				c.state = StateAscendList
			}
			return c.state, nil
		}

		produced, err := c.step()
		if err != nil {
			return c.state, err
		}
		if produced {
			c.state = StateDatum
			return c.state, nil
		}
	}
}

// step fills the buffer if needed and drives Parse exactly once,
// reclaiming and looping internally while a call neither produces a
// value nor changes depth (an in-progress key, number, or reserved
// word straddling the buffer end). It returns once a value is ready, the
// depth changes (left for Pull's loop to report), or an error occurs.
func (c *Cursor) step() (bool, error) {
	for {
		madeRoom := c.reclaim()

		if err := c.fillBuffer(); err != nil {
			return false, err
		}
		if c.firstUnparsed == c.firstEmpty {
			if !madeRoom && c.firstEmpty >= uint32(len(c.buffer)) {
				return false, &InputError{Err: ErrOverlongKey, Offset: c.bufferBase + uint64(c.firstUnparsed)}
			}
			return false, &InputError{Err: ErrUnexpectedEnd, Offset: c.bufferBase + uint64(c.firstUnparsed)}
		}

		c.parseBase = c.firstUnparsed
		n := streamjson.Parse(c.st, &c.pctx, c.buffer[c.firstUnparsed:c.firstEmpty])
		c.firstUnparsed += uint32(n)

		if code, isErr := c.st.Err(); isErr {
			off := c.bufferBase + uint64(c.parseBase) + uint64(n)
			return false, &InputError{Err: &streamjson.ParseError{Code: code, Offset: int(off)}, Offset: off}
		}

		values := c.st.Values()
		if len(values) > 0 {
			c.setupChunk(&values[0], n)
			return true, nil
		}

		if c.depth != c.st.Depth() {
			return false, nil
		}
		if c.eof {
			return false, &InputError{Err: ErrUnexpectedEnd, Offset: c.bufferBase + uint64(c.firstUnparsed)}
		}
	}
}

func (c *Cursor) fillBuffer() error {
	for c.firstEmpty < uint32(len(c.buffer)) && !c.eof {
		n, err := c.reader.Read(c.buffer[c.firstEmpty:])
		if n > 0 {
			c.firstEmpty += uint32(n)
		}
		if err != nil {
			if err == io.EOF {
				c.eof = true
				return nil
			}
			return err
		}
		if n == 0 {
			c.eof = true
		}
	}
	return nil
}

// reclaim frees up buffer room ahead of a refill by dropping bytes the
// scanner has already reported and will never need again, so the buffer
// can absorb an arbitrarily long document even though it never grows.
// It preserves what must survive: the bytes of a key whose value has
// not been delivered yet, shifted to the buffer head so GetKey finds
// them contiguous (grounded on bnj_fragshift's key branch), plus
// whatever the scanner has not scanned at all yet.
//
// A string value's own raw bytes never need preserving here: ChunkRead
// always drains a chunk's buffered span before step is re-entered for
// more (setupChunk's chunkEnd lands at or before firstUnparsed — short of
// it when the scan stopped mid escape, see EscapeTrim), and a
// number/reserved-word fragment persists through PAF alone. A trimmed
// escape's own prefix bytes don't need preserving either: the scanner's
// hexAccum/hexPos/inSurrogate already hold everything needed to resume
// decoding it, and its completed code point reaches ChunkRead later via
// Value.PendingLeadingCodePoint rather than a raw replay. Returns whether
// any bytes were actually reclaimed — false means the pending fragment
// already sits at the buffer head and a full buffer truly has no room
// left for it (an overlong key).
func (c *Cursor) reclaim() bool {
	pending := c.st.Pending()

	// A pending fragment owns key bytes that must stay addressable when:
	// the key itself is still being read, the key is done but its value
	// has not started (middle), or a non-string value straddles the
	// window and will be delivered whole later with its key attached.
	// String values are exempt once their first chunk is out — pinning
	// the key would stop an arbitrarily long string from streaming
	// through a fixed buffer, and GetKey's contract already demands the
	// caller copy the key before reading chunks.
	f := pending.Flags
	keyPending := f&(streamjson.FlagKeyFragment|streamjson.FlagMiddle) != 0 ||
		(f&streamjson.FlagValFragment != 0 && pending.Kind != streamjson.KindString && pending.KeyLength > 0)

	if !keyPending {
		keepFrom := c.firstUnparsed
		c.keyBias = 0
		if keepFrom == 0 {
			return false
		}
		n := copy(c.buffer, c.buffer[keepFrom:c.firstEmpty])
		c.bufferBase += uint64(keepFrom)
		c.firstUnparsed = 0
		c.firstEmpty = uint32(n)
		c.parseBase = 0
		return true
	}

	// Key bytes move to the buffer head; already-consumed bytes between
	// the key's end and the unparsed tail (the colon, the scanned prefix
	// of a number or reserved word — all reconstructible from parser
	// state) are dropped so a tight buffer cannot wedge holding them.
	keyStart := c.parseBase + pending.KeyOffset - c.keyBias
	keyEnd := c.firstUnparsed
	if f&streamjson.FlagKeyFragment == 0 {
		keyEnd = keyStart + uint32(pending.KeyLength)
	}
	if keyStart == 0 && keyEnd == c.firstUnparsed {
		c.keyBias = c.firstUnparsed
		return false
	}
	keyLen := keyEnd - keyStart
	unparsed := c.firstEmpty - c.firstUnparsed
	copy(c.buffer, c.buffer[keyStart:keyEnd])
	copy(c.buffer[keyLen:], c.buffer[c.firstUnparsed:c.firstEmpty])
	c.bufferBase += uint64(c.firstUnparsed - keyLen)
	c.firstUnparsed = keyLen
	c.firstEmpty = keyLen + unparsed
	c.parseBase = keyLen
	pending.KeyOffset = 0
	c.keyBias = keyLen
	return true
}

func (c *Cursor) setupChunk(v *streamjson.Value, parsedLen int) {
	if v.Kind != streamjson.KindString {
		c.needDrain = false
		c.chunkMore = false
		c.haveLead = false
		return
	}
	c.chunkMore = v.Flags&streamjson.FlagValFragment != 0
	if cp, ok := v.PendingLeadingCodePoint(); ok {
		c.leadCP = cp
		c.haveLead = true
	} else {
		c.haveLead = false
	}
	rawEnd := c.parseBase + uint32(parsedLen)
	if !c.chunkMore {
		rawEnd-- // exclude the closing quote
	} else {
		// Scanning may have stopped mid \uXXXX/surrogate escape; those
		// trailing bytes aren't a complete, safe-to-copy escape yet (see
		// ParserState.EscapeTrim). The decoded value surfaces on a later
		// Pull via PendingLeadingCodePoint once the escape resolves.
		rawEnd -= c.st.EscapeTrim()
	}
	c.chunkPos = c.parseBase + v.StrvalOffset
	c.chunkEnd = rawEnd
	c.needDrain = true
}

func (c *Cursor) shortDst() error {
	return &InputError{Err: ErrShortDst, Offset: c.bufferBase + uint64(c.firstUnparsed)}
}

func (c *Cursor) drainCurrentString() error {
	for {
		n, err := c.ChunkRead(c.drainScratch[:])
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// ChunkRead streams the current string value's bytes into dst, UTF-8
// decoded from the JSON source (escapes expanded, \uXXXX and surrogate
// pairs combined, a leading straddling code point written first).
// Returns the number of bytes written; 0 means the string is fully
// drained. dst must be at least 4 bytes so every code point can be
// written whole (ErrShortDst otherwise). Requests more input and
// re-drives the scanner transparently when the string continues past
// what is already buffered. Grounded on BNJ::PullParser::Consume8 /
// bnj_json2utf8.
func (c *Cursor) ChunkRead(dst []byte) (int, error) {
	written := 0

	for {
		// A code point that straddled the previous chunk boundary belongs
		// before this chunk's raw bytes, including when the refill that
		// produced it happened partway through this same call.
		if c.haveLead {
			n := utf8EncodeLen(c.leadCP)
			if written+n > len(dst) {
				if written == 0 {
					return 0, c.shortDst()
				}
				return written, nil
			}
			encodeUTF8(dst[written:], c.leadCP)
			written += n
			c.haveLead = false
		}

		for c.chunkPos < c.chunkEnd && written < len(dst) {
			b := c.buffer[c.chunkPos]
			if b != '\\' {
				n := utf8RawLen(b)
				if written+n > len(dst) {
					if written == 0 {
						return 0, c.shortDst()
					}
					return written, nil
				}
				copy(dst[written:written+n], c.buffer[c.chunkPos:c.chunkPos+uint32(n)])
				written += n
				c.chunkPos += uint32(n)
				continue
			}

			esc := c.buffer[c.chunkPos+1]
			switch esc {
			case '"', '\\', '/':
				dst[written] = esc
				written++
				c.chunkPos += 2
			case 'b':
				dst[written] = '\b'
				written++
				c.chunkPos += 2
			case 'f':
				dst[written] = '\f'
				written++
				c.chunkPos += 2
			case 'n':
				dst[written] = '\n'
				written++
				c.chunkPos += 2
			case 'r':
				dst[written] = '\r'
				written++
				c.chunkPos += 2
			case 't':
				dst[written] = '\t'
				written++
				c.chunkPos += 2
			case 'u':
				cp, consumed := decodeHexEscape(c.buffer, c.chunkPos)
				n := utf8EncodeLen(cp)
				if written+n > len(dst) {
					if written == 0 {
						return 0, c.shortDst()
					}
					return written, nil
				}
				encodeUTF8(dst[written:], cp)
				written += n
				c.chunkPos += consumed
			}
		}

		if c.chunkPos < c.chunkEnd {
			return written, nil // dst is full; more raw bytes remain in this chunk
		}
		if !c.chunkMore {
			c.needDrain = false
			return written, nil
		}
		produced, err := c.step()
		if err != nil {
			return written, err
		}
		if !produced {
			return written, &InputError{Err: ErrUnexpectedEnd, Offset: c.bufferBase + uint64(c.firstUnparsed)}
		}
		if written >= len(dst) {
			return written, nil
		}
	}
}
