package streamjson

// FragCompact moves an in-progress object key's bytes to the head of
// buffer ahead of a refill. Value strings are reported chunk by chunk as
// Parse runs (§4.1), so by the time Parse suspends the caller has
// already consumed that chunk — only a key spans calls with bytes that
// must survive physically, since GetKey needs them contiguous.
//
// lastValue is the Value Parse most recently left with
// FlagKeyFragment set (the in-progress key). FragCompact copies
// buffer[lastValue.KeyOffset:] to the front of buffer, rewrites
// lastValue.KeyOffset to 0, and returns how many bytes were preserved —
// the offset at which the caller should append freshly read data.
// buffer must be sliced to the bytes actually read: everything from
// KeyOffset to len(buffer) is treated as part of the key.
//
// Calling this when lastValue isn't mid-key is a no-op returning 0.
func FragCompact(lastValue *Value, buffer []byte) int {
	if lastValue.Flags&FlagKeyFragment == 0 {
		return 0
	}
	n := copy(buffer, buffer[lastValue.KeyOffset:])
	lastValue.KeyOffset = 0
	return n
}
