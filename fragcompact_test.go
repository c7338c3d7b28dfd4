package streamjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragCompactNoOpWhenNotMidKey(t *testing.T) {
	v := &Value{Flags: FlagValFragment}
	buf := []byte("hello world")
	n := FragCompact(v, buf)
	assert.Zero(t, n)
	assert.Equal(t, "hello world", string(buf))
}

func TestFragCompactMovesKeyBytesToFront(t *testing.T) {
	buf := make([]byte, 32)
	filled := copy(buf, `junk"partial_ke`)
	v := &Value{Flags: FlagKeyFragment, KeyOffset: 5}

	n := FragCompact(v, buf[:filled])

	assert.Equal(t, len("partial_ke"), n)
	assert.Equal(t, "partial_ke", string(buf[:n]))
	assert.EqualValues(t, 0, v.KeyOffset)
}

// TestFragCompactAcrossDriveSession feeds a document one byte at a time
// so every Parse call's buffer is a single fresh byte; whenever the
// scanner is left mid-key, FragCompact on that call's one-byte buffer
// must keep at most that byte (none when the byte was the key's opening
// quote) and reset KeyOffset to 0.
func TestFragCompactAcrossDriveSession(t *testing.T) {
	stack := NewParseStack(4)
	st := NewParserState(make([]Value, 1), stack)

	doc := []byte(`{"alphabeta":1}`)
	sawKeyFragment := false

	for i := 0; i < len(doc); i++ {
		chunk := []byte{doc[i]}
		Parse(st, nil, chunk)
		if code, isErr := st.Err(); isErr {
			t.Fatalf("unexpected error %s at byte %d", code, i)
		}

		pending := st.Pending()
		if pending.Flags&FlagKeyFragment == 0 {
			continue
		}
		sawKeyFragment = true

		kept := FragCompact(pending, chunk)
		assert.LessOrEqual(t, kept, len(chunk))
		assert.Zero(t, pending.KeyOffset)
	}

	assert.True(t, sawKeyFragment, "expected at least one mid-key suspension while driving byte by byte")
}
