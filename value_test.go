package streamjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	for _, tt := range []struct {
		k    Kind
		want string
	}{
		{KindNumeric, "numeric"},
		{KindSpecial, "special"},
		{KindArrayBegin, "array"},
		{KindObjectBegin, "map"},
		{KindString, "string"},
		{Kind(99), "unknown"},
	} {
		assert.Equal(t, tt.want, tt.k.String())
	}
}

// TestCodePointInvariant exercises §8 property 3: cp1+cp2+cp3+exp_val
// equals the code-point count, and the weighted sum equals the UTF-8
// byte length.
func TestCodePointInvariant(t *testing.T) {
	v := &Value{Kind: KindString}
	points := []uint32{'a', 0x00e9, 0x1f600, 'z', 0x0800, 0x10000}
	for _, cp := range points {
		v.addCodePoint(cp)
	}
	assert.EqualValues(t, len(points), v.CodePointCount())

	wantLen := uint32(0)
	for _, cp := range points {
		switch {
		case cp < 0x80:
			wantLen += 1
		case cp < 0x800:
			wantLen += 2
		case cp < 0x10000:
			wantLen += 3
		default:
			wantLen += 4
		}
	}
	assert.Equal(t, wantLen, v.UTF8Len())
}

func TestPendingLeadingCodePoint(t *testing.T) {
	v := &Value{Kind: KindString, SignificandVal: emptyCodePoint}
	_, ok := v.PendingLeadingCodePoint()
	assert.False(t, ok)

	v.SignificandVal = 0x1f600
	cp, ok := v.PendingLeadingCodePoint()
	assert.True(t, ok)
	assert.EqualValues(t, 0x1f600, cp)

	v.Kind = KindNumeric
	_, ok = v.PendingLeadingCodePoint()
	assert.False(t, ok, "PendingLeadingCodePoint must only apply to strings")
}

func TestIncomplete(t *testing.T) {
	v := &Value{}
	assert.False(t, v.Incomplete())
	v.Flags = FlagValFragment
	assert.True(t, v.Incomplete())
	v.Flags = FlagKeyFragment
	assert.True(t, v.Incomplete())
	v.Flags = FlagMiddle
	assert.True(t, v.Incomplete())
}
