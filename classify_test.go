package streamjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteClassWhitespace(t *testing.T) {
	for _, c := range []byte{' ', '\t', '\n', '\r', '\v', '\f'} {
		assert.NotZero(t, byteClass[c]&cWhitespace, "byte 0x%X should classify as whitespace", c)
	}
}

func TestByteClassControlBytesInvalid(t *testing.T) {
	for i := 0; i < 0x20; i++ {
		if i == '\t' || i == '\n' || i == '\v' || i == '\f' || i == '\r' {
			continue
		}
		assert.NotZero(t, byteClass[i]&cInvalid, "control byte 0x%X should be invalid", i)
	}
	assert.NotZero(t, byteClass[0x7F]&cInvalid)
}

func TestByteClassHexDigits(t *testing.T) {
	for c := byte('0'); c <= '9'; c++ {
		assert.NotZero(t, byteClass[c]&cHexDigit)
	}
	for c := byte('a'); c <= 'f'; c++ {
		assert.NotZero(t, byteClass[c]&cHexDigit)
	}
	for c := byte('A'); c <= 'F'; c++ {
		assert.NotZero(t, byteClass[c]&cHexDigit)
	}
	assert.Zero(t, byteClass['g']&cHexDigit)
	assert.Zero(t, byteClass['G']&cHexDigit)
}

func TestByteClassContainerBrackets(t *testing.T) {
	assert.NotZero(t, byteClass['[']&cContainerOpen)
	assert.NotZero(t, byteClass['{']&cContainerOpen)
	assert.NotZero(t, byteClass[']']&cContainerClose)
	assert.NotZero(t, byteClass['}']&cContainerClose)
}

func TestByteClassInvalidUTF8Leads(t *testing.T) {
	for _, c := range []int{0xC0, 0xC1, 0xF5, 0xFF} {
		assert.NotZero(t, byteClass[c]&cInvalid, "lead byte 0x%X should be invalid", c)
	}
	// Legitimate 2-byte and 4-byte leads must not be flagged invalid.
	assert.Zero(t, byteClass[0xC2]&cInvalid)
	assert.Zero(t, byteClass[0xF4]&cInvalid)
}

func TestHexVal(t *testing.T) {
	assert.EqualValues(t, 0, hexVal('0'))
	assert.EqualValues(t, 9, hexVal('9'))
	assert.EqualValues(t, 10, hexVal('a'))
	assert.EqualValues(t, 15, hexVal('f'))
	assert.EqualValues(t, 10, hexVal('A'))
	assert.EqualValues(t, 15, hexVal('F'))
}
