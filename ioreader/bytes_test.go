package ioreader_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbender/streamjson/ioreader"
)

func TestBytesReaderReadsAllThenEOF(t *testing.T) {
	r := ioreader.NewBytesReader([]byte("hello"))
	buf := make([]byte, 3)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hel", string(buf[:n]))

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "lo", string(buf[:n]))

	n, err = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBytesReaderEmptyBuffer(t *testing.T) {
	r := ioreader.NewBytesReader(nil)
	buf := make([]byte, 4)
	n, err := r.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBytesReaderReset(t *testing.T) {
	r := ioreader.NewBytesReader([]byte("abc"))
	buf := make([]byte, 8)
	n, _ := r.Read(buf)
	assert.Equal(t, 3, n)

	r.Reset([]byte("xyz"))
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(buf[:n]))
}
