package ffi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoString(t *testing.T) {
	assert.Equal(t, "", GoString(nil))

	buf := []byte{'a', 'b', 'c', 0, 'x'}
	assert.Equal(t, "abc", GoString(&buf[0]))

	empty := []byte{0}
	assert.Equal(t, "", GoString(&empty[0]))
}

func TestCStringRoundTrip(t *testing.T) {
	b := CString("savegames")
	require.Equal(t, 10, len(b))
	require.Equal(t, byte(0), b[len(b)-1])
	assert.Equal(t, "savegames", GoString(&b[0]))

	// empty string still yields a valid one-byte C string
	e := CString("")
	require.Equal(t, []byte{0}, e)
	assert.Nil(t, BytePtr(nil))
	assert.NotNil(t, BytePtr(e))
}

func TestGoBytesCopies(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04}
	got := GoBytes(unsafe.Pointer(&src[0]), len(src))
	require.Equal(t, src, got)

	src[0] = 0xff
	assert.Equal(t, byte(0x01), got[0], "GoBytes must copy, not alias")

	assert.Nil(t, GoBytes(nil, 4))
}

func TestBorrowBytesAliases(t *testing.T) {
	src := []byte{0x01, 0x02}
	view := BorrowBytes(unsafe.Pointer(&src[0]), len(src))
	src[1] = 0xee
	assert.Equal(t, byte(0xee), view[1], "BorrowBytes must alias the source")

	assert.Nil(t, BorrowBytes(nil, 2))
	assert.Nil(t, BorrowBytes(unsafe.Pointer(&src[0]), 0))
}
