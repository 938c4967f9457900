package ffi

import "unsafe"

// GoString copies a NUL-terminated C string into a Go string. Returns "" for
// a nil pointer. The copy is what makes the result safe to keep after the
// host memory behind p goes away.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice(p, n))
}

// GoBytes copies n bytes from a C pointer into a fresh Go slice. Returns nil
// for a nil pointer.
func GoBytes(p unsafe.Pointer, n int) []byte {
	if p == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(p), n))
	return out
}

// BorrowBytes wraps n bytes of C memory as a Go slice without copying. The
// slice is only valid while the host keeps the memory alive, which for every
// use in this module means the duration of the current ABI call.
func BorrowBytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// CString builds a NUL-terminated byte slice from a Go string, suitable for
// passing its base pointer across the ABI. The caller must keep the returned
// slice alive for the duration of the call it is used in.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// BytePtr returns the base pointer of a slice, or nil for an empty one.
func BytePtr(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}
	return &b[0]
}
