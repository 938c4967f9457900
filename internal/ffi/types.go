// Package ffi contains pure-Go representations of the libretro C structs
// that cross the ABI boundary, plus helpers for reading and building
// NUL-terminated strings. The struct mirrors must exactly match the field
// layout in libretro.h; they are what makes the bridge and the harness
// testable without cgo.
package ffi

import "unsafe"

// GameInfo mirrors struct retro_game_info. The frontend owns every pointer in
// here; none of them may be retained past the load call that received the
// struct.
type GameInfo struct {
	// Path to the content, or nil when the frontend loaded the bytes itself.
	Path *byte
	// Data is the content bytes, or nil when only a path is given (or for a
	// contentless launch, where Path is nil too).
	Data unsafe.Pointer
	// Size of Data in bytes.
	Size uintptr
	// Meta is implementation-specific metadata, or nil.
	Meta *byte
}

// SystemInfo mirrors struct retro_system_info.
type SystemInfo struct {
	LibraryName     *byte
	LibraryVersion  *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors struct retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming mirrors struct retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors struct retro_system_av_info. The padding between the
// 20-byte geometry and the 8-aligned timing is inserted identically by the Go
// and C compilers on every platform this package supports.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// Variable mirrors struct retro_variable, used with the GET_VARIABLE and
// SET_VARIABLES selectors.
type Variable struct {
	Key   *byte
	Value *byte
}

// Message mirrors struct retro_message, used with the SET_MESSAGE selector.
type Message struct {
	Msg    *byte
	Frames uint32
}

// LogCallback mirrors struct retro_log_callback, written by the frontend for
// the GET_LOG_INTERFACE selector. Log is a C function pointer; only the cgo
// layer can invoke it.
type LogCallback struct {
	Log uintptr
}
