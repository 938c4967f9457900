package retroglue

import (
	"runtime"
	"unsafe"

	"github.com/retroglue/retroglue/internal/ffi"
	"github.com/retroglue/retroglue/types"
)

// Environment wraps the host's environment callback in a typed facade. One
// method per known selector; the raw accessors underneath are the only place
// the untyped channel is touched, and the selector fixes the payload shape
// the host expects, so type safety is guarded here rather than left to
// caller discipline.
//
// An Environment is stateless and copyable. It owns nothing it points at and
// is valid from retro_set_environment until retro_deinit; the bridge never
// hands one out past that window.
//
// A false return from any operation means the host does not support or
// declines the request. That is never fatal; it is surfaced as the second
// return value (or the sole bool) and the caller decides.
type Environment struct {
	cb EnvironmentCallback
}

// NewEnvironment wraps the given callback. The callback must be non-nil.
func NewEnvironment(cb EnvironmentCallback) Environment {
	if cb == nil {
		panic("retroglue: NewEnvironment called with a nil callback")
	}
	return Environment{cb: cb}
}

/* Raw channel. Every typed operation funnels through one of these. */

// Command fires a payload-less request.
func (e Environment) Command(selector uint32) bool {
	return e.cb(selector, nil)
}

// Get invokes the callback with out as the payload, expecting the host to
// write a value of the selector's documented shape into it. out must point
// at memory of exactly that shape; it only needs to stay alive for the call.
func (e Environment) Get(selector uint32, out unsafe.Pointer) bool {
	return e.cb(selector, out)
}

// GetPtr performs a get whose payload slot the host fills with a pointer it
// owns. Absent if the host declines or writes null; the pointed-at memory is
// only guaranteed valid for the duration of the current entry-point call.
func (e Environment) GetPtr(selector uint32) (unsafe.Pointer, bool) {
	var p unsafe.Pointer
	if !e.cb(selector, unsafe.Pointer(&p)) || p == nil {
		return nil, false
	}
	return p, true
}

// Set invokes the callback with the address of a caller-owned value. The
// value must stay alive for the duration of the call only.
func (e Environment) Set(selector uint32, val unsafe.Pointer) bool {
	return e.cb(selector, val)
}

// SetBool is Set specialized for a one-byte boolean payload.
func (e Environment) SetBool(selector uint32, val bool) bool {
	return e.Set(selector, unsafe.Pointer(&val))
}

// SetU32 is Set specialized for a 4-byte unsigned payload.
func (e Environment) SetU32(selector uint32, val uint32) bool {
	return e.Set(selector, unsafe.Pointer(&val))
}

// GetString performs a pointer-slot get for a NUL-terminated byte pointer
// and copies it into a Go string, so the result is safe to keep after the
// host memory goes away. Absent on decline or null pointer; a served empty
// string is present.
func (e Environment) GetString(selector uint32) (string, bool) {
	p, ok := e.GetPtr(selector)
	if !ok {
		return "", false
	}
	return ffi.GoString((*byte)(p)), true
}

/* Commands */

// Shutdown requests that the frontend shut down. The frontend can refuse.
func (e Environment) Shutdown() bool {
	return e.Command(EnvShutdown)
}

/* Sets */

// SetPixelFormat negotiates the frame buffer format. Payload: 4-byte enum.
func (e Environment) SetPixelFormat(format types.PixelFormat) bool {
	v := int32(format)
	return e.Set(EnvSetPixelFormat, unsafe.Pointer(&v))
}

// SetSupportNoGame tells the frontend whether this core can be launched
// without content. Payload: boolean.
func (e Environment) SetSupportNoGame(val bool) bool {
	return e.SetBool(EnvSetSupportNoGame, val)
}

// SetPerformanceLevel hints the hardware class the core needs. Payload:
// unsigned.
func (e Environment) SetPerformanceLevel(level uint32) bool {
	return e.SetU32(EnvSetPerformanceLevel, level)
}

// SetGeometry switches the active video geometry without reinitializing the
// av pipeline. Only base dimensions and aspect may change; max dimensions
// are fixed by the av-info from load time. Payload: retro_game_geometry.
func (e Environment) SetGeometry(video types.VideoInfo) bool {
	geom := ffi.GameGeometry{
		BaseWidth:   video.Width,
		BaseHeight:  video.Height,
		MaxWidth:    video.MaxWidth,
		MaxHeight:   video.MaxHeight,
		AspectRatio: video.AspectRatio,
	}
	return e.Set(EnvSetGeometry, unsafe.Pointer(&geom))
}

// SetMessage asks the frontend to display msg for the given number of
// frames. Payload: retro_message.
func (e Environment) SetMessage(msg string, frames uint32) bool {
	text := ffi.CString(msg)
	m := ffi.Message{Msg: ffi.BytePtr(text), Frames: frames}
	return e.Set(EnvSetMessage, unsafe.Pointer(&m))
}

// SetVariables registers the core's options with the frontend. Each value
// string is "Description; default|alt1|alt2". Payload: null-key-terminated
// retro_variable array.
func (e Environment) SetVariables(vars []Variable) bool {
	// the backing byte slices must outlive the Set call, hence one holder
	// slice for all of them
	hold := make([][]byte, 0, len(vars)*2)
	wire := make([]ffi.Variable, len(vars)+1)
	for i, v := range vars {
		key := ffi.CString(v.Key)
		val := ffi.CString(v.Value)
		hold = append(hold, key, val)
		wire[i] = ffi.Variable{Key: ffi.BytePtr(key), Value: ffi.BytePtr(val)}
	}
	ok := e.Set(EnvSetVariables, unsafe.Pointer(&wire[0]))
	runtime.KeepAlive(hold)
	return ok
}

/* Gets */

// CanDupe reports whether the frontend accepts a null frame pointer in the
// video callback to duplicate the previous frame. Payload: boolean.
func (e Environment) CanDupe() (bool, bool) {
	var dupe bool
	if !e.Get(EnvGetCanDupe, unsafe.Pointer(&dupe)) {
		return false, false
	}
	return dupe, true
}

// Variable queries the current value of one core option. Absent when the
// frontend does not know the key. Payload: retro_variable with the key
// filled in and the value written back by the host.
func (e Environment) Variable(key string) (string, bool) {
	k := ffi.CString(key)
	v := ffi.Variable{Key: ffi.BytePtr(k)}
	if !e.Get(EnvGetVariable, unsafe.Pointer(&v)) || v.Value == nil {
		return "", false
	}
	return ffi.GoString(v.Value), true
}

// VariableUpdate reports whether any core option changed since the last
// Variable query. Payload: boolean.
func (e Environment) VariableUpdate() bool {
	var updated bool
	return e.Get(EnvGetVariableUpdate, unsafe.Pointer(&updated)) && updated
}

// LogInterface fetches the frontend's log callback. The result is a raw C
// function pointer only the cgo layer can invoke; pure-Go callers should
// treat absence as "log locally". Payload: retro_log_callback.
func (e Environment) LogInterface() (ffi.LogCallback, bool) {
	var cb ffi.LogCallback
	if !e.Get(EnvGetLogInterface, unsafe.Pointer(&cb)) || cb.Log == 0 {
		return ffi.LogCallback{}, false
	}
	return cb, true
}

// LibretroPath queries the path of the loaded core binary itself.
func (e Environment) LibretroPath() (string, bool) {
	return e.GetString(EnvGetLibretroPath)
}

// CoreAssetsDirectory queries the "core assets" directory.
func (e Environment) CoreAssetsDirectory() (string, bool) {
	return e.GetString(EnvGetCoreAssetsDirectory)
}

// SaveDirectory queries the directory for battery saves and save states.
func (e Environment) SaveDirectory() (string, bool) {
	return e.GetString(EnvGetSaveDirectory)
}

// SystemDirectory queries the directory for BIOS images and other system
// content.
func (e Environment) SystemDirectory() (string, bool) {
	return e.GetString(EnvGetSystemDirectory)
}

// Username queries the frontend user's name, when the user configured one.
func (e Environment) Username() (string, bool) {
	return e.GetString(EnvGetUsername)
}

// Variable is one core option: a key the frontend stores the setting under
// and a value spec in the "Description; default|alt1|alt2" wire format.
type Variable struct {
	Key   string
	Value string
}
