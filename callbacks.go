package retroglue

import (
	"unsafe"

	"github.com/retroglue/retroglue/internal/ffi"
	"github.com/retroglue/retroglue/types"
)

// Go-level shapes of the host-supplied function pointers. The cgo layer in
// package retro adapts the raw C pointers into these; tests install plain Go
// functions. Each one is a borrowed reference to host code: it holds no
// state and may be replaced by the host between any two entry-point calls.
type (
	// EnvironmentCallback is the single bidirectional channel to the host:
	// one selector, one untyped payload, one support/decline result. The
	// payload's expected shape is fixed per selector; see Environment.
	EnvironmentCallback func(selector uint32, data unsafe.Pointer) bool

	// AudioSampleCallback uploads one stereo frame.
	AudioSampleCallback func(left, right int16)

	// AudioSampleBatchCallback uploads interleaved stereo samples and
	// returns the number of frames the host consumed.
	AudioSampleBatchCallback func(samples []int16) int

	// InputPollCallback asks the host to refresh its input state. The host
	// contract requires exactly one call per retro_run.
	InputPollCallback func()

	// InputStateCallback queries one input element. The meaning of index and
	// id depends on the device class.
	InputStateCallback func(port, device, index, id uint32) int16

	// VideoRefreshCallback uploads one video frame. The frame slice is
	// borrowed by the host only for the duration of the call.
	VideoRefreshCallback func(frame []byte, width, height uint32, pitch int)
)

// GameFromWire decodes a retro_game_info record into the Game union. The
// active variant is discriminated by which of the data/path pointers are
// null: both null (or a null record) is a contentless launch, a non-null
// data pointer wins over a path, and a path alone is a by-reference load.
//
// The data variant borrows the frontend's memory; it is valid only for the
// duration of the load call. Path and metadata are copied and safe to keep.
func GameFromWire(info *ffi.GameInfo) types.Game {
	if info == nil {
		return types.NoGame{}
	}

	meta := ffi.GoString(info.Meta)

	switch {
	case info.Path == nil && info.Data == nil:
		return types.NoGame{Meta: meta}
	case info.Data != nil:
		return types.GameData{Meta: meta, Data: ffi.BorrowBytes(info.Data, int(info.Size))}
	default:
		return types.GamePath{Meta: meta, Path: ffi.GoString(info.Path)}
	}
}
