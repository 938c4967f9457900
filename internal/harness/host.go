package harness

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	retroglue "github.com/retroglue/retroglue"
	"github.com/retroglue/retroglue/internal/ffi"
	"github.com/retroglue/retroglue/types"
)

// Host is the frontend side of the environment channel plus the four frame
// callbacks, exposed to the core as C function pointers built with
// purego.NewCallback. It answers a directory/option subset of the selector
// space and records everything the core pushes at it.
//
// The callback signatures take payload addresses as unsafe.Pointer, never
// uintptr: the trampoline converts at the boundary, so all pointer writes
// in here are plain Go the compiler is obliged to keep.
type Host struct {
	log *zap.Logger

	// answers served over the environment channel
	SystemDir    string
	SaveDir      string
	AssetsDir    string
	Username     string
	LibretroPath string
	Variables    map[string]string

	varsDirty bool

	// state the core set
	PixelFormat    types.PixelFormat
	SupportsNoGame bool
	Geometry       ffi.GameGeometry
	Messages       []string
	VarsRegistered []retroglue.Variable
	ShutdownAsked  bool

	// frame statistics
	VideoFrames  int
	DupeFrames   int
	AudioSamples int
	LastWidth    uint32
	LastHeight   uint32
	Polls        int

	// joypad state served to the core, keyed by (port, button id)
	Pressed map[[2]uint32]bool

	// served C strings must outlive the callback that handed them out;
	// pinned deduplicates by content so a core polling the same answer
	// every frame does not grow the pin set
	pinned map[string][]byte

	environmentPtr uintptr
	videoPtr       uintptr
	audioPtr       uintptr
	audioBatchPtr  uintptr
	inputPollPtr   uintptr
	inputStatePtr  uintptr
}

// NewHost builds a host with the given answer set and materializes its
// callbacks as C function pointers. Callbacks registered with purego are
// never released, so hosts should be created once per process, not per run.
func NewHost(log *zap.Logger) *Host {
	h := &Host{
		log:         log,
		Variables:   make(map[string]string),
		Pressed:     make(map[[2]uint32]bool),
		PixelFormat: types.PixelFormatRGB1555,
	}
	h.environmentPtr = purego.NewCallback(h.environment)
	h.videoPtr = purego.NewCallback(h.videoRefresh)
	h.audioPtr = purego.NewCallback(h.audioSample)
	h.audioBatchPtr = purego.NewCallback(h.audioSampleBatch)
	h.inputPollPtr = purego.NewCallback(h.inputPoll)
	h.inputStatePtr = purego.NewCallback(h.inputState)
	return h
}

// pin returns a stable NUL-terminated buffer for s, reusing the buffer on
// repeated answers with the same content. Pinned buffers live for the host's
// lifetime because the core reads them after the callback returns.
func (h *Host) pin(s string) *byte {
	if h.pinned == nil {
		h.pinned = make(map[string][]byte)
	}
	buf, ok := h.pinned[s]
	if !ok {
		buf = ffi.CString(s)
		h.pinned[s] = buf
	}
	return &buf[0]
}

// serve hands a string to the core through a pointer-slot payload. An unset
// answer is served as a null pointer, which the typed facade on the core
// side reports as absent.
func (h *Host) serve(data unsafe.Pointer, s string) bool {
	if s == "" {
		*(**byte)(data) = nil
		return true
	}
	*(**byte)(data) = h.pin(s)
	return true
}

func (h *Host) environment(cmd uint32, data unsafe.Pointer) bool {
	switch cmd {
	case retroglue.EnvSetPixelFormat:
		format := types.PixelFormat(*(*int32)(data))
		switch format {
		case types.PixelFormatRGB1555, types.PixelFormatXRGB8888, types.PixelFormatRGB565:
		default:
			return false
		}
		h.PixelFormat = format
		h.log.Debug("core negotiated pixel format", zap.Stringer("format", format))
		return true

	case retroglue.EnvSetSupportNoGame:
		h.SupportsNoGame = *(*bool)(data)
		return true

	case retroglue.EnvSetPerformanceLevel:
		h.log.Debug("core hinted performance level", zap.Uint32("level", *(*uint32)(data)))
		return true

	case retroglue.EnvSetGeometry:
		h.Geometry = *(*ffi.GameGeometry)(data)
		return true

	case retroglue.EnvSetMessage:
		msg := (*ffi.Message)(data)
		h.Messages = append(h.Messages, ffi.GoString(msg.Msg))
		h.log.Info("core message", zap.String("text", ffi.GoString(msg.Msg)), zap.Uint32("frames", msg.Frames))
		return true

	case retroglue.EnvSetVariables:
		h.VarsRegistered = h.VarsRegistered[:0]
		for v := (*ffi.Variable)(data); v.Key != nil; v = (*ffi.Variable)(unsafe.Add(unsafe.Pointer(v), unsafe.Sizeof(*v))) {
			h.VarsRegistered = append(h.VarsRegistered, retroglue.Variable{
				Key:   ffi.GoString(v.Key),
				Value: ffi.GoString(v.Value),
			})
		}
		return true

	case retroglue.EnvGetVariable:
		v := (*ffi.Variable)(data)
		val, ok := h.Variables[ffi.GoString(v.Key)]
		if !ok {
			v.Value = nil
			return false
		}
		v.Value = h.pin(val)
		return true

	case retroglue.EnvGetVariableUpdate:
		*(*bool)(data) = h.varsDirty
		h.varsDirty = false
		return true

	case retroglue.EnvGetCanDupe:
		*(*bool)(data) = true
		return true

	case retroglue.EnvShutdown:
		h.ShutdownAsked = true
		return true

	case retroglue.EnvGetSystemDirectory:
		return h.serve(data, h.SystemDir)
	case retroglue.EnvGetSaveDirectory:
		return h.serve(data, h.SaveDir)
	case retroglue.EnvGetCoreAssetsDirectory:
		return h.serve(data, h.AssetsDir)
	case retroglue.EnvGetLibretroPath:
		return h.serve(data, h.LibretroPath)
	case retroglue.EnvGetUsername:
		return h.serve(data, h.Username)

	default:
		// notably GET_LOG_INTERFACE: a variadic C callback cannot be
		// expressed without cgo, so the core logs locally instead
		h.log.Debug("declining environment request", zap.Uint32("selector", cmd))
		return false
	}
}

// SetVariable updates one core option and arms the update flag the core
// polls through GET_VARIABLE_UPDATE.
func (h *Host) SetVariable(key, value string) {
	h.Variables[key] = value
	h.varsDirty = true
}

func (h *Host) videoRefresh(data unsafe.Pointer, width, height uint32, pitch uintptr) {
	if data == nil {
		h.DupeFrames++
		return
	}
	h.VideoFrames++
	h.LastWidth = width
	h.LastHeight = height
}

func (h *Host) audioSample(left, right int16) {
	h.AudioSamples++
}

func (h *Host) audioSampleBatch(data unsafe.Pointer, frames uintptr) uintptr {
	h.AudioSamples += int(frames)
	return frames
}

func (h *Host) inputPoll() {
	h.Polls++
}

func (h *Host) inputState(port, device, index, id uint32) int16 {
	if device != uint32(types.DeviceJoypad) || index != 0 {
		return 0
	}
	if h.Pressed[[2]uint32{port, id}] {
		return 1
	}
	return 0
}
