package retroglue

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/retroglue/retroglue/internal/ffi"
	"github.com/retroglue/retroglue/types"
)

// envHost is a scriptable stand-in for the frontend side of the environment
// channel. It records every selector it is called with and serves canned
// answers per selector.
type envHost struct {
	calls []uint32

	// per-selector behavior
	declined   map[uint32]bool   // return false
	nullString map[uint32]bool   // return true but write a null pointer
	strings    map[uint32]string // serve a NUL-terminated string pointer
	boolAnswer map[uint32]bool   // write a bool payload (get direction)

	// recorded set payloads
	pixelFormats  []types.PixelFormat
	supportNoGame []bool

	// keeps served C strings alive past the callback return
	bufs [][]byte
}

func newEnvHost() *envHost {
	return &envHost{
		declined:   make(map[uint32]bool),
		nullString: make(map[uint32]bool),
		strings:    make(map[uint32]string),
		boolAnswer: make(map[uint32]bool),
	}
}

func (h *envHost) count(selector uint32) int {
	n := 0
	for _, c := range h.calls {
		if c == selector {
			n++
		}
	}
	return n
}

func (h *envHost) callback() EnvironmentCallback {
	return func(selector uint32, data unsafe.Pointer) bool {
		h.calls = append(h.calls, selector)

		if h.declined[selector] {
			return false
		}

		switch selector {
		case EnvSetSupportNoGame:
			h.supportNoGame = append(h.supportNoGame, *(*bool)(data))
			return true
		case EnvSetPixelFormat:
			h.pixelFormats = append(h.pixelFormats, types.PixelFormat(*(*int32)(data)))
			return true
		case EnvShutdown:
			return true
		}

		if h.nullString[selector] {
			*(*unsafe.Pointer)(data) = nil
			return true
		}
		if s, ok := h.strings[selector]; ok {
			buf := ffi.CString(s)
			h.bufs = append(h.bufs, buf)
			*(*unsafe.Pointer)(data) = unsafe.Pointer(&buf[0])
			return true
		}
		if b, ok := h.boolAnswer[selector]; ok {
			*(*bool)(data) = b
			return true
		}
		return false
	}
}

// frameHost provides the four frame callbacks plus input poll, recording
// what the core pushes through them.
type frameHost struct {
	polled       int
	samples      []int16
	batches      [][]int16
	frames       int // video frames received
	lastWidth    uint32
	lastHeight   uint32
	lastPitch    int
	pressed      map[[2]uint32]bool // (port, id) → down, joypad only
	batchConsume func(n int) int    // override frames-consumed result
}

func newFrameHost() *frameHost {
	return &frameHost{pressed: make(map[[2]uint32]bool)}
}

func (h *frameHost) audioSample(left, right int16) {
	h.samples = append(h.samples, left, right)
}

func (h *frameHost) audioSampleBatch(samples []int16) int {
	cp := append([]int16(nil), samples...)
	h.batches = append(h.batches, cp)
	frames := len(samples) / 2
	if h.batchConsume != nil {
		return h.batchConsume(frames)
	}
	return frames
}

func (h *frameHost) inputState(port, device, index, id uint32) int16 {
	if device != uint32(types.DeviceJoypad) || index != 0 {
		return 0
	}
	if h.pressed[[2]uint32{port, id}] {
		return 1
	}
	return 0
}

func (h *frameHost) videoRefresh(frame []byte, width, height uint32, pitch int) {
	h.frames++
	h.lastWidth = width
	h.lastHeight = height
	h.lastPitch = pitch
}

func (h *frameHost) install(i *Instance) {
	i.OnSetAudioSample(h.audioSample)
	i.OnSetAudioSampleBatch(h.audioSampleBatch)
	i.OnSetInputPoll(func() { h.polled++ })
	i.OnSetInputState(h.inputState)
	i.OnSetVideoRefresh(h.videoRefresh)
}

// mockCore records delegation and lets tests script load results.
type mockCore struct {
	NopCore

	resets    int
	runs      int
	unloads   int
	loadErr   error
	loaded    types.LoadedGame
	lastGame  types.Game
	saveState []byte
	sram      []byte
}

func (c *mockCore) Reset(Environment) { c.resets++ }

func (c *mockCore) Run(env Environment, rt *Runtime) { c.runs++ }

func (c *mockCore) LoadGame(env Environment, game types.Game) (types.LoadedGame, error) {
	c.lastGame = game
	if c.loadErr != nil {
		return types.LoadedGame{}, c.loadErr
	}
	return c.loaded, nil
}

func (c *mockCore) UnloadGame(Environment) { c.unloads++ }

func (c *mockCore) SerializeSize(Environment) int { return len(c.saveState) }

func (c *mockCore) Serialize(env Environment, buf []byte) error {
	if len(buf) < len(c.saveState) {
		return types.ErrUnsupported
	}
	copy(buf, c.saveState)
	return nil
}

func (c *mockCore) Unserialize(env Environment, buf []byte) error {
	c.saveState = append([]byte(nil), buf...)
	return nil
}

func (c *mockCore) MemoryData(env Environment, id types.MemoryType) []byte {
	if id == types.MemorySaveRAM {
		return c.sram
	}
	return nil
}

type mockFactory struct {
	info        types.SystemInfo
	noGame      bool
	core        *mockCore
	constructed int
}

func (f *mockFactory) SystemInfo() types.SystemInfo { return f.info }

func (f *mockFactory) SupportsNoGame() bool { return f.noGame }

func (f *mockFactory) New(env Environment) Core {
	f.constructed++
	return f.core
}

func defaultLoaded() types.LoadedGame {
	return types.LoadedGame{
		Region: types.RegionNTSC,
		Audio:  types.NewAudioInfo(44_100),
		Video:  types.NewVideoInfo(60.0, 320, 240).WithPixelFormat(types.PixelFormatRGB565),
	}
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		info:   types.NewSystemInfo("mockcore", "1.0.0").WithValidExtensions("bin"),
		core:   &mockCore{loaded: defaultLoaded()},
		noGame: false,
	}
}

// requireViolation asserts that fn panics with a protocol violation for the
// given entry point.
func requireViolation(t *testing.T, entry string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		rec := recover()
		require.NotNil(t, rec, "expected a protocol violation panic")
		pv, ok := rec.(*types.ProtocolViolation)
		require.True(t, ok, "panic value is %T, want *types.ProtocolViolation", rec)
		require.Equal(t, entry, pv.Entry)
	}()
	fn()
}
