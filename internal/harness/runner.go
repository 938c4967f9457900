package harness

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	retroglue "github.com/retroglue/retroglue"
	"github.com/retroglue/retroglue/internal/ffi"
	"github.com/retroglue/retroglue/types"
)

// Runner drives one core through the frontend's side of the lifecycle
// contract: bind environment, install callbacks, init, load, frames,
// unload, deinit. Entry points are only ever called in that order; the
// core is entitled to treat anything else as fatal.
type Runner struct {
	lib  *CoreLib
	host *Host
	log  *zap.Logger

	booted bool
	loaded bool
}

func NewRunner(lib *CoreLib, host *Host, log *zap.Logger) *Runner {
	return &Runner{lib: lib, host: host, log: log}
}

// Boot binds the environment, installs the frame callbacks and initializes
// the core.
func (r *Runner) Boot() error {
	if v := r.lib.APIVersion(); v != retroglue.APIVersion {
		return fmt.Errorf("core %q speaks libretro API v%d, want v%d", r.lib.Path(), v, retroglue.APIVersion)
	}

	r.lib.setEnvironment(r.host.environmentPtr)
	r.lib.setVideoRefresh(r.host.videoPtr)
	r.lib.setAudioSample(r.host.audioPtr)
	r.lib.setAudioSampleBatch(r.host.audioBatchPtr)
	r.lib.setInputPoll(r.host.inputPollPtr)
	r.lib.setInputState(r.host.inputStatePtr)
	r.lib.init_()
	r.booted = true

	name, version, exts, _ := r.lib.SystemInfo()
	r.log.Info("core initialized",
		zap.String("name", name),
		zap.String("version", version),
		zap.String("extensions", exts))
	return nil
}

// Load hands content to the core. An empty path is a contentless launch,
// legal only when the core announced SUPPORT_NO_GAME during boot.
func (r *Runner) Load(romPath string) error {
	if !r.booted {
		return fmt.Errorf("load before boot")
	}

	var ok bool
	switch {
	case romPath == "":
		if !r.host.SupportsNoGame {
			return fmt.Errorf("core does not support contentless launch")
		}
		ok = r.lib.loadGame(nil)

	default:
		_, _, _, needFullPath := r.lib.SystemInfo()
		path := ffi.CString(romPath)
		info := ffi.GameInfo{Path: ffi.BytePtr(path)}

		var rom []byte
		if !needFullPath {
			var err error
			rom, err = os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("reading rom: %w", err)
			}
			if len(rom) > 0 {
				info.Data = unsafe.Pointer(&rom[0])
				info.Size = uintptr(len(rom))
			}
		}
		ok = r.lib.loadGame(&info)
		runtime.KeepAlive(rom)
		runtime.KeepAlive(path)
	}

	if !ok {
		return fmt.Errorf("core declined to load %q", romPath)
	}
	r.loaded = true
	r.lib.setControllerPortDevice(0, uint32(types.DeviceJoypad))

	var av ffi.SystemAVInfo
	r.lib.getSystemAVInfo(&av)
	region := "NTSC"
	if r.lib.getRegion() == uint32(types.RegionPAL) {
		region = "PAL"
	}
	r.log.Info("game loaded",
		zap.String("region", region),
		zap.Float64("fps", av.Timing.FPS),
		zap.Float64("sample_rate", av.Timing.SampleRate),
		zap.Uint32("width", av.Geometry.BaseWidth),
		zap.Uint32("height", av.Geometry.BaseHeight),
		zap.Stringer("pixel_format", r.host.PixelFormat))
	return nil
}

// Play runs up to frames frames, stopping early if the core asks the
// frontend to shut down.
func (r *Runner) Play(frames int) error {
	if !r.loaded {
		return fmt.Errorf("play before load")
	}
	for range frames {
		r.lib.run()
		if r.host.ShutdownAsked {
			r.log.Info("core requested shutdown")
			break
		}
	}
	r.log.Info("playback finished",
		zap.Int("video_frames", r.host.VideoFrames),
		zap.Int("dupe_frames", r.host.DupeFrames),
		zap.Int("audio_samples", r.host.AudioSamples),
		zap.Int("input_polls", r.host.Polls))
	return nil
}

// Reset asks the core for a player-initiated reset.
func (r *Runner) Reset() {
	r.lib.reset()
}

// SaveState snapshots the core, restores the snapshot and reports the state
// size, exercising the whole serialization surface.
func (r *Runner) SaveState() ([]byte, error) {
	size := int(r.lib.serializeSize())
	if size == 0 {
		return nil, fmt.Errorf("core does not support save states")
	}
	buf := make([]byte, size)
	if !r.lib.serialize(unsafe.Pointer(&buf[0]), uintptr(size)) {
		return nil, fmt.Errorf("core declined to serialize")
	}
	if !r.lib.unserialize(unsafe.Pointer(&buf[0]), uintptr(size)) {
		return nil, fmt.Errorf("core declined to restore its own state")
	}
	return buf, nil
}

// MemoryRegion copies one exposed memory region out of the core, or nil
// when the core does not expose it.
func (r *Runner) MemoryRegion(id types.MemoryType) []byte {
	size := int(r.lib.getMemorySize(uint32(id)))
	ptr := r.lib.getMemoryData(uint32(id))
	if size == 0 || ptr == nil {
		return nil
	}
	return ffi.GoBytes(ptr, size)
}

// Shutdown unloads any content and deinitializes the core.
func (r *Runner) Shutdown() {
	if r.loaded {
		r.lib.unloadGame()
		r.loaded = false
	}
	if r.booted {
		r.lib.deinit()
		r.booted = false
	}
}
