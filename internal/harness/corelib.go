// Package harness hosts a libretro core from the frontend side, without
// cgo. It dlopens a built core, registers its entry points through purego
// and drives the documented lifecycle, which makes it both a smoke-test
// tool for cores built on this module and a reference for the call order a
// real frontend produces.
package harness

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/retroglue/retroglue/internal/ffi"
)

// CoreLib is a loaded core with every retro_* symbol registered. Each field
// is a Go function whose calling convention matches the exported C symbol.
type CoreLib struct {
	handle uintptr
	path   string

	setEnvironment      func(cb uintptr)
	setVideoRefresh     func(cb uintptr)
	setAudioSample      func(cb uintptr)
	setAudioSampleBatch func(cb uintptr)
	setInputPoll        func(cb uintptr)
	setInputState       func(cb uintptr)

	init_   func()
	deinit  func()
	version func() uint32

	getSystemInfo   func(info *ffi.SystemInfo)
	getSystemAVInfo func(info *ffi.SystemAVInfo)

	setControllerPortDevice func(port, device uint32)

	reset func()
	run   func()

	serializeSize func() uintptr
	serialize     func(data unsafe.Pointer, size uintptr) bool
	unserialize   func(data unsafe.Pointer, size uintptr) bool

	cheatReset func()
	cheatSet   func(index uint32, enabled bool, code *byte)

	loadGame        func(info *ffi.GameInfo) bool
	loadGameSpecial func(gameType uint32, info *ffi.GameInfo, num uintptr) bool
	unloadGame      func()

	getRegion     func() uint32
	getMemoryData func(id uint32) unsafe.Pointer
	getMemorySize func(id uint32) uintptr
}

// Open dlopens the core at path and registers all entry points. The handle
// stays open for the process lifetime; frontends never dlclose a running
// core and neither does the harness.
func Open(path string) (*CoreLib, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("opening core %q: %w", path, err)
	}

	lib := &CoreLib{handle: handle, path: path}
	purego.RegisterLibFunc(&lib.setEnvironment, handle, "retro_set_environment")
	purego.RegisterLibFunc(&lib.setVideoRefresh, handle, "retro_set_video_refresh")
	purego.RegisterLibFunc(&lib.setAudioSample, handle, "retro_set_audio_sample")
	purego.RegisterLibFunc(&lib.setAudioSampleBatch, handle, "retro_set_audio_sample_batch")
	purego.RegisterLibFunc(&lib.setInputPoll, handle, "retro_set_input_poll")
	purego.RegisterLibFunc(&lib.setInputState, handle, "retro_set_input_state")
	purego.RegisterLibFunc(&lib.init_, handle, "retro_init")
	purego.RegisterLibFunc(&lib.deinit, handle, "retro_deinit")
	purego.RegisterLibFunc(&lib.version, handle, "retro_api_version")
	purego.RegisterLibFunc(&lib.getSystemInfo, handle, "retro_get_system_info")
	purego.RegisterLibFunc(&lib.getSystemAVInfo, handle, "retro_get_system_av_info")
	purego.RegisterLibFunc(&lib.setControllerPortDevice, handle, "retro_set_controller_port_device")
	purego.RegisterLibFunc(&lib.reset, handle, "retro_reset")
	purego.RegisterLibFunc(&lib.run, handle, "retro_run")
	purego.RegisterLibFunc(&lib.serializeSize, handle, "retro_serialize_size")
	purego.RegisterLibFunc(&lib.serialize, handle, "retro_serialize")
	purego.RegisterLibFunc(&lib.unserialize, handle, "retro_unserialize")
	purego.RegisterLibFunc(&lib.cheatReset, handle, "retro_cheat_reset")
	purego.RegisterLibFunc(&lib.cheatSet, handle, "retro_cheat_set")
	purego.RegisterLibFunc(&lib.loadGame, handle, "retro_load_game")
	purego.RegisterLibFunc(&lib.loadGameSpecial, handle, "retro_load_game_special")
	purego.RegisterLibFunc(&lib.unloadGame, handle, "retro_unload_game")
	purego.RegisterLibFunc(&lib.getRegion, handle, "retro_get_region")
	purego.RegisterLibFunc(&lib.getMemoryData, handle, "retro_get_memory_data")
	purego.RegisterLibFunc(&lib.getMemorySize, handle, "retro_get_memory_size")

	return lib, nil
}

// Path returns the filesystem path the core was loaded from.
func (l *CoreLib) Path() string { return l.path }

// APIVersion returns the core's reported libretro API generation.
func (l *CoreLib) APIVersion() uint32 { return l.version() }

// SystemInfo queries the core's identity block and copies it into Go
// strings. Legal in any lifecycle state.
func (l *CoreLib) SystemInfo() (name, version, extensions string, needFullPath bool) {
	var info ffi.SystemInfo
	l.getSystemInfo(&info)
	return ffi.GoString(info.LibraryName),
		ffi.GoString(info.LibraryVersion),
		ffi.GoString(info.ValidExtensions),
		info.NeedFullpath
}
