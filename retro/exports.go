package retro

/*
#include <stdlib.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"

import (
	"unsafe"

	retroglue "github.com/retroglue/retroglue"
	"github.com/retroglue/retroglue/internal/ffi"
	"github.com/retroglue/retroglue/types"
)

var (
	// env mirrors the bridge's bound environment so cgo-only concerns
	// (frontend logging) can query selectors the bridge does not.
	env    retroglue.Environment
	envSet bool

	// C string cache for retro_get_system_info. The frontend may keep the
	// pointers until retro_deinit, so they are allocated once and freed
	// there.
	libNameStr  *C.char
	libVerStr   *C.char
	validExtStr *C.char
)

func ensureStrings() {
	if libNameStr != nil {
		return
	}
	info := bridge.OnGetSystemInfo()
	libNameStr = C.CString(info.Name)
	libVerStr = C.CString(info.Version)
	validExtStr = C.CString(info.ValidExtensions)
}

func freeStrings() {
	for _, s := range []**C.char{&libNameStr, &libVerStr, &validExtStr} {
		if *s != nil {
			C.free(unsafe.Pointer(*s))
			*s = nil
		}
	}
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	// a frontend may start the lifecycle over after retro_deinit; the
	// deinitialized instance is terminal, so stand up a fresh one
	if bridge.Deinitialized() {
		bridge = retroglue.NewInstance(factory)
	}
	C.store_environ_cb(cb)
	wrapped := func(selector uint32, data unsafe.Pointer) bool {
		return bool(C.call_environ_cb(C.uint(selector), data))
	}
	env = retroglue.NewEnvironment(wrapped)
	envSet = true
	bridge.OnSetEnvironment(wrapped)
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	C.store_video_cb(cb)
	if cb == nil {
		bridge.OnSetVideoRefresh(nil)
		return
	}
	bridge.OnSetVideoRefresh(func(frame []byte, width, height uint32, pitch int) {
		var p unsafe.Pointer
		if len(frame) > 0 {
			p = unsafe.Pointer(&frame[0])
		}
		C.call_video_cb(p, C.uint(width), C.uint(height), C.size_t(pitch))
	})
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	C.store_audio_cb(cb)
	if cb == nil {
		bridge.OnSetAudioSample(nil)
		return
	}
	bridge.OnSetAudioSample(func(left, right int16) {
		C.call_audio_cb(C.int16_t(left), C.int16_t(right))
	})
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	C.store_audio_batch_cb(cb)
	if cb == nil {
		bridge.OnSetAudioSampleBatch(nil)
		return
	}
	bridge.OnSetAudioSampleBatch(func(samples []int16) int {
		if len(samples) == 0 {
			return 0
		}
		frames := len(samples) / 2
		n := C.call_audio_batch_cb((*C.int16_t)(unsafe.Pointer(&samples[0])), C.size_t(frames))
		return int(n)
	})
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	C.store_input_poll_cb(cb)
	if cb == nil {
		bridge.OnSetInputPoll(nil)
		return
	}
	bridge.OnSetInputPoll(func() {
		C.call_input_poll_cb()
	})
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	C.store_input_state_cb(cb)
	if cb == nil {
		bridge.OnSetInputState(nil)
		return
	}
	bridge.OnSetInputState(func(port, device, index, id uint32) int16 {
		return int16(C.call_input_state_cb(C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
	})
}

//export retro_init
func retro_init() {
	bridge.OnInit()
	if envSet {
		hookFrontendLog(env)
	}
}

//export retro_deinit
func retro_deinit() {
	bridge.OnDeinit()
	unhookFrontendLog()
	freeStrings()
	freeMemBuffers()
	envSet = false
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.RETRO_API_VERSION
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	ensureStrings()
	sys := bridge.OnGetSystemInfo()
	info.library_name = libNameStr
	info.library_version = libVerStr
	info.valid_extensions = validExtStr
	info.need_fullpath = C.bool(sys.NeedFullPath)
	info.block_extract = C.bool(sys.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	av := bridge.OnGetSystemAVInfo()
	info.geometry.base_width = C.uint(av.Video.Width)
	info.geometry.base_height = C.uint(av.Video.Height)
	info.geometry.max_width = C.uint(av.Video.MaxWidth)
	info.geometry.max_height = C.uint(av.Video.MaxHeight)
	info.geometry.aspect_ratio = C.float(av.Video.AspectRatio)
	info.timing.fps = C.double(av.Video.FrameRate)
	info.timing.sample_rate = C.double(av.Audio.SampleRate)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	bridge.OnSetControllerPortDevice(uint32(port), uint32(device))
}

//export retro_reset
func retro_reset() {
	bridge.OnReset()
}

//export retro_run
func retro_run() {
	syncMemoryToCore()
	bridge.OnRun()
	syncMemoryFromCore()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return C.size_t(bridge.OnSerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	if data == nil {
		return C.bool(false)
	}
	buf := unsafe.Slice((*byte)(data), int(size))
	return C.bool(bridge.OnSerialize(buf))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	if data == nil {
		return C.bool(false)
	}
	buf := unsafe.Slice((*byte)(data), int(size))
	return C.bool(bridge.OnUnserialize(buf))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	bridge.OnCheatReset()
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
	bridge.OnCheatSet(uint32(index), bool(enabled), ffi.GoString((*byte)(unsafe.Pointer(code))))
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	ok := bridge.OnLoadGame(GameFromC(game))
	if ok {
		allocMemBuffers()
	}
	return C.bool(ok)
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	// only the first record is forwarded; multi-disk cores read the rest
	// from their own content paths
	var first *C.struct_retro_game_info
	if info != nil && numInfo > 0 {
		first = info
	}
	ok := bridge.OnLoadGameSpecial(types.GameType(gameType), GameFromC(first))
	if ok {
		allocMemBuffers()
	}
	return C.bool(ok)
}

//export retro_unload_game
func retro_unload_game() {
	syncMemoryFromCore()
	bridge.OnUnloadGame()
	freeMemBuffers()
}

//export retro_get_region
func retro_get_region() C.uint {
	if bridge.OnGetRegion() == types.RegionPAL {
		return C.RETRO_REGION_PAL
	}
	return C.RETRO_REGION_NTSC
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	if buf, ok := memBuffers[types.MemoryType(id)]; ok {
		return buf.ptr
	}
	return nil
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	if buf, ok := memBuffers[types.MemoryType(id)]; ok {
		return C.size_t(buf.size)
	}
	return C.size_t(bridge.OnGetMemorySize(types.MemoryType(id)))
}

// GameFromC adapts a C game-info record into the Game union via the pure-Go
// decoder. The C struct and the ffi mirror share one layout.
func GameFromC(game *C.struct_retro_game_info) types.Game {
	return retroglue.GameFromWire((*ffi.GameInfo)(unsafe.Pointer(game)))
}
