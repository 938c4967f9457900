package retroglue

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/retroglue/retroglue/types"
)

// lifecycle states of one plugin instance. The host is the only actor
// driving transitions; the bridge's job is to refuse illegal ones loudly.
type state uint8

const (
	stateUnconfigured state = iota
	stateEnvironmentBound
	stateInitialized
	stateGameLoaded
	stateGameUnloaded
	stateDeinitialized
)

func (s state) String() string {
	switch s {
	case stateUnconfigured:
		return "unconfigured"
	case stateEnvironmentBound:
		return "environment-bound"
	case stateInitialized:
		return "initialized"
	case stateGameLoaded:
		return "game-loaded"
	case stateGameUnloaded:
		return "game-unloaded"
	case stateDeinitialized:
		return "deinitialized"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Instance is the glue layer between a Core and the libretro ABI: one On*
// method per entry point, each performing a lifecycle check, marshaling the
// arguments into typed values, delegating to the Core contract and reshaping
// the result for the wire.
//
// The host contract is single-threaded and non-reentrant, so Instance does
// no locking. Illegal transitions and missing required callbacks panic with
// a *types.ProtocolViolation: the frontend is assumed non-malicious but
// occasionally non-compliant, and an immediate crash with a diagnostic beats
// silent corruption across the ABI boundary.
type Instance struct {
	factory Factory
	core    Core
	state   state
	envSet  bool
	env     Environment

	// cached from the last successful load; get_system_av_info and
	// get_region arrive later with no arguments to recover them from
	loaded *types.LoadedGame

	// host callback slots, each independently optional until run time
	audioSample      AudioSampleCallback
	audioSampleBatch AudioSampleBatchCallback
	inputPoll        InputPollCallback
	inputState       InputStateCallback
	videoRefresh     VideoRefreshCallback
}

// NewInstance builds the bridge for one core factory. A fresh instance
// starts unconfigured; a deinitialized one is terminal and a new instance
// must be constructed to start over.
func NewInstance(factory Factory) *Instance {
	if factory == nil {
		panic("retroglue: NewInstance called with a nil Factory")
	}
	return &Instance{factory: factory}
}

// Deinitialized reports whether this instance has reached its terminal
// state. Callers that want to run the lifecycle again construct a fresh
// instance over the same factory.
func (i *Instance) Deinitialized() bool {
	return i.state == stateDeinitialized
}

func (i *Instance) violate(entry, reason string) {
	pv := &types.ProtocolViolation{Entry: entry, Reason: reason}
	Logger().Error("aborting on protocol violation",
		zap.String("entry", entry),
		zap.String("reason", reason),
		zap.Stringer("state", i.state))
	panic(pv)
}

// requireCore guards the entry points that need a constructed core
// (initialized or later, not yet deinitialized).
func (i *Instance) requireCore(entry string) {
	if i.core == nil || i.state == stateDeinitialized {
		i.violate(entry, "no core instance; retro_init has not run (or retro_deinit already has)")
	}
}

// requireLoaded guards the entry points that are only legal with a game
// loaded.
func (i *Instance) requireLoaded(entry string) {
	if i.state != stateGameLoaded || i.loaded == nil {
		i.violate(entry, "no game is loaded")
	}
}

// OnSetEnvironment binds (or replaces) the environment channel and
// immediately forwards the core's static no-game capability to the host.
func (i *Instance) OnSetEnvironment(cb EnvironmentCallback) {
	if cb == nil {
		i.violate("retro_set_environment", "environment callback is null")
	}
	i.env = NewEnvironment(cb)
	i.envSet = true
	if i.state == stateUnconfigured {
		i.state = stateEnvironmentBound
	}
	i.env.SetSupportNoGame(i.factory.SupportsNoGame())
	Logger().Debug("environment bound", zap.Bool("supports_no_game", i.factory.SupportsNoGame()))
}

// OnInit constructs the core instance.
func (i *Instance) OnInit() {
	if !i.envSet {
		i.violate("retro_init", "called before retro_set_environment")
	}
	if i.state != stateEnvironmentBound {
		i.violate("retro_init", fmt.Sprintf("illegal in state %s", i.state))
	}
	i.core = i.factory.New(i.env)
	i.state = stateInitialized
	Logger().Debug("core constructed")
}

// OnDeinit releases the core, the channel and every callback slot. Legal in
// any state; the host is responsible for unloading first.
func (i *Instance) OnDeinit() {
	i.core = nil
	i.loaded = nil
	i.env = Environment{}
	i.envSet = false
	i.audioSample = nil
	i.audioSampleBatch = nil
	i.inputPoll = nil
	i.inputState = nil
	i.videoRefresh = nil
	i.state = stateDeinitialized
	Logger().Debug("instance deinitialized")
}

// OnGetSystemInfo reports the static core description. Legal in any state.
func (i *Instance) OnGetSystemInfo() types.SystemInfo {
	return i.factory.SystemInfo()
}

// OnGetSystemAVInfo returns the descriptor cached by the last successful
// load and negotiates the pixel format it carries. Fatal outside GameLoaded:
// there is nothing truthful to report.
func (i *Instance) OnGetSystemAVInfo() types.AVInfo {
	i.requireLoaded("retro_get_system_av_info")
	i.env.SetPixelFormat(i.loaded.Video.PixelFormat)
	return i.loaded.AVInfo()
}

// OnGetRegion returns the region cached by the last successful load. Fatal
// outside GameLoaded.
func (i *Instance) OnGetRegion() types.Region {
	i.requireLoaded("retro_get_region")
	return i.loaded.Region
}

// Callback setters. Each slot is independently settable at any time before
// run; a null value is tolerated here (host feature not supported) and only
// becomes fatal if a run-time operation needs the slot.

func (i *Instance) OnSetAudioSample(cb AudioSampleCallback) { i.audioSample = cb }

func (i *Instance) OnSetAudioSampleBatch(cb AudioSampleBatchCallback) { i.audioSampleBatch = cb }

func (i *Instance) OnSetInputPoll(cb InputPollCallback) { i.inputPoll = cb }

func (i *Instance) OnSetInputState(cb InputStateCallback) { i.inputState = cb }

func (i *Instance) OnSetVideoRefresh(cb VideoRefreshCallback) { i.videoRefresh = cb }

// OnSetControllerPortDevice forwards a port/device assignment. Unknown
// device classes and out-of-range ports are dropped, matching the ABI's
// "core is allowed to ignore" semantics.
func (i *Instance) OnSetControllerPortDevice(port, device uint32) {
	i.requireCore("retro_set_controller_port_device")
	dev, ok := types.DeviceFromWire(device)
	if !ok || port > 0xff {
		Logger().Debug("ignoring controller assignment",
			zap.Uint32("port", port), zap.Uint32("device", device))
		return
	}
	i.core.SetControllerPortDevice(i.env, types.DevicePort(port), dev)
}

// OnReset forwards a player-initiated reset.
func (i *Instance) OnReset() {
	i.requireCore("retro_reset")
	i.core.Reset(i.env)
}

// OnRun advances emulation by one frame. The input-poll callback is invoked
// exactly once, unconditionally, before the core runs; the host contract
// requires that pacing.
func (i *Instance) OnRun() {
	i.requireLoaded("retro_run")
	if i.inputPoll == nil {
		i.violate("retro_run", "input_poll callback was never set")
	}
	rt, err := NewRuntime(i.audioSample, i.audioSampleBatch, i.inputState, i.videoRefresh)
	if err != nil {
		pv := err.(*types.ProtocolViolation)
		i.violate(pv.Entry, pv.Reason)
	}
	i.inputPoll()
	i.core.Run(i.env, rt)
}

// OnSerializeSize reports the save-state buffer bound.
func (i *Instance) OnSerializeSize() int {
	i.requireCore("retro_serialize_size")
	return i.core.SerializeSize(i.env)
}

// OnSerialize fills buf with the core's state. A false return is the core
// declining (unsupported, or buf too small for it); never fatal.
func (i *Instance) OnSerialize(buf []byte) bool {
	i.requireCore("retro_serialize")
	if err := i.core.Serialize(i.env, buf); err != nil {
		Logger().Debug("serialize declined", zap.Error(err))
		return false
	}
	return true
}

// OnUnserialize restores the core's state from buf. False means declined.
func (i *Instance) OnUnserialize(buf []byte) bool {
	i.requireCore("retro_unserialize")
	if err := i.core.Unserialize(i.env, buf); err != nil {
		Logger().Debug("unserialize declined", zap.Error(err))
		return false
	}
	return true
}

// OnCheatReset forwards a cheat-table wipe.
func (i *Instance) OnCheatReset() {
	i.requireCore("retro_cheat_reset")
	i.core.CheatReset(i.env)
}

// OnCheatSet forwards one cheat code.
func (i *Instance) OnCheatSet(index uint32, enabled bool, code string) {
	i.requireCore("retro_cheat_set")
	i.core.CheatSet(i.env, index, enabled, code)
}

// OnLoadGame drives the core's load operation. On success the returned
// region/av-info are cached for the get_region/get_system_av_info calls the
// host makes next, and the instance enters GameLoaded. On failure nothing is
// cached and the host must not call run or the av queries.
func (i *Instance) OnLoadGame(game types.Game) bool {
	if i.state != stateInitialized && i.state != stateGameUnloaded {
		i.violate("retro_load_game", fmt.Sprintf("illegal in state %s", i.state))
	}
	if game == nil {
		game = types.NoGame{}
	}
	loaded, err := i.core.LoadGame(i.env, game)
	if err != nil {
		Logger().Warn("load_game failed", zap.Error(err))
		i.loaded = nil
		return false
	}
	i.loaded = &loaded
	i.state = stateGameLoaded
	Logger().Debug("game loaded",
		zap.Stringer("region", loaded.Region),
		zap.Float64("fps", loaded.Video.FrameRate),
		zap.Float64("sample_rate", loaded.Audio.SampleRate))
	return true
}

// OnLoadGameSpecial drives subsystem content loading. Success has the same
// lifecycle effect as OnLoadGame.
func (i *Instance) OnLoadGameSpecial(gameType types.GameType, game types.Game) bool {
	if i.state != stateInitialized && i.state != stateGameUnloaded {
		i.violate("retro_load_game_special", fmt.Sprintf("illegal in state %s", i.state))
	}
	if game == nil {
		game = types.NoGame{}
	}
	loaded, err := i.core.LoadGameSpecial(i.env, gameType, game)
	if err != nil {
		Logger().Warn("load_game_special failed", zap.Error(err))
		i.loaded = nil
		return false
	}
	i.loaded = &loaded
	i.state = stateGameLoaded
	return true
}

// OnUnloadGame lets the core release the content, clears the cached
// av-info/region and returns the bridge to a state where load is legal
// again.
func (i *Instance) OnUnloadGame() {
	i.requireLoaded("retro_unload_game")
	i.core.UnloadGame(i.env)
	i.loaded = nil
	i.state = stateGameUnloaded
}

// OnGetMemoryData exposes one memory region, or nil when the core has none
// under that id.
func (i *Instance) OnGetMemoryData(id types.MemoryType) []byte {
	i.requireCore("retro_get_memory_data")
	return i.core.MemoryData(i.env, id)
}

// OnGetMemorySize reports the size of one memory region.
func (i *Instance) OnGetMemorySize(id types.MemoryType) int {
	i.requireCore("retro_get_memory_size")
	return len(i.core.MemoryData(i.env, id))
}
