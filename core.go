package retroglue

import (
	"github.com/retroglue/retroglue/types"
)

// Factory is the static side of a core: everything the frontend may ask
// before (or without) an instance existing, plus the constructor the bridge
// calls during retro_init.
type Factory interface {
	// SystemInfo describes the core. Callable at any lifecycle point.
	SystemInfo() types.SystemInfo

	// SupportsNoGame reports whether the core can run without content. The
	// bridge forwards it to the host exactly once, at retro_set_environment
	// time, through the SET_SUPPORT_NO_GAME selector.
	SupportsNoGame() bool

	// New constructs the core instance. The environment is already bound
	// and can be queried for directories, variables and capabilities.
	New(env Environment) Core
}

// Core is the capability contract a plugin author implements. Reset, Run and
// LoadGame carry the actual emulation; everything else has a safe default
// available by embedding NopCore, so a concrete core only spells out what it
// customizes.
//
// All methods are invoked on the host's single thread of control, strictly
// one at a time; no Core implementation needs internal locking for the
// bridge's sake.
type Core interface {
	// Reset is called when the player resets the game.
	Reset(env Environment)

	// Run advances emulation by exactly one frame, uploading audio and video
	// through the runtime and polling input through it as needed.
	Run(env Environment, rt *Runtime)

	// LoadGame takes ownership of nothing: the game descriptor's data is
	// borrowed and must be copied if kept. On success it returns the region
	// and av timing the frontend will query afterwards.
	LoadGame(env Environment, game types.Game) (types.LoadedGame, error)

	// SetControllerPortDevice associates a device class with a port. A core
	// may ignore the request. Default: ignored.
	SetControllerPortDevice(env Environment, port types.DevicePort, device types.Device)

	// SerializeSize returns the fixed upper bound for save-state buffers, or
	// 0 when the core does not serialize. Called once per run by the host;
	// later Serialize calls must fit in it. Default: 0.
	SerializeSize(env Environment) int

	// Serialize writes the core's state into buf, which is at least
	// SerializeSize bytes. Default: types.ErrUnsupported.
	Serialize(env Environment, buf []byte) error

	// Unserialize restores state previously written by Serialize.
	// Default: types.ErrUnsupported.
	Unserialize(env Environment, buf []byte) error

	// CheatReset drops all installed cheats. Default: no-op.
	CheatReset(env Environment)

	// CheatSet installs or toggles one cheat code. Default: no-op.
	CheatSet(env Environment, index uint32, enabled bool, code string)

	// LoadGameSpecial loads subsystem content. Success has the same effect
	// on the lifecycle as LoadGame. Default: types.ErrUnsupported.
	LoadGameSpecial(env Environment, gameType types.GameType, game types.Game) (types.LoadedGame, error)

	// UnloadGame is called before the content goes away. Default: no-op.
	UnloadGame(env Environment)

	// MemoryData exposes one memory region as the core's own backing slice,
	// or nil when the region does not exist. The slice length is the
	// region's size. Default: no regions.
	MemoryData(env Environment, id types.MemoryType) []byte
}

// NopCore provides the safe defaults for every optional Core operation.
// Embed it and the compiler only demands Reset, Run and LoadGame.
type NopCore struct{}

func (NopCore) SetControllerPortDevice(Environment, types.DevicePort, types.Device) {}

func (NopCore) SerializeSize(Environment) int { return 0 }

func (NopCore) Serialize(Environment, []byte) error { return types.ErrUnsupported }

func (NopCore) Unserialize(Environment, []byte) error { return types.ErrUnsupported }

func (NopCore) CheatReset(Environment) {}

func (NopCore) CheatSet(Environment, uint32, bool, string) {}

func (NopCore) LoadGameSpecial(Environment, types.GameType, types.Game) (types.LoadedGame, error) {
	return types.LoadedGame{}, types.ErrUnsupported
}

func (NopCore) UnloadGame(Environment) {}

func (NopCore) MemoryData(Environment, types.MemoryType) []byte { return nil }
