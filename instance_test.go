package retroglue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroglue/retroglue/types"
)

func TestLifecycleHappyPath(t *testing.T) {
	factory := newMockFactory()
	host := newEnvHost()
	frames := newFrameHost()
	inst := NewInstance(factory)

	inst.OnSetEnvironment(host.callback())
	inst.OnInit()
	require.Equal(t, 1, factory.constructed)
	frames.install(inst)

	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{0xca, 0xfe}}))

	av := inst.OnGetSystemAVInfo()
	assert.Equal(t, 44_100.0, av.Audio.SampleRate)
	assert.Equal(t, uint32(320), av.Video.Width)
	assert.Equal(t, types.RegionNTSC, inst.OnGetRegion())

	inst.OnRun()
	inst.OnRun()
	assert.Equal(t, 2, factory.core.runs)

	inst.OnReset()
	assert.Equal(t, 1, factory.core.resets)

	inst.OnUnloadGame()
	assert.Equal(t, 1, factory.core.unloads)

	// load → unload can cycle
	require.True(t, inst.OnLoadGame(types.GamePath{Path: "/roms/b.bin"}))
	inst.OnUnloadGame()

	inst.OnDeinit()
}

func TestRunOutsideGameLoadedIsFatal(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()
	newFrameHost().install(inst)

	requireViolation(t, "retro_run", inst.OnRun)

	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))
	inst.OnUnloadGame()
	requireViolation(t, "retro_run", inst.OnRun)
}

func TestAvQueriesOutsideGameLoadedAreFatal(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	requireViolation(t, "retro_get_system_av_info", func() { inst.OnGetSystemAVInfo() })
	requireViolation(t, "retro_get_region", func() { inst.OnGetRegion() })
	requireViolation(t, "retro_unload_game", inst.OnUnloadGame)
}

func TestCoreOperationsBeforeInitAreFatal(t *testing.T) {
	inst := NewInstance(newMockFactory())
	inst.OnSetEnvironment(newEnvHost().callback())

	requireViolation(t, "retro_serialize_size", func() { inst.OnSerializeSize() })
	requireViolation(t, "retro_serialize", func() { inst.OnSerialize(nil) })
	requireViolation(t, "retro_unserialize", func() { inst.OnUnserialize(nil) })
	requireViolation(t, "retro_cheat_reset", inst.OnCheatReset)
	requireViolation(t, "retro_cheat_set", func() { inst.OnCheatSet(0, true, "AAAA") })
	requireViolation(t, "retro_get_memory_data", func() { inst.OnGetMemoryData(types.MemorySaveRAM) })
	requireViolation(t, "retro_get_memory_size", func() { inst.OnGetMemorySize(types.MemorySaveRAM) })
	requireViolation(t, "retro_reset", inst.OnReset)
	requireViolation(t, "retro_load_game", func() { inst.OnLoadGame(nil) })
}

func TestInitBeforeSetEnvironmentIsFatal(t *testing.T) {
	inst := NewInstance(newMockFactory())
	requireViolation(t, "retro_init", inst.OnInit)
}

func TestLoadGameFailureLeavesBridgeUnloaded(t *testing.T) {
	factory := newMockFactory()
	factory.core.loadErr = types.ErrLoadFailed
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()
	newFrameHost().install(inst)

	require.False(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))

	// nothing cached, run/av stay illegal
	requireViolation(t, "retro_get_system_av_info", func() { inst.OnGetSystemAVInfo() })
	requireViolation(t, "retro_get_region", func() { inst.OnGetRegion() })
	requireViolation(t, "retro_run", inst.OnRun)

	// a later attempt may succeed
	factory.core.loadErr = nil
	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))
	assert.Equal(t, types.RegionNTSC, inst.OnGetRegion())
}

func TestUnloadGameClearsCachedAvInfo(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))
	inst.OnUnloadGame()

	requireViolation(t, "retro_get_system_av_info", func() { inst.OnGetSystemAVInfo() })
	requireViolation(t, "retro_get_region", func() { inst.OnGetRegion() })
}

func TestSupportNoGameForwardedOnceAtSetEnvironment(t *testing.T) {
	for _, noGame := range []bool{true, false} {
		factory := newMockFactory()
		factory.noGame = noGame
		host := newEnvHost()
		inst := NewInstance(factory)

		inst.OnSetEnvironment(host.callback())
		inst.OnInit()
		require.True(t, inst.OnLoadGame(types.NoGame{}))

		require.Equal(t, 1, host.count(EnvSetSupportNoGame),
			"SET_SUPPORT_NO_GAME must be sent exactly once, at set_environment time")
		require.Equal(t, []bool{noGame}, host.supportNoGame)
	}
}

func TestNoGameLoadReachesCore(t *testing.T) {
	factory := newMockFactory()
	factory.noGame = true
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	require.True(t, inst.OnLoadGame(nil))
	_, isNoGame := factory.core.lastGame.(types.NoGame)
	assert.True(t, isNoGame, "nil wire game must reach the core as the NoGame variant")
}

func TestRunRequiresEveryFrameCallback(t *testing.T) {
	newLoaded := func() (*Instance, *frameHost) {
		factory := newMockFactory()
		inst := NewInstance(factory)
		inst.OnSetEnvironment(newEnvHost().callback())
		inst.OnInit()
		frames := newFrameHost()
		frames.install(inst)
		require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))
		return inst, frames
	}

	inst, _ := newLoaded()
	inst.OnSetInputPoll(nil)
	requireViolation(t, "retro_run", inst.OnRun)

	inst, _ = newLoaded()
	inst.OnSetAudioSample(nil)
	requireViolation(t, "retro_run", inst.OnRun)

	inst, _ = newLoaded()
	inst.OnSetAudioSampleBatch(nil)
	requireViolation(t, "retro_run", inst.OnRun)

	inst, _ = newLoaded()
	inst.OnSetInputState(nil)
	requireViolation(t, "retro_run", inst.OnRun)

	inst, _ = newLoaded()
	inst.OnSetVideoRefresh(nil)
	requireViolation(t, "retro_run", inst.OnRun)
}

func TestRunPollsInputExactlyOncePerFrame(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()
	frames := newFrameHost()
	frames.install(inst)
	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))

	inst.OnRun()
	assert.Equal(t, 1, frames.polled)
	inst.OnRun()
	inst.OnRun()
	assert.Equal(t, 3, frames.polled)
}

func TestGetSystemAVInfoNegotiatesPixelFormat(t *testing.T) {
	factory := newMockFactory()
	host := newEnvHost()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(host.callback())
	inst.OnInit()
	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))

	inst.OnGetSystemAVInfo()
	require.Equal(t, []types.PixelFormat{types.PixelFormatRGB565}, host.pixelFormats)
}

func TestSerializeRoundTripThroughBridge(t *testing.T) {
	factory := newMockFactory()
	factory.core.saveState = []byte{0xde, 0xad, 0xbe, 0xef}
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	size := inst.OnSerializeSize()
	require.Equal(t, 4, size)

	buf := make([]byte, size)
	require.True(t, inst.OnSerialize(buf))
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buf)

	require.True(t, inst.OnUnserialize([]byte{1, 2, 3, 4}))
	assert.Equal(t, []byte{1, 2, 3, 4}, factory.core.saveState)

	// undersized buffer is a declined operation, not fatal
	require.False(t, inst.OnSerialize(make([]byte, 1)))
}

func TestNopCoreDefaultsDecline(t *testing.T) {
	var nop NopCore
	assert.Equal(t, 0, nop.SerializeSize(Environment{}))
	assert.ErrorIs(t, nop.Serialize(Environment{}, nil), types.ErrUnsupported)
	assert.ErrorIs(t, nop.Unserialize(Environment{}, nil), types.ErrUnsupported)
	assert.Nil(t, nop.MemoryData(Environment{}, types.MemorySaveRAM))
	_, err := nop.LoadGameSpecial(Environment{}, 0, types.NoGame{})
	assert.ErrorIs(t, err, types.ErrUnsupported)
}

func TestLoadGameSpecialDefaultDeclines(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	// mockCore embeds NopCore, so special loads decline without state change
	require.False(t, inst.OnLoadGameSpecial(types.GameType(7), types.GameData{Data: []byte{1}}))
	requireViolation(t, "retro_get_region", func() { inst.OnGetRegion() })

	// the regular path still works afterwards
	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))
}

func TestSetControllerPortDeviceIgnoresUnknownDevice(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	// unknown device class and absurd port are both dropped silently
	inst.OnSetControllerPortDevice(0, 99)
	inst.OnSetControllerPortDevice(4096, uint32(types.DeviceJoypad))
}

func TestMemoryRegionExposure(t *testing.T) {
	factory := newMockFactory()
	factory.core.sram = []byte{9, 8, 7}
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()

	assert.Equal(t, []byte{9, 8, 7}, inst.OnGetMemoryData(types.MemorySaveRAM))
	assert.Equal(t, 3, inst.OnGetMemorySize(types.MemorySaveRAM))
	assert.Nil(t, inst.OnGetMemoryData(types.MemorySystemRAM))
	assert.Equal(t, 0, inst.OnGetMemorySize(types.MemorySystemRAM))
}

func TestDeinitIsTerminal(t *testing.T) {
	factory := newMockFactory()
	inst := NewInstance(factory)
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()
	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))

	// deinit is legal from any state, even with a game still loaded
	inst.OnDeinit()

	requireViolation(t, "retro_run", inst.OnRun)
	requireViolation(t, "retro_serialize_size", func() { inst.OnSerializeSize() })
	requireViolation(t, "retro_init", inst.OnInit)

	// static info survives: it never needed an instance
	assert.Equal(t, "mockcore", inst.OnGetSystemInfo().Name)
}

func TestFreshInstanceRunsLifecycleAfterDeinit(t *testing.T) {
	factory := newMockFactory()

	inst := NewInstance(factory)
	assert.False(t, inst.Deinitialized())
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()
	inst.OnDeinit()
	require.True(t, inst.Deinitialized())

	// a frontend may start over after deinit; a fresh instance over the
	// same factory runs the whole lifecycle again
	inst = NewInstance(factory)
	assert.False(t, inst.Deinitialized())
	inst.OnSetEnvironment(newEnvHost().callback())
	inst.OnInit()
	require.True(t, inst.OnLoadGame(types.GameData{Data: []byte{1}}))
	assert.Equal(t, 2, factory.constructed)
	inst.OnDeinit()
}

func TestGetSystemInfoAvailableInAnyState(t *testing.T) {
	inst := NewInstance(newMockFactory())
	assert.Equal(t, "mockcore", inst.OnGetSystemInfo().Name)
	assert.Equal(t, "bin", inst.OnGetSystemInfo().ValidExtensions)
}
