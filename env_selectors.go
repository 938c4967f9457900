package retroglue

// The closed selector table of the environment protocol. Values are fixed by
// libretro.h and versioned externally; this package only declares the
// selectors its typed facade knows how to drive safely. Payload shape per
// selector is documented on the corresponding Environment method.
const (
	EnvGetCanDupe             uint32 = 3
	EnvSetMessage             uint32 = 6
	EnvShutdown               uint32 = 7
	EnvSetPerformanceLevel    uint32 = 8
	EnvGetSystemDirectory     uint32 = 9
	EnvSetPixelFormat         uint32 = 10
	EnvGetVariable            uint32 = 15
	EnvSetVariables           uint32 = 16
	EnvGetVariableUpdate      uint32 = 17
	EnvSetSupportNoGame       uint32 = 18
	EnvGetLibretroPath        uint32 = 19
	EnvGetLogInterface        uint32 = 27
	EnvGetCoreAssetsDirectory uint32 = 30
	EnvGetSaveDirectory       uint32 = 31
	EnvSetGeometry            uint32 = 37
	EnvGetUsername            uint32 = 38
)
