// Package retroglue is the glue layer between a Go emulation core and a
// libretro frontend. A plugin author implements the Core contract (and its
// Factory), registers it through the retro subpackage, and builds the result
// with -buildmode=c-shared; the frontend then drives the exported retro_*
// entry points and this package enforces the legal call sequence, marshals
// the untyped environment channel into typed operations, and forwards frame
// output through the host's callbacks.
//
// The lifecycle the frontend is contractually required to follow:
//
//	set_environment → init → load_game → (run | serialize | ...)* →
//	unload_game → [load_game → ...]* → deinit
//
// Entry points invoked outside that order panic with a
// *types.ProtocolViolation rather than guessing at recoverable behavior.
package retroglue

import (
	"github.com/retroglue/retroglue/types"
)

// APIVersion is the libretro API generation this bridge speaks, as reported
// by retro_api_version. Version negotiation is out of scope; the value is
// fixed.
const APIVersion = 1

// Aliases for the most-used descriptor types, so simple cores only import
// this package.
type (
	SystemInfo = types.SystemInfo
	AudioInfo  = types.AudioInfo
	VideoInfo  = types.VideoInfo
	LoadedGame = types.LoadedGame
	Game       = types.Game
	Region     = types.Region
)
