// Package retro turns a retroglue.Factory into a loadable libretro core. It
// owns the exported retro_* symbols, adapts their C arguments into the typed
// bridge in the parent package, and keeps every cgo-specific concern (C
// string caches, C-allocated memory mirrors, frontend logging) out of the
// pure-Go packages.
//
// A core is a main package that registers its factory from init and builds
// with -buildmode=c-shared:
//
//	func init() {
//		retro.RegisterCore(myFactory{})
//	}
//
//	func main() {}
package retro

import (
	retroglue "github.com/retroglue/retroglue"
)

// bridge is the process-wide lifecycle instance behind the retro_* symbols.
// The ABI names fixed symbols, so there is only ever one live instance, but
// a deinitialized one is replaced with a fresh instance over the same
// factory when the frontend starts the lifecycle over.
var (
	factory retroglue.Factory
	bridge  *retroglue.Instance
)

// RegisterCore installs the factory the exported entry points drive. It must
// be called exactly once, from an init function, before the frontend touches
// any retro_* symbol.
func RegisterCore(f retroglue.Factory) {
	if factory != nil {
		panic("retro: RegisterCore called twice")
	}
	factory = f
	bridge = retroglue.NewInstance(f)
}
