package retro

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/retroglue/retroglue/types"
)

// memoryBuffer is a C-allocated mirror of one core memory region. The ABI
// hands the frontend a stable pointer it may read and write between frames,
// which Go memory cannot provide, so each exposed region gets a malloc'd
// shadow synced around retro_run.
type memoryBuffer struct {
	ptr  unsafe.Pointer
	size int
}

func (b *memoryBuffer) bytes() []byte {
	return unsafe.Slice((*byte)(b.ptr), b.size)
}

var memBuffers = make(map[types.MemoryType]*memoryBuffer)

var mirroredRegions = []types.MemoryType{
	types.MemorySaveRAM,
	types.MemoryRTC,
	types.MemorySystemRAM,
	types.MemoryVideoRAM,
}

// allocMemBuffers mirrors every region the core exposes. Called after a
// successful load; regions the core reports as absent get no buffer and the
// memory accessors answer null/zero for them.
func allocMemBuffers() {
	freeMemBuffers()
	for _, id := range mirroredRegions {
		region := bridge.OnGetMemoryData(id)
		if len(region) == 0 {
			continue
		}
		buf := &memoryBuffer{ptr: C.malloc(C.size_t(len(region))), size: len(region)}
		copy(buf.bytes(), region)
		memBuffers[id] = buf
	}
}

func freeMemBuffers() {
	for id, buf := range memBuffers {
		C.free(buf.ptr)
		delete(memBuffers, id)
	}
}

// syncMemoryToCore pushes frontend writes back into the core before a frame.
// Only save RAM is frontend-writable in practice (SRAM restore at startup);
// the other regions are exposed read-only by convention.
func syncMemoryToCore() {
	buf, ok := memBuffers[types.MemorySaveRAM]
	if !ok {
		return
	}
	region := bridge.OnGetMemoryData(types.MemorySaveRAM)
	if len(region) == buf.size {
		copy(region, buf.bytes())
	}
}

// syncMemoryFromCore refreshes every mirror from the core after a frame so
// the frontend always reads current contents.
func syncMemoryFromCore() {
	for id, buf := range memBuffers {
		region := bridge.OnGetMemoryData(id)
		if len(region) == buf.size {
			copy(buf.bytes(), region)
		}
	}
}
