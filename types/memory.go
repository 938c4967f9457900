package types

// MemoryType identifies one of the memory regions a frontend can ask for with
// retro_get_memory_data/retro_get_memory_size, e.g. to persist battery-backed
// save RAM or to run cheat searches over system RAM.
type MemoryType uint32

const (
	MemorySaveRAM   MemoryType = 0
	MemoryRTC       MemoryType = 1
	MemorySystemRAM MemoryType = 2
	MemoryVideoRAM  MemoryType = 3
)

// GameType discriminates subsystem content for retro_load_game_special. The
// values are core-defined; the frontend learns them out of band.
type GameType uint32
