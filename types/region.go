package types

import "fmt"

// Region identifies the video system a loaded game targets. The frontend
// queries it once per load via retro_get_region and uses it to pick refresh
// behavior.
type Region uint32

const (
	// RegionNTSC is a 30 frames/second (60 fields/second) video system.
	RegionNTSC Region = 0
	// RegionPAL is a 25 frames/second (50 fields/second) video system.
	RegionPAL Region = 1
)

func (r Region) String() string {
	switch r {
	case RegionNTSC:
		return "NTSC"
	case RegionPAL:
		return "PAL"
	default:
		return fmt.Sprintf("Region(%d)", uint32(r))
	}
}
