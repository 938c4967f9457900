package types

import "strings"

// SystemInfo describes a core to the frontend before anything is loaded:
// display name, version and the content it accepts. It is static per core and
// may be requested at any point in the lifecycle, even before retro_init.
type SystemInfo struct {
	// Name of the core, without version or vendor noise. Frontends use it in
	// menus and to build core-specific directory names.
	Name string
	// Version string, free-form.
	Version string
	// ValidExtensions holds the content file extensions the core accepts,
	// pipe-separated, without leading dots ("gb|gbc"). Empty means the core
	// takes no content or accepts anything.
	ValidExtensions string
	// BlockExtract tells the frontend not to extract archives before passing
	// content. Relevant when the core reads archives itself.
	BlockExtract bool
	// NeedFullPath tells the frontend to pass content as a filesystem path
	// instead of loading the bytes into memory. A core that sets this must be
	// prepared for a Game descriptor carrying a path and no data.
	NeedFullPath bool
}

// NewSystemInfo builds a SystemInfo with just the required name and version.
func NewSystemInfo(name, version string) SystemInfo {
	return SystemInfo{Name: name, Version: version}
}

// WithValidExtensions returns a copy accepting the given extensions.
func (s SystemInfo) WithValidExtensions(exts ...string) SystemInfo {
	s.ValidExtensions = strings.Join(exts, "|")
	return s
}

// WithBlockExtract returns a copy that asks the frontend not to extract
// archived content.
func (s SystemInfo) WithBlockExtract() SystemInfo {
	s.BlockExtract = true
	return s
}

// WithNeedFullPath returns a copy that asks for content by path.
func (s SystemInfo) WithNeedFullPath() SystemInfo {
	s.NeedFullPath = true
	return s
}
