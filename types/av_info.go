package types

// AudioInfo carries the audio timing a core commits to for one loaded game.
type AudioInfo struct {
	// SampleRate in Hz of the interleaved stereo stream the core uploads.
	SampleRate float64
}

// NewAudioInfo builds an AudioInfo with the given sample rate.
func NewAudioInfo(sampleRate float64) AudioInfo {
	return AudioInfo{SampleRate: sampleRate}
}

// DefaultAudioInfo is 44.1 kHz, the timing a frontend assumes when a core
// has nothing better to report.
func DefaultAudioInfo() AudioInfo {
	return NewAudioInfo(44_100)
}

// VideoInfo carries the video timing, geometry and pixel format a core
// commits to for one loaded game.
type VideoInfo struct {
	// FrameRate is the content frame rate in frames per second.
	FrameRate float64
	// Width and Height are the nominal frame buffer dimensions.
	Width  uint32
	Height uint32
	// AspectRatio of the displayed image. Zero or negative means "derive from
	// width/height", matching frontend behavior for a zero aspect in
	// retro_game_geometry.
	AspectRatio float32
	// MaxWidth and MaxHeight bound any geometry the core may later switch to.
	MaxWidth  uint32
	MaxHeight uint32
	// PixelFormat of uploaded frames. Negotiated with the frontend during
	// retro_get_system_av_info.
	PixelFormat PixelFormat
}

// NewVideoInfo builds a VideoInfo with the aspect ratio derived from the
// dimensions and the max geometry equal to the base geometry. Height must not
// be zero.
func NewVideoInfo(frameRate float64, width, height uint32) VideoInfo {
	if height == 0 {
		panic("retroglue: VideoInfo height must not be zero")
	}
	return VideoInfo{
		FrameRate:   frameRate,
		Width:       width,
		Height:      height,
		AspectRatio: float32(width) / float32(height),
		MaxWidth:    width,
		MaxHeight:   height,
		PixelFormat: PixelFormatRGB1555,
	}
}

// DefaultVideoInfo is a 60 fps VideoInfo for the given dimensions, the
// timing a frontend assumes when a core has nothing better to report.
func DefaultVideoInfo(width, height uint32) VideoInfo {
	return NewVideoInfo(60.0, width, height)
}

// WithAspectRatio returns a copy with an explicit display aspect ratio.
func (v VideoInfo) WithAspectRatio(ratio float32) VideoInfo {
	v.AspectRatio = ratio
	return v
}

// WithMax returns a copy with the given maximum geometry.
func (v VideoInfo) WithMax(width, height uint32) VideoInfo {
	v.MaxWidth = width
	v.MaxHeight = height
	return v
}

// WithPixelFormat returns a copy rendering in the given format.
func (v VideoInfo) WithPixelFormat(format PixelFormat) VideoInfo {
	v.PixelFormat = format
	return v
}

// AVInfo is the combined audio/video descriptor the frontend requests once
// per successful load via retro_get_system_av_info.
type AVInfo struct {
	Audio AudioInfo
	Video VideoInfo
}

// LoadedGame is everything a successful load produces: the region plus the
// audio/video descriptor. The bridge caches it because the frontend asks for
// region and av-info in separate, argument-free calls after load returns.
type LoadedGame struct {
	Region Region
	Audio  AudioInfo
	Video  VideoInfo
}

// AVInfo folds the audio and video halves into the wire descriptor.
func (l LoadedGame) AVInfo() AVInfo {
	return AVInfo{Audio: l.Audio, Video: l.Video}
}
