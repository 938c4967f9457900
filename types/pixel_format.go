package types

import "fmt"

// PixelFormat is the frame buffer layout a core renders in. It is negotiated
// once per load through the RETRO_ENVIRONMENT_SET_PIXEL_FORMAT selector; the
// frontend may decline formats it cannot display.
type PixelFormat int32

const (
	// PixelFormatRGB1555 is 0RGB1555, the libretro default. Deprecated by the
	// upstream API but still what a frontend assumes if negotiation never
	// happens.
	PixelFormatRGB1555 PixelFormat = 0
	// PixelFormatXRGB8888 is packed 32-bit, high byte ignored.
	PixelFormatXRGB8888 PixelFormat = 1
	// PixelFormatRGB565 is packed 16-bit, the format upstream recommends.
	PixelFormatRGB565 PixelFormat = 2
)

// BytesPerPixel returns the storage size of one pixel in this format.
func (f PixelFormat) BytesPerPixel() int {
	if f == PixelFormatXRGB8888 {
		return 4
	}
	return 2
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB1555:
		return "0RGB1555"
	case PixelFormatXRGB8888:
		return "XRGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int32(f))
	}
}
