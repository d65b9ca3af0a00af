package graphics

import "fmt"

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// Components returns the red, green, blue and alpha bytes.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Hex returns the color as a "#RRGGBB" string, dropping alpha.
func (c Color) Hex() string {
	r, g, b, _ := c.Components()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Common colors.
const (
	ColorBlack   = Color(0xFF000000)
	ColorWhite   = Color(0xFFFFFFFF)
	ColorRed     = Color(0xFFFF0000)
	ColorYellow  = Color(0xFFFFFF00)
	ColorPurple  = Color(0xFF800080)
	ColorSalmon  = Color(0xFFFFB9A5)
	ColorOrchid  = Color(0xFFFFA5D6)
	ColorDimGray = Color(0xFF696969)
)
