package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for desktop and game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightWhite
	ColorGray
	ColorBlack
)

// palette holds the RGB value used when a color is drawn on a raster image.
var palette = map[Color]color.RGBA{
	ColorDefault:     {R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff},
	ColorRed:         {R: 0xff, A: 0xff},
	ColorGreen:       {G: 0x80, A: 0xff},
	ColorYellow:      {R: 0xff, G: 0xd7, A: 0xff},
	ColorBlue:        {G: 0x5f, B: 0xff, A: 0xff},
	ColorCyan:        {G: 0xd7, B: 0xd7, A: 0xff},
	ColorWhite:       {R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
	ColorBrightGreen: {G: 0xff, A: 0xff}, // lime
	ColorBrightWhite: {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	ColorGray:        {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
	ColorBlack:       {A: 0xff},
}

// RGBA returns the raster equivalent of the color.
func (c Color) RGBA() color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[ColorDefault]
}

// ANSI returns the 256-color code used by the terminal renderer.
// An empty string means the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "1"
	case ColorGreen:
		return "2"
	case ColorYellow:
		return "3"
	case ColorBlue:
		return "4"
	case ColorCyan:
		return "6"
	case ColorWhite:
		return "7"
	case ColorBrightGreen:
		return "10"
	case ColorBrightWhite:
		return "15"
	case ColorGray:
		return "245"
	case ColorBlack:
		return "0"
	default:
		return ""
	}
}
