package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-encodings-mcp/internal/rosmsg"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor extracts the display color at a pixel of a rendered image.
//
// Parameters:
//   - img: An image returned by ToImage (or any image.Image).
//   - x, y: 0-based pixel coordinates.
//
// # Color Conversion
//
// The pixel is converted to straight (non-premultiplied) 8-bit components
// with go-colorful. Fully transparent pixels report black with A = 0.
// The Hex format excludes alpha; use RGBA.A to get transparency information.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	px := img.At(x, y)
	_, _, _, a := px.RGBA()

	// MakeColor reports false only for a zero alpha, which leaves c black.
	c, _ := colorful.MakeColor(px)
	r8, g8, b8 := c.RGB255()
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: uint8(a >> 8)},
		HSL:  HSLColor{H: int(h), S: int(s*100 + 0.5), L: int(l*100 + 0.5)},
	}, nil
}

// ChannelSample holds the raw channel values of one pixel.
type ChannelSample struct {
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Encoding string    `json:"encoding"`
	Values   []float64 `json:"values"`
}

// SampleChannels returns the raw value of every channel at (x, y).
//
// Values are interpreted by the encoding's kind: unsigned and signed integers
// are returned exactly, floats as decoded. This works for every known
// encoding, including ones ToImage cannot render.
func SampleChannels(msg *rosmsg.Image, x, y int) (*ChannelSample, error) {
	p, err := newPixelReader(msg)
	if err != nil {
		return nil, err
	}
	if !p.inBounds(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	values := make([]float64, p.info.Channels)
	for c := range values {
		values[c] = p.value(x, y, c)
	}
	return &ChannelSample{X: x, Y: y, Encoding: msg.Encoding, Values: values}, nil
}
