// Package colour provides the HSV colour model, pixel sampling and palette
// extraction used by the stylelens feature engine.
package colour

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// HueMax is the exclusive upper bound of the hue channel. Hue uses a
	// half-scale domain [0,179], half of the conventional 0-360 degree circle.
	HueMax = 180

	// ChannelMax is the inclusive upper bound of the saturation and value channels.
	ChannelMax = 255
)

// HSV represents a colour in the half-scale HSV space: hue in [0,179],
// saturation and value in [0,255].
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// FromColor converts a color.Color to half-scale HSV.
func FromColor(c color.Color) HSV {
	r, g, b, _ := c.RGBA()
	cf := colorful.Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
	h, s, v := cf.Hsv()

	hsv := HSV{
		H: int(h/2.0 + 0.5),
		S: int(s*ChannelMax + 0.5),
		V: int(v*ChannelMax + 0.5),
	}
	if hsv.H >= HueMax {
		hsv.H -= HueMax
	}
	if hsv.S > ChannelMax {
		hsv.S = ChannelMax
	}
	if hsv.V > ChannelMax {
		hsv.V = ChannelMax
	}
	return hsv
}

// Color converts the HSV value back to a color.Color.
func (c HSV) Color() color.Color {
	cf := colorful.Hsv(float64(c.H)*2.0, float64(c.S)/ChannelMax, float64(c.V)/ChannelMax)
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex returns the colour as an RGB hex string (e.g., "#1a2b3c").
func (c HSV) Hex() string {
	cf := colorful.Hsv(float64(c.H)*2.0, float64(c.S)/ChannelMax, float64(c.V)/ChannelMax)
	r, g, b := cf.RGB255()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String returns the colour in "hsv(h, s, v)" form.
func (c HSV) String() string {
	return fmt.Sprintf("hsv(%d, %d, %d)", c.H, c.S, c.V)
}
