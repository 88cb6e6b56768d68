package colour

import (
	"image/color"
	"testing"
)

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want HSV
	}{
		{name: "red", in: color.RGBA{R: 255, A: 255}, want: HSV{H: 0, S: 255, V: 255}},
		{name: "cyan", in: color.RGBA{G: 255, B: 255, A: 255}, want: HSV{H: 90, S: 255, V: 255}},
		{name: "green", in: color.RGBA{G: 255, A: 255}, want: HSV{H: 60, S: 255, V: 255}},
		{name: "blue", in: color.RGBA{B: 255, A: 255}, want: HSV{H: 120, S: 255, V: 255}},
		{name: "black", in: color.RGBA{A: 255}, want: HSV{H: 0, S: 0, V: 0}},
		{name: "white", in: color.RGBA{R: 255, G: 255, B: 255, A: 255}, want: HSV{H: 0, S: 0, V: 255}},
		{name: "mid grey", in: color.RGBA{R: 128, G: 128, B: 128, A: 255}, want: HSV{H: 0, S: 0, V: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColor(tt.in)
			if got != tt.want {
				t.Errorf("FromColor(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromColorRange(t *testing.T) {
	// Every converted value stays inside the half-scale hue range and
	// the 8-bit channel range.
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				hsv := FromColor(color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
				if hsv.H < 0 || hsv.H >= HueMax {
					t.Fatalf("hue %d out of range for rgb(%d,%d,%d)", hsv.H, r, g, b)
				}
				if hsv.S < 0 || hsv.S > ChannelMax || hsv.V < 0 || hsv.V > ChannelMax {
					t.Fatalf("s/v out of range for rgb(%d,%d,%d): %+v", r, g, b, hsv)
				}
			}
		}
	}
}

func TestHSVHex(t *testing.T) {
	tests := []struct {
		name string
		in   HSV
		want string
	}{
		{name: "red", in: HSV{H: 0, S: 255, V: 255}, want: "#ff0000"},
		{name: "cyan", in: HSV{H: 90, S: 255, V: 255}, want: "#00ffff"},
		{name: "black", in: HSV{H: 0, S: 0, V: 0}, want: "#000000"},
		{name: "white", in: HSV{H: 0, S: 0, V: 255}, want: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Hex(); got != tt.want {
				t.Errorf("%+v.Hex() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHSVColorRoundTrip(t *testing.T) {
	for _, in := range []HSV{
		{H: 0, S: 255, V: 255},
		{H: 90, S: 255, V: 255},
		{H: 45, S: 128, V: 200},
		{H: 179, S: 64, V: 32},
	} {
		got := FromColor(in.Color())
		if HueDistance(float64(got.H), float64(in.H)) > 1 ||
			abs(got.S-in.S) > 2 || abs(got.V-in.V) > 2 {
			t.Errorf("round trip of %+v produced %+v", in, got)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
