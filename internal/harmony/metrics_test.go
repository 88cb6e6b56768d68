package harmony

import (
	"math"
	"testing"

	"github.com/stylelens/stylelens/internal/colour"
)

// palette builds a palette of equally-weighted entries at the given hues, with
// fixed saturation and value.
func palette(hues ...int) *colour.Palette {
	entries := make([]colour.Entry, len(hues))
	for i, h := range hues {
		entries[i] = colour.Entry{
			Colour: colour.HSV{H: h, S: 200, V: 200},
			Ratio:  1.0 / float64(len(hues)),
		}
	}
	return colour.NewPalette(entries)
}

func TestComplementary(t *testing.T) {
	perfect := Compute(palette(0, 90), DefaultConfig())
	if perfect.Complementary < 0.999 {
		t.Errorf("exact complement scored %g, want ~1", perfect.Complementary)
	}

	// Score decreases monotonically as the pair drifts from the complement.
	prev := perfect.Complementary
	for _, h := range []int{85, 80, 70, 45} {
		s := Compute(palette(0, h), DefaultConfig())
		if s.Complementary >= prev {
			t.Errorf("complementary at hue gap %d = %g, want below %g", h, s.Complementary, prev)
		}
		prev = s.Complementary
	}

	// A single hue has no pairs.
	if s := Compute(palette(42), DefaultConfig()); s.Complementary != 0 {
		t.Errorf("single hue complementary = %g, want 0", s.Complementary)
	}
}

func TestAnalogous(t *testing.T) {
	adjacent := Compute(palette(10, 20), DefaultConfig())
	if adjacent.Analogous < 0.999 {
		t.Errorf("adjacent hues scored %g, want ~1", adjacent.Analogous)
	}

	far := Compute(palette(0, 90), DefaultConfig())
	if far.Analogous != 0 {
		t.Errorf("opposite hues scored %g, want 0", far.Analogous)
	}

	// Hues wrapping the boundary are still adjacent.
	wrapped := Compute(palette(175, 5), DefaultConfig())
	if wrapped.Analogous < 0.999 {
		t.Errorf("wrapped adjacent hues scored %g, want ~1", wrapped.Analogous)
	}
}

func TestMonochromatic(t *testing.T) {
	single := Compute(palette(77), DefaultConfig())
	if single.Monochromatic != 1 {
		t.Errorf("single-colour palette scored %g, want exactly 1", single.Monochromatic)
	}

	tight := Compute(palette(40, 44), DefaultConfig())
	loose := Compute(palette(40, 90), DefaultConfig())
	if tight.Monochromatic <= loose.Monochromatic {
		t.Errorf("tight hue spread %g should beat loose spread %g",
			tight.Monochromatic, loose.Monochromatic)
	}

	// Same hues but wildly varying saturation/value scores lower.
	flat := colour.NewPalette([]colour.Entry{
		{Colour: colour.HSV{H: 40, S: 200, V: 200}, Ratio: 0.5},
		{Colour: colour.HSV{H: 44, S: 200, V: 200}, Ratio: 0.5},
	})
	varied := colour.NewPalette([]colour.Entry{
		{Colour: colour.HSV{H: 40, S: 30, V: 30}, Ratio: 0.5},
		{Colour: colour.HSV{H: 44, S: 250, V: 250}, Ratio: 0.5},
	})
	flatScore := Compute(flat, DefaultConfig()).Monochromatic
	variedScore := Compute(varied, DefaultConfig()).Monochromatic
	if flatScore <= variedScore {
		t.Errorf("flat S/V %g should beat varied S/V %g", flatScore, variedScore)
	}
}

func TestSplitComplementary(t *testing.T) {
	// Base at 0 with the two split hues at +75 and -75 half-units.
	perfect := Compute(palette(0, 75, 105), DefaultConfig())
	if perfect.SplitComplementary < 0.999 {
		t.Errorf("exact split triple scored %g, want ~1", perfect.SplitComplementary)
	}

	bunched := Compute(palette(0, 30, 60), DefaultConfig())
	if bunched.SplitComplementary > 0.01 {
		t.Errorf("bunched triple scored %g, want ~0", bunched.SplitComplementary)
	}

	if s := Compute(palette(0, 75), DefaultConfig()); s.SplitComplementary != 0 {
		t.Errorf("two entries scored %g, want 0", s.SplitComplementary)
	}
}

func TestTriadic(t *testing.T) {
	perfect := Compute(palette(0, 60, 120), DefaultConfig())
	if perfect.Triadic < 0.999 {
		t.Errorf("exact triad scored %g, want ~1", perfect.Triadic)
	}

	offTriad := Compute(palette(0, 40, 120), DefaultConfig())
	if offTriad.Triadic >= perfect.Triadic {
		t.Errorf("distorted triad %g should score below exact triad %g",
			offTriad.Triadic, perfect.Triadic)
	}

	if s := Compute(palette(0, 60), DefaultConfig()); s.Triadic != 0 {
		t.Errorf("two entries scored %g, want 0", s.Triadic)
	}
}

func TestNegligibleEntriesIgnored(t *testing.T) {
	// The third entry is below the threshold and must not dilute the pair.
	p := colour.NewPalette([]colour.Entry{
		{Colour: colour.HSV{H: 0, S: 200, V: 200}, Ratio: 0.50},
		{Colour: colour.HSV{H: 90, S: 200, V: 200}, Ratio: 0.49},
		{Colour: colour.HSV{H: 45, S: 200, V: 200}, Ratio: 0.01},
	})

	s := Compute(p, DefaultConfig())
	if s.Complementary < 0.999 {
		t.Errorf("complementary with negligible third entry = %g, want ~1", s.Complementary)
	}
}

func TestAllEntriesNegligibleFallsBack(t *testing.T) {
	p := colour.NewPalette([]colour.Entry{
		{Colour: colour.HSV{H: 0, S: 200, V: 200}, Ratio: 0.01},
		{Colour: colour.HSV{H: 90, S: 200, V: 200}, Ratio: 0.01},
	})

	s := Compute(p, DefaultConfig())
	if s.Complementary < 0.999 {
		t.Errorf("fallback to full palette failed, complementary = %g", s.Complementary)
	}
}

func TestScoresBounded(t *testing.T) {
	palettes := []*colour.Palette{
		palette(0),
		palette(0, 90),
		palette(0, 60, 120),
		palette(10, 20, 30, 40, 170),
	}
	for _, p := range palettes {
		s := Compute(p, DefaultConfig())
		for i, v := range s.Slice() {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("metric %s = %g out of [0,1] for %s", MetricNames()[i], v, p)
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if err := (Config{NegligibleRatio: -0.1}).Validate(); err == nil {
		t.Error("negative threshold should be rejected")
	}
	if err := (Config{NegligibleRatio: 1}).Validate(); err == nil {
		t.Error("threshold of 1 should be rejected")
	}
}
