package colour

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewPaletteOrdering(t *testing.T) {
	p := NewPalette([]Entry{
		{Colour: HSV{H: 120, S: 200, V: 200}, Ratio: 0.2},
		{Colour: HSV{H: 90, S: 200, V: 200}, Ratio: 0.3},
		{Colour: HSV{H: 10, S: 200, V: 200}, Ratio: 0.3},
		{Colour: HSV{H: 60, S: 200, V: 200}, Ratio: 0.2},
	})

	wantHues := []int{10, 90, 60, 120}
	for i, want := range wantHues {
		if got := p.Entries[i].Colour.H; got != want {
			t.Errorf("entry %d has hue %d, want %d", i, got, want)
		}
	}

	var sum float64
	for _, e := range p.Entries {
		sum += e.Ratio
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("ratios sum to %g, want 1", sum)
	}
}

func TestPaletteDominant(t *testing.T) {
	p := NewPalette([]Entry{
		{Colour: HSV{H: 30, S: 100, V: 100}, Ratio: 0.25},
		{Colour: HSV{H: 150, S: 100, V: 100}, Ratio: 0.75},
	})

	dom, err := p.Dominant()
	if err != nil {
		t.Fatalf("Dominant() error: %v", err)
	}
	if dom.Colour.H != 150 || dom.Ratio != 0.75 {
		t.Errorf("Dominant() = %+v, want hue 150 ratio 0.75", dom)
	}
}

func TestPaletteDominantEmpty(t *testing.T) {
	p := NewPalette(nil)
	if _, err := p.Dominant(); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Dominant() on empty palette returned %v, want ErrEmptyPalette", err)
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := NewPalette([]Entry{
		{Colour: HSV{H: 0, S: 255, V: 255}, Ratio: 1.0},
	})

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"count": 1`, `"#ff0000"`, `"ratio": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q:\n%s", want, out)
		}
	}
}

func TestPaletteString(t *testing.T) {
	if got := NewPalette(nil).String(); got != "Empty palette" {
		t.Errorf("empty palette String() = %q", got)
	}

	p := NewPalette([]Entry{{Colour: HSV{H: 0, S: 255, V: 255}, Ratio: 0.5}})
	if got := p.String(); !strings.Contains(got, "#ff0000") || !strings.Contains(got, "50.0%") {
		t.Errorf("String() = %q", got)
	}
}
