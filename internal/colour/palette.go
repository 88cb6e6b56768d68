package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyPalette is returned when a computation is handed a palette with no
// entries. The extractor guarantees at least one entry, so hitting this is a
// contract violation by the caller.
var ErrEmptyPalette = errors.New("palette has no entries")

// Entry is one representative colour and the fraction of sampled pixels it
// accounts for.
type Entry struct {
	Colour HSV     `json:"colour"`
	Ratio  float64 `json:"ratio"`
}

// Palette is an ordered set of representative colours extracted from an image.
// Entries are sorted by descending ratio, ties broken by ascending hue, and
// the ratios sum to 1 within floating tolerance.
type Palette struct {
	Entries []Entry
}

// NewPalette creates a Palette from the given entries, establishing the
// canonical sort order.
func NewPalette(entries []Entry) *Palette {
	p := &Palette{Entries: entries}
	p.sort()
	return p
}

// sort orders entries by descending ratio, then ascending hue for determinism.
func (p *Palette) sort() {
	sort.SliceStable(p.Entries, func(i, j int) bool {
		if p.Entries[i].Ratio != p.Entries[j].Ratio {
			return p.Entries[i].Ratio > p.Entries[j].Ratio
		}
		return p.Entries[i].Colour.H < p.Entries[j].Colour.H
	})
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Dominant returns the highest-ratio entry.
func (p *Palette) Dominant() (Entry, error) {
	if len(p.Entries) == 0 {
		return Entry{}, ErrEmptyPalette
	}
	return p.Entries[0], nil
}

// PaletteJSON represents the palette in JSON output format.
type PaletteJSON struct {
	Count   int         `json:"count"`
	Colours []EntryJSON `json:"colours"`
}

// EntryJSON represents one palette entry in JSON output format.
type EntryJSON struct {
	Hex   string  `json:"hex"`
	HSV   HSV     `json:"hsv"`
	Ratio float64 `json:"ratio"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]EntryJSON, len(p.Entries))
	for i, e := range p.Entries {
		colours[i] = EntryJSON{
			Hex:   e.Colour.Hex(),
			HSV:   e.Colour,
			Ratio: e.Ratio,
		}
	}
	return json.MarshalIndent(PaletteJSON{Count: len(colours), Colours: colours}, "", "  ")
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}
	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Entries))
	for i, e := range p.Entries {
		result += fmt.Sprintf("  %2d: %s %s (%.1f%%)\n", i+1, e.Colour.Hex(), e.Colour.String(), e.Ratio*100)
	}
	return result
}
