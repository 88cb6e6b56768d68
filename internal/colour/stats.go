package colour

import (
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes a palette: the dominant colour, the ratio-weighted
// mean colour, and how much of the image the dominant colour covers.
// Immutable once computed.
type Statistics struct {
	Dominant      HSV     `json:"dominant"`
	MeanH         float64 `json:"mean_h"`
	MeanS         float64 `json:"mean_s"`
	MeanV         float64 `json:"mean_v"`
	DominantRatio float64 `json:"dominant_ratio"`
}

// ComputeStatistics derives Statistics from a palette. The mean hue is a
// ratio-weighted circular mean so hues straddling the 0/179 boundary average
// correctly; mean saturation and value are ratio-weighted arithmetic means.
// Returns ErrEmptyPalette for a zero-entry palette.
func ComputeStatistics(p *Palette) (Statistics, error) {
	dominant, err := p.Dominant()
	if err != nil {
		return Statistics{}, err
	}

	hues := make([]float64, len(p.Entries))
	sats := make([]float64, len(p.Entries))
	vals := make([]float64, len(p.Entries))
	weights := make([]float64, len(p.Entries))
	for i, e := range p.Entries {
		hues[i] = float64(e.Colour.H)
		sats[i] = float64(e.Colour.S)
		vals[i] = float64(e.Colour.V)
		weights[i] = e.Ratio
	}

	return Statistics{
		Dominant:      dominant.Colour,
		MeanH:         CircularMeanHue(hues, weights),
		MeanS:         stat.Mean(sats, weights),
		MeanV:         stat.Mean(vals, weights),
		DominantRatio: dominant.Ratio,
	}, nil
}
