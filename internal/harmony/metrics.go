// Package harmony computes the five colour-harmony metrics and the learned
// weighting that combines them into an overall score.
package harmony

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/stylelens/stylelens/internal/colour"
)

// Ideal hue relationships in half-units (the hue domain is [0,179], so 90
// half-units is the 180-degree complement).
const (
	complementIdeal  = 90.0
	complementSigma  = 12.0
	analogousWindow  = 15.0
	analogousFalloff = 30.0
	monoHueSigma     = 15.0
	monoSVSigma      = 60.0
	splitOffset      = 75.0
	tripleSigma      = 10.0
	triadSeparation  = 60.0
)

// Config holds configuration for harmony scoring.
type Config struct {
	// NegligibleRatio is the palette-entry ratio below which entries are
	// ignored, so near-zero clusters cannot dominate the pair weighting.
	NegligibleRatio float64
}

// DefaultConfig returns the default harmony configuration.
func DefaultConfig() Config {
	return Config{NegligibleRatio: 0.02}
}

// Validate validates the harmony configuration.
func (c Config) Validate() error {
	if c.NegligibleRatio < 0 || c.NegligibleRatio >= 1 {
		return fmt.Errorf("negligibility threshold must be in [0,1), got %g", c.NegligibleRatio)
	}
	return nil
}

// Scores holds the five independent harmony metrics, each in [0,1].
type Scores struct {
	Complementary      float64 `json:"complementary"`
	Analogous          float64 `json:"analogous"`
	Monochromatic      float64 `json:"monochromatic"`
	SplitComplementary float64 `json:"split_complementary"`
	Triadic            float64 `json:"triadic"`
}

// Slice returns the scores in their fixed metric order.
func (s Scores) Slice() []float64 {
	return []float64{s.Complementary, s.Analogous, s.Monochromatic, s.SplitComplementary, s.Triadic}
}

// MetricNames lists the harmony metrics in the same order as Scores.Slice.
func MetricNames() []string {
	return []string{"complementary", "analogous", "monochromatic", "split_complementary", "triadic"}
}

// Compute derives all five harmony scores from a palette. Each metric is a
// ratio-weighted aggregate over pairs or triples of palette entries and
// depends only on their hue relationships (plus saturation/value spread for
// the monochromatic metric).
func Compute(p *colour.Palette, cfg Config) Scores {
	hues, sats, vals, weights := significantEntries(p, cfg.NegligibleRatio)
	if len(hues) == 0 {
		return Scores{}
	}

	return Scores{
		Complementary:      complementary(hues, weights),
		Analogous:          analogous(hues, weights),
		Monochromatic:      monochromatic(hues, sats, vals, weights),
		SplitComplementary: splitComplementary(hues, weights),
		Triadic:            triadic(hues, weights),
	}
}

// significantEntries unpacks palette entries at or above the negligibility
// threshold into parallel channel slices. If the threshold would discard
// everything, the full palette is used instead.
func significantEntries(p *colour.Palette, threshold float64) (hues, sats, vals, weights []float64) {
	entries := make([]colour.Entry, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Ratio >= threshold {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		entries = p.Entries
	}

	hues = make([]float64, len(entries))
	sats = make([]float64, len(entries))
	vals = make([]float64, len(entries))
	weights = make([]float64, len(entries))
	for i, e := range entries {
		hues[i] = float64(e.Colour.H)
		sats[i] = float64(e.Colour.S)
		vals[i] = float64(e.Colour.V)
		weights[i] = e.Ratio
	}
	return hues, sats, vals, weights
}

// decay is a smooth unit falloff from 1 at x == 0.
func decay(x, sigma float64) float64 {
	return math.Exp(-0.5 * (x / sigma) * (x / sigma))
}

// complementary rewards hue pairs near the 180-degree complement. A palette
// with a single significant hue has no pairs and scores 0.
func complementary(hues, weights []float64) float64 {
	var sum, wsum float64
	for i := 0; i < len(hues); i++ {
		for j := i + 1; j < len(hues); j++ {
			w := weights[i] * weights[j]
			d := colour.HueDistance(hues[i], hues[j])
			sum += w * decay(complementIdeal-d, complementSigma)
			wsum += w
		}
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// analogous rewards hue pairs within a narrow window (~30 degrees), decaying
// linearly outside it.
func analogous(hues, weights []float64) float64 {
	var sum, wsum float64
	for i := 0; i < len(hues); i++ {
		for j := i + 1; j < len(hues); j++ {
			w := weights[i] * weights[j]
			d := colour.HueDistance(hues[i], hues[j])
			score := 1.0
			if d > analogousWindow {
				score = math.Max(0, 1-(d-analogousWindow)/analogousFalloff)
			}
			sum += w * score
			wsum += w
		}
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// monochromatic rewards a small circular hue spread combined with a bounded
// saturation/value spread. A single-entry palette has no spread on any
// channel and scores exactly 1.
func monochromatic(hues, sats, vals, weights []float64) float64 {
	hueSpread := colour.CircularHueSpread(hues, weights)
	svSpread := math.Sqrt((weightedVariance(sats, weights) + weightedVariance(vals, weights)) / 2)
	return decay(hueSpread, monoHueSigma) * decay(svSpread, monoSVSigma)
}

// splitComplementary rewards triples approximating one base hue plus two hues
// symmetric around its complement (offsets of ~150 and ~210 degrees).
func splitComplementary(hues, weights []float64) float64 {
	if len(hues) < 3 {
		return 0
	}
	var sum, wsum float64
	forEachTriple(len(hues), func(i, j, k int) {
		w := weights[i] * weights[j] * weights[k]
		best := 0.0
		bases := [3][3]int{{i, j, k}, {j, i, k}, {k, i, j}}
		for _, b := range bases {
			d1 := colour.SignedHueDistance(hues[b[0]], hues[b[1]])
			d2 := colour.SignedHueDistance(hues[b[0]], hues[b[2]])
			straight := decay(d1-splitOffset, tripleSigma) * decay(d2+splitOffset, tripleSigma)
			swapped := decay(d1+splitOffset, tripleSigma) * decay(d2-splitOffset, tripleSigma)
			best = math.Max(best, math.Max(straight, swapped))
		}
		sum += w * best
		wsum += w
	})
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// triadic rewards triples of hues approximately 120 degrees apart.
func triadic(hues, weights []float64) float64 {
	if len(hues) < 3 {
		return 0
	}
	var sum, wsum float64
	forEachTriple(len(hues), func(i, j, k int) {
		w := weights[i] * weights[j] * weights[k]
		score := decay(colour.HueDistance(hues[i], hues[j])-triadSeparation, tripleSigma) *
			decay(colour.HueDistance(hues[i], hues[k])-triadSeparation, tripleSigma) *
			decay(colour.HueDistance(hues[j], hues[k])-triadSeparation, tripleSigma)
		sum += w * score
		wsum += w
	})
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// forEachTriple visits every unordered triple of indices below n.
func forEachTriple(n int, visit func(i, j, k int)) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				visit(i, j, k)
			}
		}
	}
}

// weightedVariance is the weighted population variance. gonum's stat.Variance
// is the unbiased sample estimator, which is undefined for a single entry.
func weightedVariance(x, weights []float64) float64 {
	mean := stat.Mean(x, weights)
	var sum, wsum float64
	for i, v := range x {
		sum += weights[i] * (v - mean) * (v - mean)
		wsum += weights[i]
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}
