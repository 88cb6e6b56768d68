// Package feature assembles harmony scores and HSV statistics into the
// fixed-order feature vector exchanged with the external classifier, and
// compares vectors against a style's positive examples.
package feature

import (
	"math"

	"github.com/stylelens/stylelens/internal/colour"
	"github.com/stylelens/stylelens/internal/harmony"
)

// Field indices of the feature vector. The order is the contract with the
// external classifier: it must be identical across training and evaluation
// for the same model.
const (
	FieldComplementary = iota
	FieldAnalogous
	FieldMonochromatic
	FieldSplitComplementary
	FieldTriadic
	FieldWeightedOverall
	FieldDominantH
	FieldDominantS
	FieldDominantV
	FieldMeanH
	FieldMeanS
	FieldMeanV
	FieldDominantRatio

	// Size is the fixed length of the feature vector.
	Size = iota
)

// FieldNames lists the feature fields in vector order.
var FieldNames = [Size]string{
	"complementary",
	"analogous",
	"monochromatic",
	"split_complementary",
	"triadic",
	"weighted_overall",
	"dominant_h",
	"dominant_s",
	"dominant_v",
	"mean_h",
	"mean_s",
	"mean_v",
	"dominant_ratio",
}

// Vector is one image's feature vector. Built fresh per evaluation and never
// mutated afterwards; every field is finite.
type Vector [Size]float64

// Build assembles a feature vector from the palette statistics, the harmony
// scores, and the applicable weight vector (per-style or uniform).
func Build(stats colour.Statistics, scores harmony.Scores, weights harmony.Weights) Vector {
	var v Vector
	v[FieldComplementary] = scores.Complementary
	v[FieldAnalogous] = scores.Analogous
	v[FieldMonochromatic] = scores.Monochromatic
	v[FieldSplitComplementary] = scores.SplitComplementary
	v[FieldTriadic] = scores.Triadic
	v[FieldWeightedOverall] = weights.Overall(scores)
	v[FieldDominantH] = float64(stats.Dominant.H)
	v[FieldDominantS] = float64(stats.Dominant.S)
	v[FieldDominantV] = float64(stats.Dominant.V)
	v[FieldMeanH] = stats.MeanH
	v[FieldMeanS] = stats.MeanS
	v[FieldMeanV] = stats.MeanV
	v[FieldDominantRatio] = stats.DominantRatio

	// The classifier boundary only ever sees finite values.
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			v[i] = 0
		}
	}
	return v
}

// Slice returns the vector as a plain float slice, e.g. for handing to a
// classifier backend.
func (v Vector) Slice() []float64 {
	out := make([]float64, Size)
	copy(out, v[:])
	return out
}

// Harmony extracts the five raw harmony scores from the vector.
func (v Vector) Harmony() harmony.Scores {
	return harmony.Scores{
		Complementary:      v[FieldComplementary],
		Analogous:          v[FieldAnalogous],
		Monochromatic:      v[FieldMonochromatic],
		SplitComplementary: v[FieldSplitComplementary],
		Triadic:            v[FieldTriadic],
	}
}
