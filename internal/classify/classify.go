// Package classify defines the boundary to the external supervised-learning
// backend. The engine produces deterministic feature vectors and labels; the
// backend turns them into a scoring model. Nothing in this repository
// implements the model itself.
package classify

import "github.com/stylelens/stylelens/internal/feature"

// Example is one labelled training instance for a style.
type Example struct {
	Features feature.Vector `json:"features"`
	Positive bool           `json:"positive"`
}

// Model scores feature vectors against one trained style.
type Model interface {
	// Score returns the style-likeness probability for the vector. The value
	// is consumed as an opaque float by the reporting layer.
	Score(v feature.Vector) (float64, error)
}

// Trainer builds a Model from labelled examples.
type Trainer interface {
	Train(examples []Example) (Model, error)
}
