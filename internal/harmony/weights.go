package harmony

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MetricCount is the number of harmony metrics.
const MetricCount = 5

// ErrDegenerateWeights signals that weight learning produced no positive
// coefficient. The learner falls back to uniform weights; callers treat this
// as a warning.
var ErrDegenerateWeights = errors.New("learned weights are degenerate")

// Weights combines the five harmony metrics into one overall score. The
// weights are non-negative and sum to 1; negative coefficients never reach
// downstream scoring.
type Weights [MetricCount]float64

// UniformWeights returns the default weighting with every metric contributing
// equally.
func UniformWeights() Weights {
	var w Weights
	for i := range w {
		w[i] = 1.0 / MetricCount
	}
	return w
}

// Overall returns the weighted combination of the harmony scores.
func (w Weights) Overall(s Scores) float64 {
	total := 0.0
	for i, v := range s.Slice() {
		total += w[i] * v
	}
	return total
}

// Validate checks the non-negativity and normalization invariants.
func (w Weights) Validate() error {
	sum := 0.0
	for i, v := range w {
		if v < 0 {
			return fmt.Errorf("weight %d is negative: %g", i, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("weights sum to %g, want 1", sum)
	}
	return nil
}

// LearnerConfig holds configuration for weight learning.
type LearnerConfig struct {
	// LearningRate is the gradient-descent step size.
	LearningRate float64

	// Iterations is the fixed number of full-batch gradient steps. A fixed
	// count keeps the fit deterministic.
	Iterations int

	// L2 is the ridge penalty on the coefficients.
	L2 float64
}

// DefaultLearnerConfig returns the default learner configuration.
func DefaultLearnerConfig() LearnerConfig {
	return LearnerConfig{
		LearningRate: 0.1,
		Iterations:   500,
		L2:           1e-4,
	}
}

// Validate validates the learner configuration.
func (c LearnerConfig) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %g", c.LearningRate)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.L2 < 0 {
		return fmt.Errorf("l2 penalty cannot be negative, got %g", c.L2)
	}
	return nil
}

// LearnWeights fits a logistic discriminator separating the harmony scores of
// style-positive examples from style-negative ones, then maps its
// coefficients onto a valid weight vector: negative coefficients are clipped
// to zero and the remainder normalized to sum 1. If no coefficient survives
// clipping the uniform weighting is returned together with
// ErrDegenerateWeights.
//
// Only the five raw harmony scores participate; the derived overall score and
// the HSV statistics are excluded to avoid circularity.
func LearnWeights(positive, negative []Scores, cfg LearnerConfig) (Weights, error) {
	if err := cfg.Validate(); err != nil {
		return UniformWeights(), err
	}
	if len(positive) == 0 || len(negative) == 0 {
		return UniformWeights(), fmt.Errorf("need positive and negative examples, got %d/%d", len(positive), len(negative))
	}

	n := len(positive) + len(negative)
	x := mat.NewDense(n, MetricCount, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range positive {
		x.SetRow(i, s.Slice())
		y.SetVec(i, 1)
	}
	for i, s := range negative {
		x.SetRow(len(positive)+i, s.Slice())
		y.SetVec(len(positive)+i, 0)
	}

	coeffs, _ := fitLogistic(x, y, cfg)

	// Clip to the non-negative simplex.
	var w Weights
	sum := 0.0
	for i := range w {
		v := coeffs.AtVec(i)
		if v > 0 {
			w[i] = v
			sum += v
		}
	}
	if sum < 1e-12 {
		return UniformWeights(), ErrDegenerateWeights
	}
	for i := range w {
		w[i] /= sum
	}
	return w, nil
}

// fitLogistic runs full-batch gradient descent on the logistic loss and
// returns the coefficient vector and intercept. Starting from zero with a
// fixed iteration count makes the result reproducible for identical inputs.
func fitLogistic(x *mat.Dense, y *mat.VecDense, cfg LearnerConfig) (*mat.VecDense, float64) {
	n, d := x.Dims()
	coeffs := mat.NewVecDense(d, nil)
	intercept := 0.0

	preds := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d, nil)

	for iter := 0; iter < cfg.Iterations; iter++ {
		preds.MulVec(x, coeffs)
		for i := 0; i < n; i++ {
			preds.SetVec(i, sigmoid(preds.AtVec(i)+intercept))
		}
		diff.SubVec(preds, y)

		grad.MulVec(x.T(), diff)
		grad.ScaleVec(1/float64(n), grad)
		grad.AddScaledVec(grad, cfg.L2, coeffs)

		coeffs.AddScaledVec(coeffs, -cfg.LearningRate, grad)
		intercept -= cfg.LearningRate * mat.Sum(diff) / float64(n)
	}

	return coeffs, intercept
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
