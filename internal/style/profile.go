package style

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/stylelens/stylelens/internal/classify"
	"github.com/stylelens/stylelens/internal/feature"
	"github.com/stylelens/stylelens/internal/harmony"
	"github.com/stylelens/stylelens/internal/imageio"
)

// Profile holds everything the engine knows about one decorating style: the
// metric weights scoped to it and the feature vectors of its labelled
// example images.
type Profile struct {
	Name     string           `json:"name"`
	Weights  harmony.Weights  `json:"weights"`
	Positive []feature.Vector `json:"positive"`
	Negative []feature.Vector `json:"negative"`
}

// Examples returns the profile's labelled vectors in the form consumed by
// the external classifier's trainer.
func (p *Profile) Examples() []classify.Example {
	examples := make([]classify.Example, 0, len(p.Positive)+len(p.Negative))
	for _, v := range p.Positive {
		examples = append(examples, classify.Example{Features: v, Positive: true})
	}
	for _, v := range p.Negative {
		examples = append(examples, classify.Example{Features: v, Positive: false})
	}
	return examples
}

// Save writes the profile as indented JSON.
func (p *Profile) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// LoadProfile reads a profile saved by Save.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified profile path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q has invalid weights: %w", p.Name, err)
	}
	return &p, nil
}

// BuildProfile analyzes every image under the positive and negative
// directories and assembles a style profile. With auto weight learning
// enabled the per-style weights are fitted from the raw harmony scores and
// the feature vectors rebuilt with them, so the weighted-overall field
// reflects the learned weighting. Per-image failures are logged and skipped;
// only a style with no usable positive images is an error.
func (e *Engine) BuildProfile(name, positiveDir, negativeDir string) (*Profile, error) {
	posPaths, err := imageio.ScanDirectoryForImages(positiveDir)
	if err != nil {
		return nil, fmt.Errorf("positive examples: %w", err)
	}
	negPaths, err := imageio.ScanDirectoryForImages(negativeDir)
	if err != nil {
		return nil, fmt.Errorf("negative examples: %w", err)
	}

	weights := harmony.UniformWeights()
	positives := successful(e.AnalyzeBatch(posPaths, weights))
	negatives := successful(e.AnalyzeBatch(negPaths, weights))

	if len(positives) == 0 {
		return nil, fmt.Errorf("style %q: no positive image could be analyzed", name)
	}

	if e.cfg.AutoWeightLearning && len(negatives) > 0 {
		learned, err := harmony.LearnWeights(scoresOf(positives), scoresOf(negatives), e.cfg.Learner)
		if err != nil && !errors.Is(err, harmony.ErrDegenerateWeights) {
			return nil, fmt.Errorf("style %q: weight learning failed: %w", name, err)
		}
		if errors.Is(err, harmony.ErrDegenerateWeights) {
			e.logger.Warn("weight learning degenerate, using uniform weights", "style", name)
		}
		weights = learned
	}

	profile := &Profile{Name: name, Weights: weights}
	for _, a := range positives {
		profile.Positive = append(profile.Positive, feature.Build(a.Stats, a.Scores, weights))
	}
	for _, a := range negatives {
		profile.Negative = append(profile.Negative, feature.Build(a.Stats, a.Scores, weights))
	}
	return profile, nil
}

// scoresOf extracts the raw harmony scores from completed analyses.
func scoresOf(analyses []*Analysis) []harmony.Scores {
	out := make([]harmony.Scores, len(analyses))
	for i, a := range analyses {
		out[i] = a.Scores
	}
	return out
}
