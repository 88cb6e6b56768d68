// Package style ties the feature engine together: per-image analysis, batch
// extraction over image sets, and style profiles built from labelled
// directories.
package style

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/stylelens/stylelens/internal/colour"
	"github.com/stylelens/stylelens/internal/feature"
	"github.com/stylelens/stylelens/internal/harmony"
	"github.com/stylelens/stylelens/internal/imageio"
)

// EngineConfig is the full configuration surface of the feature engine.
// It is passed explicitly into each engine call; there is no ambient state,
// so independent images can be analyzed concurrently.
type EngineConfig struct {
	Sampler   colour.SamplerConfig
	Extractor colour.ExtractorConfig
	Harmony   harmony.Config
	Learner   harmony.LearnerConfig
	Seed      imageio.SeedConfig

	// AutoWeightLearning enables deriving per-style metric weights from the
	// labelled examples when building a profile.
	AutoWeightLearning bool

	// Workers bounds batch concurrency. Zero means one worker per CPU.
	Workers int
}

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Sampler:            colour.DefaultSamplerConfig(),
		Extractor:          colour.DefaultExtractorConfig(),
		Harmony:            harmony.DefaultConfig(),
		Learner:            harmony.DefaultLearnerConfig(),
		Seed:               imageio.SeedConfig{Mode: imageio.SeedModeContent},
		AutoWeightLearning: false,
		Workers:            0,
	}
}

// Validate validates the engine configuration.
func (c EngineConfig) Validate() error {
	if err := c.Sampler.Validate(); err != nil {
		return fmt.Errorf("sampler: %w", err)
	}
	if err := c.Extractor.Validate(); err != nil {
		return fmt.Errorf("extractor: %w", err)
	}
	if err := c.Harmony.Validate(); err != nil {
		return fmt.Errorf("harmony: %w", err)
	}
	if err := c.Learner.Validate(); err != nil {
		return fmt.Errorf("learner: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	return nil
}

// Analysis is the engine's per-image output: the palette and its statistics
// for display, the harmony scores, and the assembled feature vector.
type Analysis struct {
	Palette  *colour.Palette   `json:"palette"`
	Stats    colour.Statistics `json:"stats"`
	Scores   harmony.Scores    `json:"scores"`
	Features feature.Vector    `json:"features"`
}

// Engine runs the sampling, clustering and scoring pipeline. All operations
// are synchronous pure computations over their inputs; an Engine is safe for
// concurrent use.
type Engine struct {
	cfg    EngineConfig
	loader imageio.Loader
	logger hclog.Logger
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg EngineConfig, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{
		cfg:    cfg,
		loader: imageio.NewSmartLoader(),
		logger: logger,
	}
}

// AnalyzeImage runs the pipeline over a decoded image: sample, cluster,
// compute statistics and harmony scores, assemble the feature vector with the
// given weights.
func (e *Engine) AnalyzeImage(img image.Image, weights harmony.Weights) (*Analysis, error) {
	seed, err := imageio.Seed(img, e.cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive seed: %w", err)
	}

	sampler := colour.NewSampler(e.cfg.Sampler, e.logger)
	samples, err := sampler.Sample(img, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to sample image: %w", err)
	}

	extractor := colour.NewKMeansExtractor(e.cfg.Extractor, e.logger)
	palette, err := extractor.Extract(samples, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette: %w", err)
	}

	stats, err := colour.ComputeStatistics(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	scores := harmony.Compute(palette, e.cfg.Harmony)

	return &Analysis{
		Palette:  palette,
		Stats:    stats,
		Scores:   scores,
		Features: feature.Build(stats, scores, weights),
	}, nil
}

// AnalyzePath loads an image from a file path or URL and analyzes it.
func (e *Engine) AnalyzePath(path string, weights harmony.Weights) (*Analysis, error) {
	img, err := e.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return e.AnalyzeImage(img, weights)
}
