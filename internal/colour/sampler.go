package colour

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"
)

// ErrImageTooSmall signals that an image is below the minimum working
// dimension. Sampling proceeds best-effort; callers treat this as a warning.
var ErrImageTooSmall = errors.New("image below minimum dimension")

// SamplerConfig holds configuration for pixel sampling.
type SamplerConfig struct {
	// ResizeWidth and ResizeHeight define the fixed working resolution the
	// source image is scaled to before sampling.
	ResizeWidth  int
	ResizeHeight int

	// SampleCap limits the number of pixels handed to clustering. Zero
	// disables subsampling.
	SampleCap int

	// MinDimension is the smallest acceptable source width or height.
	// Images below it are sampled anyway but flagged.
	MinDimension int
}

// DefaultSamplerConfig returns the default sampler configuration.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		ResizeWidth:  600,
		ResizeHeight: 400,
		SampleCap:    50000,
		MinDimension: 64,
	}
}

// Validate validates the sampler configuration.
func (c SamplerConfig) Validate() error {
	if c.ResizeWidth < 1 || c.ResizeHeight < 1 {
		return fmt.Errorf("resize target must be positive, got %dx%d", c.ResizeWidth, c.ResizeHeight)
	}
	if c.SampleCap < 0 {
		return fmt.Errorf("sample cap cannot be negative, got %d", c.SampleCap)
	}
	if c.MinDimension < 0 {
		return fmt.Errorf("minimum dimension cannot be negative, got %d", c.MinDimension)
	}
	return nil
}

// Sampler converts a decoded image into a bounded set of HSV pixel samples at
// a fixed working resolution.
type Sampler struct {
	cfg    SamplerConfig
	logger hclog.Logger
}

// NewSampler creates a Sampler with the given configuration.
func NewSampler(cfg SamplerConfig, logger hclog.Logger) *Sampler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Sampler{cfg: cfg, logger: logger}
}

// Sample resizes the image to the working resolution, converts every pixel to
// half-scale HSV, and subsamples to the configured cap using the given seed.
// The same image, configuration and seed always yield the same sample set.
func (s *Sampler) Sample(img image.Image, seed int64) ([]HSV, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if bounds.Dx() < s.cfg.MinDimension || bounds.Dy() < s.cfg.MinDimension {
		s.logger.Warn("sampling undersized image",
			"width", bounds.Dx(), "height", bounds.Dy(), "min", s.cfg.MinDimension,
			"err", ErrImageTooSmall)
	}

	resized := s.resize(img)

	rb := resized.Bounds()
	samples := make([]HSV, 0, rb.Dx()*rb.Dy())
	for y := rb.Min.Y; y < rb.Max.Y; y++ {
		for x := rb.Min.X; x < rb.Max.X; x++ {
			samples = append(samples, FromColor(resized.At(x, y)))
		}
	}

	if s.cfg.SampleCap > 0 && len(samples) > s.cfg.SampleCap {
		samples = subsample(samples, s.cfg.SampleCap, seed)
	}

	return samples, nil
}

// resize scales the image to the working resolution. Images already at the
// target size are copied as-is.
func (s *Sampler) resize(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == s.cfg.ResizeWidth && bounds.Dy() == s.cfg.ResizeHeight {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, s.cfg.ResizeWidth, s.cfg.ResizeHeight))
	// CatmullRom averages source regions when downscaling, so no colours are
	// invented that dominate the palette.
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// subsample reduces samples to n entries via a seeded partial Fisher-Yates
// shuffle, preserving relative colour proportions up to sampling noise.
func subsample(samples []HSV, n int, seed int64) []HSV {
	rng := rand.New(rand.NewSource(seed))
	picked := make([]HSV, len(samples))
	copy(picked, samples)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}
