package imageio

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"slices"
	"time"
)

// SeedMode determines how the per-image seed for sampling and clustering is
// generated. Reproducibility of a feature vector requires a deterministic
// mode.
type SeedMode string

const (
	// SeedModeContent derives the seed from the image content hash
	// (default, deterministic by content).
	SeedModeContent SeedMode = "content"
	// SeedModeManual uses a caller-provided seed value.
	SeedModeManual SeedMode = "manual"
	// SeedModeRandom uses a non-deterministic seed (varies each run).
	SeedModeRandom SeedMode = "random"
)

// ValidSeedModes returns the recognised seed modes.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedModeContent, SeedModeManual, SeedModeRandom}
}

// ParseSeedMode converts a string to a SeedMode.
func ParseSeedMode(s string) (SeedMode, error) {
	mode := SeedMode(s)
	if slices.Contains(ValidSeedModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, manual, random)", s)
}

// SeedConfig holds configuration for seed generation.
type SeedConfig struct {
	Mode  SeedMode
	Value int64 // only used with SeedModeManual
}

// Seed determines the per-image seed according to the configured mode.
func Seed(img image.Image, cfg SeedConfig) (int64, error) {
	switch cfg.Mode {
	case SeedModeContent, "":
		return ContentSeed(img)
	case SeedModeManual:
		return cfg.Value, nil
	case SeedModeRandom:
		// #nosec G404 -- intentionally non-deterministic
		return time.Now().UnixNano() + int64(rand.Intn(1000000)), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", cfg.Mode)
	}
}

// ContentSeed generates a deterministic seed from image content. The pixel
// data is hashed on a grid, so the same image yields the same seed regardless
// of filename or location.
func ContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// A grid sample is enough to identify the image; hashing every pixel
	// would only slow large inputs down.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion is safe
}
