package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stylelens/stylelens/internal/imageio"
	"github.com/stylelens/stylelens/internal/style"
)

// Engine flags shared by the commands that run the feature pipeline. One
// command runs per invocation, so the flag variables can be shared the same
// way across commands.
var (
	flagClusters      string
	flagKMin          int
	flagKMax          int
	flagSampleCap     int
	flagResizeWidth   int
	flagResizeHeight  int
	flagNegligibility float64
	flagSeedMode      string
	flagSeedValue     int64
	flagWorkers       int
)

// registerEngineFlags registers the engine configuration surface on a command.
func registerEngineFlags(cmd *cobra.Command) {
	defaults := style.DefaultEngineConfig()
	cmd.Flags().StringVarP(&flagClusters, "clusters", "k", "auto", "palette size: a number, or 'auto' for elbow selection")
	cmd.Flags().IntVar(&flagKMin, "k-min", defaults.Extractor.KMin, "minimum palette size for automatic selection")
	cmd.Flags().IntVar(&flagKMax, "k-max", defaults.Extractor.KMax, "maximum palette size for automatic selection")
	cmd.Flags().IntVar(&flagSampleCap, "sample-cap", defaults.Sampler.SampleCap, "maximum number of pixels sampled per image (0 = all)")
	cmd.Flags().IntVar(&flagResizeWidth, "resize-width", defaults.Sampler.ResizeWidth, "working resolution width")
	cmd.Flags().IntVar(&flagResizeHeight, "resize-height", defaults.Sampler.ResizeHeight, "working resolution height")
	cmd.Flags().Float64Var(&flagNegligibility, "negligibility-threshold", defaults.Harmony.NegligibleRatio, "palette ratio below which entries are ignored by harmony scoring")
	cmd.Flags().StringVar(&flagSeedMode, "seed-mode", string(imageio.SeedModeContent), "seed mode for reproducible extraction (content, manual, random)")
	cmd.Flags().Int64Var(&flagSeedValue, "seed", 0, "seed value (used with --seed-mode manual)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "batch concurrency (0 = one per CPU)")
}

// engineConfigFromFlags assembles and validates the engine configuration.
func engineConfigFromFlags() (style.EngineConfig, error) {
	cfg := style.DefaultEngineConfig()

	if flagClusters == "auto" || flagClusters == "" {
		cfg.Extractor.K = 0
	} else {
		k, err := strconv.Atoi(flagClusters)
		if err != nil {
			return cfg, fmt.Errorf("invalid cluster count %q: want a number or 'auto'", flagClusters)
		}
		cfg.Extractor.K = k
	}
	cfg.Extractor.KMin = flagKMin
	cfg.Extractor.KMax = flagKMax

	cfg.Sampler.SampleCap = flagSampleCap
	cfg.Sampler.ResizeWidth = flagResizeWidth
	cfg.Sampler.ResizeHeight = flagResizeHeight

	cfg.Harmony.NegligibleRatio = flagNegligibility

	mode, err := imageio.ParseSeedMode(flagSeedMode)
	if err != nil {
		return cfg, err
	}
	cfg.Seed = imageio.SeedConfig{Mode: mode, Value: flagSeedValue}

	cfg.Workers = flagWorkers

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
