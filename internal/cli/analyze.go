package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylelens/stylelens/internal/feature"
	"github.com/stylelens/stylelens/internal/harmony"
	"github.com/stylelens/stylelens/internal/style"
)

var analyzeProfile string

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>...",
	Short: "Compute feature vectors for one or more images",
	Long: `Analyze images and print their feature vectors as JSON.

Each vector carries the five harmony scores, the weighted overall score, the
dominant and mean HSV colours, and the dominant-area ratio, in the fixed
field order the classifier expects. With --profile the style's learned
weights are applied to the overall score; otherwise weighting is uniform.

Images are processed concurrently; a failing image is reported in its result
entry and does not abort the rest.

Examples:
  # Analyze a single image
  stylelens analyze livingroom.jpg

  # Analyze a batch against a trained style profile
  stylelens analyze --profile scandinavian.json photos/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	registerEngineFlags(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "style profile whose weights apply to the overall score")
}

// analyzeResult is the per-image JSON output of the analyze command.
type analyzeResult struct {
	Path     string             `json:"path"`
	Error    string             `json:"error,omitempty"`
	Fields   map[string]float64 `json:"fields,omitempty"`
	Features []float64          `json:"features,omitempty"`
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfigFromFlags()
	if err != nil {
		return err
	}

	weights := harmony.UniformWeights()
	if analyzeProfile != "" {
		profile, err := style.LoadProfile(analyzeProfile)
		if err != nil {
			return err
		}
		weights = profile.Weights
	}

	logger := newLogger(cmd)
	engine := style.NewEngine(cfg, logger)

	results := engine.AnalyzeBatch(args, weights)
	out := make([]analyzeResult, len(results))
	failed := 0
	for i, r := range results {
		out[i] = analyzeResult{Path: r.Path}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
			failed++
			continue
		}
		out[i].Features = r.Analysis.Features.Slice()
		out[i].Fields = namedFields(r.Analysis.Features)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Println(string(data))

	if failed > 0 {
		logger.Warn("some images could not be analyzed", "failed", failed, "total", len(results))
	}
	return nil
}

// namedFields maps the vector onto its field names.
func namedFields(v feature.Vector) map[string]float64 {
	fields := make(map[string]float64, feature.Size)
	for i, name := range feature.FieldNames {
		fields[name] = v[i]
	}
	return fields
}
