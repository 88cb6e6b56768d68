package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stylelens/stylelens/internal/harmony"
	"github.com/stylelens/stylelens/internal/style"
)

var (
	trainPositiveDir string
	trainNegativeDir string
	trainOutput      string
	trainExamples    string
	trainAutoWeights bool
)

// trainCmd represents the train command.
var trainCmd = &cobra.Command{
	Use:   "train <style-name>",
	Short: "Build a style profile from labelled image directories",
	Long: `Build a style profile from directories of positive and negative example
images.

Every image is analyzed into a feature vector; failures are logged and
skipped without aborting the batch. With --auto-weights the per-style metric
weights are learned from the raw harmony scores of the labelled examples
(falling back to uniform weights when the styles are not separable).

The profile JSON feeds 'stylelens gap' and 'stylelens analyze --profile'.
With --examples the labelled (vector, label) pairs are also written for the
external classifier's training step.

Examples:
  # Train a profile with uniform weights
  stylelens train scandinavian --positive styles/scandinavian/pos --negative styles/scandinavian/neg -o scandinavian.json

  # Learn metric weights and emit classifier training pairs
  stylelens train boho --positive pos/ --negative neg/ -o boho.json --auto-weights --examples boho-examples.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	registerEngineFlags(trainCmd)
	trainCmd.Flags().StringVar(&trainPositiveDir, "positive", "", "directory of positive example images (required)")
	trainCmd.Flags().StringVar(&trainNegativeDir, "negative", "", "directory of negative example images (required)")
	trainCmd.Flags().StringVarP(&trainOutput, "output", "o", "", "output profile path (required)")
	trainCmd.Flags().StringVar(&trainExamples, "examples", "", "also write classifier training examples to this path")
	trainCmd.Flags().BoolVar(&trainAutoWeights, "auto-weights", false, "learn per-style metric weights from the examples")
	_ = trainCmd.MarkFlagRequired("positive")
	_ = trainCmd.MarkFlagRequired("negative")
	_ = trainCmd.MarkFlagRequired("output")
}

// runTrain executes the train command.
func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfigFromFlags()
	if err != nil {
		return err
	}
	cfg.AutoWeightLearning = trainAutoWeights

	logger := newLogger(cmd)
	engine := style.NewEngine(cfg, logger)

	profile, err := engine.BuildProfile(args[0], trainPositiveDir, trainNegativeDir)
	if err != nil {
		return err
	}

	if err := profile.Save(trainOutput); err != nil {
		return err
	}
	logger.Info("profile saved", "style", profile.Name, "path", trainOutput,
		"positive", len(profile.Positive), "negative", len(profile.Negative))

	if trainExamples != "" {
		data, err := json.MarshalIndent(profile.Examples(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal examples: %w", err)
		}
		if err := os.WriteFile(trainExamples, data, 0o644); err != nil {
			return fmt.Errorf("failed to write examples: %w", err)
		}
		logger.Info("classifier examples saved", "path", trainExamples)
	}

	fmt.Print(weightsTable(profile.Weights))
	return nil
}

// weightsTable renders the profile's metric weights.
func weightsTable(w harmony.Weights) string {
	table := NewTable([]string{"METRIC", "WEIGHT"})
	for i, name := range harmony.MetricNames() {
		table.AddRow([]string{name, fmt.Sprintf("%.4f", w[i])})
	}
	return table.Render()
}
