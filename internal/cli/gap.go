package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylelens/stylelens/internal/feature"
	"github.com/stylelens/stylelens/internal/style"
)

var (
	gapProfile string
	gapFormat  string
	gapTopN    int
)

// gapCmd represents the gap command.
var gapCmd = &cobra.Command{
	Use:   "gap <image>",
	Short: "Explain how an image differs from a style",
	Long: `Compare an image's feature vector against a style's positive-example
average and rank the differences.

Positive deltas mean the image exceeds the style's typical value for a
metric, negative deltas mean it falls short. Improvement suggestions are
generated for the largest harmony-metric gaps.

Examples:
  # Rank the gaps against a trained style
  stylelens gap livingroom.jpg --profile scandinavian.json

  # Structured output for the presentation layer
  stylelens gap livingroom.jpg --profile scandinavian.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runGap,
}

func init() {
	registerEngineFlags(gapCmd)
	gapCmd.Flags().StringVarP(&gapProfile, "profile", "p", "", "style profile to compare against (required)")
	gapCmd.Flags().StringVarP(&gapFormat, "format", "f", "table", "output format (table, json)")
	gapCmd.Flags().IntVar(&gapTopN, "top", feature.DefaultSuggestionCount, "number of top deltas considered for suggestions")
	_ = gapCmd.MarkFlagRequired("profile")
}

// runGap executes the gap command.
func runGap(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfigFromFlags()
	if err != nil {
		return err
	}

	profile, err := style.LoadProfile(gapProfile)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	engine := style.NewEngine(cfg, logger)

	analysis, err := engine.AnalyzePath(args[0], profile.Weights)
	if err != nil {
		return err
	}

	report, err := feature.Analyze(analysis.Features, profile.Name, profile.Positive, gapTopN)
	if err != nil {
		return err
	}

	switch gapFormat {
	case "table":
		fmt.Print(reportTable(report))
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", gapFormat)
	}
	return nil
}

// reportTable renders a gap report for the terminal. Excess values carry a
// "+" cue to distinguish them from deficits.
func reportTable(report feature.Report) string {
	table := NewTable([]string{"METRIC", "IMAGE", "STYLE", "DELTA"})
	for _, e := range report.Entries {
		table.AddRow([]string{
			e.Metric,
			fmt.Sprintf("%.3f", e.Evaluated),
			fmt.Sprintf("%.3f", e.Reference),
			fmt.Sprintf("%+.3f", e.Delta),
		})
	}

	out := fmt.Sprintf("Gap report for style %q\n\n%s", report.Style, table.Render())
	if len(report.Suggestions) > 0 {
		out += "\nSuggestions:\n"
		for _, s := range report.Suggestions {
			out += "  - " + s + "\n"
		}
	}
	return out
}
