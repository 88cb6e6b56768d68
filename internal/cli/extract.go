package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stylelens/stylelens/internal/colour"
	"github.com/stylelens/stylelens/internal/harmony"
	"github.com/stylelens/stylelens/internal/style"
)

var (
	extractFormat  string
	extractPreview bool
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract the colour palette from an image",
	Long: `Extract a colour palette from an interior photograph.

The image is resized to the working resolution, its pixels sampled in HSV
space, and clustered into representative colours with their area ratios.
Palette size is chosen automatically unless --clusters is a number.

Supported image formats: JPEG, PNG, BMP, WebP

Examples:
  # Extract a palette with automatic size selection
  stylelens extract livingroom.jpg

  # Extract exactly 5 colours with terminal previews
  stylelens extract --clusters 5 --preview livingroom.jpg

  # Extract a palette as JSON
  stylelens extract --format json livingroom.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	registerEngineFlags(extractCmd)
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "table", "output format (table, hex, json)")
	extractCmd.Flags().BoolVar(&extractPreview, "preview", false, "show colour previews in terminal")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfigFromFlags()
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	engine := style.NewEngine(cfg, logger)

	analysis, err := engine.AnalyzePath(args[0], harmony.UniformWeights())
	if err != nil {
		return err
	}

	output, err := formatPalette(analysis.Palette, extractFormat, extractPreview)
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, preview bool) (string, error) {
	switch format {
	case "table":
		return paletteTable(palette, preview), nil
	case "hex":
		out := ""
		for _, e := range palette.Entries {
			out += e.Colour.Hex() + "\n"
		}
		return out, nil
	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: table, hex, json)", format)
	}
}

// paletteTable renders the palette entries as a table, with ANSI colour chips
// when requested and stdout is a terminal.
func paletteTable(palette *colour.Palette, preview bool) string {
	chips := preview && term.IsTerminal(int(os.Stdout.Fd()))

	headers := []string{"HEX", "HSV", "RATIO"}
	if chips {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)
	for _, e := range palette.Entries {
		row := []string{e.Colour.Hex(), e.Colour.String(), fmt.Sprintf("%.1f%%", e.Ratio*100)}
		if chips {
			row = append([]string{e.Colour.Preview(6)}, row...)
		}
		table.AddRow(row)
	}
	return table.Render()
}
