// Package cli provides the command-line interface for stylelens.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stylelens/stylelens/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stylelens",
	Short: "Colour-harmony analysis for interior photographs",
	Long: `Stylelens analyzes interior-room photographs to quantify how well their
colour composition matches a target decorating style, and to explain what is
missing.

It extracts a colour palette per image, scores the palette against the five
classical harmony rules (complementary, analogous, monochromatic,
split-complementary, triadic), assembles a fixed-order feature vector for
classifier training, and compares evaluated images against a style's positive
examples to generate improvement suggestions.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(gapCmd)
	rootCmd.AddCommand(fetchCmd)
}

// newLogger builds the application logger from the global verbosity flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "stylelens",
		Level:  level,
		Output: os.Stderr,
	})
	if logger.IsDebug() {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			logger.Debug("flag set", "name", f.Name, "value", f.Value.String())
		})
	}
	return logger
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
