package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stylelens/stylelens/internal/unsplash"
)

var fetchConfig = unsplash.DefaultConfig()

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch <keyword:count>...",
	Short: "Download training images from Unsplash",
	Long: `Download style example images from the Unsplash search API.

Each argument is a keyword job of the form "keyword:count". Images land in a
per-keyword subdirectory of the output directory, ready to be used as a
style's positive or negative example set. Requests are spaced to stay inside
the hourly API budget, and an exhausted rate limit is waited out when
--retry is enabled.

The access key is read from --access-key or the UNSPLASH_ACCESS_KEY
environment variable.

Examples:
  # 60 scandinavian living rooms and 30 counter-examples
  stylelens fetch -o styles/scandinavian "scandinavian living room:60" "cluttered room:30"

  # Landscape photos only, with a higher API plan
  stylelens fetch -o images --orientation landscape --limit-per-hour 5000 "japandi bedroom:100"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchConfig.AccessKey, "access-key", "", "Unsplash API access key")
	fetchCmd.Flags().StringVarP(&fetchConfig.OutputDir, "output", "o", "", "output directory (required)")
	fetchCmd.Flags().IntVar(&fetchConfig.LimitPerHour, "limit-per-hour", fetchConfig.LimitPerHour, "hourly API request budget")
	fetchCmd.Flags().StringVar(&fetchConfig.Orientation, "orientation", "", "filter by orientation (landscape, portrait, squarish)")
	fetchCmd.Flags().StringVar(&fetchConfig.Color, "color", "", "filter by dominant colour")
	fetchCmd.Flags().StringVar(&fetchConfig.OrderBy, "order-by", fetchConfig.OrderBy, "result ordering (relevant, latest)")
	fetchCmd.Flags().StringVar(&fetchConfig.ContentFilter, "content-filter", fetchConfig.ContentFilter, "content safety filter (low, high)")
	fetchCmd.Flags().BoolVar(&fetchConfig.AutoRetry, "retry", fetchConfig.AutoRetry, "wait out an exhausted rate limit and retry")
	_ = fetchCmd.MarkFlagRequired("output")
}

// runFetch executes the fetch command.
func runFetch(cmd *cobra.Command, args []string) error {
	jobs, err := parseJobs(args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	downloader := unsplash.New(fetchConfig, logger)

	total, err := downloader.Run(cmd.Context(), jobs)
	if err != nil {
		return fmt.Errorf("downloaded %d images before failing: %w", total, err)
	}
	fmt.Printf("Downloaded %d images to %s\n", total, fetchConfig.OutputDir)
	return nil
}

// parseJobs parses "keyword:count" arguments.
func parseJobs(args []string) ([]unsplash.Job, error) {
	jobs := make([]unsplash.Job, 0, len(args))
	for _, arg := range args {
		idx := strings.LastIndex(arg, ":")
		if idx <= 0 || idx == len(arg)-1 {
			return nil, fmt.Errorf("invalid job %q: want \"keyword:count\"", arg)
		}
		count, err := strconv.Atoi(arg[idx+1:])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("invalid count in job %q: want a positive number", arg)
		}
		jobs = append(jobs, unsplash.Job{Keyword: strings.TrimSpace(arg[:idx]), Count: count})
	}
	return jobs, nil
}
