// Package unsplash downloads labelled training images from the Unsplash
// search API, one keyword job per style example set.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/stylelens/stylelens/internal/util/httpfetch"
)

// DefaultSearchURL is the Unsplash photo search endpoint.
const DefaultSearchURL = "https://api.unsplash.com/search/photos"

// perPage is the Unsplash maximum page size.
const perPage = 30

// Job is one keyword request: download Count images matching Keyword.
type Job struct {
	Keyword string
	Count   int
}

// Config holds configuration for the downloader.
type Config struct {
	// AccessKey is the Unsplash API access key. Empty falls back to the
	// UNSPLASH_ACCESS_KEY environment variable.
	AccessKey string

	// OutputDir receives one subdirectory per keyword.
	OutputDir string

	// LimitPerHour is the API request budget. Requests are spaced to stay
	// inside 90% of it.
	LimitPerHour int

	// Orientation, Color, OrderBy and ContentFilter are passed through as
	// Unsplash search filters when non-empty.
	Orientation   string
	Color         string
	OrderBy       string
	ContentFilter string

	// AutoRetry waits out an exhausted rate limit instead of failing.
	AutoRetry bool
}

// DefaultConfig returns the default downloader configuration.
func DefaultConfig() Config {
	return Config{
		LimitPerHour:  50,
		OrderBy:       "relevant",
		ContentFilter: "low",
		AutoRetry:     true,
	}
}

// Validate validates the downloader configuration.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.LimitPerHour < 1 {
		return fmt.Errorf("hourly request limit must be at least 1, got %d", c.LimitPerHour)
	}
	return nil
}

// Downloader fetches search results and photo files for keyword jobs.
type Downloader struct {
	cfg       Config
	searchURL string
	logger    hclog.Logger
}

// New creates a Downloader with the given configuration.
func New(cfg Config, logger hclog.Logger) *Downloader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Downloader{cfg: cfg, searchURL: DefaultSearchURL, logger: logger}
}

// SetSearchURL overrides the search endpoint (tests).
func (d *Downloader) SetSearchURL(u string) {
	d.searchURL = u
}

type searchResponse struct {
	Results []photo `json:"results"`
}

type photo struct {
	ID    string `json:"id"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
	URLs struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
	} `json:"urls"`
}

// Run processes every job in order, downloading up to Job.Count images per
// keyword into a keyword subdirectory of the output directory. It returns the
// total number of images written. The context cancels waits between requests
// as well as the requests themselves.
func (d *Downloader) Run(ctx context.Context, jobs []Job) (int, error) {
	if err := d.cfg.Validate(); err != nil {
		return 0, err
	}

	accessKey := strings.TrimSpace(d.cfg.AccessKey)
	if accessKey == "" {
		accessKey = os.Getenv("UNSPLASH_ACCESS_KEY")
	}
	if accessKey == "" {
		return 0, fmt.Errorf("no Unsplash access key: set --access-key or UNSPLASH_ACCESS_KEY")
	}

	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Stay inside 90% of the hourly budget by spacing search requests.
	safeLimit := max(1, d.cfg.LimitPerHour*9/10)
	interval := time.Duration(float64(time.Hour) / float64(safeLimit))
	d.logger.Info("starting download",
		"jobs", len(jobs), "limit_per_hour", d.cfg.LimitPerHour, "request_interval", interval)

	total := 0
	for _, job := range jobs {
		if job.Count <= 0 {
			continue
		}
		n, err := d.runJob(ctx, accessKey, job, interval)
		total += n
		if err != nil {
			return total, fmt.Errorf("keyword %q: %w", job.Keyword, err)
		}
	}
	return total, nil
}

// runJob downloads one keyword's images across however many pages it takes.
func (d *Downloader) runJob(ctx context.Context, accessKey string, job Job, interval time.Duration) (int, error) {
	dir := filepath.Join(d.cfg.OutputDir, sanitizeKeyword(job.Keyword))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create keyword directory: %w", err)
	}

	downloaded := 0
	pages := (job.Count + perPage - 1) / perPage
	for page := 1; page <= pages; page++ {
		results, err := d.search(ctx, accessKey, job.Keyword, page)
		if err != nil {
			return downloaded, err
		}
		if len(results) == 0 {
			d.logger.Info("no further results", "keyword", job.Keyword, "page", page)
			break
		}

		for _, p := range results {
			if downloaded >= job.Count {
				break
			}
			if err := ctx.Err(); err != nil {
				return downloaded, err
			}
			if err := d.download(ctx, accessKey, p, dir, job.Keyword); err != nil {
				// One bad photo never aborts the job.
				d.logger.Warn("photo download failed", "keyword", job.Keyword, "photo", p.ID, "err", err)
				continue
			}
			downloaded++
		}

		if downloaded >= job.Count {
			break
		}
		if page < pages && interval >= time.Second {
			if err := sleepCtx(ctx, interval); err != nil {
				return downloaded, err
			}
		}
	}

	d.logger.Info("keyword complete", "keyword", job.Keyword, "downloaded", downloaded, "requested", job.Count)
	return downloaded, nil
}

// search requests one result page, waiting out the rate limit when allowed.
func (d *Downloader) search(ctx context.Context, accessKey, keyword string, page int) ([]photo, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("order_by", d.cfg.OrderBy)
	params.Set("content_filter", d.cfg.ContentFilter)
	if d.cfg.Orientation != "" {
		params.Set("orientation", d.cfg.Orientation)
	}
	if d.cfg.Color != "" {
		params.Set("color", d.cfg.Color)
	}

	headers := map[string]string{
		"Accept-Version": "v1",
		"Authorization":  "Client-ID " + accessKey,
	}

	for {
		resp, err := httpfetch.Get(ctx, d.searchURL+"?"+params.Encode(), httpfetch.Options{Headers: headers})
		if err != nil {
			return nil, err
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read search response: %w", readErr)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var parsed searchResponse
			if err := json.Unmarshal(body, &parsed); err != nil {
				return nil, fmt.Errorf("failed to parse search response: %w", err)
			}
			return parsed.Results, nil

		case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
			wait, ok := rateLimitWait(resp.Header, string(body))
			if !ok || !d.cfg.AutoRetry {
				return nil, fmt.Errorf("rate limit reached (HTTP %d): %s", resp.StatusCode, truncate(string(body), 200))
			}
			d.logger.Warn("rate limit reached, waiting", "wait", wait)
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
			// Retry the same page.

		default:
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
		}
	}
}

// rateLimitWait derives how long to wait from the rate-limit headers, falling
// back to a full hour when the response only carries the exceeded message.
func rateLimitWait(header http.Header, body string) (time.Duration, bool) {
	remaining := header.Get("X-Ratelimit-Remaining")
	reset := header.Get("X-Ratelimit-Reset")
	if remaining == "0" && reset != "" {
		if resetEpoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
			wait := time.Until(time.Unix(resetEpoch, 0))
			if wait < 0 {
				wait = 0
			}
			return wait, true
		}
	}
	if strings.Contains(body, "Rate Limit Exceeded") {
		return time.Hour, true
	}
	return 0, false
}

// download resolves the photo's download URL (registering the download via
// download_location as the API requires) and writes it to disk. Existing
// files are kept.
func (d *Downloader) download(ctx context.Context, accessKey string, p photo, dir, keyword string) error {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.jpg", sanitizeKeyword(keyword), p.ID))
	if _, err := os.Stat(path); err == nil {
		d.logger.Debug("skipping existing file", "path", path)
		return nil
	}

	downloadURL := d.resolveDownloadURL(ctx, accessKey, p)
	if downloadURL == "" {
		return fmt.Errorf("no download URL for photo %s", p.ID)
	}

	data, err := httpfetch.Fetch(ctx, downloadURL, httpfetch.Options{Timeout: 30 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to fetch photo: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write photo: %w", err)
	}
	d.logger.Info("saved", "path", path)
	return nil
}

// resolveDownloadURL calls the photo's download_location to record usage and
// obtain the tracked URL, falling back to the raw full/regular URLs.
func (d *Downloader) resolveDownloadURL(ctx context.Context, accessKey string, p photo) string {
	if p.Links.DownloadLocation != "" {
		u := p.Links.DownloadLocation
		if strings.Contains(u, "?") {
			u += "&client_id=" + url.QueryEscape(accessKey)
		} else {
			u += "?client_id=" + url.QueryEscape(accessKey)
		}
		if data, err := httpfetch.Fetch(ctx, u, httpfetch.Options{Timeout: 10 * time.Second}); err == nil {
			var tracked struct {
				URL string `json:"url"`
			}
			if err := json.Unmarshal(data, &tracked); err == nil && tracked.URL != "" {
				return tracked.URL
			}
		} else {
			d.logger.Debug("download tracking failed", "photo", p.ID, "err", err)
		}
	}
	if p.URLs.Full != "" {
		return p.URLs.Full
	}
	return p.URLs.Regular
}

// sanitizeKeyword makes a keyword safe for file names.
func sanitizeKeyword(keyword string) string {
	return strings.ReplaceAll(strings.TrimSpace(keyword), " ", "_")
}

// sleepCtx sleeps for the duration unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
