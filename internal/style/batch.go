package style

import (
	"runtime"
	"sync"

	"github.com/stylelens/stylelens/internal/harmony"
)

// BatchResult is one image's outcome within a batch. A failed image carries
// its error and a nil Analysis; it never aborts the rest of the batch.
type BatchResult struct {
	Path     string
	Analysis *Analysis
	Err      error
}

// AnalyzeBatch analyzes many images concurrently with per-image error
// isolation. Results are returned in input order.
func (e *Engine) AnalyzeBatch(paths []string, weights harmony.Weights) []BatchResult {
	results := make([]BatchResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int, len(paths))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analysis, err := e.AnalyzePath(paths[i], weights)
				results[i] = BatchResult{Path: paths[i], Analysis: analysis, Err: err}
				if err != nil {
					e.logger.Warn("image analysis failed", "path", paths[i], "err", err)
				}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// successful filters a batch down to the completed analyses.
func successful(results []BatchResult) []*Analysis {
	out := make([]*Analysis, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Analysis)
		}
	}
	return out
}
