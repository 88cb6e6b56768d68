package colour

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/hashicorp/go-hclog"
)

// ErrInsufficientSamples signals that the requested cluster count exceeds the
// number of distinct colours in the sample set. The count is clamped down and
// extraction proceeds; callers treat this as a warning.
var ErrInsufficientSamples = errors.New("fewer distinct colours than requested clusters")

// ExtractorConfig holds configuration for palette extraction.
type ExtractorConfig struct {
	// K is the fixed cluster count. Zero selects k automatically via the
	// elbow heuristic over [KMin, KMax].
	K int

	// KMin and KMax bound automatic cluster-count selection.
	KMin int
	KMax int

	// MaxIterations caps the clustering loop.
	MaxIterations int

	// Tolerance is the average centroid movement below which clustering is
	// considered converged.
	Tolerance float64
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		K:             0,
		KMin:          2,
		KMax:          10,
		MaxIterations: 50,
		Tolerance:     0.5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("cluster count cannot be negative, got %d", c.K)
	}
	if c.K > 256 {
		return fmt.Errorf("cluster count too large: %d (maximum: 256)", c.K)
	}
	if c.K == 0 {
		if c.KMin < 1 {
			return fmt.Errorf("minimum cluster count must be at least 1, got %d", c.KMin)
		}
		if c.KMax < c.KMin {
			return fmt.Errorf("maximum cluster count %d below minimum %d", c.KMax, c.KMin)
		}
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	return nil
}

// KMeansExtractor clusters HSV samples into a palette of representative
// colours using seeded k-means. The same samples, configuration and seed
// always produce the same palette.
type KMeansExtractor struct {
	cfg    ExtractorConfig
	logger hclog.Logger
}

// NewKMeansExtractor creates a KMeansExtractor with the given configuration.
func NewKMeansExtractor(cfg ExtractorConfig, logger hclog.Logger) *KMeansExtractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeansExtractor{cfg: cfg, logger: logger}
}

// hsvPoint is a sample in continuous HSV space.
type hsvPoint struct {
	H, S, V float64
}

// distance2 is the squared distance between two points. Hue distance is
// circular and doubled into full degrees so it is commensurate with the
// 0-255 saturation and value channels.
func (p hsvPoint) distance2(q hsvPoint) float64 {
	dh := HueDistance(p.H, q.H) * 2
	ds := p.S - q.S
	dv := p.V - q.V
	return dh*dh + ds*ds + dv*dv
}

func (p hsvPoint) distance(q hsvPoint) float64 {
	return math.Sqrt(p.distance2(q))
}

// clusterResult holds the outcome of one k-means run.
type clusterResult struct {
	centroids []hsvPoint
	counts    []int
	inertia   float64
}

// Extract clusters the sample set into a palette. With K == 0 it runs the
// clustering for every candidate k in [KMin, KMax] and picks the elbow of the
// inertia curve: the k with the maximum normalized second difference, ties
// broken toward the smaller k.
func (e *KMeansExtractor) Extract(samples []HSV, seed int64) (*Palette, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("sample set is empty")
	}

	points := make([]hsvPoint, len(samples))
	for i, s := range samples {
		points[i] = hsvPoint{H: float64(s.H), S: float64(s.S), V: float64(s.V)}
	}
	distinct := countDistinct(samples)

	if e.cfg.K > 0 {
		k := e.cfg.K
		if k > distinct {
			e.logger.Warn("clamping cluster count to distinct colours",
				"requested", k, "distinct", distinct, "err", ErrInsufficientSamples)
			k = distinct
		}
		result := e.run(points, k, seed)
		return toPalette(result, len(points)), nil
	}

	kMin, kMax := e.cfg.KMin, e.cfg.KMax
	if kMax > distinct {
		kMax = distinct
	}
	if kMin > kMax {
		e.logger.Warn("clamping cluster bounds to distinct colours",
			"k_min", e.cfg.KMin, "distinct", distinct, "err", ErrInsufficientSamples)
		kMin, kMax = distinct, distinct
	}

	// Cluster every candidate k up front so the elbow pick can reuse the
	// run instead of re-clustering.
	results := make([]clusterResult, 0, kMax-kMin+1)
	inertias := make([]float64, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		// Per-k seed keeps each candidate run independent of how many
		// candidates precede it.
		result := e.run(points, k, seed+int64(k))
		results = append(results, result)
		inertias = append(inertias, result.inertia)
	}

	best := elbowIndex(inertias)
	e.logger.Debug("selected cluster count", "k", kMin+best, "k_min", kMin, "k_max", kMax)
	return toPalette(results[best], len(points)), nil
}

// elbowIndex returns the index of the elbow in a decreasing inertia curve:
// the point of maximum normalized second difference. With fewer than three
// points the first (smallest k) wins.
func elbowIndex(inertias []float64) int {
	if len(inertias) < 3 {
		return 0
	}
	best := 0
	bestCurvature := math.Inf(-1)
	for i := 1; i < len(inertias)-1; i++ {
		scale := math.Max(inertias[i], 1e-9)
		curvature := (inertias[i-1] - 2*inertias[i] + inertias[i+1]) / scale
		if curvature > bestCurvature {
			bestCurvature = curvature
			best = i
		}
	}
	return best
}

// run performs one seeded k-means clustering over the points.
func (e *KMeansExtractor) run(points []hsvPoint, k int, seed int64) clusterResult {
	rng := rand.New(rand.NewSource(seed))

	centroids := initCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.cfg.MaxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && changed == 0 {
			break
		}

		next := recalculate(points, assignments, k, rng)

		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next

		if movement/float64(k) < e.cfg.Tolerance {
			break
		}
	}

	// Final assignment pass so counts and inertia match the last centroids.
	counts := make([]int, k)
	inertia := 0.0
	for i, p := range points {
		nearest := nearestCentroid(p, centroids)
		assignments[i] = nearest
		counts[nearest]++
		inertia += p.distance2(centroids[nearest])
	}

	return clusterResult{centroids: centroids, counts: counts, inertia: inertia}
}

// initCentroids seeds the clustering with k-means++: the first centroid is
// drawn uniformly, subsequent ones with probability proportional to the
// squared distance from the nearest chosen centroid.
func initCentroids(points []hsvPoint, k int, rng *rand.Rand) []hsvPoint {
	centroids := make([]hsvPoint, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := p.distance2(c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist
			total += minDist
		}

		if total == 0 {
			// Every point coincides with a centroid already; duplicate one
			// so empty clusters fall out as zero-count entries.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// nearestCentroid returns the index of the centroid closest to the point.
func nearestCentroid(p hsvPoint, centroids []hsvPoint) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distance2(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculate computes new centroid positions from the current assignments.
// Hue is averaged circularly; saturation and value arithmetically.
func recalculate(points []hsvPoint, assignments []int, k int, rng *rand.Rand) []hsvPoint {
	sin := make([]float64, k)
	cos := make([]float64, k)
	satSum := make([]float64, k)
	valSum := make([]float64, k)
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		theta := hueToRadians(p.H)
		sin[c] += math.Sin(theta)
		cos[c] += math.Cos(theta)
		satSum[c] += p.S
		valSum[c] += p.V
		counts[c]++
	}

	centroids := make([]hsvPoint, k)
	for i := 0; i < k; i++ {
		if counts[i] == 0 {
			// Empty cluster: reseed from the data.
			centroids[i] = points[rng.Intn(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = hsvPoint{
			H: radiansToHue(math.Atan2(sin[i]/n, cos[i]/n)),
			S: satSum[i] / n,
			V: valSum[i] / n,
		}
	}
	return centroids
}

// toPalette converts a clustering result into a sorted palette, dropping
// zero-count clusters.
func toPalette(result clusterResult, total int) *Palette {
	entries := make([]Entry, 0, len(result.centroids))
	for i, c := range result.centroids {
		if result.counts[i] == 0 {
			continue
		}
		entries = append(entries, Entry{
			Colour: roundHSV(c),
			Ratio:  float64(result.counts[i]) / float64(total),
		})
	}
	return NewPalette(entries)
}

// roundHSV converts a continuous centroid to the integer HSV domain.
func roundHSV(p hsvPoint) HSV {
	h := int(math.Round(p.H))
	if h >= HueMax {
		h -= HueMax
	}
	if h < 0 {
		h += HueMax
	}
	return HSV{
		H: h,
		S: clampChannel(int(math.Round(p.S))),
		V: clampChannel(int(math.Round(p.V))),
	}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > ChannelMax {
		return ChannelMax
	}
	return v
}

// countDistinct returns the number of unique HSV triples in the sample set.
func countDistinct(samples []HSV) int {
	seen := make(map[HSV]struct{}, len(samples))
	for _, s := range samples {
		seen[s] = struct{}{}
	}
	return len(seen)
}
