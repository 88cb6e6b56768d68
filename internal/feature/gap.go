package feature

import (
	"fmt"
	"math"
	"sort"
)

// GapEntry is one field's difference between an evaluated image and a style's
// positive-example average. A positive delta means the image exceeds the
// style's typical value.
type GapEntry struct {
	Metric    string  `json:"metric"`
	Evaluated float64 `json:"evaluated"`
	Reference float64 `json:"reference"`
	Delta     float64 `json:"delta"`
}

// Report ranks the per-field gaps between an evaluated image and a target
// style, largest absolute delta first, with generated improvement hints.
// Read-only once produced.
type Report struct {
	Style       string     `json:"style"`
	Entries     []GapEntry `json:"entries"`
	Suggestions []string   `json:"suggestions"`
}

// DefaultSuggestionCount is the number of top deltas considered for hints.
const DefaultSuggestionCount = 3

// Analyze compares an evaluated feature vector against a style's
// positive-example vectors. The per-field reference is the mean of the
// positives; entries are sorted by descending absolute delta. Suggestions are
// generated deterministically for the top-N harmony-metric deltas.
func Analyze(evaluated Vector, style string, positives []Vector, topN int) (Report, error) {
	if len(positives) == 0 {
		return Report{}, fmt.Errorf("style %q has no positive example vectors", style)
	}
	if topN <= 0 {
		topN = DefaultSuggestionCount
	}

	var reference Vector
	for _, p := range positives {
		for i := range reference {
			reference[i] += p[i]
		}
	}
	for i := range reference {
		reference[i] /= float64(len(positives))
	}

	entries := make([]GapEntry, Size)
	for i := range entries {
		entries[i] = GapEntry{
			Metric:    FieldNames[i],
			Evaluated: evaluated[i],
			Reference: reference[i],
			Delta:     evaluated[i] - reference[i],
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return math.Abs(entries[i].Delta) > math.Abs(entries[j].Delta)
	})

	return Report{
		Style:       style,
		Entries:     entries,
		Suggestions: suggest(entries, topN),
	}, nil
}

// hint holds the per-metric advice templates for deficits and excesses.
type hint struct {
	deficit string
	excess  string
}

var hints = map[string]hint{
	"complementary": {
		deficit: "increase hue contrast toward complementary pairing, e.g. add an accent colour opposite the dominant hue",
		excess:  "soften the complementary contrast by pulling accent hues closer to the dominant colour",
	},
	"analogous": {
		deficit: "bring more neighbouring hues into the palette for an analogous flow",
		excess:  "reduce the run of neighbouring hues; introduce a contrasting accent",
	},
	"monochromatic": {
		deficit: "tighten the palette around a single hue with consistent saturation and brightness",
		excess:  "loosen the single-hue palette with a secondary hue or varied tones",
	},
	"split_complementary": {
		deficit: "pair the dominant hue with two accents flanking its complement",
		excess:  "simplify the accent hues around the complement to a single one",
	},
	"triadic": {
		deficit: "spread three principal hues evenly around the colour wheel",
		excess:  "reduce the evenly spread hues toward a simpler two-hue scheme",
	},
}

// magnitude buckets the absolute delta into a qualifier, or reports the gap
// as negligible.
func magnitude(absDelta float64) (string, bool) {
	switch {
	case absDelta < 0.05:
		return "", false
	case absDelta < 0.15:
		return "slightly", true
	case absDelta < 0.30:
		return "clearly", true
	default:
		return "strongly", true
	}
}

// suggest maps the top-N harmony-metric deltas onto template hints. The
// mapping from (metric, sign, magnitude bucket) to text is fixed; identical
// reports always carry identical suggestions.
func suggest(entries []GapEntry, topN int) []string {
	var out []string
	for _, e := range entries {
		if len(out) >= topN {
			break
		}
		h, ok := hints[e.Metric]
		if !ok {
			continue
		}
		level, significant := magnitude(math.Abs(e.Delta))
		if !significant {
			continue
		}
		if e.Delta < 0 {
			out = append(out, fmt.Sprintf("%s is %s below the style's typical value: %s", e.Metric, level, h.deficit))
		} else {
			out = append(out, fmt.Sprintf("%s is %s above the style's typical value: %s", e.Metric, level, h.excess))
		}
	}
	return out
}
