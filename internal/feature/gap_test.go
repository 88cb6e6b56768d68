package feature

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeIdenticalVectors(t *testing.T) {
	v := Vector{0.5, 0.4, 0.3, 0.2, 0.1, 0.3, 20, 100, 200, 25, 125, 175, 0.6}

	report, err := Analyze(v, "pastel", []Vector{v, v}, 0)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if report.Style != "pastel" {
		t.Errorf("Style = %q", report.Style)
	}
	for _, e := range report.Entries {
		if e.Delta != 0 {
			t.Errorf("field %s has delta %g, want 0", e.Metric, e.Delta)
		}
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("identical vectors produced suggestions: %v", report.Suggestions)
	}
}

func TestAnalyzeReferenceIsMean(t *testing.T) {
	var a, b Vector
	a[FieldComplementary] = 0.2
	b[FieldComplementary] = 0.8

	var evaluated Vector
	evaluated[FieldComplementary] = 0.9

	report, err := Analyze(evaluated, "vivid", []Vector{a, b}, 0)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	found := false
	for _, e := range report.Entries {
		if e.Metric == "complementary" {
			found = true
			if math.Abs(e.Reference-0.5) > 1e-12 {
				t.Errorf("reference = %g, want 0.5", e.Reference)
			}
			if math.Abs(e.Delta-0.4) > 1e-12 {
				t.Errorf("delta = %g, want 0.4", e.Delta)
			}
		}
	}
	if !found {
		t.Fatal("complementary entry missing from report")
	}
}

func TestAnalyzeSortsByAbsoluteDelta(t *testing.T) {
	var reference Vector
	var evaluated Vector
	evaluated[FieldComplementary] = 0.1
	evaluated[FieldAnalogous] = -0.5
	evaluated[FieldTriadic] = 0.3

	report, err := Analyze(evaluated, "s", []Vector{reference}, 0)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for i := 1; i < len(report.Entries); i++ {
		if math.Abs(report.Entries[i].Delta) > math.Abs(report.Entries[i-1].Delta) {
			t.Errorf("entries not sorted by |delta|: %g after %g",
				report.Entries[i].Delta, report.Entries[i-1].Delta)
		}
	}
	if report.Entries[0].Metric != "analogous" {
		t.Errorf("largest gap is %q, want analogous", report.Entries[0].Metric)
	}
}

func TestAnalyzeSuggestionDirection(t *testing.T) {
	var reference Vector
	reference[FieldComplementary] = 0.9

	var evaluated Vector
	evaluated[FieldComplementary] = 0.2

	report, err := Analyze(evaluated, "bold", []Vector{reference}, 0)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(report.Suggestions) == 0 {
		t.Fatal("expected a suggestion for a 0.7 deficit")
	}
	s := report.Suggestions[0]
	if !strings.Contains(s, "complementary") || !strings.Contains(s, "below") {
		t.Errorf("suggestion %q should name the metric and the deficit direction", s)
	}
	if !strings.Contains(s, "strongly") {
		t.Errorf("suggestion %q should carry the strong-magnitude qualifier", s)
	}
}

func TestAnalyzeTopN(t *testing.T) {
	var reference Vector
	var evaluated Vector
	evaluated[FieldComplementary] = 0.9
	evaluated[FieldAnalogous] = 0.8
	evaluated[FieldMonochromatic] = 0.7
	evaluated[FieldTriadic] = 0.6

	report, err := Analyze(evaluated, "s", []Vector{reference}, 2)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(report.Suggestions) != 2 {
		t.Errorf("got %d suggestions, want 2", len(report.Suggestions))
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	var reference Vector
	var evaluated Vector
	evaluated[FieldComplementary] = 0.4
	evaluated[FieldTriadic] = 0.2

	first, err := Analyze(evaluated, "s", []Vector{reference}, 0)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	second, _ := Analyze(evaluated, "s", []Vector{reference}, 0)
	if len(first.Suggestions) != len(second.Suggestions) {
		t.Fatal("suggestion counts differ between identical runs")
	}
	for i := range first.Suggestions {
		if first.Suggestions[i] != second.Suggestions[i] {
			t.Errorf("suggestion %d differs: %q vs %q", i, first.Suggestions[i], second.Suggestions[i])
		}
	}
}

func TestAnalyzeNoPositives(t *testing.T) {
	if _, err := Analyze(Vector{}, "empty", nil, 0); err == nil {
		t.Error("expected error for a style with no positive vectors")
	}
}

func TestMagnitudeBuckets(t *testing.T) {
	tests := []struct {
		delta       float64
		want        string
		significant bool
	}{
		{0.01, "", false},
		{0.05, "slightly", true},
		{0.15, "clearly", true},
		{0.30, "strongly", true},
		{0.90, "strongly", true},
	}

	for _, tt := range tests {
		got, significant := magnitude(tt.delta)
		if got != tt.want || significant != tt.significant {
			t.Errorf("magnitude(%g) = (%q, %v), want (%q, %v)",
				tt.delta, got, significant, tt.want, tt.significant)
		}
	}
}
