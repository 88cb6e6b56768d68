package cli

import (
	"testing"
)

func TestParseJobs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "single job", args: []string{"coastal:10"}},
		{name: "multi-word keyword", args: []string{"mid century modern:5"}},
		{name: "several jobs", args: []string{"loft:3", "attic:2"}},
		{name: "missing count", args: []string{"loft"}, wantErr: true},
		{name: "empty keyword", args: []string{":5"}, wantErr: true},
		{name: "trailing colon", args: []string{"loft:"}, wantErr: true},
		{name: "non-numeric count", args: []string{"loft:many"}, wantErr: true},
		{name: "zero count", args: []string{"loft:0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := parseJobs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseJobs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err == nil && len(jobs) != len(tt.args) {
				t.Errorf("got %d jobs, want %d", len(jobs), len(tt.args))
			}
		})
	}
}

func TestParseJobsKeywordAndCount(t *testing.T) {
	jobs, err := parseJobs([]string{"coastal kitchen:12"})
	if err != nil {
		t.Fatalf("parseJobs() error: %v", err)
	}
	if jobs[0].Keyword != "coastal kitchen" || jobs[0].Count != 12 {
		t.Errorf("job = %+v", jobs[0])
	}
}
