package catalog

import (
	"testing"

	"video-insights-go/internal/types"
)

func TestDefault_EntriesAreComplete(t *testing.T) {
	recs := Default()
	if len(recs) == 0 {
		t.Fatal("catalog should not be empty")
	}
	for _, r := range recs {
		if r.Title == "" || r.Description == "" || r.Category == "" {
			t.Errorf("incomplete entry: %+v", r)
		}
		switch r.Priority {
		case types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
		default:
			t.Errorf("%q has priority %q", r.Title, r.Priority)
		}
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a[0].Title = "changed"

	if b := Default(); b[0].Title == "changed" {
		t.Error("mutating one copy must not change the catalog")
	}
}
