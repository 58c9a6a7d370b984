// Package catalog holds the fixed editorial recommendations shown beside the analysis.
package catalog

import "video-insights-go/internal/types"

var defaults = []types.Recommendation{
	{
		Title:       "Lead with the strongest emotional beat",
		Description: "Open on the moment that triggers the most frequent emotion in the histogram to hook viewers in the first seconds.",
		Priority:    types.PriorityHigh,
		Category:    "Content Strategy",
	},
	{
		Title:       "Double down on high-engagement scenes",
		Description: "Scenes at the top of the engagement ranking consistently carry high-intensity moments; schedule more footage in those settings.",
		Priority:    types.PriorityHigh,
		Category:    "Production",
	},
	{
		Title:       "Add annotations to silent videos",
		Description: "Videos without an emotion timeline fall back to a neutral engagement estimate; annotate them to sharpen the ranking.",
		Priority:    types.PriorityMedium,
		Category:    "Data Quality",
	},
	{
		Title:       "Balance tone across the catalogue",
		Description: "If a single emotion dominates the distribution, mix in contrasting moments to avoid viewer fatigue.",
		Priority:    types.PriorityMedium,
		Category:    "Content Strategy",
	},
	{
		Title:       "Reuse scene tags consistently",
		Description: "Agree on a shared vocabulary for scene tags so that the same location is not split across near-duplicate labels.",
		Priority:    types.PriorityLow,
		Category:    "Data Quality",
	},
}

// Default returns a fresh copy of the built-in catalog.
func Default() []types.Recommendation {
	return Clone(defaults)
}

func Clone(in []types.Recommendation) []types.Recommendation {
	out := make([]types.Recommendation, len(in))
	copy(out, in)
	return out
}
