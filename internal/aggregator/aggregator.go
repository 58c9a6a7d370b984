package aggregator

import (
	"sort"

	"video-insights-go/internal/types"
)

const (
	highIntensityWeight = 25
	// defaultEngagement stands in for videos with no emotion timeline.
	defaultEngagement = 50
)

// Insight bundles both summaries of one batch.
type Insight struct {
	VideoCount    int                         `json:"videoCount"`
	TotalEmotions int                         `json:"totalEmotions"`
	Emotions      []types.EmotionDistribution `json:"emotions"`
	Scenes        []types.SceneEngagement     `json:"scenes"`
}

func Summarize(records []types.VideoRecord) Insight {
	total := 0
	for _, r := range records {
		total += len(r.Emotions)
	}
	return Insight{
		VideoCount:    len(records),
		TotalEmotions: total,
		Emotions:      EmotionDistribution(records),
		Scenes:        SceneEngagement(records),
	}
}

// EmotionDistribution counts emotion labels across all records. The result is sorted by
// count descending; equal counts keep the order in which labels were first seen.
func EmotionDistribution(records []types.VideoRecord) []types.EmotionDistribution {
	counts := map[string]int{}
	var order []string
	total := 0
	for _, r := range records {
		for _, e := range r.Emotions {
			if _, ok := counts[e.Label]; !ok {
				order = append(order, e.Label)
			}
			counts[e.Label]++
			total++
		}
	}
	out := make([]types.EmotionDistribution, 0, len(order))
	if total == 0 {
		return out
	}
	for _, label := range order {
		c := counts[label]
		out = append(out, types.EmotionDistribution{
			Emotion:    label,
			Count:      c,
			Percentage: roundDiv(c*100, total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// EngagementScore is the per-video engagement proxy: 25 per High or Very High event,
// or 50 when the video carries no events at all.
func EngagementScore(r types.VideoRecord) int {
	if len(r.Emotions) == 0 {
		return defaultEngagement
	}
	high := 0
	for _, e := range r.Emotions {
		if e.Intensity.IsHigh() {
			high++
		}
	}
	return high * highIntensityWeight
}

type sceneTotals struct {
	count int
	total int
}

// SceneEngagement ranks scene tags by the average engagement of the videos carrying them.
// Each video contributes its full score to every distinct tag it carries.
func SceneEngagement(records []types.VideoRecord) []types.SceneEngagement {
	acc := map[string]*sceneTotals{}
	var order []string
	for _, r := range records {
		score := EngagementScore(r)
		seen := make(map[string]struct{}, len(r.SceneTags))
		for _, tag := range r.SceneTags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			st, ok := acc[tag]
			if !ok {
				st = &sceneTotals{}
				acc[tag] = st
				order = append(order, tag)
			}
			st.count++
			st.total += score
		}
	}
	out := make([]types.SceneEngagement, 0, len(order))
	for _, tag := range order {
		st := acc[tag]
		out = append(out, types.SceneEngagement{
			Scene:         tag,
			Count:         st.count,
			AvgEngagement: roundDiv(st.total, st.count),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgEngagement > out[j].AvgEngagement })
	return out
}

// roundDiv returns a/b rounded half away from zero, for a >= 0 and b > 0.
func roundDiv(a, b int) int {
	return (2*a + b) / (2 * b)
}
