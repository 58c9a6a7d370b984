// Package display provides terminal output formatting for video insights.
package display

import (
	"fmt"
	"strings"

	"video-insights-go/internal/analysis"
	"video-insights-go/internal/types"
)

const (
	separator = " • "
	barWidth  = 20
)

// TerminalFormatter renders analysis results as plain text.
type TerminalFormatter struct{}

func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatEmotions renders the distribution as a bar chart, in the order given.
func (f *TerminalFormatter) FormatEmotions(dist []types.EmotionDistribution) string {
	if len(dist) == 0 {
		return "No emotion events recorded.\n"
	}
	width := 0
	for _, d := range dist {
		width = max(width, len(d.Emotion))
	}
	var b strings.Builder
	b.WriteString("Emotion distribution\n")
	for _, d := range dist {
		fmt.Fprintf(&b, "  %-*s %s %3d%%%s%d events\n", width, d.Emotion, bar(d.Percentage), d.Percentage, separator, d.Count)
	}
	return b.String()
}

// FormatScenes renders the scene ranking, in the order given.
func (f *TerminalFormatter) FormatScenes(scenes []types.SceneEngagement) string {
	if len(scenes) == 0 {
		return "No scene tags recorded.\n"
	}
	var b strings.Builder
	b.WriteString("Scene engagement\n")
	for i, s := range scenes {
		fmt.Fprintf(&b, "  %d. %s%sengagement %d%s%s\n", i+1, s.Scene, separator, s.AvgEngagement, separator, pluralize(s.Count, "video"))
	}
	return b.String()
}

func (f *TerminalFormatter) FormatRecommendations(recs []types.Recommendation) string {
	if len(recs) == 0 {
		return "No recommendations.\n"
	}
	var b strings.Builder
	b.WriteString("Recommendations\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "  [%s] %s%s%s\n", strings.ToUpper(string(r.Priority)), r.Title, separator, r.Category)
		if r.Description != "" {
			fmt.Fprintf(&b, "    %s\n", r.Description)
		}
	}
	return b.String()
}

// FormatWarnings lists skipped records; it is empty when nothing was skipped.
func (f *TerminalFormatter) FormatWarnings(warnings []analysis.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Skipped %s\n", pluralize(len(warnings), "record"))
	for _, w := range warnings {
		fmt.Fprintf(&b, "  %s (%s): %s\n", w.RecordID, w.Field, w.Message)
	}
	return b.String()
}

func (f *TerminalFormatter) FormatReport(rep analysis.Report) string {
	parts := []string{
		fmt.Sprintf("%s analyzed%s%s\n", pluralize(rep.VideoCount, "video"), separator, pluralize(rep.TotalEmotions, "emotion event")),
		f.FormatEmotions(rep.Emotions),
		f.FormatScenes(rep.Scenes),
		f.FormatRecommendations(rep.Recommendations),
	}
	if w := f.FormatWarnings(rep.Warnings); w != "" {
		parts = append(parts, w)
	}
	return strings.Join(parts, "\n")
}

func bar(pct int) string {
	n := pct * barWidth / 100
	return strings.Repeat("#", n) + strings.Repeat(".", barWidth-n)
}

// pluralize returns "1 video" or "N videos".
func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
