package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"video-insights-go/internal/types"
)

type columns struct {
	id, tags, sceneTags, emotions, scenes, classification int
}

// detectColumns matches headers loosely: "Video ID", "scene_tags", "Emotion Timeline" ...
func detectColumns(header []string) columns {
	c := columns{id: -1, tags: -1, sceneTags: -1, emotions: -1, scenes: -1, classification: -1}
	set := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		l := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(h)))
		switch {
		case strings.Contains(l, "scene") && strings.Contains(l, "tag"):
			set(&c.sceneTags, i)
		case strings.Contains(l, "tag") || strings.Contains(l, "keyword"):
			set(&c.tags, i)
		case strings.Contains(l, "emotion"):
			set(&c.emotions, i)
		case strings.Contains(l, "scene") || strings.Contains(l, "segment"):
			set(&c.scenes, i)
		case strings.Contains(l, "class") || strings.Contains(l, "genre") || strings.Contains(l, "category"):
			set(&c.classification, i)
		case l == "id" || strings.HasSuffix(l, "id"):
			set(&c.id, i)
		}
	}
	// fallback: first column carries the id
	if c.id == -1 {
		c.id = 0
	}
	return c
}

// Load reads raw video records from the first sheet of an xlsx export.
// Cells are passed on in their encoded form; decoding is left to the normalizer.
func Load(path string) ([]types.RawVideoRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	c := detectColumns(rows[0])
	out := make([]types.RawVideoRecord, 0, len(rows)-1)
	for i, r := range rows {
		if i == 0 || blank(r) {
			continue
		}
		rec := types.RawVideoRecord{
			ID:             cell(r, c.id),
			Tags:           labelCell(cell(r, c.tags)),
			SceneTags:      labelCell(cell(r, c.sceneTags)),
			Emotions:       encodedCell(cell(r, c.emotions)),
			Scenes:         encodedCell(cell(r, c.scenes)),
			Classification: encodedCell(cell(r, c.classification)),
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("row-%d", i+1)
		}
		out = append(out, rec)
	}
	return out, nil
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

func blank(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// encodedCell hands the cell text on as a JSON string.
func encodedCell(v string) json.RawMessage {
	if v == "" {
		return nil
	}
	b, _ := json.Marshal(v)
	return b
}

// labelCell also accepts plain comma-separated labels, which analysts type by hand.
func labelCell(v string) json.RawMessage {
	if v == "" || strings.HasPrefix(v, "[") {
		return encodedCell(v)
	}
	labels := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	b, _ := json.Marshal(labels)
	return b
}
