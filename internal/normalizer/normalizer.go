// Package normalizer turns raw store records into canonical VideoRecords.
//
// Stores deliver collection fields either as structured JSON or as a JSON string holding
// the encoded value. Every field goes through decodeField, which classifies the raw bytes
// first and then decodes exactly one way.
package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"video-insights-go/internal/types"
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("decode error")

// DecodeError names the record and field that could not be decoded.
type DecodeError struct {
	RecordID string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %q: field %s: %v", e.RecordID, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

type encoding int

const (
	encodingAbsent encoding = iota
	encodingText
	encodingStructured
)

func classify(raw json.RawMessage) encoding {
	t := bytes.TrimSpace(raw)
	switch {
	case len(t) == 0, bytes.Equal(t, []byte("null")):
		return encodingAbsent
	case t[0] == '"':
		return encodingText
	default:
		return encodingStructured
	}
}

// decodeField decodes raw into out. Absent and blank encodings leave out untouched.
func decodeField(raw json.RawMessage, out any) error {
	switch classify(raw) {
	case encodingAbsent:
		return nil
	case encodingText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		inner := bytes.TrimSpace([]byte(s))
		if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
			return nil
		}
		return json.Unmarshal(inner, out)
	default:
		return json.Unmarshal(raw, out)
	}
}

type rawEmotion struct {
	TimeOffset json.RawMessage `json:"timeOffset"`
	Label      string          `json:"label"`
	Intensity  string          `json:"intensity"`
}

type rawScene struct {
	TimeOffset  json.RawMessage `json:"timeOffset"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
}

// Normalize decodes every structured-or-encoded field of raw.
func Normalize(raw types.RawVideoRecord) (types.VideoRecord, error) {
	rec := types.VideoRecord{
		ID:        raw.ID,
		Tags:      []string{},
		SceneTags: []string{},
		Emotions:  []types.EmotionEvent{},
		Scenes:    []types.SceneSegment{},
		Classification: types.Classification{
			Secondary: []string{},
		},
	}
	fail := func(field string, err error) (types.VideoRecord, error) {
		return types.VideoRecord{}, &DecodeError{RecordID: raw.ID, Field: field, Err: err}
	}

	var tags, sceneTags []string
	if err := decodeField(raw.Tags, &tags); err != nil {
		return fail("tags", err)
	}
	if err := decodeField(raw.SceneTags, &sceneTags); err != nil {
		return fail("sceneTags", err)
	}
	rec.Tags = uniqueLabels(tags)
	rec.SceneTags = uniqueLabels(sceneTags)

	var emotions []rawEmotion
	if err := decodeField(raw.Emotions, &emotions); err != nil {
		return fail("emotions", err)
	}
	for i, e := range emotions {
		if e.Label == "" {
			return fail("emotions", fmt.Errorf("event %d: missing label", i))
		}
		lvl, err := types.ParseIntensity(e.Intensity)
		if err != nil {
			return fail("emotions", fmt.Errorf("event %d: %w", i, err))
		}
		rec.Emotions = append(rec.Emotions, types.EmotionEvent{
			TimeOffset: timeOffset(e.TimeOffset),
			Label:      e.Label,
			Intensity:  lvl,
		})
	}

	var scenes []rawScene
	if err := decodeField(raw.Scenes, &scenes); err != nil {
		return fail("scenes", err)
	}
	for _, sc := range scenes {
		rec.Scenes = append(rec.Scenes, types.SceneSegment{
			TimeOffset:  timeOffset(sc.TimeOffset),
			Description: sc.Description,
			Tags:        uniqueLabels(sc.Tags),
		})
	}

	var cls types.Classification
	if err := decodeField(raw.Classification, &cls); err != nil {
		return fail("classification", err)
	}
	rec.Classification.Primary = cls.Primary
	if cls.Secondary != nil {
		rec.Classification.Secondary = cls.Secondary
	}
	return rec, nil
}

// NormalizeAll normalizes a batch, keeping the good records in input order and
// collecting one DecodeError per skipped record.
func NormalizeAll(raws []types.RawVideoRecord) ([]types.VideoRecord, []*DecodeError) {
	records := make([]types.VideoRecord, 0, len(raws))
	var skipped []*DecodeError
	for _, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			var de *DecodeError
			if !errors.As(err, &de) {
				de = &DecodeError{RecordID: raw.ID, Field: "record", Err: err}
			}
			skipped = append(skipped, de)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

// uniqueLabels drops empty strings and repeated labels, keeping first-seen order.
func uniqueLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// timeOffset keeps the offset opaque: "01:15" stays text, 75 becomes "75".
func timeOffset(raw json.RawMessage) string {
	if classify(raw) == encodingAbsent {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
