package store

import (
	"context"
	"encoding/json"
	"time"

	"video-insights-go/internal/types"
)

// MockStore serves a fixed batch after a simulated round trip.
type MockStore struct {
	latency time.Duration
	records []types.RawVideoRecord
}

// NewMockStore serves records, or SampleRecords when none are given.
func NewMockStore(latency time.Duration, records ...types.RawVideoRecord) *MockStore {
	if len(records) == 0 {
		records = SampleRecords()
	}
	return &MockStore{latency: latency, records: records}
}

func (m *MockStore) FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.latency > 0 {
		t := time.NewTimer(m.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	out := make([]types.RawVideoRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// SampleRecords is a small batch mixing structured and text-encoded fields, the way the
// annotation pipeline writes them.
func SampleRecords() []types.RawVideoRecord {
	return []types.RawVideoRecord{
		{
			ID:        "vid-001",
			Tags:      raw(`["travel","summer","vlog"]`),
			SceneTags: raw(`["Beach","Ocean"]`),
			Emotions: raw(`[
				{"timeOffset":"00:05","label":"Curiosity","intensity":"Medium"},
				{"timeOffset":"00:42","label":"Joy","intensity":"High"},
				{"timeOffset":"01:30","label":"Awe","intensity":"Very High"}
			]`),
			Scenes: raw(`[
				{"timeOffset":"00:00","description":"Drone shot over the bay","tags":["Ocean"]},
				{"timeOffset":"00:40","description":"Walking on the sand","tags":["Beach"]}
			]`),
			Classification: raw(`{"primary":"Travel","secondary":["Lifestyle"]}`),
		},
		{
			ID:        "vid-002",
			Tags:      text(`["cooking","family"]`),
			SceneTags: text(`["Home","Kitchen"]`),
			Emotions: text(`[
				{"timeOffset":"00:10","label":"Joy","intensity":"Low"},
				{"timeOffset":"02:15","label":"Relief","intensity":"High"}
			]`),
			Scenes:         text(`[{"timeOffset":"00:00","description":"Prep at the counter","tags":["Kitchen"]}]`),
			Classification: text(`{"primary":"Food","secondary":["Family","How-to"]}`),
		},
		{
			ID:             "vid-003",
			Tags:           raw(`["interview"]`),
			SceneTags:      raw(`["Home"]`),
			Emotions:       raw(`[]`),
			Classification: raw(`{"primary":"Talk","secondary":[]}`),
		},
		{
			ID:        "vid-004",
			Tags:      raw(`["hiking","outdoors"]`),
			SceneTags: text(`["Mountain","Forest"]`),
			Emotions: raw(`[
				{"timeOffset":"00:20","label":"Curiosity","intensity":"Medium"},
				{"timeOffset":"03:05","label":"Tension","intensity":"High"},
				{"timeOffset":"04:50","label":"Relief","intensity":"Very High"},
				{"timeOffset":"05:10","label":"Awe","intensity":"Very High"}
			]`),
			Classification: raw(`{"primary":"Outdoors","secondary":["Travel","Sport"]}`),
		},
		{
			ID:        "vid-005",
			Tags:      text(`["city","night"]`),
			SceneTags: raw(`["Street","Beach"]`),
			Emotions: text(`[
				{"timeOffset":"00:03","label":"Curiosity","intensity":"Low"},
				{"timeOffset":"01:12","label":"Joy","intensity":"Medium"}
			]`),
			Classification: text(`{"primary":"Lifestyle","secondary":["Nightlife"]}`),
		},
	}
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

// text wraps s as a JSON string, the encoded form some writers use.
func text(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
