package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"video-insights-go/internal/logger"
	"video-insights-go/internal/normalizer"
	"video-insights-go/internal/types"
)

type fakeStore struct {
	records []types.RawVideoRecord
	err     error
	block   bool
	calls   int
}

func (f *fakeStore) FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.records, f.err
}

func newTestService(src *fakeStore) *Service {
	return NewService(src, nil, logger.Discard().Entry)
}

func threeRecords() []types.RawVideoRecord {
	return []types.RawVideoRecord{
		{
			ID:        "A",
			SceneTags: json.RawMessage(`["Beach","Ocean"]`),
			Emotions:  json.RawMessage(`[{"label":"Joy","intensity":"High"},{"label":"Awe","intensity":"Very High"}]`),
		},
		{
			ID:        "B",
			SceneTags: json.RawMessage(`"[\"Home\"]"`),
			Emotions:  json.RawMessage(`"[{\"label\":\"Joy\",\"intensity\":\"Medium\"},{\"label\":\"Relief\",\"intensity\":\"High\"},{\"label\":\"Awe\",\"intensity\":\"Very High\"}]"`),
		},
		{
			ID:        "C",
			SceneTags: json.RawMessage(`["Home"]`),
		},
	}
}

func TestFetchRecords_NormalizesBatch(t *testing.T) {
	svc := newTestService(&fakeStore{records: threeRecords()})

	batch, err := svc.FetchRecords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Records) != 3 || len(batch.Skipped) != 0 {
		t.Fatalf("got %d records, %d skipped", len(batch.Records), len(batch.Skipped))
	}

	scenes := svc.SceneAnalysis(batch.Records)
	for _, s := range scenes {
		if s.AvgEngagement != 50 {
			t.Errorf("%s engagement = %d, want 50", s.Scene, s.AvgEngagement)
		}
		if s.Scene == "Home" && s.Count != 2 {
			t.Errorf("Home count = %d, want 2", s.Count)
		}
	}

	total := 0
	for _, d := range svc.EmotionAnalysis(batch.Records) {
		total += d.Count
	}
	if total != 5 {
		t.Errorf("emotion counts sum to %d, want 5", total)
	}
}

func TestFetchRecords_SkipsMalformedRecordWithWarning(t *testing.T) {
	raws := threeRecords()
	raws[1].Emotions = json.RawMessage(`"[{\"label\": \"Joy\", "`)
	svc := newTestService(&fakeStore{records: raws})

	batch, err := svc.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("a bad record must not fail the batch, got %v", err)
	}
	if len(batch.Records) != 2 {
		t.Fatalf("expected the two good records, got %d", len(batch.Records))
	}
	warnings := batch.Warnings()
	if len(warnings) != 1 || warnings[0].RecordID != "B" || warnings[0].Field != "emotions" {
		t.Errorf("warnings = %+v", warnings)
	}
	if !errors.Is(batch.Skipped[0], normalizer.ErrDecode) {
		t.Errorf("skipped entry should be a decode error, got %v", batch.Skipped[0])
	}

	dist := svc.EmotionAnalysis(batch.Records)
	if len(dist) != 2 || dist[0].Count+dist[1].Count != 2 {
		t.Errorf("distribution should cover only A's events, got %+v", dist)
	}
}

func TestFetchRecords_InvalidIntensitySkipsRecord(t *testing.T) {
	raws := threeRecords()
	raws[0].Emotions = json.RawMessage(`[{"label":"Joy","intensity":"Ecstatic"}]`)
	svc := newTestService(&fakeStore{records: raws})

	batch, err := svc.FetchRecords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Skipped) != 1 || batch.Skipped[0].RecordID != "A" {
		t.Fatalf("expected A to be skipped, got %+v", batch.Skipped)
	}
	if !errors.Is(batch.Skipped[0], types.ErrInvalidIntensity) {
		t.Errorf("cause should be ErrInvalidIntensity, got %v", batch.Skipped[0])
	}
}

func TestFetchRecords_StoreFailureIsSourceUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newTestService(&fakeStore{err: cause})

	_, err := svc.FetchRecords(context.Background())

	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("the store's error should stay reachable, got %v", err)
	}
}

func TestFetchRecords_CanceledBeforeCompletion(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	svc := newTestService(&fakeStore{block: true})

	batch, err := svc.FetchRecords(ctx)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if errors.Is(err, ErrSourceUnavailable) {
		t.Error("cancellation is not a store failure")
	}
	if batch.Records != nil || batch.Skipped != nil {
		t.Error("no normalization should happen after cancellation")
	}
}

func TestFetchRecords_ContextDoneWhenStoreReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// store ignores ctx and returns data anyway
	svc := newTestService(&fakeStore{records: threeRecords()})

	batch, err := svc.FetchRecords(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(batch.Records) != 0 {
		t.Error("records must not be normalized once the caller gave up")
	}
}

func TestRecommendations_ReturnsCatalogCopy(t *testing.T) {
	recs := []types.Recommendation{{Title: "t", Description: "d", Priority: types.PriorityLow, Category: "c"}}
	svc := NewService(&fakeStore{}, recs, logger.Discard().Entry)

	got := svc.Recommendations()
	got[0].Title = "changed"
	recs[0].Title = "also changed"

	if svc.Recommendations()[0].Title != "t" {
		t.Error("catalog must be immutable through the service")
	}
}

func TestRecommendations_DefaultCatalog(t *testing.T) {
	svc := newTestService(&fakeStore{})
	if len(svc.Recommendations()) == 0 {
		t.Error("service should fall back to the built-in catalog")
	}
}

func TestAnalyze_BuildsReport(t *testing.T) {
	raws := threeRecords()
	raws = append(raws, types.RawVideoRecord{ID: "D", Tags: json.RawMessage(`"not-json"`)})
	svc := newTestService(&fakeStore{records: raws})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rep, err := svc.Analyze(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.VideoCount != 3 || rep.TotalEmotions != 5 {
		t.Errorf("report counts = %d / %d", rep.VideoCount, rep.TotalEmotions)
	}
	if len(rep.Warnings) != 1 || rep.Warnings[0].RecordID != "D" {
		t.Errorf("warnings = %+v", rep.Warnings)
	}
	if !rep.GeneratedAt.Equal(fixed) {
		t.Errorf("generatedAt = %v", rep.GeneratedAt)
	}
	if len(rep.Recommendations) == 0 {
		t.Error("report should carry recommendations")
	}

	b, err := json.Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(b, &flat); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"videoCount", "emotions", "scenes", "recommendations", "warnings"} {
		if _, ok := flat[k]; !ok {
			t.Errorf("report JSON missing %q", k)
		}
	}
}

func TestAnalyze_PropagatesStoreFailure(t *testing.T) {
	svc := newTestService(&fakeStore{err: errors.New("boom")})
	if _, err := svc.Analyze(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}
