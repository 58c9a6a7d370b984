package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"video-insights-go/internal/analysis"
	"video-insights-go/internal/logger"
	"video-insights-go/internal/store"
	"video-insights-go/internal/types"
)

type failingStore struct{ err error }

func (f failingStore) FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error) {
	return nil, f.err
}

func serve(t *testing.T, src store.RecordStore, timeout time.Duration, path string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.Discard()
	h := newServer(analysis.NewService(src, nil, log.Entry), log, timeout)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAnalysisEndpoint_ReturnsReport(t *testing.T) {
	rec := serve(t, store.NewMockStore(0), time.Second, "/analysis")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var body struct {
		VideoCount int                         `json:"videoCount"`
		Emotions   []types.EmotionDistribution `json:"emotions"`
		Scenes     []types.SceneEngagement     `json:"scenes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.VideoCount != len(store.SampleRecords()) || len(body.Emotions) == 0 || len(body.Scenes) == 0 {
		t.Errorf("body = %+v", body)
	}
}

func TestSectionEndpoints(t *testing.T) {
	for _, path := range []string{"/analysis/emotions", "/analysis/scenes", "/recommendations", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			if rec := serve(t, store.NewMockStore(0), time.Second, path); rec.Code != http.StatusOK {
				t.Errorf("status = %d", rec.Code)
			}
		})
	}
}

func TestAnalysisEndpoint_StoreDownIs503(t *testing.T) {
	rec := serve(t, failingStore{err: errors.New("connection refused")}, time.Second, "/analysis")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestAnalysisEndpoint_SlowStoreIs504(t *testing.T) {
	rec := serve(t, store.NewMockStore(5*time.Second), 20*time.Millisecond, "/analysis/scenes")
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
}

func TestUnknownMethodRejected(t *testing.T) {
	log := logger.Discard()
	h := newServer(analysis.NewService(store.NewMockStore(0), nil, log.Entry), log, time.Second)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analysis", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
