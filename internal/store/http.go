package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"video-insights-go/internal/types"
)

// HTTPClient allows injection for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPOption func(*HTTPStore)

func WithHTTPClient(c HTTPClient) HTTPOption {
	return func(s *HTTPStore) { s.client = c }
}

// WithMaxElapsed bounds the total time spent retrying one fetch. Zero keeps the default.
func WithMaxElapsed(d time.Duration) HTTPOption {
	return func(s *HTTPStore) {
		if d > 0 {
			s.maxElapsed = d
		}
	}
}

func WithInitialInterval(d time.Duration) HTTPOption {
	return func(s *HTTPStore) { s.initialInterval = d }
}

func WithLogger(log *logrus.Entry) HTTPOption {
	return func(s *HTTPStore) { s.log = log }
}

// HTTPStore fetches a JSON array of raw records from a REST endpoint.
type HTTPStore struct {
	url             string
	client          HTTPClient
	maxElapsed      time.Duration
	initialInterval time.Duration
	log             *logrus.Entry
}

func NewHTTPStore(url string, opts ...HTTPOption) *HTTPStore {
	s := &HTTPStore{
		url:             url,
		client:          &http.Client{Timeout: 15 * time.Second},
		maxElapsed:      20 * time.Second,
		initialInterval: 500 * time.Millisecond,
		log:             logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "store.http")
	return s
}

// FetchRecords retries transport errors and 5xx responses with exponential backoff.
// 4xx responses and undecodable bodies fail immediately.
func (s *HTTPStore) FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error) {
	var out []types.RawVideoRecord
	attempt := 0

	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			s.log.WithField("attempt", attempt).WithField("error", err.Error()).Warn("record fetch failed")
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		switch {
		case resp.StatusCode >= 500:
			s.log.WithField("attempt", attempt).WithField("http_status", resp.StatusCode).Warn("record store server error")
			return fmt.Errorf("record store server error: status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("record store rejected request: status %d", resp.StatusCode))
		}

		var records []types.RawVideoRecord
		if err := json.Unmarshal(body, &records); err != nil {
			return backoff.Permanent(fmt.Errorf("decode record batch: %w", err))
		}
		out = records
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	b.MaxElapsedTime = s.maxElapsed

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	s.log.WithField("records", len(out)).WithField("attempts", attempt).Debug("record batch fetched")
	return out, nil
}
