// Package store supplies raw video-annotation batches from the configured backend.
//
// Stores return records exactly as held by the backend; collection fields may still be
// text-encoded. Retrying transient failures is the store's job, never the caller's.
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"video-insights-go/internal/config"
	"video-insights-go/internal/types"
)

type RecordStore interface {
	FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error)
}

// Open returns the store selected by cfg.RecordStore and a func releasing its resources.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Entry) (RecordStore, func(), error) {
	log = log.WithField("record_store", cfg.RecordStore)
	noop := func() {}
	switch cfg.RecordStore {
	case config.StoreMock:
		log.WithField("latency_ms", cfg.MockLatency.Milliseconds()).Info("using in-memory sample records")
		return NewMockStore(cfg.MockLatency), noop, nil
	case config.StoreExcel:
		log.WithField("dataset_path", cfg.DatasetPath).Info("using spreadsheet records")
		return NewExcelStore(cfg.DatasetPath), noop, nil
	case config.StoreHTTP:
		log.WithField("url", cfg.StoreURL).Info("using remote record API")
		return NewHTTPStore(cfg.StoreURL, WithMaxElapsed(cfg.StoreMaxWait), WithLogger(log)), noop, nil
	case config.StorePostgres:
		pool, err := NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresStore(pool), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown record store %q", cfg.RecordStore)
	}
}
