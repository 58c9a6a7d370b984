package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"video-insights-go/internal/types"
)

const (
	maxConnectAttempts = 5
	connectRetryDelay  = 2 * time.Second
)

// Columns may be jsonb or text; both scan into []byte unchanged.
const selectRecordsSQL = `
	SELECT id, tags, scene_tags, emotions, scenes, classification
	FROM video_analyses
	ORDER BY created_at, id`

// NewPool connects to Postgres, retrying while the database comes up.
func NewPool(ctx context.Context, databaseURL string, log *logrus.Entry) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 15 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Info("database connected")
				return pool, nil
			}
			pool.Close()
		}
		log.WithField("attempt", attempt).WithField("error", err.Error()).Warn("database connection failed")
		if attempt < maxConnectAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(connectRetryDelay):
			}
		}
	}
	return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxConnectAttempts, err)
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FetchRecords(ctx context.Context) ([]types.RawVideoRecord, error) {
	rows, err := s.pool.Query(ctx, selectRecordsSQL)
	if err != nil {
		return nil, fmt.Errorf("query video_analyses: %w", err)
	}
	defer rows.Close()

	var out []types.RawVideoRecord
	for rows.Next() {
		var id string
		var tags, sceneTags, emotions, scenes, cls []byte
		if err := rows.Scan(&id, &tags, &sceneTags, &emotions, &scenes, &cls); err != nil {
			return nil, fmt.Errorf("scan video_analyses: %w", err)
		}
		out = append(out, rowToRecord(id, tags, sceneTags, emotions, scenes, cls))
	}
	return out, rows.Err()
}

func rowToRecord(id string, tags, sceneTags, emotions, scenes, cls []byte) types.RawVideoRecord {
	return types.RawVideoRecord{
		ID:             id,
		Tags:           column(tags),
		SceneTags:      column(sceneTags),
		Emotions:       column(emotions),
		Scenes:         column(scenes),
		Classification: column(cls),
	}
}

func column(b []byte) json.RawMessage {
	if b == nil {
		return nil
	}
	return append(json.RawMessage(nil), b...)
}
