// Package analysis is the single entry point presentation code uses: it fetches a batch
// from the record store, normalizes it and exposes the emotion and scene summaries plus
// the recommendation catalog.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"video-insights-go/internal/aggregator"
	"video-insights-go/internal/catalog"
	"video-insights-go/internal/normalizer"
	"video-insights-go/internal/store"
	"video-insights-go/internal/types"
)

// ErrSourceUnavailable is returned when the record store cannot supply a batch.
var ErrSourceUnavailable = errors.New("record source unavailable")

// Warning describes one record skipped during normalization.
type Warning struct {
	RecordID string `json:"recordId"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// Batch is one normalized fetch. Skipped records are excluded from Records.
type Batch struct {
	Records []types.VideoRecord
	Skipped []*normalizer.DecodeError
}

func (b Batch) Warnings() []Warning {
	out := make([]Warning, 0, len(b.Skipped))
	for _, de := range b.Skipped {
		out = append(out, Warning{RecordID: de.RecordID, Field: de.Field, Message: de.Err.Error()})
	}
	return out
}

type Report struct {
	aggregator.Insight
	Recommendations []types.Recommendation `json:"recommendations"`
	Warnings        []Warning              `json:"warnings"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

type Service struct {
	store   store.RecordStore
	catalog []types.Recommendation
	log     *logrus.Entry
	now     func() time.Time
}

// NewService uses the default catalog when recs is nil.
func NewService(src store.RecordStore, recs []types.Recommendation, log *logrus.Entry) *Service {
	if recs == nil {
		recs = catalog.Default()
	}
	return &Service{
		store:   src,
		catalog: catalog.Clone(recs),
		log:     log.WithField("component", "analysis"),
		now:     time.Now,
	}
}

// FetchRecords waits for the store and normalizes what it returns. Records that fail to
// decode are skipped and reported in Batch.Skipped.
func (s *Service) FetchRecords(ctx context.Context) (Batch, error) {
	start := time.Now()
	raws, err := s.store.FetchRecords(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.log.WithField("error", ctxErr.Error()).Warn("fetch abandoned")
		return Batch{}, ctxErr
	}
	if err != nil {
		s.log.WithField("error", err.Error()).Error("record store failed")
		return Batch{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	records, skipped := normalizer.NormalizeAll(raws)
	for _, de := range skipped {
		s.log.WithFields(logrus.Fields{
			"record_id": de.RecordID,
			"field":     de.Field,
			"error":     de.Err.Error(),
		}).Warn("skipping record that failed to decode")
	}
	s.log.WithFields(logrus.Fields{
		"fetched":     len(raws),
		"normalized":  len(records),
		"skipped":     len(skipped),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("batch fetched")
	return Batch{Records: records, Skipped: skipped}, nil
}

func (s *Service) EmotionAnalysis(records []types.VideoRecord) []types.EmotionDistribution {
	return aggregator.EmotionDistribution(records)
}

func (s *Service) SceneAnalysis(records []types.VideoRecord) []types.SceneEngagement {
	return aggregator.SceneEngagement(records)
}

// Recommendations returns a copy of the catalog.
func (s *Service) Recommendations() []types.Recommendation {
	return catalog.Clone(s.catalog)
}

// Analyze fetches one batch and summarizes it.
func (s *Service) Analyze(ctx context.Context) (Report, error) {
	batch, err := s.FetchRecords(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Insight:         aggregator.Summarize(batch.Records),
		Recommendations: s.Recommendations(),
		Warnings:        batch.Warnings(),
		GeneratedAt:     s.now().UTC(),
	}, nil
}
