package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"video-insights-go/internal/analysis"
	"video-insights-go/internal/logger"
)

type server struct {
	svc          *analysis.Service
	log          *logger.Logger
	fetchTimeout time.Duration
}

func newServer(svc *analysis.Service, log *logger.Logger, fetchTimeout time.Duration) http.Handler {
	s := &server{svc: svc, log: log, fetchTimeout: fetchTimeout}
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("GET /analysis", s.handleAnalysis)
	mux.HandleFunc("GET /analysis/emotions", s.handleEmotions)
	mux.HandleFunc("GET /analysis/scenes", s.handleScenes)
	mux.HandleFunc("GET /recommendations", s.handleRecommendations)
	return mux
}

func (s *server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "analysis")
	ctx, cancel := context.WithTimeout(r.Context(), s.fetchTimeout)
	defer cancel()

	start := time.Now()
	rep, err := s.svc.Analyze(ctx)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		s.fail(w, reqLog, err)
		return
	}
	reqLog.WithField("videos", rep.VideoCount).WithField("warnings", len(rep.Warnings)).Info("analysis served")
	writeJSON(w, reqLog, http.StatusOK, rep)
}

func (s *server) handleEmotions(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "emotions")
	batch, ok := s.fetch(w, r, reqLog)
	if !ok {
		return
	}
	writeJSON(w, reqLog, http.StatusOK, map[string]any{
		"emotions": s.svc.EmotionAnalysis(batch.Records),
		"warnings": batch.Warnings(),
	})
}

func (s *server) handleScenes(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "scenes")
	batch, ok := s.fetch(w, r, reqLog)
	if !ok {
		return
	}
	writeJSON(w, reqLog, http.StatusOK, map[string]any{
		"scenes":   s.svc.SceneAnalysis(batch.Records),
		"warnings": batch.Warnings(),
	})
}

func (s *server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "recommendations")
	writeJSON(w, reqLog, http.StatusOK, s.svc.Recommendations())
}

func (s *server) fetch(w http.ResponseWriter, r *http.Request, reqLog *logrus.Entry) (analysis.Batch, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), s.fetchTimeout)
	defer cancel()
	batch, err := s.svc.FetchRecords(ctx)
	if err != nil {
		s.fail(w, reqLog, err)
		return analysis.Batch{}, false
	}
	return batch, true
}

func (s *server) fail(w http.ResponseWriter, reqLog *logrus.Entry, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, analysis.ErrSourceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled):
		// client went away
		reqLog.Info("request canceled")
		return
	}
	reqLog.WithField("error", err.Error()).WithField("http_status", status).Warn("analysis failed")
	writeJSON(w, reqLog, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, reqLog *logrus.Entry, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithField("error", err.Error()).Error("failed to write response")
	}
}
