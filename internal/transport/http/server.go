package transporthttp

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"situationmonitor/internal/config"
	"situationmonitor/internal/monitor"
)

type Server struct {
	pipeline       *monitor.Pipeline
	ingest         *monitor.IngestSource
	keywords       *monitor.KeywordStore
	snapshots      *monitor.SnapshotStore
	defaultWindow  time.Duration
	sentimentLimit int
	snapshotMaxAge time.Duration
}

func NewServer(pipeline *monitor.Pipeline, cfg config.Config, ingest *monitor.IngestSource, snapshots *monitor.SnapshotStore) *Server {
	keywords := pipeline.Keywords
	if keywords == nil {
		keywords = monitor.NewKeywordStore()
	}
	return &Server{
		pipeline:       pipeline,
		ingest:         ingest,
		keywords:       keywords,
		snapshots:      snapshots,
		defaultWindow:  cfg.DefaultWindow,
		sentimentLimit: cfg.SentimentLimit,
		snapshotMaxAge: cfg.SnapshotMaxAge,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/monitor", s.handleMonitor)
	mux.HandleFunc("/sentiment", s.handleSentiment)
	mux.HandleFunc("/correlations", s.handleCorrelations)
	mux.HandleFunc("/news", s.handleIngest)
	mux.HandleFunc("/keywords", s.handleKeywords)
	mux.HandleFunc("/swagger/openapi.yaml", serveSwaggerYAML)
	mux.HandleFunc("/swagger", serveSwaggerUI)
	mux.HandleFunc("/swagger/", serveSwaggerUI)
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleMonitor(w http.ResponseWriter, r *http.Request) {
	// Serve the background snapshot when no query parameters override the
	// window; otherwise recompute on demand.
	if s.snapshots != nil && len(r.URL.Query()) == 0 && s.snapshots.FreshWithin(s.snapshotMaxAge) {
		s.writeJSON(w, http.StatusOK, s.snapshots.Latest())
		return
	}

	snapshot, ok := s.runPipeline(w, r)
	if !ok {
		return
	}
	if s.snapshots != nil && len(r.URL.Query()) == 0 {
		s.snapshots.Set(snapshot)
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.runPipeline(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"as_of":     snapshot.AsOf,
		"sentiment": snapshot.Sentiment,
	})
}

func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.runPipeline(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"as_of":        snapshot.AsOf,
		"correlations": snapshot.Correlations,
		"summary":      snapshot.Summary,
	})
}

func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request) (*monitor.Snapshot, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	params := s.parseParams(r)
	snapshot, err := s.pipeline.Run(ctx, params.from, params.to, params.limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return snapshot, true
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.ingest == nil {
		s.writeError(w, http.StatusServiceUnavailable, "ingest disabled")
		return
	}

	var payload struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		Source      string `json:"source"`
		Category    string `json:"category"`
		Timestamp   int64  `json:"timestamp"`
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Link) == "" {
		s.writeError(w, http.StatusBadRequest, "title and link are required")
		return
	}

	item := monitor.NewsItem{
		ID:          payload.ID,
		Title:       payload.Title,
		Description: payload.Description,
		Link:        payload.Link,
		Source:      payload.Source,
		Category:    payload.Category,
		Timestamp:   payload.Timestamp,
	}
	item = monitor.EnrichWithKeywords(item, s.keywords.Active())
	stored := s.ingest.Add(item)

	response := map[string]any{
		"status":    "accepted",
		"id":        stored.ID,
		"timestamp": stored.Timestamp,
		"isAlert":   stored.IsAlert,
	}
	s.writeJSON(w, http.StatusAccepted, response)
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		custom, enabled := s.keywords.State()
		s.writeJSON(w, http.StatusOK, map[string]any{
			"custom":  custom,
			"enabled": enabled,
		})

	case http.MethodPut:
		var payload struct {
			Custom  []string `json:"custom"`
			Enabled bool     `json:"enabled"`
		}
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}

		s.keywords.Set(payload.Custom, payload.Enabled)
		custom, enabled := s.keywords.State()
		s.writeJSON(w, http.StatusOK, map[string]any{
			"custom":  custom,
			"enabled": enabled,
		})

	default:
		w.Header().Set("Allow", "GET, PUT")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing we can do; connection likely closed
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type timeframe struct {
	from  time.Time
	to    time.Time
	limit int
}

func (s *Server) parseParams(r *http.Request) timeframe {
	values := r.URL.Query()

	limit := s.sentimentLimit
	if v := values.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	now := time.Now().UTC()
	to := now
	if v := values.Get("to"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			to = parsed
		}
	}

	from := to.Add(-s.defaultWindow)

	if v := values.Get("window_hours"); v != "" {
		if hrs, err := strconv.Atoi(v); err == nil && hrs > 0 {
			from = to.Add(-time.Duration(hrs) * time.Hour)
		}
	}

	if v := values.Get("from"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			from = parsed
		}
	}

	if from.After(to) {
		from = to.Add(-s.defaultWindow)
	}

	return timeframe{from: from, to: to, limit: limit}
}
