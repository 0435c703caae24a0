package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"insights_api/internal/insights"
	"insights_api/internal/logger"
	"insights_api/internal/metrics"
	"insights_api/internal/middleware"
)

// Pinger сообщает, доступен ли источник данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server хранит зависимости HTTP-обработчиков.
type Server struct {
	svc     *insights.Service
	source  Pinger
	metrics *metrics.Metrics
}

// NewServer создаёт новый экземпляр Server.
func NewServer(svc *insights.Service, source Pinger, m *metrics.Metrics) *Server {
	return &Server{svc: svc, source: source, metrics: m}
}

// errorResponse — тело ответа об ошибке.
type errorResponse struct {
	Detail string        `json:"detail"`
	Kind   insights.Kind `json:"kind"`
}

// Handler собирает маршруты и middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data", s.GetData)
	mux.HandleFunc("GET /data/{id}", s.GetInsight)
	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.Handle("GET /metrics", s.metrics.Handler())

	handler := middleware.MetricsMiddleware(s.metrics, routeLabel)(mux)
	handler = middleware.LoggingMiddleware(handler)
	return middleware.RequestIDMiddleware(handler)
}

// HealthCheck отвечает 200 OK, если источник данных доступен, иначе 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.source.Ping(r.Context()); err != nil {
		http.Error(w, "data source unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("OK"))
}

// GetData возвращает JSON-массив всех очищенных записей.
func (s *Server) GetData(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.GetData(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordsServed.Add(float64(len(records)))
	writeJSON(w, http.StatusOK, records)
}

// GetInsight возвращает одну запись по её номеру в источнике (с 1).
func (s *Server) GetInsight(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid insight id", Kind: insights.KindBadRequest})
		return
	}

	rec, err := s.svc.GetByPosition(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordsServed.Inc()
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := insights.KindOf(err)
	status := http.StatusInternalServerError
	if kind == insights.KindNotFound {
		status = http.StatusNotFound
	} else {
		s.metrics.SourceFailures.WithLabelValues(string(kind)).Inc()
		logger.Log.WithFields(map[string]interface{}{
			"kind":       kind,
			"request_id": r.Header.Get(middleware.RequestIDHeader),
		}).Errorf("Failed to load insights: %v", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}
