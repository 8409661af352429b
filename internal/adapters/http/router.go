package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
	"github.com/skillseek/course-search/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	retriever ports.CourseRetriever
	composer  ports.AnswerComposer
	reader    ports.CourseReader
	queue     ports.MessageQueue
	metrics   *metrics.HTTPServerMetrics
	logger    *slog.Logger

	defaultTopK      int
	defaultThreshold float64
}

func NewRouter(
	retriever ports.CourseRetriever,
	composer ports.AnswerComposer,
	reader ports.CourseReader,
	queue ports.MessageQueue,
	m *metrics.HTTPServerMetrics,
	logger *slog.Logger,
	defaultTopK int,
	defaultThreshold float64,
) *Router {
	return &Router{
		retriever:        retriever,
		composer:         composer,
		reader:           reader,
		queue:            queue,
		metrics:          m,
		logger:           logger,
		defaultTopK:      defaultTopK,
		defaultThreshold: defaultThreshold,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/v1/retrieve", rt.retrieve)
	mux.HandleFunc("/v1/answer", rt.answer)
	mux.HandleFunc("/v1/courses/", rt.getCourseByID)
	mux.HandleFunc("/v1/index/stats", rt.indexStats)
	mux.HandleFunc("/v1/index/rebuild", rt.requestRebuild)

	handler := rt.metrics.Middleware(serviceName, mux)
	handler = accessLogMiddleware(rt.logger, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchRequest struct {
	Query          string   `json:"query"`
	TopK           *int     `json:"top_k"`
	ScoreThreshold *float64 `json:"score_threshold"`
}

func (rt *Router) decodeSearchRequest(w http.ResponseWriter, r *http.Request) (searchRequest, bool) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return req, false
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return req, false
	}
	if req.TopK == nil {
		req.TopK = &rt.defaultTopK
	}
	if req.ScoreThreshold == nil {
		req.ScoreThreshold = &rt.defaultThreshold
	}
	return req, true
}

func (rt *Router) retrieve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	req, ok := rt.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.retriever.Retrieve(r.Context(), req.Query, *req.TopK, *req.ScoreThreshold)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.recordRetrieval("retrieve", result, time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) answer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	req, ok := rt.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	answer, err := rt.composer.Answer(r.Context(), req.Query, *req.TopK, *req.ScoreThreshold)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.recordRetrieval("answer", &answer.Retrieval, time.Since(start))

	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) recordRetrieval(endpoint string, result *domain.RetrievalResult, duration time.Duration) {
	rt.metrics.RecordRetrieval(serviceName, endpoint, len(result.Matches), duration)
	rt.metrics.RecordDetectedLanguage(serviceName, result.Language)
	if result.Normalized.FallbackReason != "" {
		rt.metrics.RecordTranslationFallback(serviceName)
	}
}

func (rt *Router) getCourseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/courses/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "course id is required"})
		return
	}

	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) indexStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	stats, err := rt.reader.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) requestRebuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional: an empty rebuild request is still valid.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if strings.TrimSpace(req.Reason) == "" {
		req.Reason = "api request"
	}

	if err := rt.queue.PublishRebuildRequested(r.Context(), req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "rebuild requested"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
