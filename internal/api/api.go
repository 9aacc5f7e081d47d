package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	"github.com/globeview/globeview/internal/feed"
	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/reply"
	"github.com/globeview/globeview/internal/store"
)

// Server holds dependencies for the HTTP handlers.
type Server struct {
	store   *store.Store
	sampler *feed.Sampler
	threads *reply.Threads
	reports []model.AnalysisReport
	rngMu   sync.Mutex
	rng     *rand.Rand
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New wires up routes and returns a ready-to-use Server. reports is the
// static analysis set; its seed comment lists are installed as the
// initial threads. rng must not be shared with other components; it is
// guarded here against concurrent requests.
func New(s *store.Store, sampler *feed.Sampler, threads *reply.Threads, reports []model.AnalysisReport, rng *rand.Rand, logger *slog.Logger) *Server {
	srv := &Server{
		store:   s,
		sampler: sampler,
		threads: threads,
		reports: reports,
		rng:     rng,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	for _, r := range reports {
		if len(r.CommentsList) > 0 {
			threads.Seed(r.Slug, r.CommentsList)
		}
	}
	srv.routes()
	return srv
}

// ServeHTTP makes Server satisfy the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ---------- Routes ----------

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.HandleFunc("GET /api/live-updates", s.handleLiveUpdates)
	s.mux.HandleFunc("GET /api/updates/random", s.handleRandomUpdate)

	s.mux.HandleFunc("POST /api/webhooks", s.handleWebhook)

	s.mux.HandleFunc("GET /api/reports", s.handleListReports)
	s.mux.HandleFunc("GET /api/reports/{slug}", s.handleGetReport)
	s.mux.HandleFunc("GET /api/reports/{slug}/comments", s.handleListComments)
	s.mux.HandleFunc("POST /api/reports/{slug}/comments", s.handlePostComment)
}

// ---------- Handlers ----------

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLiveUpdates returns a category-balanced random sample of the
// active set. An empty array is a valid response, distinct from the
// 500 a store failure produces.
func (s *Server) handleLiveUpdates(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.store.ListUpdates(store.Filter{
		Status:     model.StatusActive,
		Category:   r.URL.Query().Get("category"),
		SourceType: r.URL.Query().Get("sourceType"),
	})
	if err != nil {
		s.logger.Error("list updates failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch intelligence updates"})
		return
	}

	writeJSON(w, http.StatusOK, s.sampler.Sample(records, limit))
}

// randomUpdateResponse shadows Timestamp with epoch millis, the shape
// the map client expects from this endpoint.
type randomUpdateResponse struct {
	model.IntelligenceUpdate
	Timestamp int64 `json:"timestamp"`
}

func (s *Server) handleRandomUpdate(w http.ResponseWriter, _ *http.Request) {
	records, err := s.store.ListUpdates(store.Filter{Status: model.StatusActive})
	if err != nil {
		s.logger.Error("list updates failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	if len(records) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No intelligence updates found"})
		return
	}

	s.rngMu.Lock()
	picked := records[s.rng.Intn(len(records))]
	s.rngMu.Unlock()
	writeJSON(w, http.StatusOK, randomUpdateResponse{
		IntelligenceUpdate: picked,
		Timestamp:          picked.Timestamp.UnixMilli(),
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.findReport(r.PathValue("slug"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if _, ok := s.findReport(slug); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, s.threads.List(slug))
}

// postCommentRequest is the payload for submitting a comment.
type postCommentRequest struct {
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
}

// handlePostComment accepts a user comment and schedules the canned AI
// reply; the reply shows up in the thread roughly 1.5 seconds later.
func (s *Server) handlePostComment(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if _, ok := s.findReport(slug); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
		return
	}

	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	comment, err := s.threads.Post(slug, req.AuthorName, req.Content)
	if errors.Is(err, reply.ErrEmptyFields) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and comment are required"})
		return
	}
	if err != nil {
		s.logger.Error("post comment failed", "slug", slug, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	s.logger.Info("comment posted", "slug", slug, "comment_id", comment.ID)
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) findReport(slug string) (model.AnalysisReport, bool) {
	for _, r := range s.reports {
		if r.Slug == slug {
			return r, true
		}
	}
	return model.AnalysisReport{}, false
}

// ---------- Helpers ----------

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
