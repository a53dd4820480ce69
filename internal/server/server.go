// Package server exposes the visitor-facing HTTP API: the SSE chat
// endpoint, session and status queries, autocomplete, QR codes and static
// artwork images.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"log/slog"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ai41/adam/internal/archive"
	"github.com/ai41/adam/internal/curator"
	"github.com/ai41/adam/internal/gateway"
	"github.com/ai41/adam/internal/types"
)

// Server is the HTTP handler for the exhibition API.
type Server struct {
	gateway      *gateway.Gateway
	orchestrator *curator.Orchestrator
	catalog      types.Catalog
	archives     *archive.Store
	publicURL    string
	logger       *slog.Logger
	mux          *http.ServeMux
}

// New creates a Server wired to the gateway and catalog. baseDir is the
// exhibition asset root; its img/ directory is served at /img/.
func New(gw *gateway.Gateway, orchestrator *curator.Orchestrator, catalog types.Catalog, archives *archive.Store, baseDir, publicURL string, logger *slog.Logger) *Server {
	s := &Server{
		gateway:      gw,
		orchestrator: orchestrator,
		catalog:      catalog,
		archives:     archives,
		publicURL:    publicURL,
		logger:       logger,
		mux:          http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("GET /api/session/", s.handleGetSession)
	s.mux.HandleFunc("POST /api/session/new", s.handleNewSession)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/autocomplete", s.handleAutocomplete)
	s.mux.HandleFunc("GET /api/qr", s.handleQR)
	s.mux.HandleFunc("GET /api/qr/info", s.handleQRInfo)
	s.mux.HandleFunc("GET /api/archives", s.handleArchives)
	s.mux.Handle("GET /img/", http.StripPrefix("/img/", http.FileServer(http.Dir(filepath.Join(baseDir, "img")))))
	return s
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

// chatRequest is the JSON body for POST /api/chat.
type chatRequest struct {
	Message      string   `json:"message"`
	SessionID    string   `json:"session_id"`
	ArtworkNames []string `json:"artwork_names"`
}

// handleChat streams the curator's response as server-sent events: one
// token event per fragment, an images event when the message mentions
// artworks, then a done event. Errors are reported in-stream so the client
// always sees a terminated event sequence.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
		return
	}

	sessionID := types.SessionID(req.SessionID)
	if sessionID == "" {
		sessionID = types.NewSessionID()
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	imageURLs := s.mentionedImageURLs(req.Message)

	fragments, err := s.gateway.Chat(r.Context(), sessionID, req.Message, req.ArtworkNames)
	if err != nil {
		s.logger.Error("chat enqueue failed", "session_id", sessionID, "error", err)
		writeEvent(w, flusher, map[string]any{"error": "오류가 발생했습니다: " + err.Error(), "session_id": sessionID})
		writeEvent(w, flusher, map[string]any{"done": true, "session_id": sessionID})
		return
	}

	for fragment := range fragments {
		writeEvent(w, flusher, map[string]any{"token": fragment, "session_id": sessionID})
	}

	if len(imageURLs) > 0 {
		writeEvent(w, flusher, map[string]any{"images": imageURLs, "session_id": sessionID})
	}

	writeEvent(w, flusher, map[string]any{"done": true, "session_id": sessionID})
}

// mentionedImageURLs scans the message for artwork names and collects
// their image URLs, series expanded, duplicates removed in order.
func (s *Server) mentionedImageURLs(message string) []string {
	messageLower := strings.ToLower(message)

	var urls []string
	seen := make(map[string]bool)
	for _, aw := range s.catalog.All() {
		if !strings.Contains(messageLower, strings.ToLower(aw.Name)) {
			continue
		}
		for _, url := range s.catalog.ImageURLs(aw.Name) {
			if !seen[url] {
				seen[url] = true
				urls = append(urls, url)
			}
		}
	}
	return urls
}

// sessionResponse is the payload for GET /api/session/{id}.
type sessionResponse struct {
	SessionID types.SessionID `json:"session_id"`
	Messages  []types.Turn    `json:"messages"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/session/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	messages := s.orchestrator.History(types.SessionID(id))
	if messages == nil {
		messages = []types.Turn{}
	}
	writeJSON(w, sessionResponse{SessionID: types.SessionID(id), Messages: messages})
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]types.SessionID{"session_id": types.NewSessionID()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	configured := s.orchestrator.Configured()
	message := "기본 응답 모드 사용 중"
	if configured {
		message = fmt.Sprintf("모델: %s 사용 중", s.orchestrator.Model())
	}
	writeJSON(w, map[string]any{
		"model_name":     s.orchestrator.Model(),
		"api_configured": configured,
		"message":        message,
	})
}

// autocompleteEntry is one suggestion for GET /api/autocomplete.
type autocompleteEntry struct {
	Name     string `json:"name"`
	Size     string `json:"size,omitempty"`
	Year     string `json:"year,omitempty"`
	ImageURL string `json:"image_url"`
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, `{"error":"q is required"}`, http.StatusBadRequest)
		return
	}
	limit := queryInt(r, "limit", 10)

	matches := s.catalog.PrefixSearch(q, limit)
	entries := make([]autocompleteEntry, 0, len(matches))
	for _, aw := range matches {
		entries = append(entries, autocompleteEntry{
			Name:     aw.Name,
			Size:     aw.Size,
			Year:     aw.Year,
			ImageURL: "/img/" + aw.Filename,
		})
	}
	writeJSON(w, map[string]any{"query": q, "artworks": entries})
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		url = s.publicURL
	}

	png, err := qrcode.Encode(url, qrcode.Low, 256)
	if err != nil {
		s.logger.Error("qr encoding failed", "url", url, "error", err)
		http.Error(w, `{"error":"qr generation failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleQRInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"url":         s.publicURL,
		"qr_code_url": fmt.Sprintf("%s/api/qr?url=%s", s.publicURL, s.publicURL),
	})
}

func (s *Server) handleArchives(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)

	summaries, err := s.archives.List(limit)
	if err != nil {
		s.logger.Error("list archives failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, summaries)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

func queryInt(r *http.Request, name string, fallback int) int {
	if q := r.URL.Query().Get(name); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
