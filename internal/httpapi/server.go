package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/antoniostano/ingpt/internal/chat"
	"github.com/antoniostano/ingpt/internal/config"
	"github.com/antoniostano/ingpt/internal/observability"
	"github.com/antoniostano/ingpt/internal/policy"
	"github.com/antoniostano/ingpt/internal/protocol"
)

// Responder runs one complete dialogue pass for an incoming message.
type Responder interface {
	Respond(ctx context.Context, sessionID, question string, emit chat.Emit) error
}

// HistoryReader replays a session's full message log.
type HistoryReader interface {
	History(ctx context.Context, sessionID string) ([]chat.Message, error)
}

// DocumentAdder accepts new policy documents into the retrieval index.
type DocumentAdder interface {
	Add(ctx context.Context, name, content string) error
}

type Server struct {
	cfg       config.Config
	responder Responder
	history   HistoryReader
	documents DocumentAdder
	creds     policy.Credentials
	metrics   *observability.Metrics
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

func New(cfg config.Config, responder Responder, history HistoryReader, documents DocumentAdder, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		responder: responder,
		history:   history,
		documents: documents,
		creds:     policy.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		metrics:   metrics,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same
				// origin unless explicitly opened up.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/chat", s.handleChat)
	r.Get("/chat/ws", s.handleChatWS)
	r.Get("/history/{session_id}", s.handleHistory)
	r.With(s.requireAdmin).Post("/documents", s.handleAddDocument)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	req, err := protocol.ParseChatRequest(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	emitter, err := NewStreamEmitter(w)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "streaming_unsupported", err.Error())
		return
	}

	s.metrics.ActiveStreams.Inc()
	defer s.metrics.ActiveStreams.Dec()

	respondErr := s.responder.Respond(r.Context(), req.SessionID, req.Question, func(text string) error {
		if err := emitter.Chunk(text); err != nil {
			return err
		}
		s.metrics.StreamEvents.WithLabelValues("chunk").Inc()
		return nil
	})
	if respondErr != nil {
		// Headers are already written; surface the failure inside the stream
		// so the framing stays intact.
		s.logger.Error("chat request failed", "session_id", req.SessionID, "error", respondErr)
		_ = emitter.Chunk("Error: request could not be completed. " + respondErr.Error())
	}

	if err := emitter.Done(); err == nil {
		s.metrics.StreamEvents.WithLabelValues("done").Inc()
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	messages, err := s.history.History(r.Context(), sessionID)
	if err != nil {
		// Unknown sessions and unreachable storage both degrade to an empty
		// history rather than an error response.
		s.logger.Warn("history read failed", "session_id", sessionID, "error", err)
		messages = nil
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

type addDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	if s.documents == nil {
		respondError(w, http.StatusNotImplemented, "unavailable", "document ingestion not configured")
		return
	}

	var req addDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name and content are required")
		return
	}

	if err := s.documents.Add(r.Context(), req.Name, req.Content); err != nil {
		s.logger.Error("document ingestion failed", "name", req.Name, "error", err)
		respondError(w, http.StatusInternalServerError, "ingest_failed", err.Error())
		return
	}
	s.metrics.DocumentsIngested.Inc()
	respondJSON(w, http.StatusCreated, map[string]any{"status": "created", "name": req.Name})
}

// requireAdmin rejects invalid credentials before the request reaches the
// dialogue controller. With auth disabled it is a pass-through.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.AuthEnabled {
			next.ServeHTTP(w, r)
			return
		}
		username, password, ok := r.BasicAuth()
		if !ok || !s.creds.Authorize(username, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="ingpt"`)
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
