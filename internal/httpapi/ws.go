package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/antoniostano/ingpt/internal/protocol"
)

const wsWriteTimeout = 10 * time.Second

// handleChatWS streams the same chunk/done events as POST /chat over a
// websocket. Each inbound text frame is one chat request; frames are handled
// sequentially so per-connection ordering matches arrival order.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(1 << 20)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		req, err := protocol.ParseChatRequest(data)
		if err != nil {
			s.writeWSEvent(conn, protocol.ErrorEvent{
				Type:   protocol.TypeError,
				Code:   "invalid_request",
				Detail: err.Error(),
			})
			continue
		}

		s.metrics.ActiveStreams.Inc()
		respondErr := s.responder.Respond(ctx, req.SessionID, req.Question, func(text string) error {
			event := protocol.ChunkEvent{
				Type:  protocol.TypeChunk,
				Chunk: protocol.EscapeNewlines(text),
			}
			if err := s.writeWSEvent(conn, event); err != nil {
				return err
			}
			s.metrics.StreamEvents.WithLabelValues("chunk").Inc()
			return nil
		})
		s.metrics.ActiveStreams.Dec()

		if respondErr != nil {
			s.logger.Error("chat request failed", "session_id", req.SessionID, "error", respondErr)
			_ = s.writeWSEvent(conn, protocol.ErrorEvent{
				Type:   protocol.TypeError,
				Code:   "request_failed",
				Detail: respondErr.Error(),
			})
		}

		if err := s.writeWSEvent(conn, protocol.DoneEvent{Type: protocol.TypeDone}); err != nil {
			return
		}
		s.metrics.StreamEvents.WithLabelValues("done").Inc()
	}
}

func (s *Server) writeWSEvent(conn *websocket.Conn, event any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(event)
}
