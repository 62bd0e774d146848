package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"logo-guess-service/internal/app"
	"logo-guess-service/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WSHandler runs one game session per websocket connection.
type WSHandler struct {
	games    *app.GameService
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(games *app.GameService, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		games:  games,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type finishPayload struct {
	PlayerName string `json:"playerName"`
}

type outboundMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ServeWS starts a session (?difficulty=&limit=) or resumes one (?sessionId=)
// and then plays it through answer, next and finish messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessionID := q.Get("sessionId")

	var (
		tier  domain.Tier
		limit int
	)
	if sessionID == "" {
		var err error
		if tier, err = domain.ParseTier(q.Get("difficulty")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if raw := q.Get("limit"); raw != "" {
			if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})
	go h.writePump(conn, send, writerDone)

	var round interface{}
	if sessionID == "" {
		first, err := h.games.Start(ctx, tier, limit)
		if err != nil {
			send <- h.errorMessage(err)
			close(send)
			<-writerDone
			return
		}
		sessionID, round = first.SessionID, first
	} else {
		current, err := h.games.Resume(ctx, sessionID)
		if err != nil {
			send <- h.errorMessage(err)
			close(send)
			<-writerDone
			return
		}
		round = current
	}
	send <- outboundMessage{Type: "round", Payload: round}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("ws read ended", "session_id", sessionID, "error", err)
			}
			break
		}
		send <- h.dispatch(r, sessionID, inbound)
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, sessionID string, inbound inboundMessage) outboundMessage {
	ctx := r.Context()
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage{Type: "error", Payload: errorResponse{Message: "invalid answer payload"}}
		}
		outcome, err := h.games.Answer(ctx, sessionID, payload.Answer)
		if err != nil {
			return h.errorMessage(err)
		}
		return outboundMessage{Type: "result", Payload: outcome}
	case "next":
		round, err := h.games.Next(ctx, sessionID)
		if err != nil {
			return h.errorMessage(err)
		}
		return outboundMessage{Type: "round", Payload: round}
	case "finish":
		var payload finishPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage{Type: "error", Payload: errorResponse{Message: "invalid finish payload"}}
		}
		record, err := h.games.Finish(ctx, sessionID, payload.PlayerName)
		if err != nil {
			return h.errorMessage(err)
		}
		return outboundMessage{Type: "saved", Payload: record}
	default:
		return outboundMessage{Type: "error", Payload: errorResponse{Message: "unsupported message type"}}
	}
}

// writePump is the only writer on conn; it also keeps the connection alive with pings.
func (h *WSHandler) writePump(conn *websocket.Conn, send <-chan outboundMessage, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	failed := false
	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return
			}
			if failed {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("ws write failed", "error", err)
				// keep draining so the reader never blocks
				failed = true
			}
		case <-ticker.C:
			if failed {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failed = true
			}
		}
	}
}

func (h *WSHandler) errorMessage(err error) outboundMessage {
	if statusFor(err) == http.StatusInternalServerError {
		h.logger.Error("game request failed", "error", err)
	}
	return outboundMessage{Type: "error", Payload: errorResponse{Message: publicMessage(err)}}
}
