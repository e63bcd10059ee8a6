package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
)

// WSHandler streams live mastery-score updates to clients over websockets.
type WSHandler struct {
	hub      *app.MasteryHub
	users    UserResolver
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *app.MasteryHub, users UserResolver, log *zap.SugaredLogger) *WSHandler {
	return &WSHandler{
		hub:   hub,
		users: users,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and forwards every mastery update for the
// resolved user until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, err := h.users.Resolve(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.hub.Subscribe(userID)
	defer cancel()

	// Reads only detect disconnects; clients never send payloads here.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[domain.MasteryScore]{Type: "mastery", Payload: update}); err != nil {
				h.log.Debugw("ws write error", "error", err)
				return
			}
		case <-readDone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
