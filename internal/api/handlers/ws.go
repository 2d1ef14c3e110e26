package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/mari/gift-list-website/internal/live"
	"github.com/sirupsen/logrus"
)

type WebSocketHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewWebSocketHandler(hub *live.Hub, log *logrus.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Public pages subscribe from the frontend origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Subscribe upgrades the connection and streams gift-list change events for
// the username in the URL. The page is public, so no authentication.
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	client := live.NewClient(h.hub, conn, username, h.log)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
