// Package server: the WebSocket fan-out hub.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// hub fans engine events out to every connected WebSocket client.
// Clients are write-only from the server's point of view; inbound
// frames are read and discarded to keep close handshakes working.
type hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newHub(log *slog.Logger) *hub {
	return &hub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// handleWS upgrades the request and registers the client until its
// read side fails.
func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)

		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("websocket client connected", "remote", conn.RemoteAddr())

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)

				return
			}
		}
	}()
}

// broadcast sends one event envelope to every client, dropping clients
// whose writes fail.
func (h *hub) broadcast(eventType string, data any) {
	msg, err := json.Marshal(wsEvent{Type: eventType, Data: data})
	if err != nil {
		h.log.Error("event marshal failed", "type", eventType, "error", err)

		return
	}

	h.mu.Lock()
	var dead []*websocket.Conn
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		delete(h.conns, conn)
		_ = conn.Close()
	}
	h.mu.Unlock()
}

// drop unregisters and closes a single client.
func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// close terminates every client connection.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}
