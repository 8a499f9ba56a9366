package viewer

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts structure lifecycle events to connected browsers so
// other open tabs can refresh their lists.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

// HandleWS upgrades the connection and keeps it registered until the
// client goes away. Clients only listen; inbound messages are drained
// and discarded.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("viewer: websocket read: %v", err)
			}
			return
		}
	}
}

// Broadcast sends the event to every connected client. Connections that
// fail to accept the write are dropped.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}
