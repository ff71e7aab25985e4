package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/adapters/http/mid"
	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/gorilla/websocket"
)

const (
	wsSendBuffer   = 16
	wsWriteTimeout = 10 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: mid.SameOrigin,
}

// wsClient is one connected browser window.
type wsClient struct {
	send chan []byte
	once sync.Once
}

func (c *wsClient) stop() {
	c.once.Do(func() { close(c.send) })
}

// wsHub fans out store snapshots to every connected client. A client whose
// buffer is full is dropped instead of blocking the store.
type wsHub struct {
	mu          sync.Mutex
	clients     map[*wsClient]struct{}
	closed      bool
	unsubscribe func()
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[*wsClient]struct{})}
}

func (h *wsHub) add(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *wsHub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.stop()
}

func (h *wsHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *wsHub) broadcast(snap domain.Snapshot) {
	payload, err := json.Marshal(newTabsResponse(snap))
	if err != nil {
		utils.Logger.Error("encode snapshot failed", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			utils.Logger.Warn("websocket client too slow, dropping")
			delete(h.clients, c)
			c.stop()
		}
	}
}

func (h *wsHub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := h.clients
	h.clients = make(map[*wsClient]struct{})
	unsubscribe := h.unsubscribe
	h.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for c := range clients {
		c.stop()
	}
}

// wsTabs upgrades to WebSocket and pushes the tab snapshot on connect and after every change.
func (s *Server) wsTabs(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Time{})

	client := &wsClient{send: make(chan []byte, wsSendBuffer)}
	if !s.hub.add(client) {
		return
	}
	defer s.hub.remove(client)

	initial, err := json.Marshal(newTabsResponse(s.builder.Snapshot()))
	if err != nil {
		utils.Logger.Error("encode snapshot failed", "err", err)
		return
	}
	if !writeWS(conn, initial) {
		return
	}
	utils.Logger.Info("websocket client connected", "clients", s.hub.count())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.Logger.Info("websocket client disconnected", "err", err)
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-client.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				return
			}
			if !writeWS(conn, msg) {
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, msg []byte) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		utils.Logger.Info("websocket write failed, closing", "err", err)
		return false
	}
	return true
}
