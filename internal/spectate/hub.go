// Package spectate broadcasts live frames to websocket watchers.
// Watchers are read-only: anything they send is discarded.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const (
	writeWait  = 2 * time.Second
	sendBuffer = 16
)

// Event is the message pushed to watchers once per tick.
type Event struct {
	Frame    snake.Frame `json:"frame"`
	GameOver bool        `json:"game_over"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected watcher. It implements
// snake.Observer. A watcher that cannot keep up is dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	last     []byte
	upgrader websocket.Upgrader
	logger   *log.Logger
	server   *http.Server
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
	}
}

// Observe encodes the frame and queues it for every watcher.
func (h *Hub) Observe(f snake.Frame, r snake.TickResult) {
	data, err := json.Marshal(Event{Frame: f, GameOver: r.GameOver})
	if err != nil {
		h.logger.Error("encode frame", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow watcher", "remote", c.conn.RemoteAddr().String())
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected watchers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// ServeHTTP upgrades the request and streams frames until the watcher leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	h.mu.Unlock()
	h.logger.Info("watcher joined", "remote", conn.RemoteAddr().String())

	go h.writeLoop(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
	h.logger.Info("watcher left", "remote", conn.RemoteAddr().String())
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// Handler serves the hub at /watch.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/watch", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("snake spectator: connect a websocket to /watch\n"))
	})
	return mux
}

// Start listens on addr and serves in the background.
// It returns the bound address, which differs from addr for ":0".
func (h *Hub) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	h.server = &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("spectator server", "error", err)
		}
	}()
	return ln.Addr().String(), nil
}

// Close stops the server and disconnects every watcher.
func (h *Hub) Close() error {
	h.mu.Lock()
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	if h.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return h.server.Shutdown(ctx)
}
