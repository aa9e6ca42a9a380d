// Package spectate broadcasts board frames to WebSocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Frame is the JSON message sent to viewers once per board tick.
type Frame struct {
	Tick        uint64      `json:"tick"`
	Score       int         `json:"score"`
	Renderables []FrameCell `json:"renderables"`
	Turns       []FrameTurn `json:"turns"`
}

// FrameCell is one drawn cell of a frame.
type FrameCell struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// FrameTurn marks a cell where trailing segments will turn.
type FrameTurn struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// FrameFromTick converts a tick event into a frame.
func FrameFromTick(ev snake.TickEvent) Frame {
	cells := make([]FrameCell, len(ev.Renderables))
	for i, r := range ev.Renderables {
		cells[i] = FrameCell{X: r.X, Y: r.Y, Glyph: string(r.Glyph), Color: r.Color.Hex()}
	}
	turns := make([]FrameTurn, len(ev.Turns))
	for i, t := range ev.Turns {
		pos := t.Position()
		turns[i] = FrameTurn{X: pos.X, Y: pos.Y, Direction: t.Direction.String()}
	}
	return Frame{Tick: ev.Tick, Score: ev.Score, Renderables: cells, Turns: turns}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the set of connected viewers and fans frames out to them.
// Slow viewers whose buffer fills up are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Viewers may be served from anywhere
			},
		},
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-spectate",
		}),
		clients: make(map[*client]struct{}),
	}
}

// SetLogger replaces the hub's logger.
func (h *Hub) SetLogger(l *log.Logger) {
	h.logger = l
}

// Observe publishes a tick event. It matches snake.Game.SetTickObserver.
func (h *Hub) Observe(ev snake.TickEvent) {
	h.Publish(FrameFromTick(ev))
}

// Publish sends a frame to every connected viewer. New viewers receive the
// most recent frame on connect.
func (h *Hub) Publish(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Error("cannot encode frame", "tick", f.Tick, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow viewer", "remote", c.conn.RemoteAddr().String())
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a WebSocket viewer connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade connection", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	h.mu.Unlock()

	h.logger.Info("viewer connected", "remote", conn.RemoteAddr().String())

	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards viewer messages and unregisters on disconnect.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump delivers queued frames and keeps the connection alive.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.removeLocked(c)
		h.logger.Info("viewer disconnected", "remote", c.conn.RemoteAddr().String())
	}
}

func (h *Hub) removeLocked(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// Close disconnects every viewer and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// ListenAndServe serves the hub at /ws on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "address", addr, "path", "/ws")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
