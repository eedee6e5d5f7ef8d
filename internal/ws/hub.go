package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tabhoarder/backend/internal/bridge"
	"github.com/tabhoarder/backend/internal/logging"
	"github.com/tabhoarder/backend/internal/monitoring"
	"github.com/tabhoarder/backend/internal/shared/id"
	"github.com/tabhoarder/backend/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Extension pages carry chrome-extension:// origins.
		return true
	},
}

// command is a server-to-extension request.
type command struct {
	ID     string        `json:"id"`
	Type   string        `json:"type"`
	Moves  []types.Move  `json:"moves,omitempty"`
	TabIDs []types.TabID `json:"tab_ids,omitempty"`
	URLs   []string      `json:"urls,omitempty"`
}

// reply is an extension-to-server message: either a command ack or a
// standalone frame like hello/ping.
type reply struct {
	Type  string      `json:"type"`
	ID    string      `json:"id,omitempty"`
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Tabs  []types.Tab `json:"tabs,omitempty"`
}

// Hub owns the browser connection and speaks the bridge capability
// interfaces over it. One window at a time; a newer connection
// displaces the old one.
type Hub struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
	timeout time.Duration

	mu   sync.Mutex
	conn *connection
}

type connection struct {
	sock    *websocket.Conn
	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan reply
}

// NewHub creates a hub. Timeout bounds how long a command waits for
// its acknowledgement.
func NewHub(logger *logging.Logger, metrics *monitoring.Metrics, timeout time.Duration) *Hub {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Hub{logger: logger, metrics: metrics, timeout: timeout}
}

// Connected reports whether a window is attached.
func (h *Hub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn != nil
}

// HandleConnection upgrades the request and runs the read loop until
// the extension goes away.
func (h *Hub) HandleConnection(c *gin.Context) {
	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := &connection{sock: sock, pending: make(map[string]chan reply)}
	h.attach(conn)
	defer h.detach(conn)

	conn.write(map[string]any{"type": "system", "message": "connected"})

	for {
		var msg reply
		if err := sock.ReadJSON(&msg); err != nil {
			h.logger.Info("window disconnected", zap.Error(err))
			return
		}
		switch {
		case msg.ID != "":
			conn.resolve(msg)
		case msg.Type == "ping":
			conn.write(map[string]any{"type": "pong"})
		}
	}
}

// NotifyProgress pushes a progress frame to the window, best effort.
func (h *Hub) NotifyProgress(op string, percent int) {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn == nil {
		return
	}
	conn.write(map[string]any{"type": "progress", "op": op, "percent": percent})
}

// Tabs implements bridge.TabSource.
func (h *Hub) Tabs(ctx context.Context) ([]types.Tab, error) {
	resp, err := h.roundTrip(ctx, command{Type: "list_tabs"})
	if err != nil {
		return nil, err
	}
	if resp.Tabs == nil {
		return []types.Tab{}, nil
	}
	return resp.Tabs, nil
}

// Move implements bridge.TabSink.
func (h *Hub) Move(ctx context.Context, moves []types.Move) error {
	_, err := h.roundTrip(ctx, command{Type: "move", Moves: moves})
	return err
}

// Close implements bridge.TabSink.
func (h *Hub) Close(ctx context.Context, ids []types.TabID) error {
	_, err := h.roundTrip(ctx, command{Type: "close", TabIDs: ids})
	return err
}

// Create implements bridge.TabSink.
func (h *Hub) Create(ctx context.Context, urls []string) error {
	_, err := h.roundTrip(ctx, command{Type: "create", URLs: urls})
	return err
}

func (h *Hub) roundTrip(ctx context.Context, cmd command) (reply, error) {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn == nil {
		return reply{}, bridge.ErrNoWindow
	}

	cmd.ID = string(id.NewCommandID())
	ch := conn.expect(cmd.ID)
	defer conn.forget(cmd.ID)

	if err := conn.write(cmd); err != nil {
		return reply{}, fmt.Errorf("send %s: %w", cmd.Type, err)
	}

	select {
	case resp := <-ch:
		if !resp.OK {
			return reply{}, fmt.Errorf("%s rejected by window: %s", cmd.Type, resp.Error)
		}
		return resp, nil
	case <-ctx.Done():
		return reply{}, ctx.Err()
	case <-time.After(h.timeout):
		return reply{}, fmt.Errorf("%s: window did not acknowledge", cmd.Type)
	}
}

func (h *Hub) attach(conn *connection) {
	h.mu.Lock()
	old := h.conn
	h.conn = conn
	h.mu.Unlock()

	if old != nil {
		old.sock.Close()
	}
	h.metrics.BridgeConnections.Inc()
	h.logger.Info("window connected")
}

func (h *Hub) detach(conn *connection) {
	h.mu.Lock()
	if h.conn == conn {
		h.conn = nil
	}
	h.mu.Unlock()

	conn.sock.Close()
	h.metrics.BridgeConnections.Dec()
}

func (c *connection) write(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.sock.WriteJSON(v)
}

func (c *connection) expect(cmdID string) chan reply {
	ch := make(chan reply, 1)
	c.pendingMu.Lock()
	c.pending[cmdID] = ch
	c.pendingMu.Unlock()
	return ch
}

func (c *connection) forget(cmdID string) {
	c.pendingMu.Lock()
	delete(c.pending, cmdID)
	c.pendingMu.Unlock()
}

func (c *connection) resolve(msg reply) {
	c.pendingMu.Lock()
	ch, ok := c.pending[msg.ID]
	c.pendingMu.Unlock()
	if ok {
		ch <- msg
	}
}
