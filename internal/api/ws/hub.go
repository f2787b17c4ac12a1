package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/crosswalk/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
	maxFrameSize = 4096
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced by the router
	},
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub streams phase changes to websocket subscribers. It is a display sink.
type Hub struct {
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger, metrics *monitoring.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:  logger,
		metrics: metrics,
		clients: make(map[*client]struct{}),
	}
}

// Render broadcasts the phase to every subscriber without blocking. A
// subscriber whose buffer is full is disconnected.
func (h *Hub) Render(v crossing.VehiclePhase, p crossing.PedestrianPhase, crossingActive bool) {
	frame, err := sonic.Marshal(types.WSMessage{
		Type:           types.WSTypePhase,
		Vehicle:        v.String(),
		Pedestrian:     p.String(),
		CrossingActive: crossingActive,
		Timestamp:      time.Now(),
	})
	if err != nil {
		h.logger.Error("encode phase frame", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = frame
	for cl := range h.clients {
		select {
		case cl.send <- frame:
			h.metrics.RecordWSMessage("out", types.WSTypePhase)
		default:
			h.logger.Warn("websocket subscriber too slow, disconnecting", zap.Stringer("client_id", cl.id))
			h.removeLocked(cl)
		}
	}
}

// Clients returns the number of connected subscribers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleConnection upgrades the request and serves one subscriber until it
// disconnects or the hub is closed.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(maxFrameSize)

	cl := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if !h.add(cl) {
		conn.Close()
		return
	}
	h.logger.Debug("websocket subscriber connected", zap.Stringer("client_id", cl.id))

	go h.writeLoop(cl)
	h.readLoop(cl)
}

// Close disconnects every subscriber and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for cl := range h.clients {
		h.removeLocked(cl)
	}
}

func (h *Hub) add(cl *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[cl] = struct{}{}
	h.metrics.IncWSConnections()

	// New subscribers see the current phase right away
	if h.last != nil {
		cl.send <- h.last
	}
	return true
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(cl)
}

// removeLocked closes the client's queue; its write loop then closes the
// connection, which ends the read loop. Callers hold h.mu.
func (h *Hub) removeLocked(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
	h.metrics.DecWSConnections()
}

func (h *Hub) readLoop(cl *client) {
	defer h.remove(cl)

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Stringer("client_id", cl.id), zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.reply(cl, types.WSMessage{Type: types.WSTypeError, Message: "malformed message"})
			continue
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case types.WSTypePing:
			h.reply(cl, types.WSMessage{Type: types.WSTypePong, Timestamp: time.Now()})
		default:
			h.reply(cl, types.WSMessage{Type: types.WSTypeError, Message: "unknown message type"})
		}
	}
}

func (h *Hub) reply(cl *client, msg types.WSMessage) {
	frame, err := sonic.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[cl]; !ok {
		return
	}
	select {
	case cl.send <- frame:
		h.metrics.RecordWSMessage("out", msg.Type)
	default:
	}
}

func (h *Hub) writeLoop(cl *client) {
	defer cl.conn.Close()

	for frame := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.remove(cl)
			// Drain so a concurrent Render never blocks on a dead client
			for range cl.send {
			}
			return
		}
	}

	cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
