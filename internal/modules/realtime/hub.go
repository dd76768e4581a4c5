// Package realtime pushes room status changes to connected staff clients.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"resortdesk/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4096
)

const EventRoomStatus = "room.status"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is what clients receive.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type client struct {
	id     string
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	// rooms filters updates by room id; empty means every room.
	rooms map[int64]bool
}

// Hub tracks open connections and broadcasts room status updates to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.id]; ok && existing == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishRoomStatus broadcasts a status change. Slow clients miss the update.
func (h *Hub) PublishRoomStatus(change domain.RoomStatusChange) {
	data, err := json.Marshal(Message{Type: EventRoomStatus, Data: change})
	if err != nil {
		h.log.Error("marshal room status", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if len(c.rooms) > 0 && !c.rooms[change.RoomID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Debug("dropping room status for slow client", zap.String("client", c.id))
		}
	}
}

// ServeWS registers conn and runs its read/write loops until it closes.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
		rooms:  make(map[int64]bool),
	}

	h.register(c)
	h.log.Info("realtime client connected", zap.String("client", c.id), zap.Int64("user_id", userID))

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.log.Info("realtime client disconnected", zap.String("client", c.id))
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd struct {
			Type   string `json:"type"`
			RoomID int64  `json:"roomId"`
		}
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}

		switch cmd.Type {
		case "subscribe":
			h.mu.Lock()
			c.rooms[cmd.RoomID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.rooms, cmd.RoomID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
