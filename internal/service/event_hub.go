package service

import (
	"academic_portal_backend/pkg/logger"
	"academic_portal_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	eventChannel = "portal_events"

	// RoomGeneral is joined by every connection at upgrade time.
	RoomGeneral  = "general"
	RoomTeachers = "teachers"
	RoomStudents = "students"
)

// Realtime event names pushed to connected clients.
const (
	EventConnected       = "connected"
	EventJoinedRoom      = "joined_room"
	EventLeftRoom        = "left_room"
	EventNewAssignment   = "new_assignment"
	EventNewReflection   = "new_reflection"
	EventNewNotification = "new_notification"
	EventProgressUpdated = "progress_updated"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the wire frame in both directions.
type Event struct {
	Type string      `json:"type"`
	Room string      `json:"room,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

type EventClient struct {
	hub     *EventHub
	conn    *websocket.Conn
	send    chan []byte
	id      string
	userID  uint
	limiter *rate.Limiter
}

// EventHub fans events out to connected clients, optionally scoped to a
// named room. Delivery is best effort: no persistence, no ordering across
// connections, and a full send buffer drops the frame rather than blocking
// the broadcaster. Redis pub/sub relays broadcasts across instances; with a
// nil Redis client the hub degrades to local-only delivery.
type EventHub struct {
	mu      sync.RWMutex
	clients map[*EventClient]bool
	rooms   map[string]map[*EventClient]bool

	register   chan *EventClient
	unregister chan *EventClient

	Redis  *redis.Client
	ctx    context.Context
	cancel context.CancelFunc
}

func NewEventHub(rdb *redis.Client) *EventHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventHub{
		clients:    make(map[*EventClient]bool),
		rooms:      make(map[string]map[*EventClient]bool),
		register:   make(chan *EventClient),
		unregister: make(chan *EventClient),
		Redis:      rdb,
		ctx:        ctx,
		cancel:     cancel,
	}
}

type relayedEvent struct {
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

func (h *EventHub) Run() {
	if h.Redis != nil {
		pubsub := h.Redis.Subscribe(h.ctx, eventChannel)
		go func() {
			ch := pubsub.Channel()
			for msg := range ch {
				var relayed relayedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
					logger.Log.Error("event relay unmarshal error", zap.Error(err))
					continue
				}
				h.deliverLocal(relayed.Room, relayed.Payload)
			}
		}()
	}

	for {
		select {
		case client, ok := <-h.register:
			if !ok {
				return
			}
			h.mu.Lock()
			h.clients[client] = true
			h.joinLocked(client, RoomGeneral)
			h.mu.Unlock()
			monitoring.WSConnectedClients.Inc()

		case client, ok := <-h.unregister:
			if !ok {
				return
			}
			h.mu.Lock()
			if _, present := h.clients[client]; present {
				delete(h.clients, client)
				for room, members := range h.rooms {
					if members[client] {
						delete(members, client)
						if len(members) == 0 {
							delete(h.rooms, room)
						}
					}
				}
				close(client.send)
				monitoring.WSConnectedClients.Dec()
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// joinLocked adds the client to a room; idempotent. Caller holds h.mu.
func (h *EventHub) joinLocked(client *EventClient, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*EventClient]bool)
		h.rooms[room] = members
	}
	members[client] = true
}

func (h *EventHub) Join(client *EventClient, room string) {
	if room == "" {
		room = RoomGeneral
	}
	h.mu.Lock()
	h.joinLocked(client, room)
	h.mu.Unlock()
	client.sendEvent(Event{Type: EventJoinedRoom, Room: room})
}

// Leave removes the client from a room; leaving a room never joined is a
// no-op, so both operations stay idempotent.
func (h *EventHub) Leave(client *EventClient, room string) {
	h.mu.Lock()
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
	client.sendEvent(Event{Type: EventLeftRoom, Room: room})
}

// Broadcast delivers an event to every connection in room, or to all
// connections when room is empty. Fire and forget.
func (h *EventHub) Broadcast(eventType, room string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Room: room, Data: data})
	if err != nil {
		logger.Log.Error("event marshal error", zap.Error(err), zap.String("event", eventType))
		return
	}
	monitoring.WSEventCounter.WithLabelValues(eventType, "out").Inc()

	if h.Redis != nil {
		relayed, _ := json.Marshal(relayedEvent{Room: room, Payload: payload})
		if err := h.Redis.Publish(h.ctx, eventChannel, relayed).Err(); err != nil {
			logger.Log.Error("event publish error", zap.Error(err))
			h.deliverLocal(room, payload)
		}
		return
	}
	h.deliverLocal(room, payload)
}

// BroadcastToUser targets the per-user room.
func (h *EventHub) BroadcastToUser(userID uint, eventType string, data interface{}) {
	h.Broadcast(eventType, UserRoom(userID), data)
}

func UserRoom(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

func (h *EventHub) deliverLocal(room string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room == "" {
		for client := range h.clients {
			client.trySend(payload)
		}
		return
	}
	for client := range h.rooms[room] {
		client.trySend(payload)
	}
}

// RoomSize reports current local membership, mostly for tests and health.
func (h *EventHub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Stop closes every connection and stops the relay subscription.
func (h *EventHub) Stop() {
	h.cancel()

	h.mu.Lock()
	closed := 0
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
		closed++
	}
	h.rooms = make(map[string]map[*EventClient]bool)
	h.mu.Unlock()

	monitoring.WSConnectedClients.Set(0)
	logger.Log.Info("event hub stopped", zap.Int("closedConnections", closed))
}

func (c *EventClient) trySend(payload []byte) {
	select {
	case c.send <- payload:
	default:
		// Slow consumer: drop the frame, never block the broadcaster.
	}
}

func (c *EventClient) sendEvent(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	c.trySend(payload)
}

func (c *EventClient) readPump() {
	defer func() {
		// After Stop the hub loop is gone; don't block on the handoff.
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("websocket unexpected close", zap.Error(err), zap.String("clientId", c.id))
			}
			break
		}

		if !c.limiter.Allow() {
			continue
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}
		monitoring.WSEventCounter.WithLabelValues(event.Type, "in").Inc()

		switch event.Type {
		case "join_room":
			c.hub.Join(c, event.Room)
		case "leave_room":
			c.hub.Leave(c, event.Room)
		}
	}
}

func (c *EventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message: consumers parse each message as a
			// single JSON event, so queued frames must not be coalesced.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// ServeWs upgrades the request and wires the connection into the hub. The
// connection auto-joins the general room plus the caller's role and user
// rooms.
func ServeWs(hub *EventHub, w http.ResponseWriter, r *http.Request, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("websocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &EventClient{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		id:      uuid.New().String(),
		userID:  userID,
		limiter: rate.NewLimiter(rate.Limit(30), 50),
	}
	hub.register <- client

	// Queued from this goroutine so clients always see connected before
	// any joined_room frame.
	client.sendEvent(Event{Type: EventConnected, Data: map[string]interface{}{"client_id": client.id}})

	switch role {
	case "teacher", "admin":
		hub.Join(client, RoomTeachers)
	case "student":
		hub.Join(client, RoomStudents)
	}
	if userID != 0 {
		hub.Join(client, UserRoom(userID))
	}

	go client.writePump()
	go client.readPump()
}
