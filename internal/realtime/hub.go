package realtime

import (
	"strconv"
	"sync"
)

// Publisher is the fan-out channel injected into services. Delivery is
// best-effort: an offline subscriber simply misses the event.
type Publisher interface {
	Broadcast(event string, payload interface{})
	ToUser(userID int64, event string, payload interface{})
}

// Hub tracks connections by room. Each authenticated client joins a room
// named after its user id; clients may join extra rooms explicitly.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Conn]struct{}
	all   map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Conn]struct{}),
		all:   make(map[*Conn]struct{}),
	}
}

func UserRoom(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (h *Hub) Register(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[conn] = struct{}{}
}

func (h *Hub) Join(room string, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Conn]struct{})
	}
	h.rooms[room][conn] = struct{}{}
}

func (h *Hub) Leave(room string, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[room]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) Unregister(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.all, conn)
	for room, conns := range h.rooms {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, room)
		}
	}
	_ = conn.Close()
}

func (h *Hub) Broadcast(event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.all {
		_ = conn.WriteEvent(event, payload)
	}
}

func (h *Hub) ToUser(userID int64, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := h.rooms[UserRoom(userID)]
	for conn := range conns {
		_ = conn.WriteEvent(event, payload)
	}
}
