// internal/app/features/chat/hub.go
package chat

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Hub fans persisted messages out to every live connection in the same
// room. Registration and broadcast go through a single goroutine so the
// room map needs no per-room locking.
type Hub struct {
	mu    sync.Mutex
	rooms map[primitive.ObjectID]map[*client]struct{}
	log   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[primitive.ObjectID]map[*client]struct{}),
		log:   logger,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[c.roomID]
	if room == nil {
		room = make(map[*client]struct{})
		h.rooms[c.roomID] = room
	}
	room[c] = struct{}{}

	h.log.Debug("chat client connected",
		zap.String("conn_id", c.id),
		zap.String("room_id", c.roomID.Hex()),
		zap.Int("room_clients", len(room)))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[c.roomID]
	if room == nil {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.roomID)
	}

	h.log.Debug("chat client disconnected",
		zap.String("conn_id", c.id),
		zap.String("room_id", c.roomID.Hex()))
}

// Broadcast queues the payload for every client in the room. A client
// whose send buffer is full is dropped rather than allowed to stall the
// rest of the room.
func (h *Hub) Broadcast(roomID primitive.ObjectID, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	for c := range room {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("chat client send buffer full, dropping",
				zap.String("conn_id", c.id))
			delete(room, c)
			close(c.send)
		}
	}
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
}
