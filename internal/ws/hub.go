package ws

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

// Room holds the connections collaborating on one project, keyed by
// connection id. Each room has its own lock so traffic in one room
// never blocks another.
type Room struct {
	mu      sync.RWMutex
	members map[string]*Client
}

func newRoom() *Room {
	return &Room{members: make(map[string]*Client)}
}

// Hub is the process-wide registry of rooms. It is constructed once in
// main and handed to every connection; nothing reaches it through an
// ambient lookup. The server keeps no canvas state here — the hub is a
// presence directory plus a relay.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

// Join inserts the connection into the project's room, creating the
// room on first join, and assigns the presence color peers will render
// the cursor in. Colors are drawn at random from the full 24-bit
// space; collisions are possible and acceptable. A connection lives in
// at most one room, so joining removes it from any room it was in
// before; that also keeps the client's presence fields guarded by a
// single room's lock. Returns the room's presence list including the
// new member, plus the updated presence of any room left behind.
func (h *Hub) Join(c *Client, projectID, username string) ([]models.User, map[string][]models.User) {
	departed := h.Leave(c)
	delete(departed, projectID)

	h.mu.Lock()
	room, ok := h.rooms[projectID]
	if !ok {
		room = newRoom()
		h.rooms[projectID] = room
	}
	h.mu.Unlock()

	room.mu.Lock()
	c.ProjectID = projectID
	c.Username = username
	c.Color = fmt.Sprintf("#%06x", rand.Intn(0x1000000))
	c.CursorX = 0
	c.CursorY = 0
	room.members[c.ID] = c
	users := room.presenceLocked()
	room.mu.Unlock()

	return users, departed
}

// Leave removes the connection from every room it belongs to and
// returns the updated presence list per affected room. Empty rooms are
// left in place; they hold no resources worth reclaiming eagerly.
func (h *Hub) Leave(c *Client) map[string][]models.User {
	h.mu.RLock()
	rooms := make(map[string]*Room, len(h.rooms))
	for id, room := range h.rooms {
		rooms[id] = room
	}
	h.mu.RUnlock()

	affected := make(map[string][]models.User)
	for projectID, room := range rooms {
		room.mu.Lock()
		if _, ok := room.members[c.ID]; ok {
			delete(room.members, c.ID)
			affected[projectID] = room.presenceLocked()
		}
		room.mu.Unlock()
	}
	return affected
}

// UpdateCursor stores the connection's last reported pointer cell and
// returns its presence entry. Reports false, changing nothing, when
// the connection is not a member of the room.
func (h *Hub) UpdateCursor(projectID, connID string, x, y int) (models.User, bool) {
	room := h.room(projectID)
	if room == nil {
		return models.User{}, false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	c, ok := room.members[connID]
	if !ok {
		return models.User{}, false
	}
	c.CursorX = x
	c.CursorY = y
	return c.presence(), true
}

// Presence returns the current presence list for a project's room, or
// nil for an unknown room.
func (h *Hub) Presence(projectID string) []models.User {
	room := h.room(projectID)
	if room == nil {
		return nil
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	return room.presenceLocked()
}

// BroadcastToRoom delivers data to every member of the project's room,
// sender included. Broadcasting to an unknown or empty room is a
// silent no-op.
func (h *Hub) BroadcastToRoom(projectID string, data []byte) {
	h.fanOut(projectID, "", data)
}

// BroadcastToOthers delivers data to every room member except the
// originating connection.
func (h *Hub) BroadcastToOthers(projectID, senderID string, data []byte) {
	h.fanOut(projectID, senderID, data)
}

// fanOut snapshots the recipient list under the room lock and sends
// outside it, so one slow receiver can never stall joins or other
// rooms. A client whose send buffer is full is dropped from the room
// and its outbound channel closed, which ends its write pump.
func (h *Hub) fanOut(projectID, excludeID string, data []byte) {
	room := h.room(projectID)
	if room == nil {
		return
	}

	room.mu.RLock()
	recipients := make([]*Client, 0, len(room.members))
	for id, c := range room.members {
		if id == excludeID {
			continue
		}
		recipients = append(recipients, c)
	}
	room.mu.RUnlock()

	var stalled []*Client
	for _, c := range recipients {
		select {
		case c.send <- data:
		default:
			stalled = append(stalled, c)
		}
	}
	for _, c := range stalled {
		room.mu.Lock()
		if _, ok := room.members[c.ID]; ok {
			delete(room.members, c.ID)
			c.closeSend()
		}
		room.mu.Unlock()
	}
}

func (h *Hub) room(projectID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[projectID]
}

// presenceLocked builds the presence list; the caller holds room.mu.
func (r *Room) presenceLocked() []models.User {
	users := make([]models.User, 0, len(r.members))
	for _, c := range r.members {
		users = append(users, c.presence())
	}
	return users
}
