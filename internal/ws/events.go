package ws

import (
	"encoding/json"
	"log"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

// EventType tags every message crossing the socket.
type EventType string

// Client-to-server events and the server-side events they fan out as.
const (
	EventJoin        EventType = "join"
	EventPixelChange EventType = "pixel-change"
	EventCursorMove  EventType = "cursor-move"
	EventLayerUpdate EventType = "layer-update"
	EventFrameUpdate EventType = "frame-update"

	EventUsersUpdate  EventType = "users-update"
	EventPixelChanged EventType = "pixel-changed"
	EventCursorMoved  EventType = "cursor-moved"
	EventLayerUpdated EventType = "layer-updated"
	EventFrameUpdated EventType = "frame-updated"
)

// JoinMessage asks to enter a project's room.
type JoinMessage struct {
	ProjectID string `json:"projectId"`
	Username  string `json:"username"`
}

// PixelChangeMessage reports one cell write on a layer.
type PixelChangeMessage struct {
	ProjectID  string `json:"projectId"`
	LayerIndex int    `json:"layerIndex"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Color      string `json:"color"`
}

// CursorMoveMessage reports the sender's pointer cell.
type CursorMoveMessage struct {
	ProjectID string `json:"projectId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// UsersUpdateMessage carries a room's full presence list. It is sent
// to everyone in the room, sender included, on every join and leave.
type UsersUpdateMessage struct {
	Type  EventType     `json:"type"`
	Users []models.User `json:"users"`
}

// PixelChangedMessage is the relayed form of a pixel change, tagged
// with the originating connection.
type PixelChangedMessage struct {
	Type       EventType `json:"type"`
	LayerIndex int       `json:"layerIndex"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Color      string    `json:"color"`
	UserID     string    `json:"userId"`
}

// CursorMovedMessage is the relayed form of a cursor move, carrying
// the sender's display identity so peers can draw the cursor.
type CursorMovedMessage struct {
	Type     EventType `json:"type"`
	UserID   string    `json:"userId"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Color    string    `json:"color"`
	Username string    `json:"username"`
}

// dispatch decodes one inbound frame into its typed variant and routes
// it. All room mutation funnels through here and the disconnect path;
// there are no per-event callbacks scattered across handlers.
func (c *Client) dispatch(raw []byte) {
	var env struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("[WS] client %s sent undecodable frame: %v", c.ID, err)
		return
	}

	switch env.Type {
	case EventJoin:
		var msg JoinMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.ProjectID == "" {
			return
		}
		c.handleJoin(msg)
	case EventPixelChange:
		var msg PixelChangeMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.ProjectID == "" {
			return
		}
		c.handlePixelChange(msg)
	case EventCursorMove:
		var msg CursorMoveMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.ProjectID == "" {
			return
		}
		c.handleCursorMove(msg)
	case EventLayerUpdate:
		c.handleGenericUpdate(raw, EventLayerUpdated)
	case EventFrameUpdate:
		c.handleGenericUpdate(raw, EventFrameUpdated)
	default:
		log.Printf("[WS] client %s sent unknown event type %q", c.ID, env.Type)
	}
}

func (c *Client) handleJoin(msg JoinMessage) {
	users, departed := c.hub.Join(c, msg.ProjectID, msg.Username)
	for projectID, remaining := range departed {
		c.hub.BroadcastToRoom(projectID, mustMarshal(UsersUpdateMessage{
			Type:  EventUsersUpdate,
			Users: remaining,
		}))
	}
	c.hub.BroadcastToRoom(msg.ProjectID, mustMarshal(UsersUpdateMessage{
		Type:  EventUsersUpdate,
		Users: users,
	}))
	log.Printf("[WS] user %s joined project %s", msg.Username, msg.ProjectID)
}

func (c *Client) handlePixelChange(msg PixelChangeMessage) {
	c.hub.BroadcastToOthers(msg.ProjectID, c.ID, mustMarshal(PixelChangedMessage{
		Type:       EventPixelChanged,
		LayerIndex: msg.LayerIndex,
		X:          msg.X,
		Y:          msg.Y,
		Color:      msg.Color,
		UserID:     c.ID,
	}))
}

func (c *Client) handleCursorMove(msg CursorMoveMessage) {
	user, ok := c.hub.UpdateCursor(msg.ProjectID, c.ID, msg.X, msg.Y)
	if !ok {
		// Not a member of that room; drop silently.
		return
	}
	c.hub.BroadcastToOthers(msg.ProjectID, c.ID, mustMarshal(CursorMovedMessage{
		Type:     EventCursorMoved,
		UserID:   c.ID,
		X:        msg.X,
		Y:        msg.Y,
		Color:    user.Color,
		Username: user.Username,
	}))
}

// handleGenericUpdate relays layer-update and frame-update payloads
// verbatim: the room key is stripped, the event type is rewritten to
// its past-tense form, and every other field passes through untouched.
func (c *Client) handleGenericUpdate(raw []byte, outType EventType) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return
	}
	projectID, _ := payload["projectId"].(string)
	if projectID == "" {
		return
	}
	delete(payload, "projectId")
	payload["type"] = string(outType)
	payload["userId"] = c.ID

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.hub.BroadcastToOthers(projectID, c.ID, data)
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// All outbound message types marshal cleanly; this guards
		// against future field additions only.
		log.Printf("[WS] marshal outbound message: %v", err)
		return []byte("{}")
	}
	return data
}
