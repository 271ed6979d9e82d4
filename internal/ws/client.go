package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

const sendBufferSize = 256

// Client is one websocket connection together with its presence state.
// Presence fields are guarded by the owning room's lock once the
// client has joined.
type Client struct {
	ID        string
	Username  string
	Color     string
	ProjectID string
	CursorX   int
	CursorY   int

	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func (c *Client) presence() models.User {
	return models.User{
		ID:       c.ID,
		Username: c.Username,
		Color:    c.Color,
		CursorX:  c.CursorX,
		CursorY:  c.CursorY,
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from a separate origin in dev.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request to a websocket connection and runs its
// read and write pumps. The connection id doubles as the user's
// presence identity for the lifetime of the socket.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	log.Printf("[WS] client connected: %s", client.ID)

	go client.writePump()
	go client.readPump()
}

// readPump reads frames until the transport signals disconnect, then
// tears the connection down: the client leaves every room it was in
// and each affected room gets a fresh presence broadcast.
func (c *Client) readPump() {
	defer func() {
		affected := c.hub.Leave(c)
		for projectID, users := range affected {
			c.hub.BroadcastToRoom(projectID, mustMarshal(UsersUpdateMessage{
				Type:  EventUsersUpdate,
				Users: users,
			}))
		}
		c.closeSend()
		c.conn.Close()
		log.Printf("[WS] client disconnected: %s", c.ID)
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error for client %s: %v", c.ID, err)
			}
			break
		}
		c.dispatch(raw)
	}
}

// writePump drains the send buffer onto the socket. It exits when the
// channel is closed (teardown or a stall drop) or a write fails.
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("[WS] write error for client %s: %v", c.ID, err)
			return
		}
	}
}
