package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(id string) *Client {
	return &Client{ID: id, send: make(chan []byte, 8)}
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	default:
		t.Fatalf("client %s has no pending message", c.ID)
		return nil
	}
}

func requireEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("client %s unexpectedly received %s", c.ID, msg)
	default:
	}
}

func TestJoinBuildsPresence(t *testing.T) {
	hub := NewHub()
	alice := testClient("u1")
	bob := testClient("u2")

	users, _ := hub.Join(alice, "p", "Alice")
	require.Len(t, users, 1)
	require.Equal(t, "Alice", users[0].Username)

	users, _ = hub.Join(bob, "p", "Bob")
	require.Len(t, users, 2)
}

func TestJoinAssignsColor(t *testing.T) {
	hub := NewHub()
	c := testClient("u1")
	users, _ := hub.Join(c, "p", "Alice")
	require.Len(t, users[0].Color, 7)
	require.Equal(t, byte('#'), users[0].Color[0])
}

func TestJoinMovesConnectionBetweenRooms(t *testing.T) {
	hub := NewHub()
	mover := testClient("u1")
	stayer := testClient("u2")
	hub.Join(stayer, "p1", "Stayer")
	hub.Join(mover, "p1", "Mover")

	users, departed := hub.Join(mover, "p2", "Mover")
	require.Len(t, users, 1)
	require.Len(t, departed["p1"], 1)
	require.Equal(t, "Stayer", departed["p1"][0].Username)

	require.Len(t, hub.Presence("p1"), 1, "old room no longer lists the mover")
	require.Len(t, hub.Presence("p2"), 1)
}

func TestRejoinSameRoomKeepsSingleMembership(t *testing.T) {
	hub := NewHub()
	c := testClient("u1")
	hub.Join(c, "p", "Alice")

	users, departed := hub.Join(c, "p", "Alice")
	require.Len(t, users, 1)
	require.Empty(t, departed, "re-joining the same room departs nothing")
	require.Len(t, hub.Presence("p"), 1)
}

func TestLeaveRemovesOnlyThatConnection(t *testing.T) {
	hub := NewHub()
	alice := testClient("u1")
	bob := testClient("u2")
	hub.Join(alice, "p", "Alice")
	hub.Join(bob, "p", "Bob")

	affected := hub.Leave(alice)
	require.Contains(t, affected, "p")
	require.Len(t, affected["p"], 1)
	require.Equal(t, "Bob", affected["p"][0].Username)

	require.Len(t, hub.Presence("p"), 1)
}

func TestLeaveUnknownConnection(t *testing.T) {
	hub := NewHub()
	hub.Join(testClient("u1"), "p", "Alice")
	affected := hub.Leave(testClient("ghost"))
	require.Empty(t, affected)
	require.Len(t, hub.Presence("p"), 1)
}

func TestUpdateCursor(t *testing.T) {
	hub := NewHub()
	c := testClient("u1")
	hub.Join(c, "p", "Alice")

	user, ok := hub.UpdateCursor("p", "u1", 3, 7)
	require.True(t, ok)
	require.Equal(t, 3, user.CursorX)
	require.Equal(t, 7, user.CursorY)

	users := hub.Presence("p")
	require.Equal(t, 3, users[0].CursorX)
}

func TestUpdateCursorNonMemberIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Join(testClient("u1"), "p", "Alice")

	_, ok := hub.UpdateCursor("p", "stranger", 1, 1)
	require.False(t, ok)
	_, ok = hub.UpdateCursor("unknown-room", "u1", 1, 1)
	require.False(t, ok)
}

func TestBroadcastToOthersExcludesSender(t *testing.T) {
	hub := NewHub()
	alice := testClient("u1")
	bob := testClient("u2")
	hub.Join(alice, "p", "Alice")
	hub.Join(bob, "p", "Bob")

	hub.BroadcastToOthers("p", "u1", []byte("hello"))
	require.Equal(t, []byte("hello"), recv(t, bob))
	requireEmpty(t, alice)
}

func TestBroadcastToRoomIncludesSender(t *testing.T) {
	hub := NewHub()
	alice := testClient("u1")
	bob := testClient("u2")
	hub.Join(alice, "p", "Alice")
	hub.Join(bob, "p", "Bob")

	hub.BroadcastToRoom("p", []byte("presence"))
	require.Equal(t, []byte("presence"), recv(t, alice))
	require.Equal(t, []byte("presence"), recv(t, bob))
}

func TestBroadcastNeverCrossesRooms(t *testing.T) {
	hub := NewHub()
	alice := testClient("u1")
	eve := testClient("u3")
	hub.Join(alice, "p1", "Alice")
	hub.Join(eve, "p2", "Eve")

	hub.BroadcastToOthers("p1", "nobody", []byte("secret"))
	require.Equal(t, []byte("secret"), recv(t, alice))
	requireEmpty(t, eve)
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()
	// Unknown room: nothing to do, nothing to panic about.
	hub.BroadcastToRoom("nowhere", []byte("x"))
	hub.BroadcastToOthers("nowhere", "u1", []byte("x"))
}

func TestStalledClientIsDropped(t *testing.T) {
	hub := NewHub()
	slow := &Client{ID: "slow", send: make(chan []byte, 1)}
	hub.Join(slow, "p", "Slow")

	hub.BroadcastToRoom("p", []byte("one")) // fills the buffer
	hub.BroadcastToRoom("p", []byte("two")) // overflows: client dropped

	require.Empty(t, hub.Presence("p"))
	// The send channel is closed exactly once.
	_, open := <-slow.send
	require.True(t, open, "buffered message still readable")
	_, open = <-slow.send
	require.False(t, open, "channel closed after the drop")
}

func TestRoomsAreIndependent(t *testing.T) {
	hub := NewHub()
	hub.Join(testClient("u1"), "p1", "Alice")
	hub.Join(testClient("u2"), "p2", "Bob")

	hub.Leave(&Client{ID: "u1"})
	require.Empty(t, hub.Presence("p1"))
	require.Len(t, hub.Presence("p2"), 1)
}
