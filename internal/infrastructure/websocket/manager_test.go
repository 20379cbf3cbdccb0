package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, 8),
	}
}

func register(m *Manager, c *Client) {
	m.mutex.Lock()
	m.clients[c.UserID] = c
	m.mutex.Unlock()
}

func TestSendToUser(t *testing.T) {
	m := NewManager()
	alice := testClient("alice")
	register(m, alice)

	m.SendToUser("alice", []byte("hello"))
	m.SendToUser("nobody", []byte("dropped"))

	assert.Equal(t, []byte("hello"), <-alice.Send)
	assert.Empty(t, alice.Send)
}

func TestBroadcastToRoomSkipsSender(t *testing.T) {
	m := NewManager()
	organizer := testClient("organizer")
	requester := testClient("requester")
	outsider := testClient("outsider")
	for _, c := range []*Client{organizer, requester, outsider} {
		register(m, c)
	}

	m.JoinRoom("chat-1", "organizer")
	m.JoinRoom("chat-1", "requester")

	m.BroadcastToRoom("chat-1", []byte("msg"), "requester")

	assert.Equal(t, []byte("msg"), <-organizer.Send)
	assert.Empty(t, requester.Send)
	assert.Empty(t, outsider.Send)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	m := NewManager()
	c := testClient("u1")
	register(m, c)

	m.JoinRoom("chat-1", "u1")
	assert.True(t, m.IsInRoom("chat-1", "u1"))

	m.LeaveRoom("chat-1", "u1")
	m.LeaveRoom("chat-1", "u1") // second leave is a no-op
	assert.False(t, m.IsInRoom("chat-1", "u1"))

	m.BroadcastToRoom("chat-1", []byte("msg"), "")
	assert.Empty(t, c.Send)
}

func TestBroadcastAll(t *testing.T) {
	m := NewManager()
	a := testClient("a")
	b := testClient("b")
	register(m, a)
	register(m, b)

	m.BroadcastAll(NewEvent(EventTypeMatchFeed, nil))

	for _, c := range []*Client{a, b} {
		var msg WSMessage
		require.NoError(t, json.Unmarshal(<-c.Send, &msg))
		assert.Equal(t, EventTypeMatchFeed, msg.Type)
	}
}

func TestHandleClientMessageRoomVerbs(t *testing.T) {
	m := NewManager()
	c := testClient("u1")
	register(m, c)

	m.HandleClientMessage(c, []byte(`{"type":"join_room","chat_id":"chat-1"}`))
	assert.True(t, m.IsInRoom("chat-1", "u1"))

	m.HandleClientMessage(c, []byte(`{"type":"leave_room","chat_id":"chat-1"}`))
	assert.False(t, m.IsInRoom("chat-1", "u1"))

	m.HandleClientMessage(c, []byte(`{"type":"ping"}`))
	var msg WSMessage
	require.NoError(t, json.Unmarshal(<-c.Send, &msg))
	assert.Equal(t, MessageTypePong, msg.Type)

	m.HandleClientMessage(c, []byte(`not json`))
	require.NoError(t, json.Unmarshal(<-c.Send, &msg))
	assert.Equal(t, EventTypeError, msg.Type)
}
