package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ahmetyavas01/SahaBul/pkg/logger"
)

// Client represents one authenticated WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager owns all live connections and the per-chat room index. Delivery
// through it is at-least-once: a client that reconnects mid-broadcast may
// see a message twice, so consumers dedupe on message id.
type Manager struct {
	clients     map[string]*Client
	roomMembers map[string]map[string]bool // chat id -> set of user ids
	Register    chan *Client
	Unregister  chan *Client
	mutex       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:     make(map[string]*Client),
		roomMembers: make(map[string]map[string]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

// Start runs the registration loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					for _, members := range m.roomMembers {
						delete(members, client.UserID)
					}
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// JoinRoom subscribes a connected user to a chat thread's deliveries.
func (m *Manager) JoinRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.roomMembers[chatID]
	if !ok {
		members = make(map[string]bool)
		m.roomMembers[chatID] = members
	}
	members[userID] = true
}

// LeaveRoom is the unsubscribe handle for a thread; calling it for a user
// who already left is a no-op.
func (m *Manager) LeaveRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.roomMembers[chatID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(m.roomMembers, chatID)
		}
	}
}

// SendToUser delivers to one user if connected; otherwise it is dropped,
// push notification being the offline path.
func (m *Manager) SendToUser(userID string, payload []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("WebSocket send buffer full, dropping payload for %s", userID)
		}
	}
}

// BroadcastToRoom fans a payload out to every room member except the
// excluded user (normally the author, who already has the message).
func (m *Manager) BroadcastToRoom(chatID string, payload []byte, excludeUserID string) {
	m.mutex.RLock()
	members := make([]string, 0, len(m.roomMembers[chatID]))
	for userID := range m.roomMembers[chatID] {
		if userID != excludeUserID {
			members = append(members, userID)
		}
	}
	m.mutex.RUnlock()

	for _, userID := range members {
		m.SendToUser(userID, payload)
	}
}

// BroadcastAll delivers to every connected client. Used for the match
// change feed, where every open discovery view must resync.
func (m *Manager) BroadcastAll(payload []byte) {
	m.mutex.RLock()
	userIDs := make([]string, 0, len(m.clients))
	for userID := range m.clients {
		userIDs = append(userIDs, userID)
	}
	m.mutex.RUnlock()

	for _, userID := range userIDs {
		m.SendToUser(userID, payload)
	}
}

// IsInRoom reports current room membership, mostly for tests.
func (m *Manager) IsInRoom(chatID, userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.roomMembers[chatID][userID]
}

// IsConnected reports whether a user currently holds a live connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// ReadPump reads messages from the connection until it drops.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		m.HandleClientMessage(c, payload)
	}
}

// WritePump drains the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
