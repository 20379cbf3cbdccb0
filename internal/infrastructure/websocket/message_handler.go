package websocket

import (
	"encoding/json"
	"time"

	"github.com/ahmetyavas01/SahaBul/pkg/logger"
)

// Client-initiated message types
const (
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeJoinRoom  = "join_room"
	MessageTypeLeaveRoom = "leave_room"
)

// Server-pushed event types
const (
	EventTypeNewMessage        = "new_message"
	EventTypeMatchFeed         = "match_feed"
	EventTypeParticipantUpdate = "participant_update"
	EventTypeError             = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewEvent builds a server-pushed event payload. Marshalling a map of
// strings and entities cannot fail in practice; errors are logged and an
// empty payload returned so callers stay best-effort.
func NewEvent(eventType string, data interface{}) []byte {
	payload, err := json.Marshal(WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", eventType, err)
		return nil
	}
	return payload
}

// HandleClientMessage processes one inbound frame. The only client verbs
// are ping and room membership; message posting goes through the HTTP API
// so it shares validation and rate limiting with the rest of the surface.
func (m *Manager) HandleClientMessage(client *Client, payload []byte) {
	var msg WSMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("WebSocket: malformed frame from %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{
			Type:      MessageTypePong,
			Timestamp: time.Now().Format(time.RFC3339),
		})

	case MessageTypeJoinRoom:
		if msg.ChatID == "" {
			m.sendErrorToClient(client, "chat_id is required to join a room")
			return
		}
		m.JoinRoom(msg.ChatID, client.UserID)
		logger.Debug("WebSocket: %s joined room %s", client.UserID, msg.ChatID)

	case MessageTypeLeaveRoom:
		if msg.ChatID == "" {
			m.sendErrorToClient(client, "chat_id is required to leave a room")
			return
		}
		m.LeaveRoom(msg.ChatID, client.UserID)
		logger.Debug("WebSocket: %s left room %s", client.UserID, msg.ChatID)

	default:
		logger.Debug("WebSocket: unknown message type %q from %s", msg.Type, client.UserID)
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) sendToClient(client *Client, msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal %s frame: %v", msg.Type, err)
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("WebSocket send buffer full for %s", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, message string) {
	m.sendToClient(client, WSMessage{
		Type:      EventTypeError,
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
