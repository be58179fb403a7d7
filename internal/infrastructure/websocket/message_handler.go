package websocket

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/logger"
)

// Frame types on the chat socket.
const (
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
	MessageTypeSendMessage     = "send_message"
	MessageTypeMessage         = "message"
	MessageTypeDeliveryReceipt = "delivery_receipt"
	MessageTypeError           = "error"
)

// Delivery states reported back to the sender.
const (
	StatusDelivered = "delivered"
	StatusQueued    = "queued"
)

// WSMessage is the envelope of every frame.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type DeliveryReceiptData struct {
	ThreadID    string `json:"thread_id"`
	MessageID   string `json:"message_id"`
	DeliveredTo string `json:"delivered_to"`
	Status      string `json:"status"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// EncodeFrame builds an envelope around data.
func EncodeFrame(kind string, data interface{}, at time.Time) ([]byte, error) {
	msg := WSMessage{Type: kind, Timestamp: at.UTC().Format(time.RFC3339)}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}

// HandleClientMessage processes one frame read from client.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Debug("Chat: bad frame from %s: %v", client.UserID, err)
		m.sendError(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.reply(client, MessageTypePong, nil)

	case MessageTypeSendMessage:
		m.handleSendMessage(client, wsMessage.Data)

	default:
		m.sendError(client, "Unknown message type: "+wsMessage.Type)
	}
}

func (m *Manager) handleSendMessage(client *Client, data json.RawMessage) {
	if m.limiter != nil {
		if ok, wait := m.limiter.Allow(client.UserID, MessageTypeSendMessage); !ok {
			m.sendError(client, fmt.Sprintf("Rate limit exceeded, retry in %ds", int(math.Ceil(wait.Seconds()))))
			return
		}
	}

	var msg entity.ChatMessage
	if len(data) == 0 || json.Unmarshal(data, &msg) != nil {
		m.sendError(client, "Invalid message data")
		return
	}

	msg.Text = strings.TrimSpace(msg.Text)
	switch {
	case msg.ID == "" || msg.ThreadID == "":
		m.sendError(client, "Message id and thread_id are required")
		return
	case msg.RecipientID == "":
		m.sendError(client, "recipient_id is required")
		return
	case msg.RecipientID == client.UserID:
		m.sendError(client, "Cannot message yourself")
		return
	case msg.Text == "":
		m.sendError(client, "Message text is required")
		return
	}

	// The sender is whoever holds this connection, never what the frame claims.
	msg.SenderID = client.UserID
	if msg.SentAt.IsZero() {
		msg.SentAt = m.now()
	}

	frame, err := EncodeFrame(MessageTypeMessage, msg, m.now())
	if err != nil {
		logger.Error("Chat: encode message %s: %v", msg.ID, err)
		m.sendError(client, "Failed to send message")
		return
	}

	status := StatusQueued
	if m.SendToUser(msg.RecipientID, frame) {
		status = StatusDelivered
	}
	m.reply(client, MessageTypeDeliveryReceipt, DeliveryReceiptData{
		ThreadID:    msg.ThreadID,
		MessageID:   msg.ID,
		DeliveredTo: msg.RecipientID,
		Status:      status,
	})
}

func (m *Manager) reply(client *Client, kind string, data interface{}) {
	frame, err := EncodeFrame(kind, data, m.now())
	if err != nil {
		logger.Error("Chat: encode %s frame: %v", kind, err)
		return
	}
	m.SendToUser(client.UserID, frame)
}

func (m *Manager) sendError(client *Client, message string) {
	m.reply(client, MessageTypeError, ErrorData{Message: message})
}
