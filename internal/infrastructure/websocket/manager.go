package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wardrobe101/internal/infrastructure/ratelimit"
	"wardrobe101/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024

	// maxPending bounds the frames held for a user who is offline.
	maxPending = 100
)

// Client is one authenticated chat connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewClient wraps an upgraded connection for userID.
func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{UserID: userID, Conn: conn, Send: make(chan []byte, 256)}
}

// Manager routes chat frames between connected users. One connection per user; a newer
// connection replaces the older one.
type Manager struct {
	clients    map[string]*Client
	pending    map[string][][]byte
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
	limiter    *ratelimit.RateLimiter
	now        func() time.Time
	// done is closed once the register loop has stopped.
	done       chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		pending:    make(map[string][][]byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		now:        time.Now,
		done:       make(chan struct{}),
	}
}

// WithRateLimiter throttles send_message frames per user.
func (m *Manager) WithRateLimiter(rl *ratelimit.RateLimiter) *Manager {
	m.limiter = rl
	return m
}

// Start runs the register loop until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.register(client)

			case client := <-m.Unregister:
				m.unregister(client)

			case <-ctx.Done():
				close(m.done)
				m.closeAll()
				return
			}
		}
	}()
}

// Add hands client to the register loop. It returns false once the manager has shut down.
func (m *Manager) Add(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) register(client *Client) {
	m.mutex.Lock()
	if old, ok := m.clients[client.UserID]; ok && old != client {
		close(old.Send)
	}
	m.clients[client.UserID] = client
	queued := m.pending[client.UserID]
	delete(m.pending, client.UserID)
	m.mutex.Unlock()

	logger.Info("Chat client registered: %s", client.UserID)
	for _, frame := range queued {
		m.SendToUser(client.UserID, frame)
	}
}

func (m *Manager) unregister(client *Client) {
	m.mutex.Lock()
	if current, ok := m.clients[client.UserID]; ok && current == client {
		delete(m.clients, client.UserID)
		close(client.Send)
	}
	m.mutex.Unlock()
	logger.Info("Chat client unregistered: %s", client.UserID)
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for id, client := range m.clients {
		close(client.Send)
		delete(m.clients, id)
	}
}

// IsOnline reports whether userID has a live connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// SendToUser delivers frame to userID and reports whether it went out now. Frames for
// offline users are queued until they connect.
func (m *Manager) SendToUser(userID string, frame []byte) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[userID]
	if !ok {
		queue := append(m.pending[userID], frame)
		if len(queue) > maxPending {
			queue = queue[len(queue)-maxPending:]
		}
		m.pending[userID] = queue
		return false
	}

	select {
	case client.Send <- frame:
		return true
	default:
		// Slow consumer. Drop the connection; the client reconnects.
		close(client.Send)
		delete(m.clients, userID)
		m.pending[userID] = append(m.pending[userID], frame)
		logger.Warn("Chat client %s dropped: send buffer full", userID)
		return false
	}
}

// ReadPump feeds frames from the connection into the manager until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("Chat read from %s: %v", c.UserID, err)
			}
			return
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump drains Send to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Chat write to %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
