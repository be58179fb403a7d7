package websocket

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
)

// ChatClient is the client end of the chat socket.
type ChatClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	now     func() time.Time
}

// Dial connects to the chat endpoint at wsURL as the holder of token.
func Dial(ctx context.Context, wsURL, token string) (*ChatClient, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, errors.BadRequest("Invalid chat URL", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return nil, errors.ServerRejected(resp.StatusCode, "")
		}
		return nil, errors.Network(err)
	}
	conn.SetReadLimit(maxMessageSize)
	return &ChatClient{conn: conn, now: time.Now}, nil
}

// SendMessage writes msg as a send_message frame.
func (c *ChatClient) SendMessage(ctx context.Context, msg entity.ChatMessage) error {
	frame, err := EncodeFrame(MessageTypeSendMessage, msg, c.now())
	if err != nil {
		return errors.Internal("Failed to encode message", err)
	}
	return c.write(ctx, frame)
}

// Ping asks the hub for a pong frame.
func (c *ChatClient) Ping(ctx context.Context) error {
	frame, err := EncodeFrame(MessageTypePing, nil, c.now())
	if err != nil {
		return errors.Internal("Failed to encode ping", err)
	}
	return c.write(ctx, frame)
}

func (c *ChatClient) write(ctx context.Context, frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := c.now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return errors.Network(err)
	}
	return nil
}

// Handlers receives decoded frames from Listen. Nil members are skipped.
type Handlers struct {
	OnMessage func(entity.ChatMessage)
	OnReceipt func(DeliveryReceiptData)
	OnError   func(string)
}

// Listen reads frames until ctx is done or the connection fails.
func (c *ChatClient) Listen(ctx context.Context, h Handlers) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Network(err)
		}

		var frame WSMessage
		if json.Unmarshal(raw, &frame) != nil {
			continue
		}
		switch frame.Type {
		case MessageTypeMessage:
			var msg entity.ChatMessage
			if json.Unmarshal(frame.Data, &msg) == nil && h.OnMessage != nil {
				h.OnMessage(msg)
			}
		case MessageTypeDeliveryReceipt:
			var receipt DeliveryReceiptData
			if json.Unmarshal(frame.Data, &receipt) == nil && h.OnReceipt != nil {
				h.OnReceipt(receipt)
			}
		case MessageTypeError:
			var e ErrorData
			if json.Unmarshal(frame.Data, &e) == nil && h.OnError != nil {
				h.OnError(e.Message)
			}
		}
	}
}

// Close sends a close frame and releases the connection.
func (c *ChatClient) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.conn.Close()
}
