package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/infrastructure/ratelimit"
)

// hubServer treats the token query value as the user id.
func hubServer(t *testing.T, limiter ...*ratelimit.RateLimiter) (*Manager, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := NewManager()
	if len(limiter) > 0 {
		m.WithRateLimiter(limiter[0])
	}
	m.Start(ctx)

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(r.URL.Query().Get("token"), conn)
		if !m.Add(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump(m)
	}))
	t.Cleanup(srv.Close)

	return m, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
}

func dialAs(t *testing.T, m *Manager, wsURL, userID string) *ChatClient {
	t.Helper()
	c, err := Dial(context.Background(), wsURL, userID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.Eventually(t, func() bool { return m.IsOnline(userID) }, time.Second, 10*time.Millisecond)
	return c
}

type inbox struct {
	messages chan entity.ChatMessage
	receipts chan DeliveryReceiptData
	errs     chan string
}

func listen(c *ChatClient) *inbox {
	in := &inbox{
		messages: make(chan entity.ChatMessage, 8),
		receipts: make(chan DeliveryReceiptData, 8),
		errs:     make(chan string, 8),
	}
	go func() {
		_ = c.Listen(context.Background(), Handlers{
			OnMessage: func(m entity.ChatMessage) { in.messages <- m },
			OnReceipt: func(r DeliveryReceiptData) { in.receipts <- r },
			OnError:   func(s string) { in.errs <- s },
		})
	}()
	return in
}

func TestRelayBetweenOnlineUsers(t *testing.T) {
	m, wsURL := hubServer(t)
	buyer := dialAs(t, m, wsURL, "u2")
	seller := dialAs(t, m, wsURL, "u1")
	buyerIn, sellerIn := listen(buyer), listen(seller)

	err := buyer.SendMessage(context.Background(), entity.ChatMessage{
		ID: "m1", ThreadID: "t1", RecipientID: "u1", SenderID: "u9", Text: " Is the dupatta included? ",
	})
	require.NoError(t, err)

	select {
	case got := <-sellerIn.messages:
		assert.Equal(t, "m1", got.ID)
		assert.Equal(t, "u2", got.SenderID)
		assert.Equal(t, "Is the dupatta included?", got.Text)
		assert.False(t, got.SentAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("seller never received the message")
	}

	select {
	case receipt := <-buyerIn.receipts:
		assert.Equal(t, StatusDelivered, receipt.Status)
		assert.Equal(t, "u1", receipt.DeliveredTo)
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery receipt")
	}
}

func TestOfflineRecipientGetsQueuedFrames(t *testing.T) {
	m, wsURL := hubServer(t)
	buyer := dialAs(t, m, wsURL, "u2")
	buyerIn := listen(buyer)

	require.NoError(t, buyer.SendMessage(context.Background(), entity.ChatMessage{
		ID: "m1", ThreadID: "t1", RecipientID: "u1", Text: "Still available?",
	}))
	select {
	case receipt := <-buyerIn.receipts:
		assert.Equal(t, StatusQueued, receipt.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("no receipt")
	}

	seller := dialAs(t, m, wsURL, "u1")
	sellerIn := listen(seller)
	select {
	case got := <-sellerIn.messages:
		assert.Equal(t, "Still available?", got.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("queued message not delivered on connect")
	}
}

func TestRejectsInvalidFrames(t *testing.T) {
	m, wsURL := hubServer(t)
	buyer := dialAs(t, m, wsURL, "u2")
	in := listen(buyer)

	require.NoError(t, buyer.SendMessage(context.Background(), entity.ChatMessage{ID: "m1", ThreadID: "t1", RecipientID: "u1", Text: "   "}))
	require.NoError(t, buyer.SendMessage(context.Background(), entity.ChatMessage{ID: "m2", ThreadID: "t1", RecipientID: "u2", Text: "hi"}))

	for _, want := range []string{"Message text is required", "Cannot message yourself"} {
		select {
		case got := <-in.errs:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected error %q", want)
		}
	}
}

func TestEncodeFrame(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	frame, err := EncodeFrame(MessageTypePong, nil, at)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong","timestamp":"2026-05-01T09:30:00Z"}`, string(frame))
}

func TestSendMessageIsRateLimited(t *testing.T) {
	limiter := ratelimit.NewRateLimiter()
	limiter.SetPolicy(MessageTypeSendMessage, ratelimit.Policy{Every: time.Hour, Burst: 1})
	m, wsURL := hubServer(t, limiter)

	buyer := dialAs(t, m, wsURL, "u2")
	in := listen(buyer)

	msg := entity.ChatMessage{ID: "m1", ThreadID: "t1", RecipientID: "u1", Text: "hello"}
	require.NoError(t, buyer.SendMessage(context.Background(), msg))
	msg.ID = "m2"
	require.NoError(t, buyer.SendMessage(context.Background(), msg))

	select {
	case got := <-in.errs:
		assert.Contains(t, got, "Rate limit exceeded")
	case <-time.After(2 * time.Second):
		t.Fatal("second message was not limited")
	}
}

func TestShutdownReleasesReadPumps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	m.Start(ctx)

	pumpDone := make(chan struct{})
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("u1", conn)
		if !m.Add(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		client.ReadPump(m)
		close(pumpDone)
	}))
	defer srv.Close()

	c, err := Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/chat", "u1")
	require.NoError(t, err)
	defer c.Close()
	require.Eventually(t, func() bool { return m.IsOnline("u1") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-pumpDone:
	case <-time.After(3 * time.Second):
		t.Fatal("read pump still blocked after shutdown")
	}

	assert.False(t, m.Add(NewClient("u2", nil)))
}
