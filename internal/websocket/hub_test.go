// FILE: internal/websocket/hub_test.go
package websocket

import (
	"testing"
	"time"

	"stack-navigator-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newTestHub() *Hub {
	h := NewHub(nil, noopLogger{})
	go h.Run()
	return h
}

func registerClient(t *testing.T, h *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: h, UserID: userID, Send: make(chan []byte, buffer)}
	h.register <- c

	// Run processes register asynchronously; wait for the client to land.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		_, ok := h.clients[userID]
		h.mu.RUnlock()
		if ok {
			return c
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("client never registered")
	return nil
}

func clientCount(h *Hub, userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func TestHubSendDeliversToUser(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	c := registerClient(t, h, userID, 4)

	h.Send(userID, Notification{Kind: "generation_done", Title: "done"})

	select {
	case msg := <-c.Send:
		assert.Contains(t, string(msg), "generation_done")
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubDropsClientWithFullBuffer(t *testing.T) {
	h := newTestHub()
	userID := uuid.New()
	c := registerClient(t, h, userID, 1)

	// Fill the buffer, then send twice more. The slow client must be
	// unregistered (its channel closed exactly once by Run) and neither
	// send may panic or deadlock.
	c.Send <- []byte("backlog")
	h.Send(userID, Notification{Kind: "payment_settled", Title: "first overflow"})
	h.Send(userID, Notification{Kind: "payment_settled", Title: "second overflow"})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && clientCount(h, userID) > 0 {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 0, clientCount(h, userID))

	// Drain the backlog; the closed channel then reports not-ok.
	<-c.Send
	_, ok := <-c.Send
	assert.False(t, ok, "Send must be closed by the hub, exactly once")

	// A healthy client for the same user is unaffected afterwards.
	c2 := registerClient(t, h, userID, 4)
	h.Send(userID, Notification{Kind: "plan_changed", Title: "still flowing"})
	select {
	case <-c2.Send:
	case <-time.After(time.Second):
		t.Fatal("delivery stalled after dropping a slow client")
	}
}

func TestHubBroadcastReachesAllUsers(t *testing.T) {
	h := newTestHub()
	a := registerClient(t, h, uuid.New(), 4)
	b := registerClient(t, h, uuid.New(), 4)

	h.Broadcast(Notification{Kind: "plan_changed", Title: "hello all"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Contains(t, string(msg), "plan_changed")
		case <-time.After(time.Second):
			t.Fatal("broadcast missed a client")
		}
	}
}
