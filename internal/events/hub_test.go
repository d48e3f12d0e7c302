package events

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastToFeedClients(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	hub.Add(server)
	assert.Equal(t, 1, hub.Count())

	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(client)
		if sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	hub.Broadcast(CatalogEvent{Type: TypeCatalogRefresh, Total: 42})

	select {
	case line := <-lines:
		var ev CatalogEvent
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		assert.Equal(t, TypeCatalogRefresh, ev.Type)
		assert.Equal(t, 42, ev.Total)
		assert.False(t, ev.At.IsZero(), "broadcast stamps the event time")
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	hub.Remove(server)
	assert.Equal(t, 0, hub.Count())
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	hub.Add(server)
	client.Close()

	// the write fails and the client is evicted
	hub.Broadcast(CatalogEvent{Type: TypeCatalogInvalidate})
	assert.Equal(t, 0, hub.Count())
}

func TestStats(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	defer client.Close()
	hub.Add(server)

	s := hub.Stats()
	assert.Equal(t, 1, s.FeedClients)
	assert.Equal(t, 0, s.WSClients)
}
