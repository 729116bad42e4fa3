package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userId string) *Client {
	return NewClient("client-"+userId, userId, nil)
}

func recvEvent(t *testing.T, c *Client) OutgoingEvent {
	t.Helper()
	select {
	case raw := <-c.Send:
		var event OutgoingEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return OutgoingEvent{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected event: %s", raw)
	default:
	}
}

func TestHubJoinLeave(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	client := newTestClient("alice")
	hub.Join("alice", client)

	assert.True(t, hub.InRoom("alice", client))
	assert.Contains(t, client.TrackedRooms(), "alice")

	hub.Leave("alice", client)

	assert.False(t, hub.InRoom("alice", client))
	assert.Empty(t, client.TrackedRooms())

	// Empty rooms are dropped entirely
	hub.mu.RLock()
	_, ok := hub.rooms["alice"]
	hub.mu.RUnlock()
	assert.False(t, ok, "empty room should be removed")
}

func TestHubEmitToRoom(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	hub.Join("room-1", alice)
	hub.Join("room-1", bob)

	hub.EmitToRoom("room-1", OutgoingEvent{Event: "test", Data: map[string]any{"x": 1}})

	assert.Equal(t, "test", recvEvent(t, alice).Event)
	assert.Equal(t, "test", recvEvent(t, bob).Event)
}

func TestHubEmitToRoomExcept(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	hub.Join("room-1", alice)
	hub.Join("room-1", bob)

	hub.EmitToRoomExcept("room-1", OutgoingEvent{Event: "test"}, alice)

	assert.Equal(t, "test", recvEvent(t, bob).Event)
	assertNoEvent(t, alice)
}

func TestHubUserTracking(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	first := newTestClient("alice")
	second := newTestClient("alice")

	hub.Track(first)
	hub.Track(second)
	assert.True(t, hub.IsUserOnline("alice"))

	hub.Untrack(first)
	assert.True(t, hub.IsUserOnline("alice"), "user stays online while another connection remains")

	hub.Untrack(second)
	assert.False(t, hub.IsUserOnline("alice"))
}

func TestHubUntrackLeavesRooms(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	client := newTestClient("alice")
	hub.Track(client)
	hub.Join("alice", client)
	hub.Join(CallRoom("call-1"), client)

	hub.Untrack(client)

	assert.False(t, hub.InRoom("alice", client))
	assert.False(t, hub.InRoom(CallRoom("call-1"), client))
	assert.Empty(t, client.TrackedRooms())
}

func TestHubRoomUsersDistinct(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	first := newTestClient("alice")
	second := newTestClient("alice")
	third := newTestClient("bob")
	hub.Join("room-1", first)
	hub.Join("room-1", second)
	hub.Join("room-1", third)

	users := hub.RoomUsers("room-1")
	assert.Len(t, users, 2)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

func TestHubStats(t *testing.T) {
	hub := NewHub()
	defer hub.cancel()

	client := newTestClient("alice")
	hub.Track(client)
	hub.Join("alice", client)
	hub.EmitToRoom("alice", OutgoingEvent{Event: "test"})

	stats := hub.Stats()
	assert.Equal(t, 1, stats.TotalRooms)
	assert.Equal(t, 1, stats.TotalClients)
	assert.Equal(t, int64(1), stats.TotalConnections)
	assert.Equal(t, int64(1), stats.EventsSent)
}
