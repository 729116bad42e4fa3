package relay

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hub routes outgoing events to connected clients grouped by room. Rooms are
// identity rooms (the user's own id) and call rooms ("call:<id>"). The hub is
// constructed once in main and injected; it holds no persistence state.
type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	userClients map[string][]*Client
	userMu      sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	stats   HubStats
	statsMu sync.RWMutex

	cleanupTicker *time.Ticker
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		userClients: make(map[string][]*Client),
		ctx:         ctx,
		cancel:      cancel,
		stats: HubStats{
			LastReset: time.Now(),
		},
		cleanupTicker: time.NewTicker(1 * time.Minute),
	}

	go hub.cleanupRoutine()

	return hub
}

// CallRoom is the room name carrying signaling traffic for a call.
func CallRoom(callId string) string {
	return "call:" + callId
}

// Track registers a new connection with the hub. Room membership is managed
// separately through Join/Leave.
func (h *Hub) Track(client *Client) {
	h.userMu.Lock()
	h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
	h.userMu.Unlock()

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	log.Info().Str("clientID", client.ID).Str("userID", client.UserID).Msg("relay: client connected")
}

// Untrack removes a connection from user tracking and from every room it
// still occupies.
func (h *Hub) Untrack(client *Client) {
	for _, roomId := range client.TrackedRooms() {
		h.Leave(roomId, client)
	}

	h.userMu.Lock()
	userClients := h.userClients[client.UserID]
	for i, c := range userClients {
		if c == client {
			h.userClients[client.UserID] = append(userClients[:i], userClients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.userMu.Unlock()

	log.Info().Str("clientID", client.ID).Str("userID", client.UserID).Msg("relay: client disconnected")
}

// Join adds a client to a room.
func (h *Hub) Join(roomId string, client *Client) {
	h.mu.Lock()
	if h.rooms[roomId] == nil {
		h.rooms[roomId] = make(map[*Client]struct{})
	}
	h.rooms[roomId][client] = struct{}{}
	roomSize := len(h.rooms[roomId])
	h.mu.Unlock()

	client.TrackRoom(roomId)

	log.Debug().Str("roomID", roomId).Str("clientID", client.ID).Int("roomSize", roomSize).Msg("relay: client joined room")
}

// Leave removes a client from a room, dropping the room when it empties.
func (h *Hub) Leave(roomId string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[roomId]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, roomId)
		}
	}
	h.mu.Unlock()

	client.UntrackRoom(roomId)

	log.Debug().Str("roomID", roomId).Str("clientID", client.ID).Msg("relay: client left room")
}

// InRoom reports whether the client currently occupies the room.
func (h *Hub) InRoom(roomId string, client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[roomId][client]
	return ok
}

// EmitToRoom sends an event to every active client in a room.
func (h *Hub) EmitToRoom(roomId string, event OutgoingEvent) {
	h.emitToRoom(roomId, event, nil)
}

// EmitToRoomExcept sends an event to every active client in a room but the
// given one.
func (h *Hub) EmitToRoomExcept(roomId string, event OutgoingEvent, except *Client) {
	h.emitToRoom(roomId, event, except)
}

func (h *Hub) emitToRoom(roomId string, event OutgoingEvent, except *Client) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomId).Msg("relay: failed to marshal event")
		return
	}

	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[roomId]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			if except != nil && client == except {
				continue
			}
			if client.IsActive() {
				targets = append(targets, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	h.deliver(targets, data, roomId)

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(targets))
	})

	log.Debug().Str("roomID", roomId).Int("targets", len(targets)).Str("event", event.Event).Msg("relay: room emission completed")
}

// EmitToUser sends an event to every connection of a user, regardless of
// room membership.
func (h *Hub) EmitToUser(userId string, event OutgoingEvent) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	h.userMu.RLock()
	clients := make([]*Client, len(h.userClients[userId]))
	copy(clients, h.userClients[userId])
	h.userMu.RUnlock()

	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("userID", userId).Msg("relay: failed to marshal event")
		return
	}

	var active []*Client
	for _, client := range clients {
		if client.IsActive() {
			active = append(active, client)
		}
	}
	h.deliver(active, data, "")

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(active))
	})
}

// EmitGlobalExceptUser sends an event to every connected client except the
// connections of one user. Used for presence fan-out.
func (h *Hub) EmitGlobalExceptUser(exceptUserId string, event OutgoingEvent) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("relay: failed to marshal event")
		return
	}

	h.userMu.RLock()
	var targets []*Client
	for userId, clients := range h.userClients {
		if userId == exceptUserId {
			continue
		}
		for _, client := range clients {
			if client.IsActive() {
				targets = append(targets, client)
			}
		}
	}
	h.userMu.RUnlock()

	h.deliver(targets, data, "")

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(targets))
	})
}

// deliver fans data out to clients with bounded concurrency. Slow consumers
// with a full buffer get closed rather than stall everyone else.
func (h *Hub) deliver(targets []*Client, data []byte, roomId string) {
	if len(targets) == 0 {
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 50)

	for _, client := range targets {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
			}()
			select {
			case c.Send <- data:
			case <-c.ctx.Done():
			default:
				log.Warn().Str("roomID", roomId).Str("clientID", c.ID).Msg("relay: slow consumer, dropping event")
				go c.Close()
			}
		}(client)
	}

	wg.Wait()
}

// RoomUsers returns the distinct user ids with an active connection in a
// room.
func (h *Hub) RoomUsers(roomId string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]struct{})
	var users []string
	for client := range h.rooms[roomId] {
		if !client.IsActive() {
			continue
		}
		if _, ok := seen[client.UserID]; ok {
			continue
		}
		seen[client.UserID] = struct{}{}
		users = append(users, client.UserID)
	}
	return users
}

// IsUserOnline reports whether the user has any active connection.
func (h *Hub) IsUserOnline(userId string) bool {
	h.userMu.RLock()
	defer h.userMu.RUnlock()

	for _, client := range h.userClients[userId] {
		if client.IsActive() {
			return true
		}
	}
	return false
}

// Stats returns a snapshot of hub counters.
func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	totalRooms := len(h.rooms)
	totalClients := 0
	for _, clients := range h.rooms {
		for client := range clients {
			if client.IsActive() {
				totalClients++
			}
		}
	}
	h.mu.RUnlock()

	h.statsMu.Lock()
	h.stats.TotalRooms = totalRooms
	h.stats.TotalClients = totalClients
	snapshot := h.stats
	h.statsMu.Unlock()

	return snapshot
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

func (h *Hub) cleanupRoutine() {
	defer h.cleanupTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.cleanupTicker.C:
			h.performCleanup()
		}
	}
}

func (h *Hub) performCleanup() {
	now := time.Now()
	inactiveThreshold := 2 * time.Minute

	var toRemove []*Client

	h.userMu.RLock()
	for _, clients := range h.userClients {
		for _, client := range clients {
			if !client.IsActive() || now.Sub(client.LastSeen()) > inactiveThreshold {
				toRemove = append(toRemove, client)
			}
		}
	}
	h.userMu.RUnlock()

	for _, client := range toRemove {
		log.Info().Str("clientID", client.ID).Msg("relay: cleaning up inactive client")
		client.Close()
	}

	if len(toRemove) > 0 {
		log.Debug().Int("cleaned", len(toRemove)).Msg("relay: cleanup routine completed")
	}
}

// Close shuts the hub down and closes every client connection.
func (h *Hub) Close() {
	log.Info().Msg("relay: shutting down hub")

	h.cancel()

	h.userMu.RLock()
	var allClients []*Client
	for _, clients := range h.userClients {
		allClients = append(allClients, clients...)
	}
	h.userMu.RUnlock()

	for _, client := range allClients {
		client.Close()
	}

	log.Info().Int("clients", len(allClients)).Msg("relay: hub shutdown completed")
}
