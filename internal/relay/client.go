package relay

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MB
	sendBufferSize = 256
)

// Client is one websocket connection bound to a verified identity. A user
// may hold several clients (tabs, devices); each tracks the rooms it joined
// so disconnect cleanup can run leave logic per room.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	rooms map[string]struct{}
	mu    sync.RWMutex

	lastSeen   time.Time
	lastSeenMu sync.RWMutex

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewClient(id, userId string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:       id,
		UserID:   userId,
		Conn:     conn,
		Send:     make(chan []byte, sendBufferSize),
		rooms:    make(map[string]struct{}),
		lastSeen: time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (c *Client) IsActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

func (c *Client) LastSeen() time.Time {
	c.lastSeenMu.RLock()
	defer c.lastSeenMu.RUnlock()
	return c.lastSeen
}

func (c *Client) touch() {
	c.lastSeenMu.Lock()
	c.lastSeen = time.Now()
	c.lastSeenMu.Unlock()
}

func (c *Client) TrackRoom(roomId string) {
	c.mu.Lock()
	c.rooms[roomId] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) UntrackRoom(roomId string) {
	c.mu.Lock()
	delete(c.rooms, roomId)
	c.mu.Unlock()
}

func (c *Client) TrackedRooms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]string, 0, len(c.rooms))
	for roomId := range c.rooms {
		rooms = append(rooms, roomId)
	}
	return rooms
}

// Emit queues an event for this client only.
func (c *Client) Emit(event OutgoingEvent) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("clientID", c.ID).Msg("relay: failed to marshal client event")
		return
	}

	select {
	case c.Send <- data:
	case <-c.ctx.Done():
	default:
		log.Warn().Str("clientID", c.ID).Msg("relay: client buffer full, dropping event")
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.Conn.Close()
	})
}

// writePump drains the send buffer to the socket and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(msg); err != nil {
				_ = w.Close()
				return
			}
			_ = w.Close()

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump decodes incoming frames and hands them to the relay. The deferred
// disconnect path runs room-leave logic through the relay before the hub
// forgets the connection.
func (c *Client) readPump(relay *Relay) {
	defer func() {
		relay.HandleDisconnect(c)
		close(c.Send)
		c.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.touch()
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("clientID", c.ID).Msg("relay: unexpected close")
			}
			break
		}

		c.touch()

		var event IncomingEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			c.Emit(OutgoingEvent{Event: EventError, Data: ErrorPayload{Message: "malformed event"}})
			continue
		}

		relay.HandleEvent(c, event)
	}
}
