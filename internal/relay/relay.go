package relay

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/metrics"
	presence_repo "github.com/Mandalorian7773/Collabie/internal/repo/presence"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	call_service "github.com/Mandalorian7773/Collabie/internal/use-case/call-case"
	message_service "github.com/Mandalorian7773/Collabie/internal/use-case/message-case"
)

const handleTimeout = 10 * time.Second

// Relay is the realtime event router. Every client frame lands in
// HandleEvent; persistence goes through the same services the HTTP layer
// uses, so the relay is the single mutation path for call membership while
// message and presence writes stay consistent with REST.
type Relay struct {
	Hub      *Hub
	Messages message_service.MessageServiceContract
	Calls    call_service.CallServiceContract
	Presence presence_repo.PresenceRepoContract
	Producer queue.Producer
}

func NewRelay(hub *Hub, messages message_service.MessageServiceContract, calls call_service.CallServiceContract, presence presence_repo.PresenceRepoContract, producer queue.Producer) *Relay {
	return &Relay{
		Hub:      hub,
		Messages: messages,
		Calls:    calls,
		Presence: presence,
		Producer: producer,
	}
}

// HandleConnect runs when a verified connection is established: the client
// is tracked, auto-joined to its identity room, and flagged online.
func (r *Relay) HandleConnect(c *Client) {
	r.Hub.Track(c)
	r.Hub.Join(c.UserID, c)
	metrics.RelayConnections.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := r.Presence.SetOnline(ctx, c.UserID); err != nil {
		log.Warn().Str("userID", c.UserID).Msg("relay: failed to set presence online")
	}
	r.Hub.EmitGlobalExceptUser(c.UserID, OutgoingEvent{
		Event: EventUserOnlineStatusChanged,
		Data: map[string]any{
			"userId":   c.UserID,
			"isOnline": true,
		},
	})
}

// HandleDisconnect runs the leave path for every room the client still
// occupies, then updates presence if this was the user's last connection.
func (r *Relay) HandleDisconnect(c *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	for _, roomId := range c.TrackedRooms() {
		if callId, ok := strings.CutPrefix(roomId, "call:"); ok {
			r.leaveCall(ctx, c, callId)
		}
	}

	r.Hub.Untrack(c)
	metrics.RelayConnections.Dec()

	if !r.Hub.IsUserOnline(c.UserID) {
		if err := r.Presence.SetOffline(ctx, c.UserID); err != nil {
			log.Warn().Str("userID", c.UserID).Msg("relay: failed to set presence offline")
		}
		r.Hub.EmitGlobalExceptUser(c.UserID, OutgoingEvent{
			Event: EventUserOnlineStatusChanged,
			Data: map[string]any{
				"userId":   c.UserID,
				"isOnline": false,
			},
		})
	}

	// Write-behind: last-active lands in Postgres via the worker pool.
	job := queue.Job{
		ID:   uuid.New().String(),
		Type: queue.JobTouchLastActive,
		Payload: queue.MustMarshal(queue.TouchLastActivePayload{
			UserID: c.UserID,
			At:     time.Now().Unix(),
		}),
		Priority:  3,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(time.Hour).Unix(),
	}
	if err := r.Producer.Enqueue(ctx, job); err != nil {
		log.Warn().Err(err).Str("userID", c.UserID).Msg("relay: failed to enqueue last-active job")
	}
}

// HandleEvent dispatches one decoded frame. Handler failures surface to the
// sender as an error event; call events use the call-error channel.
func (r *Relay) HandleEvent(c *Client, event IncomingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	metrics.RelayEventsTotal.WithLabelValues(event.Event).Inc()

	var err *app_error.AppError

	switch event.Event {
	case EventJoin:
		err = r.handleJoin(c, event.Data)
	case EventLeave:
		err = r.handleLeave(c, event.Data)
	case EventSendMessage:
		err = r.handleSendMessage(ctx, c, event.Data)
	case EventMarkAsRead:
		err = r.handleMarkAsRead(ctx, c, event.Data)
	case EventTyping:
		err = r.handleTyping(c, event.Data)
	case EventUpdateOnlineStatus:
		err = r.handleOnlineStatus(ctx, c, event.Data)

	case EventJoinCallRoom:
		err = r.handleJoinCallRoom(ctx, c, event.Data)
	case EventLeaveCallRoom:
		err = r.handleLeaveCallRoom(ctx, c, event.Data)
	case EventOffer, EventAnswer, EventIceCandidate:
		err = r.handleSignal(c, event.Event, event.Data)
	case EventToggleMute:
		err = r.handleToggleMute(c, event.Data)
	case EventToggleVideo:
		err = r.handleToggleVideo(c, event.Data)
	case EventScreenStart:
		err = r.handleScreenShare(c, event.Data, true)
	case EventScreenEnd:
		err = r.handleScreenShare(c, event.Data, false)

	case EventStartDirectCall:
		err = r.handleStartDirectCall(c, event.Data)
	case EventEndDirectCall:
		err = r.handleEndDirectCall(c, event.Data)
	case EventDirectCallOffer, EventDirectCallAnswer, EventDirectCallIce:
		err = r.handleDirectSignal(c, event.Event, event.Data)

	default:
		c.Emit(OutgoingEvent{Event: EventError, Data: ErrorPayload{Message: "unknown event: " + event.Event}})
		return
	}

	if err != nil {
		errorEvent := EventError
		if isCallEvent(event.Event) {
			errorEvent = EventCallError
		}
		c.Emit(OutgoingEvent{Event: errorEvent, Data: ErrorPayload{Message: err.Message}})
		log.Debug().Str("event", event.Event).Str("userID", c.UserID).Str("reason", err.Message).Msg("relay: event rejected")
	}
}

func isCallEvent(event string) bool {
	switch event {
	case EventJoinCallRoom, EventLeaveCallRoom, EventOffer, EventAnswer, EventIceCandidate,
		EventToggleMute, EventToggleVideo, EventScreenStart, EventScreenEnd,
		EventStartDirectCall, EventEndDirectCall, EventDirectCallOffer, EventDirectCallAnswer, EventDirectCallIce:
		return true
	}
	return false
}
