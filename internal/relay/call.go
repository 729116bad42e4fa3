package relay

import (
	"context"
	"net/http"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/rs/zerolog/log"
)

// handleJoinCallRoom gates room entry on the call registry: AddParticipant
// is an atomic update that only matches active calls, so joining an ended
// call fails before any room membership changes.
func (r *Relay) handleJoinCallRoom(ctx context.Context, c *Client, data []byte) *app_error.AppError {
	var payload CallRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed call payload", "payload")
	}

	call, err := r.Calls.Join(ctx, payload.CallID, c.UserID)
	if err != nil {
		return err
	}

	room := CallRoom(payload.CallID)
	r.Hub.Join(room, c)

	r.Hub.EmitToRoomExcept(room, OutgoingEvent{
		Event: EventUserJoinedCall,
		Data: map[string]any{
			"userId": c.UserID,
			"callId": payload.CallID,
		},
	}, c)
	c.Emit(OutgoingEvent{Event: EventJoinedCallRoom, Data: call})
	return nil
}

func (r *Relay) handleLeaveCallRoom(ctx context.Context, c *Client, data []byte) *app_error.AppError {
	var payload CallRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed call payload", "payload")
	}

	r.leaveCall(ctx, c, payload.CallID)
	c.Emit(OutgoingEvent{Event: EventLeftCallRoom, Data: CallRoomPayload{CallID: payload.CallID}})
	return nil
}

// leaveCall is shared between the explicit leave event and disconnect
// cleanup. The registry update runs even when the call has already ended;
// the room leave and fan-out always run.
func (r *Relay) leaveCall(ctx context.Context, c *Client, callId string) {
	if _, err := r.Calls.Leave(ctx, callId, c.UserID); err != nil {
		log.Debug().Str("callID", callId).Str("userID", c.UserID).Str("reason", err.Message).Msg("relay: call leave registry update skipped")
	}

	room := CallRoom(callId)
	r.Hub.Leave(room, c)
	r.Hub.EmitToRoom(room, OutgoingEvent{
		Event: EventUserLeftCall,
		Data: map[string]any{
			"userId": c.UserID,
			"callId": callId,
		},
	})
}

// handleSignal forwards offer/answer/ice-candidate frames verbatim to the
// call room, sender excluded. The relay never inspects SDP or candidates;
// targetUserId rides along so receiving clients can filter which peer the
// frame addresses.
func (r *Relay) handleSignal(c *Client, event string, data []byte) *app_error.AppError {
	var payload SignalPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed signal payload", "payload")
	}
	if payload.CallID == "" {
		return app_error.NewAppError(http.StatusBadRequest, "callId is required", "callId")
	}
	if payload.TargetUserID == "" {
		return app_error.NewAppError(http.StatusBadRequest, "targetUserId is required", "targetUserId")
	}
	if len(payload.Signal) == 0 {
		return app_error.NewAppError(http.StatusBadRequest, "signal payload is required", "signal")
	}

	room := CallRoom(payload.CallID)
	if !r.Hub.InRoom(room, c) {
		return app_error.NewAppError(http.StatusForbidden, "not in this call room", "callId")
	}

	r.Hub.EmitToRoomExcept(room, OutgoingEvent{
		Event: event,
		Data: map[string]any{
			"callId":       payload.CallID,
			"targetUserId": payload.TargetUserID,
			"senderUserId": c.UserID,
			"signal":       payload.Signal,
		},
	}, c)
	return nil
}

func (r *Relay) handleToggleMute(c *Client, data []byte) *app_error.AppError {
	var payload ToggleMutePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed mute payload", "payload")
	}

	room := CallRoom(payload.CallID)
	if !r.Hub.InRoom(room, c) {
		return app_error.NewAppError(http.StatusForbidden, "not in this call room", "callId")
	}

	r.Hub.EmitToRoomExcept(room, OutgoingEvent{
		Event: EventMuteChanged,
		Data: map[string]any{
			"userId":  c.UserID,
			"isMuted": payload.IsMuted,
		},
	}, c)
	return nil
}

func (r *Relay) handleToggleVideo(c *Client, data []byte) *app_error.AppError {
	var payload ToggleVideoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed video payload", "payload")
	}

	room := CallRoom(payload.CallID)
	if !r.Hub.InRoom(room, c) {
		return app_error.NewAppError(http.StatusForbidden, "not in this call room", "callId")
	}

	r.Hub.EmitToRoomExcept(room, OutgoingEvent{
		Event: EventVideoChanged,
		Data: map[string]any{
			"userId":     c.UserID,
			"isVideoOff": payload.IsVideoOff,
		},
	}, c)
	return nil
}

func (r *Relay) handleScreenShare(c *Client, data []byte, started bool) *app_error.AppError {
	var payload CallRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed screen share payload", "payload")
	}

	room := CallRoom(payload.CallID)
	if !r.Hub.InRoom(room, c) {
		return app_error.NewAppError(http.StatusForbidden, "not in this call room", "callId")
	}

	event := EventUserScreenEnd
	if started {
		event = EventUserScreenStart
	}

	r.Hub.EmitToRoomExcept(room, OutgoingEvent{
		Event: event,
		Data: map[string]any{
			"userId": c.UserID,
			"callId": payload.CallID,
		},
	}, c)
	return nil
}

// Direct calls bypass the call registry: signaling flows through the two
// identity rooms without a room of its own.
func (r *Relay) handleStartDirectCall(c *Client, data []byte) *app_error.AppError {
	var payload DirectCallPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed direct call payload", "payload")
	}
	if payload.To == "" {
		return app_error.NewAppError(http.StatusBadRequest, "recipient is required", "to")
	}

	r.Hub.EmitToRoom(payload.To, OutgoingEvent{
		Event: EventIncomingDirect,
		Data: map[string]any{
			"from":     c.UserID,
			"callType": payload.CallType,
		},
	})
	return nil
}

func (r *Relay) handleEndDirectCall(c *Client, data []byte) *app_error.AppError {
	var payload DirectCallPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed direct call payload", "payload")
	}
	if payload.To == "" {
		return app_error.NewAppError(http.StatusBadRequest, "recipient is required", "to")
	}

	r.Hub.EmitToRoom(payload.To, OutgoingEvent{
		Event: EventDirectCallEnded,
		Data: map[string]any{
			"from": c.UserID,
		},
	})
	return nil
}

func (r *Relay) handleDirectSignal(c *Client, event string, data []byte) *app_error.AppError {
	var payload DirectCallPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed direct signal payload", "payload")
	}
	if payload.To == "" {
		return app_error.NewAppError(http.StatusBadRequest, "recipient is required", "to")
	}

	r.Hub.EmitToRoom(payload.To, OutgoingEvent{
		Event: event,
		Data: map[string]any{
			"from":   c.UserID,
			"signal": payload.Signal,
		},
	})
	return nil
}
