package relay

import (
	"context"
	"net/http"
	"time"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/dtos/message_dto"
	message_service "github.com/Mandalorian7773/Collabie/internal/use-case/message-case"
	"github.com/rs/zerolog/log"
)

// handleJoin only admits a client into its own identity room. Call rooms are
// entered through join-call-room, which gates on the call registry.
func (r *Relay) handleJoin(c *Client, data []byte) *app_error.AppError {
	var payload JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed join payload", "payload")
	}

	if payload.RoomID != c.UserID {
		return app_error.NewAppError(http.StatusForbidden, "cannot join another user's room", "roomId")
	}

	r.Hub.Join(payload.RoomID, c)
	c.Emit(OutgoingEvent{Event: EventJoined, Data: JoinPayload{RoomID: payload.RoomID}})
	return nil
}

func (r *Relay) handleLeave(c *Client, data []byte) *app_error.AppError {
	var payload JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed leave payload", "payload")
	}

	r.Hub.Leave(payload.RoomID, c)
	return nil
}

// handleSendMessage persists the message and fans receiveMessage out to both
// identity rooms, so every device of both participants converges. A
// self-conversation emits exactly once.
func (r *Relay) handleSendMessage(ctx context.Context, c *Client, data []byte) *app_error.AppError {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed message payload", "payload")
	}
	if payload.To == "" {
		return app_error.NewAppError(http.StatusBadRequest, "recipient is required", "to")
	}

	chatId := message_service.ChatIDFor(c.UserID, payload.To)
	message, err := r.Messages.Send(ctx, message_dto.SendMessageRequest{
		ChatID:      chatId,
		Content:     payload.Content,
		MessageType: payload.MessageType,
	}, c.UserID)
	if err != nil {
		return err
	}

	event := OutgoingEvent{Event: EventReceiveMessage, Data: message_dto.ToWSMessage(message)}
	r.Hub.EmitToRoom(payload.To, event)
	if payload.To != c.UserID {
		r.Hub.EmitToRoom(c.UserID, event)
	}
	return nil
}

// handleMarkAsRead flips unread messages in one conversation. The partner's
// identity room gets messagesMarkedAsRead (their other devices learn the
// messages were read); the calling connection gets readStatusUpdated
// directly. Re-marking an already-read conversation reports zero and still
// emits, so the operation is idempotent.
func (r *Relay) handleMarkAsRead(ctx context.Context, c *Client, data []byte) *app_error.AppError {
	var payload MarkAsReadPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed markAsRead payload", "payload")
	}
	if payload.With == "" {
		return app_error.NewAppError(http.StatusBadRequest, "conversation partner is required", "with")
	}

	chatId := message_service.ChatIDFor(c.UserID, payload.With)
	result, err := r.Messages.MarkRead(ctx, chatId, c.UserID)
	if err != nil {
		return err
	}

	r.Hub.EmitToRoom(payload.With, OutgoingEvent{
		Event: EventMessagesMarkedAsRead,
		Data: map[string]any{
			"chatId":      chatId,
			"readBy":      c.UserID,
			"markedCount": result.MessagesRead,
			"timestamp":   time.Now().Unix(),
		},
	})
	c.Emit(OutgoingEvent{
		Event: EventReadStatusUpdated,
		Data: map[string]any{
			"success":     true,
			"chatId":      chatId,
			"markedCount": result.MessagesRead,
		},
	})
	return nil
}

// handleTyping is fire-and-forget: nothing persists, the indicator goes to
// the partner's identity room only.
func (r *Relay) handleTyping(c *Client, data []byte) *app_error.AppError {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed typing payload", "payload")
	}
	if payload.To == "" {
		return app_error.NewAppError(http.StatusBadRequest, "recipient is required", "to")
	}

	r.Hub.EmitToRoom(payload.To, OutgoingEvent{
		Event: EventUserTyping,
		Data: map[string]any{
			"userId":   c.UserID,
			"isTyping": payload.IsTyping,
		},
	})
	return nil
}

// handleOnlineStatus stores the reported presence and broadcasts it to every
// connected client except the reporter's own connections.
func (r *Relay) handleOnlineStatus(ctx context.Context, c *Client, data []byte) *app_error.AppError {
	var payload OnlineStatusPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "malformed status payload", "payload")
	}

	var err *app_error.AppError
	if payload.IsOnline {
		err = r.Presence.SetOnline(ctx, c.UserID)
	} else {
		err = r.Presence.SetOffline(ctx, c.UserID)
	}
	if err != nil {
		log.Warn().Str("userID", c.UserID).Msg("relay: failed to persist presence update")
	}

	r.Hub.EmitGlobalExceptUser(c.UserID, OutgoingEvent{
		Event: EventUserOnlineStatusChanged,
		Data: map[string]any{
			"userId":   c.UserID,
			"isOnline": payload.IsOnline,
		},
	})
	return nil
}
