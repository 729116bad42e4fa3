package relay

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client -> server events.
const (
	EventJoin               = "join"
	EventLeave              = "leave"
	EventSendMessage        = "sendMessage"
	EventMarkAsRead         = "markAsRead"
	EventTyping             = "typing"
	EventUpdateOnlineStatus = "updateOnlineStatus"

	EventJoinCallRoom  = "join-call-room"
	EventLeaveCallRoom = "leave-call-room"
	EventOffer         = "offer"
	EventAnswer        = "answer"
	EventIceCandidate  = "ice-candidate"
	EventToggleMute    = "toggle-mute"
	EventToggleVideo   = "toggle-video"
	EventScreenStart   = "screen-share-started"
	EventScreenEnd     = "screen-share-ended"

	EventStartDirectCall  = "start-direct-call"
	EventEndDirectCall    = "end-direct-call"
	EventDirectCallOffer  = "direct-call-offer"
	EventDirectCallAnswer = "direct-call-answer"
	EventDirectCallIce    = "direct-call-ice-candidate"
)

// Server -> client events.
const (
	EventError                   = "error"
	EventCallError               = "call-error"
	EventJoined                  = "joined"
	EventReceiveMessage          = "receiveMessage"
	EventMessagesMarkedAsRead    = "messagesMarkedAsRead"
	EventReadStatusUpdated       = "readStatusUpdated"
	EventUserTyping              = "userTyping"
	EventUserOnlineStatusChanged = "userOnlineStatusChanged"

	EventJoinedCallRoom  = "joined-call-room"
	EventLeftCallRoom    = "left-call-room"
	EventUserJoinedCall  = "user-joined-call"
	EventUserLeftCall    = "user-left-call"
	EventMuteChanged     = "user-mute-status-changed"
	EventVideoChanged    = "user-video-status-changed"
	EventUserScreenStart = "user-screen-share-started"
	EventUserScreenEnd   = "user-screen-share-ended"
	EventIncomingDirect  = "incoming-direct-call"
	EventDirectCallEnded = "direct-call-ended"
)

// IncomingEvent is the envelope every client frame carries.
type IncomingEvent struct {
	Event string              `json:"event"`
	Data  jsoniter.RawMessage `json:"data"`
}

// OutgoingEvent is the envelope for every server emission.
type OutgoingEvent struct {
	Event     string `json:"event"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

type JoinPayload struct {
	RoomID string `json:"roomId"`
}

type SendMessagePayload struct {
	To          string `json:"to"`
	Content     string `json:"content"`
	MessageType string `json:"messageType,omitempty"`
}

type MarkAsReadPayload struct {
	With string `json:"with"`
}

type TypingPayload struct {
	To       string `json:"to"`
	IsTyping bool   `json:"isTyping"`
}

type OnlineStatusPayload struct {
	IsOnline bool `json:"isOnline"`
}

type CallRoomPayload struct {
	CallID string `json:"callId"`
}

type SignalPayload struct {
	CallID       string              `json:"callId"`
	TargetUserID string              `json:"targetUserId"`
	Signal       jsoniter.RawMessage `json:"signal"`
}

type ToggleMutePayload struct {
	CallID  string `json:"callId"`
	IsMuted bool   `json:"isMuted"`
}

type ToggleVideoPayload struct {
	CallID     string `json:"callId"`
	IsVideoOff bool   `json:"isVideoOff"`
}

type DirectCallPayload struct {
	To       string              `json:"to"`
	CallType string              `json:"callType,omitempty"`
	Signal   jsoniter.RawMessage `json:"signal,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
