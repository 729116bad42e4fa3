package relay

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mandalorian7773/Collabie/internal/dtos/call_dto"
	"github.com/Mandalorian7773/Collabie/internal/dtos/message_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	"github.com/Mandalorian7773/Collabie/internal/utils/types"
)

type fakeMessages struct {
	sent     []message_dto.SendMessageRequest
	markRead int64
}

func (f *fakeMessages) Send(ctx context.Context, req message_dto.SendMessageRequest, senderId string) (*message_dto.MessageResponse, *app_error.AppError) {
	f.sent = append(f.sent, req)
	return &message_dto.MessageResponse{
		ID:          "msg-1",
		ChatID:      req.ChatID,
		SenderID:    senderId,
		Content:     req.Content,
		MessageType: req.MessageType,
	}, nil
}

func (f *fakeMessages) GetConversation(ctx context.Context, chatId string, limit int64, before *string) ([]*message_dto.MessageResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeMessages) MarkRead(ctx context.Context, chatId, readerId string) (*message_dto.MarkReadResponse, *app_error.AppError) {
	read := f.markRead
	f.markRead = 0
	return &message_dto.MarkReadResponse{ChatID: chatId, MessagesRead: read}, nil
}

func (f *fakeMessages) Delete(ctx context.Context, messageId, userId string) *app_error.AppError {
	return nil
}

type fakeCalls struct {
	joinErr *app_error.AppError
	joined  []string
	left    []string
}

func (f *fakeCalls) Start(ctx context.Context, req call_dto.StartCallRequest, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	return &call_dto.CallResponse{ID: "call-1", RoomID: req.RoomID, Type: req.Type}, nil
}

func (f *fakeCalls) End(ctx context.Context, callId, status, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	return &call_dto.CallResponse{ID: callId, Status: "ended"}, nil
}

func (f *fakeCalls) Join(ctx context.Context, callId, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	f.joined = append(f.joined, callId)
	return &call_dto.CallResponse{ID: callId, Status: "active", Participants: []string{userId}}, nil
}

func (f *fakeCalls) Leave(ctx context.Context, callId, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	f.left = append(f.left, callId)
	return &call_dto.CallResponse{ID: callId, Status: "active"}, nil
}

func (f *fakeCalls) Get(ctx context.Context, callId string) (*call_dto.CallResponse, *app_error.AppError) {
	return &call_dto.CallResponse{ID: callId}, nil
}

func (f *fakeCalls) ActiveByRoom(ctx context.Context, roomId string) ([]*call_dto.CallResponse, *app_error.AppError) {
	return nil, nil
}

func (f *fakeCalls) ActiveByUser(ctx context.Context, userId string) ([]*call_dto.CallResponse, *app_error.AppError) {
	return nil, nil
}

type fakePresence struct {
	online  []string
	offline []string
}

func (f *fakePresence) SetOnline(ctx context.Context, userId string) *app_error.AppError {
	f.online = append(f.online, userId)
	return nil
}

func (f *fakePresence) SetOffline(ctx context.Context, userId string) *app_error.AppError {
	f.offline = append(f.offline, userId)
	return nil
}

func (f *fakePresence) Get(ctx context.Context, userId string) (*types.Presence, *app_error.AppError) {
	return &types.Presence{UserID: userId}, nil
}

func (f *fakePresence) ListOnline(ctx context.Context) ([]string, *app_error.AppError) {
	return f.online, nil
}

type fakeProducer struct {
	jobs []queue.Job
}

func (f *fakeProducer) Enqueue(ctx context.Context, job queue.Job) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func newTestRelay() (*Relay, *fakeMessages, *fakeCalls, *fakePresence, *fakeProducer) {
	messages := &fakeMessages{}
	calls := &fakeCalls{}
	presence := &fakePresence{}
	producer := &fakeProducer{}
	return NewRelay(NewHub(), messages, calls, presence, producer), messages, calls, presence, producer
}

func mustRaw(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHandleJoin_OwnRoomOnly(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	client := newTestClient("alice")
	relay.Hub.Track(client)

	relay.HandleEvent(client, IncomingEvent{Event: EventJoin, Data: mustRaw(t, JoinPayload{RoomID: "bob"})})

	event := recvEvent(t, client)
	assert.Equal(t, EventError, event.Event)
	assert.False(t, relay.Hub.InRoom("bob", client))
}

func TestHandleJoin_OwnRoom(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	client := newTestClient("alice")
	relay.Hub.Track(client)

	relay.HandleEvent(client, IncomingEvent{Event: EventJoin, Data: mustRaw(t, JoinPayload{RoomID: "alice"})})

	// Successful joins are acknowledged.
	event := recvEvent(t, client)
	assert.Equal(t, EventJoined, event.Event)
	assert.True(t, relay.Hub.InRoom("alice", client))
}

func TestHandleSendMessage_FanOut(t *testing.T) {
	relay, messages, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	relay.Hub.Join("alice", alice)
	relay.Hub.Join("bob", bob)

	relay.HandleEvent(alice, IncomingEvent{Event: EventSendMessage, Data: mustRaw(t, SendMessagePayload{
		To:      "bob",
		Content: "hello",
	})})

	require.Len(t, messages.sent, 1)
	assert.Equal(t, "alice:bob", messages.sent[0].ChatID)

	// Both identity rooms converge on the same receiveMessage event, with
	// the socket frame carrying camelCase keys.
	received := recvEvent(t, bob)
	assert.Equal(t, EventReceiveMessage, received.Event)
	frame, ok := received.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", frame["senderId"])
	assert.Contains(t, frame, "chatId")
	assert.Contains(t, frame, "messageType")

	assert.Equal(t, EventReceiveMessage, recvEvent(t, alice).Event)
}

func TestHandleSendMessage_SelfConversationEmitsOnce(t *testing.T) {
	relay, messages, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	alice := newTestClient("alice")
	relay.Hub.Join("alice", alice)

	relay.HandleEvent(alice, IncomingEvent{Event: EventSendMessage, Data: mustRaw(t, SendMessagePayload{
		To:      "alice",
		Content: "note to self",
	})})

	require.Len(t, messages.sent, 1)
	assert.Equal(t, EventReceiveMessage, recvEvent(t, alice).Event)
	assertNoEvent(t, alice)
}

func TestHandleMarkAsRead_EmitsBothSides(t *testing.T) {
	relay, messages, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()
	messages.markRead = 3

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	relay.Hub.Join("alice", alice)
	relay.Hub.Join("bob", bob)

	relay.HandleEvent(alice, IncomingEvent{Event: EventMarkAsRead, Data: mustRaw(t, MarkAsReadPayload{With: "bob"})})

	// The partner's room learns the messages were read; the caller gets the
	// direct acknowledgement.
	partnerSide := recvEvent(t, bob)
	assert.Equal(t, EventMessagesMarkedAsRead, partnerSide.Event)
	partnerFrame, ok := partnerSide.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", partnerFrame["readBy"])
	assert.Equal(t, float64(3), partnerFrame["markedCount"])
	assert.Contains(t, partnerFrame, "timestamp")

	callerSide := recvEvent(t, alice)
	assert.Equal(t, EventReadStatusUpdated, callerSide.Event)
	callerFrame, ok := callerSide.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, callerFrame["success"])
	assert.Equal(t, float64(3), callerFrame["markedCount"])

	// Re-marking reports zero but still emits to both sides.
	relay.HandleEvent(alice, IncomingEvent{Event: EventMarkAsRead, Data: mustRaw(t, MarkAsReadPayload{With: "bob"})})

	assert.Equal(t, EventMessagesMarkedAsRead, recvEvent(t, bob).Event)
	assert.Equal(t, EventReadStatusUpdated, recvEvent(t, alice).Event)
}

func TestJoinCallRoom_RejectedWhenRegistryFails(t *testing.T) {
	relay, _, calls, _, _ := newTestRelay()
	defer relay.Hub.cancel()
	calls.joinErr = app_error.NewAppError(http.StatusConflict, "call is not active", "call")

	client := newTestClient("alice")
	relay.Hub.Track(client)

	relay.HandleEvent(client, IncomingEvent{Event: EventJoinCallRoom, Data: mustRaw(t, CallRoomPayload{CallID: "call-1"})})

	event := recvEvent(t, client)
	assert.Equal(t, EventCallError, event.Event)
	assert.False(t, relay.Hub.InRoom(CallRoom("call-1"), client))
}

func TestJoinCallRoom_Success(t *testing.T) {
	relay, _, calls, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	client := newTestClient("alice")
	relay.Hub.Track(client)

	relay.HandleEvent(client, IncomingEvent{Event: EventJoinCallRoom, Data: mustRaw(t, CallRoomPayload{CallID: "call-1"})})

	assert.Equal(t, []string{"call-1"}, calls.joined)
	assert.True(t, relay.Hub.InRoom(CallRoom("call-1"), client))
	assert.Equal(t, EventJoinedCallRoom, recvEvent(t, client).Event)
}

func testSignal(callId, target string) SignalPayload {
	return SignalPayload{
		CallID:       callId,
		TargetUserID: target,
		Signal:       []byte(`{"sdp":"v=0"}`),
	}
}

func TestSignal_RequiresRoomMembership(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	client := newTestClient("alice")
	relay.Hub.Track(client)

	relay.HandleEvent(client, IncomingEvent{Event: EventOffer, Data: mustRaw(t, testSignal("call-1", "bob"))})

	event := recvEvent(t, client)
	assert.Equal(t, EventCallError, event.Event)
}

func TestSignal_RequiredFields(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	room := CallRoom("call-1")
	relay.Hub.Join(room, alice)
	relay.Hub.Join(room, bob)

	// Missing targetUserId.
	relay.HandleEvent(alice, IncomingEvent{Event: EventOffer, Data: mustRaw(t, SignalPayload{
		CallID: "call-1",
		Signal: []byte(`{"sdp":"v=0"}`),
	})})
	assert.Equal(t, EventCallError, recvEvent(t, alice).Event)
	assertNoEvent(t, bob)

	// Missing signal body.
	relay.HandleEvent(alice, IncomingEvent{Event: EventIceCandidate, Data: mustRaw(t, SignalPayload{
		CallID:       "call-1",
		TargetUserID: "bob",
	})})
	assert.Equal(t, EventCallError, recvEvent(t, alice).Event)
	assertNoEvent(t, bob)
}

func TestSignal_ForwardedExceptSender(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	room := CallRoom("call-1")
	relay.Hub.Join(room, alice)
	relay.Hub.Join(room, bob)

	relay.HandleEvent(alice, IncomingEvent{Event: EventOffer, Data: mustRaw(t, testSignal("call-1", "bob"))})

	forwarded := recvEvent(t, bob)
	assert.Equal(t, EventOffer, forwarded.Event)
	frame, ok := forwarded.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bob", frame["targetUserId"])
	assert.Equal(t, "alice", frame["senderUserId"])
	assertNoEvent(t, alice)
}

func TestDisconnect_LeavesCallRooms(t *testing.T) {
	relay, _, calls, presence, producer := newTestRelay()
	defer relay.Hub.cancel()

	client := newTestClient("alice")
	relay.Hub.Track(client)
	relay.Hub.Join("alice", client)
	relay.Hub.Join(CallRoom("call-1"), client)

	relay.HandleDisconnect(client)

	assert.Equal(t, []string{"call-1"}, calls.left)
	assert.False(t, relay.Hub.InRoom(CallRoom("call-1"), client))
	assert.Equal(t, []string{"alice"}, presence.offline)

	require.Len(t, producer.jobs, 1)
	assert.Equal(t, queue.JobTouchLastActive, producer.jobs[0].Type)
}

func TestDisconnect_PresenceStaysWhileOtherConnectionRemains(t *testing.T) {
	relay, _, _, presence, _ := newTestRelay()
	defer relay.Hub.cancel()

	first := newTestClient("alice")
	second := newTestClient("alice")
	relay.Hub.Track(first)
	relay.Hub.Track(second)

	relay.HandleDisconnect(first)

	assert.Empty(t, presence.offline, "presence should not flip offline while a connection remains")
}

func TestDirectCall_RoutedToRecipientRoom(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	alice := newTestClient("alice")
	bob := newTestClient("bob")
	relay.Hub.Join("alice", alice)
	relay.Hub.Join("bob", bob)

	relay.HandleEvent(alice, IncomingEvent{Event: EventStartDirectCall, Data: mustRaw(t, DirectCallPayload{To: "bob", CallType: "video"})})

	assert.Equal(t, EventIncomingDirect, recvEvent(t, bob).Event)
	assertNoEvent(t, alice)
}

func TestUnknownEvent(t *testing.T) {
	relay, _, _, _, _ := newTestRelay()
	defer relay.Hub.cancel()

	client := newTestClient("alice")
	relay.HandleEvent(client, IncomingEvent{Event: "bogus"})

	assert.Equal(t, EventError, recvEvent(t, client).Event)
}
