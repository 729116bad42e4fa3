package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProducer(t *testing.T) (Producer, *redis.Client) {
	t.Helper()

	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewProducer(client), client
}

func TestEnqueue_StoresJobWithPriorityScore(t *testing.T) {
	producer, client := newTestProducer(t)
	ctx := context.Background()

	expireAt := time.Now().Add(time.Hour).Unix()
	job := Job{
		ID:       "job-1",
		Type:     JobSendVerificationOTP,
		Payload:  MustMarshal(OTPPayload{UserID: "alice", Email: "alice@example.com"}),
		Priority: 1,
		MaxRetry: 3,
		ExpireAt: expireAt,
	}

	require.NoError(t, producer.Enqueue(ctx, job))

	entries, err := client.ZRangeWithScores(ctx, QueueKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, float64(1)*1e10+float64(expireAt), entries[0].Score)

	var stored Job
	require.NoError(t, json.Unmarshal([]byte(entries[0].Member.(string)), &stored))
	assert.Equal(t, "job-1", stored.ID)
	assert.Equal(t, JobSendVerificationOTP, stored.Type)

	var payload OTPPayload
	require.NoError(t, json.Unmarshal(stored.Payload, &payload))
	assert.Equal(t, "alice", payload.UserID)
}

func TestEnqueue_HigherPriorityOrdersLater(t *testing.T) {
	producer, client := newTestProducer(t)
	ctx := context.Background()

	expireAt := time.Now().Add(time.Hour).Unix()
	low := Job{ID: "low", Type: JobTouchLastActive, Priority: 0, ExpireAt: expireAt}
	high := Job{ID: "high", Type: JobSendVerificationOTP, Priority: 2, ExpireAt: expireAt}

	require.NoError(t, producer.Enqueue(ctx, high))
	require.NoError(t, producer.Enqueue(ctx, low))

	// Workers pop from the low end of the score range, so priority 0 runs first.
	entries, err := client.ZRange(ctx, QueueKey, 0, 0).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var first Job
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &first))
	assert.Equal(t, "low", first.ID)
}
