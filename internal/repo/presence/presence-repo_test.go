package presence_repo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mandalorian7773/Collabie/state"
)

func newTestRepo(t *testing.T) PresenceRepoContract {
	t.Helper()

	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewPresenceRepo(&state.AppState{Redis: client})
}

func TestPresence_SetOnlineAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.Nil(t, repo.SetOnline(ctx, "alice"))

	presence, err := repo.Get(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "alice", presence.UserID)
	assert.True(t, presence.IsOnline)
	assert.False(t, presence.LastSeen.IsZero())

	online, err := repo.ListOnline(ctx)
	require.Nil(t, err)
	assert.Contains(t, online, "alice")
}

func TestPresence_SetOffline(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.Nil(t, repo.SetOnline(ctx, "alice"))
	require.Nil(t, repo.SetOffline(ctx, "alice"))

	presence, err := repo.Get(ctx, "alice")
	require.Nil(t, err)
	assert.False(t, presence.IsOnline)
	// Last seen survives going offline.
	assert.False(t, presence.LastSeen.IsZero())

	online, err := repo.ListOnline(ctx)
	require.Nil(t, err)
	assert.NotContains(t, online, "alice")
}

func TestPresence_GetUnknownDefaultsOffline(t *testing.T) {
	repo := newTestRepo(t)

	presence, err := repo.Get(context.Background(), "ghost")

	require.Nil(t, err)
	assert.Equal(t, "ghost", presence.UserID)
	assert.False(t, presence.IsOnline)
	assert.True(t, presence.LastSeen.IsZero())
}

func TestPresence_ListOnlineDistinct(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.Nil(t, repo.SetOnline(ctx, "alice"))
	require.Nil(t, repo.SetOnline(ctx, "alice"))
	require.Nil(t, repo.SetOnline(ctx, "bob"))

	online, err := repo.ListOnline(ctx)
	require.Nil(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, online)
}
