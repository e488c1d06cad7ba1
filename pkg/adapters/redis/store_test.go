package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunStateStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	state := domain.NewState("session-ttl", "start")
	state.History = append(state.History, "agent-memory")
	require.NoError(t, store.Save(ctx, "session-ttl", state))

	assert.True(t, mr.Exists("wayfinder:session:session-ttl"))
	assert.Equal(t, time.Minute, mr.TTL("wayfinder:session:session-ttl"))

	loaded, err := store.Load(ctx, "session-ttl")
	require.NoError(t, err)
	assert.Equal(t, state.History, loaded.History)

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "session-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisStore_LoadRefreshesTTL(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", domain.NewState("s", "start")))
	mr.FastForward(40 * time.Second)

	_, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("wayfinder:session:s"))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("docs:"), redis.WithTTL(0))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", domain.NewState("a", "start")))
	assert.True(t, mr.Exists("docs:a"))
	assert.Equal(t, time.Duration(0), mr.TTL("docs:a"))
	assert.Equal(t, "docs:", store.Prefix())
	require.NoError(t, store.Ping(ctx))
}
