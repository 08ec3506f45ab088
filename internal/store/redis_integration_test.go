//go:build integration
// +build integration

package store

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	redisContainer "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/ahrav/go-featurize/internal/domain"
)

// setupRedisContainer starts a real Redis container and returns a connected
// client. The container is terminated when the test completes.
func setupRedisContainer(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := redisContainer.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	_, err = client.Ping(ctx).Result()
	require.NoError(t, err)

	return client
}

func TestRedisStore_RoundTrip_RealRedis(t *testing.T) {
	client := setupRedisContainer(t)
	ctx := context.Background()

	store := NewRedisStore(client, "")
	state := testState()

	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestRedisStore_LoadMissing_RealRedis(t *testing.T) {
	client := setupRedisContainer(t)

	store := NewRedisStore(client, "featurize:test:absent")

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
	assert.Contains(t, err.Error(), "featurize:test:absent")
}

func TestRedisStore_LoadCorrupt_RealRedis(t *testing.T) {
	client := setupRedisContainer(t)
	ctx := context.Background()

	key := "featurize:test:corrupt"
	require.NoError(t, client.Set(ctx, key, `{"version":1,"state`, 0).Err())

	store := NewRedisStore(client, key)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateCorrupt)
}

func TestRedisStore_SaveReplacesExisting_RealRedis(t *testing.T) {
	client := setupRedisContainer(t)
	ctx := context.Background()

	store := NewRedisStore(client, "featurize:test:replace")
	require.NoError(t, store.Save(ctx, testState()))

	updated := testState()
	updated.Ordinals["Sex"]["U"] = 2
	require.NoError(t, store.Save(ctx, updated))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, loaded)
}
