package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registries(t *testing.T) map[string]Registry {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return map[string]Registry{
		"memory": NewMemoryRegistry(),
		"redis":  NewRedisRegistry(client, time.Hour),
	}
}

func TestActivateRevokeLifecycle(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			active, err := reg.IsActive(ctx, "key-1")
			require.NoError(t, err)
			assert.False(t, active, "registry starts empty")

			require.NoError(t, reg.Activate(ctx, "key-1"))

			active, err = reg.IsActive(ctx, "key-1")
			require.NoError(t, err)
			assert.True(t, active)

			removed, err := reg.Revoke(ctx, "key-1")
			require.NoError(t, err)
			assert.True(t, removed)

			active, err = reg.IsActive(ctx, "key-1")
			require.NoError(t, err)
			assert.False(t, active, "revoked key no longer active")

			// A second revoke observably reports the key as absent.
			removed, err = reg.Revoke(ctx, "key-1")
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}
}

func TestRevokeLeavesOtherKeysActive(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, reg.Activate(ctx, "key-a"))
			require.NoError(t, reg.Activate(ctx, "key-b"))

			removed, err := reg.Revoke(ctx, "key-a")
			require.NoError(t, err)
			assert.True(t, removed)

			active, err := reg.IsActive(ctx, "key-b")
			require.NoError(t, err)
			assert.True(t, active)
		})
	}
}

func TestMemoryRegistryConcurrentAccess(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			_ = reg.Activate(ctx, key)
			_, _ = reg.IsActive(ctx, key)
			_, _ = reg.Revoke(ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		active, err := reg.IsActive(ctx, fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		assert.False(t, active)
	}
}
