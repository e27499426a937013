package cache_test

import (
	"testing"
	"time"

	"github.com/2beens/fitnessdash/internal/cache"
	testingpkg "github.com/2beens/fitnessdash/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_LiveRedis(t *testing.T) {
	ctx, rdb := testingpkg.GetRedisClientAndCtx(t)
	store := cache.NewRedisStore(rdb, "fitnessdash-test::")
	t.Cleanup(func() {
		_ = store.Delete(ctx, "live")
	})

	require.NoError(t, store.Set(ctx, "live", []byte("value"), time.Minute))
	val, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	ttl, err := rdb.TTL(ctx, "fitnessdash-test::live").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "live"))
	_, err = store.Get(ctx, "live")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
