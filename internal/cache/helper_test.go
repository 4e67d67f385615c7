package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		client = nil
	})
	return mr
}

type cachedList struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var miss cachedList
	found, err := GetJSON(ctx, ListKey(1), &miss)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedList{ID: 1, Title: "Weekend Reads"}
	require.NoError(t, SetJSON(ctx, ListKey(1), want, ListTTL))

	var got cachedList
	found, err = GetJSON(ctx, ListKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestGetSetJSONNilClient(t *testing.T) {
	client = nil
	ctx := context.Background()

	var dest cachedList
	found, err := GetJSON(ctx, "list:1", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "list:1", cachedList{ID: 1}, time.Minute))
}

func TestAsidePopulatesOnMiss(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var dest cachedList
	fetch := func() error {
		calls++
		dest = cachedList{ID: 7, Title: "From the database"}
		return nil
	}

	require.NoError(t, Aside(ctx, ListKey(7), &dest, ListTTL, fetch))
	assert.Equal(t, 1, calls)

	// Second read is served from the cache; fetch stays untouched
	var again cachedList
	require.NoError(t, Aside(ctx, ListKey(7), &again, ListTTL, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, dest, again)
}

func TestAsideNilClientAlwaysFetches(t *testing.T) {
	client = nil
	ctx := context.Background()

	calls := 0
	var dest cachedList
	fetch := func() error {
		calls++
		dest = cachedList{ID: 2}
		return nil
	}

	require.NoError(t, Aside(ctx, ListKey(2), &dest, ListTTL, fetch))
	require.NoError(t, Aside(ctx, ListKey(2), &dest, ListTTL, fetch))
	assert.Equal(t, 2, calls)
}

func TestInvalidateList(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ListKey(3), cachedList{ID: 3}, ListTTL))
	require.True(t, mr.Exists(ListKey(3)))

	InvalidateList(ctx, 3)
	assert.False(t, mr.Exists(ListKey(3)))
}

func TestKeyFormats(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))
	assert.Equal(t, "list:7", ListKey(7))
	assert.Equal(t, "explore:front", ExploreKey("front"))
}
