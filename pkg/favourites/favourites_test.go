package favourites

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	return NewStore(NewMemoryKV())
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	stationList, err := store.Add(ctx, FavouriteStation{StationID: "station1", Name: "Marienplatz"})
	require.NoError(t, err)
	require.Len(t, stationList, 1)
	assert.Equal(t, FavouriteStation{StationID: "station1", Name: "Marienplatz"}, stationList[0])

	t.Run("duplicate id is a no-op", func(t *testing.T) {
		stationList, err := store.Add(ctx, FavouriteStation{StationID: "station1", Name: "Renamed"})
		require.NoError(t, err)
		require.Len(t, stationList, 1)
		assert.Equal(t, "Marienplatz", stationList[0].Name, "stored name wins over a later add")
	})

	t.Run("insertion order is display order", func(t *testing.T) {
		_, err := store.Add(ctx, FavouriteStation{StationID: "station2", Name: "Hauptbahnhof"})
		require.NoError(t, err)

		stationList, err := store.Add(ctx, FavouriteStation{StationID: "station3", Name: "Sendlinger Tor"})
		require.NoError(t, err)

		require.Len(t, stationList, 3)
		assert.Equal(t, "station1", stationList[0].StationID)
		assert.Equal(t, "station2", stationList[1].StationID)
		assert.Equal(t, "station3", stationList[2].StationID)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	_, err := store.Add(ctx, FavouriteStation{StationID: "station1", Name: "Marienplatz"})
	require.NoError(t, err)
	_, err = store.Add(ctx, FavouriteStation{StationID: "station2", Name: "Hauptbahnhof"})
	require.NoError(t, err)

	stationList, err := store.Remove(ctx, "station1")
	require.NoError(t, err)
	require.Len(t, stationList, 1)
	assert.Equal(t, "station2", stationList[0].StationID)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		stationList, err := store.Remove(ctx, "station99")
		require.NoError(t, err)
		require.Len(t, stationList, 1)
		assert.Equal(t, "station2", stationList[0].StationID)
	})
}

func TestListRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv)

	_, err := store.Add(ctx, FavouriteStation{StationID: "station1", Name: "Marienplatz"})
	require.NoError(t, err)
	_, err = store.Add(ctx, FavouriteStation{StationID: "station2", Name: "Hauptbahnhof"})
	require.NoError(t, err)

	// A second store over the same slot sees the same collection.
	reloaded := NewStore(kv).List(ctx)
	assert.Equal(t, []FavouriteStation{
		{StationID: "station1", Name: "Marienplatz"},
		{StationID: "station2", Name: "Hauptbahnhof"},
	}, reloaded)
}

func TestListFailsOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("absent payload", func(t *testing.T) {
		assert.Empty(t, testStore(t).List(ctx))
	})

	t.Run("malformed payload", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, favouriteStationsKey, []byte(`{"not":"a list"`)))

		assert.Empty(t, NewStore(kv).List(ctx))
	})

	t.Run("mismatched stored shape", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, favouriteStationsKey, []byte(`{"stationId":"station1"}`)))

		assert.Empty(t, NewStore(kv).List(ctx))
	})
}

func TestTransportFilter(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	assert.Empty(t, store.TransportFilter(ctx))

	tags, err := store.SetTransportFilter(ctx, []string{"S1", "Bus", "S1", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "Bus"}, tags)
	assert.Equal(t, []string{"S1", "Bus"}, store.TransportFilter(ctx))

	t.Run("clearing the filter", func(t *testing.T) {
		tags, err := store.SetTransportFilter(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, tags)
		assert.Empty(t, store.TransportFilter(ctx))
	})
}

func TestRedisKV(t *testing.T) {
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	kv := &RedisKV{Client: client}

	ctx := context.Background()

	t.Run("absent key yields nil without error", func(t *testing.T) {
		value, err := kv.Get(ctx, "abfahrt.missing")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("round trip through redis", func(t *testing.T) {
		store := NewStore(kv)

		_, err := store.Add(ctx, FavouriteStation{StationID: "station1", Name: "Marienplatz"})
		require.NoError(t, err)

		reloaded := NewStore(kv).List(ctx)
		require.Len(t, reloaded, 1)
		assert.Equal(t, "Marienplatz", reloaded[0].Name)
	})
}
