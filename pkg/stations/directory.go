package stations

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/abfahrt/abfahrt/pkg/mvg"
)

const directoryCacheKey = "abfahrt.station_directory"

// The operator directory changes on timetable updates, not per request.
const directoryExpiry = 12 * time.Hour

// StationSource provides the full station directory. Satisfied by *mvg.Client.
type StationSource interface {
	GetStations(ctx context.Context) ([]mvg.Station, error)
}

// Directory serves the station search index. The directory payload is cached
// (optionally through redis) and the index is rebuilt only when a fresh list
// is fetched, not per query.
type Directory struct {
	source StationSource
	cache  *cache.Cache[string]

	mu      sync.Mutex
	index   *Index
	expires time.Time
}

func NewDirectory(source StationSource) *Directory {
	return &Directory{
		source: source,
	}
}

// UseCache adds a redis-backed payload cache in front of the operator API.
func (d *Directory) UseCache(redisClient *redis.Client) {
	redisStore := redisstore.NewRedis(redisClient, store.WithExpiration(directoryExpiry))

	d.cache = cache.New[string](redisStore)
}

// Index returns the current search index, refreshing the directory when the
// previous one has expired. A refresh failure serves the stale index rather
// than none.
func (d *Directory) Index(ctx context.Context) (*Index, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.index != nil && time.Now().Before(d.expires) {
		return d.index, nil
	}

	stationList, err := d.fetch(ctx)
	if err != nil {
		if d.index != nil {
			log.Warn().Err(err).Msg("Station directory refresh failed, serving stale index")
			return d.index, nil
		}

		return nil, err
	}

	d.index = NewIndex(stationList)
	d.expires = time.Now().Add(directoryExpiry)

	log.Info().Int("stations", len(stationList)).Msg("Rebuilt station search index")

	return d.index, nil
}

func (d *Directory) fetch(ctx context.Context) ([]mvg.Station, error) {
	if d.cache != nil {
		if payload, err := d.cache.Get(ctx, directoryCacheKey); err == nil && payload != "" {
			var cached []mvg.Station
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return cached, nil
			}

			log.Warn().Msg("Discarding malformed cached station directory")
		}
	}

	stationList, err := d.source.GetStations(ctx)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if payload, err := json.Marshal(stationList); err == nil {
			if err := d.cache.Set(ctx, directoryCacheKey, string(payload)); err != nil {
				log.Warn().Err(err).Msg("Failed to cache station directory")
			}
		}
	}

	return stationList, nil
}
