package favourites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/abfahrt/abfahrt/pkg/util"
)

// Fixed, versionless persistence keys. A payload that no longer parses is
// treated as absent rather than migrated.
const (
	favouriteStationsKey = "abfahrt.favourite_stations"
	transportFilterKey   = "abfahrt.transport_filter"
)

// FavouriteStation is a user-selected station persisted for repeated
// viewing. StationID is the uniqueness key; insertion order is display order.
type FavouriteStation struct {
	StationID string `json:"stationId" groups:"basic"`
	Name      string `json:"name" groups:"basic"`
}

// Store persists the favourite stations and the transportation allow-list
// through an injected KV slot. All operations are synchronous from the
// caller's perspective.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{
		kv: kv,
	}
}

// List returns the last persisted collection. An absent or unparseable
// payload yields an empty collection, never an error - persistence failures
// must not take the dashboard down.
func (s *Store) List(ctx context.Context) []FavouriteStation {
	payload, err := s.kv.Get(ctx, favouriteStationsKey)
	if err != nil {
		log.Warn().Err(err).Msg("Failed reading favourite stations, starting empty")
		return []FavouriteStation{}
	}

	if payload == nil {
		return []FavouriteStation{}
	}

	var stationList []FavouriteStation
	if err := json.Unmarshal(payload, &stationList); err != nil {
		log.Warn().Err(err).Msg("Discarding malformed favourite stations payload")
		return []FavouriteStation{}
	}

	return stationList
}

// Add appends a station unless its StationID is already present, in which
// case the stored entry (including its name) is kept as-is. Returns the
// resulting collection.
func (s *Store) Add(ctx context.Context, favourite FavouriteStation) ([]FavouriteStation, error) {
	stationList := s.List(ctx)

	for _, existing := range stationList {
		if existing.StationID == favourite.StationID {
			return stationList, nil
		}
	}

	stationList = append(stationList, favourite)

	if err := s.persist(ctx, favouriteStationsKey, stationList); err != nil {
		return nil, err
	}

	return stationList, nil
}

// Remove deletes the entry with the given StationID. Removing an unknown id
// is a no-op.
func (s *Store) Remove(ctx context.Context, stationID string) ([]FavouriteStation, error) {
	stationList := s.List(ctx)

	util.InPlaceFilter(&stationList, func(favourite FavouriteStation) bool {
		return favourite.StationID != stationID
	})

	if err := s.persist(ctx, favouriteStationsKey, stationList); err != nil {
		return nil, err
	}

	return stationList, nil
}

// TransportFilter returns the persisted transportation-type allow-list. An
// empty list means no filtering.
func (s *Store) TransportFilter(ctx context.Context) []string {
	payload, err := s.kv.Get(ctx, transportFilterKey)
	if err != nil || payload == nil {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal(payload, &tags); err != nil {
		log.Warn().Err(err).Msg("Discarding malformed transport filter payload")
		return []string{}
	}

	return tags
}

// SetTransportFilter replaces the allow-list, dropping duplicates and empty
// tags.
func (s *Store) SetTransportFilter(ctx context.Context, tags []string) ([]string, error) {
	tags = util.RemoveDuplicateStrings(tags, []string{})
	if tags == nil {
		tags = []string{}
	}

	if err := s.persist(ctx, transportFilterKey, tags); err != nil {
		return nil, err
	}

	return tags, nil
}

func (s *Store) persist(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := s.kv.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}

	return nil
}
