package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/abfahrt/abfahrt/pkg/board"
	"github.com/abfahrt/abfahrt/pkg/favourites"
	"github.com/abfahrt/abfahrt/pkg/mvg"
)

// SectionState is the lifecycle of one station's dashboard section.
type SectionState string

const (
	SectionStateIdle    SectionState = "Idle"
	SectionStateLoading SectionState = "Loading"
	SectionStateLoaded  SectionState = "Loaded"
	SectionStateFailed  SectionState = "Failed"
)

const maxConcurrentFetches = 8

// DepartureSource provides departures for a station. Satisfied by *mvg.Client.
type DepartureSource interface {
	GetDepartures(ctx context.Context, stationID string, limit int) ([]mvg.Departure, error)
}

// SectionView is the rendered-state snapshot of one section.
type SectionView struct {
	StationID  string       `json:"stationId" groups:"basic"`
	Name       string       `json:"name" groups:"basic"`
	State      SectionState `json:"state" groups:"basic"`
	Rows       []board.Row  `json:"rows" groups:"basic"`
	Error      string       `json:"error,omitempty" groups:"basic"`
	Generation uint64       `json:"generation" groups:"detailed"`
}

type section struct {
	stationID string
	name      string

	state      SectionState
	rows       []board.Row
	err        string
	generation uint64
}

// Controller drives one dashboard: an ordered set of per-station sections,
// each with an independent state slot. Sections move Idle -> Loading ->
// Loaded/Failed; a failure is scoped to its own section.
//
// Every fetch carries the generation its section had when it started. The
// result is applied only if the generation still matches, so a slow stale
// fetch resolving after a refresh (or after the station was removed) has
// nowhere to write. Fetches are never cancelled, only invalidated, and no
// timeout is enforced - a hung fetch leaves its section Loading until the
// next refresh bumps the generation.
type Controller struct {
	source DepartureSource
	limit  int

	mu       sync.Mutex
	sections map[string]*section
	order    []string

	// OnTransition, when set, is called after every section state change.
	// Set it before the controller is used; it runs outside the lock.
	OnTransition func(stationID string, state SectionState)
}

func NewController(source DepartureSource, limit int) *Controller {
	if limit <= 0 {
		limit = mvg.DefaultDepartureLimit
	}

	return &Controller{
		source:   source,
		limit:    limit,
		sections: map[string]*section{},
	}
}

// AddStation creates a section for a favourite station and loads it. Adding
// an already-present station is a no-op, mirroring the favourites store.
func (c *Controller) AddStation(ctx context.Context, favourite favourites.FavouriteStation) {
	c.mu.Lock()
	if _, exists := c.sections[favourite.StationID]; exists {
		c.mu.Unlock()
		return
	}

	c.sections[favourite.StationID] = &section{
		stationID: favourite.StationID,
		name:      favourite.Name,
		state:     SectionStateIdle,
	}
	c.order = append(c.order, favourite.StationID)
	c.mu.Unlock()

	c.notify(favourite.StationID, SectionStateIdle)

	c.Refresh(ctx, favourite.StationID)
}

// RemoveStation discards a section entirely. Any in-flight fetch for it is
// left to resolve into nowhere.
func (c *Controller) RemoveStation(stationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sections[stationID]; !exists {
		return
	}

	delete(c.sections, stationID)

	for i, id := range c.order {
		if id == stationID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetStations reconciles the sections with a favourites collection: new
// stations are added and loaded, removed ones discarded, existing ones left
// untouched. Used at startup and after favourites changes.
func (c *Controller) SetStations(ctx context.Context, stationList []favourites.FavouriteStation) {
	wanted := map[string]bool{}
	for _, favourite := range stationList {
		wanted[favourite.StationID] = true
	}

	c.mu.Lock()
	var stale []string
	for stationID := range c.sections {
		if !wanted[stationID] {
			stale = append(stale, stationID)
		}
	}
	c.mu.Unlock()

	for _, stationID := range stale {
		c.RemoveStation(stationID)
	}

	for _, favourite := range stationList {
		c.AddStation(ctx, favourite)
	}
}

// Refresh reloads a single section: bumps its generation, marks it Loading
// and fetches. Refreshing an unknown station is a no-op.
func (c *Controller) Refresh(ctx context.Context, stationID string) {
	c.mu.Lock()
	sec, exists := c.sections[stationID]
	if !exists {
		c.mu.Unlock()
		return
	}

	sec.generation++
	generation := sec.generation
	sec.state = SectionStateLoading
	sec.err = ""
	c.mu.Unlock()

	c.notify(stationID, SectionStateLoading)

	departures, err := c.source.GetDepartures(ctx, stationID, c.limit)

	c.mu.Lock()
	sec, exists = c.sections[stationID]
	if !exists || sec.generation != generation {
		c.mu.Unlock()
		log.Debug().Str("station", stationID).Uint64("generation", generation).Msg("Discarding stale departure fetch")
		return
	}

	var state SectionState
	if err != nil {
		sec.state = SectionStateFailed
		sec.err = "Error loading departures for " + sec.name
		sec.rows = nil

		log.Warn().Err(err).Str("station", stationID).Msg("Departure fetch failed")
	} else {
		sec.state = SectionStateLoaded
		sec.rows = board.BuildRows(departures)
	}
	state = sec.state
	c.mu.Unlock()

	c.notify(stationID, state)
}

// RefreshAll forces every section back through Loading, fetching with
// bounded parallelism, and returns once all sections have settled.
func (c *Controller) RefreshAll(ctx context.Context) {
	c.mu.Lock()
	stationIDs := make([]string, len(c.order))
	copy(stationIDs, c.order)
	c.mu.Unlock()

	p := pool.New().WithMaxGoroutines(maxConcurrentFetches)

	for _, stationID := range stationIDs {
		p.Go(func() {
			c.Refresh(ctx, stationID)
		})
	}

	p.Wait()
}

// Snapshot returns the sections in display order. Row slices are copied, so
// a snapshot is stable against later refreshes.
func (c *Controller) Snapshot() []SectionView {
	c.mu.Lock()
	defer c.mu.Unlock()

	views := make([]SectionView, 0, len(c.order))

	for _, stationID := range c.order {
		sec := c.sections[stationID]

		rows := make([]board.Row, len(sec.rows))
		copy(rows, sec.rows)

		views = append(views, SectionView{
			StationID:  sec.stationID,
			Name:       sec.name,
			State:      sec.state,
			Rows:       rows,
			Error:      sec.err,
			Generation: sec.generation,
		})
	}

	return views
}

func (c *Controller) notify(stationID string, state SectionState) {
	if c.OnTransition != nil {
		c.OnTransition(stationID, state)
	}
}
