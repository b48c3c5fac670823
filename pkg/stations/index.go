package stations

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/exp/slices"

	"github.com/abfahrt/abfahrt/pkg/mvg"
)

const (
	prefixResultLimit = 20
	fuzzyResultLimit  = 10

	// fuzzyMinQueryLength avoids ranking the whole directory for one or
	// two keystrokes.
	fuzzyMinQueryLength = 3

	// fuzzyMaxDistance is the Levenshtein cutoff above which a candidate
	// is considered noise rather than a typo.
	fuzzyMaxDistance = 12
)

// Match is one search candidate presented to the user.
type Match struct {
	ID   string `json:"id" groups:"basic"`
	Name string `json:"name" groups:"basic"`
}

// Index is a precomputed search structure over a station directory. Building
// it sorts and lowercases the full name table, so an Index is created once
// per directory fetch and reused across queries - never per keystroke.
type Index struct {
	stations     []mvg.Station
	names        []string
	loweredNames []string
}

func NewIndex(directory []mvg.Station) *Index {
	stations := make([]mvg.Station, len(directory))
	copy(stations, directory)

	slices.SortStableFunc(stations, func(a, b mvg.Station) int {
		return strings.Compare(a.Name, b.Name)
	})

	index := &Index{
		stations:     stations,
		names:        make([]string, len(stations)),
		loweredNames: make([]string, len(stations)),
	}

	for i, station := range stations {
		index.names[i] = station.Name
		index.loweredNames[i] = strings.ToLower(station.Name)
	}

	return index
}

func (i *Index) Empty() bool {
	return len(i.stations) == 0
}

// SearchPrefix returns stations whose name starts with the query,
// case-insensitively, in alphabetical order. Comparison is on the raw
// lowercased form, so diacritics must match exactly.
func (i *Index) SearchPrefix(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Match{}
	}

	matches := []Match{}
	for pos, loweredName := range i.loweredNames {
		if strings.HasPrefix(loweredName, query) {
			matches = append(matches, Match{
				ID:   i.stations[pos].ID,
				Name: i.stations[pos].Name,
			})

			if len(matches) == prefixResultLimit {
				break
			}
		}
	}

	return matches
}

// SearchFuzzy returns the closest stations by Levenshtein distance, best
// match first. Queries shorter than three runes yield nothing. The
// normalizing fold makes this mode tolerant of diacritics, unlike prefix
// search.
func (i *Index) SearchFuzzy(query string) []Match {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < fuzzyMinQueryLength {
		return []Match{}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, i.names)

	filtered := fuzzy.Ranks{}
	for _, rank := range ranks {
		if rank.Distance <= fuzzyMaxDistance {
			filtered = append(filtered, rank)
		}
	}

	sort.Stable(filtered)

	matches := []Match{}
	for _, rank := range filtered {
		matches = append(matches, Match{
			ID:   i.stations[rank.OriginalIndex].ID,
			Name: i.stations[rank.OriginalIndex].Name,
		})

		if len(matches) == fuzzyResultLimit {
			break
		}
	}

	return matches
}
