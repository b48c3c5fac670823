package board

import (
	"fmt"
	"time"

	"github.com/abfahrt/abfahrt/pkg/util"
)

// TimeDisplay selects how the departure column is rendered. The switch is
// table-scoped: every row of a table renders in the same mode.
type TimeDisplay string

const (
	TimeDisplayRelative TimeDisplay = "relative"
	TimeDisplayAbsolute TimeDisplay = "absolute"
)

// ParseTimeDisplay interprets a query-parameter value. Anything other than
// "absolute" means relative, the default mode.
func ParseTimeDisplay(value string) TimeDisplay {
	if value == string(TimeDisplayAbsolute) {
		return TimeDisplayAbsolute
	}

	return TimeDisplayRelative
}

// RenderedRow is one fully formatted board line.
type RenderedRow struct {
	Key         string `json:"key" groups:"basic"`
	Line        string `json:"line" groups:"basic"`
	Destination string `json:"destination" groups:"basic"`
	Time        string `json:"time" groups:"basic"`
}

// Table holds an ordered set of rows plus the current display mode.
type Table struct {
	rows    []Row
	display TimeDisplay
}

func NewTable(rows []Row) *Table {
	return &Table{
		rows:    rows,
		display: TimeDisplayRelative,
	}
}

func (t *Table) Display() TimeDisplay {
	return t.display
}

func (t *Table) SetDisplay(display TimeDisplay) {
	t.display = display
}

// Toggle flips the display mode for the whole table and returns the new
// mode. The caller re-renders afterwards; rows themselves are untouched.
func (t *Table) Toggle() TimeDisplay {
	if t.display == TimeDisplayRelative {
		t.display = TimeDisplayAbsolute
	} else {
		t.display = TimeDisplayRelative
	}

	return t.display
}

// Render formats every row in input order. Relative times are computed
// against the now argument at render time only - a rendered board goes stale
// until the next render, it does not count down by itself.
func (t *Table) Render(now time.Time) []RenderedRow {
	return RenderRows(t.rows, t.display, now)
}

func RenderRows(rows []Row, display TimeDisplay, now time.Time) []RenderedRow {
	rendered := make([]RenderedRow, 0, len(rows))

	for _, row := range rows {
		rendered = append(rendered, RenderedRow{
			Key:         row.Key(),
			Line:        row.Identifier,
			Destination: row.Destination,
			Time:        renderTime(row.DepartureTime, display, now),
		})
	}

	return rendered
}

func renderTime(departureTime time.Time, display TimeDisplay, now time.Time) string {
	if display == TimeDisplayAbsolute {
		return util.FormatClock(departureTime)
	}

	return fmt.Sprintf("%d min", util.MinutesUntil(departureTime, now))
}
