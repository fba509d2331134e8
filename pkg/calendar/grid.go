package calendar

import (
	"sort"
	"time"

	"emperror.dev/errors"
)

const (
	// Rows is the number of weeks in every grid.
	Rows = 6
	// Columns is the number of days per week, Monday first.
	Columns = 7
	// MaxTitleLength is the number of characters of an event title kept for display.
	MaxTitleLength = 15

	MinYear = 1
	MaxYear = 9999
)

// Membership tells whether a cell belongs to the requested month.
type Membership int

const (
	InMonth Membership = iota
	OutOfMonth
)

func (m Membership) String() string {
	if m == InMonth {
		return "in"
	}
	return "out"
}

// RawEvent is a scheduled event as delivered by the event source.
// Start is nil when the event has no start time.
type RawEvent struct {
	Start *time.Time
	Title string
}

// EventEntry is an event as displayed inside a day cell.
type EventEntry struct {
	Time  TimeOfDay
	Timed bool
	Title string
}

// Label returns the "<time> <title>" line drawn for the entry.
func (e EventEntry) Label() string {
	if !e.Timed {
		return e.Title
	}
	return e.Time.String() + " " + e.Title
}

// DayCell is one position of the month grid.
type DayCell struct {
	Date       CalendarDate
	Membership Membership
	Events     []EventEntry
}

// MonthGrid holds Rows weeks of Columns cells covering a month plus
// the adjacent days needed to fill the rectangle.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [][]DayCell
}

// First returns the date of the top-left cell.
func (g *MonthGrid) First() CalendarDate {
	return g.Weeks[0][0].Date
}

// Last returns the date of the bottom-right cell.
func (g *MonthGrid) Last() CalendarDate {
	last := g.Weeks[len(g.Weeks)-1]
	return last[len(last)-1].Date
}

// Validate checks year and month before any work is done for them.
func Validate(year, month int) error {
	if month < 1 || month > 12 {
		return errors.WithMessagef(ErrInvalidArgument, "month %d is outside 1-12", month)
	}
	if year < MinYear || year > MaxYear {
		return errors.WithMessagef(ErrInvalidArgument, "year %d is outside %d-%d", year, MinYear, MaxYear)
	}
	return nil
}

// Build lays out the month as a Monday-first 6x7 grid and attaches every
// timed event to the cell of its start date, wherever that cell falls.
func Build(year, month int, events []RawEvent) (*MonthGrid, error) {
	if err := Validate(year, month); err != nil {
		return nil, err
	}

	first := CalendarDate{Year: year, Month: time.Month(month), Day: 1}
	offset := (int(first.Time().Weekday()) + 6) % 7
	start := first.AddDays(-offset)

	buckets := bucketEvents(events)

	grid := &MonthGrid{
		Year:  year,
		Month: time.Month(month),
		Weeks: make([][]DayCell, Rows),
	}
	for row := 0; row < Rows; row++ {
		week := make([]DayCell, Columns)
		for col := 0; col < Columns; col++ {
			date := start.AddDays(row*Columns + col)
			membership := OutOfMonth
			if date.Year == year && date.Month == time.Month(month) {
				membership = InMonth
			}
			week[col] = DayCell{
				Date:       date,
				Membership: membership,
				Events:     buckets[date],
			}
		}
		grid.Weeks[row] = week
	}

	return grid, nil
}

// bucketEvents groups events by exact start date, sorted by time of day.
func bucketEvents(events []RawEvent) map[CalendarDate][]EventEntry {
	buckets := make(map[CalendarDate][]EventEntry)
	for _, ev := range events {
		if ev.Start == nil {
			continue
		}
		date := DateOf(*ev.Start)
		buckets[date] = append(buckets[date], EventEntry{
			Time:  ClockOf(*ev.Start),
			Timed: true,
			Title: truncateTitle(ev.Title),
		})
	}

	for _, entries := range buckets {
		sortEntries(entries)
	}
	return buckets
}

// sortEntries orders entries by time of day; untimed entries go last.
func sortEntries(entries []EventEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Timed != b.Timed {
			return a.Timed
		}
		return a.Time.Before(b.Time)
	})
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	return string(runes[:MaxTitleLength])
}
