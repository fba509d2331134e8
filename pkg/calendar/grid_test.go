package calendar

import (
	"testing"
	"time"

	"emperror.dev/errors"
)

func at(year int, month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func flatten(g *MonthGrid) []DayCell {
	var cells []DayCell
	for _, week := range g.Weeks {
		cells = append(cells, week...)
	}
	return cells
}

func findCell(t *testing.T, g *MonthGrid, date CalendarDate) DayCell {
	t.Helper()
	for _, cell := range flatten(g) {
		if cell.Date == date {
			return cell
		}
	}
	t.Fatalf("date %v not in grid", date)
	return DayCell{}
}

func TestBuildShape(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			g, err := Build(year, month, nil)
			if err != nil {
				t.Fatalf("Build(%d, %d) returned error: %v", year, month, err)
			}
			if len(g.Weeks) != Rows {
				t.Fatalf("Build(%d, %d) rows = %d, want %d", year, month, len(g.Weeks), Rows)
			}
			for i, week := range g.Weeks {
				if len(week) != Columns {
					t.Fatalf("Build(%d, %d) row %d columns = %d, want %d", year, month, i, len(week), Columns)
				}
			}
		}
	}
}

func TestBuildConsecutiveDates(t *testing.T) {
	for _, tc := range []struct{ year, month int }{
		{2024, 2}, {2025, 1}, {2025, 12}, {2026, 3}, {2000, 2}, {1, 1}, {9999, 12},
	} {
		g, err := Build(tc.year, tc.month, nil)
		if err != nil {
			t.Fatalf("Build(%d, %d) returned error: %v", tc.year, tc.month, err)
		}
		cells := flatten(g)
		if wd := cells[0].Date.Time().Weekday(); wd != time.Monday {
			t.Errorf("Build(%d, %d) first weekday = %v, want Monday", tc.year, tc.month, wd)
		}
		for i := 1; i < len(cells); i++ {
			if want := cells[i-1].Date.AddDays(1); cells[i].Date != want {
				t.Fatalf("Build(%d, %d) cell %d = %v, want %v", tc.year, tc.month, i, cells[i].Date, want)
			}
		}
	}
}

func TestBuildSingleInMonthRun(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := 1; month <= 12; month++ {
			g, _ := Build(year, month, nil)

			runs, length := 0, 0
			prev := OutOfMonth
			for _, cell := range flatten(g) {
				if cell.Membership == InMonth {
					length++
					if prev != InMonth {
						runs++
					}
				}
				prev = cell.Membership
			}

			if runs != 1 {
				t.Errorf("Build(%d, %d) in-month runs = %d, want 1", year, month, runs)
			}
			if want := DaysIn(year, time.Month(month)); length != want {
				t.Errorf("Build(%d, %d) in-month length = %d, want %d", year, month, length, want)
			}
		}
	}
}

func TestBuildFebruary2025(t *testing.T) {
	g, err := Build(2025, 2, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if want := (CalendarDate{2025, time.January, 27}); g.First() != want {
		t.Errorf("First() = %v, want %v", g.First(), want)
	}
	if want := (CalendarDate{2025, time.March, 9}); g.Last() != want {
		t.Errorf("Last() = %v, want %v", g.Last(), want)
	}

	var inMonth []CalendarDate
	for _, cell := range flatten(g) {
		if cell.Membership == InMonth {
			inMonth = append(inMonth, cell.Date)
		}
	}
	if len(inMonth) != 28 {
		t.Fatalf("in-month days = %d, want 28", len(inMonth))
	}
	if inMonth[0].Day != 1 || inMonth[27].Day != 28 {
		t.Errorf("in-month run = %v..%v, want Feb 1..Feb 28", inMonth[0], inMonth[27])
	}
	if cell := g.Weeks[0][5]; cell.Date != (CalendarDate{2025, time.February, 1}) {
		t.Errorf("Feb 1 should sit on Saturday of the first week, got %v", cell.Date)
	}
}

func TestBuildInvalidArguments(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
	}{
		{"month 13", 2025, 13},
		{"month 0", 2025, 0},
		{"negative month", 2025, -1},
		{"year 0", 0, 5},
		{"year 10000", 10000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.year, tt.month, nil)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Build(%d, %d) error = %v, want ErrInvalidArgument", tt.year, tt.month, err)
			}
			if g != nil {
				t.Error("Build should not return a grid on error")
			}
		})
	}
}

func TestBuildTruncatesTitle(t *testing.T) {
	events := []RawEvent{{Start: at(2025, time.February, 1, 14, 30), Title: "Team Sync Meeting XYZ"}}

	g, err := Build(2025, 2, events)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	cell := findCell(t, g, CalendarDate{2025, time.February, 1})
	if len(cell.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(cell.Events))
	}
	got := cell.Events[0]
	if got.Time.String() != "14:30" {
		t.Errorf("Time = %v, want 14:30", got.Time)
	}
	if got.Title != "Team Sync Meeti" {
		t.Errorf("Title = %q, want %q", got.Title, "Team Sync Meeti")
	}
	if n := len([]rune(got.Title)); n != MaxTitleLength {
		t.Errorf("Title length = %d, want %d", n, MaxTitleLength)
	}
}

func TestBuildTruncatesByCharacter(t *testing.T) {
	events := []RawEvent{{Start: at(2025, time.February, 3, 9, 0), Title: "Réunion d'équipe générale"}}

	g, _ := Build(2025, 2, events)
	cell := findCell(t, g, CalendarDate{2025, time.February, 3})
	if got := cell.Events[0].Title; got != "Réunion d'équip" {
		t.Errorf("Title = %q, want %q", got, "Réunion d'équip")
	}
}

func TestBuildSortsByTime(t *testing.T) {
	events := []RawEvent{
		{Start: at(2025, time.February, 1, 9, 0), Title: "Standup"},
		{Start: at(2025, time.February, 1, 8, 0), Title: "Breakfast"},
		{Start: at(2025, time.February, 1, 8, 45), Title: "Commute"},
	}

	g, _ := Build(2025, 2, events)
	cell := findCell(t, g, CalendarDate{2025, time.February, 1})

	want := []string{"08:00", "08:45", "09:00"}
	if len(cell.Events) != len(want) {
		t.Fatalf("events = %d, want %d", len(cell.Events), len(want))
	}
	for i, w := range want {
		if got := cell.Events[i].Time.String(); got != w {
			t.Errorf("event %d time = %v, want %v", i, got, w)
		}
	}
}

func TestBuildSkipsEventsWithoutStart(t *testing.T) {
	events := []RawEvent{
		{Start: nil, Title: "Someday"},
		{Start: at(2025, time.February, 10, 12, 0), Title: "Lunch"},
	}

	g, _ := Build(2025, 2, events)

	total := 0
	for _, cell := range flatten(g) {
		for _, ev := range cell.Events {
			total++
			if !ev.Timed {
				t.Errorf("untimed entry %q in cell %v", ev.Title, cell.Date)
			}
		}
	}
	if total != 1 {
		t.Errorf("total events = %d, want 1", total)
	}
}

func TestBuildBucketsByExactDate(t *testing.T) {
	events := []RawEvent{
		{Start: at(2025, time.January, 27, 10, 0), Title: "Leading"},
		{Start: at(2025, time.February, 27, 10, 0), Title: "InMonth"},
		{Start: at(2025, time.March, 1, 10, 0), Title: "Trailing"},
		{Start: at(2025, time.March, 27, 10, 0), Title: "Hidden"},
		{Start: at(2024, time.February, 27, 10, 0), Title: "LastYear"},
	}

	g, _ := Build(2025, 2, events)

	tests := []struct {
		date       CalendarDate
		title      string
		membership Membership
	}{
		{CalendarDate{2025, time.January, 27}, "Leading", OutOfMonth},
		{CalendarDate{2025, time.February, 27}, "InMonth", InMonth},
		{CalendarDate{2025, time.March, 1}, "Trailing", OutOfMonth},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			cell := findCell(t, g, tt.date)
			if cell.Membership != tt.membership {
				t.Errorf("membership = %v, want %v", cell.Membership, tt.membership)
			}
			if len(cell.Events) != 1 || cell.Events[0].Title != tt.title {
				t.Errorf("events = %+v, want only %q", cell.Events, tt.title)
			}
		})
	}

	count := 0
	for _, cell := range flatten(g) {
		count += len(cell.Events)
	}
	if count != 3 {
		t.Errorf("visible events = %d, want 3", count)
	}
}

func TestBuildUsesEventLocation(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	start := time.Date(2025, time.February, 14, 22, 15, 0, 0, zone)

	g, _ := Build(2025, 2, []RawEvent{{Start: &start, Title: "Late"}})

	cell := findCell(t, g, CalendarDate{2025, time.February, 14})
	if len(cell.Events) != 1 || cell.Events[0].Time.String() != "22:15" {
		t.Errorf("events = %+v, want 22:15 Late on Feb 14", cell.Events)
	}
}

func TestSortEntriesUntimedLast(t *testing.T) {
	entries := []EventEntry{
		{Title: "Floating"},
		{Time: TimeOfDay{18, 0}, Timed: true, Title: "Dinner"},
		{Time: TimeOfDay{7, 30}, Timed: true, Title: "Run"},
	}
	sortEntries(entries)

	want := []string{"Run", "Dinner", "Floating"}
	for i, w := range want {
		if entries[i].Title != w {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Title, w)
		}
	}
}

func TestCalendarDateBefore(t *testing.T) {
	tests := []struct {
		a, b CalendarDate
		want bool
	}{
		{CalendarDate{2025, time.February, 1}, CalendarDate{2025, time.February, 2}, true},
		{CalendarDate{2025, time.January, 31}, CalendarDate{2025, time.February, 1}, true},
		{CalendarDate{2024, time.December, 31}, CalendarDate{2025, time.January, 1}, true},
		{CalendarDate{2025, time.February, 1}, CalendarDate{2025, time.February, 1}, false},
		{CalendarDate{2025, time.March, 1}, CalendarDate{2025, time.February, 28}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
