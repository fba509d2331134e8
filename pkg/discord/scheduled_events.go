package discord

import (
	"time"

	"emperror.dev/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/calendar"
	"github.com/bwmarrin/discordgo"
)

// ErrFetchEvents matches every FetchError
var ErrFetchEvents = errors.NewPlain("fetch scheduled events")

// FetchError reports a failed scheduled events request
type FetchError struct {
	GuildID string
	Err     error
}

func (e *FetchError) Error() string {
	return "fetch scheduled events of guild " + e.GuildID + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchEvents }

// ScheduledEventFetcher lists the scheduled events of a guild.
// *discordgo.Session satisfies it.
type ScheduledEventFetcher interface {
	GuildScheduledEvents(guildID string, userCount bool, options ...discordgo.RequestOption) ([]*discordgo.GuildScheduledEvent, error)
}

// GuildCalendar is a rendered calendar for one guild and month
type GuildCalendar struct {
	GuildID string
	Year    int
	Month   int
	Events  int
	PNG     []byte
}

// ToRawEvents converts scheduled events into calendar input.
// An event with a zero start time has no start.
func ToRawEvents(events []*discordgo.GuildScheduledEvent) []calendar.RawEvent {
	raw := make([]calendar.RawEvent, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			continue
		}
		var start *time.Time
		if !ev.ScheduledStartTime.IsZero() {
			t := ev.ScheduledStartTime
			start = &t
		}
		raw = append(raw, calendar.RawEvent{Start: start, Title: ev.Name})
	}
	return raw
}

// RenderGuildCalendar fetches the guild's scheduled events and renders the
// requested month. Arguments are validated before Discord is contacted.
func RenderGuildCalendar(fetcher ScheduledEventFetcher, guildID string, year, month int, today calendar.CalendarDate) (*GuildCalendar, error) {
	if err := calendar.Validate(year, month); err != nil {
		return nil, err
	}

	events, err := fetcher.GuildScheduledEvents(guildID, false)
	if err != nil {
		return nil, &FetchError{GuildID: guildID, Err: err}
	}

	data, err := calendar.GeneratePNG(year, month, ToRawEvents(events), today)
	if err != nil {
		return nil, err
	}

	return &GuildCalendar{
		GuildID: guildID,
		Year:    year,
		Month:   month,
		Events:  len(events),
		PNG:     data,
	}, nil
}
