package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/pkg/calendar"
	"github.com/bwmarrin/discordgo"
)

func TestResolveMonthYear(t *testing.T) {
	now := time.Date(2025, time.February, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		year      int64
		yearSet   bool
		month     int64
		monthSet  bool
		wantYear  int
		wantMonth int
	}{
		{"defaults", 0, false, 0, false, 2025, 2},
		{"month only", 0, false, 7, true, 2025, 7},
		{"year only", 2030, true, 0, false, 2030, 2},
		{"both", 1999, true, 12, true, 1999, 12},
		{"out of range month is kept", 0, false, 13, true, 2025, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := resolveMonthYear(tt.year, tt.yearSet, tt.month, tt.monthSet, now)
			if y != tt.wantYear || m != tt.wantMonth {
				t.Errorf("resolveMonthYear() = %v/%v, want %v/%v", m, y, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	_, invalid := calendar.Build(2025, 13, nil)
	if got := failureMessage(invalid); !strings.Contains(got, "month 13") {
		t.Errorf("failureMessage(invalid) = %q, want the reason", got)
	}

	_, renderErr := (&calendar.Renderer{}).Render(nil, 2, 2025, calendar.Today())
	if got := failureMessage(renderErr); got != genericFailure {
		t.Errorf("failureMessage(render) = %q, want %q", got, genericFailure)
	}

	if got := failureMessage(errors.New("boom")); got != genericFailure {
		t.Errorf("failureMessage(other) = %q, want %q", got, genericFailure)
	}
}

func TestCalendarCommandDefinition(t *testing.T) {
	cmd := createCalendarCommand()

	if cmd.Name != "calendar" {
		t.Errorf("Name = %v, want %v", cmd.Name, "calendar")
	}
	if !cmd.GuildOnly {
		t.Error("calendar should be guild-only")
	}
	if cmd.BotPermissions&discordgo.PermissionAttachFiles == 0 {
		t.Error("calendar should require permission to attach files")
	}
	if len(cmd.Options) != 2 {
		t.Fatalf("Options length = %v, want %v", len(cmd.Options), 2)
	}

	bounds := map[string][2]float64{
		"month": {1, 12},
		"year":  {calendar.MinYear, calendar.MaxYear},
	}
	for _, opt := range cmd.Options {
		want, ok := bounds[opt.Name]
		if !ok {
			t.Errorf("unexpected option %q", opt.Name)
			continue
		}
		if opt.Type != discordgo.ApplicationCommandOptionInteger {
			t.Errorf("%s type = %v, want integer", opt.Name, opt.Type)
		}
		if opt.Required {
			t.Errorf("%s should be optional", opt.Name)
		}
		if opt.MinValue == nil || *opt.MinValue != want[0] || opt.MaxValue != want[1] {
			t.Errorf("%s bounds = %v..%v, want %v..%v", opt.Name, opt.MinValue, opt.MaxValue, want[0], want[1])
		}
	}
}
