package web

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(RateLimit{Window: time.Minute, Limit: 2})

	steps := []struct {
		name string
		ip   string
		at   time.Time
		want bool
	}{
		{"first", "10.0.0.1", start, true},
		{"second", "10.0.0.1", start.Add(time.Second), true},
		{"over limit", "10.0.0.1", start.Add(2 * time.Second), false},
		{"other client", "10.0.0.2", start.Add(2 * time.Second), true},
		{"window reset", "10.0.0.1", start.Add(time.Minute), true},
	}

	for _, tt := range steps {
		if got := l.allow(tt.ip, tt.at); got != tt.want {
			t.Errorf("%s: allow(%q) = %v, want %v", tt.name, tt.ip, got, tt.want)
		}
	}
}

func TestRateLimiterSweepsClosedWindows(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newRateLimiter(RateLimit{Window: time.Minute, Limit: 1})

	l.allow("10.0.0.1", start)
	l.allow("10.0.0.2", start)
	l.allow("10.0.0.3", start.Add(2*time.Minute))

	if len(l.clients) != 1 {
		t.Errorf("len(clients) = %v, want %v", len(l.clients), 1)
	}
}
