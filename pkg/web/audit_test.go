package web

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAuditEmbed(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	info := requestInfo{
		Method: http.MethodGet,
		Path:   "/status",
		Host:   "evil.example",
		IP:     "10.0.0.1",
		Header: http.Header{"User-Agent": {"curl"}},
	}

	tests := []struct {
		name      string
		rejected  bool
		wantColor int
		wantTitle string
	}{
		{"allowed", false, auditColorOK, "Solicitud GET /status"},
		{"rejected", true, auditColorRejected, "Host rechazado (evil.example)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := auditEmbed(info, tt.rejected, at)

			if embed["color"] != tt.wantColor {
				t.Errorf("color = %v, want %v", embed["color"], tt.wantColor)
			}
			if title, _ := embed["title"].(string); !strings.Contains(title, tt.wantTitle) {
				t.Errorf("title = %q, want it to contain %q", title, tt.wantTitle)
			}
			if embed["timestamp"] != "2026-03-01T12:00:00Z" {
				t.Errorf("timestamp = %v, want %v", embed["timestamp"], "2026-03-01T12:00:00Z")
			}
			desc, _ := embed["description"].(string)
			for _, want := range []string{"/status", "10.0.0.1", "curl", "```{}```"} {
				if !strings.Contains(desc, want) {
					t.Errorf("description missing %q: %s", want, desc)
				}
			}
		})
	}
}

func TestAuditReportWithoutWebhook(t *testing.T) {
	a := newRequestAudit("")
	a.report(requestInfo{Method: http.MethodGet, Path: "/"}, false)
}
