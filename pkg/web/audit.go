package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	auditColorOK       = 0x00AE86
	auditColorRejected = 0xFFA500
)

// requestInfo is the part of a request the audit log keeps. It is copied
// out of the gin.Context because the context is recycled after the
// handler returns.
type requestInfo struct {
	Method string
	Path   string
	Host   string
	IP     string
	Query  string
	Header http.Header
}

func captureRequest(c *gin.Context) requestInfo {
	return requestInfo{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Host:   c.Request.Host,
		IP:     c.ClientIP(),
		Query:  c.Request.URL.RawQuery,
		Header: c.Request.Header.Clone(),
	}
}

// requestAudit posts one embed per request to a Discord webhook.
type requestAudit struct {
	url    string
	client *http.Client
}

func newRequestAudit(url string) *requestAudit {
	return &requestAudit{url: url, client: &http.Client{Timeout: 5 * time.Second}}
}

func (a *requestAudit) report(info requestInfo, rejected bool) {
	if a.url == "" {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"embeds": []interface{}{auditEmbed(info, rejected, time.Now())},
	})
	if err != nil {
		return
	}

	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Debug(fmt.Sprintf("Webhook de auditoría falló: %v", err), "WebServer")
		return
	}
	resp.Body.Close()
}

func auditEmbed(info requestInfo, rejected bool, at time.Time) map[string]interface{} {
	title := fmt.Sprintf("💫 | Solicitud %s %s", info.Method, info.Path)
	color := auditColorOK
	if rejected {
		title = fmt.Sprintf("💫 | Host rechazado (%s): %s %s", info.Host, info.Method, info.Path)
		color = auditColorRejected
	}

	headers, _ := json.Marshal(info.Header)
	query := info.Query
	if query == "" {
		query = "{}"
	}

	return map[string]interface{}{
		"title": title,
		"description": fmt.Sprintf("> **Ruta:** `%s`\n> **IP:** `%s`\n> **Headers:** ```%s```\n> **Query:** ```%s```",
			info.Path, info.IP, headers, query),
		"color":     color,
		"timestamp": at.Format(time.RFC3339),
	}
}
