package mqtt

import (
	"fmt"

	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/google/uuid"
)

// TopicRendered receives one message per rendered calendar
const TopicRendered = TopicPrefix + "calendar/rendered"

// Render sources
const (
	SourceCommand = "command"
	SourceWeb     = "web"
)

// RenderNotification describes a calendar that was rendered and delivered
type RenderNotification struct {
	RequestID string `json:"requestId"`
	GuildID   string `json:"guildId"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Events    int    `json:"events"`
	Bytes     int    `json:"bytes"`
	Source    string `json:"source"`
}

// Publisher publishes JSON payloads. *MqttCommunicator satisfies it.
type Publisher interface {
	Publish(topic string, payload interface{}) error
}

// NewRenderNotification fills a notification with a fresh request id
func NewRenderNotification(source, guildID string, year, month, events, size int) RenderNotification {
	return RenderNotification{
		RequestID: uuid.New().String(),
		GuildID:   guildID,
		Month:     month,
		Year:      year,
		Events:    events,
		Bytes:     size,
		Source:    source,
	}
}

// NotifyRendered publishes n through the global communicator.
// It does nothing when MQTT is disabled.
func NotifyRendered(n RenderNotification) {
	if communicator == nil {
		return
	}
	notify(communicator, n)
}

func notify(pub Publisher, n RenderNotification) {
	if err := pub.Publish(TopicRendered, n); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar la notificación %s: %v", n.RequestID, err), "MQTT")
		return
	}
	logger.Debug(fmt.Sprintf("Notificación publicada: %s %d/%d", n.GuildID, n.Month, n.Year), "MQTT")
}
