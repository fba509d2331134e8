package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterScheduledEvents logs changes to guild scheduled events, which are
// what /calendar draws
func RegisterScheduledEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnScheduledEventCreate(onScheduledEventCreate)
	client.EventHandler.OnScheduledEventUpdate(onScheduledEventUpdate)
	client.EventHandler.OnScheduledEventDelete(onScheduledEventDelete)
}

func onScheduledEventCreate(s *discordgo.Session, e *discordgo.GuildScheduledEventCreate) {
	logger.Info("🗓️ Evento creado: "+describeScheduledEvent(e.GuildScheduledEvent), "ScheduledEvents")
}

func onScheduledEventUpdate(s *discordgo.Session, e *discordgo.GuildScheduledEventUpdate) {
	logger.Debug("✏️ Evento actualizado: "+describeScheduledEvent(e.GuildScheduledEvent), "ScheduledEvents")
}

func onScheduledEventDelete(s *discordgo.Session, e *discordgo.GuildScheduledEventDelete) {
	logger.Info("🗑️ Evento eliminado: "+describeScheduledEvent(e.GuildScheduledEvent), "ScheduledEvents")
}

// describeScheduledEvent formats an event as `"name" guild <id> <start>`
func describeScheduledEvent(ev *discordgo.GuildScheduledEvent) string {
	if ev == nil {
		return "(desconocido)"
	}
	start := "sin fecha"
	if !ev.ScheduledStartTime.IsZero() {
		start = ev.ScheduledStartTime.Format(time.DateTime)
	}
	return fmt.Sprintf("%q servidor %s %s", ev.Name, ev.GuildID, start)
}
