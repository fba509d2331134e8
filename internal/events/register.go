// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, guild, shard, scheduled events)
package events

import (
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Shard events (disconnect/resume)
	RegisterShardEvents(client)

	// Scheduled events (create/update/delete)
	RegisterScheduledEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
