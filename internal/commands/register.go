// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category.
package commands

import (
	"github.com/PancyStudios/PancyCalendarGo/internal/commands/admin"
	"github.com/PancyStudios/PancyCalendarGo/internal/commands/calendar"
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// /calendar
	calendar.RegisterCalendarCommands(client)

	// /sync
	admin.RegisterAdminCommands(client)
}
