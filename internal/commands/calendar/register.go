// Package calendar provides the /calendar command
package calendar

import (
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
)

// RegisterCalendarCommands registers /calendar
func RegisterCalendarCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createCalendarCommand())
}
