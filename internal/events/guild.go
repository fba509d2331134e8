// Package events provides event handlers for guild (server) events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildCreate)
	client.Session.AddHandler(onGuildDelete)
}

// onGuildCreate is called when the bot joins a server. GuildCreate also fires
// for every known server on connect, so only recent joins are greeted.
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if !isNewJoin(g.JoinedAt, time.Now()) {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")

	if g.SystemChannelID == "" {
		return
	}

	_, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed(time.Now()))
	if err != nil {
		logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Guild")
	}
}

// onGuildDelete is called when the bot is removed from a server
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
}

func isNewJoin(joinedAt, now time.Time) bool {
	return !joinedAt.Before(now.Add(-10 * time.Second))
}

func welcomeEmbed(now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "¡Gracias por agregarme! 🎉",
		Description: "Hola, soy **PancyCalendar**. Muestro los eventos programados del servidor en un calendario.",
		Color:       0x7289DA,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "📅 Calendario",
				Value:  "Usa `/calendar` para ver el mes actual, o `/calendar month:3 year:2025`",
				Inline: true,
			},
			{
				Name:   "🔄 Sincronizar",
				Value:  "Usa `/sync` si los comandos no aparecen",
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Developed by PancyStudio",
		},
		Timestamp: now.Format(time.RFC3339),
	}
}
