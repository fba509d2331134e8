package calendar

import (
	"bytes"
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/calendar"
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	pancyerrors "github.com/PancyStudios/PancyCalendarGo/pkg/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/PancyStudios/PancyCalendarGo/pkg/mqtt"
	"github.com/bwmarrin/discordgo"
)

const (
	fileName        = "calendar.png"
	genericFailure  = "❌ No se pudo generar el calendario. Inténtalo de nuevo más tarde."
	invalidArgument = "❌ Fecha no válida: %s"
)

// createCalendarCommand creates the /calendar command
func createCalendarCommand() *discord.Command {
	minMonth, minYear := float64(1), float64(calendar.MinYear)

	return discord.NewCommand(
		"calendar",
		"Muestra el calendario del mes con los eventos del servidor",
		"calendar",
		calendarHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "month",
			Description: "Mes (1-12), por defecto el actual",
			Required:    false,
			MinValue:    &minMonth,
			MaxValue:    12,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "year",
			Description: "Año, por defecto el actual",
			Required:    false,
			MinValue:    &minYear,
			MaxValue:    calendar.MaxYear,
		},
	).WithBotPermissions(discordgo.PermissionAttachFiles).InGuildOnly()
}

// calendarHandler handles the /calendar command
func calendarHandler(ctx *discord.CommandContext) error {
	go func() {
		defer pancyerrors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			logger.Error(fmt.Sprintf("Error difiriendo /calendar: %v", err), "CMD-Calendar")
			return
		}

		month, monthSet := ctx.GetIntOption("month")
		year, yearSet := ctx.GetIntOption("year")
		y, m := resolveMonthYear(year, yearSet, month, monthSet, time.Now())

		guildID := ctx.GuildID()
		cal, err := discord.RenderGuildCalendar(ctx.Session, guildID, y, m, calendar.Today())
		if err != nil {
			if replyErr := ctx.EditReply(failureMessage(err)); replyErr != nil {
				logger.Error(fmt.Sprintf("Error respondiendo /calendar: %v", replyErr), "CMD-Calendar")
			}
			reportFailure(err, guildID)
			return
		}

		content := fmt.Sprintf("📅 **%s %d** · %d eventos", time.Month(m), y, cal.Events)
		if err := ctx.EditReplyFile(content, fileName, "image/png", bytes.NewReader(cal.PNG)); err != nil {
			logger.Error(fmt.Sprintf("Error enviando calendario: %v", err), "CMD-Calendar")
			return
		}

		mqtt.NotifyRendered(mqtt.NewRenderNotification(mqtt.SourceCommand, guildID, y, m, cal.Events, len(cal.PNG)))
	}()
	return nil
}

// resolveMonthYear fills omitted options from now
func resolveMonthYear(year int64, yearSet bool, month int64, monthSet bool, now time.Time) (int, int) {
	y, m := now.Year(), int(now.Month())
	if yearSet {
		y = int(year)
	}
	if monthSet {
		m = int(month)
	}
	return y, m
}

// failureMessage is what the user sees when rendering fails. Only invalid
// arguments are explained.
func failureMessage(err error) string {
	if errors.Is(err, calendar.ErrInvalidArgument) {
		return fmt.Sprintf(invalidArgument, err.Error())
	}
	return genericFailure
}

func reportFailure(err error, guildID string) {
	switch {
	case errors.Is(err, calendar.ErrInvalidArgument):
		logger.Debug(fmt.Sprintf("Argumentos inválidos en %s: %v", guildID, err), "CMD-Calendar")
	case errors.Is(err, calendar.ErrRender):
		logger.Error(fmt.Sprintf("Error de renderizado en %s: %v", guildID, err), "CMD-Calendar")
		pancyerrors.Track(err)
	case errors.Is(err, discord.ErrFetchEvents):
		logger.Warn(fmt.Sprintf("No se pudieron obtener los eventos de %s: %v", guildID, err), "CMD-Calendar")
	default:
		logger.Error(fmt.Sprintf("Error generando calendario en %s: %v", guildID, err), "CMD-Calendar")
	}
}
