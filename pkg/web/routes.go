// Package web provides API routes for the web server.
package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/calendar"
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/PancyStudios/PancyCalendarGo/pkg/mqtt"
	"github.com/gin-gonic/gin"
)

// Bot exposes the parts of the Discord client the API reads
type Bot interface {
	Ready() bool
	Guilds() int
	Events() discord.ScheduledEventFetcher
}

// globalBot reads the global Discord client
type globalBot struct{}

func (globalBot) Ready() bool {
	client := discord.Get()
	return client != nil && client.IsReady()
}

func (globalBot) Guilds() int {
	if client := discord.Get(); client != nil {
		return client.GuildCount()
	}
	return 0
}

func (globalBot) Events() discord.ScheduledEventFetcher {
	return discord.Get().Session
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	setupRoutes(s, globalBot{}, calendar.Today)
}

func setupRoutes(s *Server, bot Bot, today func() calendar.CalendarDate) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler(bot))
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/calendar/:guildId", calendarHandler(bot, today))
	}
}

// statusHandler returns the bot and MQTT status
func statusHandler(bot Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		mqttOnline := false
		if mc := mqtt.Get(); mc != nil {
			mqttOnline = mc.IsConnected()
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"bot": gin.H{
				"isOnline": bot.Ready(),
				"guilds":   bot.Guilds(),
			},
			"mqtt": gin.H{
				"isOnline": mqttOnline,
			},
		})
	}
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyCalendar Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
		"guilds":   client.GuildCount(),
		"commands": client.Commands.Size(),
		"uptime":   time.Since(client.StartTime).Round(time.Second).String(),
		"isReady":  client.IsReady(),
	})
}

// calendarHandler renders a guild calendar as PNG
func calendarHandler(bot Bot, today func() calendar.CalendarDate) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID := c.Param("guildId")

		year, month, err := parseMonthYear(c.Query("year"), c.Query("month"), time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": err.Error(),
			})
			return
		}

		if !bot.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Bot Offline",
				"message": "El bot no está disponible en este momento.",
			})
			return
		}

		cal, err := discord.RenderGuildCalendar(bot.Events(), guildID, year, month, today())
		if err != nil {
			status := calendarErrorStatus(err)
			if status == http.StatusInternalServerError {
				logger.Error(fmt.Sprintf("Error generando calendario de %s: %v", guildID, err), "WebServer")
			}
			c.JSON(status, gin.H{
				"error":   http.StatusText(status),
				"message": err.Error(),
			})
			return
		}

		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", cal.PNG)

		mqtt.NotifyRendered(mqtt.NewRenderNotification(mqtt.SourceWeb, guildID, year, month, cal.Events, len(cal.PNG)))
	}
}

// parseMonthYear reads optional query values, defaulting to now
func parseMonthYear(yearParam, monthParam string, now time.Time) (int, int, error) {
	year, month := now.Year(), int(now.Month())

	if yearParam != "" {
		v, err := strconv.Atoi(yearParam)
		if err != nil {
			return 0, 0, errors.WithMessagef(calendar.ErrInvalidArgument, "year %q is not a number", yearParam)
		}
		year = v
	}
	if monthParam != "" {
		v, err := strconv.Atoi(monthParam)
		if err != nil {
			return 0, 0, errors.WithMessagef(calendar.ErrInvalidArgument, "month %q is not a number", monthParam)
		}
		month = v
	}

	if err := calendar.Validate(year, month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func calendarErrorStatus(err error) int {
	switch {
	case errors.Is(err, calendar.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, discord.ErrFetchEvents):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
