// Package main is the entry point for the PancyCalendar Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyCalendarGo/internal/commands"
	"github.com/PancyStudios/PancyCalendarGo/internal/events"
	"github.com/PancyStudios/PancyCalendarGo/pkg/config"
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/PancyStudios/PancyCalendarGo/pkg/mqtt"
	"github.com/PancyStudios/PancyCalendarGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System(fmt.Sprintf("Iniciando PancyCalendar Go %s (%s)...", config.Version, config.BuildTime), "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				logger.Error(fmt.Sprintf("Error cerrando la sesión: %v", err), "Main")
			}
		}
	})

	// Initialize MQTT
	if cfg.MQTTEnabled() {
		mqttClientID := "pancycal"
		if !cfg.IsProd() {
			mqttClientID = "pancycal_canary"
		}

		mqttClient := mqtt.Init(
			cfg.MQTTHost,
			cfg.MQTTPort,
			cfg.MQTTUser,
			cfg.MQTTPassword,
			mqttClientID,
		)
		defer mqttClient.Destroy()

		mqttClient.On("status", func(payload map[string]interface{}) (interface{}, error) {
			if discordClient == nil || !discordClient.IsReady() {
				return nil, fmt.Errorf("bot offline")
			}
			return map[string]interface{}{
				"guilds":   discordClient.GuildCount(),
				"commands": discordClient.Commands.Size(),
				"uptime":   time.Since(discordClient.StartTime).Round(time.Second).String(),
				"errors":   errors.Get().ErrorCount(),
			}, nil
		})
	} else {
		logger.Warn("MQTT deshabilitado: MQTT_Host vacío", "Main")
	}

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook, cfg.WebAllowedHosts)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Register commands and events
	commands.RegisterAll(discordClient)
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		if err := discordClient.Stop(); err != nil {
			logger.Error(fmt.Sprintf("Error cerrando la sesión: %v", err), "Main")
		}
	}()

	logger.Success("PancyCalendar Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyCalendar Go...", "Main")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webServer.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("Error cerrando el servidor web: %v", err), "Main")
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
