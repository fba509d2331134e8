// Command sync-commands manages the bot's slash commands on Discord
// without starting the bot.
//
// Usage:
//
//	sync-commands [-list | -clean | -sync] [-guild <id>]
//
// With no action flag it syncs: the remote set is overwritten with the
// commands this build defines, so stale ones disappear. -guild targets one
// server instead of the global scope.
package main

import (
	"flag"
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/PancyStudios/PancyCalendarGo/internal/commands"
	"github.com/PancyStudios/PancyCalendarGo/pkg/config"
	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

const logPrefix = "SyncCommands"

type action int

const (
	actionSync action = iota
	actionList
	actionClean
)

// remoteCommands is the slice of *discord.CommandHandler this tool drives.
type remoteCommands interface {
	ListGlobalCommands() ([]*discordgo.ApplicationCommand, error)
	ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error)
	UnregisterCommands() error
	UnregisterGuildCommands(guildID string) error
	SyncCommandsCount() (int, error)
	SyncGuildCommands(guildID string) (int, error)
}

func main() {
	list := flag.Bool("list", false, "List all registered commands")
	clean := flag.Bool("clean", false, "Remove all commands without registering new ones")
	flag.Bool("sync", true, "Overwrite the remote set with the current commands (default)")
	guildID := flag.String("guild", "", "Target a specific guild (leave empty for global)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando utilidad de sincronización de comandos...", logPrefix)

	client, err := discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), logPrefix)
		os.Exit(1)
	}
	if err := client.Session.Open(); err != nil {
		logger.Critical(fmt.Sprintf("Error connecting to Discord: %v", err), logPrefix)
		os.Exit(1)
	}
	defer client.Session.Close()
	logger.Success("Conectado a Discord", logPrefix)

	commands.RegisterAll(client)

	if err := run(client.CommandHandler, pickAction(*list, *clean), *guildID); err != nil {
		logger.Error(err.Error(), logPrefix)
		return
	}
	logger.Success("Operación completada exitosamente", logPrefix)
}

// pickAction resolves the flags. -list wins over -clean; neither means sync.
func pickAction(list, clean bool) action {
	switch {
	case list:
		return actionList
	case clean:
		return actionClean
	default:
		return actionSync
	}
}

func scope(guildID string) string {
	if guildID == "" {
		return "globales"
	}
	return "del servidor " + guildID
}

func run(remote remoteCommands, act action, guildID string) error {
	switch act {
	case actionList:
		return listCommands(remote, guildID)
	case actionClean:
		return cleanCommands(remote, guildID)
	default:
		return syncCommands(remote, guildID)
	}
}

func listCommands(remote remoteCommands, guildID string) error {
	logger.Info("📋 Listando comandos "+scope(guildID), logPrefix)

	var (
		cmds []*discordgo.ApplicationCommand
		err  error
	)
	if guildID != "" {
		cmds, err = remote.ListGuildCommands(guildID)
	} else {
		cmds, err = remote.ListGlobalCommands()
	}
	if err != nil {
		return errors.WrapIf(err, "listing commands")
	}

	logger.Info(fmt.Sprintf("Comandos encontrados: %d", len(cmds)), logPrefix)
	for i, cmd := range cmds {
		logger.Info(fmt.Sprintf("  %d. /%s - %s (ID: %s)", i+1, cmd.Name, cmd.Description, cmd.ID), logPrefix)
	}
	return nil
}

func cleanCommands(remote remoteCommands, guildID string) error {
	logger.Info("🧹 Eliminando comandos "+scope(guildID), logPrefix)

	var err error
	if guildID != "" {
		err = remote.UnregisterGuildCommands(guildID)
	} else {
		err = remote.UnregisterCommands()
	}
	if err != nil {
		return errors.WrapIf(err, "removing commands")
	}

	logger.Success("✅ Todos los comandos han sido eliminados", logPrefix)
	return nil
}

func syncCommands(remote remoteCommands, guildID string) error {
	logger.Info("🔄 Sincronizando comandos "+scope(guildID), logPrefix)

	var (
		count int
		err   error
	)
	if guildID != "" {
		count, err = remote.SyncGuildCommands(guildID)
	} else {
		count, err = remote.SyncCommandsCount()
	}
	if err != nil {
		return errors.WrapIf(err, "syncing commands")
	}

	logger.Success(fmt.Sprintf("✅ %d comandos sincronizados correctamente", count), logPrefix)
	return nil
}
