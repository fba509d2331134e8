// Package discord provides the command handler for loading and registering commands.
package discord

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/config"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// ErrNoApplicationID is returned when the bot user is not known yet
var ErrNoApplicationID = errors.NewPlain("application id unknown: session not ready")

// CommandAPI is the subset of the Discord REST API used to manage slash commands.
// *discordgo.Session satisfies it.
type CommandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// CommandHandler manages command loading and registration
type CommandHandler struct {
	client           *ExtendedClient
	api              CommandAPI
	appID            string
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		api:              client.Session,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// LoadCommands checks that the command registry has been filled
func (ch *CommandHandler) LoadCommands() error {
	logger.System("Iniciando carga de comandos...", "CommandHandler")

	if ch.client.Commands.Size() == 0 {
		return errors.New("no hay comandos registrados")
	}

	logger.System(fmt.Sprintf("Carga finalizada. Comandos globales: %d, de desarrollo: %d",
		len(ch.slashCommands), len(ch.slashCommandsDev)), "CommandHandler")
	return nil
}

// RegisterCommand adds a command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	appCmd := cmd.ToApplicationCommand()

	if cmd.IsDev {
		ch.slashCommandsDev = append(ch.slashCommandsDev, appCmd)
	} else {
		ch.slashCommands = append(ch.slashCommands, appCmd)
	}

	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// GlobalCommands returns the application commands synced globally
func (ch *CommandHandler) GlobalCommands() []*discordgo.ApplicationCommand {
	return ch.slashCommands
}

// DevCommands returns the application commands synced to the dev guild
func (ch *CommandHandler) DevCommands() []*discordgo.ApplicationCommand {
	return ch.slashCommandsDev
}

// applicationID returns the bot's application id, taken from the session
// state once the gateway is ready
func (ch *CommandHandler) applicationID() (string, error) {
	if ch.appID != "" {
		return ch.appID, nil
	}
	s := ch.client.Session
	if s == nil || s.State == nil || s.State.User == nil {
		return "", ErrNoApplicationID
	}
	return s.State.User.ID, nil
}

// RegisterCommands syncs all slash commands with Discord
func (ch *CommandHandler) RegisterCommands() {
	cfg := config.Get()

	logger.Info("🔄 Registrando comandos globales...", "CommandHandler")

	if err := ch.SyncCommands(); err != nil {
		logger.Error("Error registrando comandos globales: "+err.Error(), "CommandHandler")
	} else {
		logger.Success("✅ Comandos globales registrados.", "CommandHandler")
	}

	// Register dev commands in dev guild
	if cfg.DevGuildID != "" && len(ch.slashCommandsDev) > 0 {
		logger.Info("🔄 Registrando comandos de desarrollo en el servidor "+cfg.DevGuildID+"...", "CommandHandler")

		if _, err := ch.overwrite(cfg.DevGuildID, ch.slashCommandsDev); err != nil {
			logger.Error("Error registrando comandos de desarrollo: "+err.Error(), "CommandHandler")
			return
		}

		logger.Success("✅ Comandos de desarrollo registrados.", "CommandHandler")
	}
}

// SyncCommands replaces the global command set with the registered commands.
// Commands that no longer exist locally are removed by Discord.
func (ch *CommandHandler) SyncCommands() error {
	_, err := ch.SyncCommandsCount()
	return err
}

// SyncCommandsCount is SyncCommands returning how many commands Discord now holds
func (ch *CommandHandler) SyncCommandsCount() (int, error) {
	return ch.overwrite("", ch.slashCommands)
}

// SyncGuildCommands replaces a guild's command set with every registered
// command, dev commands included. Guild commands propagate instantly.
func (ch *CommandHandler) SyncGuildCommands(guildID string) (int, error) {
	all := make([]*discordgo.ApplicationCommand, 0, len(ch.slashCommands)+len(ch.slashCommandsDev))
	all = append(all, ch.slashCommands...)
	all = append(all, ch.slashCommandsDev...)
	return ch.overwrite(guildID, all)
}

func (ch *CommandHandler) overwrite(guildID string, cmds []*discordgo.ApplicationCommand) (int, error) {
	appID, err := ch.applicationID()
	if err != nil {
		return 0, err
	}
	created, err := ch.api.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
	if err != nil {
		return 0, errors.WrapWithDetails(err, "bulk overwrite commands", "guild", guildID)
	}
	return len(created), nil
}

// ListGlobalCommands returns the global commands Discord currently holds
func (ch *CommandHandler) ListGlobalCommands() ([]*discordgo.ApplicationCommand, error) {
	return ch.ListGuildCommands("")
}

// ListGuildCommands returns the commands Discord holds for a guild
func (ch *CommandHandler) ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	appID, err := ch.applicationID()
	if err != nil {
		return nil, err
	}
	return ch.api.ApplicationCommands(appID, guildID)
}

// UnregisterCommands removes all registered commands from Discord
func (ch *CommandHandler) UnregisterCommands() error {
	if err := ch.UnregisterGuildCommands(""); err != nil {
		return err
	}
	logger.Success("Comandos globales eliminados.", "CommandHandler")
	return nil
}

// UnregisterGuildCommands removes every command registered in a guild
func (ch *CommandHandler) UnregisterGuildCommands(guildID string) error {
	appID, err := ch.applicationID()
	if err != nil {
		return err
	}

	commands, err := ch.api.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := ch.api.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			logger.Error("Error eliminando comando "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}
	return nil
}
