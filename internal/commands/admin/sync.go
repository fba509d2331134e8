// Package admin provides server management commands
package admin

import (
	"fmt"

	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
	"github.com/PancyStudios/PancyCalendarGo/pkg/errors"
	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterAdminCommands registers /sync
func RegisterAdminCommands(client *discord.ExtendedClient) {
	client.CommandHandler.RegisterCommand(createSyncCommand())
}

// createSyncCommand creates the /sync command
func createSyncCommand() *discord.Command {
	return discord.NewCommand(
		"sync",
		"Sincroniza los comandos de barra con Discord",
		"admin",
		syncHandler,
	).WithUserPermissions(discordgo.PermissionManageGuild).InGuildOnly()
}

// syncHandler handles the /sync command
func syncHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.DeferEphemeral(); err != nil {
			logger.Error(fmt.Sprintf("Error difiriendo /sync: %v", err), "CMD-Sync")
			return
		}

		count, err := ctx.Client.CommandHandler.SyncCommandsCount()
		if err != nil {
			logger.Error(fmt.Sprintf("Error sincronizando comandos: %v", err), "CMD-Sync")
			editReply(ctx, syncFailed)
			return
		}

		logger.Info(fmt.Sprintf("%s sincronizó %d comandos", ctx.User().Username, count), "CMD-Sync")
		editReply(ctx, syncMessage(count))
	}()
	return nil
}

const syncFailed = "❌ No se pudieron sincronizar los comandos."

// replyEditor is the part of *discord.CommandContext used to answer
type replyEditor interface {
	EditReply(content string) error
}

func editReply(ctx replyEditor, content string) {
	if err := ctx.EditReply(content); err != nil {
		logger.Error(fmt.Sprintf("Error respondiendo /sync: %v", err), "CMD-Sync")
	}
}

func syncMessage(count int) string {
	return fmt.Sprintf("✅ Slash commands synced. (%d)", count)
}
