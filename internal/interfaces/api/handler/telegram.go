package handler

import (
	"context"
	"fmt"

	"remindme/internal/application/service"
	"remindme/internal/infrastructure/telegram"
	"remindme/internal/pkg/logger"

	"github.com/go-telegram/bot/models"
)

// TelegramHandler handles updates received by long polling.
type TelegramHandler struct {
	notifier    service.Notifier
	commands    *CommandHandler
	userService service.UserService
	log         logger.Logger
}

// NewTelegramHandler creates a new TelegramHandler. Replies go out through notifier.
func NewTelegramHandler(
	notifier service.Notifier,
	commands *CommandHandler,
	userService service.UserService,
	log logger.Logger,
) *TelegramHandler {
	return &TelegramHandler{
		notifier:    notifier,
		commands:    commands,
		userService: userService,
		log:         log,
	}
}

// HandleUpdate is registered with telegram.Client.SetUpdateHandler.
func (h *TelegramHandler) HandleUpdate(ctx context.Context, update *models.Update) {
	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.MyChatMember != nil:
		h.handleMyChatMember(ctx, update.MyChatMember)
	default:
		h.log.Debug(fmt.Sprintf("Ignoring update %d", update.ID))
	}
}

func (h *TelegramHandler) handleMessage(ctx context.Context, message *models.Message) {
	if message.Text == "" {
		h.log.Info(fmt.Sprintf("Received non-text message in chat %d", message.Chat.ID))
		return
	}

	ownerID := telegram.OwnerID(message.Chat.ID)
	h.log.Info(fmt.Sprintf("Received text message from %s: %s", ownerID, message.Text))

	reply := h.commands.Handle(ctx, ownerID, message.Text)
	if reply == "" {
		return
	}
	if err := h.notifier.SendMessage(ctx, ownerID, reply); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send reply to chat %s", ownerID), err)
	}
}

// handleMyChatMember removes the chat's data once the bot is blocked or kicked.
func (h *TelegramHandler) handleMyChatMember(ctx context.Context, member *models.ChatMemberUpdated) {
	if member.NewChatMember.Type != models.ChatMemberTypeBanned {
		return
	}
	ownerID := telegram.OwnerID(member.Chat.ID)
	h.log.Info(fmt.Sprintf("Bot was blocked or removed in chat %s.", ownerID))

	_ = h.userService.DeleteUser(ctx, ownerID) // Error already logged by service
}
