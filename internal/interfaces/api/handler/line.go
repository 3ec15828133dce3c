package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"remindme/internal/application/service"
	"remindme/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// LineMessenger is the part of the LINE client the webhook handler needs.
type LineMessenger interface {
	ParseRequest(r *http.Request) ([]*linebot.Event, error)
	SendMessages(replyToken string, messages ...linebot.SendingMessage) error
}

// LineHandler handles incoming LINE webhook events.
type LineHandler struct {
	lineClient  LineMessenger
	commands    *CommandHandler
	userService service.UserService
	log         logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient LineMessenger,
	commands *CommandHandler,
	userService service.UserService,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient:  lineClient,
		commands:    commands,
		userService: userService,
		log:         log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Debug(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		case linebot.EventTypeUnfollow:
			h.handleUnfollowEvent(ctx, event)
		default:
			h.log.Info(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handleFollowEvent registers the user and replies with the help text.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	userID := sourceID(event)
	h.log.Info(fmt.Sprintf("User %s followed the bot.", userID))
	h.reply(event.ReplyToken, h.commands.Handle(ctx, userID, "help"))
}

// handleUnfollowEvent removes the user and all of their reminders.
func (h *LineHandler) handleUnfollowEvent(ctx context.Context, event *linebot.Event) {
	userID := sourceID(event)
	h.log.Info(fmt.Sprintf("User %s unfollowed or blocked the bot.", userID))

	_ = h.userService.DeleteUser(ctx, userID) // Error already logged by service
}

// handleMessageEvent runs text messages as commands.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	userID := sourceID(event)

	switch message := event.Message.(type) {
	case *linebot.TextMessage:
		h.log.Info(fmt.Sprintf("Received text message from %s: %s", userID, message.Text))
		h.reply(event.ReplyToken, h.commands.Handle(ctx, userID, message.Text))
	default:
		h.log.Info(fmt.Sprintf("Received non-text message type from %s", userID))
	}
}

func (h *LineHandler) reply(replyToken, text string) {
	if text == "" {
		return
	}
	if err := h.lineClient.SendMessages(replyToken, linebot.NewTextMessage(text)); err != nil {
		h.log.Error("Failed to send reply message", err)
	}
}

// sourceID returns the id replies and reminders are addressed to: the group or
// room for group chats, the user otherwise.
func sourceID(event *linebot.Event) string {
	if event.Source == nil {
		return ""
	}
	switch event.Source.Type {
	case linebot.EventSourceTypeGroup:
		return event.Source.GroupID
	case linebot.EventSourceTypeRoom:
		return event.Source.RoomID
	default:
		return event.Source.UserID
	}
}
