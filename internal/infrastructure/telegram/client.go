package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// UpdateHandler processes one inbound update.
type UpdateHandler func(ctx context.Context, update *models.Update)

// Client wraps the Telegram bot API client and its long-polling loop.
type Client struct {
	bot     *bot.Bot
	log     logger.Logger
	mu      sync.RWMutex
	handler UpdateHandler
}

// NewClient creates a Telegram client. Extra options are passed to bot.New.
func NewClient(token string, log logger.Logger, opts ...bot.Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN must be set")
	}

	c := &Client{log: log}
	opts = append([]bot.Option{bot.WithDefaultHandler(c.dispatch)}, opts...)

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot client: %w", err)
	}
	c.bot = b
	log.Info("Successfully created Telegram bot client.")
	return c, nil
}

// SetUpdateHandler sets the function called for every inbound update.
// This is called during dependency setup, after the handler that needs this
// client for replies has been built.
func (c *Client) SetUpdateHandler(h UpdateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

func (c *Client) dispatch(ctx context.Context, _ *bot.Bot, update *models.Update) {
	c.mu.RLock()
	h := c.handler
	c.mu.RUnlock()

	if h == nil {
		c.log.Warn(fmt.Sprintf("No update handler set, dropping update %d", update.ID))
		return
	}
	h(ctx, update)
}

// Start runs long polling until ctx is cancelled.
func (c *Client) Start(ctx context.Context) {
	c.log.Info("Telegram long polling started.")
	c.bot.Start(ctx)
	c.log.Info("Telegram long polling stopped.")
}

// SendMessage sends a plain text message to a chat. ownerID is the decimal chat id.
func (c *Client) SendMessage(ctx context.Context, ownerID, text string) error {
	chatID, err := ChatID(ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDelivery, err)
	}
	if _, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		return fmt.Errorf("%w: telegram send to %s: %v", appErrors.ErrDelivery, ownerID, err)
	}
	c.log.Debug(fmt.Sprintf("Sent message to chat %s.", ownerID))
	return nil
}

// OwnerID renders a chat id as the owner identifier stored with reminders.
func OwnerID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// ChatID parses an owner identifier back into a chat id.
func ChatID(ownerID string) (int64, error) {
	id, err := strconv.ParseInt(ownerID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", ownerID, err)
	}
	return id, nil
}
