package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client.
type Client struct {
	*linebot.Client
	log logger.Logger
}

// NewClient creates a LINE Bot client from the channel credentials.
func NewClient(channelSecret, channelToken string, log logger.Logger) (*Client, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, errors.New("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
	}

	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client: bot,
		log:    log,
	}, nil
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(replyToken string, messages ...linebot.SendingMessage) error {
	_, err := c.ReplyMessage(replyToken, messages...).Do()
	if err != nil {
		return err // Return the error for the caller to handle
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	_, err := c.PushMessage(to, messages...).WithContext(ctx).Do()
	if err != nil {
		return err // Return the error for the caller to handle
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// SendMessage pushes a plain text message to a user. It is the Notifier used
// for scheduled deliveries.
func (c *Client) SendMessage(ctx context.Context, ownerID, text string) error {
	if err := c.PushMessages(ctx, ownerID, linebot.NewTextMessage(text)); err != nil {
		return fmt.Errorf("%w: line push to %s: %v", appErrors.ErrDelivery, ownerID, err)
	}
	return nil
}

// ParseRequest parses incoming webhook requests.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.Client.ParseRequest(r)
}
