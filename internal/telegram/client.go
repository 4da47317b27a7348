// Package telegram implements the notification channel: outbound messages,
// inbound command processing, and a cancellable long-poll listener.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/httputil"
	"github.com/wonny/stockbot/pkg/logger"
)

const apiBase = "https://api.telegram.org"

// Update is one inbound Telegram update.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message"`
	EditedMessage *Message `json:"edited_message"`
}

// Message is the chat message payload of an update.
type Message struct {
	Text string `json:"text"`
	Chat struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Username string `json:"username"`
	} `json:"chat"`
	From struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	} `json:"from"`
}

// Text returns the message of an update, preferring the original over an
// edit. Nil-safe.
func (u Update) Text() *Message {
	if u.Message != nil {
		return u.Message
	}
	return u.EditedMessage
}

// Client talks to the Telegram Bot API. With dry-run set or credentials
// absent, Send degrades to log-only and GetUpdates returns nothing.
type Client struct {
	botToken string
	chatID   string
	dryRun   bool
	http     *httputil.Client
	logger   *logger.Logger
}

// New creates a Telegram client from config.
func New(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		botToken: cfg.TelegramBotToken,
		chatID:   cfg.TelegramChatID,
		dryRun:   cfg.DryRun,
		// Bot API allows ~30 msg/s; stay well under it.
		http:   httputil.New(log).WithRateLimit(1, 3),
		logger: log,
	}
}

// Send delivers a message to the configured chat. A dry run or missing
// credentials logs the message instead; transport failures are returned to
// the caller.
func (c *Client) Send(ctx context.Context, text string) error {
	if c.dryRun || c.botToken == "" || c.chatID == "" {
		c.logger.Infof("Telegram dry run or missing credentials. Message:\n%s", text)
		return nil
	}

	c.logger.WithField("chat_id", c.chatID).Info("Sending Telegram message")
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, c.botToken)
	resp, err := c.http.PostJSON(ctx, endpoint, map[string]string{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	body, err := httputil.ReadBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, body)
	}
	return nil
}

// GetUpdates fetches inbound updates. Pass the last processed update id + 1
// as offset so processed updates are never redelivered. A missing bot token
// yields no updates.
func (c *Client) GetUpdates(ctx context.Context, offset *int64) ([]Update, error) {
	if c.botToken == "" {
		c.logger.Info("Telegram bot token missing; cannot fetch updates")
		return nil, nil
	}

	params := url.Values{}
	params.Set("timeout", "10")
	if offset != nil {
		params.Set("offset", strconv.FormatInt(*offset, 10))
	}
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", apiBase, c.botToken, params.Encode())

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch updates: %w", err)
	}
	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, body)
	}

	var payload struct {
		OK     bool     `json:"ok"`
		Result []Update `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return payload.Result, nil
}

// LogMessages fetches updates and logs chat messages. Returns the next
// offset to use, or the passed offset when nothing arrived.
func (c *Client) LogMessages(ctx context.Context, offset *int64) (*int64, error) {
	updates, err := c.GetUpdates(ctx, offset)
	if err != nil {
		return offset, err
	}
	if len(updates) == 0 {
		c.logger.Info("No Telegram updates available")
		return offset, nil
	}

	var last int64
	for _, u := range updates {
		last = u.UpdateID
		msg := u.Text()
		if msg == nil || msg.Text == "" {
			continue
		}
		sender := msg.From.Username
		if sender == "" {
			sender = msg.From.FirstName
		}
		title := msg.Chat.Title
		if title == "" {
			title = msg.Chat.Username
		}
		c.logger.Infof("Chat %d %s (%s): %s", msg.Chat.ID, title, sender, msg.Text)
	}

	next := last + 1
	return &next, nil
}
