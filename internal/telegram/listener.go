package telegram

import (
	"context"
	"time"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/pkg/logger"
)

// Listener long-polls the bot for updates, applies commands, and persists
// state whenever it changes. The loop stops when its context is cancelled.
type Listener struct {
	client      *Client
	store       *store.Store
	logger      *logger.Logger
	poll        time.Duration
	logMessages bool
}

// NewListener creates a listener.
func NewListener(client *Client, st *store.Store, log *logger.Logger, poll time.Duration, logMessages bool) *Listener {
	if poll <= 0 {
		poll = time.Second
	}
	return &Listener{
		client:      client,
		store:       st,
		logger:      log,
		poll:        poll,
		logMessages: logMessages,
	}
}

// Listen runs until ctx is cancelled. Transport errors are logged and the
// loop keeps polling; only storage failures terminate it.
func (l *Listener) Listen(ctx context.Context, state *contracts.State) error {
	l.logger.WithField("poll", l.poll).Info("Telegram listener started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Telegram listener stopped")
			return nil
		default:
		}

		if err := l.pollOnce(ctx, state); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			l.logger.Info("Telegram listener stopped")
			return nil
		case <-time.After(l.poll):
		}
	}
}

// pollOnce fetches one batch of updates and applies it.
func (l *Listener) pollOnce(ctx context.Context, state *contracts.State) error {
	var offset *int64
	if state.Telegram.LastUpdateID != nil {
		next := *state.Telegram.LastUpdateID + 1
		offset = &next
	}

	updates, err := l.client.GetUpdates(ctx, offset)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		l.logger.WithError(err).Warn("Polling request failed")
		return nil
	}
	if len(updates) == 0 {
		return nil
	}

	if l.logMessages {
		for _, u := range updates {
			if msg := u.Text(); msg != nil && msg.Text != "" {
				l.logger.Infof("Chat %d: %s", msg.Chat.ID, msg.Text)
			}
		}
	}

	tg, replies, changed := ApplyUpdates(state.Telegram, updates)
	state.Telegram = tg
	for _, reply := range replies {
		if err := l.client.Send(ctx, reply); err != nil {
			l.logger.WithError(err).Warn("Failed to send command confirmation")
		}
	}
	if changed {
		if err := l.store.SaveState(state); err != nil {
			return err
		}
	}
	return nil
}
