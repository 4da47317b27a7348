package telegram

import (
	"context"
	"strings"

	"github.com/wonny/stockbot/internal/contracts"
)

// ApplyUpdates folds a batch of inbound updates into the telegram state.
// Every update advances the sync cursor so re-fetching with
// offset = last_update_id + 1 never redelivers it; recognized commands flip
// the heartbeat flag and produce a confirmation reply. Pure function of
// (state, updates); transport and persistence stay with the caller.
func ApplyUpdates(st contracts.TelegramState, updates []Update) (contracts.TelegramState, []string, bool) {
	changed := false
	var replies []string

	for _, u := range updates {
		if st.LastUpdateID == nil || u.UpdateID > *st.LastUpdateID {
			id := u.UpdateID
			st.LastUpdateID = &id
			changed = true
		}

		msg := u.Text()
		if msg == nil {
			continue
		}
		enabled, ok := parseHeartbeatCommand(msg.Text, st.HeartbeatEnabled)
		if !ok {
			continue
		}
		if enabled != st.HeartbeatEnabled {
			st.HeartbeatEnabled = enabled
			changed = true
		}
		if enabled {
			replies = append(replies, "Heartbeat log enabled.")
		} else {
			replies = append(replies, "Heartbeat log disabled.")
		}
	}

	return st, replies, changed
}

// parseHeartbeatCommand recognizes /log, /heartbeat and /hb with an optional
// on/off argument; no argument toggles the current value.
func parseHeartbeatCommand(text string, current bool) (enabled, ok bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return false, false
	}

	cmd := strings.ToLower(fields[0])
	// Commands may arrive as /hb@botname in group chats.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	switch cmd {
	case "/log", "/heartbeat", "/hb":
	default:
		return false, false
	}

	if len(fields) == 1 {
		return !current, true
	}
	switch strings.ToLower(fields[1]) {
	case "on", "enable", "true", "start", "yes":
		return true, true
	case "off", "disable", "false", "stop", "no":
		return false, true
	default:
		return !current, true
	}
}

// Sync fetches pending updates and applies any commands to the state in
// memory, sending confirmations best-effort. The caller persists the state.
func (c *Client) Sync(ctx context.Context, state *contracts.State) error {
	var offset *int64
	if state.Telegram.LastUpdateID != nil {
		next := *state.Telegram.LastUpdateID + 1
		offset = &next
	}

	updates, err := c.GetUpdates(ctx, offset)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}

	tg, replies, changed := ApplyUpdates(state.Telegram, updates)
	state.Telegram = tg
	if changed {
		c.logger.WithFields(map[string]interface{}{
			"updates":   len(updates),
			"heartbeat": tg.HeartbeatEnabled,
		}).Info("Processed Telegram commands")
	}
	for _, reply := range replies {
		if err := c.Send(ctx, reply); err != nil {
			c.logger.WithError(err).Warn("Failed to send command confirmation")
		}
	}
	return nil
}
