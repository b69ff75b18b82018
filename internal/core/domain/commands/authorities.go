package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const authoritiesUsage = "Usage: `authorities`, `authorities add <role-id>` or `authorities remove <role-id>`"

// AuthoritiesHandler lets guild authorities inspect and change which roles
// count as authorities. The router already gated the invocation, so by the
// time Respond runs the actor is admin or holds one of the current roles.
type AuthoritiesHandler struct {
	sender  port.MessageSender
	store   port.AuthorityStore
	command string
}

func NewAuthoritiesHandler(sender port.MessageSender, store port.AuthorityStore, command string) *AuthoritiesHandler {
	return &AuthoritiesHandler{sender: sender, store: store, command: command}
}

func (h *AuthoritiesHandler) GetCommand() string {
	return h.command
}

func (h *AuthoritiesHandler) GetBuckets() []string {
	return []string{BucketDefault}
}

func (h *AuthoritiesHandler) RequiresAuthority() bool {
	return true
}

func (h *AuthoritiesHandler) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l := log.With().
		Stringer("invocationId", inv.ID).
		Int64("guildId", inv.GuildID).
		Logger()

	if len(inv.Args) == 0 || inv.Args[0] == "list" {
		return h.list(ctx, inv)
	}

	if len(inv.Args) < 2 {
		return h.reply(ctx, inv, authoritiesUsage)
	}

	roleID, err := strconv.ParseInt(inv.Args[1], 10, 64)
	if err != nil || roleID <= 0 {
		return h.reply(ctx, inv, fmt.Sprintf("`%s` is not a role id.\n%s", inv.Args[1], authoritiesUsage))
	}

	var (
		roles []int64
		ok    bool
	)

	switch inv.Args[0] {
	case "add":
		roles, ok, err = h.store.AddAuthorityRole(ctx, inv.GuildID, roleID)
		if err != nil {
			return fmt.Errorf("failed to add authority role: %w", err)
		}
		if !ok {
			return h.reply(ctx, inv, fmt.Sprintf("<@&%d> is already an authority role.", roleID))
		}
	case "remove":
		roles, ok, err = h.store.RemoveAuthorityRole(ctx, inv.GuildID, roleID)
		if err != nil {
			return fmt.Errorf("failed to remove authority role: %w", err)
		}
		if !ok {
			return h.reply(ctx, inv, fmt.Sprintf("<@&%d> is not an authority role.", roleID))
		}
	default:
		return h.reply(ctx, inv, authoritiesUsage)
	}

	l.Info().Str("action", inv.Args[0]).Int64("roleId", roleID).Msg("authority roles updated")

	return h.reply(ctx, inv, "Authority roles updated:\n"+formatRoles(roles))
}

func (h *AuthoritiesHandler) list(ctx context.Context, inv *domain.Invocation) error {
	roles, err := h.store.AuthorityRoles(ctx, inv.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch authority roles: %w", err)
	}

	return h.reply(ctx, inv, "Current authority roles:\n"+formatRoles(roles))
}

func (h *AuthoritiesHandler) reply(ctx context.Context, inv *domain.Invocation, text string) error {
	_, err := h.sender.SendMessageReply(ctx, inv.ChannelID, inv.MessageID, text)
	return err
}

func formatRoles(roleIDs []int64) string {
	if len(roleIDs) == 0 {
		return "None, only admins count as authorities."
	}

	mentions := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		mentions[i] = fmt.Sprintf("<@&%d>", id)
	}

	return strings.Join(mentions, ", ")
}
