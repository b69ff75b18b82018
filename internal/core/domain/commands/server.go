package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/pagination"
	"wavebot/internal/core/port"
)

// GuildSource is the slice of the entity cache the server card reads.
type GuildSource interface {
	Guild(id int64) (*domain.Guild, error)
	Role(id int64) (*domain.Role, error)
	Channel(id int64) (*domain.Channel, error)
}

// ServerHandler posts a card about the current guild that the invoking user
// can expand and minimize through reactions.
type ServerHandler struct {
	sender         port.MessageSender
	guilds         GuildSource
	sessions       *pagination.Manager
	command        string
	sessionTimeout time.Duration
}

func NewServerHandler(sender port.MessageSender, guilds GuildSource, sessions *pagination.Manager,
	command string, sessionTimeout time.Duration) *ServerHandler {
	return &ServerHandler{
		sender:         sender,
		guilds:         guilds,
		sessions:       sessions,
		command:        command,
		sessionTimeout: sessionTimeout,
	}
}

func (h *ServerHandler) GetCommand() string {
	return h.command
}

func (h *ServerHandler) GetBuckets() []string {
	return []string{BucketCards}
}

func (h *ServerHandler) RequiresAuthority() bool {
	return false
}

func (h *ServerHandler) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if inv.GuildID == 0 {
		_, err := h.sender.SendMessageReply(sendCtx, inv.ChannelID, inv.MessageID,
			"This command is only available in servers.")
		return err
	}

	guild, err := h.guilds.Guild(inv.GuildID)
	if err != nil {
		return fmt.Errorf("failed to build server card: %w", err)
	}

	view := pagination.NewToggleView(h.compactCard(guild), h.expandedCard(guild))

	msgID, err := h.sender.SendMessageReply(sendCtx, inv.ChannelID, inv.MessageID, view.Render())
	if err != nil {
		return fmt.Errorf("failed to send server card: %w", err)
	}

	session := pagination.NewSession(h.sender, view, inv.ChannelID, msgID, inv.AuthorID, h.sessionTimeout)
	h.sessions.Spawn(ctx, session)

	return nil
}

func (h *ServerHandler) compactCard(guild *domain.Guild) string {
	return fmt.Sprintf("**%s** — %d roles, %d channels", guild.Name, len(guild.Roles), len(guild.Channels))
}

func (h *ServerHandler) expandedCard(guild *domain.Guild) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s**\nOwner: <@%d>\n", guild.Name, guild.OwnerID)

	b.WriteString("Roles:")
	if len(guild.Roles) == 0 {
		b.WriteString(" none")
	}
	for _, roleID := range guild.Roles {
		role, err := h.guilds.Role(roleID)
		if err != nil {
			// Stale cache entry, skip rather than fabricate.
			continue
		}

		fmt.Fprintf(&b, "\n• %s", role.Name)
	}

	b.WriteString("\nChannels:")
	if len(guild.Channels) == 0 {
		b.WriteString(" none")
	}
	for _, channelID := range guild.Channels {
		channel, err := h.guilds.Channel(channelID)
		if err != nil {
			continue
		}

		fmt.Fprintf(&b, "\n• #%s", channel.Name)
	}

	return b.String()
}
