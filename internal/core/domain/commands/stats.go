package commands

import (
	"context"
	"fmt"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"
)

// StatsSource reports how many entities each cache arena currently holds.
type StatsSource interface {
	Stats() map[domain.EntityKind]int
}

// StatsHandler reports cache occupancy, for operators keeping an eye on
// memory. Authority-gated since the numbers leak guild topology.
type StatsHandler struct {
	sender  port.MessageSender
	stats   StatsSource
	command string
}

func NewStatsHandler(sender port.MessageSender, stats StatsSource, command string) *StatsHandler {
	return &StatsHandler{sender: sender, stats: stats, command: command}
}

func (h *StatsHandler) GetCommand() string {
	return h.command
}

func (h *StatsHandler) GetBuckets() []string {
	return []string{BucketDefault}
}

func (h *StatsHandler) RequiresAuthority() bool {
	return true
}

func (h *StatsHandler) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	counts := h.stats.Stats()

	text := fmt.Sprintf("Cache stats:\nGuilds: %d\nMembers: %d\nUsers: %d\nRoles: %d\nChannels: %d",
		counts[domain.KindGuild],
		counts[domain.KindMember],
		counts[domain.KindUser],
		counts[domain.KindRole],
		counts[domain.KindChannel],
	)

	_, err := h.sender.SendMessageReply(ctx, inv.ChannelID, inv.MessageID, text)

	return err
}
