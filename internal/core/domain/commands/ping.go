package commands

import (
	"context"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"
)

type PingHandler struct {
	sender  port.MessageSender
	command string
}

func NewPingHandler(sender port.MessageSender, command string) *PingHandler {
	return &PingHandler{sender: sender, command: command}
}

func (h *PingHandler) GetCommand() string {
	return h.command
}

func (h *PingHandler) GetBuckets() []string {
	return []string{BucketDefault}
}

func (h *PingHandler) RequiresAuthority() bool {
	return false
}

func (h *PingHandler) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := h.sender.SendMessageReply(ctx, inv.ChannelID, inv.MessageID, "pong 🏓")

	return err
}
