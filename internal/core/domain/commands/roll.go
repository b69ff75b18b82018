package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const defaultRollLimit = 100

type RollHandler struct {
	sender  port.MessageSender
	command string
}

func NewRollHandler(sender port.MessageSender, command string) *RollHandler {
	return &RollHandler{sender: sender, command: command}
}

func (h *RollHandler) GetCommand() string {
	return h.command
}

func (h *RollHandler) GetBuckets() []string {
	return []string{BucketDefault}
}

func (h *RollHandler) RequiresAuthority() bool {
	return false
}

// Respond rolls a random number between 1 and an optional upper limit,
// defaulting to 100. Unparseable limits fall back to the default.
func (h *RollHandler) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	limit := defaultRollLimit
	if len(inv.Args) > 0 {
		if n, err := strconv.Atoi(inv.Args[0]); err == nil && n > 0 {
			limit = n
		}
	}

	num := rand.N(limit) + 1

	plural := "s"
	if num == 1 {
		plural = ""
	}

	log.Debug().Stringer("invocationId", inv.ID).Int("roll", num).Msg("rolled")

	_, err := h.sender.SendMessageReply(ctx, inv.ChannelID, inv.MessageID,
		fmt.Sprintf("<@%d> rolls %d point%s 🎲", inv.AuthorID, num, plural))

	return err
}
