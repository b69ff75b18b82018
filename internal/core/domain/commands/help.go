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

const helpPageSize = 5

// HelpHandler replies with a paginated command list driven by a reaction
// session. The session outlives the invocation and is bounded by the
// configured session timeout.
type HelpHandler struct {
	sender         port.MessageSender
	registry       port.CommandRegistry
	sessions       *pagination.Manager
	command        string
	prefix         string
	sessionTimeout time.Duration
}

func NewHelpHandler(sender port.MessageSender, registry port.CommandRegistry, sessions *pagination.Manager,
	command, prefix string, sessionTimeout time.Duration) *HelpHandler {
	return &HelpHandler{
		sender:         sender,
		registry:       registry,
		sessions:       sessions,
		command:        command,
		prefix:         prefix,
		sessionTimeout: sessionTimeout,
	}
}

func (h *HelpHandler) GetCommand() string {
	return h.command
}

func (h *HelpHandler) GetBuckets() []string {
	return []string{BucketDefault}
}

func (h *HelpHandler) RequiresAuthority() bool {
	return false
}

func (h *HelpHandler) Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error {
	view := pagination.NewPageView(h.pages())

	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msgID, err := h.sender.SendMessageReply(sendCtx, inv.ChannelID, inv.MessageID, view.Render())
	if err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	// The session inherits the outer context so it survives this
	// invocation but still dies on shutdown.
	session := pagination.NewSession(h.sender, view, inv.ChannelID, msgID, inv.AuthorID, h.sessionTimeout)
	h.sessions.Spawn(ctx, session)

	return nil
}

func (h *HelpHandler) pages() []string {
	names := h.registry.ListCommands()

	var pages []string
	for start := 0; start < len(names); start += helpPageSize {
		end := min(start+helpPageSize, len(names))

		var b strings.Builder
		b.WriteString("Available commands:\n")
		for _, name := range names[start:end] {
			fmt.Fprintf(&b, "• `%s%s`\n", h.prefix, name)
		}

		pages = append(pages, strings.TrimRight(b.String(), "\n"))
	}

	if len(pages) == 0 {
		pages = []string{"No commands registered."}
	}

	return pages
}
