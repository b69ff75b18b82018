package port

import (
	"context"
	"time"

	"wavebot/internal/core/domain"
)

type Command interface {
	// Respond executes the command for a parsed invocation within the specified timeout.
	Respond(ctx context.Context, timeout time.Duration, inv *domain.Invocation) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
	// GetBuckets returns the names of the rate-limit buckets this command consumes from.
	GetBuckets() []string
	// RequiresAuthority reports whether the command is restricted to guild authorities.
	RequiresAuthority() bool
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}
