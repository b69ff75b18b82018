package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden marks a platform call rejected because the bot lost the
	// required permission. Permanent, not retryable.
	ErrForbidden = errors.New("missing permission for platform call")

	ErrUnknownCommand = errors.New("unknown command")
)

// CacheMissError reports an entity that is not present in the cache. Absence
// is an explicit result, distinct from any default value.
type CacheMissError struct {
	Kind    EntityKind
	ID      int64
	GuildID int64
}

func (e *CacheMissError) Error() string {
	if e.GuildID != 0 {
		return fmt.Sprintf("%s %d not cached for guild %d", e.Kind, e.ID, e.GuildID)
	}

	return fmt.Sprintf("%s %d not cached", e.Kind, e.ID)
}

// ParseError reports malformed command input. Always user-facing, never fatal.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q: %s", e.Input, e.Reason)
}
