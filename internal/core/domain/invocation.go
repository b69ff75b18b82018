package domain

import (
	"strings"

	"github.com/gofrs/uuid/v5"
)

// Invocation is one parsed command request. Created at message arrival,
// consumed once by the router, never persisted.
type Invocation struct {
	ID         uuid.UUID
	Command    string
	Args       []string
	AuthorID   int64
	AuthorName string
	GuildID    int64
	ChannelID  int64
	MessageID  int64
}

// ParseInvocation turns an inbound message starting with prefix into an
// Invocation. Returns a ParseError on input that carries the prefix but no
// usable command name.
func ParseInvocation(prefix string, msg *Message) (*Invocation, error) {
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, prefix) {
		return nil, &ParseError{Input: msg.Text, Reason: "missing command prefix"}
	}

	fields := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(fields) == 0 || fields[0] == "" {
		return nil, &ParseError{Input: msg.Text, Reason: "empty command name"}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	return &Invocation{
		ID:         id,
		Command:    strings.ToLower(fields[0]),
		Args:       fields[1:],
		AuthorID:   msg.AuthorID,
		AuthorName: msg.AuthorName,
		GuildID:    msg.GuildID,
		ChannelID:  msg.ChannelID,
		MessageID:  msg.ID,
	}, nil
}
