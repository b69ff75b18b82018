package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantErr    bool
		wantReason string
		wantCmd    string
		wantArgs   []string
	}{
		{
			name:    "command without args",
			text:    "!ping",
			wantCmd: "ping",
		},
		{
			name:     "command with args",
			text:     "!roll 20",
			wantCmd:  "roll",
			wantArgs: []string{"20"},
		},
		{
			name:     "collapses repeated whitespace",
			text:     "  !authorities   add   100  ",
			wantCmd:  "authorities",
			wantArgs: []string{"add", "100"},
		},
		{
			name:    "command name is lowercased",
			text:    "!Roll",
			wantCmd: "roll",
		},
		{
			name:       "no prefix",
			text:       "just chatting",
			wantErr:    true,
			wantReason: "missing command prefix",
		},
		{
			name:       "bare prefix",
			text:       "!   ",
			wantErr:    true,
			wantReason: "empty command name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &Message{ID: 100, ChannelID: 20, GuildID: 10, AuthorID: 2, Text: tt.text}

			inv, err := ParseInvocation("!", msg)
			if tt.wantErr {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, tt.wantReason, parseErr.Reason)
				assert.Nil(t, inv)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCmd, inv.Command)
			if tt.wantArgs == nil {
				assert.Empty(t, inv.Args)
			} else {
				assert.Equal(t, tt.wantArgs, inv.Args)
			}
			assert.Equal(t, int64(2), inv.AuthorID)
			assert.Equal(t, int64(10), inv.GuildID)
			assert.Equal(t, int64(100), inv.MessageID)
			assert.NotEmpty(t, inv.ID.String())
		})
	}
}

func TestParseInvocationDistinctIDs(t *testing.T) {
	msg := &Message{Text: "!ping"}

	first, err := ParseInvocation("!", msg)
	require.NoError(t, err)
	second, err := ParseInvocation("!", msg)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
