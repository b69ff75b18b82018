package commands

import (
	"context"
	"testing"
	"time"

	"wavebot/internal/core/pagination"
	"wavebot/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistry struct {
	names []string
}

func (s *stubRegistry) Register(_ port.Command)            {}
func (s *stubRegistry) Get(_ string) (port.Command, error) { return nil, nil }
func (s *stubRegistry) ListCommands() []string             { return s.names }

func TestHelpPages(t *testing.T) {
	tests := []struct {
		name      string
		commands  []string
		wantPages int
		wantFirst string
	}{
		{
			name:      "single page",
			commands:  []string{"help", "ping", "roll"},
			wantPages: 1,
			wantFirst: "Available commands:\n• `!help`\n• `!ping`\n• `!roll`",
		},
		{
			name:      "splits into pages of five",
			commands:  []string{"a", "b", "c", "d", "e", "f"},
			wantPages: 2,
			wantFirst: "Available commands:\n• `!a`\n• `!b`\n• `!c`\n• `!d`\n• `!e`",
		},
		{
			name:      "no commands",
			commands:  nil,
			wantPages: 1,
			wantFirst: "No commands registered.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHelpHandler(&mockSender{}, &stubRegistry{names: tt.commands}, pagination.NewManager(),
				"help", "!", time.Minute)

			pages := h.pages()
			require.Len(t, pages, tt.wantPages)
			assert.Equal(t, tt.wantFirst, pages[0])
		})
	}
}

func TestHelpRespondSpawnsSession(t *testing.T) {
	sender := &mockSender{}
	sessions := pagination.NewManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHelpHandler(sender, &stubRegistry{names: []string{"ping", "roll"}}, sessions, "help", "!", time.Minute)

	err := h.Respond(ctx, time.Second, testInvocation("help"))
	require.NoError(t, err)

	require.Len(t, sender.replies, 1)
	assert.Contains(t, sender.replies[0], "`!ping`")
	assert.Contains(t, sender.replies[0], "Page 1/1")

	require.Eventually(t, func() bool { return sessions.Active() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	sessions.Wait()
	assert.Equal(t, 0, sessions.Active())
}
