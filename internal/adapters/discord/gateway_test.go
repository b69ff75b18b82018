package discord

import (
	"context"
	"testing"
	"time"

	"wavebot/internal/core/cache"
	"wavebot/internal/core/domain"
	"wavebot/internal/core/pagination"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingRouter struct {
	started chan *domain.Message
	release chan struct{}
}

func newBlockingRouter() *blockingRouter {
	return &blockingRouter{
		started: make(chan *domain.Message, 1),
		release: make(chan struct{}),
	}
}

func (r *blockingRouter) HandleMessage(_ context.Context, msg *domain.Message) {
	r.started <- msg
	<-r.release
}

func TestGatewayAppliesEntityEventsInArrivalOrder(t *testing.T) {
	entities := cache.New()
	g := NewGateway(context.Background(), entities, newBlockingRouter(), pagination.NewManager())

	g.guildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{
		ID:      "10",
		Name:    "hsburg",
		OwnerID: "1",
	}})

	g.roleCreate(nil, &discordgo.GuildRoleCreate{GuildRole: &discordgo.GuildRole{
		GuildID: "10",
		Role:    &discordgo.Role{ID: "11", Name: "mods"},
	}})
	g.roleUpdate(nil, &discordgo.GuildRoleUpdate{GuildRole: &discordgo.GuildRole{
		GuildID: "10",
		Role:    &discordgo.Role{ID: "11", Name: "moderators"},
	}})
	g.roleDelete(nil, &discordgo.GuildRoleDelete{GuildID: "10", RoleID: "11"})

	_, err := entities.Role(11)
	var miss *domain.CacheMissError
	assert.ErrorAs(t, err, &miss)
}

func TestGatewayMessageCreateKeepsDispatchFree(t *testing.T) {
	entities := cache.New()
	router := newBlockingRouter()
	g := NewGateway(context.Background(), entities, router, pagination.NewManager())

	done := make(chan struct{})
	go func() {
		g.messageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{
			ID:        "100",
			ChannelID: "20",
			GuildID:   "10",
			Content:   "!ping",
			Author:    &discordgo.User{ID: "2", Username: "neo"},
		}})
		close(done)
	}()

	// The handler must return while the router is still busy.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("messageCreate blocked on the router")
	}

	var msg *domain.Message
	select {
	case msg = <-router.started:
	case <-time.After(time.Second):
		t.Fatal("router never received the message")
	}
	close(router.release)

	require.Equal(t, int64(100), msg.ID)
	assert.Equal(t, int64(2), msg.AuthorID)
	assert.Equal(t, "!ping", msg.Text)

	// The author was cached on the dispatch path, not on the router's.
	user, err := entities.User(2)
	require.NoError(t, err)
	assert.Equal(t, "neo", user.Username)
}

func TestGatewayIgnoresMessagesWithoutAuthor(t *testing.T) {
	router := newBlockingRouter()
	g := NewGateway(context.Background(), cache.New(), router, pagination.NewManager())

	g.messageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{ID: "100"}})

	select {
	case <-router.started:
		t.Fatal("authorless message reached the router")
	case <-time.After(50 * time.Millisecond):
	}
}
