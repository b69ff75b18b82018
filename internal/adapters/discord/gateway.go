package discord

import (
	"context"

	"wavebot/internal/core/cache"
	"wavebot/internal/core/domain"
	"wavebot/internal/core/pagination"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type messageRouter interface {
	HandleMessage(ctx context.Context, msg *domain.Message)
}

// Gateway translates discordgo gateway events into domain events and feeds
// them to the cache, the router and the session manager. It requires the
// session to run with SyncEvents enabled: cache writes happen on the
// dispatch goroutine so events for one entity apply in arrival order, and
// anything slow (command handling) is pushed onto its own goroutine to keep
// dispatch from stalling.
type Gateway struct {
	ctx      context.Context
	entities *cache.Cache
	router   messageRouter
	sessions *pagination.Manager
}

func NewGateway(ctx context.Context, entities *cache.Cache, router messageRouter,
	sessions *pagination.Manager) *Gateway {
	return &Gateway{ctx: ctx, entities: entities, router: router, sessions: sessions}
}

// Register attaches all event handlers to the discord session.
func (g *Gateway) Register(session *discordgo.Session) {
	session.AddHandler(g.guildCreate)
	session.AddHandler(g.guildUpdate)
	session.AddHandler(g.guildDelete)
	session.AddHandler(g.roleCreate)
	session.AddHandler(g.roleUpdate)
	session.AddHandler(g.roleDelete)
	session.AddHandler(g.memberAdd)
	session.AddHandler(g.memberUpdate)
	session.AddHandler(g.memberRemove)
	session.AddHandler(g.channelCreate)
	session.AddHandler(g.channelUpdate)
	session.AddHandler(g.channelDelete)
	session.AddHandler(g.messageCreate)
	session.AddHandler(g.reactionAdd)
	session.AddHandler(g.reactionRemove)
}

func (g *Gateway) guildCreate(_ *discordgo.Session, e *discordgo.GuildCreate) {
	guildID := parseSnowflake(e.ID)

	ev := domain.GuildCreate{Guild: convertGuild(e.Guild)}

	for _, r := range e.Roles {
		ev.Roles = append(ev.Roles, convertRole(guildID, r))
	}
	for _, m := range e.Members {
		ev.Members = append(ev.Members, convertMember(m))
	}
	for _, c := range e.Channels {
		ev.Channels = append(ev.Channels, convertChannel(c))
	}

	log.Debug().Int64("guildId", guildID).Int("members", len(ev.Members)).Msg("guild cached")
	g.entities.Apply(ev)
}

func (g *Gateway) guildUpdate(_ *discordgo.Session, e *discordgo.GuildUpdate) {
	g.entities.Apply(domain.GuildUpdate{Guild: convertGuild(e.Guild)})
}

func (g *Gateway) guildDelete(_ *discordgo.Session, e *discordgo.GuildDelete) {
	g.entities.Apply(domain.GuildDelete{GuildID: parseSnowflake(e.ID)})
}

func (g *Gateway) roleCreate(_ *discordgo.Session, e *discordgo.GuildRoleCreate) {
	g.entities.Apply(domain.RoleCreate{Role: convertRole(parseSnowflake(e.GuildID), e.Role)})
}

func (g *Gateway) roleUpdate(_ *discordgo.Session, e *discordgo.GuildRoleUpdate) {
	g.entities.Apply(domain.RoleUpdate{Role: convertRole(parseSnowflake(e.GuildID), e.Role)})
}

func (g *Gateway) roleDelete(_ *discordgo.Session, e *discordgo.GuildRoleDelete) {
	g.entities.Apply(domain.RoleDelete{
		GuildID: parseSnowflake(e.GuildID),
		RoleID:  parseSnowflake(e.RoleID),
	})
}

func (g *Gateway) memberAdd(_ *discordgo.Session, e *discordgo.GuildMemberAdd) {
	g.entities.Apply(domain.MemberAdd{Member: convertMember(e.Member)})
}

func (g *Gateway) memberUpdate(_ *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	g.entities.Apply(domain.MemberUpdate{Member: convertMember(e.Member)})
}

func (g *Gateway) memberRemove(_ *discordgo.Session, e *discordgo.GuildMemberRemove) {
	g.entities.Apply(domain.MemberRemove{
		GuildID: parseSnowflake(e.GuildID),
		UserID:  parseSnowflake(e.User.ID),
	})
}

func (g *Gateway) channelCreate(_ *discordgo.Session, e *discordgo.ChannelCreate) {
	g.entities.Apply(domain.ChannelCreate{Channel: convertChannel(e.Channel)})
}

func (g *Gateway) channelUpdate(_ *discordgo.Session, e *discordgo.ChannelUpdate) {
	g.entities.Apply(domain.ChannelUpdate{Channel: convertChannel(e.Channel)})
}

func (g *Gateway) channelDelete(_ *discordgo.Session, e *discordgo.ChannelDelete) {
	g.entities.Apply(domain.ChannelDelete{ChannelID: parseSnowflake(e.ID)})
}

func (g *Gateway) messageCreate(_ *discordgo.Session, e *discordgo.MessageCreate) {
	if e.Author == nil {
		return
	}

	g.entities.Apply(domain.UserUpdate{User: domain.User{
		ID:       parseSnowflake(e.Author.ID),
		Username: e.Author.Username,
		Bot:      e.Author.Bot,
	}})

	msg := &domain.Message{
		ID:          parseSnowflake(e.ID),
		ChannelID:   parseSnowflake(e.ChannelID),
		GuildID:     parseSnowflake(e.GuildID),
		AuthorID:    parseSnowflake(e.Author.ID),
		AuthorName:  e.Author.Username,
		AuthorIsBot: e.Author.Bot,
		Text:        e.Content,
	}

	go g.router.HandleMessage(g.ctx, msg)
}

func (g *Gateway) reactionAdd(_ *discordgo.Session, e *discordgo.MessageReactionAdd) {
	g.sessions.Dispatch(convertReaction(e.MessageReaction))
}

// Removing a reaction is a control event too; sessions decide what it means.
func (g *Gateway) reactionRemove(_ *discordgo.Session, e *discordgo.MessageReactionRemove) {
	g.sessions.Dispatch(convertReaction(e.MessageReaction))
}

func convertGuild(guild *discordgo.Guild) domain.Guild {
	g := domain.Guild{
		ID:      parseSnowflake(guild.ID),
		Name:    guild.Name,
		OwnerID: parseSnowflake(guild.OwnerID),
	}

	for _, r := range guild.Roles {
		g.Roles = append(g.Roles, parseSnowflake(r.ID))
	}
	for _, c := range guild.Channels {
		g.Channels = append(g.Channels, parseSnowflake(c.ID))
	}

	return g
}

func convertRole(guildID int64, role *discordgo.Role) domain.Role {
	return domain.Role{
		ID:          parseSnowflake(role.ID),
		GuildID:     guildID,
		Name:        role.Name,
		Permissions: domain.Permission(role.Permissions),
		Position:    role.Position,
	}
}

func convertMember(member *discordgo.Member) domain.Member {
	m := domain.Member{
		GuildID: parseSnowflake(member.GuildID),
		Nick:    member.Nick,
	}

	if member.User != nil {
		m.UserID = parseSnowflake(member.User.ID)
	}

	for _, roleID := range member.Roles {
		m.Roles = append(m.Roles, parseSnowflake(roleID))
	}

	return m
}

func convertChannel(channel *discordgo.Channel) domain.Channel {
	return domain.Channel{
		ID:      parseSnowflake(channel.ID),
		GuildID: parseSnowflake(channel.GuildID),
		Name:    channel.Name,
	}
}

func convertReaction(r *discordgo.MessageReaction) domain.Reaction {
	return domain.Reaction{
		MessageID: parseSnowflake(r.MessageID),
		ChannelID: parseSnowflake(r.ChannelID),
		GuildID:   parseSnowflake(r.GuildID),
		UserID:    parseSnowflake(r.UserID),
		Emoji:     r.Emoji.Name,
	}
}
