package cache

import (
	"sync"

	"wavebot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type memberKey struct {
	guildID int64
	userID  int64
}

// Cache is the in-memory mirror of platform entities, built from the gateway
// event stream. Snapshots stored in it are immutable; every write replaces
// the whole entry. Readers never block and absence is always an explicit
// cache miss, never a default value.
type Cache struct {
	guilds   sync.Map // int64 -> *domain.Guild
	roles    sync.Map // int64 -> *domain.Role
	members  sync.Map // memberKey -> *domain.Member
	channels sync.Map // int64 -> *domain.Channel
	users    sync.Map // int64 -> *domain.User
}

func New() *Cache {
	return &Cache{}
}

// Apply ingests one gateway event and updates exactly the entities it
// describes. Events for the same entity must arrive in stream order; the
// cache does not reorder.
func (c *Cache) Apply(ev domain.Event) {
	switch e := ev.(type) {
	case domain.GuildCreate:
		g := e.Guild
		c.guilds.Store(g.ID, &g)
		for _, r := range e.Roles {
			role := r
			c.roles.Store(role.ID, &role)
		}
		for _, m := range e.Members {
			member := m
			c.members.Store(memberKey{member.GuildID, member.UserID}, &member)
		}
		for _, ch := range e.Channels {
			channel := ch
			c.channels.Store(channel.ID, &channel)
		}
	case domain.GuildUpdate:
		g := e.Guild
		c.guilds.Store(g.ID, &g)
	case domain.GuildDelete:
		c.dropGuild(e.GuildID)
	case domain.RoleCreate:
		r := e.Role
		c.roles.Store(r.ID, &r)
	case domain.RoleUpdate:
		r := e.Role
		c.roles.Store(r.ID, &r)
	case domain.RoleDelete:
		c.roles.Delete(e.RoleID)
	case domain.MemberAdd:
		m := e.Member
		c.members.Store(memberKey{m.GuildID, m.UserID}, &m)
	case domain.MemberUpdate:
		m := e.Member
		c.members.Store(memberKey{m.GuildID, m.UserID}, &m)
	case domain.MemberRemove:
		c.members.Delete(memberKey{e.GuildID, e.UserID})
	case domain.ChannelCreate:
		ch := e.Channel
		c.channels.Store(ch.ID, &ch)
	case domain.ChannelUpdate:
		ch := e.Channel
		c.channels.Store(ch.ID, &ch)
	case domain.ChannelDelete:
		c.channels.Delete(e.ChannelID)
	case domain.UserUpdate:
		u := e.User
		c.users.Store(u.ID, &u)
	default:
		log.Debug().Type("event", ev).Msg("ignoring event without cached entities")
	}
}

func (c *Cache) dropGuild(guildID int64) {
	c.guilds.Delete(guildID)

	c.roles.Range(func(k, v any) bool {
		if v.(*domain.Role).GuildID == guildID {
			c.roles.Delete(k)
		}
		return true
	})

	c.members.Range(func(k, _ any) bool {
		if k.(memberKey).guildID == guildID {
			c.members.Delete(k)
		}
		return true
	})

	c.channels.Range(func(k, v any) bool {
		if v.(*domain.Channel).GuildID == guildID {
			c.channels.Delete(k)
		}
		return true
	})
}

func (c *Cache) Guild(id int64) (*domain.Guild, error) {
	v, ok := c.guilds.Load(id)
	if !ok {
		return nil, &domain.CacheMissError{Kind: domain.KindGuild, ID: id}
	}

	return v.(*domain.Guild), nil
}

func (c *Cache) Role(id int64) (*domain.Role, error) {
	v, ok := c.roles.Load(id)
	if !ok {
		return nil, &domain.CacheMissError{Kind: domain.KindRole, ID: id}
	}

	return v.(*domain.Role), nil
}

func (c *Cache) Member(guildID, userID int64) (*domain.Member, error) {
	v, ok := c.members.Load(memberKey{guildID, userID})
	if !ok {
		return nil, &domain.CacheMissError{Kind: domain.KindMember, ID: userID, GuildID: guildID}
	}

	return v.(*domain.Member), nil
}

func (c *Cache) Channel(id int64) (*domain.Channel, error) {
	v, ok := c.channels.Load(id)
	if !ok {
		return nil, &domain.CacheMissError{Kind: domain.KindChannel, ID: id}
	}

	return v.(*domain.Channel), nil
}

func (c *Cache) User(id int64) (*domain.User, error) {
	v, ok := c.users.Load(id)
	if !ok {
		return nil, &domain.CacheMissError{Kind: domain.KindUser, ID: id}
	}

	return v.(*domain.User), nil
}

// Stats counts cached entities per kind. Walks the arenas, intended for
// operator diagnostics only.
func (c *Cache) Stats() map[domain.EntityKind]int {
	stats := make(map[domain.EntityKind]int, 5)

	count := func(m *sync.Map) int {
		n := 0
		m.Range(func(_, _ any) bool {
			n++
			return true
		})
		return n
	}

	stats[domain.KindGuild] = count(&c.guilds)
	stats[domain.KindRole] = count(&c.roles)
	stats[domain.KindMember] = count(&c.members)
	stats[domain.KindChannel] = count(&c.channels)
	stats[domain.KindUser] = count(&c.users)

	return stats
}
