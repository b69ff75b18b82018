package domain

// Event is one gateway notification about platform state. The gateway
// delivers events for the same entity in order; no ordering is guaranteed
// across entities.
type Event interface {
	isEvent()
}

type GuildCreate struct {
	Guild    Guild
	Roles    []Role
	Members  []Member
	Channels []Channel
}

type GuildUpdate struct {
	Guild Guild
}

type GuildDelete struct {
	GuildID int64
}

type RoleCreate struct {
	Role Role
}

type RoleUpdate struct {
	Role Role
}

type RoleDelete struct {
	GuildID int64
	RoleID  int64
}

type MemberAdd struct {
	Member Member
}

type MemberUpdate struct {
	Member Member
}

type MemberRemove struct {
	GuildID int64
	UserID  int64
}

type ChannelCreate struct {
	Channel Channel
}

type ChannelUpdate struct {
	Channel Channel
}

type ChannelDelete struct {
	ChannelID int64
}

type UserUpdate struct {
	User User
}

func (GuildCreate) isEvent()   {}
func (GuildUpdate) isEvent()   {}
func (GuildDelete) isEvent()   {}
func (RoleCreate) isEvent()    {}
func (RoleUpdate) isEvent()    {}
func (RoleDelete) isEvent()    {}
func (MemberAdd) isEvent()     {}
func (MemberUpdate) isEvent()  {}
func (MemberRemove) isEvent()  {}
func (ChannelCreate) isEvent() {}
func (ChannelUpdate) isEvent() {}
func (ChannelDelete) isEvent() {}
func (UserUpdate) isEvent()    {}
