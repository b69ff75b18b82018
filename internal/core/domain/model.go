package domain

// Permission is a bitset of platform permissions.
type Permission uint64

const (
	PermissionAdministrator  Permission = 1 << 3
	PermissionManageGuild    Permission = 1 << 5
	PermissionAddReactions   Permission = 1 << 6
	PermissionSendMessages   Permission = 1 << 11
	PermissionManageMessages Permission = 1 << 13
	PermissionManageRoles    Permission = 1 << 28
)

func (p Permission) Has(flag Permission) bool {
	return p&flag == flag
}

// EntityKind identifies which cache arena an entity lives in.
type EntityKind string

const (
	KindGuild   EntityKind = "guild"
	KindRole    EntityKind = "role"
	KindMember  EntityKind = "member"
	KindChannel EntityKind = "channel"
	KindUser    EntityKind = "user"
)

// Entities reference each other by id only, never by pointer.

type Guild struct {
	ID       int64
	Name     string
	OwnerID  int64
	Roles    []int64
	Channels []int64
}

type Role struct {
	ID          int64
	GuildID     int64
	Name        string
	Permissions Permission
	Position    int
}

type Member struct {
	GuildID int64
	UserID  int64
	Nick    string
	Roles   []int64
}

type Channel struct {
	ID      int64
	GuildID int64
	Name    string
}

type User struct {
	ID       int64
	Username string
	Bot      bool
}

// Message is one inbound chat message. GuildID is zero for direct messages.
type Message struct {
	ID          int64
	ChannelID   int64
	GuildID     int64
	AuthorID    int64
	AuthorName  string
	AuthorIsBot bool
	Text        string
}

// Reaction is one emoji added to or removed from a message.
type Reaction struct {
	MessageID int64
	ChannelID int64
	GuildID   int64
	UserID    int64
	Emoji     string
}
