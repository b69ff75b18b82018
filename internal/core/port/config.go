package port

import "context"

// AuthoritySource exposes the per-guild authority role configuration.
type AuthoritySource interface {
	// AuthorityRoles returns the configured authority role ids for a guild, in configured order.
	AuthorityRoles(ctx context.Context, guildID int64) ([]int64, error)
}

// AuthorityStore is the read-write surface of the authority configuration.
// Mutations are atomic so concurrent editors cannot lose each other's change.
type AuthorityStore interface {
	AuthoritySource
	// AddAuthorityRole appends a role to a guild's list and returns the
	// resulting list; ok is false when the role was already present.
	AddAuthorityRole(ctx context.Context, guildID, roleID int64) (roles []int64, ok bool, err error)
	// RemoveAuthorityRole drops a role from a guild's list and returns the
	// resulting list; ok is false when the role was not present.
	RemoveAuthorityRole(ctx context.Context, guildID, roleID int64) (roles []int64, ok bool, err error)
}
