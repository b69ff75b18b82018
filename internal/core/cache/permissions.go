package cache

import "wavebot/internal/core/domain"

// Permissions computes an actor's effective permission set in a guild by
// folding the permission bits of every cached role the member holds,
// including the guild's base role (shares the guild id). The guild owner is
// treated as administrator. A missing guild or member record is returned as
// a cache miss so callers can distinguish "unknown" from "no permissions".
func (c *Cache) Permissions(actorID, guildID int64) (domain.Permission, error) {
	guild, err := c.Guild(guildID)
	if err != nil {
		return 0, err
	}

	if guild.OwnerID == actorID {
		return domain.PermissionAdministrator, nil
	}

	member, err := c.Member(guildID, actorID)
	if err != nil {
		return 0, err
	}

	var perms domain.Permission

	if everyone, err := c.Role(guildID); err == nil {
		perms |= everyone.Permissions
	}

	// Stale role entries are tolerated, missing ones contribute nothing.
	for _, roleID := range member.Roles {
		role, err := c.Role(roleID)
		if err != nil {
			continue
		}

		perms |= role.Permissions
	}

	return perms, nil
}
