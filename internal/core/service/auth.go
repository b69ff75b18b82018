package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// PermissionSource is the slice of the entity cache the authorizer reads.
type PermissionSource interface {
	Permissions(actorID, guildID int64) (domain.Permission, error)
	Member(guildID, userID int64) (*domain.Member, error)
}

// Denial explains why an actor may not run a privileged command. A Denial
// with an empty Reason marks a direct-message invocation; the router decides
// what, if anything, to tell the actor in that case.
type Denial struct {
	Reason string
}

type Authorizer struct {
	cache  PermissionSource
	config port.AuthoritySource
}

func NewAuthorizer(cache PermissionSource, config port.AuthoritySource) *Authorizer {
	return &Authorizer{cache: cache, config: config}
}

const authorityGuidance = "(`/authorities` to adjust authority status for this server)"

const adminRequired = "You need admin permissions to use this command.\n" + authorityGuidance

// Check resolves whether the actor may run privileged commands in a guild.
// Returns (nil, nil) when allowed, a Denial when not, and an error when the
// cache is missing state it is expected to hold, which callers must treat as
// an inconsistency rather than a denial.
func (a *Authorizer) Check(ctx context.Context, actorID, guildID int64) (*Denial, error) {
	if guildID == 0 {
		return &Denial{}, nil
	}

	perms, err := a.cache.Permissions(actorID, guildID)
	if err != nil {
		// Tolerated here; the member lookup below decides whether the
		// cache is actually out of sync.
		log.Debug().Err(err).Int64("actorID", actorID).Int64("guildID", guildID).
			Msg("could not compute permissions, assuming none")
		perms = 0
	}

	if perms.Has(domain.PermissionAdministrator) {
		return nil, nil
	}

	authorityRoles, err := a.config.AuthorityRoles(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authority roles: %w", err)
	}

	if len(authorityRoles) == 0 {
		return &Denial{Reason: adminRequired}, nil
	}

	member, err := a.cache.Member(guildID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check authority roles: %w", err)
	}

	for _, roleID := range member.Roles {
		if slices.Contains(authorityRoles, roleID) {
			return nil, nil
		}
	}

	return &Denial{Reason: rolesRequired(authorityRoles)}, nil
}

func rolesRequired(roleIDs []int64) string {
	var b strings.Builder
	b.WriteString("You need either admin permissions or any of these roles to use this command:\n")

	for i, roleID := range roleIDs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "<@&%d>", roleID)
	}

	b.WriteString("\n" + authorityGuidance)

	return b.String()
}
