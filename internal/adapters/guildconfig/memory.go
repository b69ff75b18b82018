package guildconfig

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Memory holds per-guild authority role lists. Reads are concurrent;
// mutations take the write lock so concurrent edits compose instead of
// overwriting each other.
type Memory struct {
	mu    sync.RWMutex
	roles map[int64][]int64
}

func NewMemory() *Memory {
	return &Memory{roles: make(map[int64][]int64)}
}

// NewMemoryFromConfig seeds the store from the authorities.* config table,
// keyed by guild id.
func NewMemoryFromConfig() (*Memory, error) {
	var seed map[string][]int64

	if err := viper.UnmarshalKey("authorities", &seed); err != nil {
		return nil, errors.New("failed to load authority role lists")
	}

	m := NewMemory()

	for key, roleIDs := range seed {
		guildID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, errors.New("invalid guild id in authority config: " + key)
		}

		m.roles[guildID] = slices.Clone(roleIDs)
		log.Info().Int64("guildId", guildID).Ints64("roles", roleIDs).Msg("seeded authority roles")
	}

	return m, nil
}

func (m *Memory) AuthorityRoles(_ context.Context, guildID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.roles[guildID]), nil
}

func (m *Memory) AddAuthorityRole(_ context.Context, guildID, roleID int64) ([]int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.Contains(m.roles[guildID], roleID) {
		return slices.Clone(m.roles[guildID]), false, nil
	}

	m.roles[guildID] = append(m.roles[guildID], roleID)

	return slices.Clone(m.roles[guildID]), true, nil
}

func (m *Memory) RemoveAuthorityRole(_ context.Context, guildID, roleID int64) ([]int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.roles[guildID], roleID)
	if i < 0 {
		return slices.Clone(m.roles[guildID]), false, nil
	}

	m.roles[guildID] = slices.Delete(m.roles[guildID], i, i+1)

	return slices.Clone(m.roles[guildID]), true, nil
}
