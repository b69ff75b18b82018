package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// KeyMode selects which id a bucket keys its counters on.
type KeyMode int

const (
	// KeyPerUser keeps one counter per acting user.
	KeyPerUser KeyMode = iota
	// KeyPerGuild keeps one counter per guild, falling back to the user id
	// outside of guilds.
	KeyPerGuild
	// KeyGlobal keeps a single shared counter for everyone, used for
	// globally scarce resources.
	KeyGlobal
)

// globalKey is the sentinel counter key for KeyGlobal buckets.
const globalKey int64 = 0

type BucketConfig struct {
	Capacity int
	Interval time.Duration
	Mode     KeyMode
}

type bucket struct {
	mu  sync.Mutex
	cfg BucketConfig

	// takes holds, per key, the timestamps of successful takes younger than
	// one interval, oldest first. At most Capacity entries per key.
	takes map[int64][]time.Time
}

// BucketRegistry holds the named rate-limit buckets. The bucket table is
// immutable after construction; only the per-key counters mutate, each
// behind its bucket's lock. Counters reset by time elapsing only.
type BucketRegistry struct {
	buckets map[string]*bucket
	now     func() time.Time
}

func NewBucketRegistry(configs map[string]BucketConfig) *BucketRegistry {
	r := &BucketRegistry{
		buckets: make(map[string]*bucket, len(configs)),
		now:     time.Now,
	}

	for name, cfg := range configs {
		log.Info().
			Str("bucket", name).
			Int("capacity", cfg.Capacity).
			Dur("interval", cfg.Interval).
			Msg("configuring rate-limit bucket")

		r.buckets[name] = &bucket{
			cfg:   cfg,
			takes: make(map[int64][]time.Time),
		}
	}

	return r
}

// LoadBucketConfigs reads the bucket table from the buckets.* config keys.
func LoadBucketConfigs() (map[string]BucketConfig, error) {
	var raw map[string]struct {
		Capacity int    `mapstructure:"capacity"`
		Interval string `mapstructure:"interval"`
		Mode     string `mapstructure:"mode"`
	}

	if err := viper.UnmarshalKey("buckets", &raw); err != nil {
		return nil, fmt.Errorf("failed to load bucket configs: %w", err)
	}

	configs := make(map[string]BucketConfig, len(raw))

	for name, entry := range raw {
		interval, err := time.ParseDuration(entry.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid interval for bucket %q: %w", name, err)
		}

		if entry.Capacity < 1 {
			return nil, fmt.Errorf("invalid capacity %d for bucket %q", entry.Capacity, name)
		}

		var mode KeyMode
		switch entry.Mode {
		case "", "user":
			mode = KeyPerUser
		case "guild":
			mode = KeyPerGuild
		case "global":
			mode = KeyGlobal
		default:
			return nil, fmt.Errorf("invalid key mode %q for bucket %q", entry.Mode, name)
		}

		configs[name] = BucketConfig{Capacity: entry.Capacity, Interval: interval, Mode: mode}
	}

	return configs, nil
}

// Take consumes one unit from the named bucket for the given actor and
// returns zero, or returns the remaining cooldown without consuming
// anything. The counter slides: a take succeeds when fewer than Capacity
// takes succeeded within the trailing Interval, so no interval of that
// length ever admits more than Capacity. Taking from a bucket that was
// never configured is a programming error and panics.
func (r *BucketRegistry) Take(name string, userID, guildID int64) time.Duration {
	b, ok := r.buckets[name]
	if !ok {
		log.Panic().Str("bucket", name).Msg("take from unconfigured bucket")
	}

	key := b.key(userID, guildID)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := r.now()

	stamps := b.takes[key]
	for len(stamps) > 0 && now.Sub(stamps[0]) >= b.cfg.Interval {
		stamps = stamps[1:]
	}

	if len(stamps) < b.cfg.Capacity {
		b.takes[key] = append(stamps, now)
		return 0
	}

	b.takes[key] = stamps

	// The oldest counted take ages out first.
	return stamps[0].Add(b.cfg.Interval).Sub(now)
}

func (b *bucket) key(userID, guildID int64) int64 {
	switch b.cfg.Mode {
	case KeyPerGuild:
		if guildID != 0 {
			return guildID
		}
		return userID
	case KeyGlobal:
		return globalKey
	default:
		return userID
	}
}
