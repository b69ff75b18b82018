package service

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(configs map[string]BucketConfig) (*BucketRegistry, *time.Time) {
	r := NewBucketRegistry(configs)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	return r, &now
}

func TestTakeCooldownScenario(t *testing.T) {
	r, now := testRegistry(map[string]BucketConfig{
		"default": {Capacity: 1, Interval: 60 * time.Second, Mode: KeyPerUser},
	})

	assert.Equal(t, time.Duration(0), r.Take("default", 1, 0))

	*now = now.Add(time.Second)
	assert.Equal(t, 59*time.Second, r.Take("default", 1, 0))

	// A rejected take consumes nothing.
	*now = now.Add(time.Second)
	assert.Equal(t, 58*time.Second, r.Take("default", 1, 0))
}

func TestTakeWindowBounds(t *testing.T) {
	const capacity = 3
	interval := 10 * time.Second

	r, now := testRegistry(map[string]BucketConfig{
		"default": {Capacity: capacity, Interval: interval, Mode: KeyPerUser},
	})

	succeeded := 0
	for i := 0; i < 10; i++ {
		cooldown := r.Take("default", 7, 0)
		if cooldown == 0 {
			succeeded++
			continue
		}

		assert.Greater(t, cooldown, time.Duration(0))
		assert.LessOrEqual(t, cooldown, interval)
	}

	assert.Equal(t, capacity, succeeded)

	// Elapsed interval refills the window.
	*now = now.Add(interval)
	assert.Equal(t, time.Duration(0), r.Take("default", 7, 0))
}

func TestTakeSlidingIntervalCapsBursts(t *testing.T) {
	r, now := testRegistry(map[string]BucketConfig{
		"default": {Capacity: 2, Interval: 10 * time.Second, Mode: KeyPerUser},
	})

	require.Equal(t, time.Duration(0), r.Take("default", 1, 0))

	*now = now.Add(9 * time.Second)
	require.Equal(t, time.Duration(0), r.Take("default", 1, 0))

	// The first take ages out exactly one interval after it succeeded,
	// freeing exactly one slot; a late-window burst cannot double up.
	*now = now.Add(time.Second)
	assert.Equal(t, time.Duration(0), r.Take("default", 1, 0))
	assert.Equal(t, 9*time.Second, r.Take("default", 1, 0))
}

func TestTakeKeyModes(t *testing.T) {
	tests := []struct {
		name   string
		mode   KeyMode
		first  [2]int64 // userID, guildID
		second [2]int64
		shared bool
	}{
		{
			name:   "per-user keys are independent",
			mode:   KeyPerUser,
			first:  [2]int64{1, 10},
			second: [2]int64{2, 10},
			shared: false,
		},
		{
			name:   "per-guild keys contend within a guild",
			mode:   KeyPerGuild,
			first:  [2]int64{1, 10},
			second: [2]int64{2, 10},
			shared: true,
		},
		{
			name:   "per-guild falls back to user outside guilds",
			mode:   KeyPerGuild,
			first:  [2]int64{1, 0},
			second: [2]int64{2, 0},
			shared: false,
		},
		{
			name:   "global buckets ignore the key entirely",
			mode:   KeyGlobal,
			first:  [2]int64{1, 10},
			second: [2]int64{2, 20},
			shared: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := testRegistry(map[string]BucketConfig{
				"b": {Capacity: 1, Interval: time.Minute, Mode: tt.mode},
			})

			assert.Equal(t, time.Duration(0), r.Take("b", tt.first[0], tt.first[1]))

			cooldown := r.Take("b", tt.second[0], tt.second[1])
			if tt.shared {
				assert.Greater(t, cooldown, time.Duration(0))
			} else {
				assert.Equal(t, time.Duration(0), cooldown)
			}
		})
	}
}

func TestTakeUnconfiguredBucketPanics(t *testing.T) {
	r, _ := testRegistry(nil)

	assert.Panics(t, func() {
		r.Take("nope", 1, 0)
	})
}

func TestLoadBucketConfigs(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr bool
		want    map[string]BucketConfig
	}{
		{
			name: "loads bucket table",
			setup: func() {
				viper.Set("buckets.default.capacity", 2)
				viper.Set("buckets.default.interval", "5s")
				viper.Set("buckets.songs.capacity", 1)
				viper.Set("buckets.songs.interval", "20s")
				viper.Set("buckets.songs.mode", "guild")
			},
			want: map[string]BucketConfig{
				"default": {Capacity: 2, Interval: 5 * time.Second, Mode: KeyPerUser},
				"songs":   {Capacity: 1, Interval: 20 * time.Second, Mode: KeyPerGuild},
			},
		},
		{
			name: "invalid interval",
			setup: func() {
				viper.Set("buckets.default.capacity", 1)
				viper.Set("buckets.default.interval", "soon")
			},
			wantErr: true,
		},
		{
			name: "invalid mode",
			setup: func() {
				viper.Set("buckets.default.capacity", 1)
				viper.Set("buckets.default.interval", "5s")
				viper.Set("buckets.default.mode", "per-planet")
			},
			wantErr: true,
		},
		{
			name: "invalid capacity",
			setup: func() {
				viper.Set("buckets.default.capacity", 0)
				viper.Set("buckets.default.interval", "5s")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setup()

			configs, err := LoadBucketConfigs()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, configs)
		})
	}
}
