package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageViewApply(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		emoji       string
		wantChanged bool
		wantIndex   int
	}{
		{name: "next from first", start: 0, emoji: EmojiNext, wantChanged: true, wantIndex: 1},
		{name: "previous from middle", start: 1, emoji: EmojiPrevious, wantChanged: true, wantIndex: 0},
		{name: "jump to last", start: 0, emoji: EmojiLast, wantChanged: true, wantIndex: 2},
		{name: "jump to first", start: 2, emoji: EmojiFirst, wantChanged: true, wantIndex: 0},
		{name: "previous at first edge", start: 0, emoji: EmojiPrevious, wantChanged: false, wantIndex: 0},
		{name: "next at last edge", start: 2, emoji: EmojiNext, wantChanged: false, wantIndex: 2},
		{name: "first while on first", start: 0, emoji: EmojiFirst, wantChanged: false, wantIndex: 0},
		{name: "unrecognized emoji", start: 1, emoji: "🎲", wantChanged: false, wantIndex: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewPageView([]string{"one", "two", "three"})
			v.index = tt.start

			assert.Equal(t, tt.wantChanged, v.Apply(tt.emoji))
			assert.Equal(t, tt.wantIndex, v.index)
		})
	}
}

func TestPageViewRender(t *testing.T) {
	v := NewPageView([]string{"one", "two"})

	assert.Equal(t, "one\n\nPage 1/2", v.Render())

	v.Apply(EmojiNext)
	assert.Equal(t, "two\n\nPage 2/2", v.Render())
}

func TestToggleView(t *testing.T) {
	v := NewToggleView("compact", "expanded")

	assert.Equal(t, "compact", v.Render())

	assert.False(t, v.Apply(EmojiMinimize), "minimize while minimized is a no-op")
	assert.True(t, v.Apply(EmojiExpand))
	assert.Equal(t, "expanded", v.Render())
	assert.False(t, v.Apply(EmojiExpand), "expand while expanded is a no-op")
	assert.True(t, v.Apply(EmojiMinimize))
	assert.Equal(t, "compact", v.Render())
}
