package pagination

import "fmt"

const (
	EmojiFirst    = "⏮️"
	EmojiPrevious = "◀️"
	EmojiNext     = "▶️"
	EmojiLast     = "⏭️"
	EmojiExpand   = "🔼"
	EmojiMinimize = "🔽"
)

// PageView pages through a fixed sequence of rendered pages.
type PageView struct {
	pages []string
	index int
}

func NewPageView(pages []string) *PageView {
	return &PageView{pages: pages}
}

func (v *PageView) Render() string {
	return fmt.Sprintf("%s\n\nPage %d/%d", v.pages[v.index], v.index+1, len(v.pages))
}

func (v *PageView) Apply(emoji string) bool {
	target := v.index

	switch emoji {
	case EmojiFirst:
		target = 0
	case EmojiPrevious:
		target = v.index - 1
	case EmojiNext:
		target = v.index + 1
	case EmojiLast:
		target = len(v.pages) - 1
	default:
		return false
	}

	if target < 0 || target >= len(v.pages) || target == v.index {
		return false
	}

	v.index = target

	return true
}

func (v *PageView) Controls() []string {
	return []string{EmojiFirst, EmojiPrevious, EmojiNext, EmojiLast}
}

// ToggleView switches between a compact and an expanded rendering of the
// same content.
type ToggleView struct {
	compact  string
	expanded string
	isOpen   bool
}

func NewToggleView(compact, expanded string) *ToggleView {
	return &ToggleView{compact: compact, expanded: expanded}
}

func (v *ToggleView) Render() string {
	if v.isOpen {
		return v.expanded
	}

	return v.compact
}

func (v *ToggleView) Apply(emoji string) bool {
	switch emoji {
	case EmojiExpand:
		if v.isOpen {
			return false
		}
		v.isOpen = true
		return true
	case EmojiMinimize:
		if !v.isOpen {
			return false
		}
		v.isOpen = false
		return true
	default:
		return false
	}
}

func (v *ToggleView) Controls() []string {
	return []string{EmojiExpand, EmojiMinimize}
}
