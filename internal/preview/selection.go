// Package preview is the gallery/compare view-model: which themes are on
// screen, which one is focused, and what frames and tabs to draw.
package preview

import "fmt"

type mode int

const (
	modeNone mode = iota
	modeAll
	modeFocused
)

// Selection is either AllThemes or Focused(i). The zero value means nothing
// is selected, which only happens before a result is loaded.
type Selection struct {
	mode  mode
	index int
}

// AllThemes shows every theme side by side.
func AllThemes() Selection { return Selection{mode: modeAll} }

// Focused shows theme i as an interactive document.
func Focused(i int) Selection { return Selection{mode: modeFocused, index: i} }

// IsAll reports whether s is AllThemes.
func (s Selection) IsAll() bool { return s.mode == modeAll }

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool { return s.mode == modeNone }

// FocusedIndex returns the focused theme index, if any.
func (s Selection) FocusedIndex() (int, bool) {
	if s.mode != modeFocused {
		return 0, false
	}
	return s.index, true
}

func (s Selection) String() string {
	switch s.mode {
	case modeAll:
		return "all"
	case modeFocused:
		return fmt.Sprintf("focused(%d)", s.index)
	default:
		return "none"
	}
}
