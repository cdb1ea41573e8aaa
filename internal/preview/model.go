package preview

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/themegen/internal/theme"
)

var (
	// ErrNoResult is returned by transitions that need a loaded result.
	ErrNoResult = errors.New("no designs loaded")
	// ErrIndexOutOfRange is returned when focusing a theme that does not exist.
	ErrIndexOutOfRange = errors.New("theme index out of range")
)

// Model holds the current result and selection. It is not safe for
// concurrent use; callers serialize access.
type Model struct {
	result    theme.Result
	selection Selection
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// Ingest resolves a source into a result and the selection it opens with.
// A versions array opens in AllThemes; a legacy single document opens
// Focused(0).
func Ingest(src theme.Source, name string) (theme.Result, Selection, error) {
	result, err := src.Resolve(name)
	if err != nil {
		return theme.Result{}, Selection{}, err
	}
	if src.Kind == theme.SourceLegacy {
		return result, Focused(0), nil
	}
	return result, AllThemes(), nil
}

// Load replaces the current result. A zero initial selection means AllThemes.
func (m *Model) Load(result theme.Result, initial Selection) error {
	if result.IsZero() {
		return ErrNoResult
	}
	if initial.IsNone() {
		initial = AllThemes()
	}
	if i, ok := initial.FocusedIndex(); ok && (i < 0 || i >= result.Len()) {
		return fmt.Errorf("initial selection %s: %w", initial, ErrIndexOutOfRange)
	}
	m.result = result
	m.selection = initial
	return nil
}

// LoadSource ingests src and loads it.
func (m *Model) LoadSource(src theme.Source, name string) error {
	result, sel, err := Ingest(src, name)
	if err != nil {
		return err
	}
	return m.Load(result, sel)
}

// SelectFocus moves to Focused(i) from any state.
func (m *Model) SelectFocus(i int) error {
	if !m.Active() {
		return ErrNoResult
	}
	if i < 0 || i >= m.result.Len() {
		return fmt.Errorf("focus %d of %d: %w", i, m.result.Len(), ErrIndexOutOfRange)
	}
	m.selection = Focused(i)
	return nil
}

// ShowAll moves to AllThemes from any state.
func (m *Model) ShowAll() error {
	if !m.Active() {
		return ErrNoResult
	}
	m.selection = AllThemes()
	return nil
}

// Reset discards the result and the selection.
func (m *Model) Reset() {
	m.result = theme.Result{}
	m.selection = Selection{}
}

// Active reports whether a result is loaded.
func (m *Model) Active() bool { return !m.result.IsZero() }

// Selection returns the current selection.
func (m *Model) Selection() Selection { return m.selection }

// Result returns the loaded result.
func (m *Model) Result() theme.Result { return m.result }

// Focused returns the focused variant, if any.
func (m *Model) Focused() (theme.Variant, bool) {
	i, ok := m.selection.FocusedIndex()
	if !ok {
		return theme.Variant{}, false
	}
	v, err := m.result.At(i)
	return v, err == nil
}
