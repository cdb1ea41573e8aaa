package studio

import (
	"html/template"

	"github.com/ziadkadry99/themegen/internal/preview"
	"github.com/ziadkadry99/themegen/internal/progress"
)

// State is a snapshot of the workspace, served as JSON and pushed over the
// state websocket.
type State struct {
	Rev          uint64          `json:"rev"`
	Pending      bool            `json:"pending"`
	Step         int             `json:"step"`
	Label        string          `json:"label"`
	Steps        []string        `json:"steps"`
	Error        string          `json:"error,omitempty"`
	CreationID   string          `json:"creationId,omitempty"`
	CreationName string          `json:"creationName,omitempty"`
	Selection    string          `json:"selection"`
	Focused      int             `json:"focused"`
	Themes       []ThemeView     `json:"themes"`
	Tabs         []preview.Tab   `json:"tabs"`
	Frames       []preview.Frame `json:"frames"`
}

// ThemeView is what the page shows next to each theme.
type ThemeView struct {
	Index           int           `json:"index"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	DescriptionHTML template.HTML `json:"descriptionHtml"`
	Pages           []string      `json:"pages"`
}

// State returns the current snapshot.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Workspace) stateLocked() State {
	st := State{
		Rev:          w.rev,
		Pending:      w.pending,
		Step:         w.sim.Step(),
		Label:        w.sim.Label(),
		Steps:        progress.Labels[:],
		Error:        w.lastErr,
		CreationID:   w.creationID,
		CreationName: w.creationName,
		Selection:    w.model.Selection().String(),
		Focused:      -1,
		Themes:       []ThemeView{},
		Tabs:         w.model.Tabs(),
		Frames:       w.model.Frames(),
	}
	if i, ok := w.model.Selection().FocusedIndex(); ok {
		st.Focused = i
	}
	for i, v := range w.model.Result().Variants() {
		st.Themes = append(st.Themes, ThemeView{
			Index:           i,
			Name:            v.Name,
			Description:     v.Description,
			DescriptionHTML: renderDescription(v.Description),
			Pages:           v.PageIDs(),
		})
	}
	if st.Tabs == nil {
		st.Tabs = []preview.Tab{}
	}
	if st.Frames == nil {
		st.Frames = []preview.Frame{}
	}
	return st
}
