package preview

import (
	"github.com/ziadkadry99/themegen/internal/theme"
)

// Page is one entry of the fixed set of pages shown per theme in the gallery.
type Page string

const (
	PageHome     Page = "home"
	PageFeatures Page = "features"
	PageContact  Page = "contact"
)

// Pages is the gallery page set in display order.
var Pages = []Page{PageHome, PageFeatures, PageContact}

// ParsePage maps a query value to a Page.
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Title is the label shown under a thumbnail.
func (p Page) Title() string {
	switch p {
	case PageHome:
		return "Home"
	case PageFeatures:
		return "Features"
	case PageContact:
		return "Contact"
	}
	return string(p)
}

// SlugFor returns the section id to deep link for v. Documents that name
// their features page "page-services" get that id instead.
func (p Page) SlugFor(v theme.Variant) string {
	slug := "page-" + string(p)
	if p == PageFeatures && !v.HasPage(slug) && v.HasPage("page-services") {
		return "page-services"
	}
	return slug
}

// Tab is one entry of the tab strip.
type Tab struct {
	Label   string `json:"label"`
	Index   int    `json:"index"`
	Compare bool   `json:"compare"`
	Active  bool   `json:"active"`
}

// Tabs returns one tab per theme followed by a Compare tab, or nothing when
// fewer than two themes are loaded.
func (m *Model) Tabs() []Tab {
	if m.result.Len() < 2 {
		return nil
	}
	focused, isFocused := m.selection.FocusedIndex()

	tabs := make([]Tab, 0, m.result.Len()+1)
	for i, v := range m.result.Variants() {
		tabs = append(tabs, Tab{
			Label:  v.Name,
			Index:  i,
			Active: isFocused && focused == i,
		})
	}
	tabs = append(tabs, Tab{
		Label:   "Compare",
		Index:   -1,
		Compare: true,
		Active:  m.selection.IsAll(),
	})
	return tabs
}

// Frame is one embedded document to render.
type Frame struct {
	ThemeIndex  int    `json:"themeIndex"`
	ThemeName   string `json:"themeName"`
	Page        Page   `json:"page,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Interactive bool   `json:"interactive"`
}

// Frames lists what to render. In AllThemes every theme gets one
// thumbnail per page; when focused only that theme is rendered, once.
func (m *Model) Frames() []Frame {
	if !m.Active() {
		return nil
	}

	if i, ok := m.selection.FocusedIndex(); ok {
		v, err := m.result.At(i)
		if err != nil {
			return nil
		}
		return []Frame{{ThemeIndex: i, ThemeName: v.Name, Interactive: true}}
	}

	variants := m.result.Variants()
	frames := make([]Frame, 0, len(variants)*len(Pages))
	for i, v := range variants {
		for _, p := range Pages {
			frames = append(frames, Frame{
				ThemeIndex: i,
				ThemeName:  v.Name,
				Page:       p,
				Slug:       p.SlugFor(v),
			})
		}
	}
	return frames
}

// DeepLink returns markup with a script that navigates to #slug once, on
// load. The document's own hash routing then shows that section. An empty
// slug, or one with characters outside [a-z0-9-], returns markup unchanged.
func DeepLink(markup, slug string) string {
	if !validSlug(slug) {
		return markup
	}
	script := `<script>(function(){var h="#` + slug +
		`";if(location.hash!==h){location.hash=h;}})();</script>`

	if i := lastIndexASCIIFold(markup, "</body>"); i >= 0 {
		return markup[:i] + script + markup[i:]
	}
	return markup + script
}

// lastIndexASCIIFold is strings.LastIndex with ASCII-only case folding, so
// the offset is always valid for s. tag must be lowercase ASCII.
func lastIndexASCIIFold(s, tag string) int {
	for i := len(s) - len(tag); i >= 0; i-- {
		if s[i] != '<' {
			continue
		}
		j := 0
		for ; j < len(tag); j++ {
			c := s[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != tag[j] {
				break
			}
		}
		if j == len(tag) {
			return i
		}
	}
	return -1
}

func validSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
