package preview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/themegen/internal/theme"
)

func threeThemes() theme.Result {
	vs := make([]theme.Variant, 3)
	for i := range vs {
		vs[i] = theme.Variant{
			Name:   fmt.Sprintf("Theme %d", i),
			Markup: fmt.Sprintf(`<html><body><section id="page-home">%d</section><section id="page-features"></section></body></html>`, i),
		}
	}
	return theme.NewResult(vs...)
}

func TestLoadStartsInAllThemes(t *testing.T) {
	m := New()
	assert.False(t, m.Active())
	assert.True(t, m.Selection().IsNone())

	require.NoError(t, m.Load(threeThemes(), Selection{}))
	assert.True(t, m.Active())
	assert.True(t, m.Selection().IsAll())

	require.NoError(t, m.SelectFocus(2))
	require.NoError(t, m.Load(threeThemes(), Selection{}))
	assert.True(t, m.Selection().IsAll(), "a new result always opens in AllThemes")
}

func TestSelectFocusRendersThatTheme(t *testing.T) {
	m := New()
	require.NoError(t, m.Load(threeThemes(), AllThemes()))

	for i := 0; i < 3; i++ {
		require.NoError(t, m.SelectFocus(i))
		frames := m.Frames()
		require.Len(t, frames, 1)
		assert.Equal(t, i, frames[0].ThemeIndex)
		assert.True(t, frames[0].Interactive)

		v, ok := m.Focused()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("Theme %d", i), v.Name)
	}
}

func TestSelectFocusRejectsBadIndex(t *testing.T) {
	m := New()
	assert.ErrorIs(t, m.SelectFocus(0), ErrNoResult)

	require.NoError(t, m.Load(threeThemes(), AllThemes()))
	assert.ErrorIs(t, m.SelectFocus(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.SelectFocus(-1), ErrIndexOutOfRange)
	assert.True(t, m.Selection().IsAll(), "failed transition leaves state alone")
}

func TestCompareKeepsThemes(t *testing.T) {
	m := New()
	result := threeThemes()
	require.NoError(t, m.Load(result, AllThemes()))
	require.NoError(t, m.SelectFocus(1))
	require.NoError(t, m.ShowAll())

	assert.True(t, m.Selection().IsAll())
	assert.Equal(t, result.Variants(), m.Result().Variants())
	assert.Len(t, m.Frames(), 3*len(Pages))
}

func TestResetClearsEverything(t *testing.T) {
	m := New()
	require.NoError(t, m.Load(threeThemes(), AllThemes()))
	require.NoError(t, m.SelectFocus(1))
	m.Reset()

	assert.False(t, m.Active())
	assert.True(t, m.Selection().IsNone())
	assert.Empty(t, m.Frames())
	assert.Empty(t, m.Tabs())
	assert.ErrorIs(t, m.ShowAll(), ErrNoResult)
}

func TestTabs(t *testing.T) {
	m := New()
	require.NoError(t, m.Load(threeThemes(), AllThemes()))

	tabs := m.Tabs()
	require.Len(t, tabs, 4)
	assert.True(t, tabs[3].Compare)
	assertOneActive(t, tabs, 3)

	require.NoError(t, m.SelectFocus(1))
	assertOneActive(t, m.Tabs(), 1)
}

func assertOneActive(t *testing.T, tabs []Tab, want int) {
	t.Helper()
	active := 0
	for i, tab := range tabs {
		if tab.Active {
			active++
			assert.Equal(t, want, i)
		}
	}
	assert.Equal(t, 1, active)
}

func TestSingleThemeHasNoTabs(t *testing.T) {
	m := New()
	require.NoError(t, m.Load(theme.NewResult(theme.Variant{Name: "Only"}), AllThemes()))
	assert.Nil(t, m.Tabs())
}

func TestGalleryFrames(t *testing.T) {
	m := New()
	require.NoError(t, m.Load(threeThemes(), AllThemes()))

	frames := m.Frames()
	require.Len(t, frames, 9)
	for _, f := range frames {
		assert.False(t, f.Interactive)
		assert.Equal(t, "page-"+string(f.Page), f.Slug)
	}
	assert.Equal(t, 0, frames[0].ThemeIndex)
	assert.Equal(t, PageHome, frames[0].Page)
	assert.Equal(t, 2, frames[8].ThemeIndex)
	assert.Equal(t, PageContact, frames[8].Page)
}

func TestLegacyIngestFocusesFirst(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadSource(theme.LegacySource("<html><body>old</body></html>"), "Saved"))

	idx, ok := m.Selection().FocusedIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, m.Result().Len())
	assert.Nil(t, m.Tabs())
}

func TestVersionsIngestShowsAll(t *testing.T) {
	_, sel, err := Ingest(theme.VersionsSource(threeThemes().Variants()...), "")
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	_, _, err = Ingest(theme.LegacySource(""), "")
	assert.Error(t, err)
}

func TestPageSlugForServices(t *testing.T) {
	v := theme.Variant{Markup: `<section id="page-home"></section><section id="page-services"></section>`}
	assert.Equal(t, "page-services", PageFeatures.SlugFor(v))
	assert.Equal(t, "page-home", PageHome.SlugFor(v))
	assert.Equal(t, "page-contact", PageContact.SlugFor(v))
}

func TestParsePage(t *testing.T) {
	p, ok := ParsePage("contact")
	assert.True(t, ok)
	assert.Equal(t, PageContact, p)
	_, ok = ParsePage("pricing")
	assert.False(t, ok)
}

func TestDeepLink(t *testing.T) {
	doc := "<html><BODY><p>x</p></BODY></html>"
	out := DeepLink(doc, "page-contact")

	assert.True(t, strings.HasSuffix(out, "</BODY></html>"))
	assert.Contains(t, out, `var h="#page-contact"`)
	assert.Equal(t, 1, strings.Count(out, "<script>"))

	assert.Equal(t, doc, DeepLink(doc, ""))
	assert.Equal(t, doc, DeepLink(doc, `x";alert(1)`))
	assert.True(t, strings.HasPrefix(DeepLink("<p>no body</p>", "page-home"), "<p>no body</p><script>"))
}

func TestDeepLinkNonASCII(t *testing.T) {
	script := `<script>(function(){var h="#page-features";if(location.hash!==h){location.hash=h;}})();</script>`

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "shrinking lowercase",
			doc:  "<html><body><p>İstanbul</p></body></html>",
			want: "<html><body><p>İstanbul</p>" + script + "</body></html>",
		},
		{
			name: "growing lowercase",
			doc:  "<html><body>" + strings.Repeat("Ⱥ", 20) + "</body></html>",
			want: "<html><body>" + strings.Repeat("Ⱥ", 20) + script + "</body></html>",
		},
		{
			name: "uppercase tag after multibyte text",
			doc:  "<HTML><BODY><h1>Çay Evi İzmir</h1></BODY></HTML>",
			want: "<HTML><BODY><h1>Çay Evi İzmir</h1>" + script + "</BODY></HTML>",
		},
		{
			name: "invalid utf-8",
			doc:  "<body>\xff\xfe</Body>",
			want: "<body>\xff\xfe" + script + "</Body>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeepLink(tt.doc, "page-features"))
		})
	}
}

func TestSelectionString(t *testing.T) {
	assert.Equal(t, "all", AllThemes().String())
	assert.Equal(t, "focused(2)", Focused(2).String())
	assert.Equal(t, "none", Selection{}.String())
}
