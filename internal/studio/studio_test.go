package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/db"
	"github.com/ziadkadry99/themegen/internal/theme"
)

type reply struct {
	gen *theme.Generation
	err error
}

// gatedGenerator blocks call n until gates[n] receives a reply.
type gatedGenerator struct {
	mu    sync.Mutex
	reqs  []theme.Request
	gates []chan reply
}

func newGatedGenerator(calls int) *gatedGenerator {
	g := &gatedGenerator{}
	for i := 0; i < calls; i++ {
		g.gates = append(g.gates, make(chan reply, 1))
	}
	return g
}

func (g *gatedGenerator) Generate(ctx context.Context, req theme.Request) (*theme.Generation, error) {
	g.mu.Lock()
	n := len(g.reqs)
	g.reqs = append(g.reqs, req)
	g.mu.Unlock()

	select {
	case r := <-g.gates[n]:
		return r.gen, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.reqs)
}

func (g *gatedGenerator) request(n int) theme.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reqs[n]
}

func generation(prefix string) *theme.Generation {
	vs := make([]theme.Variant, 3)
	for i := range vs {
		vs[i] = theme.Variant{
			Name:        fmt.Sprintf("%s %d", prefix, i),
			Description: "A **bold** direction",
			Markup: fmt.Sprintf(`<html><body><section id="page-home">%s %d</section>`+
				`<script id="design-prompt-data" type="text/plain">PROMPT_%d</script></body></html>`, prefix, i, i),
		}
	}
	return &theme.Generation{Result: theme.NewResult(vs...), Model: "fake", InputTokens: 1, OutputTokens: 2}
}

type fixture struct {
	gen    *gatedGenerator
	ws     *Workspace
	store  *creations.Store
	router chi.Router
}

func setup(t *testing.T, calls int) *fixture {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := creations.NewStore(database)
	gen := newGatedGenerator(calls)
	ws := NewWorkspace(gen, store, Options{Interval: time.Hour, Provider: "fake", Logger: zerolog.Nop()})
	t.Cleanup(ws.Close)

	r := chi.NewRouter()
	New(ws, Config{MaxAttachmentBytes: 1 << 20, Logger: zerolog.Nop()}).RegisterRoutes(r)
	return &fixture{gen: gen, ws: ws, store: store, router: r}
}

func (f *fixture) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("attachment", "ref.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (f *fixture) generate(t *testing.T, name, prompt string) *httptest.ResponseRecorder {
	body, ct := multipartBody(t, map[string]string{"name": name, "prompt": prompt}, nil)
	return f.do(t, http.MethodPost, "/api/generate", body, ct)
}

func (f *fixture) waitIdle(t *testing.T) State {
	t.Helper()
	require.Eventually(t, func() bool { return !f.ws.Pending() }, 2*time.Second, 5*time.Millisecond)
	return f.ws.State()
}

func (f *fixture) loaded(t *testing.T, name string) {
	t.Helper()
	require.Equal(t, http.StatusAccepted, f.generate(t, name, "a site").Code)
	f.gen.gates[0] <- reply{gen: generation("Theme")}
	st := f.waitIdle(t)
	require.Len(t, st.Themes, 3)
}

func TestGenerateLoadsThreeThemes(t *testing.T) {
	f := setup(t, 1)

	w := f.generate(t, "My Café!", "a coffee shop")
	require.Equal(t, http.StatusAccepted, w.Code)

	var st State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.True(t, st.Pending)
	assert.Equal(t, 0, st.Step)

	f.gen.gates[0] <- reply{gen: generation("Theme")}
	st = f.waitIdle(t)

	assert.Empty(t, st.Error)
	assert.Equal(t, "all", st.Selection)
	assert.Equal(t, -1, st.Focused)
	require.Len(t, st.Themes, 3)
	assert.Len(t, st.Tabs, 4)
	assert.Len(t, st.Frames, 9)
	assert.Contains(t, string(st.Themes[0].DescriptionHTML), "<strong>bold</strong>")
	require.NotEmpty(t, st.CreationID)

	saved, err := f.store.Get(context.Background(), st.CreationID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "My Café!", saved.Name)
	assert.Equal(t, "a coffee shop", saved.Prompt)
	assert.Equal(t, "fake", saved.Provider)
}

func TestGenerateWhileBusyConflicts(t *testing.T) {
	f := setup(t, 2)

	require.Equal(t, http.StatusAccepted, f.generate(t, "a", "first").Code)
	w := f.generate(t, "b", "second")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrBusy.Error())

	f.gen.gates[0] <- reply{gen: generation("Theme")}
	f.waitIdle(t)
	assert.Equal(t, 1, f.gen.calls())
}

func TestGenerateRequiresPromptOrAttachment(t *testing.T) {
	f := setup(t, 1)
	w := f.generate(t, "x", "   ")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.gen.calls())
}

func TestResetDropsStaleResult(t *testing.T) {
	f := setup(t, 2)

	require.Equal(t, http.StatusAccepted, f.generate(t, "old", "first").Code)
	require.Eventually(t, func() bool { return f.gen.calls() == 1 }, time.Second, 5*time.Millisecond)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/reset", nil, "").Code)
	assert.False(t, f.ws.Pending(), "reset re-enables submission")

	require.Equal(t, http.StatusAccepted, f.generate(t, "new", "second").Code)
	require.Eventually(t, func() bool { return f.gen.calls() == 2 }, time.Second, 5*time.Millisecond)

	// The first call answers late and must not land.
	f.gen.gates[0] <- reply{gen: generation("Stale")}
	time.Sleep(20 * time.Millisecond)
	st := f.ws.State()
	assert.True(t, st.Pending)
	assert.Empty(t, st.Themes)

	f.gen.gates[1] <- reply{gen: generation("Fresh")}
	st = f.waitIdle(t)
	require.Len(t, st.Themes, 3)
	assert.Equal(t, "Fresh 0", st.Themes[0].Name)
	assert.Equal(t, "new", st.CreationName)
}

func TestResetWithoutNewRequestIgnoresLateResult(t *testing.T) {
	f := setup(t, 1)
	require.Equal(t, http.StatusAccepted, f.generate(t, "x", "p").Code)
	f.ws.Reset()

	f.gen.gates[0] <- reply{gen: generation("Late")}
	time.Sleep(20 * time.Millisecond)

	st := f.ws.State()
	assert.False(t, st.Pending)
	assert.Empty(t, st.Themes)
	assert.Equal(t, "none", st.Selection)
}

func TestSubmitDiscardsPreviousResult(t *testing.T) {
	f := setup(t, 2)
	f.loaded(t, "One")
	require.NotEmpty(t, f.ws.State().CreationID)

	require.Equal(t, http.StatusAccepted, f.generate(t, "Two", "another site").Code)
	st := f.ws.State()
	assert.True(t, st.Pending)
	assert.Empty(t, st.Themes)
	assert.Empty(t, st.CreationID)
	assert.Equal(t, "none", st.Selection)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodGet, "/export/0/markup", nil, "").Code)

	f.gen.gates[1] <- reply{err: errors.New("connection refused")}
	st = f.waitIdle(t)
	assert.Contains(t, st.Error, "connection refused")
	assert.Empty(t, st.Themes)
	assert.Empty(t, st.CreationID)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodGet, "/export/0/markup", nil, "").Code)
}

func TestGenerationErrorIsShown(t *testing.T) {
	f := setup(t, 1)
	require.Equal(t, http.StatusAccepted, f.generate(t, "x", "p").Code)

	f.gen.gates[0] <- reply{err: &theme.StructuralValidationError{Reason: "expected exactly 3 designs, got 2"}}
	st := f.waitIdle(t)

	assert.Contains(t, st.Error, "expected exactly 3 designs")
	assert.Empty(t, st.Themes, "no partial result")
	assert.Equal(t, 0, st.Step)
}

func TestSelectAndCompare(t *testing.T) {
	f := setup(t, 1)
	f.loaded(t, "Shop")

	w := f.do(t, http.MethodPost, "/api/select/2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var st State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Focused)
	require.Len(t, st.Frames, 1)
	assert.Equal(t, 2, st.Frames[0].ThemeIndex)
	assert.True(t, st.Frames[0].Interactive)
	assert.True(t, st.Tabs[2].Active)

	w = f.do(t, http.MethodPost, "/api/compare", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, "all", st.Selection)
	assert.Len(t, st.Themes, 3)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/select/3", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/select/x", nil, "").Code)
}

func TestSelectBeforeLoad(t *testing.T) {
	f := setup(t, 0)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/select/0", nil, "").Code)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/compare", nil, "").Code)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodGet, "/frames/0", nil, "").Code)
}

func TestFrames(t *testing.T) {
	f := setup(t, 1)
	f.loaded(t, "Shop")

	w := f.do(t, http.MethodGet, "/frames/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sandbox allow-scripts", w.Header().Get("Content-Security-Policy"))
	assert.Contains(t, w.Body.String(), "Theme 1")
	assert.NotContains(t, w.Body.String(), "location.hash=h")

	w = f.do(t, http.MethodGet, "/frames/1?page=contact", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `var h="#page-contact"`)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/frames/1?page=pricing", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/frames/9", nil, "").Code)
}

func TestExports(t *testing.T) {
	f := setup(t, 1)
	f.loaded(t, "My Café!")

	w := f.do(t, http.MethodGet, "/export/0/markup", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="my_caf__theme_0.html"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "<section id=\"page-home\">Theme 0</section>")

	w = f.do(t, http.MethodGet, "/export/2/prompt", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="theme_2_prompt.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PROMPT_2", w.Body.String())

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/export/0/zip", nil, "").Code)
}

func TestAttachmentIsSniffed(t *testing.T) {
	f := setup(t, 1)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

	body, ct := multipartBody(t, map[string]string{"name": "img"}, png)
	require.Equal(t, http.StatusAccepted, f.do(t, http.MethodPost, "/api/generate", body, ct).Code)
	require.Eventually(t, func() bool { return f.gen.calls() == 1 }, time.Second, 5*time.Millisecond)

	req := f.gen.request(0)
	require.NotNil(t, req.Attachment)
	assert.Equal(t, "image/png", req.Attachment.MIMEType)
	assert.Equal(t, "ref.png", req.Attachment.Name)
	assert.Empty(t, req.Prompt)

	f.gen.gates[0] <- reply{gen: generation("Theme")}
	f.waitIdle(t)
}

func TestOpenLegacyCreationFocusesIt(t *testing.T) {
	f := setup(t, 0)
	c := &creations.Creation{Name: "Old", Source: theme.LegacySource(`<html><body>legacy</body></html>`)}
	require.NoError(t, f.store.Save(context.Background(), c))

	w := f.do(t, http.MethodPost, "/api/open/"+c.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var st State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 0, st.Focused)
	assert.Equal(t, "focused(0)", st.Selection)
	assert.Empty(t, st.Tabs)
	require.Len(t, st.Themes, 1)
	assert.Equal(t, "Old", st.Themes[0].Name)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/open/missing", nil, "").Code)
}

func TestGetCreation(t *testing.T) {
	f := setup(t, 1)
	f.loaded(t, "Shop")
	id := f.ws.State().CreationID

	w := f.do(t, http.MethodGet, "/creations/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID       string           `json:"id"`
		Name     string           `json:"name"`
		Kind     string           `json:"kind"`
		Versions []theme.Variant `json:"versions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id, body.ID)
	assert.Equal(t, "Shop", body.Name)
	assert.Equal(t, "versions", body.Kind)
	assert.Len(t, body.Versions, 3)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/creations/nope", nil, "").Code)
}

func TestIndexRenders(t *testing.T) {
	f := setup(t, 1)

	w := f.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Theme Studio")

	f.loaded(t, "Shop")
	body := f.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, body, "Theme 2")
	assert.Contains(t, body, `src="/frames/0?page=home"`)
	assert.Contains(t, body, `sandbox="allow-scripts"`)

	require.NoError(t, f.ws.SelectFocus(1))
	body = f.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, body, `src="/frames/1"`)
	assert.NotContains(t, body, "?page=")
}

func TestProgressTicksWhilePending(t *testing.T) {
	gen := newGatedGenerator(1)
	ws := NewWorkspace(gen, nil, Options{Interval: 5 * time.Millisecond, Logger: zerolog.Nop()})
	defer ws.Close()

	_, err := ws.Submit("x", theme.Request{Prompt: "p"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return ws.State().Step == 3 }, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, ws.State().Step, "clamped")

	gen.gates[0] <- reply{gen: generation("T")}
	require.Eventually(t, func() bool { return !ws.Pending() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, ws.State().Step)
	assert.Empty(t, ws.State().CreationID, "no store, nothing saved")
}

func TestWebSocketPushesState(t *testing.T) {
	f := setup(t, 1)
	f.loaded(t, "Shop")

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/state", nil)
	require.NoError(t, err)
	defer conn.Close()

	var st State
	require.NoError(t, conn.ReadJSON(&st))
	assert.Equal(t, "all", st.Selection)

	require.NoError(t, f.ws.SelectFocus(0))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&st))
	assert.Equal(t, "focused(0)", st.Selection)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	f := setup(t, 0)
	srv := httptest.NewServer(f.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/state"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {srv.URL}})
	require.NoError(t, err)
	conn.Close()
}

func TestSubscribeUnsubscribe(t *testing.T) {
	ws := NewWorkspace(newGatedGenerator(0), nil, Options{Logger: zerolog.Nop()})
	defer ws.Close()

	ch, cancel := ws.Subscribe()
	ws.Reset()
	st := <-ch
	assert.Equal(t, "none", st.Selection)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.NotPanics(t, ws.Reset)
}

func TestRenderDescriptionSanitizes(t *testing.T) {
	out := string(renderDescription("**Bold** <script>alert(1)</script> [x](javascript:alert(1))"))
	assert.Contains(t, out, "<strong>Bold</strong>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestWorkspaceSubmitValidates(t *testing.T) {
	ws := NewWorkspace(newGatedGenerator(0), nil, Options{Logger: zerolog.Nop()})
	defer ws.Close()
	_, err := ws.Submit("x", theme.Request{})
	assert.True(t, errors.Is(err, theme.ErrEmptyRequest))
}

func TestRenderDescriptionHighlightsCode(t *testing.T) {
	out := string(renderDescription("Palette:\n\n```css\n.hero { color: #333; }\n```\n"))
	assert.Contains(t, out, `class="chroma"`)
	assert.Contains(t, out, "hero")
	assert.NotEmpty(t, descriptionCSS())
}
