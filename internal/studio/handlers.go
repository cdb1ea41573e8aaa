package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/export"
	"github.com/ziadkadry99/themegen/internal/llm"
	"github.com/ziadkadry99/themegen/internal/preview"
	"github.com/ziadkadry99/themegen/internal/theme"
)

func (s *Studio) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, s.ws.State()); err != nil {
		s.log.Error().Err(err).Msg("rendering index")
	}
}

func (s *Studio) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.State())
}

func (s *Studio) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading form: %v", err))
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = "Untitled"
	}
	req := theme.Request{Prompt: r.FormValue("prompt")}

	att, err := s.readAttachment(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Attachment = att

	seq, err := s.ws.Submit(name, req)
	switch {
	case errors.Is(err, theme.ErrEmptyRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Debug().Uint64("seq", seq).Msg("accepted generation")
	writeJSON(w, http.StatusAccepted, s.ws.State())
}

// readAttachment returns the uploaded reference file, or nil when none was
// sent. The declared content type is ignored in favor of the sniffed one.
func (s *Studio) readAttachment(r *http.Request) (*llm.Attachment, error) {
	f, hdr, err := r.FormFile("attachment")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	if int64(len(data)) > s.maxUpload {
		return nil, fmt.Errorf("attachment exceeds %d bytes", s.maxUpload)
	}
	if len(data) == 0 {
		return nil, nil
	}

	att := llm.NewAttachment(hdr.Filename, data)
	return &att, nil
}

func (s *Studio) handleSelect(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	if err := s.ws.SelectFocus(i); err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ws.State())
}

func (s *Studio) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.ShowAll(); err != nil {
		writeModelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ws.State())
}

func (s *Studio) handleReset(w http.ResponseWriter, r *http.Request) {
	s.ws.Reset()
	writeJSON(w, http.StatusOK, s.ws.State())
}

func (s *Studio) handleOpen(w http.ResponseWriter, r *http.Request) {
	err := s.ws.Open(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.ws.State())
}

// handleFrame serves one theme's document for an iframe. With ?page= the
// document is deep linked to that page once at load.
func (s *Studio) handleFrame(w http.ResponseWriter, r *http.Request) {
	v, _, ok := s.variant(w, r)
	if !ok {
		return
	}

	markup := v.Markup
	if q := r.URL.Query().Get("page"); q != "" {
		page, ok := preview.ParsePage(q)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown page "+strconv.Quote(q))
			return
		}
		markup = preview.DeepLink(markup, page.SlugFor(v))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, markup)
}

func (s *Studio) handleExport(w http.ResponseWriter, r *http.Request) {
	v, creationName, ok := s.variant(w, r)
	if !ok {
		return
	}

	switch kind := chi.URLParam(r, "kind"); kind {
	case "markup":
		export.Markup(creationName, v).Serve(w)
	case "prompt":
		export.Prompt(v).Serve(w)
	default:
		writeError(w, http.StatusNotFound, "unknown export "+strconv.Quote(kind))
	}
}

// creationResponse is the JSON shape of a stored creation.
type creationResponse struct {
	*creations.Creation
	Kind     string       `json:"kind"`
	Versions theme.Result `json:"versions"`
}

func (s *Studio) handleCreation(w http.ResponseWriter, r *http.Request) {
	store := s.ws.Store()
	if store == nil {
		writeError(w, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	c, err := store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	result, err := c.Result()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, creationResponse{Creation: c, Kind: c.Source.Kind.String(), Versions: result})
}

// variant resolves the {index} URL parameter, writing an error response when
// it does not name a loaded theme.
func (s *Studio) variant(w http.ResponseWriter, r *http.Request) (theme.Variant, string, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return theme.Variant{}, "", false
	}
	v, name, err := s.ws.Variant(i)
	if err != nil {
		writeModelError(w, err)
		return theme.Variant{}, "", false
	}
	return export.Named(v, i), name, true
}

func writeModelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, preview.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, preview.ErrNoResult):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
