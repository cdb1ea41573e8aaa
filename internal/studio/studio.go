package studio

import (
	"html/template"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// DefaultMaxAttachment caps uploaded reference files.
const DefaultMaxAttachment = 10 << 20

// Config configures the HTTP front end.
type Config struct {
	MaxAttachmentBytes int64
	Logger             zerolog.Logger
}

// Studio serves the workspace over HTTP.
type Studio struct {
	ws        *Workspace
	maxUpload int64
	log       zerolog.Logger
	page      *template.Template
}

// New creates a Studio for ws.
func New(ws *Workspace, cfg Config) *Studio {
	if cfg.MaxAttachmentBytes <= 0 {
		cfg.MaxAttachmentBytes = DefaultMaxAttachment
	}
	return &Studio{
		ws:        ws,
		maxUpload: cfg.MaxAttachmentBytes,
		log:       cfg.Logger.With().Str("component", "studio-http").Logger(),
		page:      template.Must(template.New("index").Funcs(template.FuncMap{"codeCSS": descriptionCSS}).Parse(indexTemplate)),
	}
}

// RegisterRoutes mounts all studio routes onto the given router.
func (s *Studio) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/state", s.handleState)
		r.Post("/generate", s.handleGenerate)
		r.Post("/select/{index}", s.handleSelect)
		r.Post("/compare", s.handleCompare)
		r.Post("/reset", s.handleReset)
		r.Post("/open/{id}", s.handleOpen)
	})

	r.Get("/ws/state", s.handleWebSocket)
	r.Get("/frames/{index}", s.handleFrame)
	r.Get("/export/{index}/{kind}", s.handleExport)
	r.Get("/creations/{id}", s.handleCreation)
}
