// Package studio is the browser front end: a single-user workspace that runs
// one generation at a time, plus the HTTP routes and views on top of it.
package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/preview"
	"github.com/ziadkadry99/themegen/internal/progress"
	"github.com/ziadkadry99/themegen/internal/theme"
)

var (
	// ErrBusy is returned when a generation is already outstanding.
	ErrBusy = errors.New("a generation is already in progress")
	// ErrNotFound is returned when a creation id does not exist.
	ErrNotFound = errors.New("creation not found")
)

// Generator produces designs for a request. *theme.Generator implements it.
type Generator interface {
	Generate(ctx context.Context, req theme.Request) (*theme.Generation, error)
}

// Options configures a Workspace.
type Options struct {
	// Interval between progress steps. Zero uses progress.DefaultInterval.
	Interval time.Duration
	// Provider is recorded on saved creations.
	Provider string
	Logger   zerolog.Logger
}

// Workspace holds everything the studio page shows. All methods are safe for
// concurrent use.
type Workspace struct {
	gen    Generator
	store  *creations.Store
	opts   Options
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	seq          uint64
	rev          uint64
	pending      bool
	sim          *progress.Simulator
	ticker       *progress.Ticker
	model        *preview.Model
	creationID   string
	creationName string
	lastErr      string
	subs         map[chan State]struct{}
}

// NewWorkspace creates a workspace. store may be nil, in which case results
// are not persisted.
func NewWorkspace(gen Generator, store *creations.Store, opts Options) *Workspace {
	ctx, cancel := context.WithCancel(context.Background())
	return &Workspace{
		gen:    gen,
		store:  store,
		opts:   opts,
		log:    opts.Logger.With().Str("component", "studio").Logger(),
		ctx:    ctx,
		cancel: cancel,
		sim:    progress.NewSimulator(),
		model:  preview.New(),
		subs:   make(map[chan State]struct{}),
	}
}

// Close cancels any outstanding generation and stops the progress ticker.
func (w *Workspace) Close() {
	w.cancel()
	w.mu.Lock()
	tk := w.ticker
	w.ticker = nil
	w.mu.Unlock()
	if tk != nil {
		tk.Stop()
	}
}

// Submit starts a generation and returns its sequence number. Any result on
// display is discarded. It does not wait for the result; watch State or
// Subscribe.
func (w *Workspace) Submit(name string, req theme.Request) (uint64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return 0, ErrBusy
	}
	w.seq++
	seq := w.seq
	w.pending = true
	w.lastErr = ""
	w.model.Reset()
	w.creationID = ""
	w.creationName = name
	w.sim.Start()
	tk := progress.NewTicker(w.sim, w.opts.Interval, func(int) { w.notify() })
	w.ticker = tk
	tk.Start(w.ctx)
	w.changedLocked()
	w.mu.Unlock()

	w.log.Info().Uint64("seq", seq).Str("name", name).Bool("attachment", req.Attachment != nil).Msg("generation started")

	go w.run(seq, name, req)
	return seq, nil
}

func (w *Workspace) run(seq uint64, name string, req theme.Request) {
	start := time.Now()
	gen, err := w.gen.Generate(w.ctx, req)
	w.finish(seq, name, req, gen, err, time.Since(start))
}

func (w *Workspace) finish(seq uint64, name string, req theme.Request, gen *theme.Generation, err error, took time.Duration) {
	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		w.log.Debug().Uint64("seq", seq).Msg("dropping stale generation result")
		return
	}

	tk := w.ticker
	w.ticker = nil
	w.pending = false
	w.sim.Complete()

	if err != nil {
		w.lastErr = err.Error()
		w.log.Error().Err(err).Uint64("seq", seq).Bool("structural", theme.IsStructural(err)).Msg("generation failed")
	} else if loadErr := w.model.Load(gen.Result, preview.AllThemes()); loadErr != nil {
		w.lastErr = loadErr.Error()
	} else {
		w.creationID = w.saveLocked(name, req, gen)
		w.log.Info().Uint64("seq", seq).Dur("took", took).
			Int("input_tokens", gen.InputTokens).Int("output_tokens", gen.OutputTokens).
			Str("creation", w.creationID).Msg("generation finished")
	}
	w.changedLocked()
	w.mu.Unlock()

	if tk != nil {
		tk.Stop()
	}
}

// saveLocked persists a finished generation and returns its id, or "" when
// there is no store or saving failed.
func (w *Workspace) saveLocked(name string, req theme.Request, gen *theme.Generation) string {
	if w.store == nil {
		return ""
	}
	c := &creations.Creation{
		Name:         name,
		Prompt:       req.Prompt,
		Provider:     w.opts.Provider,
		Model:        gen.Model,
		InputTokens:  gen.InputTokens,
		OutputTokens: gen.OutputTokens,
		Source:       theme.VersionsSource(gen.Result.Variants()...),
	}
	if req.Attachment != nil {
		c.AttachmentName = req.Attachment.Name
		c.AttachmentType = req.Attachment.MIMEType
	}
	if err := w.store.Save(w.ctx, c); err != nil {
		w.log.Warn().Err(err).Msg("could not save creation")
		return ""
	}
	return c.ID
}

// SelectFocus shows theme i on its own.
func (w *Workspace) SelectFocus(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.model.SelectFocus(i); err != nil {
		return err
	}
	w.changedLocked()
	return nil
}

// ShowAll returns to the compare view.
func (w *Workspace) ShowAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.model.ShowAll(); err != nil {
		return err
	}
	w.changedLocked()
	return nil
}

// Reset clears the result and re-enables submission. An outstanding
// generation keeps running, but its result is discarded when it arrives.
func (w *Workspace) Reset() {
	w.mu.Lock()
	w.seq++
	w.pending = false
	w.sim.Complete()
	w.model.Reset()
	w.lastErr = ""
	w.creationID = ""
	w.creationName = ""
	tk := w.ticker
	w.ticker = nil
	w.changedLocked()
	w.mu.Unlock()

	if tk != nil {
		tk.Stop()
	}
}

// Open loads a saved creation. Creations saved from a single document open
// focused on it.
func (w *Workspace) Open(ctx context.Context, id string) error {
	if w.store == nil {
		return ErrNotFound
	}
	c, err := w.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	result, sel, err := preview.Ingest(c.Source, c.Name)
	if err != nil {
		return fmt.Errorf("opening creation %s: %w", id, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending {
		return ErrBusy
	}
	if err := w.model.Load(result, sel); err != nil {
		return err
	}
	w.creationID = c.ID
	w.creationName = c.Name
	w.lastErr = ""
	w.changedLocked()
	return nil
}

// Variant returns theme i of the current result and the creation name it
// belongs to.
func (w *Workspace) Variant(i int) (theme.Variant, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.model.Active() {
		return theme.Variant{}, "", preview.ErrNoResult
	}
	v, err := w.model.Result().At(i)
	if err != nil {
		return theme.Variant{}, "", fmt.Errorf("%w: %v", preview.ErrIndexOutOfRange, err)
	}
	return v, w.creationName, nil
}

// Pending reports whether a generation is outstanding.
func (w *Workspace) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Store returns the creation store, which may be nil.
func (w *Workspace) Store() *creations.Store { return w.store }

// Subscribe returns a channel receiving a State after every change. Slow
// readers miss intermediate states. Call the returned func to unsubscribe.
func (w *Workspace) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 4)
	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, ch)
			close(ch)
			w.mu.Unlock()
		})
	}
}

// notify pushes the current state without bumping the revision. Used for
// progress steps.
func (w *Workspace) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.publishLocked()
}

func (w *Workspace) changedLocked() {
	w.rev++
	w.publishLocked()
}

func (w *Workspace) publishLocked() {
	if len(w.subs) == 0 {
		return
	}
	st := w.stateLocked()
	for ch := range w.subs {
		select {
		case ch <- st:
		default:
		}
	}
}
