// Package progress reports how far along a generation is. The Simulator is
// cosmetic: it walks a fixed list of labels on a timer and never decides when
// a generation is done.
package progress

import "sync"

// Labels are shown in order while a generation is outstanding.
var Labels = [...]string{
	"Reading your brief",
	"Sketching three layouts",
	"Styling each theme",
	"Polishing the final pages",
}

// LastStep is the index the simulator clamps at.
const LastStep = len(Labels) - 1

// Simulator holds the current step. It is safe for concurrent use.
type Simulator struct {
	mu      sync.Mutex
	step    int
	running bool
}

// NewSimulator returns an idle simulator at step 0.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Start resets to step 0 and begins accepting ticks.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = 0
	s.running = true
}

// Tick advances one step, stopping at LastStep. It reports whether the step
// changed. Ticks while idle are ignored.
func (s *Simulator) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.step >= LastStep {
		return false
	}
	s.step++
	return true
}

// Complete resets to step 0 and stops. Called on success and failure alike.
func (s *Simulator) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = 0
	s.running = false
}

// Step returns the current step in [0, LastStep].
func (s *Simulator) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Label returns the label for the current step.
func (s *Simulator) Label() string {
	return Labels[s.Step()]
}

// Running reports whether a generation is being simulated.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
