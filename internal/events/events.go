// Package events defines what a selection session reports to observers.
package events

import (
	"sync"

	"github.com/timelapsetech/videocalc-db/internal/model"
)

// State is the scheduler's lifecycle position.
type State string

const (
	StateIdle        State = "idle"
	StateResolving   State = "resolving"
	StateSettled     State = "settled"
	StateCalculating State = "calculating"
)

// Update conveys a state transition and the selection at that moment.
type Update struct {
	Seq       uint64
	State     State
	Selection model.Selection
	Message   string // short human-friendly status line
}

// Change reports one field the resolver rewrote on its own.
type Change struct {
	Seq   uint64
	Field model.Field
	From  string
	To    string
	Rule  string
}

// Result is emitted once per settled selection. Result is nil when the
// selection did not price; Outcome says why.
type Result struct {
	Seq     uint64
	Result  *model.CalculationResult
	Outcome string
	Missing []model.Field
	Message string // constraint explanation, if any
}

// Reporter is implemented by a UI or any observer interested in session events.
type Reporter interface {
	Update(u Update)
	Change(c Change)
	Result(r Result)
}

// Multi fans events out to several reporters in order.
type Multi []Reporter

func (m Multi) Update(u Update) {
	for _, r := range m {
		r.Update(u)
	}
}

func (m Multi) Change(c Change) {
	for _, r := range m {
		r.Change(c)
	}
}

func (m Multi) Result(res Result) {
	for _, r := range m {
		r.Result(res)
	}
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	updates []Update
	changes []Change
	results []Result
}

func (r *Recorder) Update(u Update) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.mu.Unlock()
}

func (r *Recorder) Change(c Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
}

func (r *Recorder) Result(res Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

// Updates returns a copy of the recorded updates.
func (r *Recorder) Updates() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

// Changes returns a copy of the recorded changes.
func (r *Recorder) Changes() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

// Results returns a copy of the recorded results.
func (r *Recorder) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

// States returns the recorded state sequence.
func (r *Recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, 0, len(r.updates))
	for _, u := range r.updates {
		out = append(out, u.State)
	}
	return out
}
