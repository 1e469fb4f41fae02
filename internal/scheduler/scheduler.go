// Package scheduler sequences selection writes, resolver passes and
// calculations for one session.
//
// Every write moves the session Idle -> Resolving -> Settled. A settled,
// complete selection is then priced (Calculating) and the session returns
// to Idle. Writes that arrive while Resolving are queued and folded into the
// same pass. With a debounce, the calculation waits for the burst of edits
// to end; a write during the wait supersedes it.
package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/timelapsetech/videocalc-db/internal/calc"
	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/events"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/resolver"
)

// ErrClosed is returned for writes after Close.
var ErrClosed = errors.New("scheduler closed")

// Scheduler owns the Selection of one session.
type Scheduler struct {
	provider catalog.Provider
	resolver *resolver.Resolver
	reporter events.Reporter
	logger   zerolog.Logger
	debounce time.Duration
	initial  model.Selection

	mu      sync.Mutex
	sel     model.Selection
	state   events.State
	queue   []write
	result  *model.CalculationResult
	outcome calc.Outcome
	priced  *model.Selection // selection that result/outcome belong to
	gen     uint64           // bumped when a pending calculation is superseded
	timer   *time.Timer
	seq     uint64
	closed  bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithReporter attaches an observer (used by the TUI).
func WithReporter(r events.Reporter) Option {
	return func(s *Scheduler) {
		s.reporter = r
	}
}

// WithDebounce delays calculation until no write has arrived for d.
// Zero calculates synchronously inside the write.
func WithDebounce(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithLogger sets the logger for scheduler and resolver diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithInitial seeds the session, e.g. from a shared link or preset.
func WithInitial(sel model.Selection) Option {
	return func(s *Scheduler) {
		s.initial = sel
	}
}

// New builds a Scheduler over provider and settles the initial selection.
func New(provider catalog.Provider, opts ...Option) *Scheduler {
	s := &Scheduler{
		provider: provider,
		logger:   zerolog.Nop(),
		initial:  model.DefaultSelection(),
		state:    events.StateIdle,
	}
	for _, o := range opts {
		o(s)
	}
	s.resolver = resolver.New(provider, resolver.WithLogger(s.logger))
	seed := s.initial
	_ = s.submit(write{seed: &seed})
	return s
}

// Apply writes one field. Level values are taken as given and corrected by
// the resolver; duration parts must be non-negative integers.
func (s *Scheduler) Apply(f model.Field, value string) error {
	w, err := newWrite(f, value)
	if err != nil {
		return err
	}
	return s.submit(w)
}

// SetDuration replaces the duration.
func (s *Scheduler) SetDuration(d model.Duration) error {
	if err := checkHours(d); err != nil {
		return err
	}
	return s.submit(write{duration: &d})
}

// Seed replaces the whole selection as one write, so it settles once.
func (s *Scheduler) Seed(sel model.Selection) error {
	if err := checkHours(sel.Duration); err != nil {
		return err
	}
	return s.submit(write{seed: &sel})
}

// Selection returns the current selection.
func (s *Scheduler) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// State returns the current lifecycle state.
func (s *Scheduler) State() events.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the latest calculation, or nil when the selection does not
// price. The returned value must not be modified.
func (s *Scheduler) Result() *model.CalculationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Outcome returns why the latest calculation did or did not produce a result.
func (s *Scheduler) Outcome() calc.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Options returns what a widget for level may offer right now.
func (s *Scheduler) Options(level model.Field) []model.Option {
	return s.resolver.Domain(s.Selection(), level)
}

// Explain returns the constraint message for the current selection.
func (s *Scheduler) Explain() string {
	return s.resolver.Explain(s.Selection())
}

// Hint describes the frame-rate rule for the current resolution.
func (s *Scheduler) Hint() string {
	return s.resolver.Hint(s.Selection())
}

// Pending reports whether a debounced calculation is waiting.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Flush runs a pending debounced calculation now.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer.Stop()
	s.timer = nil
	gen := s.gen
	s.mu.Unlock()
	s.calculate(gen)
}

// Close stops any pending calculation. Later writes return ErrClosed.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) submit(w write) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.queue = append(s.queue, w)
	if s.state == events.StateResolving {
		s.mu.Unlock()
		s.logger.Debug().Str("field", string(w.field)).Msg("write queued while resolving")
		return nil
	}
	s.supersedeLocked()
	s.state = events.StateResolving
	s.mu.Unlock()

	s.resolve()
	return nil
}

// supersedeLocked discards a pending or running calculation.
func (s *Scheduler) supersedeLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// resolve drains the write queue, settling after each batch, then hands the
// settled selection to the calculation step.
func (s *Scheduler) resolve() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			break
		}
		batch := s.queue
		s.queue = nil
		sel := s.sel
		for _, w := range batch {
			sel = w.apply(sel)
		}
		s.sel = sel
		seq := s.nextSeqLocked()
		s.mu.Unlock()

		s.emitUpdate(events.Update{Seq: seq, State: events.StateResolving, Selection: sel})

		settled, changes, err := s.resolver.Settle(sel)
		if err != nil {
			s.logger.Error().Err(err).Interface("selection", sel).Msg("resolver pass cap reached")
		}

		s.mu.Lock()
		s.sel = settled
		seq = s.nextSeqLocked()
		s.mu.Unlock()
		for _, c := range changes {
			s.emitChange(events.Change{Seq: seq, Field: c.Field, From: c.From, To: c.To, Rule: string(c.Rule)})
		}
	}

	// Queue is empty and the lock is held.
	sel := s.sel
	s.state = events.StateSettled
	seq := s.nextSeqLocked()
	unchanged := s.priced != nil && *s.priced == sel
	complete := sel.Complete()
	if !complete {
		s.result = nil
		s.outcome = calc.OutcomeIncomplete
		s.priced = &sel
	}
	gen := s.gen
	s.mu.Unlock()

	s.emitUpdate(events.Update{Seq: seq, State: events.StateSettled, Selection: sel})

	switch {
	case unchanged:
		s.idle(sel, gen)
	case !complete:
		s.logger.Debug().Interface("missing", sel.Missing()).Msg("incomplete selection")
		s.emitResult(events.Result{
			Seq:     seq,
			Outcome: calc.OutcomeIncomplete.String(),
			Missing: sel.Missing(),
		})
		s.idle(sel, gen)
	case s.debounce > 0:
		s.mu.Lock()
		if s.gen == gen && !s.closed {
			s.timer = time.AfterFunc(s.debounce, func() { s.fire(gen) })
		}
		s.mu.Unlock()
	default:
		s.calculate(gen)
	}
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()
	s.calculate(gen)
}

// calculate prices the selection of generation gen. A result computed for a
// superseded generation is dropped.
func (s *Scheduler) calculate(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	s.state = events.StateCalculating
	sel := s.sel
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.emitUpdate(events.Update{Seq: seq, State: events.StateCalculating, Selection: sel})
	res, outcome := calc.Calculate(sel, s.provider)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug().Msg("superseded calculation discarded")
		return
	}
	s.result = res
	s.outcome = outcome
	s.priced = &sel
	seq = s.nextSeqLocked()
	s.mu.Unlock()

	switch outcome {
	case calc.OutcomeOK:
		if res.FallbackFrameRate != "" {
			s.logger.Debug().
				Str("requested", sel.FrameRateID).
				Str("used", res.FallbackFrameRate).
				Msg("frame rate fallback")
		}
	case calc.OutcomeMalformed:
		s.logger.Warn().Str("variant", sel.VariantName).Msg(outcome.String())
	default:
		s.logger.Debug().Interface("selection", sel).Msg(outcome.String())
	}

	s.emitResult(events.Result{
		Seq:     seq,
		Result:  res,
		Outcome: outcome.String(),
		Message: s.resolver.Explain(sel),
	})
	s.idle(sel, gen)
}

func (s *Scheduler) idle(sel model.Selection, gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		// A newer write took over.
		s.mu.Unlock()
		return
	}
	s.state = events.StateIdle
	seq := s.nextSeqLocked()
	s.mu.Unlock()
	s.emitUpdate(events.Update{Seq: seq, State: events.StateIdle, Selection: sel})
}

func (s *Scheduler) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

func (s *Scheduler) emitUpdate(u events.Update) {
	if s.reporter != nil {
		s.reporter.Update(u)
	}
}

func (s *Scheduler) emitChange(c events.Change) {
	if s.reporter != nil {
		s.reporter.Change(c)
	}
}

func (s *Scheduler) emitResult(r events.Result) {
	if s.reporter != nil {
		s.reporter.Result(r)
	}
}
