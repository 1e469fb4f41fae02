// Package resolver keeps a Selection consistent with the catalog. It
// computes the options each level may offer and drives a selection to the
// fixed point where every field is either empty or reachable from the
// fields above it.
package resolver

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

// ErrNoConvergence is returned when Settle hits its pass cap.
var ErrNoConvergence = errors.New("resolver: selection did not settle")

const defaultMaxPasses = 16

// Rule names the correction that produced a Change.
type Rule string

const (
	RuleUnknownCategory   Rule = "unknown-category"
	RuleResetCodec        Rule = "reset-codec"
	RuleResetVariant      Rule = "reset-variant"
	RuleAutoVariant       Rule = "auto-variant"
	RuleUnknownResolution Rule = "unknown-resolution"
	RuleReselectRes       Rule = "reselect-resolution"
	RuleClearResolution   Rule = "clear-resolution"
	RuleUnknownFrameRate  Rule = "unknown-frame-rate"
	RuleOnlyFrameRate     Rule = "only-frame-rate"
	RulePreferFrameRate   Rule = "prefer-frame-rate"
	RuleClearFrameRate    Rule = "clear-frame-rate"
)

// Auto reports whether the rule picks a value rather than clearing one.
func (r Rule) Auto() bool {
	switch r {
	case RuleAutoVariant, RuleReselectRes, RuleOnlyFrameRate, RulePreferFrameRate:
		return true
	}
	return false
}

// Change records one field rewritten by a rule.
type Change struct {
	Rule  Rule
	Field model.Field
	From  string
	To    string
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s %q -> %q", c.Rule, c.Field, c.From, c.To)
}

// Resolver applies the dependency rules against a catalog.
type Resolver struct {
	provider  catalog.Provider
	logger    zerolog.Logger
	maxPasses int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for change tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithMaxPasses overrides the Settle pass cap.
func WithMaxPasses(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}

// New builds a Resolver over provider.
func New(provider catalog.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:  provider,
		logger:    zerolog.Nop(),
		maxPasses: defaultMaxPasses,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Step applies the first rule that fires, top level first, and returns the
// rewritten selection with the fields it touched. No changes means sel is
// already settled.
func (r *Resolver) Step(sel model.Selection) (model.Selection, []Change) {
	sc := r.scope(sel)
	set := func(rule Rule, fields ...model.Field) (model.Selection, []Change) {
		return r.apply(sel, rule, fields...)
	}

	if sel.CategoryID != "" && !sc.hasCategory {
		return set(RuleUnknownCategory, model.FieldCategory)
	}
	if sel.CodecID != "" && !sc.hasCodec {
		return set(RuleResetCodec, model.FieldCodec, model.FieldVariant)
	}
	if sel.VariantName != "" && !sc.hasVariant {
		return set(RuleResetVariant, model.FieldVariant)
	}
	if sc.hasCodec && sel.VariantName == "" && len(sc.codec.Variants) == 1 && !sc.codec.Variants[0].Bitrates.Empty() {
		return r.pick(sel, RuleAutoVariant, model.FieldVariant, sc.codec.Variants[0].Name)
	}

	if sel.ResolutionID != "" {
		if _, ok := options.Resolution(sel.ResolutionID); !ok {
			return set(RuleUnknownResolution, model.FieldResolution)
		}
	}
	if sc.hasVariant {
		domain := r.resolutionDomain(sel, sc)
		if !containsResolution(domain, sel.ResolutionID) {
			if len(domain) > 0 {
				return r.pick(sel, RuleReselectRes, model.FieldResolution, domain[0].ID)
			}
			if sel.ResolutionID != "" {
				return set(RuleClearResolution, model.FieldResolution)
			}
		}
	}

	if sel.FrameRateID != "" {
		if _, ok := options.FrameRate(sel.FrameRateID); !ok {
			return set(RuleUnknownFrameRate, model.FieldFrameRate)
		}
	}
	if sc.hasVariant {
		domain := r.frameRateDomain(sel, sc)
		switch {
		case len(domain) == 1 && sel.FrameRateID != domain[0].ID:
			return r.pick(sel, RuleOnlyFrameRate, model.FieldFrameRate, domain[0].ID)
		case len(domain) > 1 && !containsFrameRate(domain, sel.FrameRateID):
			ro, _ := options.Resolution(sel.ResolutionID)
			fr, _ := options.PreferredFrameRate(ro, domain)
			return r.pick(sel, RulePreferFrameRate, model.FieldFrameRate, fr.ID)
		case len(domain) == 0 && sel.FrameRateID != "":
			return set(RuleClearFrameRate, model.FieldFrameRate)
		}
	}
	return sel, nil
}

func (r *Resolver) apply(sel model.Selection, rule Rule, fields ...model.Field) (model.Selection, []Change) {
	changes := make([]Change, 0, len(fields))
	for _, f := range fields {
		from := sel.Get(f)
		if from == "" {
			continue
		}
		sel = sel.With(f, "")
		changes = append(changes, Change{Rule: rule, Field: f, From: from})
	}
	return sel, changes
}

func (r *Resolver) pick(sel model.Selection, rule Rule, f model.Field, to string) (model.Selection, []Change) {
	from := sel.Get(f)
	return sel.With(f, to), []Change{{Rule: rule, Field: f, From: from, To: to}}
}

// Settle steps sel until no rule fires. Each field may be auto-selected at
// most once per call; a second auto-selection of the same field is dropped
// and Settle stops there, returning ErrNoConvergence.
func (r *Resolver) Settle(sel model.Selection) (model.Selection, []Change, error) {
	var all []Change
	picked := make(map[model.Field]bool)
	for pass := 0; pass < r.maxPasses; pass++ {
		next, changes := r.Step(sel)
		if len(changes) == 0 {
			return sel, all, nil
		}
		for _, c := range changes {
			if !c.Rule.Auto() {
				continue
			}
			if picked[c.Field] {
				r.logger.Warn().Str("rule", string(c.Rule)).Str("field", string(c.Field)).Msg("auto-selection suppressed")
				return sel, all, ErrNoConvergence
			}
			picked[c.Field] = true
		}
		for _, c := range changes {
			r.logger.Debug().
				Str("rule", string(c.Rule)).
				Str("field", string(c.Field)).
				Str("from", c.From).
				Str("to", c.To).
				Msg("selection corrected")
		}
		all = append(all, changes...)
		sel = next
	}
	return sel, all, ErrNoConvergence
}

// Settled reports whether no rule would fire on sel.
func (r *Resolver) Settled(sel model.Selection) bool {
	_, changes := r.Step(sel)
	return len(changes) == 0
}

func containsResolution(rs []model.ResolutionOption, id string) bool {
	for _, r := range rs {
		if r.ID == id {
			return true
		}
	}
	return false
}

func containsFrameRate(frs []model.FrameRateOption, id string) bool {
	for _, fr := range frs {
		if fr.ID == id {
			return true
		}
	}
	return false
}
