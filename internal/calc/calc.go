// Package calc derives bitrate and file size from a settled selection.
package calc

import (
	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

// Outcome classifies why Calculate did or did not produce a result. Only
// OutcomeOK carries a result; the others are diagnostic.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeIncomplete means a level is empty or the duration is zero.
	OutcomeIncomplete
	// OutcomeUnsupported means every level is set but no positive bitrate
	// exists for the combination.
	OutcomeUnsupported
	// OutcomeMalformed means the variant's table or entry has the wrong shape.
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeIncomplete:
		return "incomplete selection"
	case OutcomeUnsupported:
		return "unsupported combination"
	case OutcomeMalformed:
		return "malformed bitrate table"
	}
	return "unknown"
}

// Calculate looks up the bitrate for sel and derives the file size. It has
// no side effects and returns equal results for equal inputs.
//
// When the entry is keyed by frame rate and sel's frame rate has no numeric
// value, the entry's first frame rate in source order is used instead and
// reported in FallbackFrameRate.
func Calculate(sel model.Selection, provider catalog.Provider) (*model.CalculationResult, Outcome) {
	seconds := sel.Duration.TotalSeconds()
	if len(sel.Missing()) > 0 || seconds <= 0 {
		return nil, OutcomeIncomplete
	}

	cat, ok := model.FindCategory(provider.Categories(), sel.CategoryID)
	if !ok {
		return nil, OutcomeUnsupported
	}
	codec, ok := cat.FindCodec(sel.CodecID)
	if !ok {
		return nil, OutcomeUnsupported
	}
	variant, ok := codec.FindVariant(sel.VariantName)
	if !ok {
		return nil, OutcomeUnsupported
	}
	if variant.Bitrates.Malformed {
		return nil, OutcomeMalformed
	}
	entry, ok := variant.Bitrates.Entry(sel.ResolutionID)
	if !ok {
		return nil, OutcomeUnsupported
	}

	var (
		mbps     float64
		fallback string
	)
	switch entry.Kind {
	case model.EntryFlat:
		mbps = entry.Mbps
	case model.EntryPerFrameRate:
		v, ok := entry.Lookup(sel.FrameRateID)
		if !ok {
			first, found := entry.First()
			if !found || !first.Numeric {
				return nil, OutcomeUnsupported
			}
			v, fallback = first.Mbps, first.FrameRateID
		}
		mbps = v
	default:
		return nil, OutcomeMalformed
	}
	if !model.Positive(mbps) {
		return nil, OutcomeUnsupported
	}

	mb := FileSizeMB(mbps, seconds)
	return &model.CalculationResult{
		BitrateMbps:        mbps,
		FileSizeMB:         mb,
		FileSizeGB:         mb / 1024,
		FileSizeTB:         mb / 1024 / 1024,
		TotalSeconds:       seconds,
		CategoryID:         cat.ID,
		Codec:              model.CodecRef{ID: codec.ID, Name: codec.Name},
		ResolvedVariant:    variant,
		ResolvedResolution: resolution(sel.ResolutionID),
		ResolvedFrameRate:  frameRate(sel.FrameRateID),
		FallbackFrameRate:  fallback,
	}, OutcomeOK
}

// resolution falls back to a bare option for ids outside the static catalog.
// Only direct Calculate callers get here; the resolver clears unknown ids.
func resolution(id string) model.ResolutionOption {
	if r, ok := options.Resolution(id); ok {
		return r
	}
	return model.ResolutionOption{ID: id, Name: id}
}

func frameRate(id string) model.FrameRateOption {
	if fr, ok := options.FrameRate(id); ok {
		return fr
	}
	return model.FrameRateOption{ID: id, Name: id + " fps"}
}
