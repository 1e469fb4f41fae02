package resolver

import (
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

const (
	msgResolutionUnsupported = "This resolution is not supported by the selected codec variant"
	msgFrameRateUnsupported  = "This frame rate is not supported for the selected resolution and codec"
)

// Explain returns a user-facing message when the variant, resolution and
// frame rate are all set but the table has no bitrate for them. It is empty
// otherwise.
func (r *Resolver) Explain(sel model.Selection) string {
	if sel.VariantName == "" || sel.ResolutionID == "" || sel.FrameRateID == "" {
		return ""
	}
	sc := r.scope(sel)
	if !sc.hasVariant {
		return ""
	}
	entry, ok := sc.variant.Bitrates.Entry(sel.ResolutionID)
	if !ok || !entry.HasPositive() {
		return msgResolutionUnsupported
	}
	if !entry.Supports(sel.FrameRateID) {
		return msgFrameRateUnsupported
	}
	return ""
}

// Hint describes the frame-rate rule for the selected resolution.
func (r *Resolver) Hint(sel model.Selection) string {
	ro, ok := options.Resolution(sel.ResolutionID)
	if !ok {
		return ""
	}
	return options.Hint(ro)
}
