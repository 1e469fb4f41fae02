package resolver

import (
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

// scope is the catalog slice reachable from a selection.
type scope struct {
	category    model.Category
	hasCategory bool
	codec       model.Codec
	hasCodec    bool
	variant     model.Variant
	hasVariant  bool
}

func (r *Resolver) scope(sel model.Selection) scope {
	var sc scope
	sc.category, sc.hasCategory = model.FindCategory(r.provider.Categories(), sel.CategoryID)
	if !sc.hasCategory {
		return sc
	}
	sc.codec, sc.hasCodec = sc.category.FindCodec(sel.CodecID)
	if !sc.hasCodec {
		return sc
	}
	sc.variant, sc.hasVariant = sc.codec.FindVariant(sel.VariantName)
	return sc
}

// Domain returns the options a widget for level may offer given sel.
// Every list is a subset of the catalog-wide list for that level.
func (r *Resolver) Domain(sel model.Selection, level model.Field) []model.Option {
	sc := r.scope(sel)
	switch level {
	case model.FieldCategory:
		cats := r.provider.Categories()
		out := make([]model.Option, 0, len(cats))
		for _, c := range cats {
			out = append(out, model.Option{ID: c.ID, Name: c.Name})
		}
		return out
	case model.FieldCodec:
		if !sc.hasCategory {
			return nil
		}
		out := make([]model.Option, 0, len(sc.category.Codecs))
		for _, cd := range sc.category.Codecs {
			out = append(out, model.Option{ID: cd.ID, Name: cd.Name, Class: sc.category.ID})
		}
		return out
	case model.FieldVariant:
		if !sc.hasCodec {
			return nil
		}
		out := make([]model.Option, 0, len(sc.codec.Variants))
		for _, v := range sc.codec.Variants {
			out = append(out, model.Option{ID: v.Name, Name: v.Name, Class: sc.codec.ID})
		}
		return out
	case model.FieldResolution:
		res := r.resolutionDomain(sel, sc)
		out := make([]model.Option, 0, len(res))
		for _, ro := range res {
			out = append(out, options.ResolutionAsOption(ro))
		}
		return out
	case model.FieldFrameRate:
		frs := r.frameRateDomain(sel, sc)
		out := make([]model.Option, 0, len(frs))
		for _, fr := range frs {
			out = append(out, options.FrameRateAsOption(fr))
		}
		return out
	}
	return nil
}

// resolutionDomain intersects the category allow-list with the resolutions
// that carry a positive bitrate in the variant's table. Without a variant
// the whole catalog is offered.
func (r *Resolver) resolutionDomain(sel model.Selection, sc scope) []model.ResolutionOption {
	if sel.VariantName == "" {
		return options.Resolutions()
	}
	if !sc.hasVariant || sc.variant.Bitrates.Empty() {
		return nil
	}
	allowed := options.AllowedResolutions(sc.category)
	out := make([]model.ResolutionOption, 0, len(allowed))
	for _, ro := range allowed {
		entry, ok := sc.variant.Bitrates.Entry(ro.ID)
		if ok && entry.HasPositive() {
			out = append(out, ro)
		}
	}
	return out
}

// frameRateDomain intersects the resolution's frame-rate policy with the
// frame rates that carry a positive bitrate at that resolution.
func (r *Resolver) frameRateDomain(sel model.Selection, sc scope) []model.FrameRateOption {
	if sel.VariantName == "" {
		return options.FrameRates()
	}
	if !sc.hasVariant || sel.ResolutionID == "" {
		return nil
	}
	ro, ok := options.Resolution(sel.ResolutionID)
	if !ok {
		return nil
	}
	entry, ok := sc.variant.Bitrates.Entry(sel.ResolutionID)
	if !ok {
		return nil
	}
	allowed := options.AllowedFrameRates(ro)
	out := make([]model.FrameRateOption, 0, len(allowed))
	for _, fr := range allowed {
		if entry.Supports(fr.ID) {
			out = append(out, fr)
		}
	}
	return out
}
