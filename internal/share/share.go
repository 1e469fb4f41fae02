// Package share turns selections into shareable link parameters and back.
package share

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

// Query keys.
const (
	KeyCategory   = "category"
	KeyCodec      = "codec"
	KeyVariant    = "variant"
	KeyResolution = "resolution"
	KeyFrameRate  = "framerate"
	KeyHours      = "hours"
	KeyMinutes    = "minutes"
	KeySeconds    = "seconds"
)

// Link is a decoded, not yet validated set of link parameters. Absent
// parameters hold their session defaults.
type Link struct {
	Category   string
	Codec      string
	Variant    string
	Resolution string
	FrameRate  string
	Duration   model.Duration
}

// Encode returns the query parameters for sel. Empty fields and values equal
// to the session defaults are omitted.
func Encode(sel model.Selection) url.Values {
	v := url.Values{}
	set := func(key, val, def string) {
		if val != "" && val != def {
			v.Set(key, val)
		}
	}
	set(KeyCategory, sel.CategoryID, "")
	set(KeyCodec, sel.CodecID, "")
	set(KeyVariant, sel.VariantName, "")
	set(KeyResolution, sel.ResolutionID, model.DefaultResolutionID)
	set(KeyFrameRate, sel.FrameRateID, model.DefaultFrameRateID)

	def := model.DefaultDuration()
	d := sel.Duration
	set(KeyHours, strconv.Itoa(d.Hours), strconv.Itoa(def.Hours))
	set(KeyMinutes, strconv.Itoa(d.Minutes), strconv.Itoa(def.Minutes))
	set(KeySeconds, strconv.Itoa(d.Seconds), strconv.Itoa(def.Seconds))
	return v
}

// URL appends the encoded selection to base. A base without a scheme is
// treated as https.
func URL(base string, sel model.Selection) (string, error) {
	u, err := parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = Encode(sel).Encode()
	return u.String(), nil
}

// Decode reads link parameters from a full URL, a "?query" string or a bare
// query. Non-numeric duration parts are treated as absent.
func Decode(raw string) (Link, error) {
	raw = strings.TrimSpace(raw)
	var query string
	switch {
	case strings.HasPrefix(raw, "?"):
		query = raw[1:]
	case strings.Contains(raw, "://") || (strings.Contains(raw, "/") && strings.Contains(raw, "?")):
		u, err := parse(raw)
		if err != nil {
			return Link{}, err
		}
		query = u.RawQuery
	default:
		query = raw
	}
	v, err := url.ParseQuery(query)
	if err != nil {
		return Link{}, fmt.Errorf("invalid link query %q: %w", raw, err)
	}

	def := model.DefaultDuration()
	return Link{
		Category:   v.Get(KeyCategory),
		Codec:      v.Get(KeyCodec),
		Variant:    v.Get(KeyVariant),
		Resolution: v.Get(KeyResolution),
		FrameRate:  v.Get(KeyFrameRate),
		Duration: model.Duration{
			Hours:   intOr(v.Get(KeyHours), def.Hours),
			Minutes: intOr(v.Get(KeyMinutes), def.Minutes),
			Seconds: intOr(v.Get(KeySeconds), def.Seconds),
		},
	}, nil
}

// Validate checks the link top-down against the catalog. An unknown category
// drops codec and variant, an unknown codec drops the variant, and unknown
// resolution or frame-rate ids fall back to the defaults.
func Validate(l Link, provider catalog.Provider) model.Selection {
	sel := model.DefaultSelection()
	sel.Duration = l.Duration.Normalize()

	if cat, ok := model.FindCategory(provider.Categories(), l.Category); ok {
		sel.CategoryID = cat.ID
		if cd, ok := cat.FindCodec(l.Codec); ok {
			sel.CodecID = cd.ID
			if v, ok := cd.FindVariant(l.Variant); ok {
				sel.VariantName = v.Name
			}
		}
	}
	if _, ok := options.Resolution(l.Resolution); ok {
		sel.ResolutionID = l.Resolution
	}
	if _, ok := options.FrameRate(l.FrameRate); ok {
		sel.FrameRateID = l.FrameRate
	}
	return sel
}

func parse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("https://" + raw); e2 == nil {
			u = u2
		}
	}
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", raw)
	}
	return u, nil
}

func intOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
