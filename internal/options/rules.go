package options

import "github.com/timelapsetech/videocalc-db/internal/model"

var (
	broadcastSet = []string{"NTSC_DV", "NTSC_D1", "PAL", "720p", "1080i", "1080p", "4K"}
	dciSet       = []string{"2K DCI", "4K DCI", "8K DCI"}
)

// categoryResolutions is the built-in resolution allow-list per category id.
// Categories not listed here allow the whole catalog.
var categoryResolutions = map[string][]string{
	"camera":       broadcastSet,
	"broadcast":    broadcastSet,
	"professional": append(append([]string{}, broadcastSet...), "2K DCI"),
	"cinema":       dciSet,
}

// AllowedResolutions returns the technically valid resolutions for a
// category, in catalog order. An explicit list on the category wins over the
// built-in table.
func AllowedResolutions(c model.Category) []model.ResolutionOption {
	allow := c.Resolutions
	if len(allow) == 0 {
		allow = categoryResolutions[c.ID]
	}
	if len(allow) == 0 {
		return Resolutions()
	}
	out := make([]model.ResolutionOption, 0, len(allow))
	for _, r := range resolutions {
		if contains(allow, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Policy groups resolutions that share frame-rate rules.
type Policy string

const (
	PolicyInterlaced  Policy = "interlaced"
	PolicyProgressive Policy = "progressive"
	PolicyCinema      Policy = "cinema"
	PolicyStandard    Policy = "standard"
)

var policyRates = map[Policy][]string{
	PolicyInterlaced:  {"25", "29.97", "30"},
	PolicyProgressive: {"23.98", "24", "25", "29.97", "30", "50", "59.94", "60"},
	PolicyCinema:      {"23.98", "24", "25", "29.97", "30"},
	PolicyStandard:    {"23.98", "24", "25", "29.97", "30"},
}

var policyPreference = map[Policy][]string{
	PolicyInterlaced:  {"29.97", "30"},
	PolicyProgressive: {"30", "29.97"},
	PolicyCinema:      {"24"},
}

var policyHints = map[Policy]string{
	PolicyInterlaced:  "Interlaced content typically uses 25, 29.97, or 30 fps",
	PolicyProgressive: "Progressive HD and UHD support 23.98-60 fps",
	PolicyCinema:      "Cinema formats support 23.98-30 fps",
	PolicyStandard:    "Standard broadcast frame rates",
}

// PolicyFor classifies a resolution for frame-rate filtering.
func PolicyFor(r model.ResolutionOption) Policy {
	switch {
	case r.Scan == model.ScanInterlaced:
		return PolicyInterlaced
	case r.DCI || r.Class == model.ClassCinema:
		return PolicyCinema
	case r.Class == model.ClassHD || r.Class == model.ClassUHD:
		return PolicyProgressive
	default:
		return PolicyStandard
	}
}

// AllowedFrameRates returns the technically valid frame rates for a
// resolution, in catalog order.
func AllowedFrameRates(r model.ResolutionOption) []model.FrameRateOption {
	allow := policyRates[PolicyFor(r)]
	out := make([]model.FrameRateOption, 0, len(allow))
	for _, fr := range frameRates {
		if contains(allow, fr.ID) {
			out = append(out, fr)
		}
	}
	return out
}

// PreferredFrameRate picks from valid using the resolution's preference
// order, falling back to the first valid frame rate.
func PreferredFrameRate(r model.ResolutionOption, valid []model.FrameRateOption) (model.FrameRateOption, bool) {
	if len(valid) == 0 {
		return model.FrameRateOption{}, false
	}
	for _, want := range policyPreference[PolicyFor(r)] {
		for _, fr := range valid {
			if fr.ID == want {
				return fr, true
			}
		}
	}
	return valid[0], true
}

// Hint explains the frame-rate constraint for a resolution.
func Hint(r model.ResolutionOption) string {
	return policyHints[PolicyFor(r)]
}

func contains(ss []string, q string) bool {
	for _, s := range ss {
		if s == q {
			return true
		}
	}
	return false
}
