// Package options holds the static resolution and frame-rate catalogs and the
// technical rules that restrict which of them a selection may use.
package options

import "github.com/timelapsetech/videocalc-db/internal/model"

var resolutions = []model.ResolutionOption{
	// SD
	{ID: "NTSC_DV", Name: "NTSC DV (720×480)", Width: 720, Height: 480, Class: model.ClassSD, Scan: model.ScanProgressive},
	{ID: "NTSC_D1", Name: "NTSC D1 (720×486)", Width: 720, Height: 486, Class: model.ClassSD, Scan: model.ScanProgressive},
	{ID: "PAL", Name: "PAL (720×576)", Width: 720, Height: 576, Class: model.ClassSD, Scan: model.ScanProgressive},

	// HD
	{ID: "720p", Name: "720p HD (1280×720)", Width: 1280, Height: 720, Class: model.ClassHD, Scan: model.ScanProgressive},
	{ID: "1080i", Name: "1080i (1920×1080 interlaced)", Width: 1920, Height: 1080, Class: model.ClassHD, Scan: model.ScanInterlaced},
	{ID: "1080p", Name: "1080p FHD (1920×1080)", Width: 1920, Height: 1080, Class: model.ClassHD, Scan: model.ScanProgressive},
	{ID: "1440x1080", Name: "1440×1080 (HDV)", Width: 1440, Height: 1080, Class: model.ClassHD, Scan: model.ScanProgressive},

	// UHD
	{ID: "4K", Name: "4K UHD (3840×2160)", Width: 3840, Height: 2160, Class: model.ClassUHD, Scan: model.ScanProgressive},
	{ID: "8K", Name: "8K UHD (7680×4320)", Width: 7680, Height: 4320, Class: model.ClassUHD, Scan: model.ScanProgressive},

	// Cinema
	{ID: "2K DCI", Name: "2K DCI (2048×1080)", Width: 2048, Height: 1080, Class: model.ClassCinema, Scan: model.ScanProgressive, DCI: true},
	{ID: "4K DCI", Name: "4K DCI (4096×2160)", Width: 4096, Height: 2160, Class: model.ClassCinema, Scan: model.ScanProgressive, DCI: true},
	{ID: "6K", Name: "6K (6144×3240)", Width: 6144, Height: 3240, Class: model.ClassCinema, Scan: model.ScanProgressive},
	{ID: "8K DCI", Name: "8K DCI (8192×4320)", Width: 8192, Height: 4320, Class: model.ClassCinema, Scan: model.ScanProgressive, DCI: true},
}

var frameRates = []model.FrameRateOption{
	{ID: "23.98", Name: "23.98 fps (Film on TV)", Value: 23.976, Class: model.RateFilmOnTV},
	{ID: "24", Name: "24 fps (True Cinema)", Value: 24, Class: model.RateCinema},
	{ID: "25", Name: "25 fps (PAL/European)", Value: 25, Class: model.RateBroadcast},
	{ID: "29.97", Name: "29.97 fps (NTSC)", Value: 29.97, Class: model.RateBroadcast},
	{ID: "30", Name: "30 fps", Value: 30, Class: model.RateStandard},
	{ID: "50", Name: "50 fps (PAL Progressive)", Value: 50, Class: model.RateBroadcast},
	{ID: "59.94", Name: "59.94 fps (NTSC Progressive)", Value: 59.94, Class: model.RateBroadcast},
	{ID: "60", Name: "60 fps", Value: 60, Class: model.RateStandard},
	{ID: "120", Name: "120 fps (High Frame Rate)", Value: 120, Class: model.RateHFR},
	{ID: "240", Name: "240 fps (Super Slow Motion)", Value: 240, Class: model.RateHFR},
}

// Resolutions returns the resolution catalog in display order.
func Resolutions() []model.ResolutionOption {
	out := make([]model.ResolutionOption, len(resolutions))
	copy(out, resolutions)
	return out
}

// FrameRates returns the frame-rate catalog in display order.
func FrameRates() []model.FrameRateOption {
	out := make([]model.FrameRateOption, len(frameRates))
	copy(out, frameRates)
	return out
}

// Resolution looks up a catalog resolution.
func Resolution(id string) (model.ResolutionOption, bool) {
	for _, r := range resolutions {
		if r.ID == id {
			return r, true
		}
	}
	return model.ResolutionOption{}, false
}

// FrameRate looks up a catalog frame rate.
func FrameRate(id string) (model.FrameRateOption, bool) {
	for _, fr := range frameRates {
		if fr.ID == id {
			return fr, true
		}
	}
	return model.FrameRateOption{}, false
}

// ResolutionAsOption converts for widget display.
func ResolutionAsOption(r model.ResolutionOption) model.Option {
	return model.Option{ID: r.ID, Name: r.Name, Class: string(r.Class)}
}

// FrameRateAsOption converts for widget display.
func FrameRateAsOption(fr model.FrameRateOption) model.Option {
	return model.Option{ID: fr.ID, Name: fr.Name, Class: string(fr.Class)}
}
