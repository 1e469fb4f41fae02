package model

// TechnicalClass tags a resolution with its broadcast family.
type TechnicalClass string

const (
	ClassSD     TechnicalClass = "SD"
	ClassHD     TechnicalClass = "HD"
	ClassUHD    TechnicalClass = "UHD"
	ClassCinema TechnicalClass = "Cinema"
)

// Scan is the raster scan type of a resolution.
type Scan string

const (
	ScanProgressive Scan = "progressive"
	ScanInterlaced  Scan = "interlaced"
)

// ResolutionOption is one entry of the static resolution catalog.
type ResolutionOption struct {
	ID     string
	Name   string
	Width  int
	Height int
	Class  TechnicalClass
	Scan   Scan
	DCI    bool
}

// FrameRateClass tags a frame rate with its usage family.
type FrameRateClass string

const (
	RateFilmOnTV  FrameRateClass = "Film on TV"
	RateCinema    FrameRateClass = "Cinema"
	RateBroadcast FrameRateClass = "Broadcast"
	RateStandard  FrameRateClass = "Standard"
	RateHFR       FrameRateClass = "HFR"
)

// FrameRateOption is one entry of the static frame-rate catalog.
type FrameRateOption struct {
	ID    string
	Name  string
	Value float64
	Class FrameRateClass
}

// Option is the level-agnostic shape handed to selection widgets.
type Option struct {
	ID    string
	Name  string
	Class string
}

// OptionIDs extracts ids in order.
func OptionIDs(opts []Option) []string {
	ids := make([]string, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	return ids
}

// ContainsOption reports whether id is among opts.
func ContainsOption(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
