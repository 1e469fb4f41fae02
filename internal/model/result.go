package model

// CodecRef identifies the codec a result was computed for.
type CodecRef struct {
	ID   string
	Name string
}

// CalculationResult is an immutable snapshot produced for a complete,
// supported selection. It is replaced wholesale, never mutated.
type CalculationResult struct {
	BitrateMbps  float64
	FileSizeMB   float64
	FileSizeGB   float64 // FileSizeMB / 1024
	FileSizeTB   float64 // FileSizeGB / 1024
	TotalSeconds int

	CategoryID         string
	Codec              CodecRef
	ResolvedVariant    Variant
	ResolvedResolution ResolutionOption
	ResolvedFrameRate  FrameRateOption

	// FallbackFrameRate is set when the requested frame rate had no numeric
	// bitrate and the first frame rate of the entry was used instead.
	FallbackFrameRate string
}

// Preset is a named, reusable selection without duration.
type Preset struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Category   string `yaml:"category" json:"category"`
	Codec      string `yaml:"codec" json:"codec"`
	Variant    string `yaml:"variant" json:"variant"`
	Resolution string `yaml:"resolution" json:"resolution"`
	FrameRate  string `yaml:"frameRate" json:"frameRate"`
}

// Selection returns the preset as a selection carrying the given duration.
func (p Preset) Selection(d Duration) Selection {
	return Selection{
		CategoryID:   p.Category,
		CodecID:      p.Codec,
		VariantName:  p.Variant,
		ResolutionID: p.Resolution,
		FrameRateID:  p.FrameRate,
		Duration:     d,
	}
}
