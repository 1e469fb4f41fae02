package model

import "math"

// Category is the top-level grouping of codecs (broadcast, cinema, raw, ...).
type Category struct {
	ID     string
	Name   string
	Codecs []Codec
	// Resolutions optionally overrides the built-in resolution allow-list
	// for this category. Empty means "use the built-in table".
	Resolutions []string
	Description string
}

// Codec belongs to exactly one Category.
type Codec struct {
	ID          string
	Name        string
	Variants    []Variant
	Description string
}

// Variant is a named profile of a codec. Name is its identity within the codec.
type Variant struct {
	Name        string
	Bitrates    BitrateTable
	Description string
}

// EntryKind tags the shape of a per-resolution bitrate entry.
type EntryKind uint8

const (
	// EntryInvalid marks a leaf that was neither a number nor a frame-rate map.
	EntryInvalid EntryKind = iota
	// EntryFlat is a single bitrate used for every frame rate.
	EntryFlat
	// EntryPerFrameRate maps frame-rate ids to bitrates.
	EntryPerFrameRate
)

func (k EntryKind) String() string {
	switch k {
	case EntryFlat:
		return "flat"
	case EntryPerFrameRate:
		return "per-frame-rate"
	default:
		return "invalid"
	}
}

// FrameRateBitrate is one frame-rate leaf of a per-frame-rate entry.
// Numeric is false when the source value was present but not a number.
type FrameRateBitrate struct {
	FrameRateID string
	Mbps        float64
	Numeric     bool
}

// BitrateEntry is the tagged Flat | PerFrameRate value stored per resolution.
// Rates keeps the source key order, which the frame-rate fallback relies on.
type BitrateEntry struct {
	Kind  EntryKind
	Mbps  float64
	Rates []FrameRateBitrate
}

// Flat returns an entry with one bitrate for all frame rates.
func Flat(mbps float64) BitrateEntry {
	return BitrateEntry{Kind: EntryFlat, Mbps: mbps}
}

// PerFrameRate returns an entry keyed by frame rate, in the given order.
func PerFrameRate(rates ...FrameRateBitrate) BitrateEntry {
	return BitrateEntry{Kind: EntryPerFrameRate, Rates: rates}
}

// Rate is shorthand for a numeric FrameRateBitrate.
func Rate(frameRateID string, mbps float64) FrameRateBitrate {
	return FrameRateBitrate{FrameRateID: frameRateID, Mbps: mbps, Numeric: true}
}

// Lookup returns the bitrate for frameRateID. Flat entries answer for any
// frame rate. The boolean is false when the key is absent or non-numeric.
func (e BitrateEntry) Lookup(frameRateID string) (float64, bool) {
	switch e.Kind {
	case EntryFlat:
		return e.Mbps, true
	case EntryPerFrameRate:
		for _, r := range e.Rates {
			if r.FrameRateID == frameRateID {
				return r.Mbps, r.Numeric
			}
		}
	}
	return 0, false
}

// First returns the first frame-rate leaf in source order.
func (e BitrateEntry) First() (FrameRateBitrate, bool) {
	if e.Kind != EntryPerFrameRate || len(e.Rates) == 0 {
		return FrameRateBitrate{}, false
	}
	return e.Rates[0], true
}

// Supports reports whether frameRateID has a positive bitrate.
func (e BitrateEntry) Supports(frameRateID string) bool {
	v, ok := e.Lookup(frameRateID)
	return ok && Positive(v)
}

// HasPositive reports whether any frame rate of the entry is usable.
func (e BitrateEntry) HasPositive() bool {
	switch e.Kind {
	case EntryFlat:
		return Positive(e.Mbps)
	case EntryPerFrameRate:
		for _, r := range e.Rates {
			if r.Numeric && Positive(r.Mbps) {
				return true
			}
		}
	}
	return false
}

// ResolutionBitrate is one row of a BitrateTable.
type ResolutionBitrate struct {
	ResolutionID string
	Entry        BitrateEntry
}

// Row is shorthand for building a ResolutionBitrate.
func Row(resolutionID string, e BitrateEntry) ResolutionBitrate {
	return ResolutionBitrate{ResolutionID: resolutionID, Entry: e}
}

// BitrateTable maps resolution ids to bitrate entries. It is immutable once
// built. A Malformed table came from data that was not a mapping at all and
// offers no resolutions.
type BitrateTable struct {
	Rows      []ResolutionBitrate
	Malformed bool
}

// NewBitrateTable builds a table from rows in the given order.
func NewBitrateTable(rows ...ResolutionBitrate) BitrateTable {
	return BitrateTable{Rows: rows}
}

// Len returns the number of resolution rows.
func (t BitrateTable) Len() int {
	if t.Malformed {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table offers nothing to select.
func (t BitrateTable) Empty() bool {
	return t.Len() == 0
}

// Entry returns the entry for resolutionID.
func (t BitrateTable) Entry(resolutionID string) (BitrateEntry, bool) {
	if t.Malformed {
		return BitrateEntry{}, false
	}
	for _, r := range t.Rows {
		if r.ResolutionID == resolutionID {
			return r.Entry, true
		}
	}
	return BitrateEntry{}, false
}

// ResolutionIDs lists the table's resolution ids in source order.
func (t BitrateTable) ResolutionIDs() []string {
	if t.Malformed {
		return nil
	}
	ids := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		ids = append(ids, r.ResolutionID)
	}
	return ids
}

// Positive reports whether v is a finite number greater than zero.
func Positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	if id == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindCodec returns the codec with the given id within the category.
func (c Category) FindCodec(id string) (Codec, bool) {
	if id == "" {
		return Codec{}, false
	}
	for _, cd := range c.Codecs {
		if cd.ID == id {
			return cd, true
		}
	}
	return Codec{}, false
}

// FindVariant returns the variant with the given name within the codec.
func (c Codec) FindVariant(name string) (Variant, bool) {
	if name == "" {
		return Variant{}, false
	}
	for _, v := range c.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
