package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownField is returned for field names outside the selection contract.
var ErrUnknownField = errors.New("unknown selection field")

// Field names one mutable part of a Selection.
type Field string

const (
	FieldCategory   Field = "category"
	FieldCodec      Field = "codec"
	FieldVariant    Field = "variant"
	FieldResolution Field = "resolution"
	FieldFrameRate  Field = "framerate"
	FieldHours      Field = "hours"
	FieldMinutes    Field = "minutes"
	FieldSeconds    Field = "seconds"
)

// Levels lists the cascading selection levels, top-down.
var Levels = []Field{FieldCategory, FieldCodec, FieldVariant, FieldResolution, FieldFrameRate}

// ParseField maps a user-facing name to a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldCategory, FieldCodec, FieldVariant, FieldResolution, FieldFrameRate,
		FieldHours, FieldMinutes, FieldSeconds:
		return f, nil
	case "frame-rate", "frame_rate", "fps":
		return FieldFrameRate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// IsLevel reports whether f is one of the cascading levels.
func (f Field) IsLevel() bool {
	for _, l := range Levels {
		if l == f {
			return true
		}
	}
	return false
}

// Default resolution and frame rate for a fresh session.
const (
	DefaultResolutionID = "1080p"
	DefaultFrameRateID  = "30"
)

// Selection is the mutable session state.
type Selection struct {
	CategoryID   string
	CodecID      string
	VariantName  string
	ResolutionID string
	FrameRateID  string
	Duration     Duration
}

// DefaultSelection returns the state a new session starts from.
func DefaultSelection() Selection {
	return Selection{
		ResolutionID: DefaultResolutionID,
		FrameRateID:  DefaultFrameRateID,
		Duration:     DefaultDuration(),
	}
}

// Get returns the value of a level field.
func (s Selection) Get(f Field) string {
	switch f {
	case FieldCategory:
		return s.CategoryID
	case FieldCodec:
		return s.CodecID
	case FieldVariant:
		return s.VariantName
	case FieldResolution:
		return s.ResolutionID
	case FieldFrameRate:
		return s.FrameRateID
	}
	return ""
}

// With returns a copy of s with level f set to v.
func (s Selection) With(f Field, v string) Selection {
	switch f {
	case FieldCategory:
		s.CategoryID = v
	case FieldCodec:
		s.CodecID = v
	case FieldVariant:
		s.VariantName = v
	case FieldResolution:
		s.ResolutionID = v
	case FieldFrameRate:
		s.FrameRateID = v
	}
	return s
}

// Missing lists the empty level fields, top-down.
func (s Selection) Missing() []Field {
	var out []Field
	for _, f := range Levels {
		if s.Get(f) == "" {
			out = append(out, f)
		}
	}
	return out
}

// Complete reports whether every level is filled and the duration is positive.
func (s Selection) Complete() bool {
	return len(s.Missing()) == 0 && s.Duration.TotalSeconds() > 0
}

// Duration is a clip length split into clock fields.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
}

// MaxHours bounds the hours field so second counts stay well inside int.
const MaxHours = 100000

// DefaultDuration is one hour.
func DefaultDuration() Duration {
	return Duration{Hours: 1}
}

// TotalSeconds returns hours*3600 + minutes*60 + seconds.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Normalize clamps hours to [0,MaxHours] and minutes/seconds to [0,59].
func (d Duration) Normalize() Duration {
	return Duration{
		Hours:   clampInt(d.Hours, 0, MaxHours),
		Minutes: clampInt(d.Minutes, 0, 59),
		Seconds: clampInt(d.Seconds, 0, 59),
	}
}

// String renders the duration as HH:MM:SS.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

// DurationFromSeconds splits a second count into clock fields.
func DurationFromSeconds(total int) Duration {
	if total < 0 {
		total = 0
	}
	return Duration{Hours: total / 3600, Minutes: (total % 3600) / 60, Seconds: total % 60}
}

// ParseDuration accepts "HH:MM:SS", "MM:SS", a bare second count, or a Go
// duration string such as "1h30m".
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Duration{}, errors.New("empty duration")
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return Duration{}, fmt.Errorf("invalid duration %q: want HH:MM:SS", s)
		}
		nums := make([]int, 0, 3)
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 {
				return Duration{}, fmt.Errorf("invalid duration %q: want HH:MM:SS", s)
			}
			nums = append(nums, n)
		}
		for len(nums) < 3 {
			nums = append([]int{0}, nums...)
		}
		d := Duration{Hours: nums[0], Minutes: nums[1], Seconds: nums[2]}
		if d.Minutes > 59 || d.Seconds > 59 {
			return Duration{}, fmt.Errorf("invalid duration %q: minutes and seconds must be 0-59", s)
		}
		return bounded(s, d)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Duration{}, fmt.Errorf("invalid duration %q: negative", s)
		}
		return bounded(s, DurationFromSeconds(n))
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if td < 0 {
		return Duration{}, fmt.Errorf("invalid duration %q: negative", s)
	}
	return bounded(s, DurationFromSeconds(int(td/time.Second)))
}

func bounded(s string, d Duration) (Duration, error) {
	if d.Hours > MaxHours {
		return Duration{}, fmt.Errorf("invalid duration %q: more than %d hours", s, MaxHours)
	}
	return d, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
