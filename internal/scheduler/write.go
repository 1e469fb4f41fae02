package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/timelapsetech/videocalc-db/internal/model"
)

var (
	// ErrUnknownField is returned by Apply for names outside the selection.
	ErrUnknownField = model.ErrUnknownField
	// ErrInvalidValue is returned for unparsable or out-of-range duration parts.
	ErrInvalidValue = errors.New("invalid selection value")
)

// write is one queued mutation. Exactly one of the groups is used.
type write struct {
	field model.Field
	value string

	duration *model.Duration
	seed     *model.Selection
}

func newWrite(f model.Field, value string) (write, error) {
	switch f {
	case model.FieldCategory, model.FieldCodec, model.FieldVariant, model.FieldResolution, model.FieldFrameRate:
		return write{field: f, value: value}, nil
	case model.FieldHours, model.FieldMinutes, model.FieldSeconds:
		v := strings.TrimSpace(value)
		if v == "" {
			return write{field: f, value: "0"}, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || (f == model.FieldHours && n > model.MaxHours) {
			return write{}, fmt.Errorf("%w: %s=%q", ErrInvalidValue, f, value)
		}
		return write{field: f, value: strconv.Itoa(n)}, nil
	}
	return write{}, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
}

func checkHours(d model.Duration) error {
	if d.Hours > model.MaxHours {
		return fmt.Errorf("%w: hours=%d exceeds %d", ErrInvalidValue, d.Hours, model.MaxHours)
	}
	return nil
}

func (w write) apply(sel model.Selection) model.Selection {
	switch {
	case w.seed != nil:
		next := *w.seed
		next.Duration = next.Duration.Normalize()
		return next
	case w.duration != nil:
		sel.Duration = w.duration.Normalize()
		return sel
	}
	switch w.field {
	case model.FieldHours, model.FieldMinutes, model.FieldSeconds:
		n, _ := strconv.Atoi(w.value)
		d := sel.Duration
		switch w.field {
		case model.FieldHours:
			d.Hours = n
		case model.FieldMinutes:
			d.Minutes = n
		default:
			d.Seconds = n
		}
		sel.Duration = d.Normalize()
		return sel
	}
	return sel.With(w.field, w.value)
}
