package model

import (
	"errors"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Duration
		wantErr bool
	}{
		{name: "clock", in: "01:30:15", want: Duration{Hours: 1, Minutes: 30, Seconds: 15}},
		{name: "minutes and seconds", in: "10:00", want: Duration{Minutes: 10}},
		{name: "long hours", in: "100:00:00", want: Duration{Hours: 100}},
		{name: "bare seconds", in: "3661", want: Duration{Hours: 1, Minutes: 1, Seconds: 1}},
		{name: "go duration", in: "1h30m", want: Duration{Hours: 1, Minutes: 30}},
		{name: "minutes out of range", in: "00:60:00", wantErr: true},
		{name: "hours out of range", in: "100001:00:00", wantErr: true},
		{name: "seconds beyond max hours", in: "360003600", wantErr: true},
		{name: "max hours", in: "100000:00:00", want: Duration{Hours: MaxHours}},
		{name: "negative", in: "-5", wantErr: true},
		{name: "too many parts", in: "1:2:3:4", wantErr: true},
		{name: "garbage", in: "soon", wantErr: true},
		{name: "empty", in: " ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParseDuration(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	d := Duration{Hours: 2, Minutes: 3, Seconds: 4}
	if got := d.TotalSeconds(); got != 7384 {
		t.Errorf("TotalSeconds = %d", got)
	}
	if got := d.String(); got != "02:03:04" {
		t.Errorf("String = %q", got)
	}
	if got := (Duration{Hours: -1, Minutes: 99, Seconds: -3}).Normalize(); got != (Duration{Minutes: 59}) {
		t.Errorf("Normalize = %+v", got)
	}
	if got := (Duration{Hours: MaxHours + 5}).Normalize(); got.Hours != MaxHours {
		t.Errorf("Normalize hours = %d, want %d", got.Hours, MaxHours)
	}
	if got := DurationFromSeconds(-10); got != (Duration{}) {
		t.Errorf("DurationFromSeconds(-10) = %+v", got)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{"category", FieldCategory},
		{" Codec ", FieldCodec},
		{"frame-rate", FieldFrameRate},
		{"fps", FieldFrameRate},
		{"minutes", FieldMinutes},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseField(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseField("bitrate"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField(bitrate) err = %v", err)
	}
}

func TestSelection(t *testing.T) {
	s := DefaultSelection()
	if s.Complete() {
		t.Fatal("default selection should be incomplete")
	}
	missing := s.Missing()
	if len(missing) != 3 || missing[0] != FieldCategory || missing[2] != FieldVariant {
		t.Fatalf("Missing = %v", missing)
	}
	for _, f := range Levels {
		s = s.With(f, "x")
		if s.Get(f) != "x" {
			t.Fatalf("Get(%s) after With", f)
		}
	}
	if !s.Complete() {
		t.Fatal("filled selection should be complete")
	}
	s.Duration = Duration{}
	if s.Complete() {
		t.Fatal("zero duration should be incomplete")
	}
	if FieldHours.IsLevel() || !FieldVariant.IsLevel() {
		t.Fatal("IsLevel")
	}
}
