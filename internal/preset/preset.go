// Package preset stores named workflow selections.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/util"
)

var (
	// ErrIncomplete is returned when a preset lacks category, codec or variant.
	ErrIncomplete = errors.New("preset needs a category, codec and variant")
	// ErrIndex is returned for an out-of-range preset index.
	ErrIndex = errors.New("preset index out of range")
)

// Defaults returns the built-in presets.
func Defaults() []model.Preset {
	return []model.Preset{
		{ID: "preset-1", Name: "YouTube 1080p", Category: "delivery", Codec: "h264", Variant: "High Profile", Resolution: "1080p", FrameRate: "30"},
		{ID: "preset-2", Name: "Netflix 4K", Category: "broadcast", Codec: "jpeg2000", Variant: "J2K IMF 4K", Resolution: "4K", FrameRate: "24"},
		{ID: "preset-3", Name: "News TV", Category: "camera", Codec: "xdcam", Variant: "XDCAM HD422", Resolution: "1080i", FrameRate: "29.97"},
		{ID: "preset-4", Name: "Episodic TV", Category: "professional", Codec: "dnxhd", Variant: "DNxHD 145", Resolution: "1080p", FrameRate: "23.98"},
	}
}

type file struct {
	Presets []model.Preset `yaml:"presets"`
}

// Store is a YAML-backed preset list. Until something is saved, it holds the
// defaults. Store is not safe for concurrent use.
type Store struct {
	path    string
	presets []model.Preset
}

// NewStore returns a store persisted at path, initialised with the defaults.
func NewStore(path string) *Store {
	return &Store{path: path, presets: Defaults()}
}

// Path returns where the store is persisted.
func (s *Store) Path() string {
	return s.path
}

// Load reads the store file. A missing file leaves the defaults in place.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.presets = Defaults()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read presets: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode presets %s: %w", s.path, err)
	}
	s.presets = f.Presets
	return nil
}

// Save writes the store file atomically.
func (s *Store) Save() error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file{Presets: s.presets}); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := util.WriteFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}

// List returns a copy of the presets in order.
func (s *Store) List() []model.Preset {
	return append([]model.Preset(nil), s.presets...)
}

// Find returns the preset whose ID or name matches key, case-insensitively
// for names.
func (s *Store) Find(key string) (model.Preset, bool) {
	i := s.Index(key)
	if i < 0 {
		return model.Preset{}, false
	}
	return s.presets[i], true
}

// Index returns the position of the preset Find would return, or -1.
func (s *Store) Index(key string) int {
	for i, p := range s.presets {
		if p.ID == key {
			return i
		}
	}
	for i, p := range s.presets {
		if strings.EqualFold(p.Name, key) {
			return i
		}
	}
	return -1
}

// Add appends p, assigning an ID when it has none.
func (s *Store) Add(p model.Preset) (model.Preset, error) {
	if err := validate(p); err != nil {
		return model.Preset{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.presets = append(s.presets, p)
	return p, nil
}

// Update replaces the preset at index i, keeping its ID when p has none.
func (s *Store) Update(i int, p model.Preset) error {
	if i < 0 || i >= len(s.presets) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	if err := validate(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = s.presets[i].ID
	}
	s.presets[i] = p
	return nil
}

// Delete removes the preset at index i.
func (s *Store) Delete(i int) error {
	if i < 0 || i >= len(s.presets) {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	s.presets = append(s.presets[:i], s.presets[i+1:]...)
	return nil
}

// Reset restores the defaults and removes the store file.
func (s *Store) Reset() error {
	s.presets = Defaults()
	if err := util.RemoveIfExists(s.path); err != nil {
		return fmt.Errorf("reset presets: %w", err)
	}
	return nil
}

func validate(p model.Preset) error {
	if p.Category == "" || p.Codec == "" || p.Variant == "" {
		return ErrIncomplete
	}
	return nil
}
