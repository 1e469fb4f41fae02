// Package catalog supplies the codec database the resolver works against.
package catalog

import (
	"bytes"
	_ "embed"

	"github.com/rs/zerolog"

	"github.com/timelapsetech/videocalc-db/internal/model"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Provider exposes the loaded categories. Implementations must return data
// that stays immutable for the duration of a resolution pass.
type Provider interface {
	Categories() []model.Category
}

// Static is a Provider over an in-memory slice.
type Static []model.Category

// Categories implements Provider.
func (s Static) Categories() []model.Category { return s }

// Catalog is a validated, read-only Provider.
type Catalog struct {
	categories []model.Category
	issues     []Issue
}

// Option configures New.
type Option func(*loadOptions)

type loadOptions struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used to report data anomalies.
func WithLogger(l zerolog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = l
	}
}

// New wraps categories, dropping duplicate variant names within a codec and
// logging every anomaly once.
func New(categories []model.Category, opts ...Option) *Catalog {
	o := loadOptions{logger: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	issues := Check(categories)
	for _, is := range issues {
		o.logger.Warn().
			Str("category", is.Category).
			Str("codec", is.Codec).
			Str("variant", is.Variant).
			Str("resolution", is.Resolution).
			Str("frame_rate", is.FrameRate).
			Msg(is.Problem)
	}
	return &Catalog{categories: dedupeVariants(categories), issues: issues}
}

// Categories implements Provider.
func (c *Catalog) Categories() []model.Category {
	return c.categories
}

// Issues returns the anomalies found when the catalog was built.
func (c *Catalog) Issues() []Issue {
	return c.issues
}

// Default returns the embedded codec database.
func Default(opts ...Option) (*Catalog, error) {
	cats, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, err
	}
	return New(cats, opts...), nil
}

// LoadFile reads a YAML or JSON codec database from path.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	cats, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return New(cats, opts...), nil
}

// Open returns the catalog at path, or the embedded default when path is empty.
func Open(path string, opts ...Option) (*Catalog, error) {
	if path == "" {
		return Default(opts...)
	}
	return LoadFile(path, opts...)
}

func dedupeVariants(categories []model.Category) []model.Category {
	out := make([]model.Category, 0, len(categories))
	for _, cat := range categories {
		codecs := make([]model.Codec, 0, len(cat.Codecs))
		for _, cd := range cat.Codecs {
			seen := make(map[string]bool, len(cd.Variants))
			variants := make([]model.Variant, 0, len(cd.Variants))
			for _, v := range cd.Variants {
				if seen[v.Name] {
					continue
				}
				seen[v.Name] = true
				variants = append(variants, v)
			}
			cd.Variants = variants
			codecs = append(codecs, cd)
		}
		cat.Codecs = codecs
		out = append(out, cat)
	}
	return out
}
