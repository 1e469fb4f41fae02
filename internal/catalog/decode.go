package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/timelapsetech/videocalc-db/internal/model"
)

// ErrNoCategories is returned when a database file holds no categories.
var ErrNoCategories = errors.New("codec database has no categories")

type fileDatabase struct {
	Categories []fileCategory `yaml:"categories"`
}

type fileCategory struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Resolutions []string    `yaml:"resolutions"`
	Codecs      []fileCodec `yaml:"codecs"`
}

type fileCodec struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Variants    []fileVariant `yaml:"variants"`
}

// fileVariant keeps bitrates as a raw node so key order survives decoding
// and non-numeric leaves can be tagged instead of failing the whole file.
type fileVariant struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Bitrates    yaml.Node `yaml:"bitrates"`
}

func decodeFile(path string) ([]model.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codec database: %w", err)
	}
	defer f.Close()
	cats, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cats, nil
}

// Decode reads a codec database. The document is either a mapping with a
// "categories" list or a bare list of categories; JSON input works as well.
func Decode(r io.Reader) ([]model.Category, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoCategories
		}
		return nil, fmt.Errorf("decode codec database: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	var raw []fileCategory
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	case yaml.MappingNode:
		var db fileDatabase
		if err := doc.Decode(&db); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
		raw = db.Categories
	default:
		return nil, fmt.Errorf("decode codec database: unexpected top-level %s", kindName(doc.Kind))
	}
	if len(raw) == 0 {
		return nil, ErrNoCategories
	}

	out := make([]model.Category, 0, len(raw))
	for _, rc := range raw {
		cat := model.Category{
			ID:          rc.ID,
			Name:        rc.Name,
			Description: rc.Description,
			Resolutions: rc.Resolutions,
		}
		for _, rcd := range rc.Codecs {
			cd := model.Codec{ID: rcd.ID, Name: rcd.Name, Description: rcd.Description}
			for _, rv := range rcd.Variants {
				cd.Variants = append(cd.Variants, model.Variant{
					Name:        rv.Name,
					Description: rv.Description,
					Bitrates:    decodeTable(&rv.Bitrates),
				})
			}
			cat.Codecs = append(cat.Codecs, cd)
		}
		out = append(out, cat)
	}
	return out, nil
}

// decodeTable never fails: shape anomalies become a Malformed table or
// EntryInvalid rows, which the resolver treats as unsupported.
func decodeTable(n *yaml.Node) model.BitrateTable {
	n = deref(n)
	if n.Kind == 0 || isNull(n) {
		return model.BitrateTable{}
	}
	if n.Kind != yaml.MappingNode {
		return model.BitrateTable{Malformed: true}
	}
	rows := make([]model.ResolutionBitrate, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], deref(n.Content[i+1])
		rows = append(rows, model.Row(key.Value, decodeEntry(val)))
	}
	return model.NewBitrateTable(rows...)
}

func decodeEntry(n *yaml.Node) model.BitrateEntry {
	switch n.Kind {
	case yaml.ScalarNode:
		if v, ok := number(n); ok {
			return model.Flat(v)
		}
	case yaml.MappingNode:
		rates := make([]model.FrameRateBitrate, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], deref(n.Content[i+1])
			v, ok := number(val)
			rates = append(rates, model.FrameRateBitrate{FrameRateID: key.Value, Mbps: v, Numeric: ok})
		}
		return model.PerFrameRate(rates...)
	}
	return model.BitrateEntry{Kind: model.EntryInvalid}
}

// number accepts only YAML/JSON numbers; quoted strings are not numbers.
func number(n *yaml.Node) (float64, bool) {
	if n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n == nil {
		return &yaml.Node{}
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case 0:
		return "empty document"
	default:
		return "node kind " + strconv.Itoa(int(k))
	}
}
