package resolver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/catalog/catalogtest"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

// candidates collects every id the catalog knows about per level, plus
// values that exist nowhere.
func candidates(p catalog.Provider) map[model.Field][]string {
	out := map[model.Field][]string{
		model.FieldCategory:   {"", "ghost"},
		model.FieldCodec:      {"", "ghost"},
		model.FieldVariant:    {"", "ghost"},
		model.FieldResolution: {"", "9K"},
		model.FieldFrameRate:  {"", "1000"},
	}
	for _, c := range p.Categories() {
		out[model.FieldCategory] = append(out[model.FieldCategory], c.ID)
		for _, cd := range c.Codecs {
			out[model.FieldCodec] = append(out[model.FieldCodec], cd.ID)
			for _, v := range cd.Variants {
				out[model.FieldVariant] = append(out[model.FieldVariant], v.Name)
			}
		}
	}
	for _, r := range options.Resolutions() {
		out[model.FieldResolution] = append(out[model.FieldResolution], r.ID)
	}
	for _, fr := range options.FrameRates() {
		out[model.FieldFrameRate] = append(out[model.FieldFrameRate], fr.ID)
	}
	return out
}

func assertReachable(t *testing.T, p catalog.Provider, s model.Selection) {
	t.Helper()
	cat, ok := model.FindCategory(p.Categories(), s.CategoryID)
	if s.CategoryID != "" {
		require.True(t, ok, "category %q unreachable", s.CategoryID)
	}
	if s.CodecID == "" {
		require.Empty(t, s.VariantName)
		return
	}
	require.NotEmpty(t, s.CategoryID)
	cd, ok := cat.FindCodec(s.CodecID)
	require.True(t, ok, "codec %q not in %q", s.CodecID, s.CategoryID)
	if s.VariantName != "" {
		_, ok = cd.FindVariant(s.VariantName)
		require.True(t, ok, "variant %q not in %q", s.VariantName, s.CodecID)
	}
}

func TestRandomEditsConverge(t *testing.T) {
	sources := map[string]catalog.Provider{"fixture": catalogtest.Fixture()}
	if def, err := catalog.Default(); err == nil {
		sources["default"] = def
	} else {
		t.Fatalf("default catalog: %v", err)
	}

	for name, p := range sources {
		t.Run(name, func(t *testing.T) {
			r := New(p)
			cands := candidates(p)
			rng := rand.New(rand.NewSource(42))
			s := model.DefaultSelection()

			for i := 0; i < 2000; i++ {
				f := model.Levels[rng.Intn(len(model.Levels))]
				vals := cands[f]
				s = s.With(f, vals[rng.Intn(len(vals))])

				settled, changes, err := r.Settle(s)
				require.NoError(t, err, "edit %d: %+v", i, s)
				// every rule touches a field below the ones it reads, so a
				// settle never needs more than one pass per rule.
				assert.LessOrEqual(t, len(changes), 2*len(model.Levels)+2)
				require.True(t, r.Settled(settled))
				assertReachable(t, p, settled)

				s = settled
			}
		})
	}
}

func TestDomainsAreSubsets(t *testing.T) {
	p := catalogtest.Fixture()
	r := New(p)
	cands := candidates(p)
	rng := rand.New(rand.NewSource(7))

	all := map[model.Field][]string{
		model.FieldCategory:   cands[model.FieldCategory],
		model.FieldCodec:      cands[model.FieldCodec],
		model.FieldVariant:    cands[model.FieldVariant],
		model.FieldResolution: cands[model.FieldResolution],
		model.FieldFrameRate:  cands[model.FieldFrameRate],
	}
	for i := 0; i < 500; i++ {
		var s model.Selection
		for _, f := range model.Levels {
			vals := cands[f]
			s = s.With(f, vals[rng.Intn(len(vals))])
		}
		for _, f := range model.Levels {
			for _, id := range model.OptionIDs(r.Domain(s, f)) {
				assert.Contains(t, all[f], id, "level %s", f)
			}
		}
	}
}

func TestNarrowingShrinksDomains(t *testing.T) {
	r := New(catalogtest.Fixture())

	// Each step pins one more upstream field.
	chain := []model.Selection{
		sel("", "", "", "", ""),
		sel("broadcast", "", "", "", ""),
		sel("broadcast", "multi", "", "", ""),
		sel("broadcast", "multi", "A", "", ""),
		sel("broadcast", "multi", "A", "1080i", ""),
	}
	for _, level := range []model.Field{model.FieldResolution, model.FieldFrameRate} {
		prev := model.OptionIDs(r.Domain(chain[0], level))
		for _, s := range chain[1:] {
			cur := model.OptionIDs(r.Domain(s, level))
			if level == model.FieldFrameRate && s.ResolutionID == "" && s.VariantName != "" {
				// Nothing to offer until a resolution is chosen.
				assert.Empty(t, cur)
				continue
			}
			assert.Subset(t, prev, cur, "level %s at %+v", level, s)
			prev = cur
		}
	}
}
