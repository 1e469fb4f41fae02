package resolver

import (
	"testing"

	"github.com/timelapsetech/videocalc-db/internal/catalog/catalogtest"
	"github.com/timelapsetech/videocalc-db/internal/model"
)

func sel(cat, codec, variant, res, fr string) model.Selection {
	return model.Selection{
		CategoryID:   cat,
		CodecID:      codec,
		VariantName:  variant,
		ResolutionID: res,
		FrameRateID:  fr,
		Duration:     model.DefaultDuration(),
	}
}

func rules(changes []Change) []Rule {
	var out []Rule
	for _, c := range changes {
		out = append(out, c.Rule)
	}
	return out
}

func equalRules(a, b []Rule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSettle(t *testing.T) {
	r := New(catalogtest.Fixture())

	tests := []struct {
		name  string
		in    model.Selection
		want  model.Selection
		rules []Rule
	}{
		{
			name:  "singleton variant fills the chain",
			in:    sel("broadcast", "solo", "", "1080p", "30"),
			want:  sel("broadcast", "solo", "Solo HD", "1080p", "30"),
			rules: []Rule{RuleAutoVariant},
		},
		{
			name:  "singleton variant reselects resolution and frame rate",
			in:    sel("broadcast", "solo", "", "720p", "60"),
			want:  sel("broadcast", "solo", "Solo HD", "1080p", "30"),
			rules: []Rule{RuleAutoVariant, RuleReselectRes, RuleOnlyFrameRate},
		},
		{
			name:  "category switch clears codec and variant",
			in:    sel("cinema", "multi", "A", "1080p", "30"),
			want:  sel("cinema", "", "", "1080p", "30"),
			rules: []Rule{RuleResetCodec, RuleResetCodec},
		},
		{
			name:  "unknown category cascades",
			in:    sel("nope", "multi", "A", "1080p", "30"),
			want:  sel("", "", "", "1080p", "30"),
			rules: []Rule{RuleUnknownCategory, RuleResetCodec, RuleResetCodec},
		},
		{
			name:  "variant from another codec is cleared",
			in:    sel("broadcast", "multi", "Solo HD", "1080p", "30"),
			want:  sel("broadcast", "multi", "", "1080p", "30"),
			rules: []Rule{RuleResetVariant},
		},
		{
			name:  "interlaced prefers 29.97",
			in:    sel("broadcast", "multi", "A", "1080i", "24"),
			want:  sel("broadcast", "multi", "A", "1080i", "29.97"),
			rules: []Rule{RulePreferFrameRate},
		},
		{
			name:  "progressive prefers 30",
			in:    sel("broadcast", "multi", "A", "1080p", "60"),
			want:  sel("broadcast", "multi", "A", "1080p", "30"),
			rules: []Rule{RulePreferFrameRate},
		},
		{
			name:  "no preferred rate falls back to first valid",
			in:    sel("broadcast", "multi", "A", "720p", "30"),
			want:  sel("broadcast", "multi", "A", "720p", "50"),
			rules: []Rule{RulePreferFrameRate},
		},
		{
			name:  "cinema chain prefers 24",
			in:    sel("cinema", "dcp", "", "1080p", "30"),
			want:  sel("cinema", "dcp", "DCP", "2K DCI", "24"),
			rules: []Rule{RuleAutoVariant, RuleReselectRes, RulePreferFrameRate},
		},
		{
			name:  "allow-list excluding every resolution clears downstream",
			in:    sel("broadcast", "multi", "B", "1080p", "30"),
			want:  sel("broadcast", "multi", "B", "", ""),
			rules: []Rule{RuleClearResolution, RuleClearFrameRate},
		},
		{
			name: "flat row accepts any allowed frame rate",
			in:   sel("broadcast", "multi", "A", "4K", "59.94"),
			want: sel("broadcast", "multi", "A", "4K", "59.94"),
		},
		{
			name: "empty table is not auto-selected",
			in:   sel("raw", "empty", "", "1080p", "30"),
			want: sel("raw", "empty", "", "1080p", "30"),
		},
		{
			name:  "explicit empty table clears resolution",
			in:    sel("raw", "empty", "Nothing", "1080p", "30"),
			want:  sel("raw", "empty", "Nothing", "", ""),
			rules: []Rule{RuleClearResolution, RuleClearFrameRate},
		},
		{
			name:  "malformed table offers nothing",
			in:    sel("raw", "bad", "Broken", "4K", "24"),
			want:  sel("raw", "bad", "Broken", "", ""),
			rules: []Rule{RuleClearResolution, RuleClearFrameRate},
		},
		{
			name:  "non-positive bitrates are unsupported",
			in:    sel("raw", "fallback", "F2", "1080p", "30"),
			want:  sel("raw", "fallback", "F2", "", ""),
			rules: []Rule{RuleClearResolution, RuleClearFrameRate},
		},
		{
			name:  "unknown resolution without variant",
			in:    sel("", "", "", "9K", "30"),
			want:  sel("", "", "", "", "30"),
			rules: []Rule{RuleUnknownResolution},
		},
		{
			name: "defaults are settled",
			in:   model.DefaultSelection(),
			want: model.DefaultSelection(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changes, err := r.Settle(tt.in)
			if err != nil {
				t.Fatalf("Settle: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if !equalRules(rules(changes), tt.rules) {
				t.Fatalf("rules = %v, want %v", rules(changes), tt.rules)
			}
			if !r.Settled(got) {
				t.Fatalf("result is not settled: %+v", got)
			}
		})
	}
}

func TestStepFiresOneRule(t *testing.T) {
	r := New(catalogtest.Fixture())
	in := sel("cinema", "solo", "Solo HD", "1080p", "30")

	next, changes := r.Step(in)
	if len(changes) != 2 {
		t.Fatalf("changes = %v, want codec and variant cleared", changes)
	}
	if changes[0].Field != model.FieldCodec || changes[1].Field != model.FieldVariant {
		t.Fatalf("fields = %s,%s", changes[0].Field, changes[1].Field)
	}
	if changes[0].From != "solo" || changes[0].To != "" {
		t.Fatalf("codec change = %+v", changes[0])
	}
	if next.CodecID != "" || next.VariantName != "" || next.CategoryID != "cinema" {
		t.Fatalf("next = %+v", next)
	}
}

func TestSettleRespectsPassCap(t *testing.T) {
	r := New(catalogtest.Fixture(), WithMaxPasses(1))
	_, changes, err := r.Settle(sel("broadcast", "solo", "", "720p", "60"))
	if err != ErrNoConvergence {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %v", changes)
	}
}

func TestDomain(t *testing.T) {
	r := New(catalogtest.Fixture())

	tests := []struct {
		name  string
		sel   model.Selection
		level model.Field
		want  []string
	}{
		{"categories", model.DefaultSelection(), model.FieldCategory, []string{"broadcast", "cinema", "raw"}},
		{"codecs of category", sel("broadcast", "", "", "", ""), model.FieldCodec, []string{"solo", "multi"}},
		{"no codecs without category", sel("", "", "", "", ""), model.FieldCodec, []string{}},
		{"variants of codec", sel("broadcast", "multi", "", "", ""), model.FieldVariant, []string{"A", "B"}},
		{"variant domain needs a category", sel("", "multi", "", "", ""), model.FieldVariant, []string{}},
		{"resolutions intersect allow-list", sel("broadcast", "multi", "A", "1080p", "30"), model.FieldResolution, []string{"720p", "1080i", "1080p", "4K"}},
		{"cinema resolutions", sel("cinema", "dcp", "DCP", "", ""), model.FieldResolution, []string{"2K DCI", "4K DCI"}},
		{"interlaced frame rates", sel("broadcast", "multi", "A", "1080i", ""), model.FieldFrameRate, []string{"25", "29.97", "30"}},
		{"flat row frame rates", sel("broadcast", "multi", "A", "4K", ""), model.FieldFrameRate, []string{"23.98", "24", "25", "29.97", "30", "50", "59.94", "60"}},
		{"resolution missing from table", sel("broadcast", "multi", "A", "PAL", ""), model.FieldFrameRate, []string{}},
		{"malformed table", sel("raw", "bad", "Broken", "", ""), model.FieldResolution, []string{}},
		{"frame rates need a resolution", sel("broadcast", "multi", "A", "", ""), model.FieldFrameRate, []string{}},
		{"unknown level", model.DefaultSelection(), model.FieldHours, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.OptionIDs(r.Domain(tt.sel, tt.level))
			if len(got) != len(tt.want) {
				t.Fatalf("Domain = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Domain = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDomainWithoutVariantIsFullCatalog(t *testing.T) {
	r := New(catalogtest.Fixture())
	s := sel("cinema", "dcp", "", "", "")
	if n := len(r.Domain(s, model.FieldResolution)); n != 13 {
		t.Fatalf("resolutions = %d, want full catalog", n)
	}
	if n := len(r.Domain(s, model.FieldFrameRate)); n != 10 {
		t.Fatalf("frame rates = %d, want full catalog", n)
	}
}

func TestExplain(t *testing.T) {
	r := New(catalogtest.Fixture())

	tests := []struct {
		name string
		sel  model.Selection
		want string
	}{
		{"supported", sel("broadcast", "multi", "A", "1080p", "30"), ""},
		{"resolution unsupported", sel("broadcast", "multi", "A", "PAL", "30"), msgResolutionUnsupported},
		{"frame rate unsupported", sel("broadcast", "multi", "A", "1080p", "60"), msgFrameRateUnsupported},
		{"incomplete", sel("broadcast", "multi", "", "1080p", "30"), ""},
		{"flat row", sel("broadcast", "multi", "A", "4K", "120"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Explain(tt.sel); got != tt.want {
				t.Fatalf("Explain = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHint(t *testing.T) {
	r := New(catalogtest.Fixture())
	if got := r.Hint(sel("", "", "", "1080i", "")); got != "Interlaced content typically uses 25, 29.97, or 30 fps" {
		t.Fatalf("Hint = %q", got)
	}
	if got := r.Hint(sel("", "", "", "", "")); got != "" {
		t.Fatalf("Hint = %q, want empty", got)
	}
}
