package catalog

import (
	"fmt"

	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/options"
)

// Issue describes one data anomaly. Issues are diagnostics; the resolver
// copes with every one of them by offering fewer options.
type Issue struct {
	Category   string
	Codec      string
	Variant    string
	Resolution string
	FrameRate  string
	Problem    string
}

func (i Issue) String() string {
	loc := i.Category
	for _, part := range []string{i.Codec, i.Variant, i.Resolution, i.FrameRate} {
		if part != "" {
			loc += " / " + part
		}
	}
	return loc + ": " + i.Problem
}

// Check walks the categories and reports malformed or unusable data.
func Check(categories []model.Category) []Issue {
	var issues []Issue
	seenCategory := make(map[string]bool)
	for _, cat := range categories {
		if cat.ID == "" {
			issues = append(issues, Issue{Category: cat.Name, Problem: "category has no id"})
		} else if seenCategory[cat.ID] {
			issues = append(issues, Issue{Category: cat.ID, Problem: "duplicate category id"})
		}
		seenCategory[cat.ID] = true
		for _, r := range cat.Resolutions {
			if _, ok := options.Resolution(r); !ok {
				issues = append(issues, Issue{Category: cat.ID, Resolution: r, Problem: "allow-list names an unknown resolution"})
			}
		}

		seenCodec := make(map[string]bool)
		for _, cd := range cat.Codecs {
			if seenCodec[cd.ID] {
				issues = append(issues, Issue{Category: cat.ID, Codec: cd.ID, Problem: "duplicate codec id"})
			}
			seenCodec[cd.ID] = true
			if len(cd.Variants) == 0 {
				issues = append(issues, Issue{Category: cat.ID, Codec: cd.ID, Problem: "codec has no variants"})
			}

			seenVariant := make(map[string]bool)
			for _, v := range cd.Variants {
				base := Issue{Category: cat.ID, Codec: cd.ID, Variant: v.Name}
				if seenVariant[v.Name] {
					issues = append(issues, with(base, "duplicate variant name, later entry ignored"))
					continue
				}
				seenVariant[v.Name] = true
				issues = append(issues, checkTable(base, v.Bitrates)...)
			}
		}
	}
	return issues
}

func checkTable(base Issue, t model.BitrateTable) []Issue {
	if t.Malformed {
		return []Issue{with(base, "bitrate table is not a mapping")}
	}
	if len(t.Rows) == 0 {
		return []Issue{with(base, "bitrate table is empty")}
	}
	var issues []Issue
	for _, row := range t.Rows {
		at := base
		at.Resolution = row.ResolutionID
		if _, ok := options.Resolution(row.ResolutionID); !ok {
			issues = append(issues, with(at, "unknown resolution id"))
		}
		switch row.Entry.Kind {
		case model.EntryInvalid:
			issues = append(issues, with(at, "bitrate is neither a number nor a frame-rate mapping"))
		case model.EntryFlat:
			if !model.Positive(row.Entry.Mbps) {
				issues = append(issues, with(at, fmt.Sprintf("non-positive bitrate %v", row.Entry.Mbps)))
			}
		case model.EntryPerFrameRate:
			if len(row.Entry.Rates) == 0 {
				issues = append(issues, with(at, "frame-rate mapping is empty"))
			}
			for _, r := range row.Entry.Rates {
				fr := at
				fr.FrameRate = r.FrameRateID
				if _, ok := options.FrameRate(r.FrameRateID); !ok {
					issues = append(issues, with(fr, "unknown frame rate id"))
				}
				switch {
				case !r.Numeric:
					issues = append(issues, with(fr, "bitrate is not a number"))
				case !model.Positive(r.Mbps):
					issues = append(issues, with(fr, fmt.Sprintf("non-positive bitrate %v", r.Mbps)))
				}
			}
		}
	}
	return issues
}

func with(i Issue, problem string) Issue {
	i.Problem = problem
	return i
}
