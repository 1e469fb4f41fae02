// Package catalogtest provides a small hand-built catalog for tests.
package catalogtest

import (
	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/model"
)

// Fixture returns a catalog covering the interesting table shapes:
//
//	broadcast/solo    one variant, one resolution, one frame rate
//	broadcast/multi   per-frame-rate and flat rows, plus a variant whose
//	                  only resolution is outside the broadcast allow-list
//	cinema/dcp        DCI-only rows
//	raw/empty         a lone variant with an empty table
//	raw/bad           a malformed table
//	raw/fallback      a row without the requested frame rate
func Fixture() catalog.Static {
	return catalog.Static{
		{
			ID:   "broadcast",
			Name: "Broadcast",
			Codecs: []model.Codec{
				{
					ID:   "solo",
					Name: "Solo",
					Variants: []model.Variant{
						{Name: "Solo HD", Bitrates: model.NewBitrateTable(
							model.Row("1080p", model.PerFrameRate(model.Rate("30", 50))),
						)},
					},
				},
				{
					ID:   "multi",
					Name: "Multi",
					Variants: []model.Variant{
						{Name: "A", Bitrates: model.NewBitrateTable(
							model.Row("720p", model.PerFrameRate(model.Rate("50", 30), model.Rate("60", 36))),
							model.Row("1080i", model.PerFrameRate(
								model.Rate("25", 40), model.Rate("29.97", 45), model.Rate("30", 45),
							)),
							model.Row("1080p", model.PerFrameRate(
								model.Rate("25", 40), model.Rate("29.97", 45), model.Rate("30", 50),
							)),
							model.Row("4K", model.Flat(200)),
						)},
						{Name: "B", Bitrates: model.NewBitrateTable(
							model.Row("2K DCI", model.PerFrameRate(model.Rate("24", 100))),
						)},
					},
				},
			},
		},
		{
			ID:   "cinema",
			Name: "Cinema",
			Codecs: []model.Codec{
				{
					ID:   "dcp",
					Name: "DCP",
					Variants: []model.Variant{
						{Name: "DCP", Bitrates: model.NewBitrateTable(
							model.Row("2K DCI", model.PerFrameRate(model.Rate("24", 250), model.Rate("25", 250))),
							model.Row("4K DCI", model.PerFrameRate(model.Rate("24", 500))),
						)},
					},
				},
			},
		},
		{
			ID:   "raw",
			Name: "RAW",
			Codecs: []model.Codec{
				{
					ID:       "empty",
					Name:     "Empty",
					Variants: []model.Variant{{Name: "Nothing", Bitrates: model.NewBitrateTable()}},
				},
				{
					ID:       "bad",
					Name:     "Bad",
					Variants: []model.Variant{{Name: "Broken", Bitrates: model.BitrateTable{Malformed: true}}},
				},
				{
					ID:   "fallback",
					Name: "Fallback",
					Variants: []model.Variant{
						{Name: "F1", Bitrates: model.NewBitrateTable(
							model.Row("8K", model.PerFrameRate(model.Rate("60", 900), model.Rate("24", 400))),
							model.Row("6K", model.PerFrameRate(model.FrameRateBitrate{FrameRateID: "24", Numeric: false})),
						)},
						{Name: "F2", Bitrates: model.NewBitrateTable(
							model.Row("1080p", model.PerFrameRate(model.Rate("30", 0), model.Rate("25", -5))),
						)},
					},
				},
			},
		},
	}
}
