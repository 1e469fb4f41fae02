package ui

import (
	"fmt"
	"strings"

	"github.com/timelapsetech/videocalc-db/internal/calc"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/util/format"
)

// PanelOptions tunes ResultPanel.
type PanelOptions struct {
	// Binary shows GiB/TiB instead of GB/TB.
	Binary bool
	// Notes are appended under the figures, e.g. auto-corrections.
	Notes []string
}

// ResultPanel renders a calculation result as a bordered panel.
func ResultPanel(st Styles, res *model.CalculationResult, opts PanelOptions) string {
	if res == nil {
		return ""
	}
	row := func(label, value string) string {
		return st.Label.Render(label) + st.Value.Render(value)
	}

	codec := res.Codec.Name
	if codec == "" {
		codec = res.Codec.ID
	}
	frameRate := res.ResolvedFrameRate.Name
	if res.FallbackFrameRate != "" {
		frameRate = fmt.Sprintf("%s (priced at %s fps)", frameRate, res.FallbackFrameRate)
	}

	lines := []string{
		st.Header.Render("Estimated file size"),
		st.Size.Render(format.FileSize(res.FileSizeMB, opts.Binary)) + "  " + st.Faint.Render(format.Megabytes(res.FileSizeMB)),
		"",
		row("Bitrate", format.Mbps(res.BitrateMbps)),
		row("Duration", format.Duration(model.DurationFromSeconds(res.TotalSeconds))),
		row("Per minute", format.FileSize(calc.RatePerMinuteMB(res.BitrateMbps), opts.Binary)),
		row("Per hour", format.FileSize(calc.RatePerHourMB(res.BitrateMbps), opts.Binary)),
		"",
		row("Codec", codec+" · "+res.ResolvedVariant.Name),
		row("Resolution", res.ResolvedResolution.Name),
		row("Frame rate", frameRate),
	}
	if res.FallbackFrameRate != "" {
		lines = append(lines, "", st.Warning.Render(fmt.Sprintf(
			"No bitrate is listed for %s fps at this resolution; using %s fps.",
			res.ResolvedFrameRate.ID, res.FallbackFrameRate)))
	}
	if len(opts.Notes) > 0 {
		lines = append(lines, "")
		for _, n := range opts.Notes {
			lines = append(lines, st.Faint.Render("• "+n))
		}
	}
	return st.Panel.Render(strings.Join(lines, "\n"))
}
