package ui

import (
	"fmt"
	"strings"

	"github.com/timelapsetech/videocalc-db/internal/calc"
	"github.com/timelapsetech/videocalc-db/internal/events"
	"github.com/timelapsetech/videocalc-db/internal/model"
)

var levelLabels = map[model.Field]string{
	model.FieldCategory:   "Category",
	model.FieldCodec:      "Codec",
	model.FieldVariant:    "Variant",
	model.FieldResolution: "Resolution",
	model.FieldFrameRate:  "Frame rate",
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("videocalc · bitrate and file size")
	units := "GB"
	if m.binary {
		units = "GiB"
	}
	sub := m.styles.Subtitle.Render(fmt.Sprintf("State: %s • units: %s", m.state, units))
	return title + "\n" + sub
}

func (m Model) viewSelection() string {
	sel := m.sched.Selection()
	var b strings.Builder
	for i, level := range model.Levels {
		b.WriteString(m.viewLevel(i, level, sel))
		b.WriteString("\n")
	}
	cursor := "  "
	label := m.styles.Label.Render("Duration")
	if m.focus == durationRow {
		cursor = m.styles.Cursor.Render("> ")
		label = m.styles.Focused.Width(12).Render("Duration")
	}
	b.WriteString(cursor + label + m.duration.View() + "\n")
	return m.styles.Box.Render(b.String())
}

func (m Model) viewLevel(i int, level model.Field, sel model.Selection) string {
	opts := m.sched.Options(level)
	cur := sel.Get(level)
	pos, name := -1, cur
	for j, o := range opts {
		if o.ID == cur {
			pos, name = j, o.Name
			break
		}
	}

	cursor := "  "
	label := m.styles.Label.Render(levelLabels[level])
	if i == m.focus {
		cursor = m.styles.Cursor.Render("> ")
		label = m.styles.Focused.Width(12).Render(levelLabels[level])
	}

	var value string
	switch {
	case len(opts) == 0:
		value = m.styles.Faint.Render("none available")
	case cur == "":
		value = m.styles.Faint.Render(fmt.Sprintf("‹ choose (%d) ›", len(opts)))
	default:
		value = m.styles.Selected.Render("‹ "+name+" ›") + " " +
			m.styles.Faint.Render(fmt.Sprintf("%d/%d", pos+1, len(opts)))
	}
	return cursor + label + value
}

func (m Model) viewResult() string {
	var b strings.Builder
	if m.focus == len(model.Levels)-1 {
		if hint := m.sched.Hint(); hint != "" {
			b.WriteString(m.styles.Faint.Render(hint) + "\n")
		}
	}
	if msg := m.sched.Explain(); msg != "" {
		b.WriteString(m.styles.Warning.Render(msg) + "\n")
	}

	busy := m.state == events.StateResolving || m.state == events.StateCalculating || m.sched.Pending()
	res := m.sched.Result()
	switch {
	case busy:
		b.WriteString(m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.Faint.Render("Calculating…") + "\n")
	case res != nil:
		b.WriteString(ResultPanel(m.styles, res, PanelOptions{Binary: m.binary, Notes: m.notes}) + "\n")
	default:
		b.WriteString(m.styles.Faint.Render(m.pendingText()) + "\n")
	}
	return b.String()
}

func (m Model) pendingText() string {
	sel := m.sched.Selection()
	if missing := sel.Missing(); len(missing) > 0 {
		return "Select a " + strings.ToLower(levelLabels[missing[0]]) + " to see the file size."
	}
	if sel.Duration.TotalSeconds() == 0 {
		return "Enter a duration to see the file size."
	}
	if o := m.sched.Outcome(); o != calc.OutcomeOK {
		return "No result: " + o.String() + "."
	}
	return ""
}

func (m Model) viewFooter() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(m.styles.Value.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
