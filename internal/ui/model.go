package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/timelapsetech/videocalc-db/internal/catalog"
	"github.com/timelapsetech/videocalc-db/internal/events"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/preset"
	"github.com/timelapsetech/videocalc-db/internal/scheduler"
	"github.com/timelapsetech/videocalc-db/internal/share"
)

// Config is what the picker needs from the command line.
type Config struct {
	Catalog     catalog.Provider
	Initial     model.Selection
	Presets     *preset.Store
	Logger      zerolog.Logger
	Debounce    time.Duration
	BinaryUnits bool
}

// durationRow is the focus index of the duration input, after the levels.
var durationRow = len(model.Levels)

const maxNotes = 4

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	sched     *scheduler.Scheduler
	presets   *preset.Store
	presetIdx int

	focus    int
	duration textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	binary bool
	notes  []string
	status string
	state  events.State

	// UI
	width, height int
	styles        Styles

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, cfg Config) Model {
	c, cancel := context.WithCancel(ctx)
	sty := DefaultStyles()
	ch := make(chan tea.Msg, 256)

	sched := scheduler.New(cfg.Catalog,
		scheduler.WithInitial(cfg.Initial),
		scheduler.WithReporter(teaReporter{ch: ch}),
		scheduler.WithDebounce(cfg.Debounce),
		scheduler.WithLogger(cfg.Logger),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sty.Spinner

	in := textinput.New()
	in.Placeholder = "HH:MM:SS"
	in.CharLimit = 12
	in.Width = 12
	in.SetValue(sched.Selection().Duration.String())

	return Model{
		ctx:      c,
		cancel:   cancel,
		sched:    sched,
		presets:  cfg.Presets,
		duration: in,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeys(),
		binary:   cfg.BinaryUnits,
		state:    sched.State(),
		styles:   sty,
		eventCh:  ch,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd())
}

// Close stops the scheduler behind the model.
func (m Model) Close() {
	m.cancel()
	m.sched.Close()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if quit := m.handleKey(msg, &cmds); quit {
			m.Close()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case stateMsg:
		m.state = msg.U.State
		cmds = append(cmds, m.listenEventsCmd())
	case changeMsg:
		m.addNote(describeChange(msg.C))
		cmds = append(cmds, m.listenEventsCmd())
	case resultMsg:
		m.state = m.sched.State()
		cmds = append(cmds, m.listenEventsCmd())
	case quitMsg:
		return m, tea.Quit
	}

	var c tea.Cmd
	m.spinner, c = m.spinner.Update(msg)
	if c != nil {
		cmds = append(cmds, c)
	}
	return m, tea.Batch(cmds...)
}

// handleKey applies one key press and reports whether the picker should quit.
func (m *Model) handleKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	editing := m.focus == durationRow
	if msg.String() == "ctrl+c" || (!editing && key.Matches(msg, m.keys.Quit)) {
		return true
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case editing && key.Matches(msg, m.keys.Enter):
		m.commitDuration()
	case editing:
		var c tea.Cmd
		m.duration, c = m.duration.Update(msg)
		*cmds = append(*cmds, c)
	case key.Matches(msg, m.keys.Left):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycle(1)
	case key.Matches(msg, m.keys.Preset):
		m.nextPreset()
	case key.Matches(msg, m.keys.Units):
		m.binary = !m.binary
	case key.Matches(msg, m.keys.Link):
		m.status = "Link: ?" + share.Encode(m.sched.Selection()).Encode()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return false
}

func (m *Model) move(delta int) {
	if m.focus == durationRow {
		m.commitDuration()
	}
	rows := durationRow + 1
	m.focus = (m.focus + delta + rows) % rows
	if m.focus == durationRow {
		m.duration.Focus()
	} else {
		m.duration.Blur()
	}
}

// cycle moves the focused level to the neighbouring option in its domain.
func (m *Model) cycle(delta int) {
	level := model.Levels[m.focus]
	opts := m.sched.Options(level)
	if len(opts) == 0 {
		m.status = fmt.Sprintf("No %s is available for this selection", level)
		return
	}
	cur := m.sched.Selection().Get(level)
	idx := -1
	for i, o := range opts {
		if o.ID == cur {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(opts) - 1
	default:
		idx = (idx + delta + len(opts)) % len(opts)
	}
	m.apply(level, opts[idx].ID)
}

func (m *Model) apply(f model.Field, v string) {
	m.notes = nil
	m.status = ""
	if err := m.sched.Apply(f, v); err != nil {
		m.status = err.Error()
	}
	m.state = m.sched.State()
}

func (m *Model) commitDuration() {
	d, err := model.ParseDuration(m.duration.Value())
	if err != nil {
		m.status = err.Error()
		m.duration.SetValue(m.sched.Selection().Duration.String())
		return
	}
	m.status = ""
	if err := m.sched.SetDuration(d); err != nil {
		m.status = err.Error()
	}
	m.duration.SetValue(m.sched.Selection().Duration.String())
	m.state = m.sched.State()
}

func (m *Model) nextPreset() {
	if m.presets == nil {
		return
	}
	list := m.presets.List()
	if len(list) == 0 {
		m.status = "No presets saved"
		return
	}
	p := list[m.presetIdx%len(list)]
	m.presetIdx++
	m.notes = nil
	if err := m.sched.Seed(p.Selection(m.sched.Selection().Duration)); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Preset: " + p.Name
	m.state = m.sched.State()
}

func (m *Model) addNote(n string) {
	m.notes = append(m.notes, n)
	if len(m.notes) > maxNotes {
		m.notes = m.notes[len(m.notes)-maxNotes:]
	}
}

func (m Model) View() string {
	return m.viewHeader() + "\n\n" + m.viewSelection() + "\n" + m.viewResult() + "\n" + m.viewFooter()
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return quitMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// teaReporter forwards scheduler events into the program. Sends never block:
// the scheduler may call it from inside Update, and the view reads the
// scheduler directly, so a dropped event only delays a redraw.
type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u events.Update) {
	r.send(stateMsg{U: u})
}

func (r teaReporter) Change(c events.Change) {
	r.send(changeMsg{C: c})
}

func (r teaReporter) Result(res events.Result) {
	r.send(resultMsg{R: res})
}

func (r teaReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	default:
	}
}

func describeChange(c events.Change) string {
	switch {
	case c.To == "":
		return fmt.Sprintf("%s %s cleared", c.Field, c.From)
	case c.From == "":
		return fmt.Sprintf("%s set to %s", c.Field, c.To)
	default:
		return fmt.Sprintf("%s changed from %s to %s", c.Field, c.From, c.To)
	}
}
