package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/db"
	"github.com/user/clip-browser/pkg/timeutil"
	"github.com/user/clip-browser/tui/components"
	"github.com/user/clip-browser/tui/forms"
	"github.com/user/clip-browser/tui/layout"
	"github.com/user/clip-browser/tui/styles"
	"github.com/user/clip-browser/view"
)

const (
	// tickInterval is the interval for polling mpv status.
	tickInterval = 250 * time.Millisecond
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 4 * time.Second
	// loadTimeout bounds a single source load.
	loadTimeout = 30 * time.Second
)

// Player is the embed layer the browser drives. *mpv.Client implements it.
type Player interface {
	PlayTarget(watchBase string, t clip.PlaybackTarget) error
	TogglePause() error
	IsConnected() bool
	GetTimePos() (float64, error)
	GetDuration() (float64, error)
	GetPaused() (bool, error)
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	// Player may be nil; clips then resolve without playing.
	Player Player
	// Source is the data source to open first; empty means the configured default.
	Source string
	Logger zerolog.Logger
}

// tickMsg is a message sent on every tick interval to update playback status.
type tickMsg time.Time

// clearResultMsg is sent to clear the command result message.
type clearResultMsg struct{}

// sourcesMsg carries the data sources found in the data directory.
type sourcesMsg struct {
	sources []db.Source
	err     error
}

// sourceLoadedMsg carries the rows of a freshly loaded source.
type sourceLoadedMsg struct {
	name    string
	columns []string
	rows    []clip.Row
	err     error
}

// Model is the Bubbletea model for the clip browser.
type Model struct {
	cfg    *config.Config
	cols   clip.ColumnMap
	player Player
	nav    *clip.Navigator
	logger zerolog.Logger

	// initialSource is opened once the source list arrives
	initialSource string
	sources       []db.Source

	// rows is the loaded source in load order, including in-memory edits
	rows []clip.Row
	// viewIdx maps each view row to its index in rows
	viewIdx []int
	// edited marks rows (by load index) whose timecodes were changed in memory
	edited map[int]bool

	spec view.Spec
	// baseFilters are the committed filters while the filter prompt is open
	baseFilters []view.Filter

	mode         inputMode
	table        components.ClipTableState
	filter       components.FilterInputState
	commandInput components.CommandInputState
	statusBar    components.StatusBarState
	timePos      float64
	duration     float64

	form       *huh.Form
	formKind   formKind
	sourcePick string
	discard    bool
	edit       forms.TimecodeFormResult
	editRow    int

	showHelp bool
	quitting bool
	err      error
	width    int
	height   int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return &Model{
		cfg:           cfg,
		cols:          cfg.ColumnMap(),
		player:        opts.Player,
		nav:           clip.NewNavigator(clip.NewResolver(nil), opts.Logger),
		logger:        opts.Logger,
		initialSource: opts.Source,
		edited:        map[int]bool{},
		table:         components.ClipTableState{Active: -1},
		filter:        components.NewFilterInputState(),
		commandInput:  components.NewCommandInputState(),
	}
}

// Init starts the status ticker and lists the data sources.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.listSourcesCmd())
}

// tickCmd returns a command that sends a tickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearResultCmd() tea.Cmd {
	return tea.Tick(resultDisplayDuration, func(t time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

func (m *Model) listSourcesCmd() tea.Cmd {
	dir := m.cfg.DataDir
	return func() tea.Msg {
		sources, err := db.ListSources(dir)
		return sourcesMsg{sources: sources, err: err}
	}
}

func (m *Model) loadSourceCmd(src db.Source) tea.Cmd {
	table := m.cfg.Table
	cols := m.cols
	cfg := m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		t, err := db.LoadSource(ctx, src.Path, table)
		if err != nil {
			return sourceLoadedMsg{name: src.Name, err: err}
		}
		return sourceLoadedMsg{name: src.Name, columns: cfg.VisibleColumns(t.Columns), rows: t.Rows(cols)}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form = m.form.WithWidth(m.formWidth())
		}
		return m, nil

	case tickMsg:
		m.updateStatusFromPlayer()
		return m, tickCmd()

	case clearResultMsg:
		m.commandInput.ClearResult()
		return m, nil

	case sourcesMsg:
		return m.handleSources(msg)

	case sourceLoadedMsg:
		return m.handleSourceLoaded(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Any key dismisses the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeFilter:
		return m.handleFilterInput(keyMsg)
	case modeCommand:
		return m.handleCommandInput(keyMsg)
	}
	return m.handleTableKey(keyMsg)
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "k", "up":
		m.table.MoveUp()
	case "j", "down":
		m.table.MoveDown()
	case "h", "left":
		m.table.MoveLeft()
	case "l", "right":
		m.table.MoveRight()
	case "g", "home":
		m.table.Cursor = 0
	case "G", "end":
		m.table.Cursor = len(m.table.Rows) - 1
		m.table.Clamp()
	case "enter":
		return m, m.activate(m.table.Cursor)
	case "/":
		m.mode = modeFilter
		m.baseFilters = append([]view.Filter(nil), m.spec.Filters...)
		m.filter.Clear()
		m.filter.Total = len(m.rows)
		m.filter.Matches = len(m.table.Rows)
		return m, m.filter.Focus()
	case ":":
		m.mode = modeCommand
		m.commandInput.ClearResult()
		return m, m.commandInput.Focus()
	case "s":
		if col := m.table.CursorColumn(); col != "" {
			m.spec.Toggle(col)
			return m, m.refreshView()
		}
	case "S":
		if col := m.table.CursorColumn(); col != "" {
			m.spec.AddKey(col)
			return m, m.refreshView()
		}
	case "r":
		if col := m.table.CursorColumn(); col != "" {
			m.spec.Reverse(col)
			return m, m.refreshView()
		}
	case "c":
		m.spec.Reset()
		m.filter.Clear()
		return m, m.refreshView()
	case "d":
		return m, m.openSourcePicker()
	case "e":
		return m, m.openEditForm()
	case " ":
		if m.player != nil && m.player.IsConnected() {
			if err := m.player.TogglePause(); err != nil {
				m.commandInput.SetResult("Pause failed: "+err.Error(), true)
				return m, clearResultCmd()
			}
		}
	}
	return m, nil
}

// activate makes row idx of the view the active cell and plays what it resolves to.
func (m *Model) activate(idx int) tea.Cmd {
	if len(m.table.Rows) == 0 {
		return nil
	}
	cell := clip.ActiveCell{Row: idx, Column: m.table.CursorColumn()}
	target, ok, err := m.nav.Activate(cell)
	m.table.Active = idx
	if err == nil && !ok {
		m.commandInput.SetResult("Row has no media id or timecodes, keeping current clip", true)
		return clearResultCmd()
	}
	return m.publish(target, ok, err)
}

// publish reports a resolution and hands a new target to the player.
func (m *Model) publish(target clip.PlaybackTarget, ok bool, err error) tea.Cmd {
	if err != nil {
		m.commandInput.SetResult("Malformed timecode, keeping current clip: "+err.Error(), true)
		return clearResultCmd()
	}
	if !ok {
		return nil
	}

	t := target
	m.statusBar.Target = &t

	summary := fmt.Sprintf("%s %s–%s", target.MediaID,
		timeutil.FormatTime(float64(target.StartSeconds)),
		timeutil.FormatTime(float64(target.EndSeconds)))

	if m.player == nil || !m.player.IsConnected() {
		m.commandInput.SetResult("Selected "+summary+" (no player)", false)
		return clearResultCmd()
	}
	if err := m.player.PlayTarget(m.cfg.Embed.WatchBase, target); err != nil {
		m.logger.Error().Err(err).Str("media_id", target.MediaID).Msg("play clip")
		m.commandInput.SetResult("Play failed: "+err.Error(), true)
		return clearResultCmd()
	}
	m.commandInput.SetResult("Playing "+summary, false)
	return clearResultCmd()
}

// refreshView derives the view from rows and spec and hands it to the navigator,
// which re-resolves the active cell against the new order.
func (m *Model) refreshView() tea.Cmd {
	m.spec.Columns = m.table.Columns
	m.viewIdx = view.Indices(m.rows, m.spec)
	rows := make([]clip.Row, len(m.viewIdx))
	for i, j := range m.viewIdx {
		rows[i] = m.rows[j]
	}
	m.table.SetRows(rows)
	m.filter.Matches = len(rows)
	m.filter.Total = len(m.rows)
	m.statusBar.Visible = len(rows)
	m.statusBar.Total = len(m.rows)

	target, ok, err := m.nav.UpdateView(rows)
	if cell, active := m.nav.ActiveCell(); active && cell.Row < len(rows) {
		m.table.Active = cell.Row
	} else {
		m.table.Active = -1
	}
	return m.publish(target, ok, err)
}

func (m *Model) handleSources(msg sourcesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = fmt.Errorf("list sources: %w", msg.err)
		return m, nil
	}
	m.sources = msg.sources
	if len(m.sources) == 0 {
		m.commandInput.SetResult("No .db files in "+m.cfg.DataDir, true)
		return m, nil
	}

	name := m.initialSource
	if name == "" {
		name = m.cfg.DefaultSource
	}
	src, err := db.FindSource(m.sources, name)
	if err != nil {
		m.commandInput.SetResult(err.Error(), true)
		src = m.sources[0]
	}
	return m, m.loadSourceCmd(src)
}

func (m *Model) handleSourceLoaded(msg sourceLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Str("source", msg.name).Msg("load source")
		m.commandInput.SetResult("Load failed: "+msg.err.Error(), true)
		return m, clearResultCmd()
	}

	m.nav.LoadSource(msg.name, msg.rows)
	m.rows = msg.rows
	m.edited = map[int]bool{}
	m.spec.Reset()
	m.filter.Clear()
	m.mode = modeTable
	m.table = components.ClipTableState{Columns: msg.columns, Active: -1}
	m.statusBar.Source = msg.name

	m.logger.Info().Str("source", msg.name).Int("rows", len(msg.rows)).Msg("source loaded")
	cmd := m.refreshView()
	m.commandInput.SetResult(fmt.Sprintf("Loaded %s (%d rows)", msg.name, len(msg.rows)), false)
	return m, tea.Batch(cmd, clearResultCmd())
}

// handleFilterInput edits the filter prompt. The view follows every keystroke;
// enter keeps the filter, esc restores the previous one.
func (m *Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.spec.Filters = m.baseFilters
		m.filter.Clear()
		m.mode = modeTable
		return m, m.refreshView()
	case "enter":
		m.filter.Blur()
		m.mode = modeTable
		return m, nil
	}

	changed, cmd := m.filter.Update(msg)
	if !changed {
		return m, cmd
	}

	m.spec.Filters = append([]view.Filter(nil), m.baseFilters...)
	if expr := m.filter.Value(); strings.TrimSpace(expr) != "" {
		m.spec.Filters = append(m.spec.Filters, view.ParseFilter(expr))
	}
	return m, tea.Batch(cmd, m.refreshView())
}

// handleCommandInput handles key events when in command mode.
func (m *Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandInput.Clear()
		m.mode = modeTable
		return m, nil
	case "enter":
		line := m.commandInput.GetCommand()
		m.mode = modeTable
		if line == "" {
			return m, nil
		}
		result, cmd, err := m.executeCommand(line)
		if err != nil {
			m.commandInput.SetResult("Error: "+err.Error(), true)
			return m, clearResultCmd()
		}
		if m.quitting {
			return m, tea.Quit
		}
		if result != "" {
			m.commandInput.SetResult(result, false)
			return m, tea.Batch(cmd, clearResultCmd())
		}
		return m, cmd
	}
	return m, m.commandInput.Update(msg)
}

// executeCommand parses and executes a ':' command line.
func (m *Model) executeCommand(line string) (string, tea.Cmd, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil, nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "source", "src":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("source requires a name")
		}
		src, err := db.FindSource(m.sources, args[0])
		if err != nil {
			return "", nil, err
		}
		return "Loading " + src.Name, m.loadSourceCmd(src), nil
	case "sort":
		if len(args) == 0 {
			return "", nil, fmt.Errorf("sort requires at least one column")
		}
		m.spec.Sort = nil
		for _, a := range args {
			m.spec.Sort = append(m.spec.Sort, view.ParseSort(a))
		}
		return m.spec.Describe(), m.refreshView(), nil
	case "filter":
		if len(args) == 0 {
			return "", nil, fmt.Errorf("filter requires an expression")
		}
		m.spec.Filters = append(m.spec.Filters, view.ParseFilter(strings.Join(args, " ")))
		return m.spec.Describe(), m.refreshView(), nil
	case "clear":
		m.spec.Reset()
		m.filter.Clear()
		return "View cleared", m.refreshView(), nil
	case "goto":
		if len(args) != 1 {
			return "", nil, fmt.Errorf("goto requires a row number")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(m.table.Rows) {
			return "", nil, fmt.Errorf("row must be between 1 and %d", len(m.table.Rows))
		}
		m.table.Cursor = n - 1
		return "", m.activate(n - 1), nil
	case "q", "quit":
		m.quitting = true
		return "", nil, nil
	case "help":
		return "Commands: source NAME, sort COL.., filter EXPR, goto N, clear, quit", nil, nil
	}
	return "", nil, fmt.Errorf("unknown command: %s", cmd)
}

func (m *Model) openSourcePicker() tea.Cmd {
	if len(m.sources) == 0 {
		m.commandInput.SetResult("No data sources", true)
		return clearResultCmd()
	}
	if len(m.edited) > 0 {
		m.discard = false
		return m.openForm(formDiscard, forms.NewConfirmDiscardForm(len(m.edited), &m.discard))
	}

	opts := make([]forms.SourceOption, 0, len(m.sources))
	for _, s := range m.sources {
		opts = append(opts, forms.SourceOption{Name: s.Name, Size: s.Size})
	}
	return m.openForm(formSource, forms.NewSourceForm(opts, m.nav.Source(), &m.sourcePick))
}

func (m *Model) openEditForm() tea.Cmd {
	row := m.table.CursorRow()
	if row == nil {
		return nil
	}
	m.editRow = m.table.Cursor
	m.edit = forms.TimecodeFormResult{Start: row.StartRaw, End: row.EndRaw}
	title := fmt.Sprintf("Edit %s (row %d, not saved to disk)", row.MediaID, m.table.Cursor+1)
	return m.openForm(formEdit, forms.NewTimecodeForm(title, &m.edit))
}

func (m *Model) openForm(kind formKind, f *huh.Form) tea.Cmd {
	m.form = f.WithWidth(m.formWidth())
	m.formKind = kind
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) formWidth() int {
	if m.width > 0 && m.width < 70 {
		return m.width
	}
	return 70
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
	m.mode = modeTable
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.closeForm()
		m.commandInput.SetResult("Cancelled", false)
		return m, clearResultCmd()
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()
		return m, m.finishForm(kind)
	}
	return m, cmd
}

func (m *Model) finishForm(kind formKind) tea.Cmd {
	switch kind {
	case formDiscard:
		if !m.discard {
			return nil
		}
		m.edited = map[int]bool{}
		return m.openSourcePicker()

	case formSource:
		if m.sourcePick == "" || m.sourcePick == m.nav.Source() {
			return nil
		}
		src, err := db.FindSource(m.sources, m.sourcePick)
		if err != nil {
			m.commandInput.SetResult(err.Error(), true)
			return clearResultCmd()
		}
		return m.loadSourceCmd(src)

	case formEdit:
		return m.applyEdit()
	}
	return nil
}

// applyEdit writes the edited timecodes into the in-memory copy of the row.
func (m *Model) applyEdit() tea.Cmd {
	if m.editRow < 0 || m.editRow >= len(m.viewIdx) {
		return nil
	}
	i := m.viewIdx[m.editRow]

	rows := make([]clip.Row, len(m.rows))
	copy(rows, m.rows)
	rows[i] = rows[i].WithTimecodes(m.cols, m.edit.Start, m.edit.End)
	m.rows = rows
	m.edited[i] = true
	m.nav.ReplaceRows(rows)

	m.logger.Debug().Int("row", i).Str("start", m.edit.Start).Str("end", m.edit.End).Msg("timecodes edited")
	return m.refreshView()
}

// updateStatusFromPlayer polls mpv for pause state and position.
func (m *Model) updateStatusFromPlayer() {
	if m.player == nil || !m.player.IsConnected() {
		m.statusBar.Connected = false
		return
	}
	m.statusBar.Connected = true
	if paused, err := m.player.GetPaused(); err == nil {
		m.statusBar.Paused = paused
	}
	if pos, err := m.player.GetTimePos(); err == nil {
		m.timePos = pos
	}
	if d, err := m.player.GetDuration(); err == nil {
		m.duration = d
	}
}

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.err != nil {
		return components.StatusBar(m.statusBar, m.width) + "\n\nError: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	statusBar := components.StatusBar(m.statusBar, m.width)

	if m.form != nil {
		return statusBar + "\n\n" + m.form.View()
	}

	if m.width > 0 && m.width < layout.MinTerminalWidth {
		hintStyle := styles.SecondaryText.Italic(true)
		return styles.Warning.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth))
	}

	// status bar, describe line, command line, hint bar
	bodyHeight := m.height - 4
	filterBox := ""
	if m.filter.Active || m.filter.Value() != "" {
		filterBox = components.FilterInput(m.filter, m.width)
		bodyHeight -= lipgloss.Height(filterBox)
	}
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	body := m.renderBody(bodyHeight)

	describeStyle := styles.SecondaryText.Italic(true)
	describe := layout.PadToWidth(" "+describeStyle.Render(m.nav.Describe()), m.width)

	out := statusBar + "\n" + body + "\n" + describe + "\n"
	if filterBox != "" {
		out += filterBox + "\n"
	}
	return out + components.CommandInput(m.commandInput, m.width) + "\n" + components.ControlsDisplay(m.width)
}

// Run starts the browser and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
