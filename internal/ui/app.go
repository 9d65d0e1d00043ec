package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/modsnap/internal/config"
	"github.com/five82/modsnap/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewReport View = iota
	ViewLogs
)

// Rows taken by the header and command bar.
const chromeHeight = 2

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Config     *config.Config
	ConfigPath string
	World      string
	LogPath    string
	PollTick   time.Duration
	ThemeName  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	store      *state.Store
	config     *config.Config
	configPath string
	world      string
	logPath    string
	pollTick   time.Duration
	keys       keyMap

	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	result   state.Result
	viewport viewport.Model

	logLines   []string
	logErr     error
	followLogs bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}
	themeName := opts.ThemeName
	if themeName == "" && opts.Config != nil {
		themeName = opts.Config.Theme
	}
	logPath := opts.LogPath
	if logPath == "" && opts.Config != nil {
		logPath = opts.Config.LogFile
	}

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		world:       opts.World,
		logPath:     logPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewReport,
		followLogs:  true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchResultCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := max(m.height-chromeHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, height)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = height
		}
		m.ready = true
		m.refreshContent()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case resultMsg:
		m.result = state.Result(msg)
		if m.currentView == ViewReport {
			m.refreshContent()
		}
		return m, nil

	case logLinesMsg:
		m.logLines = msg
		m.logErr = nil
		if m.currentView == ViewLogs {
			m.refreshContent()
		}
		return m, nil

	case logErrorMsg:
		m.logErr = msg.err
		if m.currentView == ViewLogs {
			m.refreshContent()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help, but quit still quits.
		m.showHelp = false
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.persistTheme()
		m.refreshContent()

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewReport {
			return m.switchView(ViewLogs)
		}
		return m.switchView(ViewReport)

	case key.Matches(msg, m.keys.ViewReport):
		return m.switchView(ViewReport)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)

	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
		m.followLogs = false
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.followLogs = false
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.followLogs = true
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		m.followLogs = false
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
		m.followLogs = false
	}

	if m.currentView == ViewLogs && m.viewport.AtBottom() {
		m.followLogs = true
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == v {
		return m, nil
	}
	m.currentView = v
	m.refreshContent()
	if v == ViewLogs {
		m.followLogs = true
		m.viewport.GotoBottom()
		return m, fetchLogsCmd(m.logPath)
	}
	m.viewport.GotoTop()
	return m, nil
}

// handleTick pulls the latest result and, when visible, the log tail.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchResultCmd(m.store))
	}
	if m.currentView == ViewLogs && m.followLogs && m.logPath != "" {
		cmds = append(cmds, fetchLogsCmd(m.logPath))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// refreshContent re-renders the active view into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	switch m.currentView {
	case ViewLogs:
		m.viewport.SetContent(m.renderLogContent())
		if m.followLogs {
			m.viewport.GotoBottom()
		}
	default:
		m.viewport.SetContent(m.renderReportContent())
	}
}

func (m *Model) renderReportContent() string {
	styles := m.theme.Styles()
	res := m.result
	if !res.HasDiff {
		if res.LastError != nil {
			return styles.DangerText.Render("Unable to read the current environment: ") +
				styles.MutedText.Render(res.LastError.Error())
		}
		return styles.MutedText.Render("Waiting for the first comparison...")
	}
	return RenderReport(Report{
		Diff:            res.Diff,
		ReferenceUsable: res.ReferenceUsable,
		World:           m.world,
	}, m.theme, m.width)
}

// persistTheme writes only the theme key to the config file. Failures are
// ignored so a read-only config never blocks the UI.
func (m *Model) persistTheme() {
	if m.config != nil {
		m.config.Theme = m.theme.Name
	}
	if m.configPath == "" {
		return
	}
	_ = config.SaveTheme(m.configPath, m.theme.Name)
}

// Messages

type tickMsg time.Time

type resultMsg state.Result

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchResultCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(store.Result())
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
