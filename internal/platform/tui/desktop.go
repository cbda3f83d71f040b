package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dexos/internal/config"
	"github.com/vovakirdan/dexos/internal/shell"
	"github.com/vovakirdan/dexos/internal/storage"
)

type desktopPhase int

const (
	phaseBoot desktopPhase = iota
	phaseDesktop
	phaseShutdown
)

// DesktopKeyMap defines the desktop-wide key bindings.
type DesktopKeyMap struct {
	Browser  key.Binding
	Snake    key.Binding
	About    key.Binding
	Cycle    key.Binding
	Close    key.Binding
	Shutdown key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DesktopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Browser, k.Snake, k.About, k.Cycle, k.Close, k.Shutdown}
}

// FullHelp returns key bindings for the full help view.
func (k DesktopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Browser, k.Snake, k.About},
		{k.Cycle, k.Close, k.Shutdown, k.Quit},
	}
}

// DefaultDesktopKeyMap returns default key bindings.
func DefaultDesktopKeyMap() DesktopKeyMap {
	return DesktopKeyMap{
		Browser: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "browser"),
		),
		Snake: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "snake"),
		),
		About: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "about"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next window"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Shutdown: key.NewBinding(
			key.WithKeys("f10"),
			key.WithHelp("F10", "shut down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// DesktopOptions configures a desktop session.
type DesktopOptions struct {
	Config   config.Config
	Store    *storage.Store // Optional browser history
	Logger   *log.Logger    // Optional
	Seed     int64          // Snake food seed; 0 uses the clock
	SkipBoot bool
	Open     shell.AppID // Opened once the desktop appears
	Width    int
	Height   int
	User     string // SSH user, empty locally
}

// DesktopModel is the top-level Bubble Tea model: boot screen, desktop with
// windows, then the shutdown screen.
type DesktopModel struct {
	phase    desktopPhase
	boot     *shell.Boot
	clock    shell.Clock
	wm       *shell.WindowManager
	shutdown *shell.Shutdown
	sched    *teaScheduler
	snake    *SnakePanel
	browser  *BrowserPanel
	about    *AboutPanel
	keys     DesktopKeyMap
	help     help.Model
	logger   *log.Logger
	openApp  shell.AppID
	notice   string
	width    int
	height   int
	quitting bool
}

// NewDesktopModel wires the shell, the panels and the snake engine together.
func NewDesktopModel(opts DesktopOptions) DesktopModel {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	loader := shell.NewPageLoader(cfg.Browser.Timeout(), cfg.Browser.MaxBodyBytes, cfg.Browser.UserAgent)
	loader.Logger = logger
	var history HistorySource
	if opts.Store != nil {
		loader.History = opts.Store
		history = opts.Store
	}

	sched := newTeaScheduler()
	wm := shell.NewWindowManager(logger)

	m := DesktopModel{
		boot: shell.NewBoot(cfg.Boot.Lines, shell.BootTimings{
			CharDelay:  cfg.Boot.CharDelay(),
			LinePause:  cfg.Boot.LinePause(),
			FinalPause: cfg.Boot.FinalPause(),
		}),
		clock:    shell.NewClock(cfg.Clock.Format),
		wm:       wm,
		shutdown: shell.NewShutdown(cfg.Shutdown.Delay(), cfg.Shutdown.Message),
		sched:    sched,
		snake:    NewSnakePanel(cfg.Snake, seed, sched, logger),
		browser:  NewBrowserPanel(loader),
		about:    NewAboutPanel(history, cfg.Browser.HistorySize, opts.User),
		keys:     DefaultDesktopKeyMap(),
		help:     help.New(),
		logger:   logger,
		openApp:  opts.Open,
		width:    opts.Width,
		height:   opts.Height,
	}
	m.snake.Attach(wm)
	m.browser.Attach(wm)
	m.about.Attach(wm)
	m.resize(opts.Width, opts.Height)

	if opts.SkipBoot {
		m.boot.Skip()
		m.enterDesktop()
	}
	return m
}

// Init starts the boot animation, or the clock when boot was skipped.
func (m DesktopModel) Init() tea.Cmd {
	if m.phase == phaseBoot {
		return bootCmd(m.boot.Delay())
	}
	return tea.Batch(clockCmd(), m.sched.Flush())
}

// Update handles messages and updates the model state.
func (m DesktopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if !m.sched.Handle(msg) {
		m, cmd = m.update(msg)
	}
	return m, tea.Batch(cmd, m.sched.Flush())
}

func (m DesktopModel) update(msg tea.Msg) (DesktopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case BootStepMsg:
		if m.phase != phaseBoot {
			return m, nil
		}
		m.boot.Step()
		if m.boot.Done() {
			m.enterDesktop()
			return m, clockCmd()
		}
		return m, bootCmd(m.boot.Delay())

	case ClockMsg:
		if m.phase != phaseDesktop {
			return m, nil
		}
		return m, clockCmd()

	case ShutdownDoneMsg:
		m.shutdown.Complete()
		return m, nil

	case pageLoadedMsg:
		return m, m.browser.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DesktopModel) handleKey(msg tea.KeyMsg) (DesktopModel, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quit()
		return m, tea.Quit
	}

	switch m.phase {
	case phaseBoot:
		m.boot.Skip()
		m.enterDesktop()
		return m, clockCmd()

	case phaseShutdown:
		if m.shutdown.Phase() == shell.ShutdownComplete {
			m.quit()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Browser):
		m.open(shell.AppBrowser)
		return m, nil
	case key.Matches(msg, m.keys.Snake):
		m.open(shell.AppSnake)
		return m, nil
	case key.Matches(msg, m.keys.About):
		m.open(shell.AppAbout)
		return m, nil
	case key.Matches(msg, m.keys.Cycle):
		m.wm.FocusNext()
		return m, nil
	case key.Matches(msg, m.keys.Shutdown):
		return m, m.beginShutdown()
	case key.Matches(msg, m.keys.Close):
		if id, ok := m.wm.Focused(); ok {
			//nolint:errcheck // focused ids are always known
			m.wm.Close(id)
		}
		return m, nil
	}

	focused, ok := m.wm.Focused()
	if !ok {
		return m.handleDesktopKey(msg)
	}

	m.wm.Interact(focused)
	switch focused {
	case shell.AppSnake:
		return m, m.snake.HandleKey(msg)
	case shell.AppBrowser:
		return m, m.browser.Update(msg)
	case shell.AppAbout:
		return m, m.about.Update(msg)
	}
	return m, nil
}

// handleDesktopKey handles keys when no window is open: digits launch apps.
func (m DesktopModel) handleDesktopKey(msg tea.KeyMsg) (DesktopModel, tea.Cmd) {
	s := msg.String()
	for i, app := range shell.Apps() {
		if s == fmt.Sprint(i+1) {
			m.open(app.ID)
		}
	}
	return m, nil
}

func (m *DesktopModel) open(id shell.AppID) {
	if err := m.wm.Open(id); err != nil {
		m.logger.Warn("cannot open window", "app", id, "error", err)
		m.notice = err.Error()
		return
	}
	m.notice = ""
}

func (m *DesktopModel) enterDesktop() {
	m.phase = phaseDesktop
	m.logger.Debug("desktop ready")
	if m.openApp != "" {
		m.open(m.openApp)
		m.openApp = ""
	}
}

func (m *DesktopModel) beginShutdown() tea.Cmd {
	delay, ok := m.shutdown.Begin()
	if !ok {
		return nil
	}
	m.wm.CloseAll()
	m.phase = phaseShutdown
	m.logger.Info("shutting down")
	return shutdownCmd(delay)
}

func (m *DesktopModel) quit() {
	m.wm.CloseAll()
	m.sched.StopAll()
	m.quitting = true
}

func (m *DesktopModel) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width = w
	m.height = h
	m.help.Width = w
	m.browser.SetSize(w-4, h-6)
}

// String returns the phase name.
func (p desktopPhase) String() string {
	switch p {
	case phaseBoot:
		return "boot"
	case phaseDesktop:
		return "desktop"
	case phaseShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// WindowManager exposes the session's window manager.
func (m DesktopModel) WindowManager() *shell.WindowManager {
	return m.wm
}

// Styles
var (
	bootStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	taskbarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24"))
	taskActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	taskOpenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)
	taskIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	windowTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	iconStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(22)
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current phase.
func (m DesktopModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseBoot:
		return bootStyle.Render(m.boot.Text() + "_")
	case phaseShutdown:
		return m.shutdownView()
	default:
		return m.desktopView()
	}
}

func (m DesktopModel) shutdownView() string {
	text := "Shutting down DexOS..."
	if m.shutdown.Phase() == shell.ShutdownComplete {
		text = m.shutdown.Message()
	}
	if m.width <= 0 || m.height <= 0 {
		return text
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

func (m DesktopModel) desktopView() string {
	var b strings.Builder
	b.WriteString(m.taskbarView())
	b.WriteString("\n")

	if id, ok := m.wm.Focused(); ok {
		b.WriteString(m.windowView(id))
	} else {
		b.WriteString(m.iconsView())
	}

	b.WriteString("\n")
	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = m.notice + "  " + footer
	}
	b.WriteString(helpBarStyle.Render(footer))
	return b.String()
}

func (m DesktopModel) taskbarView() string {
	focused, _ := m.wm.Focused()

	parts := []string{taskActiveStyle.Render("DexOS")}
	for i, app := range shell.Apps() {
		label := fmt.Sprintf("F%d %s", i+1, app.Title)
		switch {
		case app.ID == focused:
			parts = append(parts, taskActiveStyle.Render(label))
		case m.wm.IsOpen(app.ID):
			parts = append(parts, taskOpenStyle.Render(label))
		default:
			parts = append(parts, taskIdleStyle.Render(label))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	clock := taskOpenStyle.Render(m.clock.Text())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return left + taskbarStyle.Render(strings.Repeat(" ", gap)) + clock
}

func (m DesktopModel) windowView(id shell.AppID) string {
	app, _ := shell.LookupApp(id)

	var body string
	switch id {
	case shell.AppSnake:
		body = m.snake.View()
	case shell.AppBrowser:
		body = m.browser.View()
	case shell.AppAbout:
		body = m.about.View()
	}
	title := windowTitleStyle.Render(app.Icon + " " + app.Title)
	return windowStyle.Render(title + "\n" + body)
}

func (m DesktopModel) iconsView() string {
	icons := make([]string, 0, len(shell.Apps()))
	for i, app := range shell.Apps() {
		icons = append(icons, iconStyle.Render(fmt.Sprintf("%s %d\n%s\n%s", app.Icon, i+1, app.Title, app.Description)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, icons...)
}

// Run starts the Bubble Tea program with the given options.
func Run(opts DesktopOptions) error {
	p := tea.NewProgram(
		NewDesktopModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
