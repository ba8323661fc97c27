// Package tui provides a Bubble Tea terminal user interface for grf.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/handiism/release-fetcher/internal/config"
	"github.com/handiism/release-fetcher/internal/download"
	"github.com/handiism/release-fetcher/internal/format"
	"github.com/handiism/release-fetcher/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	assetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateResolving
	StateListing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// transfer holds the latest byte progress of the running asset. It is
// written by the download goroutine and read on every tick.
type transfer struct {
	mu   sync.Mutex
	last model.Progress
	set  bool
}

func (t *transfer) Observe(p model.Progress) {
	t.mu.Lock()
	t.last, t.set = p, true
	t.mu.Unlock()
}

func (t *transfer) get() (model.Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.set
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logger   *log.Logger
	logs     []LogEntry
	err      error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	manager  *download.Manager
	events   chan download.ProgressEvent
	transfer *transfer

	// run tags background results so that those of a reset run are dropped.
	run int

	// Download progress
	current  model.Progress
	outcomes []model.Outcome
	received int64
	total    int64
	files    int32
	filesAll int32

	width  int
	height int
}

const (
	inputReference = iota
	inputTag
)

// NewModel creates a new TUI model. reference and tag prefill the inputs.
func NewModel(settings *config.Settings, logger *log.Logger, reference, tag string) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ref := textinput.New()
	ref.Placeholder = "https://github.com/owner/repo"
	ref.CharLimit = 500
	ref.Width = 60
	ref.SetValue(reference)
	ref.Focus()

	tg := textinput.New()
	tg.Placeholder = "latest"
	tg.CharLimit = 200
	tg.Width = 30
	tg.SetValue(tag)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateInput,
		inputs:   []textinput.Model{ref, tg},
		spinner:  sp,
		progress: prog,
		settings: settings,
		logger:   logger,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every manager progress event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// ResolvedMsg is sent when the release has been located.
	ResolvedMsg struct {
		Run     int
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Run      int
		Outcomes []model.Outcome
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(20, min(msg.Width-20, 80))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateListing:
				m.state = StateInput
				return m, nil
			case StateResolving, StateDownloading:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
				return m, nil
			}

		case "tab", "shift+tab":
			if m.state == StateInput {
				m.inputs[m.focus].Blur()
				m.focus = (m.focus + 1) % len(m.inputs)
				return m, m.inputs[m.focus].Focus()
			}

		case "enter":
			switch m.state {
			case StateInput:
				if strings.TrimSpace(m.inputs[inputReference].Value()) != "" {
					m.state = StateResolving
					m.logs = nil
					m.events = make(chan download.ProgressEvent, 64)
					return m, tea.Batch(m.resolve(), m.waitForEvent(), m.spinner.Tick)
				}
				return m, nil
			case StateListing:
				m.state = StateDownloading
				m.transfer = &transfer{}
				return m, tea.Batch(m.startDownload(), m.tickProgress())
			}

		case "q":
			if m.state == StateListing || m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateListing || m.state == StateComplete || m.state == StateError {
				return m.reset(), nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != download.LevelVerbose || m.settings.Verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case ResolvedMsg:
		if msg.Run != m.run || m.state != StateResolving {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.manager = msg.Manager
			m.state = StateListing
		}

	case DownloadDoneMsg:
		if msg.Run != m.run || m.state != StateDownloading {
			return m, nil
		}
		m.outcomes = msg.Outcomes
		m.received, m.total, m.files, m.filesAll = m.manager.GetProgress()
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.received, m.total, m.files, m.filesAll = m.manager.GetProgress()
			if p, ok := m.transfer.get(); ok {
				m.current = p
			}
			cmds = append(cmds, m.progress.SetPercent(min(m.current.Fraction(), 1)), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reset returns the model to the input state, keeping the typed values.
func (m Model) reset() Model {
	m.cancel()
	m.run++
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.manager = nil
	m.events = nil
	m.transfer = nil
	m.current = model.Progress{}
	m.outcomes = nil
	m.received, m.total, m.files, m.filesAll = 0, 0, 0, 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.focus = inputReference
	m.inputs[inputTag].Blur()
	m.inputs[inputReference].Focus()
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next manager event as a ProgressMsg.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("GitHub Release Fetcher"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("List and download release assets"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateResolving:
		b.WriteString(m.viewResolving())
	case StateListing:
		b.WriteString(m.viewListing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Repository or release URL:"))
	b.WriteString("\n")
	b.WriteString(m.inputs[inputReference].View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Release tag (empty for latest):"))
	b.WriteString("\n")
	b.WriteString(m.inputs[inputTag].View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", m.settings.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewResolving() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching release info..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewListing() string {
	var b strings.Builder

	release := m.manager.Release()
	assets := m.manager.Assets()

	b.WriteString(successStyle.Render(fmt.Sprintf("Release: %s", release.Tag)))
	if release.Name != "" && release.Name != release.Tag {
		b.WriteString(dimStyle.Render("  " + release.Name))
	}
	b.WriteString("\n\n")

	if len(assets) == 0 {
		b.WriteString(warningStyle.Render("No files in this release."))
		b.WriteString("\n")
	}
	for _, a := range assets {
		b.WriteString(assetStyle.Render(fmt.Sprintf("  %s", a.Name)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", format.Size(a.Size))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d files, %s -> %s",
		len(assets), format.Size(model.TotalSize(assets)), m.manager.OutputDir(m.settings.OutputDir))))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if m.current.Asset.Name != "" {
		b.WriteString(assetStyle.Render(m.current.Asset.Name))
		b.WriteString("\n")
	}
	b.WriteString(m.progress.View())
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Downloaded: %s of %s | %s",
		m.files,
		m.filesAll,
		format.Size(m.received),
		format.Size(m.total),
		format.Speed(m.current.Throughput()),
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	summary := download.Summarize(m.outcomes)
	box := boxStyle.Render(fmt.Sprintf(
		"Download complete\n\n"+
			"Downloaded: %d\n"+
			"Already present: %d\n"+
			"Failed: %d\n"+
			"Transferred: %s",
		summary.Completed,
		summary.Skipped,
		summary.Failed,
		format.Size(m.received),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "*"
		switch entry.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "x"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "+"
		case download.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: fetch release | tab: switch field | esc: quit"
	case StateListing:
		return "enter: download | esc: back | r: start over | q: quit"
	case StateResolving, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: start over | q: quit"
	}
	return ""
}

// resolve creates the manager and runs Initialize in the background.
func (m Model) resolve() tea.Cmd {
	ctx := m.ctx
	events := m.events
	settings := m.settings
	logger := m.logger
	run := m.run
	req := download.Request{
		Reference: strings.TrimSpace(m.inputs[inputReference].Value()),
		Tag:       strings.TrimSpace(m.inputs[inputTag].Value()),
	}

	return func() tea.Msg {
		manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		if err := manager.Initialize(ctx, req); err != nil {
			return ResolvedMsg{Run: run, Err: err}
		}
		return ResolvedMsg{Run: run, Manager: manager}
	}
}

// startDownload runs the downloads in the background.
func (m Model) startDownload() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	observer := m.transfer
	dir := m.settings.OutputDir
	run := m.run

	return func() tea.Msg {
		outcomes, err := manager.StartDownloads(ctx, dir, observer)
		return DownloadDoneMsg{Run: run, Outcomes: outcomes, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *log.Logger, reference, tag string) error {
	p := tea.NewProgram(NewModel(settings, logger, reference, tag), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
