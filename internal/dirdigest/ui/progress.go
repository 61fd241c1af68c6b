package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/types"
)

type phase int

const (
	phaseIdle phase = iota
	phaseScanning
	phaseHashing
	phaseDone
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	countStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type progressModel struct {
	events  <-chan types.Event
	spinner spinner.Model
	prog    progress.Model
	phase   phase
	start   time.Time
	now     func() time.Time
	message string
	pos     int
	total   int
	failed  int
	width   int
}

type eventMsg types.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders a spinner while the
// file tree is read and a progress bar while files are hashed.
func NewProgressModel(events <-chan types.Event) tea.Model {
	return newProgressModel(events, time.Now)
}

func newProgressModel(events <-chan types.Event, now func() time.Time) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 30

	return &progressModel{
		events:  events,
		spinner: sp,
		prog:    prog,
		start:   now(),
		now:     now,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		// Printed lines must land before the quit that may follow.
		cmd := m.applyEvent(types.Event(msg))
		return m, tea.Sequence(cmd, m.listenForEvent())
	case doneMsg:
		m.phase = phaseDone
		return m, tea.Quit
	case spinner.TickMsg:
		if m.phase == phaseDone {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	}
	return m, nil
}

func (m *progressModel) View() string {
	switch m.phase {
	case phaseIdle:
		return ""
	case phaseScanning:
		return fmt.Sprintf("%s %s\n", m.spinner.View(), m.message)
	}

	pct := 1.0
	if m.total > 0 {
		pct = float64(m.pos) / float64(m.total)
	}

	var b strings.Builder
	b.WriteString(elapsedStyle.Render("[" + formatElapsed(m.now().Sub(m.start)) + "]"))
	b.WriteString(" ")
	b.WriteString(m.prog.ViewAs(pct))
	b.WriteString(" ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d", m.pos, m.total)))
	if m.failed > 0 {
		b.WriteString(" ")
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d failed", m.failed)))
	}
	if m.phase == phaseHashing && m.message != "" {
		used := lipgloss.Width(b.String())
		b.WriteString(" ")
		b.WriteString(truncate(m.message, m.width-used-1))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev types.Event) tea.Cmd {
	switch ev.Kind {
	case types.EventScanStart:
		m.phase = phaseScanning
		m.message = "Reading file tree"
	case types.EventScanDone:
		m.phase = phaseHashing
		m.total = ev.Total
		m.pos = 0
		m.message = ""
	case types.EventFileStart:
		m.message = "File: " + filepath.Base(ev.Path)
	case types.EventFileError:
		m.failed++
		if ev.Err != nil {
			return tea.Println(ev.Err.Error())
		}
	case types.EventFileDone:
		m.pos++
	case types.EventFinish:
		m.pos = m.total
		m.message = ""
	}
	return nil
}

// formatElapsed renders d as hh:mm:ss.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
