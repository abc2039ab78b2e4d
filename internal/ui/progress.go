// Package ui provides the live progress view for multi-dataset runs.
// The model does not touch the runner; it only consumes messages sent
// from the runner's progress callback.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunStarted announces that a dataset's run has begun.
type RunStarted struct {
	Dataset string
}

// RunFinished carries one completed (or failed) run's summary.
type RunFinished struct {
	Dataset  string
	Err      error
	Reason   string
	Recall   float64
	WorkSave float64
}

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Progress is the root Bubble Tea model for a simulation in flight.
type Progress struct {
	total   int
	done    int
	active  map[string]bool
	lines   []string
	bar     progress.Model
	width   int
	aborted bool
}

// NewProgress creates the view for a simulation over total datasets.
func NewProgress(total int) Progress {
	return Progress{
		total:  total,
		active: make(map[string]bool),
		bar:    progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (m Progress) Init() tea.Cmd { return nil }

// Update handles run progress messages and key input.
func (m Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case RunStarted:
		m.active[msg.Dataset] = true
		return m, nil

	case RunFinished:
		delete(m.active, msg.Dataset)
		m.done++
		if msg.Err != nil {
			m.lines = append(m.lines, fmt.Sprintf("%s %s: %v",
				failStyle.Render("✗"), msg.Dataset, msg.Err))
		} else {
			m.lines = append(m.lines, fmt.Sprintf("%s %s: recall %.3f, work save %.3f (%s)",
				doneStyle.Render("✓"), msg.Dataset, msg.Recall, msg.WorkSave, msg.Reason))
		}
		if m.done >= m.total {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// View renders finished runs, the in-flight datasets, and the bar.
func (m Progress) View() string {
	var b strings.Builder

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	for name := range m.active {
		b.WriteString(activeStyle.Render("▸ " + name))
		b.WriteString(mutedStyle.Render(" screening..."))
		b.WriteString("\n")
	}

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(pct))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	b.WriteString("\n")

	return b.String()
}

// Aborted reports whether the user quit before all runs finished.
func (m Progress) Aborted() bool { return m.aborted }
