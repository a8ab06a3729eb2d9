// Package tui is the terminal front end: paste an article, get it summarized
// and read aloud.
package tui

import (
	"context"
	"unicode/utf8"

	"briefcast/internal/briefing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the briefing screen. The briefing owns all state that matters;
// the model only mirrors its latest snapshot.
type Model struct {
	ctx      context.Context
	briefing *briefing.Briefing

	input   textarea.Model
	spinner spinner.Model
	help    help.Model

	snap        briefing.Snapshot
	notice      string
	showPrivacy bool

	width  int
	height int
}

// NewModel creates the screen for b
func NewModel(ctx context.Context, b *briefing.Briefing) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste a news article here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(10)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	return Model{
		ctx:      ctx,
		briefing: b,
		input:    ta,
		spinner:  sp,
		help:     help.New(),
		snap:     b.Snapshot(),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// refresh pulls the current snapshot after a direct call into the briefing.
func (m Model) refresh() Model {
	m.snap = m.briefing.Snapshot()
	return m
}

// apply keeps s unless a newer snapshot is already shown.
func (m Model) apply(s briefing.Snapshot) Model {
	if s.Version > m.snap.Version {
		m.snap = s
	}
	return m
}

func (m Model) characterCount() int {
	return utf8.RuneCountInString(m.input.Value())
}
