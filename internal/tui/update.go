package tui

import (
	"errors"

	"briefcast/internal/briefing"
	"briefcast/internal/speech/playback"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(20, msg.Width-4))
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case SnapshotMsg:
		return m.apply(msg.Snapshot), nil
	case GenerateDoneMsg:
		return m.handleGenerateDone(msg)
	case PlaybackMsg:
		return m.handlePlayback(msg)
	case ShareDoneMsg:
		return m.handleShareDone(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPrivacy {
		if key.Matches(msg, Keys.Escape, Keys.Privacy) {
			m.showPrivacy = false
			return m, nil
		}
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Privacy):
		m.showPrivacy = true
		return m, nil
	case key.Matches(msg, Keys.Generate):
		if !m.snap.CanGenerate {
			return m, nil
		}
		m.notice = ""
		return m, generate(m.ctx, m.briefing)
	case key.Matches(msg, Keys.Play):
		if !m.snap.CanPlay {
			return m, nil
		}
		return m, togglePlayback(m.briefing)
	case key.Matches(msg, Keys.Stop):
		return m, stopPlayback(m.briefing)
	case key.Matches(msg, Keys.Share):
		if m.snap.Summary == "" {
			return m, nil
		}
		return m, share(m.ctx, m.briefing)
	case key.Matches(msg, Keys.Escape):
		m.notice = ""
		return m, nil
	}

	// the article cannot be edited while its summary is generated
	if m.snap.Generation == briefing.GenerationLoading {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.briefing.SetArticleText(m.input.Value())
	return m.refresh(), cmd
}

func (m Model) handleGenerateDone(msg GenerateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil && !errors.Is(msg.Err, briefing.ErrGenerationFailed) {
		logrus.WithError(msg.Err).Debug("summarize and play did not run")
	}
	return m.refresh(), nil
}

func (m Model) handlePlayback(msg PlaybackMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
	case errors.Is(msg.Err, playback.ErrUnsupported):
		m.notice = playback.MessageUnsupported
	default:
		logrus.WithError(msg.Err).Debug("playback request failed")
	}
	return m.refresh(), nil
}

func (m Model) handleShareDone(msg ShareDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
		m.notice = ""
		if m.refresh().snap.Share != briefing.ShareCopied {
			m.notice = "Summary shared"
		}
	case errors.Is(msg.Err, briefing.ErrShareUnavailable):
		m.notice = "No share command or clipboard available"
	default:
		m.notice = msg.Err.Error()
	}
	return m.refresh(), nil
}
