package tui

import (
	"fmt"
	"strings"

	"briefcast/internal/briefing"
	"briefcast/internal/speech/playback"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎧 Audio News Briefing"))
	b.WriteString("\n")

	if m.showPrivacy {
		b.WriteString(BoxStyle.Render(briefing.PrivacyNotice))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press esc to go back"))
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.countText()))
	b.WriteString("\n\n")

	b.WriteString(m.controls())
	b.WriteString("\n\n")

	if m.snap.Generation == briefing.GenerationLoading {
		b.WriteString(m.spinner.View() + StatusStyle.Render(" Generating summary..."))
		b.WriteString("\n\n")
	}

	if m.snap.Error != "" {
		b.WriteString(ErrorStyle.Render("⚠️  " + m.snap.Error))
		b.WriteString("\n\n")
	}

	if m.snap.Summary != "" {
		b.WriteString(BoxStyle.Render(m.summaryText()))
		b.WriteString("\n\n")
	}

	if m.notice != "" {
		b.WriteString(InfoStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(Keys))
	return b.String()
}

func (m Model) countText() string {
	n := m.characterCount()
	if n > briefing.MinArticleLength {
		return fmt.Sprintf("%d characters", n)
	}
	return fmt.Sprintf("%d characters (more than %d needed)", n, briefing.MinArticleLength)
}

// controls renders the action buttons for the current state
func (m Model) controls() string {
	generate := "Summarize & Play"
	if m.snap.Generation == briefing.GenerationLoading {
		generate = "Summarizing..."
	}

	play := "Play"
	switch m.snap.Playback {
	case playback.StatusPlaying:
		play = "Pause"
	case playback.StatusPaused:
		play = "Resume"
	}

	shareLabel := "Share"
	if m.snap.Share == briefing.ShareCopied {
		shareLabel = "Copied!"
	}

	hasSummary := m.snap.Summary != ""
	return strings.Join([]string{
		button(generate, m.snap.CanGenerate),
		button(play, m.snap.CanPlay),
		button("Stop", hasSummary && m.snap.Playback != playback.StatusStopped),
		button(shareLabel, hasSummary),
	}, " ")
}

func (m Model) summaryText() string {
	var status string
	switch m.snap.Playback {
	case playback.StatusPlaying:
		status = StatusStyle.Render("▶ Playing")
	case playback.StatusPaused:
		status = InfoStyle.Render("⏸ Paused")
	default:
		status = InfoStyle.Render("⏹ Stopped")
	}

	return TitleStyle.Render(briefing.ShareTitle) + "\n" + m.snap.Summary + "\n\n" + status
}
