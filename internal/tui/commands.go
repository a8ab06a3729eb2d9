package tui

import (
	"context"

	"briefcast/internal/briefing"

	tea "github.com/charmbracelet/bubbletea"
)

// generate runs summarize-and-play off the event loop
func generate(ctx context.Context, b *briefing.Briefing) tea.Cmd {
	return func() tea.Msg {
		return GenerateDoneMsg{Err: b.GenerateSummaryAndPlay(ctx)}
	}
}

func togglePlayback(b *briefing.Briefing) tea.Cmd {
	return func() tea.Msg {
		return PlaybackMsg{Err: b.TogglePlayback()}
	}
}

func stopPlayback(b *briefing.Briefing) tea.Cmd {
	return func() tea.Msg {
		return PlaybackMsg{Err: b.Stop()}
	}
}

func share(ctx context.Context, b *briefing.Briefing) tea.Cmd {
	return func() tea.Msg {
		return ShareDoneMsg{Err: b.ShareSummary(ctx)}
	}
}
