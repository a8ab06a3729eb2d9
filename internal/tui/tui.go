package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"briefcast/internal/briefing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Run shows the briefing screen until the user quits or ctx is done.
// Log output is written to logFile, or dropped when it is empty, so it does
// not tear the screen.
func Run(ctx context.Context, b *briefing.Briefing, logFile string) error {
	restore, err := redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer restore()

	p := tea.NewProgram(NewModel(ctx, b), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := b.Subscribe(func(s briefing.Snapshot) {
		// publish can run on the event loop itself
		go p.Send(SnapshotMsg{Snapshot: s})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func redirectLogs(path string) (func(), error) {
	prev := logrus.StandardLogger().Out

	if path == "" {
		logrus.SetOutput(io.Discard)
		return func() { logrus.SetOutput(prev) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return func() {
		logrus.SetOutput(prev)
		_ = f.Close()
	}, nil
}
