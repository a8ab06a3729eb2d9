package tui

import "briefcast/internal/briefing"

// SnapshotMsg carries a published briefing state. Snapshots may arrive out
// of order; older versions are dropped.
type SnapshotMsg struct {
	Snapshot briefing.Snapshot
}

// GenerateDoneMsg is sent when summarize-and-play returns
type GenerateDoneMsg struct {
	Err error
}

// PlaybackMsg is sent after a play, pause or stop request
type PlaybackMsg struct {
	Err error
}

// ShareDoneMsg is sent when sharing finished
type ShareDoneMsg struct {
	Err error
}
