//go:build unix

package tts

import (
	"io"
	"os/exec"
	"testing"
)

func TestProcessCancelAfterExit(t *testing.T) {
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}

	cmd := exec.Command(bin)
	if err := cmd.Run(); err != nil {
		t.Fatalf("run %s: %v", bin, err)
	}

	var events []EventType
	u := NewUtterance("already finished")
	u.Handler = func(e Event) { events = append(events, e.Type) }

	e := &processEngine{name: "true", binary: bin}
	e.current = &processRun{cmd: cmd, utterance: u}

	if err := e.Cancel(); err != nil {
		t.Errorf("Cancel() error = %v, want nil for an exited process", err)
	}
	if e.current != nil {
		t.Error("run still current after Cancel")
	}
	if len(events) != 1 || events[0] != EventEnd {
		t.Errorf("events = %v, want [end]", events)
	}
}

func TestProcessSpeakRunsToEnd(t *testing.T) {
	bin, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not available")
	}

	e := &processEngine{
		name:   "cat",
		binary: bin,
		build: func(u *Utterance, config Config) ([]string, io.Reader) {
			return nil, nil
		},
	}

	done := make(chan EventType, 4)
	u := NewUtterance("hello")
	u.Handler = func(ev Event) { done <- ev.Type }

	if err := e.Speak(u); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if got := <-done; got != EventStart {
		t.Fatalf("first event = %v, want start", got)
	}
	if got := <-done; got != EventEnd {
		t.Errorf("second event = %v, want end", got)
	}
}
