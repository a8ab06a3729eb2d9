package tts

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// MockTTSEngine simulates speech with timers. It prints what it would say
// and finishes after the time a reader would need at 150 words per minute.
type MockTTSEngine struct {
	volume    float64
	voice     string
	timeScale float64
	out       io.Writer

	current *mockRun
	mu      sync.Mutex
}

type mockRun struct {
	utterance *Utterance
	timer     *time.Timer
	started   time.Time
	remaining time.Duration
	paused    bool
}

type MockOption func(*MockTTSEngine)

// WithTimeScale shortens or stretches simulated reading time.
func WithTimeScale(scale float64) MockOption {
	return func(m *MockTTSEngine) {
		m.timeScale = scale
	}
}

func WithOutput(w io.Writer) MockOption {
	return func(m *MockTTSEngine) {
		m.out = w
	}
}

func NewMockTTSEngine(c Config, opts ...MockOption) *MockTTSEngine {
	m := &MockTTSEngine{
		volume:    c.Volume,
		voice:     "default",
		timeScale: 1.0,
		out:       color.Output,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockTTSEngine) GetAvailableVoices() ([]string, error) {
	return []string{"mock-voice", "mock-narrator"}, nil
}

func (m *MockTTSEngine) Speak(u *Utterance) error {
	if err := validUtterance(u); err != nil {
		return err
	}

	m.mu.Lock()
	if m.current != nil {
		m.mu.Unlock()
		return ErrBusy
	}

	// Simulate reading time based on text length
	words := len(strings.Fields(u.Text))
	minutes := float64(words) / (150.0 * rateOrDefault(u.Rate))
	duration := time.Duration(minutes * m.timeScale * float64(time.Minute))

	run := &mockRun{utterance: u, remaining: duration}
	m.current = run
	m.mu.Unlock()

	color.New(color.FgYellow).Fprintf(m.out, "🔊 Reading aloud... (simulated for %v)\n", duration.Round(time.Millisecond))
	u.Emit(EventStart, nil)

	m.mu.Lock()
	if m.current == run && !run.paused {
		run.started = time.Now()
		run.timer = time.AfterFunc(run.remaining, func() { m.finish(run) })
	}
	m.mu.Unlock()

	return nil
}

func (m *MockTTSEngine) finish(run *mockRun) {
	m.mu.Lock()
	if m.current != run || run.paused {
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.mu.Unlock()

	run.utterance.Emit(EventEnd, nil)
}

func (m *MockTTSEngine) SetVoice(voice string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voice = voice
	return nil
}

func (m *MockTTSEngine) SetVolume(volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
	return nil
}

func (m *MockTTSEngine) Cancel() error {
	m.mu.Lock()
	run := m.current
	if run == nil {
		m.mu.Unlock()
		return nil
	}
	if run.timer != nil {
		run.timer.Stop()
	}
	m.current = nil
	m.mu.Unlock()

	run.utterance.Emit(EventEnd, nil)
	return nil
}

func (m *MockTTSEngine) Pause() error {
	m.mu.Lock()
	run := m.current
	if run == nil || run.paused {
		m.mu.Unlock()
		return nil
	}
	if run.timer != nil {
		if !run.timer.Stop() {
			// already finishing
			m.mu.Unlock()
			return nil
		}
		run.remaining -= time.Since(run.started)
		if run.remaining < 0 {
			run.remaining = 0
		}
	}
	run.paused = true
	m.mu.Unlock()

	run.utterance.Emit(EventPause, nil)
	return nil
}

func (m *MockTTSEngine) Resume() error {
	m.mu.Lock()
	run := m.current
	if run == nil || !run.paused {
		m.mu.Unlock()
		return nil
	}
	run.paused = false
	run.started = time.Now()
	run.timer = time.AfterFunc(run.remaining, func() { m.finish(run) })
	m.mu.Unlock()

	run.utterance.Emit(EventResume, nil)
	return nil
}

func (m *MockTTSEngine) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}
