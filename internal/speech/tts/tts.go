// Package tts wraps host text-to-speech engines behind one capability
// interface that reports utterance lifecycle events.
package tts

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupported means no usable engine exists on this host.
	ErrUnsupported = errors.New("text-to-speech is not supported on this system")
	// ErrBusy is returned by Speak while another utterance is active.
	ErrBusy = errors.New("engine is already speaking")
	// ErrEmptyUtterance is returned by Speak for blank text.
	ErrEmptyUtterance = errors.New("utterance has no text")
	// ErrPauseUnsupported is returned by engines that cannot suspend playback.
	ErrPauseUnsupported = errors.New("pause is not supported by this engine")
)

type Config struct {
	Type            string
	Volume          float64
	Voice           string
	CredentialsFile string
}

// Engine interface for text-to-speech functionality.
//
// Speak returns once playback has been scheduled; progress is reported
// through the utterance's Handler. Cancel ends the active utterance and
// must cause an EventEnd for it.
type Engine interface {
	Speak(u *Utterance) error
	Pause() error
	Resume() error
	Cancel() error
	IsSpeaking() bool
	SetVoice(voice string) error
	SetVolume(volume float64) error
	GetAvailableVoices() ([]string, error)
}

type EventType int

const (
	EventStart EventType = iota
	EventPause
	EventResume
	EventEnd
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventEnd:
		return "end"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one lifecycle notification for an utterance.
type Event struct {
	Type      EventType
	Utterance *Utterance
	Err       error
}

// Utterance is a single playback unit: text plus voice parameters.
// Rate and Pitch are multipliers where 1.0 is the engine's normal value.
type Utterance struct {
	Text    string
	Rate    float64
	Pitch   float64
	Handler func(Event)
}

func NewUtterance(text string) *Utterance {
	return &Utterance{
		Text:  text,
		Rate:  1.0,
		Pitch: 1.0,
	}
}

// Emit delivers an event to the utterance's handler, if any.
func (u *Utterance) Emit(t EventType, err error) {
	if u == nil || u.Handler == nil {
		return
	}
	u.Handler(Event{Type: t, Utterance: u, Err: err})
}

func validUtterance(u *Utterance) error {
	if u == nil || strings.TrimSpace(u.Text) == "" {
		return ErrEmptyUtterance
	}
	return nil
}

func rateOrDefault(rate float64) float64 {
	if rate <= 0 {
		return 1.0
	}
	return rate
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
