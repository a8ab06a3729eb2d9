// Package playback tracks speech playback state for one summary at a time.
// State follows the engine's utterance events; only Stop asserts a state on
// its own.
package playback

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"briefcast/internal/speech/tts"

	"github.com/sirupsen/logrus"
)

const (
	MessageUnsupported   = "Text-to-Speech is not supported on this system."
	MessagePlaybackError = "An error occurred during audio playback."

	// Rate and Pitch are applied to every new utterance.
	Rate  = 0.9
	Pitch = 1.1
)

var (
	ErrUnsupported = errors.New(MessageUnsupported)
	ErrPlayback    = errors.New(MessagePlaybackError)
)

type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Listener is called after every state change with the new status. err is
// set only when the change was caused by a failure.
type Listener func(Status, error)

type Controller struct {
	mu        sync.Mutex
	engine    tts.Engine
	status    Status
	utterance *tts.Utterance
	err       error

	listeners map[int]Listener
	nextID    int
}

// New returns a controller over engine. A nil engine makes every Play report
// ErrUnsupported.
func New(engine tts.Engine) *Controller {
	return &Controller{
		engine:    engine,
		listeners: make(map[int]Listener),
	}
}

func (c *Controller) Supported() bool {
	return c.engine != nil
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the last playback error, cleared by the next Play.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Utterance returns the live utterance, nil when stopped.
func (c *Controller) Utterance() *tts.Utterance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.utterance
}

// OnChange registers l and returns a func that removes it.
func (c *Controller) OnChange(l Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Play speaks text. A paused utterance is resumed instead of restarted, and
// anything still speaking is cancelled before the new utterance begins.
func (c *Controller) Play(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if c.engine == nil {
		c.mu.Lock()
		c.err = ErrUnsupported
		c.mu.Unlock()
		c.notify(ErrUnsupported)
		return ErrUnsupported
	}

	c.mu.Lock()
	if c.status == StatusPaused && c.utterance != nil {
		c.mu.Unlock()
		if err := c.engine.Resume(); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		return nil
	}
	c.mu.Unlock()

	if c.engine.IsSpeaking() {
		if err := c.engine.Cancel(); err != nil {
			logrus.WithError(err).Warn("failed to cancel previous utterance")
		}
		// the end event normally did this already
		c.settle()
	}

	u := tts.NewUtterance(text)
	u.Rate = Rate
	u.Pitch = Pitch
	u.Handler = func(e tts.Event) {
		c.handle(u, e)
	}

	c.mu.Lock()
	c.utterance = u
	c.err = nil
	c.mu.Unlock()

	if err := c.engine.Speak(u); err != nil {
		logrus.WithError(err).Error("speech engine refused utterance")
		c.mu.Lock()
		if c.utterance == u {
			c.utterance = nil
			c.status = StatusStopped
			c.err = ErrPlayback
		}
		c.mu.Unlock()
		c.notify(ErrPlayback)
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}

	return nil
}

// Pause is a no-op unless playing.
func (c *Controller) Pause() error {
	if c.engine == nil {
		return nil
	}

	c.mu.Lock()
	playing := c.status == StatusPlaying
	c.mu.Unlock()
	if !playing {
		return nil
	}

	if err := c.engine.Pause(); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	return nil
}

// Stop cancels the engine and always leaves the controller stopped.
func (c *Controller) Stop() error {
	if c.engine == nil {
		return nil
	}

	err := c.engine.Cancel()
	c.settle()

	if err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// settle forces the stopped state and releases the utterance.
func (c *Controller) settle() {
	c.mu.Lock()
	changed := c.status != StatusStopped || c.utterance != nil
	c.status = StatusStopped
	c.utterance = nil
	c.mu.Unlock()

	if changed {
		c.notify(nil)
	}
}

func (c *Controller) handle(u *tts.Utterance, e tts.Event) {
	var err error

	c.mu.Lock()
	if c.utterance != u {
		c.mu.Unlock()
		logrus.WithField("event", e.Type.String()).Debug("ignoring event from previous utterance")
		return
	}

	switch e.Type {
	case tts.EventStart, tts.EventResume:
		c.status = StatusPlaying
	case tts.EventPause:
		c.status = StatusPaused
	case tts.EventEnd:
		c.status = StatusStopped
		c.utterance = nil
	case tts.EventError:
		logrus.WithError(e.Err).Error("speech playback error")
		c.status = StatusStopped
		c.utterance = nil
		c.err = ErrPlayback
		err = ErrPlayback
	}
	c.mu.Unlock()

	c.notify(err)
}

func (c *Controller) notify(err error) {
	c.mu.Lock()
	status := c.status
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(status, err)
	}
}
