package tts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"
)

// argsBuilder turns an utterance into command arguments and the stdin text.
type argsBuilder func(u *Utterance, config Config) ([]string, io.Reader)

// processEngine speaks by running a command-line synthesizer, one process
// per utterance. Pause and resume suspend the process where the OS allows it.
type processEngine struct {
	name       string
	binary     string
	build      argsBuilder
	listVoices func(binary string) ([]string, error)

	config  Config
	current *processRun
	mutex   sync.RWMutex
}

type processRun struct {
	cmd       *exec.Cmd
	utterance *Utterance
	paused    bool
	cancelled bool
}

func (e *processEngine) Speak(u *Utterance) error {
	if err := validUtterance(u); err != nil {
		return err
	}

	e.mutex.Lock()
	if e.current != nil {
		e.mutex.Unlock()
		return ErrBusy
	}

	args, stdin := e.build(u, e.config)
	cmd := exec.Command(e.binary, args...)
	cmd.Stdin = stdin
	if err := cmd.Start(); err != nil {
		e.mutex.Unlock()
		return fmt.Errorf("failed to start %s: %w", e.name, err)
	}

	run := &processRun{cmd: cmd, utterance: u}
	e.current = run
	e.mutex.Unlock()

	u.Emit(EventStart, nil)
	go e.wait(run)

	return nil
}

func (e *processEngine) wait(run *processRun) {
	err := run.cmd.Wait()

	e.mutex.Lock()
	cancelled := run.cancelled
	if e.current == run {
		e.current = nil
	}
	e.mutex.Unlock()

	// Cancel already reported the end
	if cancelled {
		return
	}

	if err != nil {
		logrus.WithError(err).WithField("engine", e.name).Warn("speech process failed")
		run.utterance.Emit(EventError, fmt.Errorf("%s: %w", e.name, err))
		return
	}
	run.utterance.Emit(EventEnd, nil)
}

func (e *processEngine) Cancel() error {
	e.mutex.Lock()
	run := e.current
	if run == nil {
		e.mutex.Unlock()
		return nil
	}
	run.cancelled = true
	e.current = nil
	err := run.cmd.Process.Kill()
	e.mutex.Unlock()

	run.utterance.Emit(EventEnd, nil)
	// exited on its own between the last event and the kill
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop %s: %w", e.name, err)
	}
	return nil
}

func (e *processEngine) Pause() error {
	e.mutex.Lock()
	run := e.current
	if run == nil || run.paused {
		e.mutex.Unlock()
		return nil
	}
	if err := pauseProcess(run.cmd.Process); err != nil {
		e.mutex.Unlock()
		return err
	}
	run.paused = true
	e.mutex.Unlock()

	run.utterance.Emit(EventPause, nil)
	return nil
}

func (e *processEngine) Resume() error {
	e.mutex.Lock()
	run := e.current
	if run == nil || !run.paused {
		e.mutex.Unlock()
		return nil
	}
	if err := resumeProcess(run.cmd.Process); err != nil {
		e.mutex.Unlock()
		return err
	}
	run.paused = false
	e.mutex.Unlock()

	run.utterance.Emit(EventResume, nil)
	return nil
}

func (e *processEngine) IsSpeaking() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.current != nil
}

func (e *processEngine) SetVoice(voice string) error {
	if voice == "" || voice == "default" {
		e.mutex.Lock()
		e.config.Voice = ""
		e.mutex.Unlock()
		return nil
	}

	voices, err := e.GetAvailableVoices()
	if err != nil {
		return err
	}
	matched, err := MatchVoice(voice, voices)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	e.config.Voice = matched
	e.mutex.Unlock()
	return nil
}

func (e *processEngine) SetVolume(volume float64) error {
	if volume < 0 || volume > 2.0 {
		return fmt.Errorf("volume must be between 0 and 2.0")
	}

	e.mutex.Lock()
	e.config.Volume = volume
	e.mutex.Unlock()
	return nil
}

func (e *processEngine) GetAvailableVoices() ([]string, error) {
	return e.listVoices(e.binary)
}
