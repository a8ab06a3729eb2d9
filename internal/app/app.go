// Package app assembles the briefing stack from configuration.
package app

import (
	"context"
	"fmt"

	"briefcast/internal/briefing"
	"briefcast/internal/config"
	"briefcast/internal/share"
	"briefcast/internal/speech/playback"
	"briefcast/internal/speech/tts"
	"briefcast/internal/summary"
	"briefcast/internal/summary/gemini"
	"briefcast/internal/summary/remote"

	"github.com/sirupsen/logrus"
)

// NewSummarizer returns the proxy client, or with direct set a Gemini client
// using the local API key.
func NewSummarizer(ctx context.Context, cfg *config.Config, direct bool) (summary.Summarizer, error) {
	if !direct {
		return remote.NewClient(cfg.Client.Endpoint, cfg.Client.Timeout), nil
	}

	s, err := gemini.New(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
	if err != nil {
		return nil, fmt.Errorf("direct mode: %w", err)
	}
	return s, nil
}

// NewEngine builds the configured speech engine. A nil engine with a nil
// error means speech is not supported here.
func NewEngine(cfg *config.Config) (tts.Engine, error) {
	engine, err := tts.NewEngine(tts.Config{
		Type:            cfg.TTS.Type,
		Volume:          cfg.TTS.Volume,
		Voice:           cfg.TTS.Voice,
		CredentialsFile: cfg.TTS.Google.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}

	if v := cfg.TTS.Voice; v != "" && v != "default" {
		if err := engine.SetVoice(v); err != nil {
			logrus.WithError(err).WithField("voice", v).Warn("keeping default voice")
		}
	}
	return engine, nil
}

// NewPlayer wraps the configured engine. Engine failures leave the player
// unsupported rather than failing the command.
func NewPlayer(cfg *config.Config) *playback.Controller {
	engine, err := NewEngine(cfg)
	if err != nil {
		logrus.WithError(err).WithField("type", cfg.TTS.Type).Warn("speech disabled")
		return playback.New(nil)
	}
	return playback.New(engine)
}

// NewBriefing wires summarizer, player and share targets together.
func NewBriefing(cfg *config.Config, s summary.Summarizer, p briefing.Player) *briefing.Briefing {
	opts := []briefing.Option{
		briefing.WithShareResetDelay(cfg.Share.ResetDelay),
	}

	if cmd := share.NewCommand(cfg.Share.Command); cmd != nil {
		opts = append(opts, briefing.WithSharer(cmd))
	}

	clip := share.NewClipboard()
	if clip.Available() {
		opts = append(opts, briefing.WithClipboard(clip))
	} else {
		logrus.Debug("no clipboard utility found")
	}

	return briefing.New(s, p, opts...)
}

// Build returns a ready briefing for the given mode.
func Build(ctx context.Context, cfg *config.Config, direct bool) (*briefing.Briefing, error) {
	s, err := NewSummarizer(ctx, cfg, direct)
	if err != nil {
		return nil, err
	}
	return NewBriefing(cfg, s, NewPlayer(cfg)), nil
}
