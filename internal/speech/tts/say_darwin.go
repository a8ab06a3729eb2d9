//go:build darwin

package tts

import (
	"fmt"
	"os/exec"
)

// newSayEngine creates an engine on top of the built-in macOS say command
func newSayEngine(config Config) (Engine, error) {
	sayPath, err := exec.LookPath("say")
	if err != nil {
		return nil, fmt.Errorf("say not found: %w", err)
	}

	if config.Voice == "default" {
		config.Voice = ""
	}

	return &processEngine{
		name:       "say",
		binary:     sayPath,
		build:      sayArgs,
		listVoices: sayVoices,
		config:     config,
	}, nil
}
