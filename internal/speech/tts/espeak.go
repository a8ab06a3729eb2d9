// Cross-platform eSpeak implementation
package tts

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// newESpeakEngine creates a new eSpeak TTS engine
func newESpeakEngine(config Config) (Engine, error) {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}

	if err := exec.Command(espeakPath, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	if config.Voice == "default" {
		config.Voice = ""
	}

	return &processEngine{
		name:       "espeak",
		binary:     espeakPath,
		build:      espeakArgs,
		listVoices: espeakVoices,
		config:     config,
	}, nil
}

func findESpeakExecutable() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

// espeakArgs maps rate and pitch multipliers onto eSpeak's absolute scales:
// speed in words per minute (default 175), pitch 0-99 (default 50),
// amplitude 0-200 (default 100). Text is read from stdin.
func espeakArgs(u *Utterance, config Config) ([]string, io.Reader) {
	args := []string{}

	if config.Voice != "" {
		args = append(args, "-v", config.Voice)
	}

	speed := int(175 * rateOrDefault(u.Rate))
	args = append(args, "-s", strconv.Itoa(speed))

	pitch := clamp(int(50*rateOrDefault(u.Pitch)), 0, 99)
	args = append(args, "-p", strconv.Itoa(pitch))

	volume := 1.0
	if config.Volume > 0 {
		volume = config.Volume
	}
	args = append(args, "-a", strconv.Itoa(clamp(int(100*volume), 0, 200)))

	args = append(args, "--stdin")
	return args, strings.NewReader(u.Text)
}

func espeakVoices(espeakPath string) ([]string, error) {
	output, err := exec.Command(espeakPath, "--voices").Output()
	if err != nil {
		return nil, err
	}

	return parseESpeakVoices(string(output)), nil
}

func parseESpeakVoices(output string) []string {
	lines := strings.Split(output, "\n")
	voices := make([]string, 0)

	for i, line := range lines {
		// Skip header line
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		// Pty Language Age/Gender VoiceName File Other Languages
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			voices = append(voices, fields[3])
		}
	}

	return voices
}
