package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

type EngineType string

const (
	EngineTypeMock          EngineType = "mock"
	EngineTypeESpeak        EngineType = "espeak"
	EngineTypeSay           EngineType = "say" // macOS only
	EngineTypeGoogleClassic EngineType = "googleclassic"
	EngineTypeAuto          EngineType = "auto" // Automatically choose best for platform
)

func (e EngineType) String() string {
	return string(e)
}

// NewEngine creates a new TTS engine based on the provided config.
// With type auto, any construction failure is reported as ErrUnsupported.
func NewEngine(config Config) (Engine, error) {
	if config.Type == "" || config.Type == EngineTypeAuto.String() {
		engine, err := newEngine(getBestEngineForPlatform(config), config)
		if err != nil {
			logrus.WithError(err).Warn("no speech engine available")
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return engine, nil
	}
	return newEngine(EngineType(config.Type), config)
}

func newEngine(t EngineType, config Config) (Engine, error) {
	switch t {
	case EngineTypeMock:
		return NewMockTTSEngine(config), nil

	case EngineTypeGoogleClassic:
		engine, err := newGoogleClassicTTSEngine(context.Background(), config)
		if err != nil {
			return nil, err
		}
		return engine, nil

	case EngineTypeESpeak:
		return newESpeakEngine(config)

	case EngineTypeSay:
		if runtime.GOOS != "darwin" {
			return nil, errors.New("say engine only supports macOS")
		}
		return newSayEngine(config)

	default:
		return nil, fmt.Errorf("unsupported TTS engine type: %s", t)
	}
}

// getBestEngineForPlatform returns the recommended engine for the current platform
func getBestEngineForPlatform(config Config) EngineType {
	if hasGoogleCredentials(config) {
		return EngineTypeGoogleClassic
	}

	switch runtime.GOOS {
	case "darwin":
		return EngineTypeSay
	default:
		return EngineTypeESpeak // Cross-platform fallback
	}
}

// GetAvailableEngines returns engines available on the current platform
func GetAvailableEngines(config Config) []EngineType {
	engines := []EngineType{EngineTypeMock, EngineTypeESpeak}

	if hasGoogleCredentials(config) {
		engines = append(engines, EngineTypeGoogleClassic)
	}
	if runtime.GOOS == "darwin" {
		engines = append(engines, EngineTypeSay)
	}

	return engines
}

// hasGoogleCredentials checks if Google Cloud credentials are available
func hasGoogleCredentials(config Config) bool {
	if config.CredentialsFile != "" {
		return true
	}
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
