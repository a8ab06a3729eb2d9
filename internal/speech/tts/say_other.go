//go:build !darwin

package tts

import "errors"

func newSayEngine(config Config) (Engine, error) {
	return nil, errors.New("say engine only supports macOS")
}
