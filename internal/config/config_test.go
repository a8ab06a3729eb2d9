package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Server: ServerConfig{Addr: ":8080"},
				Client: ClientConfig{Endpoint: "http://localhost:8080/api/summarize"},
				TTS:    TTSConfig{Volume: 1.0},
			},
			wantErr: false,
		},
		{
			name: "missing endpoint",
			config: Config{
				Server: ServerConfig{Addr: ":8080"},
			},
			wantErr: true,
		},
		{
			name: "missing server addr",
			config: Config{
				Client: ClientConfig{Endpoint: "http://localhost:8080/api/summarize"},
			},
			wantErr: true,
		},
		{
			name: "volume out of range",
			config: Config{
				Server: ServerConfig{Addr: ":8080"},
				Client: ClientConfig{Endpoint: "http://localhost:8080/api/summarize"},
				TTS:    TTSConfig{Volume: 3},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{Addr: ":8080"},
		Client: ClientConfig{Endpoint: "http://localhost:8080/api/summarize"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Share.ResetDelay != 2*time.Second {
		t.Errorf("Share.ResetDelay = %v, want 2s", cfg.Share.ResetDelay)
	}
	if cfg.Client.Timeout != 30*time.Second {
		t.Errorf("Client.Timeout = %v, want 30s", cfg.Client.Timeout)
	}
	if cfg.Server.RequestTimeout != 60*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 60s", cfg.Server.RequestTimeout)
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.TTS.Type != "auto" {
		t.Errorf("TTS.Type = %q, want auto", cfg.TTS.Type)
	}
	if cfg.Feed.Count != 10 {
		t.Errorf("Feed.Count = %d, want 10", cfg.Feed.Count)
	}
}

func TestInitReadsFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("API_KEY", "secret-from-env")

	path := filepath.Join(t.TempDir(), "briefcast.yaml")
	content := `
server:
  addr: ":9090"
  request_timeout: 15s
client:
  endpoint: "http://example.test/api/summarize"
share:
  reset_delay: 500ms
tts:
  type: "mock"
  voice: "en-us"
log:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.RequestTimeout != 15*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 15s", cfg.Server.RequestTimeout)
	}
	if cfg.Share.ResetDelay != 500*time.Millisecond {
		t.Errorf("Share.ResetDelay = %v, want 500ms", cfg.Share.ResetDelay)
	}
	if cfg.TTS.Type != "mock" || cfg.TTS.Voice != "en-us" {
		t.Errorf("TTS = %+v", cfg.TTS)
	}
	if cfg.Gemini.APIKey != "secret-from-env" {
		t.Errorf("Gemini.APIKey = %q, want value of API_KEY", cfg.Gemini.APIKey)
	}
}

func TestInitInvalidFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := Init(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Init() should return error for nonexistent explicit file")
	}
}

func TestConfigureLogging(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
	}{
		{"text info", LogConfig{Level: "info", Format: "text"}, false},
		{"json debug", LogConfig{Level: "debug", Format: "json"}, false},
		{"bad level", LogConfig{Level: "loud", Format: "text"}, true},
		{"bad format", LogConfig{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConfigureLogging(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ConfigureLogging() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
