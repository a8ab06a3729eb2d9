package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Client ClientConfig `mapstructure:"client"`
	TTS    TTSConfig    `mapstructure:"tts"`
	Share  ShareConfig  `mapstructure:"share"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type ClientConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type TTSConfig struct {
	Type   string          `mapstructure:"type"`
	Voice  string          `mapstructure:"voice"`
	Volume float64         `mapstructure:"volume"`
	Google TTSGoogleConfig `mapstructure:"google"`
}

type TTSGoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type ShareConfig struct {
	ResetDelay time.Duration `mapstructure:"reset_delay"`
	// Command receives the summary on stdin; empty means copy only.
	Command string `mapstructure:"command"`
}

type FeedConfig struct {
	Default string `mapstructure:"default"`
	Count   int    `mapstructure:"count"`
	// CacheDir holds fetched headlines; empty disables caching.
	CacheDir    string        `mapstructure:"cache_dir"`
	CacheMaxAge time.Duration `mapstructure:"cache_max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default with viper.
func SetDefaults() {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.request_timeout", 60*time.Second)

	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")

	viper.SetDefault("client.endpoint", "http://localhost:8080/api/summarize")
	viper.SetDefault("client.timeout", 30*time.Second)

	viper.SetDefault("tts.type", "auto") // Auto-select best engine
	viper.SetDefault("tts.voice", "default")
	viper.SetDefault("tts.volume", 1.0)
	viper.SetDefault("tts.google.credentials_file", "")

	viper.SetDefault("share.reset_delay", 2*time.Second)
	viper.SetDefault("share.command", "")

	viper.SetDefault("feed.default", "st")
	viper.SetDefault("feed.count", 10)
	viper.SetDefault("feed.cache_dir", defaultCacheDir())
	viper.SetDefault("feed.cache_max_age", 15*time.Minute)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "briefcast")
}

// Init wires viper to the config file, .env and the environment.
// A missing config file is not an error.
func Init(configFile string) error {
	// .env is optional, like a deployment that injects API_KEY directly
	_ = godotenv.Load()

	SetDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("briefcast")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME/.briefcast")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("BRIEFCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("gemini.api_key", "API_KEY", "BRIEFCAST_GEMINI_API_KEY"); err != nil {
		return fmt.Errorf("bind API_KEY: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	logrus.WithField("file", viper.ConfigFileUsed()).Debug("config file loaded")
	return nil
}

// Load unmarshals the current viper state and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and fills zero values.
// The API key is not checked here; the server reports its absence per request.
func (c *Config) Validate() error {
	if c.Client.Endpoint == "" {
		return fmt.Errorf("client.endpoint is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.TTS.Volume < 0 || c.TTS.Volume > 2.0 {
		return fmt.Errorf("tts.volume must be between 0 and 2.0")
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 60 * time.Second
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = 30 * time.Second
	}
	if c.Share.ResetDelay <= 0 {
		c.Share.ResetDelay = 2 * time.Second
	}
	if c.Feed.Count <= 0 {
		c.Feed.Count = 10
	}
	if c.Feed.CacheMaxAge <= 0 {
		c.Feed.CacheMaxAge = 15 * time.Minute
	}
	if c.TTS.Type == "" {
		c.TTS.Type = "auto"
	}

	return nil
}

// ConfigureLogging applies log.level and log.format to the logrus standard logger.
func ConfigureLogging(cfg LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}
