package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/handiism/release-fetcher/internal/format"
)

// Version is the program version, set at build time with
// -ldflags "-X github.com/handiism/release-fetcher/internal/config.Version=v1.2.0".
var Version = "dev"

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. GRF_OUTPUT_DIR.
const EnvPrefix = "GRF"

// Settings holds all configuration options.
type Settings struct {
	// Output
	OutputDir     string `mapstructure:"output_dir"`
	ListingFormat string `mapstructure:"listing_format"` // text, json

	// API and transfer
	APIBaseURL     string        `mapstructure:"api_base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	HeaderTimeout  time.Duration `mapstructure:"header_timeout"`
	ChunkSize      int           `mapstructure:"chunk_size"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:     ".",
		ListingFormat: string(format.ListingText),

		APIBaseURL:     "https://api.github.com",
		UserAgent:      "grf/" + Version,
		RequestTimeout: 30 * time.Second,
		HeaderTimeout:  60 * time.Second,
		ChunkSize:      1 << 20,

		Verbose: false,
	}
}

// Load reads settings from an optional config file and the environment.
//
// Values are layered as defaults, then the file at path (YAML, JSON or TOML,
// chosen by extension), then GRF_* environment variables. An empty path or a
// path that does not exist yields defaults plus environment. A file that
// exists but cannot be parsed is an error.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return settings, nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("output_dir", s.OutputDir)
	v.SetDefault("listing_format", s.ListingFormat)
	v.SetDefault("api_base_url", s.APIBaseURL)
	v.SetDefault("user_agent", s.UserAgent)
	v.SetDefault("request_timeout", s.RequestTimeout)
	v.SetDefault("header_timeout", s.HeaderTimeout)
	v.SetDefault("chunk_size", s.ChunkSize)
	v.SetDefault("verbose", s.Verbose)
}

// Validate checks settings for values the downloader cannot work with.
func (s *Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", s.ChunkSize)
	}
	if _, err := format.ParseListingFormat(s.ListingFormat); err != nil {
		return err
	}
	if s.APIBaseURL == "" {
		return errors.New("api_base_url must not be empty")
	}
	if u, err := url.Parse(s.APIBaseURL); err != nil || u.Host == "" {
		return fmt.Errorf("api_base_url %q is not an absolute URL", s.APIBaseURL)
	}
	if s.RequestTimeout < 0 || s.HeaderTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
