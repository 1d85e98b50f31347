// Package config loads the application configuration. Values are layered:
// built-in defaults, then an optional YAML file, then PETITSPLATS_*
// environment variables. A .env file in the working directory is read
// into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/hammamikhairi/petitsplats/internal/logger"
	"github.com/hammamikhairi/petitsplats/internal/search"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PETITSPLATS_"

// PathEnvVar overrides the config file location.
const PathEnvVar = EnvPrefix + "CONFIG"

// DefaultPaths are searched, in order, when no path is given.
var DefaultPaths = []string{
	"petitsplats.yaml",
	"petitsplats.yml",
}

// Config is the full application configuration.
type Config struct {
	Search  SearchConfig  `koanf:"search"`
	Catalog CatalogConfig `koanf:"catalog"`
	Log     LogConfig     `koanf:"log"`
	UI      UIConfig      `koanf:"ui"`
}

// SearchConfig tunes text search and the debounce.
type SearchConfig struct {
	Debounce         time.Duration `koanf:"debounce" validate:"gt=0"`
	MinQueryLength   int           `koanf:"min_query_length" validate:"gte=1"`
	MatchMode        string        `koanf:"match_mode" validate:"oneof=word substring"`
	QuotedPhrases    bool          `koanf:"quoted_phrases"`
	InvariantEndings []string      `koanf:"invariant_endings" validate:"dive,required"`
}

// CatalogConfig locates the recipe data.
type CatalogConfig struct {
	// Path to a JSON catalog; empty uses the embedded one.
	Path string `koanf:"path"`
	// DisplayTotal is shown by the counter when no filter is active;
	// 0 shows the real catalog size.
	DisplayTotal int `koanf:"display_total" validate:"gte=0"`
}

// LogConfig selects log verbosity and output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=off normal verbose"`
	Format string `koanf:"format" validate:"oneof=console json"`
	File   string `koanf:"file"`
}

// UIConfig selects the front end.
type UIConfig struct {
	Mode     string `koanf:"mode" validate:"oneof=tui plain"`
	MaxCards int    `koanf:"max_cards" validate:"gte=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Debounce:         500 * time.Millisecond,
			MinQueryLength:   3,
			MatchMode:        search.ModeWord.String(),
			InvariantEndings: []string{},
		},
		Log: LogConfig{
			Level:  "normal",
			Format: "console",
		},
		UI: UIConfig{
			Mode:     "tui",
			MaxCards: 12,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the configuration. path names a YAML file; when empty the
// file named by PETITSPLATS_CONFIG or the first of DefaultPaths is used, if
// any exists.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps PETITSPLATS_SEARCH_MIN_QUERY_LENGTH to
// search.min_query_length. PETITSPLATS_CONFIG is not a setting.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return ""
	}
	return section + "." + rest
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LogLevel returns the configured logger level.
func (c *Config) LogLevel() logger.Level {
	return logger.ParseLevel(c.Log.Level)
}

// LogFormat returns the configured logger encoding.
func (c *Config) LogFormat() logger.Format {
	if c.Log.Format == "json" {
		return logger.FormatJSON
	}
	return logger.FormatConsole
}

// SearchOptions converts the search settings into searcher options.
func (c *Config) SearchOptions() ([]search.Option, error) {
	mode, err := search.ParseMode(c.Search.MatchMode)
	if err != nil {
		return nil, err
	}
	return []search.Option{
		search.WithMode(mode),
		search.WithQuotedPhrases(c.Search.QuotedPhrases),
		search.WithInvariantEndings(c.Search.InvariantEndings...),
	}, nil
}
