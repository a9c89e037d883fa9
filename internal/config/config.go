// Package config loads moodscope configuration from YAML files and
// environment variables using Viper.
//
// Config file search order:
//  1. Path given with --config
//  2. ./config/config.yaml
//  3. ~/.moodscope/config.yaml
//  4. /etc/moodscope/config.yaml
//
// Environment variables override file values with the prefix MOODSCOPE_,
// e.g. MOODSCOPE_SERVER_PORT=9090.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tsawler/moodscope"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"  yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"          yaml:"host"`
	Port         int           `mapstructure:"port"          yaml:"port"`
	CORSOrigins  []string      `mapstructure:"cors_origins"  yaml:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	MaxUploadMB  int           `mapstructure:"max_upload_mb" yaml:"max_upload_mb"` // text plus optional image
}

// AnalysisConfig holds scoring settings.
type AnalysisConfig struct {
	WeightingMode   string   `mapstructure:"weighting_mode"   yaml:"weighting_mode"` // "weighted" or "uniform"
	Threshold       float64  `mapstructure:"threshold"        yaml:"threshold"`
	MaxSecondary    int      `mapstructure:"max_secondary"    yaml:"max_secondary"`
	KeyPhraseLimit  int      `mapstructure:"key_phrase_limit" yaml:"key_phrase_limit"`
	MaxTextLength   int      `mapstructure:"max_text_length"  yaml:"max_text_length"` // runes, 0 = unlimited
	PolarityBackend string   `mapstructure:"polarity_backend" yaml:"polarity_backend"` // "vader" or "lexicon"
	LexiconPath     string   `mapstructure:"lexicon_path"     yaml:"lexicon_path"`
	StrictLexicon   bool     `mapstructure:"strict_lexicon"   yaml:"strict_lexicon"`
	Language        string   `mapstructure:"language"         yaml:"language"`
	ExtraStopWords  []string `mapstructure:"extra_stop_words" yaml:"extra_stop_words"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// Load reads configuration from the default search paths. A missing config
// file is not an error.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".moodscope"))
	v.AddConfigPath("/etc/moodscope")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MOODSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key, so environment overrides work without a
// config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_upload_mb", 10)

	def := moodscope.DefaultEmotionConfig()
	v.SetDefault("analysis.weighting_mode", def.Mode.String())
	v.SetDefault("analysis.threshold", def.Threshold)
	v.SetDefault("analysis.max_secondary", def.MaxSecondary)
	v.SetDefault("analysis.key_phrase_limit", moodscope.DefaultKeyPhraseLimit)
	v.SetDefault("analysis.max_text_length", 20000)
	v.SetDefault("analysis.polarity_backend", moodscope.BackendVader)
	v.SetDefault("analysis.lexicon_path", "")
	v.SetDefault("analysis.strict_lexicon", false)
	v.SetDefault("analysis.language", string(moodscope.English))
	v.SetDefault("analysis.extra_stop_words", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return moodscope.ConfigErrorf(nil, "server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return moodscope.ConfigErrorf(nil, "server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if _, err := moodscope.ParseWeightingMode(c.Analysis.WeightingMode); err != nil {
		return err
	}
	if c.Analysis.Threshold <= 0 || c.Analysis.Threshold > 1 {
		return moodscope.ConfigErrorf(nil, "analysis.threshold must be in (0, 1], got %v", c.Analysis.Threshold)
	}
	if c.Analysis.MaxSecondary < 0 {
		return moodscope.ConfigErrorf(nil, "analysis.max_secondary must not be negative, got %d", c.Analysis.MaxSecondary)
	}
	if c.Analysis.KeyPhraseLimit < 0 {
		return moodscope.ConfigErrorf(nil, "analysis.key_phrase_limit must not be negative, got %d", c.Analysis.KeyPhraseLimit)
	}
	if c.Analysis.MaxTextLength < 0 {
		return moodscope.ConfigErrorf(nil, "analysis.max_text_length must not be negative, got %d", c.Analysis.MaxTextLength)
	}
	switch c.Analysis.PolarityBackend {
	case moodscope.BackendVader, moodscope.BackendLexicon:
	default:
		return moodscope.ConfigErrorf(nil, "unknown polarity backend %q", c.Analysis.PolarityBackend)
	}
	if !moodscope.IsMultilingualSupported(moodscope.Language(c.Analysis.Language)) {
		return moodscope.ConfigErrorf(nil, "unsupported analysis.language %q", c.Analysis.Language)
	}
	if c.Analysis.StrictLexicon && c.Analysis.LexiconPath == "" {
		return moodscope.ConfigErrorf(nil, "analysis.strict_lexicon requires analysis.lexicon_path")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return moodscope.ConfigErrorf(nil, "metrics.path must start with /, got %q", c.Metrics.Path)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AnalyzerOptions translates the analysis section into analyzer options,
// loading the external lexicon when one is configured.
func (c *Config) AnalyzerOptions() ([]moodscope.Option, error) {
	a := c.Analysis

	mode, err := moodscope.ParseWeightingMode(a.WeightingMode)
	if err != nil {
		return nil, err
	}
	polarity, err := moodscope.NewPolarityScorer(a.PolarityBackend)
	if err != nil {
		return nil, err
	}

	opts := []moodscope.Option{
		moodscope.WithEmotionConfig(moodscope.EmotionConfig{
			Mode:         mode,
			Threshold:    a.Threshold,
			MaxSecondary: a.MaxSecondary,
		}),
		moodscope.WithPolarityScorer(polarity),
		moodscope.WithKeyPhraseLimit(a.KeyPhraseLimit),
		moodscope.WithMaxTextLength(a.MaxTextLength),
		moodscope.WithLanguage(moodscope.Language(a.Language)),
		moodscope.WithExtraStopWords(a.ExtraStopWords...),
	}

	if a.LexiconPath != "" {
		load := moodscope.LoadEmotionLexicon
		if a.StrictLexicon {
			load = moodscope.LoadEmotionLexiconStrict
		}
		lex, err := load(a.LexiconPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, moodscope.WithLexicon(lex))
	}

	return opts, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
