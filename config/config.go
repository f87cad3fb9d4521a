package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"croprec/logging"
	"croprec/ml"
	"croprec/translate"
)

type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Log         logging.Config    `yaml:"log"`
	Database    DatabaseConfig    `yaml:"database"`
	Model       ModelConfig       `yaml:"model"`
	Training    TrainingConfig    `yaml:"training"`
	Translation TranslationConfig `yaml:"translation"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RatePerSecond   float64       `yaml:"rate_per_second"`
	RateBurst       int           `yaml:"rate_burst"`
}

type DatabaseConfig struct {
	// Empty disables the training log.
	Path string `yaml:"path"`
}

type ModelConfig struct {
	Path         string `yaml:"path"`
	ManifestPath string `yaml:"manifest_path"`
}

type TrainingConfig struct {
	Dataset       string          `yaml:"dataset"`
	TestRatio     float64         `yaml:"test_ratio"`
	SplitSeed     int64           `yaml:"split_seed"`
	Forest        ml.ForestParams `yaml:"forest"`
	WatchDebounce time.Duration   `yaml:"watch_debounce"`
}

type TranslationConfig struct {
	Enabled         bool          `yaml:"enabled"`
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	Budget          time.Duration `yaml:"budget"`
	CacheSize       int           `yaml:"cache_size"`
	RatePerSecond   float64       `yaml:"rate_per_second"`
	Burst           int           `yaml:"burst"`
	BreakerFailures uint32        `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

func Default() Config {
	opts := translate.DefaultOptions()
	return Config{
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			AllowedOrigins:  []string{"*"},
			RatePerSecond:   50,
			RateBurst:       100,
		},
		Log: logging.Config{Level: "info"},
		Model: ModelConfig{
			Path:         "model/crop_model.json",
			ManifestPath: "model/feature_names.json",
		},
		Training: TrainingConfig{
			Dataset:       "data/crop_data.csv",
			TestRatio:     0.2,
			SplitSeed:     42,
			Forest:        ml.DefaultForestParams(),
			WatchDebounce: 2 * time.Second,
		},
		Translation: TranslationConfig{
			Enabled:         true,
			BaseURL:         translate.DefaultGoogleURL,
			Timeout:         opts.Timeout,
			Budget:          5 * time.Second,
			CacheSize:       opts.CacheSize,
			RatePerSecond:   opts.RatePerSecond,
			Burst:           opts.Burst,
			BreakerFailures: opts.BreakerFailures,
			BreakerCooldown: opts.BreakerCooldown,
		},
	}
}

// Load reads path over the defaults, then applies CROPREC_* environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var err error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.Model.Path == "" || c.Model.ManifestPath == "" {
		err = multierr.Append(err, errors.New("model.path and model.manifest_path are required"))
	}
	if c.Model.Path != "" && c.Model.Path == c.Model.ManifestPath {
		err = multierr.Append(err, errors.New("model.path and model.manifest_path must differ"))
	}
	if c.Training.TestRatio <= 0 || c.Training.TestRatio >= 1 {
		err = multierr.Append(err, fmt.Errorf("training.test_ratio %v must be in (0, 1)", c.Training.TestRatio))
	}
	if c.Training.Forest.Trees <= 0 {
		err = multierr.Append(err, errors.New("training.forest.trees must be positive"))
	}
	if c.Training.Forest.MaxDepth <= 0 {
		err = multierr.Append(err, errors.New("training.forest.max_depth must be positive"))
	}
	if _, levelErr := logging.ParseLevel(c.Log.Level); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}
	if c.Translation.Enabled && c.Translation.BaseURL == "" {
		err = multierr.Append(err, errors.New("translation.base_url is required when translation is enabled"))
	}
	return err
}

func (t TranslationConfig) Options() translate.Options {
	return translate.Options{
		Timeout:         t.Timeout,
		CacheSize:       t.CacheSize,
		RatePerSecond:   t.RatePerSecond,
		Burst:           t.Burst,
		BreakerFailures: t.BreakerFailures,
		BreakerCooldown: t.BreakerCooldown,
	}
}
