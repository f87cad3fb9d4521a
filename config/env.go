package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
)

const envPrefix = "CROPREC_"

// LoadDotEnv loads KEY=value pairs from files into the process environment
// without overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from CROPREC_* variables looked up through
// getenv. Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs error
	lookup := func(key string) (string, bool) {
		v := strings.TrimSpace(getenv(envPrefix + key))
		return v, v != ""
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("HTTP_PORT"); ok {
		port, err := cast.ToIntE(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%sHTTP_PORT: %w", envPrefix, err))
		} else {
			c.HTTP.Port = port
		}
	}
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FILE", &c.Log.File)
	setString("DATABASE_PATH", &c.Database.Path)
	setString("MODEL_PATH", &c.Model.Path)
	setString("MANIFEST_PATH", &c.Model.ManifestPath)
	setString("DATASET", &c.Training.Dataset)
	setString("TRANSLATION_URL", &c.Translation.BaseURL)
	if v, ok := lookup("TRANSLATION_ENABLED"); ok {
		enabled, err := cast.ToBoolE(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%sTRANSLATION_ENABLED: %w", envPrefix, err))
		} else {
			c.Translation.Enabled = enabled
		}
	}
	return errs
}
