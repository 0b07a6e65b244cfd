package config

import (
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// DefaultFilePath is probed when no config file is named explicitly.
const DefaultFilePath = "folio.yaml"

const envPrefix = "FOLIO_"

// Config holds tool-wide settings. Values come from defaults, then an
// optional YAML file, then FOLIO_* environment variables, in that order.
type Config struct {
	// Format is the default output format when a command does not name one.
	Format string `koanf:"format" default:"text"`
	// TrimLeadingLines drops the first N lines of every extracted chapter.
	TrimLeadingLines int `koanf:"trim_leading_lines" default:"0"`
	// Title overrides the manuscript title detected from the input.
	Title string `koanf:"title"`
}

// Load builds the configuration. filePath may be empty, in which case
// folio.yaml is used when present and skipped when not.
func Load(filePath string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	explicit := filePath != ""
	if !explicit {
		filePath = DefaultFilePath
	}
	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "loading config file %s", filePath)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	return cfg, nil
}
