// Package config loads the propmigrate command line configuration from TOML.
//
//	store_dir = "/var/lib/graph/db"
//	version   = "v0.9.9"
//	mmap      = true
//
//	[target]
//	dir = "/var/lib/graph/migrated"
//
//	[log]
//	level = "debug"
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cqkv/propmigrate/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	StoreDir string `toml:"store_dir"`
	Version  string `toml:"version"`
	MMap     bool   `toml:"mmap"`

	Target TargetConfig `toml:"target"`
	Log    LogConfig    `toml:"log"`
}

type TargetConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

func Default() *Config {
	return &Config{
		Version: model.LegacyVersion,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults, unknown keys are an error
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StoreDir == "" {
		return errors.Wrap(ErrInvalidConfig, "store_dir is required")
	}
	if c.Version == "" {
		return errors.Wrap(ErrInvalidConfig, "version is required")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log format %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the logger described by the log section
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}
	logger := logrus.New()
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}
