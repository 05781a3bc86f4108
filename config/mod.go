// Package config defines the configuration of the codec registry and reads it
// from a YAML file.
//
//	source:
//	  path: /opt/dicodec/plugins
//	  pattern: "*.so"
//	log:
//	  level: info
//	metrics:
//	  addr: 127.0.0.1:9100
//	  path: /metrics
//
// Every field is optional. An empty source path means the codecs compiled in
// the binary.
package config

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/discovery"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

const (
	defaultLevel = "info"
	defaultAddr  = "127.0.0.1:9100"
	defaultPath  = "/metrics"
)

// Config is the configuration of the application.
type Config struct {
	Source  discovery.Source `yaml:"source"`
	Log     Log              `yaml:"log"`
	Metrics Metrics          `yaml:"metrics"`
}

// Log is the logging section of the configuration.
type Log struct {
	Level string `yaml:"level"`
}

// Metrics is the section of the configuration for the HTTP server exposing
// the Prometheus metrics.
type Metrics struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Source: discovery.Source{Pattern: discovery.MatchAll},
		Log:    Log{Level: defaultLevel},
		Metrics: Metrics{
			Addr: defaultAddr,
			Path: defaultPath,
		},
	}
}

// Load reads the configuration file and fills the missing values with the
// defaults. An empty path returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, xerrors.Errorf("failed to read config: %v", err)
	}

	err = yaml.UnmarshalStrict(data, &cfg)
	if err != nil {
		return cfg, xerrors.Errorf("failed to parse config: %v", err)
	}

	cfg.fill()

	err = cfg.Validate()
	if err != nil {
		return cfg, xerrors.Errorf("invalid config: %v", err)
	}

	return cfg, nil
}

// Validate returns an error if a value of the configuration is invalid.
func (c Config) Validate() error {
	_, err := filepath.Match(c.Source.GetPattern(), "")
	if err != nil {
		return xerrors.Errorf("pattern '%s': %v", c.Source.Pattern, err)
	}

	_, err = c.Level()
	if err != nil {
		return err
	}

	return nil
}

// Level returns the log level of the configuration.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.NoLevel, xerrors.Errorf("log level: %v", err)
	}

	return level, nil
}

func (c *Config) fill() {
	def := Default()

	if c.Source.Pattern == "" {
		c.Source.Pattern = def.Source.Pattern
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	if c.Metrics.Addr == "" {
		c.Metrics.Addr = def.Metrics.Addr
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
}
