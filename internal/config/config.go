// Package config resolves command line settings from an optional YAML file
// and flags. Flags given explicitly win over the file.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI settings.
type Config struct {
	// Source is a file path or http(s) URL. Empty selects the bundled survey.
	Source   string        `yaml:"source"`
	Renderer string        `yaml:"renderer"`
	Output   string        `yaml:"output"`
	Format   string        `yaml:"format"`
	Theme    string        `yaml:"theme"`
	Variant  string        `yaml:"variant"`
	Preset   string        `yaml:"preset"`
	NoColor  bool          `yaml:"noColor"`
	Timeout  time.Duration `yaml:"timeout"`
	Debug    bool          `yaml:"debug"`
	Serve    bool          `yaml:"serve"`
	Addr     string        `yaml:"addr"`
}

// Default returns the settings used when neither file nor flags set a value.
func Default() Config {
	return Config{
		Renderer: "tui",
		Format:   "json",
		Timeout:  10 * time.Second,
		Addr:     "127.0.0.1:8080",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ParseFlags registers the CLI flags on fs, parses args, loads the file named
// by -config and applies every flag that was set explicitly.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var (
		path  string
		flags = Default()
	)
	fs.StringVar(&path, "config", "", "YAML config file")
	fs.StringVar(&flags.Source, "source", "", "survey document path or URL (bundled survey if empty)")
	fs.StringVar(&flags.Renderer, "renderer", flags.Renderer, "renderer to use (tui, html)")
	fs.StringVar(&flags.Output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&flags.Format, "format", flags.Format, "tui output format (json, form, pretty)")
	fs.StringVar(&flags.Theme, "theme", "", "theme name")
	fs.StringVar(&flags.Variant, "variant", "", "theme variant")
	fs.StringVar(&flags.Preset, "preset", "", "JSON or YAML preset applied to the survey")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable terminal colours")
	fs.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "timeout for remote survey documents")
	fs.BoolVar(&flags.Debug, "debug", false, "log at DEBUG level")
	fs.BoolVar(&flags.Serve, "serve", false, "serve the survey over HTTP")
	fs.StringVar(&flags.Addr, "addr", flags.Addr, "listen address used with -serve")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = flags.Source
		case "renderer":
			cfg.Renderer = flags.Renderer
		case "output":
			cfg.Output = flags.Output
		case "format":
			cfg.Format = flags.Format
		case "theme":
			cfg.Theme = flags.Theme
		case "variant":
			cfg.Variant = flags.Variant
		case "preset":
			cfg.Preset = flags.Preset
		case "no-color":
			cfg.NoColor = flags.NoColor
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "debug":
			cfg.Debug = flags.Debug
		case "serve":
			cfg.Serve = flags.Serve
		case "addr":
			cfg.Addr = flags.Addr
		}
	})

	if cfg.Serve {
		cfg.Renderer = "html"
	}
	return cfg, nil
}
