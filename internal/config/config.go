// Package config resolves cppscore settings from defaults, a YAML file,
// CPPSCORE_* environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dshills/cppscore/internal/cppstd"
)

// Config represents the cppscore configuration.
type Config struct {
	Std       string `yaml:"std"`
	Compiler  string `yaml:"compiler"`
	Format    string `yaml:"format"`
	FailBelow int    `yaml:"failBelow"`
	RulesFile string `yaml:"rulesFile,omitempty"`
	Server    Server `yaml:"server"`
}

// Server configures the HTTP adapter.
type Server struct {
	Addr        string `yaml:"addr"`
	StaticDir   string `yaml:"staticDir,omitempty"`
	AllowOrigin string `yaml:"allowOrigin"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Std:      cppstd.Default.String(),
		Compiler: string(cppstd.DefaultCompiler),
		Format:   "text",
		Server: Server{
			Addr:        ":5000",
			AllowOrigin: "*",
		},
	}
}

// Dir returns the platform-appropriate config directory for cppscore.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cppscore"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "cppscore"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "cppscore"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "cppscore"), nil
	default:
		return filepath.Join(home, ".config", "cppscore"), nil
	}
}

// Path returns the full path to the default config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile reads a config file. A missing file yields a zero Config and no error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config.LoadFile: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config.LoadFile: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// An empty path selects the default config file location. Overrides come from
// CLI flags; only explicitly set flags should be present.
func Load(path string, overrides map[string]string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	fileCfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the engine cannot accept.
func (c Config) Validate() error {
	if _, err := cppstd.ParseVersion(c.Std); err != nil {
		return fmt.Errorf("config: std: %w", err)
	}
	switch c.Format {
	case "text", "json", "md":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if c.FailBelow < 0 || c.FailBelow > 100 {
		return fmt.Errorf("config: failBelow must be within 0..100, got %d", c.FailBelow)
	}
	return nil
}

func mergeFile(dst *Config, src Config) {
	if src.Std != "" {
		dst.Std = src.Std
	}
	if src.Compiler != "" {
		dst.Compiler = src.Compiler
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailBelow > 0 {
		dst.FailBelow = src.FailBelow
	}
	if src.RulesFile != "" {
		dst.RulesFile = src.RulesFile
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
	if src.Server.StaticDir != "" {
		dst.Server.StaticDir = src.Server.StaticDir
	}
	if src.Server.AllowOrigin != "" {
		dst.Server.AllowOrigin = src.Server.AllowOrigin
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("CPPSCORE_STD"); v != "" {
		cfg.Std = v
	}
	if v := os.Getenv("CPPSCORE_COMPILER"); v != "" {
		cfg.Compiler = v
	}
	if v := os.Getenv("CPPSCORE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CPPSCORE_FAIL_BELOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CPPSCORE_FAIL_BELOW: %w", err)
		}
		cfg.FailBelow = n
	}
	if v := os.Getenv("CPPSCORE_RULES"); v != "" {
		cfg.RulesFile = v
	}
	if v := os.Getenv("CPPSCORE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CPPSCORE_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("CPPSCORE_ALLOW_ORIGIN"); v != "" {
		cfg.Server.AllowOrigin = v
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "std":
		cfg.Std = value
	case "compiler":
		cfg.Compiler = value
	case "format":
		cfg.Format = value
	case "failBelow":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: failBelow: %w", err)
		}
		cfg.FailBelow = n
	case "rulesFile":
		cfg.RulesFile = value
	case "server.addr":
		cfg.Server.Addr = value
	case "server.staticDir":
		cfg.Server.StaticDir = value
	case "server.allowOrigin":
		cfg.Server.AllowOrigin = value
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}
