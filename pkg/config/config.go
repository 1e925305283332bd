package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL  = "https://restcountries.com/v3.1"
	DefaultTimeout = 15 * time.Second
)

// Config holds the settings shared by the CLI and the TUI.
type Config struct {
	APIURL    string
	DBPath    string
	Timeout   time.Duration
	LogFile   string
	LogLevel  string
	ExportDir string
	Theme     string
}

type fileConfig struct {
	API struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Theme string `yaml:"theme"`
}

// Dir is the per-user directory holding the database, logs and config file.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".countries"
	}
	return filepath.Join(homeDir, ".countries")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	exportDir := "."
	if homeDir, err := os.UserHomeDir(); err == nil {
		exportDir = filepath.Join(homeDir, "Downloads")
	}
	return Config{
		APIURL:    DefaultAPIURL,
		DBPath:    filepath.Join(Dir(), "countries.db"),
		Timeout:   DefaultTimeout,
		LogFile:   filepath.Join(Dir(), "countries.log"),
		LogLevel:  "info",
		ExportDir: exportDir,
	}
}

// Load applies, in order, the defaults, the YAML file at path and COUNTRIES_*
// environment variables. A missing file is not an error unless it was asked for
// explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := cfg.applyYAML(raw); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyYAML(raw []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return err
	}

	if f.API.URL != "" {
		c.APIURL = f.API.URL
	}
	if f.API.Timeout != "" {
		timeout, err := time.ParseDuration(f.API.Timeout)
		if err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
		c.Timeout = timeout
	}
	if f.Storage.Path != "" {
		c.DBPath = expandHome(f.Storage.Path)
	}
	if f.Log.File != "" {
		c.LogFile = expandHome(f.Log.File)
	}
	if f.Log.Level != "" {
		c.LogLevel = f.Log.Level
	}
	if f.Export.Dir != "" {
		c.ExportDir = expandHome(f.Export.Dir)
	}
	if f.Theme != "" {
		c.Theme = f.Theme
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("COUNTRIES_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(getenv("COUNTRIES_DB")); v != "" {
		c.DBPath = expandHome(v)
	}
	if v := strings.TrimSpace(getenv("COUNTRIES_TIMEOUT")); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("COUNTRIES_TIMEOUT: %w", err)
		}
		c.Timeout = timeout
	}
	if v := strings.TrimSpace(getenv("COUNTRIES_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
