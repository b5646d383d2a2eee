package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	// DirName is the app directory created under the user home.
	DirName = ".riq"

	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"

	parallelThresholdDefault = 10000
)

var (
	// OutputFormats lists the supported output formats.
	OutputFormats = []string{FormatJSON, FormatYAML, FormatTable}

	ErrInvalidConfig = errors.New("invalid config")
)

// Config represents app config object.
type Config struct {
	Format            string `yaml:"format"`
	LogLevel          string `yaml:"log_level"`
	Workers           int    `yaml:"workers"`
	ParallelThreshold int    `yaml:"parallel_threshold"`
	Sort              bool   `yaml:"sort"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	return &Config{
		Format:            FormatJSON,
		LogLevel:          "info",
		Workers:           0,
		ParallelThreshold: parallelThresholdDefault,
		Sort:              false,
	}
}

// WorkerCount returns the number of scoring goroutines.
// Zero workers means one per CPU.
func (c *Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Validate checks the config values.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config required", ErrInvalidConfig)
	}

	if !isOutputFormat(c.Format) {
		return fmt.Errorf("%w: format %q not one of [%s]",
			ErrInvalidConfig, c.Format, strings.Join(OutputFormats, ", "))
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative: %d", ErrInvalidConfig, c.Workers)
	}

	if c.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel_threshold must not be negative: %d", ErrInvalidConfig, c.ParallelThreshold)
	}

	return nil
}

// NormalizeFormat maps format aliases to their canonical name.
func NormalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "yml" {
		return FormatYAML
	}
	return f
}

func isOutputFormat(f string) bool {
	for _, v := range OutputFormats {
		if v == f {
			return true
		}
	}
	return false
}

// FilePath returns the path of the config file in dirPath.
func FilePath(dirPath string) string {
	return filepath.Join(dirPath, configFileName)
}

// Save writes the config into dirPath.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := FilePath(dirPath)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file: %s: %w", path, err)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one.
// Fields missing from the file keep their default values.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating config dir", "path", dirPath)
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("failed to create dir: %s: %w", dirPath, err)
		}
	}

	path := FilePath(dirPath)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating default config", "path", path)
		if err := Save(dirPath, Default()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file: %s: %w", path, err)
	}
	c.Format = NormalizeFormat(c.Format)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return c, nil
}

// GetOrCreateHomeDir returns the app directory in the current user home.
// The created flag is set to true if the directory was created.
func GetOrCreateHomeDir() (path string, created bool, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, DirName)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir: %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
