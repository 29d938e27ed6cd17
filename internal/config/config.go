package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the project root.
const FileName = "spendtrack.yaml"

// Config represents the top-level spendtrack.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Folders  FoldersConfig  `yaml:"folders"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite ledger.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// FoldersConfig names the upload and per-user data directories,
// relative to the project root unless absolute.
type FoldersConfig struct {
	Upload string `yaml:"upload"`
	Users  string `yaml:"users"`
}

// WatchConfig controls the background upload sweep.
type WatchConfig struct {
	Schedule string `yaml:"schedule"` // robfig/cron spec, e.g. "@every 30s"
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads spendtrack.yaml from the project root. Environment
// variables SPENDTRACK_DB and SPENDTRACK_UPLOAD override the file.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if v := os.Getenv("SPENDTRACK_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SPENDTRACK_UPLOAD"); v != "" {
		cfg.Folders.Upload = v
	}
	return &cfg, nil
}

// Save writes a Config to spendtrack.yaml under the project root.
func Save(root string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "spendtrack.db"},
		Folders: FoldersConfig{
			Upload: "Upload",
			Users:  "Users",
		},
		Watch: WatchConfig{Schedule: "@every 1m"},
		Log:   LogConfig{Level: "info", Pretty: true},
	}
}

// DatabasePath resolves the database path against the project root.
func (c *Config) DatabasePath(root string) string {
	return resolve(root, c.Database.Path)
}

// UploadDir resolves the upload folder against the project root.
func (c *Config) UploadDir(root string) string {
	return resolve(root, c.Folders.Upload)
}

// UsersDir resolves the users folder against the project root.
func (c *Config) UsersDir(root string) string {
	return resolve(root, c.Folders.Users)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
