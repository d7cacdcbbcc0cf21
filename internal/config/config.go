// Package config resolves runtime settings from defaults, an optional TOML
// file and TODOLIST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sandeepkv93/todolist/internal/query"
	"github.com/sandeepkv93/todolist/internal/storage"
)

const (
	DefaultConfigFileName = "todolist.toml"
	DefaultStoragePath    = ".todolist"
	DefaultLogFile        = "todolist.log"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type RuntimeConfig struct {
	StorageBackend         string `toml:"storage_backend"`
	StoragePath            string `toml:"storage_path"`
	StorageKey             string `toml:"storage_key"`
	RefreshIntervalSeconds int    `toml:"refresh_interval_seconds"`
	LogFile                string `toml:"log_file"`
	LogLevel               string `toml:"log_level"`
	DefaultFilter          string `toml:"default_filter"`
	DefaultSort            string `toml:"default_sort"`
	Theme                  string `toml:"theme"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StorageBackend:         string(storage.BackendFile),
		StoragePath:            DefaultStoragePath,
		StorageKey:             storage.DefaultKey,
		RefreshIntervalSeconds: 60,
		LogFile:                DefaultLogFile,
		LogLevel:               "info",
		DefaultFilter:          string(query.FilterAll),
		DefaultSort:            string(query.SortNewest),
		Theme:                  "dark",
	}
}

// LoadFile overlays the TOML file at path onto base. A missing file leaves
// base untouched.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores cfg as TOML at path.
func Write(path string, cfg RuntimeConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOLIST_STORAGE_BACKEND"); ok {
		cfg.StorageBackend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOLIST_STORAGE_PATH"); ok {
		cfg.StoragePath = v
	}
	if v, ok := getEnvString("TODOLIST_STORAGE_KEY"); ok {
		cfg.StorageKey = v
	}
	if v, ok := getEnvInt("TODOLIST_REFRESH_SECONDS"); ok && v >= 0 {
		cfg.RefreshIntervalSeconds = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOLIST_DEFAULT_FILTER"); ok {
		cfg.DefaultFilter = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOLIST_DEFAULT_SORT"); ok {
		cfg.DefaultSort = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOLIST_THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
	return cfg
}

// Load resolves the full configuration. The file comes from TODOLIST_CONFIG
// when set, otherwise DefaultConfigFileName in the working directory.
func Load() (RuntimeConfig, error) {
	path := DefaultConfigFileName
	if v, ok := getEnvString("TODOLIST_CONFIG"); ok {
		path = v
	}
	cfg, err := LoadFile(path, DefaultRuntimeConfig())
	if err != nil {
		return cfg, err
	}
	cfg = RuntimeConfigFromEnv(cfg)
	return cfg, cfg.Validate()
}

func (c RuntimeConfig) Validate() error {
	if _, err := storage.ParseBackend(c.StorageBackend); err != nil {
		return fmt.Errorf("%w: storage_backend: %w", ErrInvalidConfig, err)
	}
	if !query.Filter(c.DefaultFilter).IsValid() {
		return fmt.Errorf("%w: default_filter %q", ErrInvalidConfig, c.DefaultFilter)
	}
	if !query.Sort(c.DefaultSort).IsValid() {
		return fmt.Errorf("%w: default_sort %q", ErrInvalidConfig, c.DefaultSort)
	}
	if c.RefreshIntervalSeconds < 0 {
		return fmt.Errorf("%w: refresh_interval_seconds %d", ErrInvalidConfig, c.RefreshIntervalSeconds)
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalidConfig, c.Theme)
	}
	return nil
}

// Backend is empty when StorageBackend does not name a known backend.
func (c RuntimeConfig) Backend() storage.Backend {
	b, _ := storage.ParseBackend(c.StorageBackend)
	return b
}

func (c RuntimeConfig) Filter() query.Filter { return query.Filter(c.DefaultFilter) }
func (c RuntimeConfig) Sort() query.Sort     { return query.Sort(c.DefaultSort) }

// RefreshInterval is zero when periodic refresh is disabled.
func (c RuntimeConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
