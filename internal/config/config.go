package config

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/marcus/sortable/internal/models"
	"github.com/marcus/sortable/pkg/reorder"
	"gopkg.in/yaml.v3"
)

const configFile = ".sortable/config.yaml"
const lockFile = ".sortable/config.yaml.lock"

// Defaults for the terminal list. Row height and insets are in lines.
const (
	DefaultRowHeight      = 2
	DefaultLongPress      = 500 * time.Millisecond
	DefaultSettleDuration = 350 * time.Millisecond
	DefaultFrameInterval  = 16 * time.Millisecond
	DefaultMoveTolerance  = 0
	DefaultEdgeInset      = 2
)

// Default returns a config with every field set
func Default() *models.Config {
	return &models.Config{
		RowHeight:      DefaultRowHeight,
		LongPress:      DefaultLongPress,
		SettleDuration: DefaultSettleDuration,
		FrameInterval:  DefaultFrameInterval,
		MoveTolerance:  DefaultMoveTolerance,
		EdgeInset:      DefaultEdgeInset,
		Log:            models.LogConfig{Level: "info", Format: "text"},
	}
}

// Path returns the config file location under baseDir
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk. A missing file yields defaults; zero
// fields in an existing file are filled from defaults.
func Load(baseDir string) (*models.Config, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *models.Config) {
	d := Default()
	if cfg.RowHeight == 0 {
		cfg.RowHeight = d.RowHeight
	}
	if cfg.LongPress == 0 {
		cfg.LongPress = d.LongPress
	}
	if cfg.SettleDuration == 0 {
		cfg.SettleDuration = d.SettleDuration
	}
	if cfg.FrameInterval == 0 {
		cfg.FrameInterval = d.FrameInterval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
}

// Validate rejects settings the list cannot run with
func Validate(cfg *models.Config) error {
	if cfg.RowHeight < 1 {
		return fmt.Errorf("row_height must be at least 1, got %d", cfg.RowHeight)
	}
	if cfg.FrameInterval < time.Millisecond {
		return fmt.Errorf("frame_interval too small: %s", cfg.FrameInterval)
	}
	if cfg.MoveTolerance < 0 || cfg.EdgeInset < 0 {
		return fmt.Errorf("move_tolerance and edge_inset must not be negative")
	}
	return ToEngine(cfg).Validate()
}

// ToEngine converts terminal settings into reorder engine units (lines)
func ToEngine(cfg *models.Config) reorder.Config {
	ec := reorder.DefaultConfig()
	ec.RowHeight = float64(cfg.RowHeight)
	ec.LongPress = cfg.LongPress
	ec.SettleDuration = cfg.SettleDuration
	ec.MoveTolerance = float64(cfg.MoveTolerance)
	ec.EdgeInset = float64(cfg.EdgeInset)
	return ec
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := Path(baseDir)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// Update loads, mutates and saves the config under an exclusive lock
func Update(baseDir string, fn func(*models.Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		if err := Validate(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// withConfigLock serializes access to config.yaml using flock
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// SetBinding records a key override, "context:key" -> command. An empty
// command removes the override.
func SetBinding(baseDir, contextKey, command string) error {
	return Update(baseDir, func(cfg *models.Config) error {
		if command == "" {
			delete(cfg.Bindings, contextKey)
			if len(cfg.Bindings) == 0 {
				cfg.Bindings = nil
			}
			return nil
		}
		if cfg.Bindings == nil {
			cfg.Bindings = make(map[string]string)
		}
		cfg.Bindings[contextKey] = command
		return nil
	})
}

// SetItemsFile remembers the items file opened by default
func SetItemsFile(baseDir, path string) error {
	return Update(baseDir, func(cfg *models.Config) error {
		cfg.ItemsFile = path
		return nil
	})
}
