// Package config loads the YAML settings shared by the chart engine and
// the terminal host.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"plotview/internal/geom"
)

type Config struct {
	// PersistDebounce is the quiet period before a view write is issued.
	PersistDebounce time.Duration `yaml:"persist_debounce"`
	// FrameInterval is the display refresh period used to coalesce redraws.
	FrameInterval time.Duration `yaml:"frame_interval"`
	// IOTimeout bounds each view store call.
	IOTimeout time.Duration `yaml:"io_timeout"`

	DevicePixelRatio float64      `yaml:"device_pixel_ratio"`
	Margins          geom.Margins `yaml:"margins"`

	StateDir      string `yaml:"state_dir"`
	ViewCacheSize int    `yaml:"view_cache_size"`
}

func Default() Config {
	return Config{
		PersistDebounce:  400 * time.Millisecond,
		FrameInterval:    16 * time.Millisecond,
		IOTimeout:        2 * time.Second,
		DevicePixelRatio: 1,
		Margins:          geom.Margins{Top: 4, Right: 2, Bottom: 4, Left: 2},
		StateDir:         defaultStateDir(),
		ViewCacheSize:    64,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalize(), nil
}

// normalize puts out-of-range values back to their defaults.
func (c Config) normalize() Config {
	def := Default()
	if c.PersistDebounce <= 0 {
		c.PersistDebounce = def.PersistDebounce
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = def.FrameInterval
	}
	if c.IOTimeout <= 0 {
		c.IOTimeout = def.IOTimeout
	}
	if !(c.DevicePixelRatio > 0) {
		c.DevicePixelRatio = 1
	}
	if c.ViewCacheSize <= 0 {
		c.ViewCacheSize = def.ViewCacheSize
	}
	if c.StateDir == "" {
		c.StateDir = def.StateDir
	}
	return c
}

func defaultStateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "plotview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "plotview")
	}
	return filepath.Join(home, ".local", "state", "plotview")
}
