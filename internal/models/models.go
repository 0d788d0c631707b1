package models

import (
	"time"
)

// Item is one entry of the reorderable list
type Item struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Checked bool   `json:"checked" yaml:"checked"`
	Order   int    `json:"order" yaml:"order"`
}

// LogConfig selects where and how much the TUI logs
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text or json
	File   string `yaml:"file,omitempty"`   // empty = discard
}

// Config holds user settings, stored in .sortable/config.yaml
type Config struct {
	RowHeight      int               `yaml:"row_height"`      // lines per row
	LongPress      time.Duration     `yaml:"long_press"`      // hold before a row arms
	SettleDuration time.Duration     `yaml:"settle_duration"` // row settle animation
	FrameInterval  time.Duration     `yaml:"frame_interval"`  // animation frame period
	MoveTolerance  int               `yaml:"move_tolerance"`  // cells of movement allowed while holding
	EdgeInset      int               `yaml:"edge_inset"`      // auto-scroll edge band in lines
	ItemsFile      string            `yaml:"items_file,omitempty"`
	Log            LogConfig         `yaml:"log,omitempty"`
	Bindings       map[string]string `yaml:"bindings,omitempty"` // "context:key" -> command
}
