package cmd

import (
	"testing"
	"time"

	"github.com/marcus/sortable/internal/config"
)

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		key     string
		val     string
		wantErr bool
	}{
		{"row_height", "3", false},
		{"row_height", "tall", true},
		{"long_press", "250ms", false},
		{"long_press", "soon", true},
		{"edge_inset", "1", false},
		{"items_file", "list.yaml", false},
		{"log.level", "debug", false},
		{"colour", "red", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			cfg := config.Default()
			err := setConfigValue(cfg, tt.key, tt.val)
			if (err != nil) != tt.wantErr {
				t.Errorf("setConfigValue() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetConfigValueApplies(t *testing.T) {
	cfg := config.Default()
	if err := setConfigValue(cfg, "settle_duration", "1s"); err != nil {
		t.Fatal(err)
	}
	if cfg.SettleDuration != time.Second {
		t.Errorf("SettleDuration = %s", cfg.SettleDuration)
	}
	if err := setConfigValue(cfg, "log.file", "/tmp/s.log"); err != nil {
		t.Fatal(err)
	}
	if cfg.Log.File != "/tmp/s.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
}

func TestIsValidConfigKey(t *testing.T) {
	if !isValidConfigKey("frame_interval") {
		t.Error("frame_interval should be valid")
	}
	if isValidConfigKey("sync.url") {
		t.Error("sync.url should be invalid")
	}
}

func TestApplyListFlags(t *testing.T) {
	cmd := runCmd
	if err := cmd.Flags().Set("items", "groceries.json"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("row-height", "3"); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = cmd.Flags().Set("items", "")
		_ = cmd.Flags().Set("row-height", "0")
	}()

	cfg := config.Default()
	if err := applyListFlags(cmd, cfg); err != nil {
		t.Fatalf("applyListFlags: %v", err)
	}
	if cfg.ItemsFile != "groceries.json" || cfg.RowHeight != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
}
