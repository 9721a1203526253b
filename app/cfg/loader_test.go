package cfg

import (
	"os"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected config, got nil")
	}

	if cfg.PageSize != 10 {
		t.Errorf("Expected default page size 10, got %d", cfg.PageSize)
	}
	if cfg.TrendingWindowDays != 7 {
		t.Errorf("Expected default trending window 7 days, got %d", cfg.TrendingWindowDays)
	}
	if cfg.ExcerptLength != 100 {
		t.Errorf("Expected default excerpt length 100, got %d", cfg.ExcerptLength)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port '8080', got '%s'", cfg.Port)
	}
}

func TestGetPanicsWithoutLoad(t *testing.T) {
	old := globalCfg
	globalCfg = nil
	defer func() {
		globalCfg = old
		if r := recover(); r == nil {
			t.Error("Expected Get to panic when configuration is not loaded")
		}
	}()

	Get()
}
