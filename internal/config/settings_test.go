package config

import "testing"

func TestApplyDefaultsBackfillsZeroValues(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	if cfg.Import.MaxRows != 50000 {
		t.Fatalf("MaxRows = %d, want 50000", cfg.Import.MaxRows)
	}
	if cfg.Import.FetchTimeout != 15000 {
		t.Fatalf("FetchTimeout = %d, want 15000", cfg.Import.FetchTimeout)
	}
	if cfg.Import.MaxFetchBytes != 10<<20 {
		t.Fatalf("MaxFetchBytes = %d, want %d", cfg.Import.MaxFetchBytes, 10<<20)
	}
	if cfg.Publish.Dir != "public/geo" {
		t.Fatalf("Publish.Dir = %q", cfg.Publish.Dir)
	}
	if cfg.Maintenance.StaleDraftHours != 24 {
		t.Fatalf("StaleDraftHours = %d, want 24", cfg.Maintenance.StaleDraftHours)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	var cfg Config
	cfg.Import.MaxRows = 100
	cfg.Publish.BaseURL = "https://geo.example.com"
	applyDefaults(&cfg)

	if cfg.Import.MaxRows != 100 {
		t.Fatalf("MaxRows = %d, want 100", cfg.Import.MaxRows)
	}
	if cfg.Publish.BaseURL != "https://geo.example.com" {
		t.Fatalf("BaseURL = %q", cfg.Publish.BaseURL)
	}
}

func TestEmbeddedDefaultsLoad(t *testing.T) {
	cfg := GetConfig()
	if cfg.Import.MaxRows == 0 {
		t.Fatal("embedded defaults should populate the initial config")
	}
}
