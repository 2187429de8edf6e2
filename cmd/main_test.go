package main

import (
	"testing"

	"github.com/okian/podium/internal/config"
)

func baseConfig() *config.Config {
	cfg := config.New()
	return cfg
}

func TestBuildSourcePrecedence(t *testing.T) {
	t.Run("no source configured", func(t *testing.T) {
		if src := buildSource(baseConfig()); src != nil {
			t.Fatalf("expected nil source, got %v", src.Name())
		}
	})

	t.Run("csv only", func(t *testing.T) {
		cfg := baseConfig()
		cfg.CSVURL = "https://sheets.example/export.csv"

		src := buildSource(cfg)
		if src == nil {
			t.Fatal("expected a source")
		}
		if src.Name() != "csv" {
			t.Fatalf("expected csv source, got %q", src.Name())
		}
	})

	t.Run("values only", func(t *testing.T) {
		cfg := baseConfig()
		cfg.SheetToken = "key"
		cfg.SheetID = "sheet-1"
		cfg.SheetRange = "A:C"

		src := buildSource(cfg)
		if src == nil {
			t.Fatal("expected a source")
		}
		if src.Name() != "values" {
			t.Fatalf("expected values source, got %q", src.Name())
		}
	})

	t.Run("csv wins over values", func(t *testing.T) {
		cfg := baseConfig()
		cfg.CSVURL = "https://sheets.example/export.csv"
		cfg.SheetToken = "key"
		cfg.SheetID = "sheet-1"
		cfg.SheetRange = "A:C"

		src := buildSource(cfg)
		if src == nil || src.Name() != "csv" {
			t.Fatal("expected csv to take precedence")
		}
	})
}
