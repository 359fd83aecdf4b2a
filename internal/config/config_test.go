package config

import (
	"image/color/palette"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/menta2k/smart-cropper/pkg/cropper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if cfg.Cropper.Steps != cropper.DefaultSteps {
		t.Errorf("Expected %d steps, got %d", cropper.DefaultSteps, cfg.Cropper.Steps)
	}
	if cfg.Output.Quality != 90 {
		t.Errorf("Expected quality 90, got %d", cfg.Output.Quality)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Cropper.Steps = 4
	cfg.Cropper.VerticalTrim = "legacy"
	cfg.Output.Suffix = "_thumb"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Cropper.Steps != 4 || loaded.Cropper.VerticalTrim != "legacy" || loaded.Output.Suffix != "_thumb" {
		t.Errorf("Loaded config does not match saved: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"cropper": {"steps": 5}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Cropper.Steps != 5 {
		t.Errorf("Expected 5 steps, got %d", cfg.Cropper.Steps)
	}
	if cfg.Output.Quality != 90 || cfg.Analyzer.MinImageSize != 16 {
		t.Errorf("Defaults were not preserved: %+v", cfg)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"steps", func(c *Config) { c.Cropper.Steps = 0 }, "cropper.steps"},
		{"vertical", func(c *Config) { c.Cropper.VerticalTrim = "sideways" }, "cropper.vertical_trim"},
		{"palette", func(c *Config) { c.Cropper.Palette = "sepia" }, "cropper.palette"},
		{"smoothing", func(c *Config) { c.Cropper.Smoothing = 51 }, "cropper.smoothing"},
		{"min size", func(c *Config) { c.Analyzer.MinImageSize = 0 }, "analyzer.min_image_size"},
		{"formats", func(c *Config) { c.Analyzer.SupportedFormats = nil }, "analyzer.supported_formats"},
		{"format", func(c *Config) { c.Output.DefaultFormat = "gif" }, "output.default_format"},
		{"quality", func(c *Config) { c.Output.Quality = 101 }, "output.quality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCropConfig(t *testing.T) {
	cfg := Default()
	cfg.Cropper.Steps = 7
	cfg.Cropper.VerticalTrim = "legacy"
	cfg.Cropper.Palette = "websafe"
	cfg.Cropper.Dither = true
	cfg.Cropper.Smoothing = 1.5
	cfg.Cropper.AllowUpscaling = true

	cc, err := cfg.CropConfig()
	if err != nil {
		t.Fatalf("CropConfig failed: %v", err)
	}
	if cc.Steps != 7 || cc.VerticalTrim != cropper.TrimLegacy || !cc.AllowUpscaling {
		t.Errorf("Unexpected crop config: %+v", cc)
	}
	if len(cc.Quantize.Palette) != len(palette.WebSafe) || !cc.Quantize.Dither || cc.Quantize.Smoothing != 1.5 {
		t.Errorf("Unexpected quantize options: %+v", cc.Quantize)
	}

	cfg.Cropper.Palette = "sepia"
	if _, err := cfg.CropConfig(); err == nil {
		t.Error("Expected error for unknown palette")
	}
}

func TestAnalyzerConfig(t *testing.T) {
	cfg := Default()
	cfg.Analyzer.MinImageSize = 64

	ac := cfg.AnalyzerConfig()
	if ac.MinImageSize != 64 || len(ac.SupportedFormats) != len(cfg.Analyzer.SupportedFormats) {
		t.Errorf("Unexpected analyzer config: %+v", ac)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("Unexpected config path: %s", path)
	}
}
