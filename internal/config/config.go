package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/menta2k/smart-cropper/pkg/analyzer"
	"github.com/menta2k/smart-cropper/pkg/cropper"
	"github.com/menta2k/smart-cropper/pkg/processing"
)

// Config holds the application configuration
type Config struct {
	Cropper  CropperConfig  `json:"cropper"`
	Analyzer AnalyzerConfig `json:"analyzer"`
	Output   OutputConfig   `json:"output"`
}

// CropperConfig holds configuration for entropy cropping
type CropperConfig struct {
	Steps          int     `json:"steps"`
	VerticalTrim   string  `json:"vertical_trim"`
	Palette        string  `json:"palette"`
	Dither         bool    `json:"dither"`
	Smoothing      float64 `json:"smoothing"`
	AllowUpscaling bool    `json:"allow_upscaling"`
}

// AnalyzerConfig holds configuration for image analysis
type AnalyzerConfig struct {
	SupportedFormats []string `json:"supported_formats"`
	MinImageSize     int      `json:"min_image_size"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	DefaultFormat string `json:"default_format"`
	OutputDir     string `json:"output_dir"`
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`
	Quality       int    `json:"quality"`
	Lossless      bool   `json:"lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Cropper: CropperConfig{
			Steps:          cropper.DefaultSteps,
			VerticalTrim:   cropper.TrimConverge.String(),
			Palette:        "plan9",
			Dither:         false,
			Smoothing:      0,
			AllowUpscaling: false,
		},
		Analyzer: AnalyzerConfig{
			SupportedFormats: []string{"jpg", "jpeg", "png", "webp", "gif", "bmp", "tif", "tiff"},
			MinImageSize:     16,
		},
		Output: OutputConfig{
			DefaultFormat: "jpg",
			OutputDir:     "./output",
			Prefix:        "",
			Suffix:        "_cropped",
			Quality:       90,
			Lossless:      false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Missing fields keep
// their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Cropper.Steps < 1 {
		return fmt.Errorf("cropper.steps must be positive")
	}

	if _, err := cropper.ParseTrimMode(c.Cropper.VerticalTrim); err != nil {
		return fmt.Errorf("cropper.vertical_trim: %w", err)
	}

	if _, err := processing.PaletteByName(c.Cropper.Palette); err != nil {
		return fmt.Errorf("cropper.palette: %w", err)
	}

	if c.Cropper.Smoothing < 0 || c.Cropper.Smoothing > 50 {
		return fmt.Errorf("cropper.smoothing must be between 0 and 50")
	}

	if c.Analyzer.MinImageSize < 1 {
		return fmt.Errorf("analyzer.min_image_size must be positive")
	}

	if len(c.Analyzer.SupportedFormats) == 0 {
		return fmt.Errorf("analyzer.supported_formats cannot be empty")
	}

	switch strings.ToLower(c.Output.DefaultFormat) {
	case "jpg", "jpeg", "png", "webp":
	default:
		return fmt.Errorf("output.default_format must be one of jpg, png or webp")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// CropConfig converts the cropper section into a cropper.CropConfig
func (c *Config) CropConfig() (cropper.CropConfig, error) {
	mode, err := cropper.ParseTrimMode(c.Cropper.VerticalTrim)
	if err != nil {
		return cropper.CropConfig{}, err
	}
	palette, err := processing.PaletteByName(c.Cropper.Palette)
	if err != nil {
		return cropper.CropConfig{}, err
	}

	return cropper.CropConfig{
		Steps:          c.Cropper.Steps,
		VerticalTrim:   mode,
		AllowUpscaling: c.Cropper.AllowUpscaling,
		Quantize: processing.QuantizeOptions{
			Palette:   palette,
			Dither:    c.Cropper.Dither,
			Smoothing: c.Cropper.Smoothing,
		},
	}, nil
}

// AnalyzerConfig converts the analyzer section into an analyzer.Config
func (c *Config) AnalyzerConfig() analyzer.Config {
	return analyzer.Config{
		SupportedFormats: c.Analyzer.SupportedFormats,
		MinImageSize:     c.Analyzer.MinImageSize,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "smart-cropper", "config.json")
}
