package analyzer

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/menta2k/smart-cropper/pkg/cropper"
	"github.com/menta2k/smart-cropper/pkg/entropy"
	"github.com/menta2k/smart-cropper/pkg/types"
)

// ImageAnalyzer reports how an image would be cropped without modifying it
type ImageAnalyzer struct {
	config  Config
	cropper *cropper.SmartCropper
}

// Config holds configuration for the image analyzer
type Config struct {
	SupportedFormats []string
	MinImageSize     int
}

// DefaultConfig returns the configuration used by New
func DefaultConfig() Config {
	return Config{
		SupportedFormats: []string{"jpg", "jpeg", "png", "webp", "gif", "bmp", "tif", "tiff"},
		MinImageSize:     16,
	}
}

// New creates a new ImageAnalyzer with default configuration
func New() *ImageAnalyzer {
	return NewWithConfig(DefaultConfig(), cropper.New())
}

// NewWithConfig creates a new ImageAnalyzer with custom configuration
func NewWithConfig(config Config, smartCropper *cropper.SmartCropper) *ImageAnalyzer {
	if smartCropper == nil {
		smartCropper = cropper.New()
	}
	return &ImageAnalyzer{config: config, cropper: smartCropper}
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Area        int     `json:"area"`
	Entropy     float64 `json:"entropy"`
}

// TargetReport describes the crop found for one requested size
type TargetReport struct {
	Size            types.Size    `json:"size"`
	StepSize        int           `json:"step_size"`
	Rect            types.Rect    `json:"rect"`
	Gravity         types.Gravity `json:"gravity"`
	Trims           int           `json:"trims"`
	RetainedEntropy float64       `json:"retained_entropy"`
}

// Report is the result of Analyze
type Report struct {
	Info    ImageInfo      `json:"info"`
	Targets []TargetReport `json:"targets"`
}

// GetImageInfo returns basic information about an image
func (a *ImageAnalyzer) GetImageInfo(img image.Image) ImageInfo {
	bounds := img.Bounds()
	if bounds.Empty() {
		return imageInfo(bounds, nil)
	}
	return imageInfo(bounds, entropy.NewEvaluator(a.cropper.NewImage(img).Quantized()))
}

func imageInfo(bounds image.Rectangle, eval *entropy.Evaluator) ImageInfo {
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	if eval != nil {
		info.Entropy = eval.Image()
	}
	return info
}

// Analyze finds the crop rectangle and gravity for each size without
// modifying img.
func (a *ImageAnalyzer) Analyze(img image.Image, sizes []types.Size) (Report, error) {
	if err := a.ValidateImage(img); err != nil {
		return Report{}, err
	}

	im := a.cropper.NewImage(img)
	eval := entropy.NewEvaluator(im.Quantized())
	report := Report{Info: imageInfo(img.Bounds(), eval)}
	steps := a.cropper.Config().Steps

	for _, size := range sizes {
		rect, trims, err := a.cropper.FindRectWithTrace(im, size.Width, size.Height)
		if err != nil {
			return Report{}, fmt.Errorf("failed to analyze %s: %w", size, err)
		}
		report.Targets = append(report.Targets, TargetReport{
			Size:            size,
			StepSize:        cropper.StepSize(im.Width(), im.Height(), min(size.Width, im.Width()), min(size.Height, im.Height()), steps),
			Rect:            rect,
			Gravity:         cropper.Classify(rect, im.Width(), im.Height()),
			Trims:           len(trims),
			RetainedEntropy: eval.Region(rect.Left, rect.Top, rect.Width(), rect.Height()),
		})
	}

	return report, nil
}

// IsFormatSupported reports whether a format name or file path is accepted
func (a *ImageAnalyzer) IsFormatSupported(format string) bool {
	if ext := filepath.Ext(format); ext != "" {
		format = ext[1:]
	}
	for _, supported := range a.config.SupportedFormats {
		if strings.EqualFold(format, supported) {
			return true
		}
	}
	return false
}

// ValidateImage checks if an image meets minimum requirements
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() < a.config.MinImageSize || bounds.Dy() < a.config.MinImageSize {
		return fmt.Errorf("image too small: %dx%d (minimum: %d)",
			bounds.Dx(), bounds.Dy(), a.config.MinImageSize)
	}
	return nil
}
