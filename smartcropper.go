// Package smartcropper crops images to their most interesting area.
//
// Interest is measured as the Shannon entropy of the colour histogram of a
// palette-reduced copy of the image. Starting from the full frame, the
// cropper repeatedly compares the strips at opposite edges and discards the
// one with less entropy until the requested size is reached.
//
// Basic usage:
//
//	sc := smartcropper.New()
//
//	img, err := sc.LoadImage(context.Background(), "photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	thumb, err := sc.ZoomCrop(img, 200, 200)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Three cropping modes are available:
//
//   - Crop cuts the exact requested size out of the image at the
//     highest-entropy position.
//   - ZoomCrop squares the image to its shorter side, then fills the
//     requested size, anchored towards the interesting content.
//   - CropAndScale squares the image and scales it to the requested size,
//     ignoring aspect ratio.
//
// FindRect and Gravity expose the underlying decisions without touching
// any pixels.
package smartcropper

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/menta2k/smart-cropper/internal/utils"
	"github.com/menta2k/smart-cropper/pkg/analyzer"
	"github.com/menta2k/smart-cropper/pkg/cropper"
	"github.com/menta2k/smart-cropper/pkg/processing"
	"github.com/menta2k/smart-cropper/pkg/types"
)

// Version of the smart cropper library
const Version = "1.0.0"

// SmartCropper provides a high-level interface for entropy based cropping
type SmartCropper struct {
	cropper   *cropper.SmartCropper
	analyzer  *analyzer.ImageAnalyzer
	processor *processing.Processor
}

// New creates a new SmartCropper with default configuration
func New() *SmartCropper {
	return NewWithConfig(cropper.DefaultConfig(), analyzer.DefaultConfig())
}

// NewWithConfig creates a new SmartCropper with custom configuration
func NewWithConfig(cropConfig cropper.CropConfig, analyzerConfig analyzer.Config) *SmartCropper {
	smartCropper := cropper.NewWithConfig(cropConfig)
	return &SmartCropper{
		cropper:   smartCropper,
		analyzer:  analyzer.NewWithConfig(analyzerConfig, smartCropper),
		processor: processing.NewProcessor(),
	}
}

// LoadImage loads an image from a file path or an http(s) URL
func (sc *SmartCropper) LoadImage(ctx context.Context, source string) (image.Image, error) {
	return sc.processor.LoadImageSmart(ctx, source)
}

// SaveImage saves an image, choosing the format from the file extension
func (sc *SmartCropper) SaveImage(img image.Image, path string, quality int) error {
	return sc.processor.SaveImage(img, path, utils.GetFileExtension(path), quality, false)
}

// Crop returns the width x height area of img with the highest entropy
func (sc *SmartCropper) Crop(img image.Image, width, height int) (image.Image, error) {
	return sc.apply(img, cropper.ModeCrop, width, height)
}

// ZoomCrop squares img and fills width x height towards its interesting side
func (sc *SmartCropper) ZoomCrop(img image.Image, width, height int) (image.Image, error) {
	return sc.apply(img, cropper.ModeZoom, width, height)
}

// CropAndScale squares img and scales it to width x height
func (sc *SmartCropper) CropAndScale(img image.Image, width, height int) (image.Image, error) {
	return sc.apply(img, cropper.ModeScale, width, height)
}

// Square crops img to a square of its shorter side
func (sc *SmartCropper) Square(img image.Image) (image.Image, error) {
	im, err := sc.cropper.SquareToShorterSide(sc.cropper.NewImage(img))
	if err != nil {
		return nil, err
	}
	return im.Image(), nil
}

// FindRect returns the highest-entropy width x height rectangle of img
func (sc *SmartCropper) FindRect(img image.Image, width, height int) (types.Rect, error) {
	return sc.cropper.FindRect(sc.cropper.NewImage(img), width, height)
}

// Gravity returns where the interesting content of img lies for a
// width x height crop
func (sc *SmartCropper) Gravity(img image.Image, width, height int) (types.Gravity, error) {
	return sc.cropper.Gravity(sc.cropper.NewImage(img), width, height)
}

// Analyze reports image information and the crop found for each size
func (sc *SmartCropper) Analyze(img image.Image, sizes []types.Size) (analyzer.Report, error) {
	return sc.analyzer.Analyze(img, sizes)
}

// CropToMultipleSizes applies mode to img once per size
func (sc *SmartCropper) CropToMultipleSizes(img image.Image, mode cropper.Mode, sizes []types.Size) ([]cropper.CropResult, error) {
	return sc.cropper.CropToMultipleSizes(img, mode, sizes)
}

func (sc *SmartCropper) apply(img image.Image, mode cropper.Mode, width, height int) (image.Image, error) {
	result, err := sc.cropper.Apply(img, mode, types.Size{Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	return result.Image, nil
}

// ProcessImageFile is a convenience function that loads, validates and crops
// an image from a path or URL to every size, writing <name>_<size>.jpg files
// into outputDir. It returns the written paths.
func (sc *SmartCropper) ProcessImageFile(inputPath, outputDir string, mode cropper.Mode, sizes []types.Size) ([]string, error) {
	img, err := sc.LoadImage(context.Background(), inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	if err := sc.analyzer.ValidateImage(img); err != nil {
		return nil, fmt.Errorf("image validation failed: %w", err)
	}

	results, err := sc.CropToMultipleSizes(img, mode, sizes)
	if err != nil {
		return nil, fmt.Errorf("cropping failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, result := range results {
		outputPath := utils.GenerateOutputFilename(inputPath, outputDir, "", "", result.Size, "jpg")
		if err := sc.processor.SaveImage(result.Image, outputPath, "jpg", 90, false); err != nil {
			return written, fmt.Errorf("failed to save crop %s: %w", result.Size, err)
		}
		written = append(written, outputPath)
	}

	return written, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
