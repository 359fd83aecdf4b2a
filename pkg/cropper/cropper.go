package cropper

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"strings"

	"github.com/menta2k/smart-cropper/pkg/entropy"
	"github.com/menta2k/smart-cropper/pkg/processing"
	"github.com/menta2k/smart-cropper/pkg/types"
)

// DefaultSteps is the default number of trim iterations per side
const DefaultSteps = 10

// ErrInvalidDimensions is returned when a requested size is not positive or
// does not fit the source image.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// SmartCropper crops images to their highest-entropy area
type SmartCropper struct {
	config CropConfig
}

// CropConfig holds configuration for smart cropping
type CropConfig struct {
	Steps          int
	VerticalTrim   TrimMode
	AllowUpscaling bool
	Quantize       processing.QuantizeOptions
	Log            *log.Logger
}

// DefaultConfig returns the configuration used by New
func DefaultConfig() CropConfig {
	return CropConfig{
		Steps:          DefaultSteps,
		VerticalTrim:   TrimConverge,
		AllowUpscaling: false,
	}
}

// New creates a new SmartCropper with default configuration
func New() *SmartCropper {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new SmartCropper with custom configuration
func NewWithConfig(config CropConfig) *SmartCropper {
	if config.Steps <= 0 {
		config.Steps = DefaultSteps
	}
	if config.Log == nil {
		config.Log = log.New(io.Discard, "", 0)
	}
	return &SmartCropper{config: config}
}

// Config returns the cropper configuration
func (c *SmartCropper) Config() CropConfig {
	return c.config
}

// NewImage wraps img for use with the cropping operations, using the
// cropper's quantization settings.
func (c *SmartCropper) NewImage(img image.Image) *processing.Image {
	return processing.NewImage(img, c.config.Quantize)
}

// FindRect returns the highest-entropy width x height rectangle of im.
// Targets larger than the image leave that axis untrimmed.
func (c *SmartCropper) FindRect(im *processing.Image, width, height int) (types.Rect, error) {
	rect, _, err := c.FindRectWithTrace(im, width, height)
	return rect, err
}

// FindRectWithTrace is FindRect that also returns every trimmed strip in
// the order it was discarded.
func (c *SmartCropper) FindRectWithTrace(im *processing.Image, width, height int) (types.Rect, []types.TrimStep, error) {
	if width <= 0 || height <= 0 {
		return types.Rect{}, nil, fmt.Errorf("%w: requested %dx%d", ErrInvalidDimensions, width, height)
	}
	cols, rows := im.Width(), im.Height()
	if cols == 0 || rows == 0 {
		return types.Rect{}, nil, fmt.Errorf("%w: empty image", ErrInvalidDimensions)
	}

	targetWidth, targetHeight := min(width, cols), min(height, rows)
	t := &trimmer{
		eval: entropy.NewEvaluator(im.Quantized()),
		step: StepSize(cols, rows, targetWidth, targetHeight, c.config.Steps),
		mode: c.config.VerticalTrim,
		rect: types.FullRect(cols, rows),
		log:  c.config.Log,
	}
	c.config.Log.Printf("find %dx%d in %dx%d: step=%d mode=%s", targetWidth, targetHeight, cols, rows, t.step, t.mode)

	t.horizontal(targetWidth)
	t.vertical(targetHeight)

	c.config.Log.Printf("found %v after %d trims", t.rect, len(t.trace))
	return t.rect, t.trace, nil
}

// Gravity returns the direction of the area of interest for a
// width x height crop of im.
func (c *SmartCropper) Gravity(im *processing.Image, width, height int) (types.Gravity, error) {
	area, err := c.FindRect(im, width, height)
	if err != nil {
		return types.Center, err
	}
	return Classify(area, im.Width(), im.Height()), nil
}

// FixedCrop crops im in place to width x height, anchored at the top-left
// corner of the highest-entropy rectangle. A crop reaching past the image
// edge is truncated to it.
func (c *SmartCropper) FixedCrop(im *processing.Image, width, height int) (*processing.Image, error) {
	if err := c.validate(im, width, height, false); err != nil {
		return nil, err
	}
	rect, err := c.FindRect(im, width, height)
	if err != nil {
		return nil, err
	}
	width = min(width, im.Width()-rect.Left)
	height = min(height, im.Height()-rect.Top)
	if err := im.CropInPlace(rect.Left, rect.Top, width, height); err != nil {
		return nil, fmt.Errorf("crop failed: %w", err)
	}
	return im, nil
}

// SquareToShorterSide crops im in place to a square whose side is the
// shorter image dimension. Square images are left untouched.
func (c *SmartCropper) SquareToShorterSide(im *processing.Image) (*processing.Image, error) {
	cols, rows := im.Width(), im.Height()
	if cols == rows {
		return im, nil
	}
	side := min(cols, rows)
	rect, err := c.FindRect(im, side, side)
	if err != nil {
		return nil, err
	}
	if err := im.CropInPlace(rect.Left, rect.Top, side, side); err != nil {
		return nil, fmt.Errorf("square failed: %w", err)
	}
	return im, nil
}

// ZoomCrop squares im and fills width x height, keeping the side where the
// interesting content of the original image sits.
func (c *SmartCropper) ZoomCrop(im *processing.Image, width, height int) (*processing.Image, error) {
	if err := c.validate(im, width, height, c.config.AllowUpscaling); err != nil {
		return nil, err
	}
	gravity, err := c.Gravity(im, width, height)
	if err != nil {
		return nil, err
	}
	if _, err := c.SquareToShorterSide(im); err != nil {
		return nil, err
	}
	if err := im.ResizeToFill(width, height, gravity); err != nil {
		return nil, fmt.Errorf("fill failed: %w", err)
	}
	return im, nil
}

// CropAndScale squares im and scales the square to width x height. The
// aspect ratio is distorted unless width equals height.
func (c *SmartCropper) CropAndScale(im *processing.Image, width, height int) (*processing.Image, error) {
	if err := c.validate(im, width, height, c.config.AllowUpscaling); err != nil {
		return nil, err
	}
	if _, err := c.SquareToShorterSide(im); err != nil {
		return nil, err
	}
	if err := im.Scale(width, height); err != nil {
		return nil, fmt.Errorf("scale failed: %w", err)
	}
	return im, nil
}

func (c *SmartCropper) validate(im *processing.Image, width, height int, upscale bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: requested %dx%d", ErrInvalidDimensions, width, height)
	}
	if !upscale && (width > im.Width() || height > im.Height()) {
		return fmt.Errorf("%w: target size (%dx%d) is larger than original (%dx%d) and upscaling is disabled",
			ErrInvalidDimensions, width, height, im.Width(), im.Height())
	}
	return nil
}

// Mode selects one of the cropping operations
type Mode string

const (
	ModeCrop  Mode = "crop"
	ModeZoom  Mode = "zoom"
	ModeScale Mode = "scale"
)

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCrop, ModeZoom, ModeScale:
		return m, nil
	}
	return "", fmt.Errorf("unknown crop mode: %q (use crop, zoom or scale)", s)
}

// CropResult contains the result of a cropping operation
type CropResult struct {
	Image   image.Image
	Size    types.Size
	Rect    types.Rect
	Gravity types.Gravity
	Steps   []types.TrimStep
}

// Apply runs mode on a new handle for img; img itself is left unchanged.
// The result carries the rectangle and gravity found on the original image.
func (c *SmartCropper) Apply(img image.Image, mode Mode, size types.Size) (CropResult, error) {
	im := c.NewImage(img)
	rect, steps, err := c.FindRectWithTrace(im, size.Width, size.Height)
	if err != nil {
		return CropResult{}, err
	}
	result := CropResult{
		Size:    size,
		Rect:    rect,
		Gravity: Classify(rect, im.Width(), im.Height()),
		Steps:   steps,
	}

	switch mode {
	case ModeCrop:
		_, err = c.FixedCrop(im, size.Width, size.Height)
	case ModeZoom:
		_, err = c.ZoomCrop(im, size.Width, size.Height)
	case ModeScale:
		_, err = c.CropAndScale(im, size.Width, size.Height)
	default:
		err = fmt.Errorf("unknown crop mode: %q", mode)
	}
	if err != nil {
		return CropResult{}, err
	}

	result.Image = im.Image()
	return result, nil
}

// CropToMultipleSizes applies mode for every size
func (c *SmartCropper) CropToMultipleSizes(img image.Image, mode Mode, sizes []types.Size) ([]CropResult, error) {
	var results []CropResult

	for _, size := range sizes {
		result, err := c.Apply(img, mode, size)
		if err != nil {
			return nil, fmt.Errorf("failed to crop to %s: %w", size, err)
		}
		results = append(results, result)
	}

	return results, nil
}
