package processing

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/menta2k/smart-cropper/pkg/types"
)

// QuantizeOptions controls how the palette-reduced copy of an image is built
type QuantizeOptions struct {
	Palette   color.Palette
	Dither    bool
	Smoothing float64 // Gaussian blur radius applied before quantization, 0 = off
}

// PaletteByName returns one of the fixed palettes: "plan9" or "websafe"
func PaletteByName(name string) (color.Palette, error) {
	switch strings.ToLower(name) {
	case "", "plan9":
		return palette.Plan9, nil
	case "websafe":
		return palette.WebSafe, nil
	}
	return nil, fmt.Errorf("unknown palette: %s", name)
}

// Quantize maps img onto a fixed palette. The result always has its origin
// at (0,0).
func Quantize(img image.Image, opts QuantizeOptions) *image.Paletted {
	src := img
	if opts.Smoothing > 0 {
		src = blur.Gaussian(src, opts.Smoothing)
	}

	pal := opts.Palette
	if len(pal) == 0 {
		pal = palette.Plan9
	}

	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	if opts.Dither {
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, b.Min)
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}
	return dst
}

// Image is a caller-owned image together with its quantized copy.
// Destructive operations replace the pixels in place and invalidate the
// quantized copy, which is rebuilt on the next Quantized call.
type Image struct {
	img       image.Image
	opts      QuantizeOptions
	quantized *image.Paletted
}

// NewImage wraps img. Images whose bounds do not start at (0,0) are copied
// so that all coordinates are relative to the top-left pixel.
func NewImage(img image.Image, opts QuantizeOptions) *Image {
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	return &Image{img: img, opts: opts}
}

// Image returns the current pixels
func (im *Image) Image() image.Image {
	return im.img
}

// Width returns the number of columns
func (im *Image) Width() int {
	return im.img.Bounds().Dx()
}

// Height returns the number of rows
func (im *Image) Height() int {
	return im.img.Bounds().Dy()
}

// Quantized returns the palette-reduced copy of the current pixels
func (im *Image) Quantized() *image.Paletted {
	if im.quantized == nil {
		im.quantized = Quantize(im.img, im.opts)
	}
	return im.quantized
}

// Region extracts a copy of the w x h region at (x, y)
func (im *Image) Region(x, y, w, h int) (image.Image, error) {
	r, err := im.rect(x, y, w, h)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(im.img, r), nil
}

// CropInPlace replaces the image by its w x h region at (x, y)
func (im *Image) CropInPlace(x, y, w, h int) error {
	r, err := im.rect(x, y, w, h)
	if err != nil {
		return err
	}
	im.replace(imaging.Crop(im.img, r))
	return nil
}

// ResizeToFill scales the image to cover w x h and crops the overflow,
// keeping the side given by gravity.
func (im *Image) ResizeToFill(w, h int, gravity types.Gravity) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid fill size %dx%d", w, h)
	}
	im.replace(imaging.Fill(im.img, w, h, AnchorFor(gravity), imaging.Lanczos))
	return nil
}

// Scale resizes the image to exactly w x h without preserving aspect ratio
func (im *Image) Scale(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid scale size %dx%d", w, h)
	}
	im.replace(imaging.Resize(im.img, w, h, imaging.Lanczos))
	return nil
}

func (im *Image) replace(img image.Image) {
	im.img = img
	im.quantized = nil
}

func (im *Image) rect(x, y, w, h int) (image.Rectangle, error) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid region size %dx%d", w, h)
	}
	r := image.Rect(x, y, x+w, y+h)
	if !r.In(image.Rect(0, 0, im.Width(), im.Height())) {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, im.Width(), im.Height())
	}
	return r, nil
}

// AnchorFor maps a gravity to the matching imaging anchor
func AnchorFor(g types.Gravity) imaging.Anchor {
	switch g {
	case types.North:
		return imaging.Top
	case types.South:
		return imaging.Bottom
	case types.East:
		return imaging.Right
	case types.West:
		return imaging.Left
	case types.NorthEast:
		return imaging.TopRight
	case types.NorthWest:
		return imaging.TopLeft
	case types.SouthEast:
		return imaging.BottomRight
	case types.SouthWest:
		return imaging.BottomLeft
	default:
		return imaging.Center
	}
}
