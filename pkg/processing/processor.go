package processing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/smart-cropper/pkg/types"
)

const userAgent = "Smart-Cropper/1.0 (+https://github.com/menta2k/smart-cropper)"

// Processor loads and saves images and renders debug overlays
type Processor struct {
	client *http.Client
}

// NewProcessor creates a new image processor
func NewProcessor() *Processor {
	return &Processor{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// LoadImageFromURL downloads and decodes an image from an http(s) URL
func (p *Processor) LoadImageFromURL(ctx context.Context, imageURL string) (image.Image, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", contentType)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return p.decodeImageFromBytes(imageData)
}

// LoadImage loads an image from a file path with WebP support
func (p *Processor) LoadImage(path string) (image.Image, error) {
	if img, err := imaging.Open(path, imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	img, err := p.decodeImageFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadImageFromReader decodes an image from r
func (p *Processor) LoadImageFromReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return p.decodeImageFromBytes(data)
}

// LoadImageSmart loads an image from either a file path or URL
func (p *Processor) LoadImageSmart(ctx context.Context, source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return p.LoadImageFromURL(ctx, source)
	}
	return p.LoadImage(source)
}

func (p *Processor) decodeImageFromBytes(data []byte) (image.Image, error) {
	if img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}

	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// SaveImage saves an image to a file with the specified format and quality
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		if err := webp.Encode(f, img, opts); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
		return nil
	case "png":
		return imaging.Save(img, path)
	case "jpg", "jpeg", "":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

var (
	lowEntropyColor  = colorful.Color{R: 0, G: 0.4, B: 1}
	highEntropyColor = colorful.Color{R: 1, G: 0.15, B: 0}
)

// CreateDebugOverlay draws the retained rectangle, the quarter lines used for
// gravity and every discarded strip tinted from blue (low entropy) to red
// (high entropy).
func (p *Processor) CreateDebugOverlay(img image.Image, rect types.Rect, steps []types.TrimStep) image.Image {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	maxEntropy := 0.0
	for _, s := range steps {
		maxEntropy = math.Max(maxEntropy, s.Entropy)
	}
	for _, s := range steps {
		t := 0.0
		if maxEntropy > 0 {
			t = s.Entropy / maxEntropy
		}
		tint := lowEntropyColor.BlendLab(highEntropyColor, t).Clamped()
		shade(nrgba, s.Strip.Bounds(), tint, 0.35)
	}

	gold := color.NRGBA{255, 204, 0, 255}
	grey := color.NRGBA{200, 200, 200, 255}
	stroke := int(math.Max(2, 0.004*float64(min(w, h))))

	for _, x := range []int{w / 4, 3 * w / 4} {
		drawVLine(nrgba, x, 0, h, grey)
	}
	for _, y := range []int{h / 4, 3 * h / 4} {
		drawHLine(nrgba, y, 0, w, grey)
	}

	drawRect(nrgba, rect.Bounds(), gold, stroke)

	return nrgba
}

func shade(img *image.NRGBA, r image.Rectangle, c colorful.Color, alpha float64) {
	r = r.Intersect(img.Bounds())
	cr, cg, cb := c.RGB255()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i+0] = blend(img.Pix[i+0], cr, alpha)
			img.Pix[i+1] = blend(img.Pix[i+1], cg, alpha)
			img.Pix[i+2] = blend(img.Pix[i+2], cb, alpha)
			i += 4
		}
	}
}

func blend(dst, src uint8, alpha float64) uint8 {
	return uint8(float64(dst)*(1-alpha) + float64(src)*alpha + 0.5)
}

func drawRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA, stroke int) {
	for s := 0; s < stroke; s++ {
		drawHLine(img, r.Min.Y+s, r.Min.X, r.Max.X, c)
		drawHLine(img, r.Max.Y-1-s, r.Min.X, r.Max.X, c)
		drawVLine(img, r.Min.X+s, r.Min.Y, r.Max.Y, c)
		drawVLine(img, r.Max.X-1-s, r.Min.Y, r.Max.Y, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
