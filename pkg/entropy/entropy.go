// Package entropy measures how much information a region of an image carries.
//
// Entropy is computed over the colour histogram of a palette-reduced image,
// so the number of bins is bounded by the palette size and values stay
// comparable between calls.
package entropy

import (
	"image"
	"math"
)

// Histogram counts palette indices of p inside r. The returned slice has one
// bin per palette entry. Parts of r outside p are ignored.
func Histogram(p *image.Paletted, r image.Rectangle) []int {
	bins := len(p.Palette)
	if bins == 0 {
		bins = 256
	}
	hist := make([]int, bins)

	r = r.Intersect(p.Rect)
	if r.Empty() {
		return hist
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.Pix[p.PixOffset(r.Min.X, y):p.PixOffset(r.Max.X, y)]
		for _, idx := range row {
			if int(idx) >= len(hist) {
				continue
			}
			hist[idx]++
		}
	}
	return hist
}

// Entropy returns -sum(p*log2(p)) over the non-empty bins of hist.
// An empty histogram has entropy 0.
func Entropy(hist []int) float64 {
	total := 0
	for _, count := range hist {
		total += count
	}
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, count := range hist {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// Evaluator computes region entropies of one quantized image
type Evaluator struct {
	img *image.Paletted
}

// NewEvaluator binds an evaluator to a quantized image
func NewEvaluator(img *image.Paletted) *Evaluator {
	return &Evaluator{img: img}
}

// Region returns the entropy of the w x h region at (x, y), relative to the
// image origin. Zero-area regions yield 0.
func (e *Evaluator) Region(x, y, w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	r := image.Rect(x, y, x+w, y+h).Add(e.img.Rect.Min)
	return Entropy(Histogram(e.img, r))
}

// Image returns the entropy of the whole quantized image
func (e *Evaluator) Image() float64 {
	return Entropy(Histogram(e.img, e.img.Rect))
}
