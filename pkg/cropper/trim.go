package cropper

import (
	"fmt"
	"log"
	"strings"

	"github.com/menta2k/smart-cropper/pkg/entropy"
	"github.com/menta2k/smart-cropper/pkg/types"
)

// TrimMode selects how the vertical pass terminates
type TrimMode int

const (
	// TrimConverge trims top and bottom strips until the target height is
	// reached, exactly like the horizontal pass.
	TrimConverge TrimMode = iota
	// TrimLegacy reproduces the historical vertical pass: strips are
	// min(height-step, step) tall and the loop stops after the first full
	// step, which can leave the rectangle taller than requested.
	TrimLegacy
)

func (m TrimMode) String() string {
	switch m {
	case TrimConverge:
		return "converge"
	case TrimLegacy:
		return "legacy"
	}
	return fmt.Sprintf("TrimMode(%d)", int(m))
}

// ParseTrimMode parses "converge" or "legacy"
func ParseTrimMode(s string) (TrimMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "converge":
		return TrimConverge, nil
	case "legacy":
		return TrimLegacy, nil
	}
	return TrimConverge, fmt.Errorf("unknown vertical trim mode: %q", s)
}

// StepSize returns the trim granularity for reducing a width x height image
// to targetWidth x targetHeight in about the given number of steps per side.
func StepSize(width, height, targetWidth, targetHeight, steps int) int {
	if steps <= 0 {
		steps = DefaultSteps
	}
	excess := max(height-targetHeight, width-targetWidth)
	if excess <= 0 {
		return 0
	}
	return excess / 2 / steps
}

// trimmer shrinks rect by repeatedly discarding the lower-entropy edge strip
type trimmer struct {
	eval  *entropy.Evaluator
	step  int
	mode  TrimMode
	rect  types.Rect
	trace []types.TrimStep
	log   *log.Logger
}

func (t *trimmer) entropy(r types.Rect) float64 {
	return t.eval.Region(r.Left, r.Top, r.Width(), r.Height())
}

func (t *trimmer) record(side types.Side, strip types.Rect, discarded, kept float64) {
	t.trace = append(t.trace, types.TrimStep{Side: side, Strip: strip, Entropy: discarded, Kept: kept})
	t.log.Printf("trim %s %v entropy=%.4f other=%.4f", side, strip, discarded, kept)
}

// horizontal trims left and right strips until the width equals target.
// Equal entropies discard the right strip.
func (t *trimmer) horizontal(target int) {
	if t.step == 0 {
		return
	}
	for t.rect.Width() > target {
		slice := min(t.rect.Width()-target, t.step)

		left := types.Rect{Left: t.rect.Left, Top: t.rect.Top, Right: t.rect.Left + slice, Bottom: t.rect.Bottom}
		right := types.Rect{Left: t.rect.Right - slice, Top: t.rect.Top, Right: t.rect.Right, Bottom: t.rect.Bottom}
		leftEntropy, rightEntropy := t.entropy(left), t.entropy(right)

		if leftEntropy < rightEntropy {
			t.rect.Left += slice
			t.record(types.SideLeft, left, leftEntropy, rightEntropy)
		} else {
			t.rect.Right -= slice
			t.record(types.SideRight, right, rightEntropy, leftEntropy)
		}
	}
}

// vertical trims top and bottom strips. Equal entropies discard the bottom
// strip. See TrimMode for termination.
func (t *trimmer) vertical(target int) {
	if t.step == 0 {
		return
	}
	for t.rect.Height() > target {
		var slice int
		if t.mode == TrimLegacy {
			slice = min(t.rect.Height()-t.step, t.step)
		} else {
			slice = min(t.rect.Height()-target, t.step)
		}
		if slice <= 0 {
			return
		}

		top := types.Rect{Left: t.rect.Left, Top: t.rect.Top, Right: t.rect.Right, Bottom: t.rect.Top + slice}
		bottom := types.Rect{Left: t.rect.Left, Top: t.rect.Bottom - slice, Right: t.rect.Right, Bottom: t.rect.Bottom}
		topEntropy, bottomEntropy := t.entropy(top), t.entropy(bottom)

		if topEntropy < bottomEntropy {
			t.rect.Top += slice
			t.record(types.SideTop, top, topEntropy, bottomEntropy)
		} else {
			t.rect.Bottom -= slice
			t.record(types.SideBottom, bottom, bottomEntropy, topEntropy)
		}

		if t.mode == TrimLegacy && slice == t.step {
			return
		}
	}
}
