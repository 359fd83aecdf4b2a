package cropper

import "github.com/menta2k/smart-cropper/pkg/types"

// Classify derives the gravity of an area of interest inside a
// width x height image from how close its edges are to the image edges.
// An edge counts when it lies in the outer quarter on its side; the
// comparisons are strict.
func Classify(area types.Rect, width, height int) types.Gravity {
	left := float64(area.Left) < 0.25*float64(width)
	top := float64(area.Top) < 0.25*float64(height)
	right := float64(area.Right) > 0.75*float64(width)
	bottom := float64(area.Bottom) > 0.75*float64(height)

	switch {
	case left && top && right && bottom:
		return types.Center
	case left && top:
		return types.NorthWest
	case right && top:
		return types.NorthEast
	case left && bottom:
		return types.SouthWest
	case right && bottom:
		return types.SouthEast
	case top:
		return types.North
	case bottom:
		return types.South
	case left:
		return types.West
	case right:
		return types.East
	}
	return types.Center
}
