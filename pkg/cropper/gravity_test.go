package cropper

import (
	"testing"

	"github.com/menta2k/smart-cropper/pkg/types"
)

func TestClassify(t *testing.T) {
	// 100x100 image: left < 25, top < 25, right > 75, bottom > 75
	tests := []struct {
		name string
		area types.Rect
		want types.Gravity
	}{
		{"full image", types.FullRect(100, 100), types.Center},
		{"nothing near an edge", types.Rect{Left: 30, Top: 30, Right: 70, Bottom: 70}, types.Center},
		{"top left", types.Rect{Left: 0, Top: 0, Right: 50, Bottom: 50}, types.NorthWest},
		{"top right", types.Rect{Left: 50, Top: 0, Right: 100, Bottom: 50}, types.NorthEast},
		{"bottom left", types.Rect{Left: 0, Top: 50, Right: 50, Bottom: 100}, types.SouthWest},
		{"bottom right", types.Rect{Left: 50, Top: 50, Right: 100, Bottom: 100}, types.SouthEast},
		{"top band", types.Rect{Left: 30, Top: 0, Right: 70, Bottom: 50}, types.North},
		{"bottom band", types.Rect{Left: 30, Top: 50, Right: 70, Bottom: 100}, types.South},
		{"left band", types.Rect{Left: 0, Top: 30, Right: 50, Bottom: 70}, types.West},
		{"right band", types.Rect{Left: 50, Top: 30, Right: 100, Bottom: 70}, types.East},
		{"full height left", types.Rect{Left: 0, Top: 0, Right: 50, Bottom: 100}, types.NorthWest},
		{"full width top", types.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}, types.NorthWest},
		{"full width bottom", types.Rect{Left: 0, Top: 50, Right: 100, Bottom: 100}, types.SouthWest},
		{"full height right", types.Rect{Left: 50, Top: 0, Right: 100, Bottom: 100}, types.NorthEast},
	}

	for _, tt := range tests {
		if got := Classify(tt.area, 100, 100); got != tt.want {
			t.Errorf("%s: Classify(%v) = %s, want %s", tt.name, tt.area, got, tt.want)
		}
	}
}

func TestClassifyThresholdsAreExclusive(t *testing.T) {
	// left edge exactly at a quarter of the width does not count
	if got := Classify(types.Rect{Left: 25, Top: 30, Right: 70, Bottom: 70}, 100, 100); got != types.Center {
		t.Errorf("left == 0.25*width: got %s, want center", got)
	}
	if got := Classify(types.Rect{Left: 24, Top: 30, Right: 70, Bottom: 70}, 100, 100); got != types.West {
		t.Errorf("left < 0.25*width: got %s, want west", got)
	}
	if got := Classify(types.Rect{Left: 30, Top: 30, Right: 75, Bottom: 75}, 100, 100); got != types.Center {
		t.Errorf("right and bottom == 0.75*size: got %s, want center", got)
	}
	if got := Classify(types.Rect{Left: 30, Top: 25, Right: 70, Bottom: 76}, 100, 100); got != types.South {
		t.Errorf("top == 0.25*height: got %s, want south", got)
	}
}

func TestClassifyFractionalThresholds(t *testing.T) {
	// 0.25*10 = 2.5, 0.75*10 = 7.5
	if got := Classify(types.Rect{Left: 2, Top: 3, Right: 7, Bottom: 7}, 10, 10); got != types.West {
		t.Errorf("got %s, want west", got)
	}
	if got := Classify(types.Rect{Left: 3, Top: 3, Right: 8, Bottom: 7}, 10, 10); got != types.East {
		t.Errorf("got %s, want east", got)
	}
}
