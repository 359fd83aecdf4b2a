package types

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Rect is the retained area of an image in pixel coordinates.
// Left and Top are inclusive, Right and Bottom exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// FullRect returns the rectangle covering a whole width x height image
func FullRect(width, height int) Rect {
	return Rect{Left: 0, Top: 0, Right: width, Bottom: height}
}

// Width returns the horizontal extent of the rectangle
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Bounds converts the rectangle to an image.Rectangle
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// In reports whether r is a non-empty rectangle inside a width x height image
func (r Rect) In(width, height int) bool {
	return r.Left >= 0 && r.Left < r.Right && r.Right <= width &&
		r.Top >= 0 && r.Top < r.Bottom && r.Bottom <= height
}

func (r Rect) String() string {
	return fmt.Sprintf("{left:%d, top:%d, right:%d, bottom:%d}", r.Left, r.Top, r.Right, r.Bottom)
}

// Gravity is the directional bias of the interesting content of an image
type Gravity int

const (
	Center Gravity = iota
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var gravityNames = [...]string{
	Center:    "center",
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "northeast",
	NorthWest: "northwest",
	SouthEast: "southeast",
	SouthWest: "southwest",
}

func (g Gravity) String() string {
	if g < 0 || int(g) >= len(gravityNames) {
		return fmt.Sprintf("Gravity(%d)", int(g))
	}
	return gravityNames[g]
}

// MarshalText implements encoding.TextMarshaler
func (g Gravity) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= len(gravityNames) {
		return nil, fmt.Errorf("invalid gravity %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *Gravity) UnmarshalText(text []byte) error {
	parsed, err := ParseGravity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGravity parses a gravity name such as "northwest" or "north-west"
func ParseGravity(s string) (Gravity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	for g, n := range gravityNames {
		if n == name {
			return Gravity(g), nil
		}
	}
	return Center, fmt.Errorf("unknown gravity: %q", s)
}

// Size is a requested output size in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses sizes written as "WxH", e.g. "1200x630"
func ParseSize(s string) (Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return Size{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return Size{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return Size{}, fmt.Errorf("invalid size %q: width and height must be positive", s)
	}
	return Size{Width: w, Height: h}, nil
}

// ParseSizes parses a comma separated list of sizes
func ParseSizes(s string) ([]Size, error) {
	var sizes []Size
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		size, err := ParseSize(part)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// Side names an edge of a rectangle
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// TrimStep records one trimming decision: the strip that was discarded and
// the entropies of both candidate strips.
type TrimStep struct {
	Side    Side    `json:"side"`
	Strip   Rect    `json:"strip"`
	Entropy float64 `json:"entropy"`
	Kept    float64 `json:"kept_entropy"`
}
