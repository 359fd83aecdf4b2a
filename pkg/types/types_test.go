package types

import (
	"encoding/json"
	"image"
	"testing"
)

func TestRectDimensions(t *testing.T) {
	r := Rect{Left: 40, Top: 10, Right: 100, Bottom: 60}

	if r.Width() != 60 {
		t.Errorf("Width: got %d, want 60", r.Width())
	}
	if r.Height() != 50 {
		t.Errorf("Height: got %d, want 50", r.Height())
	}
	if r.Bounds() != image.Rect(40, 10, 100, 60) {
		t.Errorf("Bounds: got %v", r.Bounds())
	}
	if got := r.String(); got != "{left:40, top:10, right:100, bottom:60}" {
		t.Errorf("String: got %s", got)
	}
}

func TestRectIn(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"full", FullRect(100, 60), true},
		{"inner", Rect{10, 10, 20, 20}, true},
		{"empty width", Rect{10, 10, 10, 20}, false},
		{"negative left", Rect{-1, 0, 20, 20}, false},
		{"past right", Rect{0, 0, 101, 20}, false},
		{"past bottom", Rect{0, 0, 20, 61}, false},
	}

	for _, tt := range tests {
		if got := tt.rect.In(100, 60); got != tt.want {
			t.Errorf("%s: In() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGravityString(t *testing.T) {
	if Center.String() != "center" {
		t.Errorf("Center: got %s", Center.String())
	}
	if SouthWest.String() != "southwest" {
		t.Errorf("SouthWest: got %s", SouthWest.String())
	}
	if Gravity(42).String() != "Gravity(42)" {
		t.Errorf("out of range: got %s", Gravity(42).String())
	}
}

func TestParseGravity(t *testing.T) {
	tests := []struct {
		input string
		want  Gravity
	}{
		{"center", Center},
		{"North", North},
		{"north-west", NorthWest},
		{"SOUTH_EAST", SouthEast},
		{" east ", East},
	}

	for _, tt := range tests {
		got, err := ParseGravity(tt.input)
		if err != nil {
			t.Errorf("ParseGravity(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGravity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseGravity("up"); err == nil {
		t.Error("Expected error for unknown gravity")
	}
}

func TestGravityJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		G Gravity `json:"gravity"`
	}{NorthEast})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"gravity":"northeast"}` {
		t.Errorf("Marshal: got %s", data)
	}

	var out struct {
		G Gravity `json:"gravity"`
	}
	if err := json.Unmarshal([]byte(`{"gravity":"southwest"}`), &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out.G != SouthWest {
		t.Errorf("Unmarshal: got %v, want southwest", out.G)
	}
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("1200x630")
	if err != nil {
		t.Fatalf("ParseSize failed: %v", err)
	}
	if size.Width != 1200 || size.Height != 630 {
		t.Errorf("got %v, want 1200x630", size)
	}

	for _, bad := range []string{"", "100", "0x10", "ax10", "10x-1", "1x2x3"} {
		if _, err := ParseSize(bad); err == nil {
			t.Errorf("ParseSize(%q): expected error", bad)
		}
	}
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes("100x100, 60x40,")
	if err != nil {
		t.Fatalf("ParseSizes failed: %v", err)
	}
	if len(sizes) != 2 {
		t.Fatalf("Expected 2 sizes, got %d", len(sizes))
	}
	if sizes[1] != (Size{60, 40}) {
		t.Errorf("second size: got %v", sizes[1])
	}
}

func TestSideString(t *testing.T) {
	want := map[Side]string{SideLeft: "left", SideRight: "right", SideTop: "top", SideBottom: "bottom", Side(9): "Side(9)"}
	for side, name := range want {
		if side.String() != name {
			t.Errorf("got %s, want %s", side.String(), name)
		}
	}
}
