package physics

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 10, 10)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 1, 1), true},
		{"containing", NewRect(-5, -5, 30, 30), true},
		{"touching right edge", NewRect(10, 0, 5, 5), false},
		{"touching top edge", NewRect(0, 10, 5, 5), false},
		{"left of", NewRect(-6, 0, 5, 5), false},
		{"below", NewRect(0, -6, 5, 5), false},
		{"thin laser through middle", NewRect(4.5, -2, 0.9, 4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := Intersects(tt.other, base); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v", tt.other)
			}
		})
	}
}

func TestIntersectsSymmetricGrid(t *testing.T) {
	var rects []Rect
	for x := -2.0; x <= 2; x++ {
		for y := -2.0; y <= 2; y++ {
			rects = append(rects, NewRect(x*3, y*3, 4, 2), NewRect(x, y, 1, 6))
		}
	}
	for _, a := range rects {
		for _, b := range rects {
			if Intersects(a, b) != Intersects(b, a) {
				t.Fatalf("asymmetric result for %v and %v", a, b)
			}
		}
	}
}

func TestNewRectFloorsNegativeSize(t *testing.T) {
	r := NewRect(1, 2, -3, -4)
	if r.W != 0 || r.H != 0 {
		t.Errorf("expected zero size, got %vx%v", r.W, r.H)
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(36, 32, 10, 10)
	if r.X != 31 || r.Y != 27 {
		t.Errorf("expected (31,27), got (%v,%v)", r.X, r.Y)
	}
	if c := r.Center(); c.X != 36 || c.Y != 32 {
		t.Errorf("expected centre (36,32), got %v", c)
	}
}

func TestLimits(t *testing.T) {
	bounds := NewRect(0, 0, 72, 128)
	l := NewRect(31, 4, 10, 10).Limits(bounds)

	if l.Left != -31 || l.Right != 31 || l.Down != -4 || l.Up != 114 {
		t.Errorf("unexpected limits %+v", l)
	}
}

func TestClampMove(t *testing.T) {
	tests := []struct {
		move, min, max, want float64
	}{
		{5, -1, 3, 3},
		{2, -1, 3, 2},
		{-5, -1, 3, -1},
		{-0.5, -1, 3, -0.5},
		{0, -1, 3, 0},
		{0, 2, 3, 2}, // a box outside its lower bound is pushed back in
	}
	for _, tt := range tests {
		if got := ClampMove(tt.move, tt.min, tt.max); got != tt.want {
			t.Errorf("ClampMove(%v, %v, %v) = %v, want %v", tt.move, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Point{0, 0}, Point{3, 4}); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected 5, got %v", d)
	}
}
