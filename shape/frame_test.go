package shape

import (
	"math"
	"testing"
)

func roundedArea(w, h, r float64) float64 {
	return w*h - (4-math.Pi)*r*r
}

func TestRoundedRectBounds(t *testing.T) {
	pts := RoundedRect(100, 50, 80, 40, 10, 8)
	if len(pts) != 4*9*2 {
		t.Fatalf("got %d coords, want %d", len(pts), 4*9*2)
	}
	for i := 0; i < len(pts); i += 2 {
		x, y := pts[i], pts[i+1]
		if x < 60-1e-9 || x > 140+1e-9 || y < 30-1e-9 || y > 70+1e-9 {
			t.Fatalf("point (%f, %f) outside the box", x, y)
		}
	}
}

func TestRoundedRectClampsRadius(t *testing.T) {
	pts := RoundedRect(0, 0, 20, 10, 50, 4)
	for i := 0; i < len(pts); i += 2 {
		if math.Abs(pts[i]) > 10+1e-9 || math.Abs(pts[i+1]) > 5+1e-9 {
			t.Fatalf("point (%f, %f) outside the box", pts[i], pts[i+1])
		}
	}
}

func TestFrameArea(t *testing.T) {
	tests := []struct {
		name           string
		w, h, r, thick float64
	}{
		{"square", 200, 200, 12, 6},
		{"wide", 800, 300, 20, 10},
		{"tall thin ring", 100, 600, 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Frame(400, 300, tt.w, tt.h, tt.r, tt.thick, 16)
			if err != nil {
				t.Fatalf("Frame: %v", err)
			}
			if len(m.Indices)%3 != 0 || len(m.Indices) == 0 {
				t.Fatalf("index count %d is not a triangle list", len(m.Indices))
			}
			want := roundedArea(tt.w+2*tt.thick, tt.h+2*tt.thick, tt.r+tt.thick) - roundedArea(tt.w, tt.h, tt.r)
			got := m.Area()
			if math.Abs(got-want)/want > 0.02 {
				t.Errorf("ring area = %f, want about %f", got, want)
			}
		})
	}
}

func TestFrameDegenerate(t *testing.T) {
	if _, err := Frame(0, 0, 0, 100, 5, 4, 8); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := Frame(0, 0, 100, 100, 5, 0, 8); err == nil {
		t.Error("expected error for zero thickness")
	}
}
