package coords

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestToBox(t *testing.T) {
	r := Rect{X0: 481.2, Y0: 158.1, X1: 552, Y1: 169.6}

	b := ToBox(r, 0, A4.H)
	if !approx(b.X, 481.2) || !approx(b.Y, 842.88-169.6) || !approx(b.W, 70.8) || !approx(b.H, 11.5) {
		t.Fatalf("unpadded box = %+v", b)
	}

	p := A4.Box(r, 1.2)
	if !approx(p.X, 480) || !approx(p.Y, 842.88-170.8) || !approx(p.W, 73.2) || !approx(p.H, 13.9) {
		t.Fatalf("padded box = %+v", p)
	}
	if !approx(p.Top(), 842.88-156.9) {
		t.Errorf("Top = %v", p.Top())
	}
}

func TestBaseline(t *testing.T) {
	r := Rect{Y0: 158.9, Y1: 173.2}
	want := 842.88 - 173.2 + (173.2-158.9)*0.22
	if got := A4.Baseline(r); !approx(got, want) {
		t.Errorf("Baseline = %v, want %v", got, want)
	}

	// A zero-height band puts the baseline on the band itself.
	flat := Rect{Y0: 100, Y1: 100}
	if got := Baseline(flat, 800); !approx(got, 700) {
		t.Errorf("flat Baseline = %v, want 700", got)
	}
}

func TestFromTop(t *testing.T) {
	if got := A4.FromTop(64); !approx(got, 778.88) {
		t.Errorf("FromTop = %v", got)
	}
}

func TestPadShrinks(t *testing.T) {
	r := Rect{X0: 10, Y0: 10, X1: 20, Y1: 30}.Pad(-2)
	if r != (Rect{X0: 12, Y0: 12, X1: 18, Y1: 28}) {
		t.Errorf("Pad(-2) = %+v", r)
	}
}
