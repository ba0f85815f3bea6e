// Package coords converts rectangles authored against the reference design,
// where y grows downward from the top of the page, into the bottom-left origin
// space of PDF output.
package coords

// BaselineRatio places a text baseline this fraction of a box's height above
// its bottom edge. It approximates the font's descent without reading metrics.
const BaselineRatio = 0.22

// Size is a page size in points.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// A4 as measured on the reference design.
var A4 = Size{W: 595.92, H: 842.88}

// Rect is a top-origin rectangle: (X0, Y0) is the upper-left corner and
// (X1, Y1) the lower-right, measured down from the top of the page.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Pad grows r by p on every side. A negative p shrinks it.
func (r Rect) Pad(p float64) Rect {
	return Rect{X0: r.X0 - p, Y0: r.Y0 - p, X1: r.X1 + p, Y1: r.Y1 + p}
}

// Box is a bottom-origin rectangle in output space: (X, Y) is the lower-left corner.
type Box struct {
	X, Y, W, H float64
}

// Top returns the y of the upper edge.
func (b Box) Top() float64 { return b.Y + b.H }

// Box converts r, padded by pad, into output space for a page of this size.
func (s Size) Box(r Rect, pad float64) Box {
	return ToBox(r, pad, s.H)
}

// Baseline estimates where text sits inside r on a page of this size.
func (s Size) Baseline(r Rect) float64 {
	return Baseline(r, s.H)
}

// FromTop converts a distance from the top of the page into an output y.
func (s Size) FromTop(top float64) float64 {
	return s.H - top
}

// ToBox converts the top-origin rect r into output space for page height pageH.
// Padding is applied before conversion; width and height carry over unchanged.
func ToBox(r Rect, pad, pageH float64) Box {
	r = r.Pad(pad)
	return Box{X: r.X0, Y: pageH - r.Y1, W: r.Width(), H: r.Height()}
}

// Baseline returns the output y of a text baseline inside r: BaselineRatio of
// the rect's height above its bottom edge.
func Baseline(r Rect, pageH float64) float64 {
	return pageH - r.Y1 + r.Height()*BaselineRatio
}
