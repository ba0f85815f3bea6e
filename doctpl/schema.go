// Package doctpl describes template-backed document layouts in JSON.
//
// A layout table carries the base artwork of every page as a list of drawing
// elements, plus the named field rectangles and row bands that dynamic values
// are stamped into. A new template revision is a new JSON file; the drawing
// code never changes. All coordinates are top-origin, in points, as measured
// on the reference design.
//
// Example JSON:
//
//	{
//	  "name": "invoice",
//	  "version": "2024.09",
//	  "pageSize": {"w": 595.92, "h": 842.88},
//	  "pages": [{
//	    "elements": [
//	      {"type": "text", "text": "Invoice", "x": 561.92, "y": 86, "align": "right",
//	       "font": {"family": "slab", "size": 28}}
//	    ]
//	  }],
//	  "fields": {
//	    "invoiceNo": {"pages": [1], "erase": {"x0": 481.2, "y0": 158.1, "x1": 552, "y1": 169.6},
//	      "pad": 1.2, "line": {"x0": 481.2, "y0": 158.1, "x1": 552, "y1": 169.6},
//	      "font": {"family": "slab", "size": 7.25}}
//	  }
//	}
package doctpl

import (
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
)

// Template is a versioned layout table.
type Template struct {
	Name     string           `json:"name"`
	Version  string           `json:"version"`
	PageSize coords.Size      `json:"pageSize"`
	Pages    []Page           `json:"pages"`
	Fields   map[string]Field `json:"fields"`
	Rows     Rows             `json:"rows"`
}

// Page is the base artwork of one page.
type Page struct {
	Elements []Element `json:"elements"`
}

// Element is a single piece of base artwork.
// The Type field determines which other fields are relevant.
type Element struct {
	Type string `json:"type"` // text, rect, line, image

	// Text: (X, Y) is the baseline origin. With align right or center the
	// text is placed against X and X1.
	Text  string        `json:"text,omitempty"`
	X     float64       `json:"x,omitempty"`
	Y     float64       `json:"y,omitempty"`
	X1    float64       `json:"x1,omitempty"`
	Align canvas.Align  `json:"align,omitempty"`
	Font  *canvas.Font  `json:"font,omitempty"`
	Color *canvas.Color `json:"color,omitempty"`

	// Rect
	Rect      *coords.Rect  `json:"rect,omitempty"`
	Fill      *canvas.Color `json:"fill,omitempty"`
	Stroke    *canvas.Color `json:"stroke,omitempty"`
	LineWidth float64       `json:"lineWidth,omitempty"`

	// Line
	From *Point `json:"from,omitempty"`
	To   *Point `json:"to,omitempty"`

	// Image: Src names an image in the asset bundle; (X, Y) is its upper-left corner.
	Src    string  `json:"src,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Point is a top-origin position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Field is a named slot whose template content is replaced at render time.
type Field struct {
	// Pages lists the 1-based pages the field appears on.
	Pages []int `json:"pages"`
	// Erase is painted over before drawing. Fields that share a region with
	// an earlier field leave it unset.
	Erase *coords.Rect `json:"erase,omitempty"`
	Pad   float64      `json:"pad,omitempty"`
	// Fill is the erase color. Defaults to white.
	Fill *canvas.Color `json:"fill,omitempty"`
	// Line is the band holding the first baseline. X0 is the text origin; X1
	// is the right edge used by right and center alignment.
	Line  coords.Rect   `json:"line"`
	Font  canvas.Font   `json:"font"`
	Color *canvas.Color `json:"color,omitempty"`
	Align canvas.Align  `json:"align,omitempty"`
	// Step is the baseline advance between lines of a multi-line value.
	Step float64 `json:"step,omitempty"`
	// Wrap, when positive, wraps each value line to this width.
	Wrap float64 `json:"wrap,omitempty"`
}

// EraseColor returns the color the field's region is painted with.
func (f Field) EraseColor() canvas.Color {
	if f.Fill != nil {
		return *f.Fill
	}
	return canvas.White
}

// TextColor returns the color field text is drawn in.
func (f Field) TextColor() canvas.Color {
	if f.Color != nil {
		return *f.Color
	}
	return canvas.Ink
}

// OnPage reports whether the field appears on page n.
func (f Field) OnPage(n int) bool {
	for _, p := range f.Pages {
		if p == n {
			return true
		}
	}
	return false
}

// Rows describes a fixed-capacity item table: one band per row slot.
type Rows struct {
	Page   int       `json:"page"`
	Bands  []float64 `json:"bands"` // top y of each row slot
	Height float64   `json:"height"`
	Pad    float64   `json:"pad"`
	Cells  []Cell    `json:"cells"`
}

// Cell is one column of a row slot.
type Cell struct {
	Name  string        `json:"name"`
	Erase Span          `json:"erase"`
	X     float64       `json:"x"` // text origin
	Font  canvas.Font   `json:"font"`
	Color *canvas.Color `json:"color,omitempty"`
}

// Span is a horizontal extent.
type Span struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
}

// TextColor returns the color cell text is drawn in.
func (c Cell) TextColor() canvas.Color {
	if c.Color != nil {
		return *c.Color
	}
	return canvas.Ink
}

// Capacity returns the number of row slots.
func (r Rows) Capacity() int { return len(r.Bands) }

// Band returns the top-origin rect of cell c in slot i.
func (r Rows) Band(i int, c Cell) coords.Rect {
	y0 := r.Bands[i]
	return coords.Rect{X0: c.Erase.X0, Y0: y0, X1: c.Erase.X1, Y1: y0 + r.Height}
}

// Cell returns the cell named name.
func (r Rows) Cell(name string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return Cell{}, false
}
