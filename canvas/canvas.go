// Package canvas records drawing operations as per-page display lists in PDF
// output space (origin bottom-left, units in points) and serializes them.
//
// Pages are built in memory, inspected or reordered freely, and written in a
// single pass by WritePDF. Measurement failures are sticky: the first one is
// kept on the Document and reported by Err, in the manner of gofpdf.
package canvas

import (
	"fmt"

	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/textwrap"
)

// Op is a single drawing operation. Implementations are TextOp, RectOp, LineOp and ImageOp.
type Op interface {
	isOp()
}

// TextOp draws a single line of text with its baseline starting at (X, Y).
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
}

// RectOp fills and/or strokes a rectangle. A nil Fill or Stroke skips that part.
type RectOp struct {
	Box       coords.Box
	Fill      *Color
	Stroke    *Color
	LineWidth float64
}

// LineOp strokes a straight segment.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          Color
}

// ImageOp places a registered image with its lower-left corner at (X, Y).
type ImageOp struct {
	Name       string
	X, Y, W, H float64
}

func (TextOp) isOp()  {}
func (RectOp) isOp()  {}
func (LineOp) isOp()  {}
func (ImageOp) isOp() {}

// Document is an ordered set of pages sharing a size and a set of font metrics.
type Document struct {
	size  coords.Size
	faces map[string]textwrap.Measurer
	pages []*Page
	err   error
}

// New returns an empty document. faces maps font roles to their metrics; it is
// read, never modified.
func New(size coords.Size, faces map[string]textwrap.Measurer) *Document {
	return &Document{size: size, faces: faces}
}

// Size returns the page size.
func (d *Document) Size() coords.Size { return d.size }

// AddPage appends a blank page and returns it.
func (d *Document) AddPage() *Page {
	p := &Page{doc: d, number: len(d.pages) + 1}
	d.pages = append(d.pages, p)
	return p
}

// Pages returns the pages in order.
func (d *Document) Pages() []*Page { return d.pages }

// NumPages returns the number of pages.
func (d *Document) NumPages() int { return len(d.pages) }

// Err returns the first error recorded while drawing, if any.
func (d *Document) Err() error { return d.err }

// SetError records err unless an earlier error is already held.
func (d *Document) SetError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// Measurer returns the metrics registered for a font role.
func (d *Document) Measurer(family string) (textwrap.Measurer, error) {
	m, ok := d.faces[family]
	if !ok {
		return nil, fmt.Errorf("canvas: no metrics for font %q", family)
	}
	return m, nil
}

// Width measures s in font f. On failure it records the error and returns 0.
func (d *Document) Width(s string, f Font) float64 {
	m, err := d.Measurer(f.Family)
	if err != nil {
		d.SetError(err)
		return 0
	}
	w, err := m.Width(s, f.Size)
	if err != nil {
		d.SetError(fmt.Errorf("canvas: measuring %q in %s: %w", s, f.Family, err))
		return 0
	}
	return w
}

// Wrap wraps text to maxWidth in font f. On failure it records the error and
// returns the text as a single line.
func (d *Document) Wrap(text string, maxWidth float64, f Font) []string {
	m, err := d.Measurer(f.Family)
	if err == nil {
		var lines []string
		if lines, err = textwrap.Wrap(text, maxWidth, m, f.Size); err == nil {
			return lines
		}
	}
	d.SetError(fmt.Errorf("canvas: wrapping in %s: %w", f.Family, err))
	return []string{text}
}

// Page is one page's display list.
type Page struct {
	doc    *Document
	number int
	ops    []Op
}

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.number }

// Doc returns the owning document.
func (p *Page) Doc() *Document { return p.doc }

// Size returns the page size.
func (p *Page) Size() coords.Size { return p.doc.size }

// Ops returns the recorded operations in drawing order.
func (p *Page) Ops() []Op { return p.ops }

// Texts returns the strings of every TextOp in drawing order.
func (p *Page) Texts() []string {
	var out []string
	for _, op := range p.ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

// Text draws s with its baseline origin at (x, y).
func (p *Page) Text(x, y float64, s string, f Font, c Color) {
	p.ops = append(p.ops, TextOp{X: x, Y: y, Text: s, Font: f, Color: c})
}

// TextAligned draws s on baseline y. For AlignLeft the text starts at x0; for
// AlignRight it ends at x1; for AlignCenter it is centered between them.
func (p *Page) TextAligned(x0, x1, y float64, s string, f Font, c Color, a Align) {
	x := x0
	switch a {
	case AlignRight:
		x = x1 - p.doc.Width(s, f)
	case AlignCenter:
		x = x0 + ((x1-x0)-p.doc.Width(s, f))/2
	}
	p.Text(x, y, s, f, c)
}

// FillRect paints b with c.
func (p *Page) FillRect(b coords.Box, c Color) {
	p.ops = append(p.ops, RectOp{Box: b, Fill: &c})
}

// StrokeRect outlines b.
func (p *Page) StrokeRect(b coords.Box, c Color, width float64) {
	p.ops = append(p.ops, RectOp{Box: b, Stroke: &c, LineWidth: width})
}

// FillStrokeRect paints b with fill and outlines it with stroke.
func (p *Page) FillStrokeRect(b coords.Box, fill, stroke Color, width float64) {
	p.ops = append(p.ops, RectOp{Box: b, Fill: &fill, Stroke: &stroke, LineWidth: width})
}

// Line strokes a segment from (x1, y1) to (x2, y2).
func (p *Page) Line(x1, y1, x2, y2, width float64, c Color) {
	p.ops = append(p.ops, LineOp{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

// Image places the registered image name in the box with lower-left (x, y).
func (p *Page) Image(name string, x, y, w, h float64) {
	p.ops = append(p.ops, ImageOp{Name: name, X: x, Y: y, W: w, H: h})
}
