// Package overlay replaces content on a page.
//
// Template-backed pages are updated field by field: the field's region is
// painted over in its background color, inset from the surrounding border
// strokes, and the new value is drawn on the field's baseline. Pages built
// from scratch are composed from Sections, each drawing its static geometry
// before the text that belongs to it.
package overlay

import (
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/doctpl"
)

// Whiteout paints r, grown by pad on every side, in white.
func Whiteout(p *canvas.Page, r coords.Rect, pad float64) {
	Fill(p, r, pad, canvas.White)
}

// Fill paints r, grown by pad on every side, in c.
func Fill(p *canvas.Page, r coords.Rect, pad float64, c canvas.Color) {
	p.FillRect(p.Size().Box(r, pad), c)
}

// Stamp erases field f on p and draws values on its baseline, one per line,
// each subsequent line Step points lower. When f.Wrap is set every value is
// wrapped to that width first. Blank values still take a line.
func Stamp(p *canvas.Page, f doctpl.Field, values ...string) {
	if f.Erase != nil {
		Fill(p, *f.Erase, f.Pad, f.EraseColor())
	}
	lines := values
	if f.Wrap > 0 {
		lines = lines[:0:0]
		for _, v := range values {
			lines = append(lines, p.Doc().Wrap(v, f.Wrap, f.Font)...)
		}
	}

	y := p.Size().Baseline(f.Line)
	for _, l := range lines {
		p.TextAligned(f.Line.X0, f.Line.X1, y, l, f.Font, f.TextColor(), f.Align)
		y -= f.Step
	}
}

// StampFields stamps each named field of t that appears on p with its value.
// Fields are visited in the order given.
func StampFields(p *canvas.Page, t *doctpl.Template, values []FieldValue) {
	for _, v := range values {
		f := t.Field(v.Name)
		if !f.OnPage(p.Number()) {
			continue
		}
		Stamp(p, f, v.Lines...)
	}
}

// FieldValue pairs a field name with the lines to draw in it.
type FieldValue struct {
	Name  string
	Lines []string
}

// Value returns a FieldValue.
func Value(name string, lines ...string) FieldValue {
	return FieldValue{Name: name, Lines: lines}
}

// Section is one region of a page drawn from scratch.
type Section struct {
	Name    string
	Static  func(p *canvas.Page)
	Dynamic func(p *canvas.Page)
}

// Draw draws sections in order. Each section's static geometry is drawn
// immediately before its dynamic text.
func Draw(p *canvas.Page, sections ...Section) {
	for _, s := range sections {
		if s.Static != nil {
			s.Static(p)
		}
		if s.Dynamic != nil {
			s.Dynamic(p)
		}
	}
}
