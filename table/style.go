// Package table lays out the line-item table.
//
// Table flows rows downward from a header bar, sizing each row from its
// wrapped description and optionally closing with a total row. Slots fills
// the fixed row bands of a template, where capacity is bounded by the bands
// the template provides.
package table

import "github.com/lvillar/docstamp/canvas"

// Columns positions the item table's columns. Quantity, Rate and Amount are
// fractions of the table width; Item is an offset from its left edge.
type Columns struct {
	Item     float64
	Quantity float64
	Rate     float64
	Amount   float64
}

// DefaultColumns matches the reference design.
var DefaultColumns = Columns{Item: 32, Quantity: 0.62, Rate: 0.77, Amount: 0.90}

// Style defines the appearance and row metrics of a flowing table.
type Style struct {
	HeaderHeight float64
	HeaderFill   canvas.Color
	HeaderFont   canvas.Font
	HeaderColor  canvas.Color

	Border      canvas.Color
	BorderWidth float64
	RowFill     canvas.Color

	// Rows are max(MinRowHeight, 2*PadY + lines*LineHeight) tall.
	MinRowHeight float64
	PadY         float64
	LineHeight   float64
	// TextInset is the distance from a row's top edge to its first baseline.
	TextInset float64
	// WrapMargin is subtracted from the item column width to get the wrap width.
	WrapMargin float64
	// NumberInset is the distance from a numeric column's left edge to its text.
	NumberInset float64
	IndexX      float64

	TextFont   canvas.Font
	TextColor  canvas.Color
	NumberFont canvas.Font
	IndexFont  canvas.Font
	IndexColor canvas.Color

	TotalHeight float64
	TotalFont   canvas.Font
}

// DefaultStyle returns the style of the reference design.
func DefaultStyle() Style {
	return Style{
		HeaderHeight: 20,
		HeaderFill:   canvas.HeaderBg,
		HeaderFont:   canvas.Font{Family: canvas.Slab, Size: 7.5},
		HeaderColor:  canvas.Muted,

		Border:      canvas.Rule,
		BorderWidth: 1,
		RowFill:     canvas.White,

		MinRowHeight: 22,
		PadY:         6,
		LineHeight:   11.5,
		TextInset:    16,
		WrapMargin:   28,
		NumberInset:  4,
		IndexX:       10,

		TextFont:   canvas.Font{Family: canvas.Slab, Size: 7.5},
		TextColor:  canvas.Ink,
		NumberFont: canvas.Font{Family: canvas.Mono, Size: 7.25},
		IndexFont:  canvas.Font{Family: canvas.Mono, Size: 7.25},
		IndexColor: canvas.Muted,

		TotalHeight: 22,
		TotalFont:   canvas.Font{Family: canvas.SlabBold, Size: 7.75},
	}
}
