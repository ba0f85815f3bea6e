package table

import (
	"fmt"
	"strings"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/doctpl"
	"github.com/lvillar/docstamp/money"
	"github.com/lvillar/docstamp/overlay"
)

// Slots fills the fixed row bands of a template. Every band is erased, so
// unused slots come out blank.
type Slots struct {
	page  *canvas.Page
	rows  doctpl.Rows
	kind  docstamp.Kind
	items []docstamp.LineItem
}

// NewSlots creates a fixed-capacity table on p. kind is reported in
// capacity errors.
func NewSlots(p *canvas.Page, rows doctpl.Rows, kind docstamp.Kind) *Slots {
	return &Slots{page: p, rows: rows, kind: kind}
}

// AddRows appends item rows in order.
func (s *Slots) AddRows(items ...docstamp.LineItem) *Slots {
	s.items = append(s.items, items...)
	return s
}

// Capacity returns the number of row bands.
func (s *Slots) Capacity() int { return s.rows.Capacity() }

// Check reports a *docstamp.CapacityExceededError if more items were added
// than there are bands, and a *docstamp.ValidationError for a description
// that does not fit on the single line of its band.
func (s *Slots) Check() error {
	if n := len(s.items); n > s.Capacity() {
		return &docstamp.CapacityExceededError{Kind: s.kind, Capacity: s.Capacity(), Items: n}
	}
	c, ok := s.rows.Cell(doctpl.CellDescription)
	if !ok {
		return nil
	}
	m, err := s.page.Doc().Measurer(c.Font.Family)
	if err != nil {
		return err
	}
	room := c.Erase.X1 - c.X
	for i, it := range s.items {
		w, err := m.Width(description(it), c.Font.Size)
		if err != nil {
			return fmt.Errorf("table: row %d: %w", i+1, err)
		}
		if w > room {
			return &docstamp.ValidationError{
				Field:  fmt.Sprintf("items[%d].description", i),
				Reason: fmt.Sprintf("%.1fpt wide, the %s row holds %.1fpt on one line", w, s.kind, room),
			}
		}
	}
	return nil
}

// Render erases every band and draws one item per band. Nothing is drawn
// when Check fails.
func (s *Slots) Render() error {
	if err := s.Check(); err != nil {
		return err
	}
	p := s.page
	for i := range s.rows.Bands {
		for _, c := range s.rows.Cells {
			overlay.Whiteout(p, s.rows.Band(i, c), s.rows.Pad)
		}
	}

	for i, it := range s.items {
		for _, c := range s.rows.Cells {
			text, err := s.cellText(i, it, c)
			if err != nil {
				return fmt.Errorf("table: row %d: %w", i+1, err)
			}
			y := p.Size().Baseline(s.rows.Band(i, c))
			p.Text(c.X, y, text, c.Font, c.TextColor())
		}
	}
	return p.Doc().Err()
}

func (s *Slots) cellText(i int, it docstamp.LineItem, c doctpl.Cell) (string, error) {
	switch c.Name {
	case doctpl.CellIndex:
		return IndexLabel(i), nil
	case doctpl.CellDescription:
		return description(it), nil
	case doctpl.CellQuantity:
		return money.FormatQuantity(it.Quantity), nil
	case doctpl.CellRate:
		return money.FormatCurrency(it.Rate), nil
	case doctpl.CellAmount:
		return money.FormatCurrency(it.Amount()), nil
	default:
		return "", fmt.Errorf("unknown cell %q", c.Name)
	}
}

// description collapses whitespace runs in the item's description.
func description(it docstamp.LineItem) string {
	return strings.Join(strings.Fields(it.Description), " ")
}
