package table

import (
	"fmt"
	"strconv"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/money"
	"github.com/lvillar/docstamp/textwrap"
)

// Header labels, left to right.
var Headers = [4]string{"Item", "Quantity", "Rate", "Amount"}

// Table is a flowing line-item table builder.
type Table struct {
	page     *canvas.Page
	columns  Columns
	style    Style
	x, top   float64 // top is measured down from the top of the page
	width    float64
	rows     []docstamp.LineItem
	totalRow bool
}

// New creates a table on p spanning the full page width from its top edge.
func New(p *canvas.Page) *Table {
	return &Table{
		page:    p,
		columns: DefaultColumns,
		style:   DefaultStyle(),
		width:   p.Size().W,
	}
}

// SetColumns sets the column positions.
func (t *Table) SetColumns(c Columns) *Table {
	t.columns = c
	return t
}

// SetStyle sets the table style.
func (t *Table) SetStyle(s Style) *Table {
	t.style = s
	return t
}

// SetPosition places the table's upper-left corner at x and top points below
// the top of the page.
func (t *Table) SetPosition(x, top float64) *Table {
	t.x = x
	t.top = top
	return t
}

// SetWidth sets the total table width.
func (t *Table) SetWidth(w float64) *Table {
	t.width = w
	return t
}

// SetTotalRow enables a closing row summing quantity and amount.
func (t *Table) SetTotalRow(on bool) *Table {
	t.totalRow = on
	return t
}

// AddRow appends an item row.
func (t *Table) AddRow(it docstamp.LineItem) *Table {
	t.rows = append(t.rows, it)
	return t
}

// AddRows appends item rows in order.
func (t *Table) AddRows(items ...docstamp.LineItem) *Table {
	t.rows = append(t.rows, items...)
	return t
}

// RowLayout is the computed geometry of one item row.
type RowLayout struct {
	Lines  []string
	Height float64
}

type columnX struct {
	item, quantity, rate, amount float64
}

func (t *Table) columnX() columnX {
	return columnX{
		item:     t.x + t.columns.Item,
		quantity: t.x + t.width*t.columns.Quantity,
		rate:     t.x + t.width*t.columns.Rate,
		amount:   t.x + t.width*t.columns.Amount,
	}
}

// WrapWidth returns the width descriptions are wrapped to.
func (t *Table) WrapWidth() float64 {
	c := t.columnX()
	return (c.quantity - c.item) - t.style.WrapMargin
}

// Layout wraps every description and computes row heights.
func (t *Table) Layout() ([]RowLayout, error) {
	m, err := t.page.Doc().Measurer(t.style.TextFont.Family)
	if err != nil {
		return nil, err
	}
	s := t.style
	out := make([]RowLayout, len(t.rows))
	for i, it := range t.rows {
		lines, err := textwrap.Wrap(it.Description, t.WrapWidth(), m, s.TextFont.Size)
		if err != nil {
			return nil, fmt.Errorf("table: row %d: %w", i+1, err)
		}
		h := 2*s.PadY + float64(len(lines))*s.LineHeight
		if h < s.MinRowHeight {
			h = s.MinRowHeight
		}
		out[i] = RowLayout{Lines: lines, Height: h}
	}
	return out, nil
}

// Height returns the total height of the table including header and total row.
func (t *Table) Height() (float64, error) {
	rows, err := t.Layout()
	if err != nil {
		return 0, err
	}
	h := t.style.HeaderHeight
	for _, r := range rows {
		h += r.Height
	}
	if t.totalRow {
		h += t.style.TotalHeight
	}
	return h, nil
}

// Render draws the table and returns the output y of its bottom edge.
func (t *Table) Render() (float64, error) {
	rows, err := t.Layout()
	if err != nil {
		return 0, err
	}
	p, s, c := t.page, t.style, t.columnX()
	yTop := p.Size().FromTop(t.top)

	p.FillStrokeRect(coords.Box{X: t.x, Y: yTop - s.HeaderHeight, W: t.width, H: s.HeaderHeight}, s.HeaderFill, s.Border, s.BorderWidth)
	hy := yTop - (s.HeaderHeight - headerBaselineGap(s))
	for i, x := range []float64{c.item, c.quantity, c.rate, c.amount} {
		p.Text(x, hy, Headers[i], s.HeaderFont, s.HeaderColor)
	}

	y := yTop - s.HeaderHeight
	for i, it := range t.rows {
		rl := rows[i]
		p.FillStrokeRect(coords.Box{X: t.x, Y: y - rl.Height, W: t.width, H: rl.Height}, s.RowFill, s.Border, s.BorderWidth)

		base := y - s.TextInset
		p.Text(t.x+s.IndexX, base, IndexLabel(i), s.IndexFont, s.IndexColor)
		ly := base
		for _, l := range rl.Lines {
			p.Text(c.item, ly, l, s.TextFont, s.TextColor)
			ly -= s.LineHeight
		}
		p.Text(c.quantity+s.NumberInset, base, money.FormatQuantity(it.Quantity), s.NumberFont, s.TextColor)
		p.Text(c.rate+s.NumberInset, base, money.FormatCurrency(it.Rate), s.NumberFont, s.TextColor)
		p.Text(c.amount+s.NumberInset, base, money.FormatCurrency(it.Amount()), s.NumberFont, s.TextColor)

		y -= rl.Height
	}

	if t.totalRow {
		h := s.TotalHeight
		p.FillStrokeRect(coords.Box{X: t.x, Y: y - h, W: t.width, H: h}, s.RowFill, s.Border, s.BorderWidth)
		base := y - s.TextInset
		p.Text(c.item, base, "Total", s.TotalFont, s.TextColor)
		p.TextAligned(c.quantity, c.rate-s.NumberInset, base,
			money.FormatQuantity(docstamp.TotalQuantity(t.rows)), s.NumberFont, s.TextColor, canvas.AlignRight)
		p.TextAligned(c.amount, t.x+t.width-s.NumberInset, base,
			money.FormatCurrency(docstamp.Total(t.rows)), s.NumberFont, s.TextColor, canvas.AlignRight)
		y -= h
	}

	return y, p.Doc().Err()
}

// headerBaselineGap is the distance from the header bar's bottom edge to its
// label baseline: 6pt on the reference design's 20pt bar.
func headerBaselineGap(s Style) float64 {
	return s.HeaderHeight * 0.3
}

// IndexLabel returns the row label for the zero-based index i: "1.", "2.", ...
func IndexLabel(i int) string {
	return strconv.Itoa(i+1) + "."
}
