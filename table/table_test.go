package table_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/doctpl"
	"github.com/lvillar/docstamp/table"
	"github.com/lvillar/docstamp/textwrap"
)

// perRune measures every rune as half the font size.
type perRune struct{}

func (perRune) Width(s string, size float64) (float64, error) {
	return float64(utf8.RuneCountInString(s)) * size * 0.5, nil
}

func newTestPage() *canvas.Page {
	faces := map[string]textwrap.Measurer{canvas.Slab: perRune{}, canvas.SlabBold: perRune{}, canvas.Mono: perRune{}}
	return canvas.New(coords.A4, faces).AddPage()
}

var sampleItems = []docstamp.LineItem{
	{Description: "Logo design", Quantity: 25, Rate: 15},
	{Description: "Brand guideline", Quantity: 50, Rate: 17},
	{Description: "Social media kit", Quantity: 50, Rate: 19},
	{Description: "Website mockups", Quantity: 50, Rate: 22},
	{Description: "Copywriting", Quantity: 15, Rate: 28},
	{Description: "Photography", Quantity: 15, Rate: 36},
}

func hasText(p *canvas.Page, s string) bool {
	for _, t := range p.Texts() {
		if t == s {
			return true
		}
	}
	return false
}

func TestRowHeights(t *testing.T) {
	p := newTestPage()
	long := strings.Repeat("comprehensive ", 40)
	tb := table.New(p).SetPosition(29.3, 270).SetWidth(coords.A4.W - 58.6).
		AddRow(docstamp.LineItem{Description: "short", Quantity: 1, Rate: 1}).
		AddRow(docstamp.LineItem{Description: long, Quantity: 1, Rate: 1}).
		AddRow(docstamp.LineItem{Description: "", Quantity: 1, Rate: 1})

	rows, err := tb.Layout()
	if err != nil {
		t.Fatal(err)
	}
	// max(22, 2*6 + 1*11.5)
	if rows[0].Height != 23.5 || len(rows[0].Lines) != 1 {
		t.Errorf("short row = %+v, want one line at height 23.5", rows[0])
	}
	if n := len(rows[1].Lines); n < 2 {
		t.Fatalf("long row wrapped to %d lines", n)
	}
	if want := math.Max(22, 12+float64(len(rows[1].Lines))*11.5); rows[1].Height != want {
		t.Errorf("long row height = %v, want %v", rows[1].Height, want)
	}
	if len(rows[2].Lines) != 1 || rows[2].Lines[0] != "" || rows[2].Height != 23.5 {
		t.Errorf("blank row = %+v", rows[2])
	}
	for _, l := range rows[1].Lines {
		if w, _ := (perRune{}).Width(l, 7.5); w > tb.WrapWidth() {
			t.Errorf("line %q is %v wide, wrap width %v", l, w, tb.WrapWidth())
		}
	}
}

func TestRenderWithTotalRow(t *testing.T) {
	p := newTestPage()
	tb := table.New(p).SetPosition(29.3, 270).SetWidth(coords.A4.W - 58.6).SetTotalRow(true).AddRows(sampleItems...)

	bottom, err := tb.Render()
	if err != nil {
		t.Fatal(err)
	}
	height, err := tb.Height()
	if err != nil {
		t.Fatal(err)
	}
	// 20 header + 6 one-line rows of max(22, 12+11.5) + 22 total.
	if height != 183 {
		t.Errorf("height = %v, want 183", height)
	}
	if want := coords.A4.H - 270 - height; math.Abs(bottom-want) > 1e-9 {
		t.Errorf("bottom = %v, want %v", bottom, want)
	}

	for _, s := range []string{"Item", "Quantity", "Rate", "Amount", "1.", "6.", "Total", "205", "RM 4,235.00", "RM 375.00"} {
		if !hasText(p, s) {
			t.Errorf("missing %q in %q", s, p.Texts())
		}
	}
}

func TestTotalRowIsRightAligned(t *testing.T) {
	p := newTestPage()
	const x, width = 0.0, 200.0
	_, err := table.New(p).SetPosition(x, 0).SetWidth(width).SetTotalRow(true).AddRows(sampleItems...).Render()
	if err != nil {
		t.Fatal(err)
	}
	var amount canvas.TextOp
	for _, op := range p.Ops() {
		if op, ok := op.(canvas.TextOp); ok && op.Text == "RM 4,235.00" {
			amount = op
		}
	}
	w, _ := (perRune{}).Width("RM 4,235.00", 7.25)
	if got, want := amount.X+w, x+width-4; got != want {
		t.Errorf("total amount ends at %v, want %v", got, want)
	}
}

func TestIndexLabel(t *testing.T) {
	if got := table.IndexLabel(0); got != "1." {
		t.Errorf("IndexLabel(0) = %q", got)
	}
	if got := table.IndexLabel(11); got != "12." {
		t.Errorf("IndexLabel(11) = %q", got)
	}
}

func TestLayoutNeedsMetrics(t *testing.T) {
	p := canvas.New(coords.A4, nil).AddPage()
	if _, err := table.New(p).AddRow(docstamp.LineItem{Description: "x"}).Layout(); err == nil {
		t.Fatal("expected an error without font metrics")
	}
}

func testRows() doctpl.Rows {
	return doctpl.Rows{
		Page:   1,
		Bands:  []float64{298.3, 321.6, 344.8, 367.3, 390.6, 413.8},
		Height: 11.6,
		Pad:    0.6,
		Cells: []doctpl.Cell{
			{Name: doctpl.CellIndex, Erase: doctpl.Span{X0: 34.5, X1: 52}, X: 36.7, Font: canvas.Font{Family: canvas.Mono, Size: 7.25}, Color: &canvas.Muted},
			{Name: doctpl.CellDescription, Erase: doctpl.Span{X0: 68, X1: 338}, X: 69, Font: canvas.Font{Family: canvas.Slab, Size: 7.5}},
			{Name: doctpl.CellQuantity, Erase: doctpl.Span{X0: 350, X1: 392}, X: 352.4, Font: canvas.Font{Family: canvas.Slab, Size: 7.25}},
			{Name: doctpl.CellRate, Erase: doctpl.Span{X0: 410, X1: 470}, X: 411.5, Font: canvas.Font{Family: canvas.Slab, Size: 7.25}},
			{Name: doctpl.CellAmount, Erase: doctpl.Span{X0: 495, X1: 555}, X: 496.5, Font: canvas.Font{Family: canvas.Slab, Size: 7.25}},
		},
	}
}

func TestSlotsCapacityBoundary(t *testing.T) {
	p := newTestPage()
	s := table.NewSlots(p, testRows(), docstamp.KindInvoice).AddRows(sampleItems...)
	if err := s.Render(); err != nil {
		t.Fatalf("six items: %v", err)
	}
	if !hasText(p, "6.") || !hasText(p, "RM 540.00") {
		t.Errorf("texts = %q", p.Texts())
	}

	p = newTestPage()
	s = table.NewSlots(p, testRows(), docstamp.KindInvoice).AddRows(sampleItems...).AddRows(sampleItems[0])
	err := s.Render()
	var capErr *docstamp.CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("seven items: got %v, want CapacityExceededError", err)
	}
	if capErr.Capacity != 6 || capErr.Items != 7 || capErr.Kind != docstamp.KindInvoice {
		t.Errorf("error = %+v", capErr)
	}
	if len(p.Ops()) != 0 {
		t.Errorf("drew %d ops before failing", len(p.Ops()))
	}
}

func TestSlotsEraseEveryBand(t *testing.T) {
	p := newTestPage()
	if err := table.NewSlots(p, testRows(), docstamp.KindInvoice).AddRows(sampleItems[:2]...).Render(); err != nil {
		t.Fatal(err)
	}
	rects, texts := 0, 0
	for _, op := range p.Ops() {
		switch op.(type) {
		case canvas.RectOp:
			rects++
		case canvas.TextOp:
			texts++
		}
	}
	if rects != 6*5 {
		t.Errorf("erased %d cells, want 30", rects)
	}
	if texts != 2*5 {
		t.Errorf("drew %d cell texts, want 10", texts)
	}
}

func TestSlotsRejectDescriptionsWiderThanTheirBand(t *testing.T) {
	// The cell holds 338-69 = 269pt, 71 runes of perRune at 7.5pt.
	fits := docstamp.LineItem{Description: strings.Repeat("w", 71), Quantity: 1, Rate: 1}
	p := newTestPage()
	if err := table.NewSlots(p, testRows(), docstamp.KindInvoice).AddRows(fits).Render(); err != nil {
		t.Fatalf("71 runes: %v", err)
	}
	if !hasText(p, fits.Description) {
		t.Errorf("description not drawn in full: %q", p.Texts())
	}

	long := docstamp.LineItem{Description: strings.Repeat("word ", 20) + "CLAUSE-42", Quantity: 1, Rate: 1}
	p = newTestPage()
	err := table.NewSlots(p, testRows(), docstamp.KindInvoice).AddRows(sampleItems[0], long).Render()
	var ve *docstamp.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if ve.Field != "items[1].description" {
		t.Errorf("field = %q", ve.Field)
	}
	if len(p.Ops()) != 0 {
		t.Errorf("drew %d ops before failing", len(p.Ops()))
	}
}

func TestSlotsCollapseDescriptionWhitespace(t *testing.T) {
	p := newTestPage()
	it := docstamp.LineItem{Description: "  Logo \t design\n", Quantity: 1, Rate: 1}
	if err := table.NewSlots(p, testRows(), docstamp.KindInvoice).AddRows(it).Render(); err != nil {
		t.Fatal(err)
	}
	if !hasText(p, "Logo design") {
		t.Errorf("texts = %q", p.Texts())
	}
}
