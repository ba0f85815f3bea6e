package doctpl

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/textwrap"
)

type perRune struct{}

func (perRune) Width(s string, size float64) (float64, error) {
	return float64(utf8.RuneCountInString(s)) * size * 0.5, nil
}

func testFaces() map[string]textwrap.Measurer {
	return map[string]textwrap.Measurer{
		canvas.Slab: perRune{}, canvas.SlabBold: perRune{}, canvas.Mono: perRune{},
	}
}

func loadShipped(t *testing.T) *Template {
	t.Helper()
	data, err := os.ReadFile("../assets/files/invoice-v1.json")
	if err != nil {
		t.Fatal(err)
	}
	tpl, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tpl
}

func TestParseShippedTemplate(t *testing.T) {
	tpl := loadShipped(t)

	if tpl.PageSize != coords.A4 {
		t.Errorf("page size = %+v, want %+v", tpl.PageSize, coords.A4)
	}
	if got := tpl.Rows.Capacity(); got != 6 {
		t.Errorf("capacity = %d, want 6", got)
	}
	total := tpl.Field(FieldTotal)
	if total.EraseColor() != canvas.Accent {
		t.Errorf("total erase color = %+v, want accent", total.EraseColor())
	}
	if total.TextColor() != canvas.White {
		t.Errorf("total text color = %+v, want white", total.TextColor())
	}
	if f := tpl.Field(FieldFooterNumber); !f.OnPage(1) || !f.OnPage(2) || f.OnPage(3) {
		t.Errorf("footer number pages = %v", f.Pages)
	}
	if got := tpl.Images(); len(got) != 1 || got[0] != "logo" {
		t.Errorf("Images() = %v", got)
	}
}

func TestFieldPaddingStaysInsideErase(t *testing.T) {
	tpl := loadShipped(t)
	for name, f := range tpl.Fields {
		if f.Pad < 0 || f.Pad > 2 {
			t.Errorf("%s: pad %v outside the border stroke allowance", name, f.Pad)
		}
	}
	for i := 1; i < len(tpl.Rows.Bands); i++ {
		prev := tpl.Rows.Bands[i-1] + tpl.Rows.Height + tpl.Rows.Pad
		if next := tpl.Rows.Bands[i] - tpl.Rows.Pad; next <= prev {
			t.Errorf("band %d overlaps band %d", i, i-1)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Template)
		want   string
	}{
		{"one page", func(t *Template) { t.Pages = t.Pages[:1] }, "want 2 pages"},
		{"missing field", func(t *Template) { delete(t.Fields, FieldTotal) }, `missing field "total"`},
		{"field off page", func(t *Template) {
			f := t.Fields[FieldTerms]
			f.Pages = []int{3}
			t.Fields[FieldTerms] = f
		}, "names page 3"},
		{"no bands", func(t *Template) { t.Rows.Bands = nil }, "need bands"},
		{"missing cell", func(t *Template) { t.Rows.Cells = t.Rows.Cells[1:] }, `missing row cell "index"`},
		{"bad element", func(t *Template) {
			t.Pages[1].Elements = append(t.Pages[1].Elements, Element{Type: "spacer"})
		}, `unknown element type "spacer"`},
		{"zero size", func(t *Template) { t.PageSize = coords.Size{} }, "invalid page size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := loadShipped(t)
			tt.mutate(tpl)
			err := tpl.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"pages": [`)); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestDrawPage(t *testing.T) {
	doc := canvas.New(coords.A4, testFaces())
	p := doc.AddPage()
	tpl := &Template{
		Name:     "t",
		PageSize: coords.A4,
		Pages: []Page{{Elements: []Element{
			{Type: "text", Text: "Title", X: 100, Y: 50, Align: canvas.AlignRight, Font: &canvas.Font{Family: canvas.Slab, Size: 10}},
			{Type: "rect", Rect: &coords.Rect{X0: 10, Y0: 20, X1: 30, Y1: 60}, Fill: &canvas.Rule},
			{Type: "line", From: &Point{X: 0, Y: 100}, To: &Point{X: 50, Y: 100}},
			{Type: "image", Src: "logo", X: 34, Y: 22, Width: 42, Height: 42},
		}}},
	}
	if err := tpl.DrawPage(p, 1); err != nil {
		t.Fatal(err)
	}
	ops := p.Ops()
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4", len(ops))
	}

	text := ops[0].(canvas.TextOp)
	// "Title" is 5 runes * 10 * 0.5 = 25pt wide, right-aligned at x=100.
	if text.X != 75 || text.Y != coords.A4.H-50 {
		t.Errorf("text at (%v, %v)", text.X, text.Y)
	}
	rect := ops[1].(canvas.RectOp)
	if rect.Box != (coords.Box{X: 10, Y: coords.A4.H - 60, W: 20, H: 40}) || rect.Stroke != nil {
		t.Errorf("rect = %+v", rect)
	}
	line := ops[2].(canvas.LineOp)
	if line.Y1 != coords.A4.H-100 || line.Width != 1 || line.Color != canvas.Rule {
		t.Errorf("line = %+v", line)
	}
	img := ops[3].(canvas.ImageOp)
	if img.Y != coords.A4.H-64 || img.W != 42 {
		t.Errorf("image = %+v", img)
	}

	if err := tpl.DrawPage(p, 2); err == nil {
		t.Error("expected error for missing page")
	}
}

func TestPreviewDrawsEveryPage(t *testing.T) {
	tpl := loadShipped(t)
	doc := canvas.New(tpl.PageSize, testFaces())
	if err := tpl.Preview(doc); err != nil {
		t.Fatal(err)
	}
	if doc.NumPages() != 2 {
		t.Fatalf("pages = %d, want 2", doc.NumPages())
	}
	if !contains(doc.Pages()[0].Texts(), "Invoice") {
		t.Errorf("page 1 texts %q lack the title", doc.Pages()[0].Texts())
	}
}

func TestElementJSON(t *testing.T) {
	var e Element
	if err := json.Unmarshal([]byte(`{"type":"text","text":"x","font":{"family":"mono","size":6},"color":{"r":1,"g":0,"b":0}}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.Font.Family != canvas.Mono || e.Color.R != 1 {
		t.Errorf("decoded %+v", e)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
