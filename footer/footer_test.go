package footer

import (
	"os"
	"testing"
	"unicode/utf8"

	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/doctpl"
	"github.com/lvillar/docstamp/textwrap"
)

type perRune struct{}

func (perRune) Width(s string, size float64) (float64, error) {
	return float64(utf8.RuneCountInString(s)) * size * 0.5, nil
}

func TestToFooterDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Sep 30, 2024", "30 Sep 2024"},
		{"30 Sep 2024", "30 Sep 2024"},
		{"September 3, 2024", "3 Sep 2024"},
		{"sept 03 2024", "3 Sep 2024"},
		{"03 OCTOBER 2024", "3 Oct 2024"},
		{"  Jan 1, 2025  ", "1 Jan 2025"},
		{"Foo 30, 2024", "Foo 30 2024"},
		{"2024-09-30", "2024-09-30"},
		{"30/09/2024, Monday", "30/09/2024 Monday"},
		{"Q3, 2024", "Q3 2024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToFooterDate(tt.in); got != tt.want {
			t.Errorf("ToFooterDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToFooterDateIsIdempotent(t *testing.T) {
	for _, in := range []string{"Sep 30, 2024", "30 Sep 2024", "Dec 1 1999", "whatever, really"} {
		once := ToFooterDate(in)
		if twice := ToFooterDate(once); twice != once {
			t.Errorf("ToFooterDate(%q) = %q, then %q", in, once, twice)
		}
	}
}

func TestPageLabel(t *testing.T) {
	if got := PageLabel(1, 2); got != "Page 1 of 2" {
		t.Errorf("PageLabel(1, 2) = %q", got)
	}
}

func newDoc() *canvas.Document {
	return canvas.New(coords.A4, map[string]textwrap.Measurer{canvas.Mono: perRune{}, canvas.Slab: perRune{}})
}

var info = Info{
	Label:          "Quotation",
	RecipientLabel: "Quotation For",
	Number:         "QT-0042",
	Date:           "Sep 30, 2024",
	Recipient:      "Acme Sdn Bhd",
}

func TestDrawStampsEveryPage(t *testing.T) {
	doc := newDoc()
	p1, p2 := doc.AddPage(), doc.AddPage()
	l := DefaultLayout(coords.A4.W)
	Draw(p1, l, info)
	Draw(p2, l, info)

	want := map[*canvas.Page]string{p1: "Page 1 of 2", p2: "Page 2 of 2"}
	for p, label := range want {
		texts := map[string]bool{}
		for _, s := range p.Texts() {
			texts[s] = true
		}
		for _, s := range []string{"Quotation No", "QT-0042", "Quotation Date", "30 Sep 2024", "Quotation For", "Acme Sdn Bhd", label, Disclaimer} {
			if !texts[s] {
				t.Errorf("page %d: missing %q", p.Number(), s)
			}
		}
	}

	for _, op := range p1.Ops() {
		if op, ok := op.(canvas.TextOp); ok && op.Text == Disclaimer {
			w, _ := perRune{}.Width(Disclaimer, 6)
			if left, right := op.X, coords.A4.W-(op.X+w); left-right > 1e-9 || right-left > 1e-9 {
				t.Errorf("disclaimer not centered: margins %v and %v", left, right)
			}
			if op.Y != 10 {
				t.Errorf("disclaimer baseline = %v, want 10", op.Y)
			}
		}
	}
}

func TestStampUsesTemplateFields(t *testing.T) {
	data, err := os.ReadFile("../assets/files/invoice-v1.json")
	if err != nil {
		t.Fatal(err)
	}
	tpl, err := doctpl.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	doc := newDoc()
	doc.AddPage()
	p2 := doc.AddPage()
	Stamp(p2, tpl, Info{Label: "Invoice", Number: "INV-7", Date: "Oct 1, 2024", Recipient: "Acme"})

	texts := map[string]bool{}
	for _, s := range p2.Texts() {
		texts[s] = true
	}
	for _, s := range []string{"INV-7", "1 Oct 2024", "Acme", "Page 2 of 2", Disclaimer} {
		if !texts[s] {
			t.Errorf("missing %q in %q", s, p2.Texts())
		}
	}

	f := tpl.Field(doctpl.FieldFooterNumber)
	for _, op := range p2.Ops() {
		if op, ok := op.(canvas.TextOp); ok && op.Text == "INV-7" {
			if op.X != f.Line.X0 || op.Y != coords.Baseline(f.Line, coords.A4.H) {
				t.Errorf("number at (%v, %v)", op.X, op.Y)
			}
		}
	}
}
