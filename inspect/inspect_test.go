package inspect_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/lvillar/docstamp/assets"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/inspect"
)

// corePDF writes one Helvetica text line per page with gofpdf.
func corePDF(t *testing.T, compress bool, texts ...string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle("Core fonts", false)
	pdf.SetProducer("inspect test", false)
	pdf.SetCreationDate(time.Date(2024, 9, 15, 8, 30, 0, 0, time.UTC))
	pdf.SetFont("Helvetica", "", 12)
	for _, s := range texts {
		pdf.AddPage()
		pdf.Text(72, 100, s)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadCorePDF(t *testing.T) {
	for _, compress := range []bool{false, true} {
		data := corePDF(t, compress, "Hello (World)", "Page Two")
		doc, err := inspect.Read(data)
		if err != nil {
			t.Fatalf("compress=%v: %v", compress, err)
		}
		if doc.NumPages() != 2 {
			t.Fatalf("compress=%v: %d pages", compress, doc.NumPages())
		}
		if doc.Version == "" {
			t.Error("missing version")
		}

		p, _ := doc.Page(1)
		if math.Abs(p.MediaBox.Width()-595.28) > 0.01 || math.Abs(p.MediaBox.Height()-841.89) > 0.01 {
			t.Errorf("MediaBox = %+v", p.MediaBox)
		}
		runs, err := p.Runs()
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 1 {
			t.Fatalf("runs = %+v", runs)
		}
		r := runs[0]
		if r.Text != "Hello (World)" || r.Font != "Helvetica" || r.Size != 12 {
			t.Errorf("run = %+v", r)
		}
		if math.Abs(r.X-72) > 0.01 || math.Abs(r.Y-(841.89-100)) > 0.01 {
			t.Errorf("origin = (%.2f, %.2f)", r.X, r.Y)
		}

		p2, _ := doc.Page(2)
		if text, _ := p2.Text(); text != "Page Two" {
			t.Errorf("page 2 text = %q", text)
		}
	}
}

func TestInfo(t *testing.T) {
	doc, err := inspect.Read(corePDF(t, true, "x"))
	if err != nil {
		t.Fatal(err)
	}
	info := doc.Info()
	if info.Title != "Core fonts" || info.Producer != "inspect test" {
		t.Errorf("info = %+v", info)
	}
	if info.Created.Year() != 2024 || info.Created.Month() != time.September {
		t.Errorf("created = %v", info.Created)
	}
}

func TestCanvasUTF8Text(t *testing.T) {
	b, err := assets.Default()
	if err != nil {
		t.Fatal(err)
	}
	d := canvas.New(coords.A4, b.Faces())
	p := d.AddPage()
	p.Text(40, 700, "RM 1,234.50 € Kuala Lumpur", canvas.Font{Family: canvas.Slab, Size: 9}, canvas.Ink)
	p.Image(assets.LogoName, 34, 778, 42, 42)
	d.AddPage().Text(40, 60, "second", canvas.Font{Family: canvas.Mono, Size: 7}, canvas.Muted)

	var buf bytes.Buffer
	if err := canvas.WritePDF(&buf, d, b.Resources(), canvas.WriteOptions{Title: "Ünïcode", Compress: true}); err != nil {
		t.Fatal(err)
	}
	doc, err := inspect.Read(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Info().Title; got != "Ünïcode" {
		t.Errorf("title = %q", got)
	}
	if !doc.Info().Created.Equal(canvas.DefaultTimestamp) {
		t.Errorf("created = %v", doc.Info().Created)
	}

	p1, _ := doc.Page(1)
	runs, err := p1.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Text != "RM 1,234.50 € Kuala Lumpur" {
		t.Fatalf("runs = %+v", runs)
	}
	if math.Abs(runs[0].X-40) > 0.01 || math.Abs(runs[0].Y-700) > 0.01 {
		t.Errorf("origin = (%.2f, %.2f)", runs[0].X, runs[0].Y)
	}
	if images, _ := p1.Images(); len(images) != 1 {
		t.Errorf("images = %v", images)
	}
	if len(p1.Fonts()) != 2 {
		t.Errorf("fonts = %v, want the slab and mono faces", p1.Fonts())
	}
}

func TestPageRange(t *testing.T) {
	doc, err := inspect.Read(corePDF(t, false, "a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 3} {
		if _, err := doc.Page(n); err == nil {
			t.Errorf("Page(%d) should fail", n)
		}
	}
	var seen []int
	for n, p := range doc.Pages() {
		if p.Number != n {
			t.Errorf("page %d numbered %d", n, p.Number)
		}
		seen = append(seen, n)
	}
	if len(seen) != 2 {
		t.Errorf("iterated %v", seen)
	}
}

func TestReadRejects(t *testing.T) {
	good := corePDF(t, true, "x")
	if _, err := inspect.Read([]byte("hello")); !errors.Is(err, inspect.ErrNotPDF) {
		t.Errorf("plain text: %v", err)
	}
	if _, err := inspect.Read(good[:len(good)/2]); err == nil {
		t.Error("truncated file should fail")
	}
	broken := bytes.Replace(good, []byte("xref"), []byte("xxxx"), 1)
	if _, err := inspect.Read(broken); err == nil || !strings.Contains(err.Error(), "inspect:") {
		t.Errorf("broken xref: %v", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, corePDF(t, true, "on disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := inspect.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := doc.Page(1)
	if text, _ := p.Text(); text != "on disk" {
		t.Errorf("text = %q", text)
	}
	if _, err := inspect.Open(path + ".missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}
