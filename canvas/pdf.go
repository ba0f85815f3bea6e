package canvas

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DefaultTimestamp is stamped as creation and modification date when the
// caller supplies none, so identical documents serialize to identical bytes.
var DefaultTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Image is an encoded raster image registered under a name.
type Image struct {
	Data []byte
	Type string // "png" or "jpg"
}

// Resources holds the font programs and images a document may reference.
// Only the entries referenced by some operation are embedded.
type Resources struct {
	Fonts  map[string][]byte
	Images map[string]Image
}

// WriteOptions controls document-level metadata and encoding.
type WriteOptions struct {
	Producer  string
	Title     string
	Compress  bool
	Timestamp time.Time
}

// WritePDF serializes d to w. It fails if d holds a drawing error, if an
// operation references a font or image missing from res, or if the PDF
// backend reports an error.
func WritePDF(w io.Writer, d *Document, res Resources, opts WriteOptions) error {
	if err := d.Err(); err != nil {
		return err
	}

	fontsUsed, imagesUsed := d.references()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: d.size.W, Ht: d.size.H},
	})
	pdf.SetCatalogSort(true)
	pdf.SetCompression(opts.Compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = DefaultTimestamp
	}
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	if opts.Producer != "" {
		pdf.SetProducer(opts.Producer, true)
	}
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}

	for _, family := range fontsUsed {
		data, ok := res.Fonts[family]
		if !ok {
			return fmt.Errorf("canvas: font %q is drawn but not supplied", family)
		}
		// The subsetter writes checksums into the slice it is given.
		pdf.AddUTF8FontFromBytes(family, "", bytes.Clone(data))
	}
	for _, name := range imagesUsed {
		img, ok := res.Images[name]
		if !ok {
			return fmt.Errorf("canvas: image %q is drawn but not supplied", name)
		}
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	}
	if pdf.Err() {
		return fmt.Errorf("canvas: registering resources: %w", pdf.Error())
	}

	h := d.size.H
	for _, p := range d.pages {
		pdf.AddPage()
		for _, op := range p.ops {
			switch op := op.(type) {
			case TextOp:
				r, g, b := op.Color.Bytes()
				pdf.SetFont(op.Font.Family, "", op.Font.Size)
				pdf.SetTextColor(r, g, b)
				pdf.Text(op.X, h-op.Y, op.Text)
			case RectOp:
				style := ""
				if op.Fill != nil {
					r, g, b := op.Fill.Bytes()
					pdf.SetFillColor(r, g, b)
					style += "F"
				}
				if op.Stroke != nil {
					r, g, b := op.Stroke.Bytes()
					pdf.SetDrawColor(r, g, b)
					pdf.SetLineWidth(op.LineWidth)
					style += "D"
				}
				if style == "" {
					continue
				}
				pdf.Rect(op.Box.X, h-op.Box.Top(), op.Box.W, op.Box.H, style)
			case LineOp:
				r, g, b := op.Color.Bytes()
				pdf.SetDrawColor(r, g, b)
				pdf.SetLineWidth(op.Width)
				pdf.Line(op.X1, h-op.Y1, op.X2, h-op.Y2)
			case ImageOp:
				pdf.ImageOptions(op.Name, op.X, h-(op.Y+op.H), op.W, op.H, false,
					gofpdf.ImageOptions{ImageType: res.Images[op.Name].Type}, 0, "")
			}
			if pdf.Err() {
				return fmt.Errorf("canvas: page %d: %w", p.number, pdf.Error())
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("canvas: writing output: %w", err)
	}
	return nil
}

// references returns the sorted font families and image names drawn anywhere
// in the document.
func (d *Document) references() (fonts, images []string) {
	seenFonts := map[string]bool{}
	seenImages := map[string]bool{}
	for _, p := range d.pages {
		for _, op := range p.ops {
			switch op := op.(type) {
			case TextOp:
				if !seenFonts[op.Font.Family] {
					seenFonts[op.Font.Family] = true
					fonts = append(fonts, op.Font.Family)
				}
			case ImageOp:
				if !seenImages[op.Name] {
					seenImages[op.Name] = true
					images = append(images, op.Name)
				}
			}
		}
	}
	sort.Strings(fonts)
	sort.Strings(images)
	return fonts, images
}
