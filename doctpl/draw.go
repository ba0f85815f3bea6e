package doctpl

import (
	"fmt"

	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
)

// DrawPage draws the base artwork of page n (1-based) onto p.
func (t *Template) DrawPage(p *canvas.Page, n int) error {
	if n < 1 || n > len(t.Pages) {
		return fmt.Errorf("doctpl: %s has no page %d", t.Name, n)
	}
	for i, elem := range t.Pages[n-1].Elements {
		if err := drawElement(p, elem); err != nil {
			return fmt.Errorf("doctpl: page %d element %d: %w", n, i, err)
		}
	}
	return nil
}

// Preview returns a document holding the bare base artwork of every page,
// with no fields stamped.
func (t *Template) Preview(doc *canvas.Document) error {
	for n := range t.Pages {
		if err := t.DrawPage(doc.AddPage(), n+1); err != nil {
			return err
		}
	}
	return doc.Err()
}

func drawElement(p *canvas.Page, elem Element) error {
	switch elem.Type {
	case "text":
		drawText(p, elem)
	case "rect":
		drawRect(p, elem)
	case "line":
		drawLine(p, elem)
	case "image":
		drawImage(p, elem)
	default:
		return fmt.Errorf("unknown element type %q", elem.Type)
	}
	return nil
}

func drawText(p *canvas.Page, elem Element) {
	color := canvas.Ink
	if elem.Color != nil {
		color = *elem.Color
	}
	y := p.Size().FromTop(elem.Y)
	switch elem.Align {
	case canvas.AlignRight:
		p.TextAligned(elem.X, elem.X, y, elem.Text, *elem.Font, color, canvas.AlignRight)
	case canvas.AlignCenter:
		p.TextAligned(elem.X, elem.X1, y, elem.Text, *elem.Font, color, canvas.AlignCenter)
	default:
		p.Text(elem.X, y, elem.Text, *elem.Font, color)
	}
}

func drawRect(p *canvas.Page, elem Element) {
	b := p.Size().Box(*elem.Rect, 0)
	width := elem.LineWidth
	if width == 0 {
		width = 1
	}
	switch {
	case elem.Fill != nil && elem.Stroke != nil:
		p.FillStrokeRect(b, *elem.Fill, *elem.Stroke, width)
	case elem.Fill != nil:
		p.FillRect(b, *elem.Fill)
	case elem.Stroke != nil:
		p.StrokeRect(b, *elem.Stroke, width)
	}
}

func drawLine(p *canvas.Page, elem Element) {
	color := canvas.Rule
	if elem.Color != nil {
		color = *elem.Color
	}
	width := elem.LineWidth
	if width == 0 {
		width = 1
	}
	s := p.Size()
	p.Line(elem.From.X, s.FromTop(elem.From.Y), elem.To.X, s.FromTop(elem.To.Y), width, color)
}

func drawImage(p *canvas.Page, elem Element) {
	b := p.Size().Box(coords.Rect{X0: elem.X, Y0: elem.Y, X1: elem.X + elem.Width, Y1: elem.Y + elem.Height}, 0)
	p.Image(elem.Src, b.X, b.Y, b.W, b.H)
}
