package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Rect is a rectangle in default user space, [llx lly urx ury].
type Rect struct {
	LLX, LLY, URX, URY float64
}

func (r Rect) Width() float64  { return r.URX - r.LLX }
func (r Rect) Height() float64 { return r.URY - r.LLY }

// Page is one page of a Document.
type Page struct {
	Number   int
	MediaBox Rect

	fonts   map[Name]fontInfo
	content []byte
}

type fontInfo struct {
	base      string
	composite bool
}

// Run is one string painted by a text-showing operator. X and Y are the
// text origin in default user space, so Y grows upward.
type Run struct {
	X, Y float64
	Font string
	Size float64
	Text string
}

// Content returns the decoded content streams of the page.
func (p *Page) Content() []byte { return p.content }

// Fonts returns the base names of the fonts in the page resources, sorted,
// with any subset tag removed.
func (p *Page) Fonts() []string {
	var names []string
	for _, f := range p.fonts {
		names = append(names, f.base)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Runs returns the text runs of the page in content order.
func (p *Page) Runs() ([]Run, error) {
	var runs []Run
	err := p.walk(func(r Run) { runs = append(runs, r) }, nil)
	return runs, err
}

// Text returns the text of the page, one run per line.
func (p *Page) Text() (string, error) {
	runs, err := p.Runs()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Text)
	}
	return b.String(), nil
}

// Images returns the names of the XObjects the page paints, in order.
func (p *Page) Images() ([]string, error) {
	var names []string
	err := p.walk(nil, func(n Name) { names = append(names, string(n)) })
	return names, err
}

type textState struct {
	font         Name
	size         float64
	leading      float64
	x, y         float64
	lineX, lineY float64
}

// walk interprets the content stream, reporting text runs and XObject uses.
// Only text state and the graphics state stack are tracked.
func (p *Page) walk(onText func(Run), onImage func(Name)) error {
	l := newLexer(p.content, false)
	var (
		ts    textState
		saved []textState
		args  []Object
	)
	num := func(i int) float64 {
		if i >= len(args) {
			return 0
		}
		f, _ := Number(args[i])
		return f
	}
	show := func(s []byte) {
		if onText == nil {
			return
		}
		f := p.fonts[ts.font]
		onText(Run{X: ts.x, Y: ts.y, Font: f.base, Size: ts.size, Text: decodeShown(s, f.composite)})
	}
	nextLine := func() {
		ts.lineY -= ts.leading
		ts.x, ts.y = ts.lineX, ts.lineY
	}

	for !l.eof() {
		o, err := l.object()
		if err != nil {
			return fmt.Errorf("inspect: page %d content: %w", p.Number, err)
		}
		op, ok := o.(keyword)
		if !ok {
			args = append(args, o)
			continue
		}
		switch op {
		case "q":
			saved = append(saved, ts)
		case "Q":
			if n := len(saved); n > 0 {
				ts, saved = saved[n-1], saved[:n-1]
			}
		case "BT":
			ts.x, ts.y, ts.lineX, ts.lineY = 0, 0, 0, 0
		case "Tf":
			if len(args) == 2 {
				ts.font, _ = args[0].(Name)
				ts.size = num(1)
			}
		case "TL":
			ts.leading = num(0)
		case "Td", "TD":
			if op == "TD" {
				ts.leading = -num(1)
			}
			ts.lineX += num(0)
			ts.lineY += num(1)
			ts.x, ts.y = ts.lineX, ts.lineY
		case "Tm":
			ts.lineX, ts.lineY = num(4), num(5)
			ts.x, ts.y = ts.lineX, ts.lineY
		case "T*":
			nextLine()
		case "Tj", "'", `"`:
			if op != "Tj" {
				nextLine()
			}
			if len(args) > 0 {
				if s, ok := args[len(args)-1].(String); ok {
					show(s)
				}
			}
		case "TJ":
			if len(args) == 1 {
				if a, ok := args[0].(Array); ok {
					show(joinTJ(a, p.fonts[ts.font].composite))
				}
			}
		case "Do":
			if n, ok := firstName(args); ok && onImage != nil {
				onImage(n)
			}
		case "BI":
			if err := l.skipInlineImage(); err != nil {
				return fmt.Errorf("inspect: page %d content: %w", p.Number, err)
			}
		}
		args = args[:0]
	}
	return nil
}

func firstName(args []Object) (Name, bool) {
	if len(args) == 0 {
		return "", false
	}
	n, ok := args[0].(Name)
	return n, ok
}

// joinTJ concatenates the strings of a TJ array. Kerning wider than a
// quarter em becomes a space.
func joinTJ(a Array, composite bool) []byte {
	var out []byte
	for _, o := range a {
		switch v := o.(type) {
		case String:
			out = append(out, v...)
		case Int, Real:
			if f, _ := Number(v); f < -250 {
				if composite {
					out = append(out, 0, ' ')
				} else {
					out = append(out, ' ')
				}
			}
		}
	}
	return out
}

// decodeShown maps shown bytes to text. Composite fonts are assumed to use
// Identity-H with code points as CIDs, which is what gofpdf writes for
// UTF-8 fonts.
func decodeShown(s []byte, composite bool) string {
	if composite {
		return decodeUTF16(s)
	}
	return TextString(s)
}

func (l *lexer) skipInlineImage() error {
	i := bytes.Index(l.data[l.pos:], []byte("EI"))
	for i >= 0 {
		at := l.pos + i
		before := at == 0 || isSpace(l.data[at-1])
		after := at+2 >= len(l.data) || isSpace(l.data[at+2])
		if before && after {
			l.pos = at + 2
			return nil
		}
		next := bytes.Index(l.data[at+2:], []byte("EI"))
		if next < 0 {
			break
		}
		i = at + 2 + next - l.pos
	}
	return errors.New("unterminated inline image")
}

// loadPages walks the page tree from the catalog.
func (d *Document) loadPages() error {
	root := d.dict(d.trailer["Root"])
	if root == nil {
		return errors.New("inspect: missing document catalog")
	}
	tree := d.dict(root["Pages"])
	if tree == nil {
		return errors.New("inspect: missing page tree")
	}
	return d.walkTree(tree, Dict{}, 0)
}

var inheritable = []Name{"MediaBox", "Resources"}

func (d *Document) walkTree(node, inherited Dict, depth int) error {
	if depth > 64 {
		return errors.New("inspect: page tree too deep")
	}
	attrs := Dict{}
	for _, k := range inheritable {
		if v, ok := node[k]; ok {
			attrs[k] = v
		} else if v, ok := inherited[k]; ok {
			attrs[k] = v
		}
	}

	if node.Name("Type") != "Page" {
		kids, _ := d.Resolve(node["Kids"])
		arr, _ := kids.(Array)
		for _, k := range arr {
			kid := d.dict(k)
			if kid == nil {
				continue
			}
			if err := d.walkTree(kid, attrs, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	p := &Page{Number: len(d.pages) + 1, fonts: map[Name]fontInfo{}}
	if box, err := d.rect(attrs["MediaBox"]); err == nil {
		p.MediaBox = box
	}
	if res := d.dict(attrs["Resources"]); res != nil {
		for name, ref := range d.dict(res["Font"]) {
			f := d.dict(ref)
			base := string(f.Name("BaseFont"))
			if i := strings.IndexByte(base, '+'); i == 6 {
				base = base[i+1:]
			}
			p.fonts[name] = fontInfo{base: base, composite: f.Name("Subtype") == "Type0"}
		}
	}

	contents, err := d.Resolve(node["Contents"])
	if err != nil {
		return fmt.Errorf("inspect: page %d contents: %w", p.Number, err)
	}
	streams := Array{contents}
	if a, ok := contents.(Array); ok {
		streams = a
	}
	for _, o := range streams {
		v, err := d.Resolve(o)
		if err != nil {
			return fmt.Errorf("inspect: page %d contents: %w", p.Number, err)
		}
		s, ok := v.(Stream)
		if !ok {
			continue
		}
		data, err := Decode(s)
		if err != nil {
			return fmt.Errorf("inspect: page %d contents: %w", p.Number, err)
		}
		p.content = append(append(p.content, data...), '\n')
	}
	d.pages = append(d.pages, p)
	return nil
}

func (d *Document) rect(o Object) (Rect, error) {
	v, err := d.Resolve(o)
	if err != nil {
		return Rect{}, err
	}
	a, ok := v.(Array)
	if !ok || len(a) != 4 {
		return Rect{}, errors.New("inspect: rectangle is not a 4-element array")
	}
	var f [4]float64
	for i, o := range a {
		if f[i], ok = Number(o); !ok {
			return Rect{}, fmt.Errorf("inspect: rectangle element %d is not a number", i)
		}
	}
	return Rect{LLX: f[0], LLY: f[1], URX: f[2], URY: f[3]}, nil
}
