package inspect

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"time"
	"unicode/utf16"
)

// Document is a parsed PDF file.
type Document struct {
	Version string

	data    []byte
	xref    map[int]xrefEntry
	trailer Dict
	pages   []*Page
}

// Info is the document information dictionary.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Created  time.Time
	Modified time.Time
}

// Open reads and parses the PDF file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	return Read(data)
}

// ReadFrom parses a PDF read in full from r.
func ReadFrom(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inspect: reading input: %w", err)
	}
	return Read(data)
}

// Read parses data as a PDF file. The page tree is walked and every page's
// content stream decoded up front.
func Read(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	d := &Document{data: data}
	if i := bytes.IndexAny(data, "\r\n"); i > 5 {
		d.Version = string(data[5:i])
	}

	off, err := startXref(data)
	if err != nil {
		return nil, err
	}
	if d.xref, d.trailer, err = readXref(data, off); err != nil {
		return nil, err
	}
	if err := d.loadPages(); err != nil {
		return nil, err
	}
	return d, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return len(d.pages) }

// Page returns the 1-based page n.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("inspect: page %d out of range [1, %d]", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// Pages iterates over the pages with their 1-based numbers.
func (d *Document) Pages() iter.Seq2[int, *Page] {
	return func(yield func(int, *Page) bool) {
		for i, p := range d.pages {
			if !yield(i+1, p) {
				return
			}
		}
	}
}

// Info returns the document information dictionary. Missing entries are
// left zero.
func (d *Document) Info() Info {
	o, _ := d.Resolve(d.trailer["Info"])
	dict, _ := o.(Dict)
	text := func(key Name) string {
		s, _ := dict[key].(String)
		return TextString(s)
	}
	return Info{
		Title:    text("Title"),
		Author:   text("Author"),
		Subject:  text("Subject"),
		Creator:  text("Creator"),
		Producer: text("Producer"),
		Created:  parseDate(text("CreationDate")),
		Modified: parseDate(text("ModDate")),
	}
}

// Resolve follows o if it is a reference. Unknown references resolve to Null.
func (d *Document) Resolve(o Object) (Object, error) {
	for range 32 {
		r, ok := o.(Ref)
		if !ok {
			return o, nil
		}
		e, ok := d.xref[r.Num]
		if !ok {
			return Null{}, nil
		}
		if e.offset < 0 || e.offset >= int64(len(d.data)) {
			return nil, fmt.Errorf("inspect: object %s at offset %d out of range", r, e.offset)
		}
		got, v, err := newLexer(d.data[e.offset:], true).indirect()
		if err != nil {
			return nil, err
		}
		if got.Num != r.Num {
			return nil, fmt.Errorf("inspect: xref points object %s at object %s", r, got)
		}
		o = v
	}
	return nil, fmt.Errorf("inspect: reference chain too deep")
}

func (d *Document) dict(o Object) Dict {
	v, err := d.Resolve(o)
	if err != nil {
		return nil
	}
	dict, _ := v.(Dict)
	return dict
}

// TextString decodes a PDF text string: UTF-16BE when it carries a byte
// order mark, PDFDocEncoding (read as Latin-1) otherwise.
func TextString(s []byte) string {
	if len(s) >= 2 && s[0] == 0xFE && s[1] == 0xFF {
		return decodeUTF16(s[2:])
	}
	r := make([]rune, len(s))
	for i, c := range s {
		r[i] = rune(c)
	}
	return string(r)
}

func decodeUTF16(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(u))
}

// parseDate reads "D:YYYYMMDDHHmmSS" with an optional Z or +HH'mm' suffix.
// Unparseable dates are zero.
func parseDate(s string) time.Time {
	if len(s) < 6 || s[:2] != "D:" {
		return time.Time{}
	}
	s = s[2:]
	digits := 0
	for digits < len(s) && digits < 14 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < 4 || digits%2 != 0 {
		return time.Time{}
	}
	t, err := time.Parse("20060102150405"[:digits], s[:digits])
	if err != nil {
		return time.Time{}
	}
	rest := s[digits:]
	if len(rest) >= 3 && (rest[0] == '+' || rest[0] == '-') {
		hh, _ := strconv.Atoi(rest[1:3])
		mm := 0
		if len(rest) >= 6 {
			mm, _ = strconv.Atoi(rest[4:6])
		}
		off := hh*3600 + mm*60
		if rest[0] == '-' {
			off = -off
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.FixedZone("", off))
	}
	return t
}
