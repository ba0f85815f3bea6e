// Package footer stamps per-page footer metadata: document number, display
// date, recipient, page label and the disclaimer.
package footer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/doctpl"
	"github.com/lvillar/docstamp/overlay"
)

// Disclaimer is centered at the bottom of every page.
const Disclaimer = "This is an electronically generated document, no signature is required."

var (
	monthFirst = regexp.MustCompile(`^([A-Za-z]{3,9})\s+(\d{1,2}),?\s+(\d{4})$`)
	dayFirst   = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})\s+(\d{4})$`)

	months = map[string]string{
		"jan": "Jan", "feb": "Feb", "mar": "Mar", "apr": "Apr",
		"may": "May", "jun": "Jun", "jul": "Jul", "aug": "Aug",
		"sep": "Sep", "oct": "Oct", "nov": "Nov", "dec": "Dec",
	}
)

// ToFooterDate normalizes "Sep 30, 2024" and "30 Sep 2024" spellings to
// "30 Sep 2024". Month names are matched on their first three letters, case
// insensitively, and leading zeros are dropped from the day. Anything else is
// trimmed and returned with its commas removed.
func ToFooterDate(input string) string {
	s := strings.TrimSpace(input)
	if m := monthFirst.FindStringSubmatch(s); m != nil {
		if out, ok := canonical(m[2], m[1], m[3]); ok {
			return out
		}
	}
	if m := dayFirst.FindStringSubmatch(s); m != nil {
		if out, ok := canonical(m[1], m[2], m[3]); ok {
			return out
		}
	}
	return strings.ReplaceAll(s, ",", "")
}

func canonical(day, month, year string) (string, bool) {
	mon, ok := months[strings.ToLower(month[:3])]
	if !ok {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%d %s %s", d, mon, year), true
}

// PageLabel returns "Page n of total".
func PageLabel(n, total int) string {
	return fmt.Sprintf("Page %d of %d", n, total)
}

// Info is the document metadata repeated on every page.
type Info struct {
	Label          string // "Invoice" or "Quotation"
	RecipientLabel string // "Billed To" or "Quotation For"
	Number         string
	Date           string // display string, normalized by ToFooterDate when stamped
	Recipient      string
}

// Layout positions a footer drawn from scratch. Y is the value baseline.
type Layout struct {
	Y, X0, X1    float64
	DisclaimerY  float64
	DateOffset   float64
	ToOffset     float64
	PageOffset   float64
	LabelGap     float64
	DividerGap   float64
	DividerWidth float64
	Font         canvas.Font
}

// DefaultLayout matches the reference design for a page of width w.
func DefaultLayout(w float64) Layout {
	return Layout{
		Y:            26,
		X0:           28,
		X1:           w - 28,
		DisclaimerY:  10,
		DateOffset:   70,
		ToOffset:     150,
		PageOffset:   55,
		LabelGap:     8,
		DividerGap:   18,
		DividerWidth: 1,
		Font:         canvas.Font{Family: canvas.Mono, Size: 6},
	}
}

// Draw draws a complete footer on p: divider, labelled values, page label and
// the centered disclaimer.
func Draw(p *canvas.Page, l Layout, info Info) {
	y, x0 := l.Y, l.X0
	p.Line(x0, y+l.DividerGap, l.X1, y+l.DividerGap, l.DividerWidth, canvas.Divider)

	date := ToFooterDate(info.Date)
	for _, c := range []struct {
		x            float64
		label, value string
	}{
		{x0, info.Label + " No", info.Number},
		{x0 + l.DateOffset, info.Label + " Date", date},
		{x0 + l.ToOffset, info.RecipientLabel, info.Recipient},
	} {
		p.Text(c.x, y+l.LabelGap, c.label, l.Font, canvas.Muted)
		p.Text(c.x, y, c.value, l.Font, canvas.Ink)
	}

	p.Text(l.X1-l.PageOffset, y, PageLabel(p.Number(), p.Doc().NumPages()), l.Font, canvas.Ink)
	w := p.Size().W
	p.TextAligned(0, w, l.DisclaimerY, Disclaimer, l.Font, canvas.Muted, canvas.AlignCenter)
}

// Stamp replaces the footer fields of a template-backed page.
func Stamp(p *canvas.Page, t *doctpl.Template, info Info) {
	overlay.StampFields(p, t, []overlay.FieldValue{
		overlay.Value(doctpl.FieldFooterNumber, info.Number),
		overlay.Value(doctpl.FieldFooterDate, ToFooterDate(info.Date)),
		overlay.Value(doctpl.FieldFooterRecipient, info.Recipient),
		overlay.Value(doctpl.FieldFooterPage, PageLabel(p.Number(), p.Doc().NumPages())),
		overlay.Value(doctpl.FieldFooterDisclaimer, Disclaimer),
	})
}
