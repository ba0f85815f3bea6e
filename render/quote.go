package render

import (
	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/assets"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/coords"
	"github.com/lvillar/docstamp/footer"
	"github.com/lvillar/docstamp/money"
	"github.com/lvillar/docstamp/overlay"
	"github.com/lvillar/docstamp/table"
)

// Quotation layout, in points. Tops are measured down from the top of the page.
const (
	logoX, logoBottom, logoW = 34.0, 64.0, 42.0
	titleSize, titleMargin  = 28.0, 34.0
	titleBaseline           = 86.0

	partyTop, partyWidth   = 154.0, 170.0
	partyFromX, partyForX  = 29.3, 210.0
	addressStep            = 11.0
	detailsX, detailsTop   = 394.4, 157.1
	detailsValueOffset     = 120.0
	tableX, tableTop       = 29.3, 270.0
	tableMargin            = 29.3
	termsX, termsHeadTop   = 29.25, 35.6
	termsTop, termsWrap    = 52.0, 310.0
	termsStep              = 11.0
	totalsX, totalsTop     = 330.0, 22.0
	totalsBoxW, totalsBoxH = 220.0, 28.0
	enquiryX, enquiryTop   = 28.0, 200.0
	enquiryH               = 26.0
)

var (
	labelFont   = canvas.Font{Family: canvas.Slab, Size: 7.5}
	smallFont   = canvas.Font{Family: canvas.Slab, Size: 7.25}
	nameFont    = canvas.Font{Family: canvas.Slab, Size: 9}
	addressFont = canvas.Font{Family: canvas.Mono, Size: 7.25}
	totalFont   = canvas.Font{Family: canvas.Slab, Size: 8}
	amountFont  = canvas.Font{Family: canvas.Mono, Size: 8}
)

// quote draws q from scratch in section order: header, parties, details and
// item table on page 1; terms, totals and enquiry on page 2; then footers.
func (e *Engine) quote(q *docstamp.Quote) (*canvas.Document, error) {
	doc := canvas.New(coords.A4, e.assets.Faces())
	p1, p2 := doc.AddPage(), doc.AddPage()
	total := docstamp.Total(q.Items)

	overlay.Draw(p1,
		e.headerSection(TitleQuote),
		partySection("Quotation From", q.QuotationFrom, partyFromX),
		partySection("Quotation For", q.QuotationFor, partyForX),
		detailsSection("Quotation No #", q.QuotationNo, "Quotation Date", q.QuotationDate),
		tableSection(q.Items),
	)
	overlay.Draw(p2,
		termsSection(q.TermsAndConditions),
		totalsSection(total, q.Reductions),
		enquirySection(q.EnquiryEmail),
	)

	info := footer.Info{
		Label:          TitleQuote,
		RecipientLabel: "Quotation For",
		Number:         q.QuotationNo,
		Date:           q.QuotationDate,
		Recipient:      q.QuotationFor.Name,
	}
	for _, p := range doc.Pages() {
		overlay.Draw(p, overlay.Section{Name: "footer", Dynamic: func(p *canvas.Page) {
			footer.Draw(p, footer.DefaultLayout(p.Size().W), info)
		}})
	}
	return doc, drawErr(doc.Err())
}

func (e *Engine) headerSection(title string) overlay.Section {
	logo := e.assets.Logo()
	return overlay.Section{
		Name: "header",
		Static: func(p *canvas.Page) {
			h := logoW * float64(logo.H) / float64(logo.W)
			p.Image(assets.LogoName, logoX, p.Size().FromTop(logoBottom), logoW, h)
		},
		Dynamic: func(p *canvas.Page) {
			s := p.Size()
			x := s.W - titleMargin
			p.TextAligned(x, x, s.FromTop(titleBaseline), title, canvas.Font{Family: canvas.Slab, Size: titleSize}, canvas.Ink, canvas.AlignRight)
		},
	}
}

func partySection(label string, party docstamp.Party, x float64) overlay.Section {
	return overlay.Section{
		Name: "party",
		Dynamic: func(p *canvas.Page) {
			y0 := p.Size().FromTop(partyTop)
			p.Text(x, y0, label, labelFont, canvas.Muted)
			p.Text(x, y0-18, party.Name, nameFont, canvas.Ink)
			if party.SubName != "" {
				p.Text(x, y0-30, party.SubName, labelFont, canvas.Ink)
			}
			y := y0 - 46
			for _, line := range party.AddressLines {
				for _, l := range p.Doc().Wrap(line, partyWidth, addressFont) {
					p.Text(x, y, l, addressFont, canvas.Ink)
					y -= addressStep
				}
			}
		},
	}
}

func detailsSection(label1, value1, label2, value2 string) overlay.Section {
	return overlay.Section{
		Name: "details",
		Dynamic: func(p *canvas.Page) {
			y0 := p.Size().FromTop(detailsTop)
			p.Text(detailsX, y0, "Details", labelFont, canvas.Muted)
			for i, row := range [][2]string{{label1, value1}, {label2, value2}} {
				y := y0 - 26 - float64(i)*16
				p.Text(detailsX, y, row[0], smallFont, canvas.Muted)
				p.Text(detailsX+detailsValueOffset, y, row[1], addressFont, canvas.Ink)
			}
		},
	}
}

func tableSection(items []docstamp.LineItem) overlay.Section {
	return overlay.Section{
		Name: "items",
		Dynamic: func(p *canvas.Page) {
			_, err := table.New(p).
				SetPosition(tableX, tableTop).
				SetWidth(p.Size().W - 2*tableMargin).
				SetTotalRow(true).
				AddRows(items...).
				Render()
			p.Doc().SetError(err)
		},
	}
}

func termsSection(terms []string) overlay.Section {
	return overlay.Section{
		Name: "terms",
		Dynamic: func(p *canvas.Page) {
			s := p.Size()
			p.Text(termsX, s.FromTop(termsHeadTop), "Terms and Conditions", labelFont, canvas.Muted)
			y := s.FromTop(termsTop)
			for _, t := range terms {
				for _, l := range p.Doc().Wrap(t, termsWrap, smallFont) {
					p.Text(termsX, y, l, smallFont, canvas.Ink)
					y -= termsStep
				}
			}
		},
	}
}

func totalsSection(total, reductions float64) overlay.Section {
	boxY := func(p *canvas.Page) float64 { return p.Size().FromTop(totalsTop) - 38 }
	return overlay.Section{
		Name: "totals",
		Static: func(p *canvas.Page) {
			p.FillRect(coords.Box{X: totalsX, Y: boxY(p) - totalsBoxH, W: totalsBoxW, H: totalsBoxH}, canvas.Accent)
		},
		Dynamic: func(p *canvas.Page) {
			yTop := p.Size().FromTop(totalsTop)
			p.Text(totalsX, yTop-10, "Reductions", smallFont, canvas.Muted)
			p.Text(totalsX+200, yTop-10, money.FormatCurrency(reductions), addressFont, canvas.Ink)

			y := boxY(p) - 18
			p.Text(totalsX+10, y, "Total ("+money.Currency+")", totalFont, canvas.White)
			right := totalsX + totalsBoxW - 10
			p.TextAligned(right, right, y, money.FormatCurrency(total), amountFont, canvas.White, canvas.AlignRight)
		},
	}
}

func enquirySection(email string) overlay.Section {
	box := func(p *canvas.Page) coords.Box {
		yTop := p.Size().FromTop(enquiryTop)
		return coords.Box{X: enquiryX, Y: yTop - enquiryH, W: p.Size().W - 2*enquiryX, H: enquiryH}
	}
	return overlay.Section{
		Name: "enquiry",
		Static: func(p *canvas.Page) {
			p.FillStrokeRect(box(p), canvas.White, canvas.Rule, 1)
		},
		Dynamic: func(p *canvas.Page) {
			b := box(p)
			p.TextAligned(b.X, b.X+b.W, b.Top()-17, EnquiryPrefix+email, smallFont, canvas.Ink, canvas.AlignCenter)
		},
	}
}
