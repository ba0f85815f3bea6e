package render

import (
	"strings"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/doctpl"
	"github.com/lvillar/docstamp/footer"
	"github.com/lvillar/docstamp/money"
	"github.com/lvillar/docstamp/overlay"
	"github.com/lvillar/docstamp/table"
)

// invoice stamps inv onto the base layout table. Row capacity and description
// widths are checked before anything is drawn.
func (e *Engine) invoice(inv *docstamp.Invoice) (*canvas.Document, error) {
	tpl := e.assets.Template()
	doc := canvas.New(tpl.PageSize, e.assets.Faces())
	pages := make([]*canvas.Page, len(tpl.Pages))
	for i := range pages {
		pages[i] = doc.AddPage()
	}

	slots := table.NewSlots(pages[tpl.Rows.Page-1], tpl.Rows, docstamp.KindInvoice).AddRows(inv.Items...)
	if err := slots.Check(); err != nil {
		return nil, err
	}

	values, err := invoiceValues(inv, docstamp.Total(inv.Items))
	if err != nil {
		return nil, err
	}

	for i, p := range pages {
		if err := tpl.DrawPage(p, i+1); err != nil {
			return nil, drawErr(err)
		}
	}
	for _, p := range pages {
		overlay.StampFields(p, tpl, values)
	}
	if err := slots.Render(); err != nil {
		return nil, drawErr(err)
	}

	info := footer.Info{
		Label:          TitleInvoice,
		RecipientLabel: "Billed To",
		Number:         inv.InvoiceNo,
		Date:           inv.InvoiceDate,
		Recipient:      inv.BilledTo.Name,
	}
	for _, p := range pages {
		footer.Stamp(p, tpl, info)
	}
	return doc, drawErr(doc.Err())
}

// invoiceValues lists the field values of inv in stamping order. Fields
// sharing an erase region follow the field that owns it.
func invoiceValues(inv *docstamp.Invoice, total float64) ([]overlay.FieldValue, error) {
	words, err := money.InWords(total)
	if err != nil {
		return nil, &docstamp.ValidationError{Field: "items", Reason: err.Error()}
	}
	var v []overlay.FieldValue
	party := func(name, sub, address string, p docstamp.Party) {
		v = append(v, overlay.Value(name, p.Name))
		if p.SubName != "" {
			v = append(v, overlay.Value(sub, p.SubName))
		}
		if len(p.AddressLines) > 0 {
			v = append(v, overlay.Value(address, p.AddressLines...))
		}
	}
	party(doctpl.FieldBilledByName, doctpl.FieldBilledBySubName, doctpl.FieldBilledByAddress, inv.BilledBy)
	party(doctpl.FieldBilledToName, doctpl.FieldBilledToSubName, doctpl.FieldBilledToAddress, inv.BilledTo)

	return append(v,
		overlay.Value(doctpl.FieldInvoiceNo, inv.InvoiceNo),
		overlay.Value(doctpl.FieldInvoiceDate, inv.InvoiceDate),
		overlay.Value(doctpl.FieldTerms, strings.Join(inv.TermsAndConditions, " ")),
		overlay.Value(doctpl.FieldReductions, money.FormatCurrency(inv.Reductions)),
		overlay.Value(doctpl.FieldTotal, money.FormatCurrency(total)),
		overlay.Value(doctpl.FieldTotalWords, words, "Only"),
		overlay.Value(doctpl.FieldAccountName, inv.BankDetails.AccountName),
		overlay.Value(doctpl.FieldAccountNumber, inv.BankDetails.AccountNumber),
		overlay.Value(doctpl.FieldBank, inv.BankDetails.Bank),
		overlay.Value(doctpl.FieldEnquiry, EnquiryPrefix+inv.EnquiryEmail),
	), nil
}
