package doctpl

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PageCount is the number of pages every layout carries.
const PageCount = 2

// Field names stamped by the invoice renderer.
const (
	FieldBilledByName     = "billedBy.name"
	FieldBilledBySubName  = "billedBy.subName"
	FieldBilledByAddress  = "billedBy.address"
	FieldBilledToName     = "billedTo.name"
	FieldBilledToSubName  = "billedTo.subName"
	FieldBilledToAddress  = "billedTo.address"
	FieldInvoiceNo        = "invoiceNo"
	FieldInvoiceDate      = "invoiceDate"
	FieldTerms            = "terms"
	FieldReductions       = "reductions"
	FieldTotal            = "total"
	FieldTotalWords       = "totalWords"
	FieldAccountName      = "bank.accountName"
	FieldAccountNumber    = "bank.accountNumber"
	FieldBank             = "bank.bank"
	FieldEnquiry          = "enquiry"
	FieldFooterNumber     = "footer.number"
	FieldFooterDate       = "footer.date"
	FieldFooterRecipient  = "footer.recipient"
	FieldFooterPage       = "footer.page"
	FieldFooterDisclaimer = "footer.disclaimer"
)

// Row cell names.
const (
	CellIndex       = "index"
	CellDescription = "description"
	CellQuantity    = "quantity"
	CellRate        = "rate"
	CellAmount      = "amount"
)

// RequiredFields lists every field a layout must define.
var RequiredFields = []string{
	FieldBilledByName, FieldBilledBySubName, FieldBilledByAddress,
	FieldBilledToName, FieldBilledToSubName, FieldBilledToAddress,
	FieldInvoiceNo, FieldInvoiceDate,
	FieldTerms, FieldReductions, FieldTotal, FieldTotalWords,
	FieldAccountName, FieldAccountNumber, FieldBank,
	FieldEnquiry,
	FieldFooterNumber, FieldFooterDate, FieldFooterRecipient, FieldFooterPage, FieldFooterDisclaimer,
}

// RequiredCells lists every row cell a layout must define.
var RequiredCells = []string{CellIndex, CellDescription, CellQuantity, CellRate, CellAmount}

// Parse decodes and validates a JSON layout table.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("doctpl: parsing template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that t is complete enough to render from.
func (t *Template) Validate() error {
	if t.PageSize.W <= 0 || t.PageSize.H <= 0 {
		return fmt.Errorf("doctpl: %s: invalid page size %vx%v", t.Name, t.PageSize.W, t.PageSize.H)
	}
	if len(t.Pages) != PageCount {
		return fmt.Errorf("doctpl: %s: want %d pages, got %d", t.Name, PageCount, len(t.Pages))
	}
	for i, p := range t.Pages {
		for j, e := range p.Elements {
			if err := e.validate(); err != nil {
				return fmt.Errorf("doctpl: %s: page %d element %d: %w", t.Name, i+1, j, err)
			}
		}
	}

	for _, name := range RequiredFields {
		if _, ok := t.Fields[name]; !ok {
			return fmt.Errorf("doctpl: %s: missing field %q", t.Name, name)
		}
	}
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := t.Fields[name]
		if len(f.Pages) == 0 {
			return fmt.Errorf("doctpl: %s: field %q is on no page", t.Name, name)
		}
		for _, n := range f.Pages {
			if n < 1 || n > len(t.Pages) {
				return fmt.Errorf("doctpl: %s: field %q names page %d", t.Name, name, n)
			}
		}
		if f.Font.Family == "" || f.Font.Size <= 0 {
			return fmt.Errorf("doctpl: %s: field %q has no font", t.Name, name)
		}
	}

	r := t.Rows
	if r.Page < 1 || r.Page > len(t.Pages) {
		return fmt.Errorf("doctpl: %s: rows name page %d", t.Name, r.Page)
	}
	if len(r.Bands) == 0 || r.Height <= 0 {
		return fmt.Errorf("doctpl: %s: rows need bands and a height", t.Name)
	}
	for _, name := range RequiredCells {
		c, ok := r.Cell(name)
		if !ok {
			return fmt.Errorf("doctpl: %s: missing row cell %q", t.Name, name)
		}
		if c.Font.Family == "" || c.Font.Size <= 0 {
			return fmt.Errorf("doctpl: %s: row cell %q has no font", t.Name, name)
		}
	}
	return nil
}

func (e Element) validate() error {
	switch e.Type {
	case "text":
		if e.Font == nil {
			return fmt.Errorf("text element requires 'font'")
		}
	case "rect":
		if e.Rect == nil {
			return fmt.Errorf("rect element requires 'rect'")
		}
	case "line":
		if e.From == nil || e.To == nil {
			return fmt.Errorf("line element requires 'from' and 'to'")
		}
	case "image":
		if e.Src == "" || e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("image element requires 'src', 'width' and 'height'")
		}
	default:
		return fmt.Errorf("unknown element type %q", e.Type)
	}
	return nil
}

// Field returns the field named name. Parse guarantees every required field exists.
func (t *Template) Field(name string) Field {
	return t.Fields[name]
}

// Images returns the sorted names of images the base artwork references.
func (t *Template) Images() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range t.Pages {
		for _, e := range p.Elements {
			if e.Type == "image" && !seen[e.Src] {
				seen[e.Src] = true
				out = append(out, e.Src)
			}
		}
	}
	sort.Strings(out)
	return out
}
