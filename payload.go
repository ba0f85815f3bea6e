package docstamp

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/lvillar/docstamp/money"
)

// Kind is the document type tag carried in the payload's "type" field.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindQuote   Kind = "quote"
)

// Party is an issuer or recipient block.
type Party struct {
	Name         string   `json:"name"`
	SubName      string   `json:"subName,omitempty"`
	AddressLines []string `json:"addressLines"`
}

// LineItem is one row of the item table.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount returns quantity times rate rounded to cents.
func (it LineItem) Amount() float64 {
	return money.Round2(it.Quantity * it.Rate)
}

// BankDetails is the payment block printed on invoices.
type BankDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Bank          string `json:"bank"`
}

// Invoice is the template-backed document variant. Its item count is bounded
// by the row capacity of the invoice template.
type Invoice struct {
	InvoiceNo          string      `json:"invoiceNo"`
	InvoiceDate        string      `json:"invoiceDate"`
	BilledBy           Party       `json:"billedBy"`
	BilledTo           Party       `json:"billedTo"`
	Items              []LineItem  `json:"items"`
	Reductions         float64     `json:"reductions"`
	TermsAndConditions []string    `json:"termsAndConditions"`
	BankDetails        BankDetails `json:"bankDetails"`
	EnquiryEmail       string      `json:"enquiryEmail"`
}

// Quote is the from-scratch document variant. Rows flow without a cap.
type Quote struct {
	QuotationNo        string     `json:"quotationNo"`
	QuotationDate      string     `json:"quotationDate"`
	QuotationFrom      Party      `json:"quotationFrom"`
	QuotationFor       Party      `json:"quotationFor"`
	Items              []LineItem `json:"items"`
	Reductions         float64    `json:"reductions"`
	TermsAndConditions []string   `json:"termsAndConditions"`
	EnquiryEmail       string     `json:"enquiryEmail"`
}

// Payload is a document request. The only implementations are *Invoice and *Quote.
type Payload interface {
	Kind() Kind
	DocumentNumber() string
	Validate() error
	isPayload()
}

func (*Invoice) Kind() Kind { return KindInvoice }
func (*Quote) Kind() Kind   { return KindQuote }

func (inv *Invoice) DocumentNumber() string { return inv.InvoiceNo }
func (q *Quote) DocumentNumber() string     { return q.QuotationNo }

func (*Invoice) isPayload() {}
func (*Quote) isPayload()   {}

// MarshalJSON includes the "type" tag so encoded payloads decode back through DecodePayload.
func (inv *Invoice) MarshalJSON() ([]byte, error) {
	type plain Invoice
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindInvoice, (*plain)(inv)})
}

// MarshalJSON includes the "type" tag so encoded payloads decode back through DecodePayload.
func (q *Quote) MarshalJSON() ([]byte, error) {
	type plain Quote
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*plain
	}{KindQuote, (*plain)(q)})
}

// DecodePayload decodes a JSON document request, dispatching on its "type" field.
// Field names are case-sensitive: a key such as "InvoiceNo" or "ITEMS" is a
// ValidationError rather than an alias.
func DecodePayload(data []byte) (Payload, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	raw, ok := obj["type"]
	if !ok || string(raw) == "null" {
		if key, ok := foldedKey(obj, "type"); ok {
			return nil, &ValidationError{Field: key, Reason: `field names are case-sensitive; did you mean "type"?`}
		}
		return nil, &ValidationError{Field: "type", Reason: "missing document type"}
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, &ValidationError{Field: "type", Reason: "document type must be a string"}
	}

	var p Payload
	switch Kind(tag) {
	case KindInvoice:
		p = new(Invoice)
	case KindQuote:
		p = new(Quote)
	default:
		return nil, &ValidationError{
			Field:  "type",
			Reason: fmt.Sprintf("unsupported document type %q (expected %q or %q)", tag, KindInvoice, KindQuote),
		}
	}

	fields := jsonFields(reflect.TypeOf(p).Elem())
	fields["type"] = reflect.TypeFor[string]()
	if err := checkKeys(obj, fields, ""); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("decoding %s: %v", tag, err)}
	}
	return p, nil
}

// jsonFields maps the JSON names of a struct's fields to their types.
func jsonFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}

// checkKeys rejects keys that name a field only when case is ignored, and
// recurses into nested objects and arrays. Keys matching no field at all are
// ignored like encoding/json does. Shape errors are left to json.Unmarshal.
func checkKeys(obj map[string]json.RawMessage, fields map[string]reflect.Type, path string) error {
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		ft, ok := fields[key]
		if !ok {
			for _, name := range slices.Sorted(maps.Keys(fields)) {
				if strings.EqualFold(name, key) {
					return &ValidationError{
						Field:  joinField(path, key),
						Reason: fmt.Sprintf("field names are case-sensitive; did you mean %q?", name),
					}
				}
			}
			continue
		}
		if err := checkValue(obj[key], ft, joinField(path, key)); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(raw json.RawMessage, t reflect.Type, path string) error {
	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) != nil {
			return nil
		}
		return checkKeys(obj, jsonFields(t), path)
	case reflect.Slice:
		var elems []json.RawMessage
		if json.Unmarshal(raw, &elems) != nil {
			return nil
		}
		for i, e := range elems {
			if err := checkValue(e, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinField(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func foldedKey(obj map[string]json.RawMessage, name string) (string, bool) {
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// Filename returns the download name for a rendered payload, e.g. "invoice-INV-001.pdf".
func Filename(p Payload) string {
	num := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '"' || r < 0x20 || r == 0x7f {
			return '-'
		}
		return r
	}, strings.TrimSpace(p.DocumentNumber()))
	return fmt.Sprintf("%s-%s.pdf", p.Kind(), num)
}

// Total returns the rounded sum of quantity times rate over items.
func Total(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Quantity * it.Rate
	}
	return money.Round2(sum)
}

// TotalQuantity returns the sum of item quantities.
func TotalQuantity(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Quantity
	}
	return sum
}

// CleanLines trims every line and drops the blank ones, keeping order.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func (p Party) normalize() Party {
	p.AddressLines = CleanLines(p.AddressLines)
	return p
}

func finiteOrZero(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Normalize returns a cleaned copy: address and terms lines trimmed with blanks
// dropped, and a non-finite reductions value replaced by zero.
func (inv *Invoice) Normalize() *Invoice {
	out := *inv
	out.BilledBy = inv.BilledBy.normalize()
	out.BilledTo = inv.BilledTo.normalize()
	out.Items = append([]LineItem(nil), inv.Items...)
	out.Reductions = finiteOrZero(inv.Reductions)
	out.TermsAndConditions = CleanLines(inv.TermsAndConditions)
	return &out
}

// Normalize returns a cleaned copy, see (*Invoice).Normalize.
func (q *Quote) Normalize() *Quote {
	out := *q
	out.QuotationFrom = q.QuotationFrom.normalize()
	out.QuotationFor = q.QuotationFor.normalize()
	out.Items = append([]LineItem(nil), q.Items...)
	out.Reductions = finiteOrZero(q.Reductions)
	out.TermsAndConditions = CleanLines(q.TermsAndConditions)
	return &out
}

// Validate checks the money fields of an invoice. The total must also be
// small enough to be spelled in words.
func (inv *Invoice) Validate() error {
	if err := validateMoney(inv.Items, inv.Reductions); err != nil {
		return err
	}
	var sum float64
	for _, it := range inv.Items {
		sum += it.Quantity * it.Rate
	}
	if !(sum < money.MaxWords) {
		return &ValidationError{Field: "items", Reason: fmt.Sprintf("total must be below %g to be spelled in words", money.MaxWords)}
	}
	return nil
}

// Validate checks the money fields of a quote.
func (q *Quote) Validate() error {
	return validateMoney(q.Items, q.Reductions)
}

func validateMoney(items []LineItem, reductions float64) error {
	for i, it := range items {
		if err := checkAmount(fmt.Sprintf("items[%d].quantity", i), it.Quantity); err != nil {
			return err
		}
		if err := checkAmount(fmt.Sprintf("items[%d].rate", i), it.Rate); err != nil {
			return err
		}
	}
	if reductions < 0 {
		return &ValidationError{Field: "reductions", Reason: "must not be negative"}
	}
	return nil
}

func checkAmount(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &ValidationError{Field: field, Reason: "must be a finite number"}
	case v < 0:
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}
