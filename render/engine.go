// Package render turns document payloads into PDF bytes.
//
// An Engine pairs an immutable asset bundle with serializer settings. Render
// dispatches on the payload variant: invoices are stamped onto the base
// layout table, quotations are drawn from scratch. Both always produce two
// pages, and identical inputs always produce identical bytes.
//
// Example:
//
//	bundle, err := assets.Default()
//	if err != nil {
//	    return err
//	}
//	eng := render.New(bundle, render.WithCompression(true))
//	pdf, err := eng.Render(&docstamp.Quote{QuotationNo: "QT-0001"})
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/assets"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/doctpl"
)

// Titles stamped in the header and the document information dictionary.
const (
	TitleInvoice = "Invoice"
	TitleQuote   = "Quotation"
)

// EnquiryPrefix precedes the enquiry email on the second page.
const EnquiryPrefix = "For any enquiry, reach out via email at "

// Engine renders payloads. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	assets *assets.Bundle
	cfg    engineConfig
}

// New creates an Engine reading from b.
func New(b *assets.Bundle, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{assets: b, cfg: *cfg}
}

// Generate renders p with a one-off Engine.
func Generate(p docstamp.Payload, b *assets.Bundle, opts ...Option) ([]byte, error) {
	return New(b, opts...).Render(p)
}

// Assets returns the bundle the engine reads from.
func (e *Engine) Assets() *assets.Bundle { return e.assets }

// Render validates p and returns the finished document. Errors are
// *docstamp.ValidationError, *docstamp.CapacityExceededError or
// *docstamp.RenderError; no bytes are returned alongside an error.
func (e *Engine) Render(p docstamp.Payload) (out []byte, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &docstamp.RenderError{Op: "draw", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	var (
		doc   *canvas.Document
		title string
	)
	switch v := p.(type) {
	case *docstamp.Invoice:
		if v == nil {
			return nil, &docstamp.ValidationError{Reason: "payload is nil"}
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		title = TitleInvoice + " " + v.InvoiceNo
		doc, err = e.invoice(v.Normalize())
	case *docstamp.Quote:
		if v == nil {
			return nil, &docstamp.ValidationError{Reason: "payload is nil"}
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
		title = TitleQuote + " " + v.QuotationNo
		doc, err = e.quote(v.Normalize())
	case nil:
		return nil, &docstamp.ValidationError{Reason: "payload is nil"}
	default:
		return nil, &docstamp.ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported document type %q", p.Kind())}
	}
	if err != nil {
		return nil, err
	}

	out, err = e.write(doc, title)
	if err != nil {
		return nil, err
	}
	e.cfg.logger.Debug("rendered document",
		"kind", p.Kind(),
		"number", p.DocumentNumber(),
		"pages", doc.NumPages(),
		"bytes", len(out),
		"elapsed", time.Since(start))
	return out, nil
}

// Preview renders the bare base artwork of the invoice layout table.
func (e *Engine) Preview() ([]byte, error) {
	tpl := e.assets.Template()
	doc := canvas.New(tpl.PageSize, e.assets.Faces())
	if err := tpl.Preview(doc); err != nil {
		return nil, &docstamp.RenderError{Op: "draw", Err: err}
	}
	return e.write(doc, fmt.Sprintf("%s template %s", tpl.Name, tpl.Version))
}

func (e *Engine) write(doc *canvas.Document, title string) ([]byte, error) {
	if err := doc.Err(); err != nil {
		return nil, &docstamp.RenderError{Op: "draw", Err: err}
	}
	if n := doc.NumPages(); n != doctpl.PageCount {
		return nil, &docstamp.RenderError{Op: "draw", Err: fmt.Errorf("produced %d pages, want %d", n, doctpl.PageCount)}
	}
	var buf bytes.Buffer
	err := canvas.WritePDF(&buf, doc, e.assets.Resources(), canvas.WriteOptions{
		Producer:  e.cfg.producer,
		Title:     title,
		Compress:  e.cfg.compress,
		Timestamp: e.cfg.timestamp,
	})
	if err != nil {
		return nil, &docstamp.RenderError{Op: "write", Err: err}
	}
	return buf.Bytes(), nil
}

// drawErr wraps a drawing failure unless it already carries a classification.
func drawErr(err error) error {
	if err == nil {
		return nil
	}
	if docstamp.CodeOf(err) != docstamp.CodeInternal {
		return err
	}
	return &docstamp.RenderError{Op: "draw", Err: err}
}
