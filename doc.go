// Package docstamp renders invoices and quotations into byte-deterministic,
// two-page PDFs that match a fixed reference design.
//
// The root package holds the document model and the error taxonomy. Rendering
// lives in the render package, which consumes an immutable asset bundle built
// once by the assets package:
//
//	bundle, err := assets.Default()
//	if err != nil {
//	    return err
//	}
//	payload, err := docstamp.DecodePayload(body)
//	if err != nil {
//	    return err
//	}
//	pdf, err := render.Generate(payload, bundle)
//
// Every failure is one of ValidationError, CapacityExceededError,
// AssetLoadError or RenderError; CodeOf classifies them for transports.
package docstamp
