package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lvillar/docstamp/inspect"
	"github.com/lvillar/docstamp/render"
)

// Resource URIs.
const (
	TemplateURI = "docstamp://templates/invoice"
	TextURI     = "docstamp://text"
)

func registerResources(s *Server, eng *render.Engine) {
	s.AddResource(Resource{
		URI:         TemplateURI,
		Name:        "Invoice template",
		Description: "Field rectangles, fonts and row slots of the invoice layout, as loaded by the running engine.",
		MIMEType:    "application/json",
		Handler: func(_ context.Context, uri string) ([]ResourceContent, error) {
			return []ResourceContent{{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(eng.Assets().TemplateJSON()),
			}}, nil
		},
	})

	s.AddResource(Resource{
		URI:         TextURI,
		Name:        "PDF text",
		Description: "Text of every page of a PDF file. Pass the file path as a query parameter: docstamp://text?path=/path/to/file.pdf",
		MIMEType:    "text/plain",
		Handler:     handleTextResource,
	})
}

func handleTextResource(_ context.Context, uri string) ([]ResourceContent, error) {
	path, err := pathParam(uri)
	if err != nil {
		return nil, err
	}
	doc, err := inspect.Open(path)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for n, page := range doc.Pages() {
		text, err := page.Text()
		if err != nil {
			fmt.Fprintf(&b, "--- Page %d (error: %v) ---\n", n, err)
			continue
		}
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n\n", n, text)
	}
	return []ResourceContent{{URI: uri, MIMEType: "text/plain", Text: b.String()}}, nil
}

func pathParam(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("resource uri: %w", err)
	}
	path := u.Query().Get("path")
	if path == "" {
		return "", fmt.Errorf("missing 'path' parameter in %s", uri)
	}
	return path, nil
}
