package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/inspect"
	"github.com/lvillar/docstamp/money"
	"github.com/lvillar/docstamp/render"
)

// Register adds the document tools and resources backed by eng to s.
func Register(s *Server, eng *render.Engine) {
	s.AddTool(generateDocumentTool(eng))
	s.AddTool(inspectDocumentTool())
	s.AddTool(formatAmountTool())
	registerResources(s, eng)
}

func generateDocumentTool(eng *render.Engine) Tool {
	return Tool{
		Name:        "generate_document",
		Description: "Render an invoice or quotation PDF from a payload. The payload carries a \"type\" of \"invoice\" or \"quote\" plus the document fields. Invoices hold at most six line items. Returns the PDF as base64 unless outputPath is given.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"payload": map[string]any{
					"type":        "object",
					"description": "Document payload; see the docstamp://templates/invoice resource for the invoice layout",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"payload"},
		},
		Handler: func(_ context.Context, raw json.RawMessage) (ToolResult, error) {
			var args struct {
				Payload    json.RawMessage `json:"payload"`
				OutputPath string          `json:"outputPath"`
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return ToolResult{}, &docstamp.ValidationError{Reason: "arguments: " + err.Error()}
			}
			if len(args.Payload) == 0 {
				return ToolResult{}, &docstamp.ValidationError{Field: "payload", Reason: "is required"}
			}

			p, err := docstamp.DecodePayload(args.Payload)
			if err != nil {
				return ToolResult{}, err
			}
			pdf, err := eng.Render(p)
			if err != nil {
				return ToolResult{}, err
			}

			if args.OutputPath != "" {
				if err := os.WriteFile(args.OutputPath, pdf, 0o644); err != nil {
					return ToolResult{}, &docstamp.RenderError{Op: "write", Err: err}
				}
				return Text("%s %s written to %s (%d bytes)", p.Kind(), p.DocumentNumber(), args.OutputPath, len(pdf)), nil
			}
			return Text("%s (%d bytes). Base64 data:\n%s",
				docstamp.Filename(p), len(pdf), base64.StdEncoding.EncodeToString(pdf)), nil
		},
	}
}

// pageSummary is one page in the inspect_document result.
type pageSummary struct {
	Number int      `json:"number"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Fonts  []string `json:"fonts"`
	Images []string `json:"images,omitempty"`
	Text   string   `json:"text"`
}

func inspectDocumentTool() Tool {
	return Tool{
		Name:        "inspect_document",
		Description: "Read a PDF file and return its version, information dictionary and per-page text, fonts and images as JSON.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the PDF file",
				},
			},
			"required": []string{"path"},
		},
		Handler: func(_ context.Context, raw json.RawMessage) (ToolResult, error) {
			var args struct {
				Path string `json:"path"`
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return ToolResult{}, &docstamp.ValidationError{Reason: "arguments: " + err.Error()}
			}
			if args.Path == "" {
				return ToolResult{}, &docstamp.ValidationError{Field: "path", Reason: "is required"}
			}
			summary, err := summarize(args.Path)
			if err != nil {
				return ToolResult{}, err
			}
			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return ToolResult{}, err
			}
			return Text("%s", out), nil
		},
	}
}

func summarize(path string) (map[string]any, error) {
	doc, err := inspect.Open(path)
	if err != nil {
		return nil, err
	}
	pages := make([]pageSummary, 0, doc.NumPages())
	for n, page := range doc.Pages() {
		text, err := page.Text()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		images, err := page.Images()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		pages = append(pages, pageSummary{
			Number: n,
			Width:  page.MediaBox.Width(),
			Height: page.MediaBox.Height(),
			Fonts:  page.Fonts(),
			Images: images,
			Text:   text,
		})
	}
	return map[string]any{
		"version":  doc.Version,
		"numPages": doc.NumPages(),
		"info":     doc.Info(),
		"pages":    pages,
	}, nil
}

func formatAmountTool() Tool {
	return Tool{
		Name:        "format_amount",
		Description: "Format a non-negative amount as Malaysian Ringgit, both as figures (\"RM 1,234.50\") and in words.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"amount": map[string]any{
					"type":        "number",
					"description": "Amount in ringgit",
				},
			},
			"required": []string{"amount"},
		},
		Handler: func(_ context.Context, raw json.RawMessage) (ToolResult, error) {
			var args struct {
				Amount *float64 `json:"amount"`
			}
			if err := json.Unmarshal(raw, &args); err != nil {
				return ToolResult{}, &docstamp.ValidationError{Reason: "arguments: " + err.Error()}
			}
			switch {
			case args.Amount == nil:
				return ToolResult{}, &docstamp.ValidationError{Field: "amount", Reason: "is required"}
			case *args.Amount < 0:
				return ToolResult{}, &docstamp.ValidationError{Field: "amount", Reason: "must not be negative"}
			}
			words, err := money.InWords(*args.Amount)
			if err != nil {
				return ToolResult{}, &docstamp.ValidationError{Field: "amount", Reason: err.Error()}
			}
			out, err := json.Marshal(map[string]string{
				"figures": money.FormatCurrency(*args.Amount),
				"words":   words,
			})
			if err != nil {
				return ToolResult{}, err
			}
			return Text("%s", out), nil
		},
	}
}
