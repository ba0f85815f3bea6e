// Package mcp implements a Model Context Protocol server that exposes the
// render engine to AI assistants.
//
// The server speaks newline-delimited JSON-RPC 2.0 over a reader and writer
// pair, normally stdin and stdout, and implements the tools and resources
// parts of MCP revision 2024-11-05.
//
// # Usage with an MCP client
//
//	{
//	  "mcpServers": {
//	    "docstamp": {
//	      "command": "docstamp",
//	      "args": ["mcp"]
//	    }
//	  }
//	}
package mcp

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lvillar/docstamp"
)

// ProtocolVersion is the MCP revision the server implements.
const ProtocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
)

// Server answers MCP requests read from in on out.
type Server struct {
	name, version string
	tools         map[string]Tool
	resources     map[string]Resource
	in            io.Reader
	out           io.Writer
	logger        *log.Logger
	mu            sync.Mutex
}

// Tool is a callable exposed through tools/call.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Handler     ToolHandler    `json:"-"`
}

// ToolHandler executes a tool with its raw JSON arguments.
type ToolHandler func(ctx context.Context, args json.RawMessage) (ToolResult, error)

// ToolResult is the result of a tool call.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is one piece of a tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Text returns a single-block text result.
func Text(format string, args ...any) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}}}
}

// Resource is a readable document exposed through resources/read.
type Resource struct {
	URI         string          `json:"uri"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MIMEType    string          `json:"mimeType,omitempty"`
	Handler     ResourceHandler `json:"-"`
}

// ResourceHandler reads the resource at uri.
type ResourceHandler func(ctx context.Context, uri string) ([]ResourceContent, error)

// ResourceContent is the content of a read resource.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewServer creates a server named name at version, reading requests from in
// and writing responses to out. A nil logger discards output.
func NewServer(name, version string, in io.Reader, out io.Writer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		name:      name,
		version:   version,
		tools:     map[string]Tool{},
		resources: map[string]Resource{},
		in:        in,
		out:       out,
		logger:    logger,
	}
}

// AddTool registers t, replacing any tool of the same name.
func (s *Server) AddTool(t Tool) { s.tools[t.Name] = t }

// AddResource registers r, replacing any resource with the same URI.
func (s *Server) AddResource(r Resource) { s.resources[r.URI] = r }

// Run serves requests until the input ends or ctx is cancelled. Cancellation
// is observed between messages.
func (s *Server) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.sendError(nil, codeParseError, "Parse error", err.Error())
			continue
		}
		s.handle(ctx, req)
	}
	return sc.Err()
}

func (s *Server) handle(ctx context.Context, req request) {
	s.logger.Debug("mcp request", "method", req.Method)
	if req.ID == nil {
		// Notifications get no response.
		return
	}
	switch req.Method {
	case "initialize":
		s.sendResult(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]any{
				"tools":     map[string]any{},
				"resources": map[string]any{},
			},
			"serverInfo": map[string]any{"name": s.name, "version": s.version},
		})
	case "ping":
		s.sendResult(req.ID, map[string]any{})
	case "tools/list":
		s.sendResult(req.ID, map[string]any{"tools": s.toolList()})
	case "tools/call":
		s.callTool(ctx, req)
	case "resources/list":
		s.sendResult(req.ID, map[string]any{"resources": s.resourceList()})
	case "resources/read":
		s.readResource(ctx, req)
	default:
		s.sendError(req.ID, codeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) toolList() []Tool {
	list := make([]Tool, 0, len(s.tools))
	for _, t := range s.tools {
		list = append(list, t)
	}
	slices.SortFunc(list, func(a, b Tool) int { return cmp.Compare(a.Name, b.Name) })
	return list
}

func (s *Server) resourceList() []Resource {
	list := make([]Resource, 0, len(s.resources))
	for _, r := range s.resources {
		list = append(list, r)
	}
	slices.SortFunc(list, func(a, b Resource) int { return cmp.Compare(a.URI, b.URI) })
	return list
}

func (s *Server) callTool(ctx context.Context, req request) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, codeInvalidParams, "Invalid params", err.Error())
		return
	}
	tool, ok := s.tools[params.Name]
	if !ok {
		s.sendError(req.ID, codeInvalidParams, "Unknown tool", params.Name)
		return
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	result, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "err", err)
		result = Text("%s: %v", docstamp.CodeOf(err), err)
		result.IsError = true
	}
	s.sendResult(req.ID, result)
}

func (s *Server) readResource(ctx context.Context, req request) {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, codeInvalidParams, "Invalid params", err.Error())
		return
	}
	r, ok := s.lookupResource(params.URI)
	if !ok {
		s.sendError(req.ID, codeInvalidParams, "Unknown resource", params.URI)
		return
	}
	contents, err := r.Handler(ctx, params.URI)
	if err != nil {
		s.sendError(req.ID, codeInternal, "Resource error", err.Error())
		return
	}
	s.sendResult(req.ID, map[string]any{"contents": contents})
}

// lookupResource finds the resource registered for uri, ignoring any query,
// so that docstamp://text?path=... resolves to docstamp://text.
func (s *Server) lookupResource(uri string) (Resource, bool) {
	if r, ok := s.resources[uri]; ok {
		return r, true
	}
	u, err := url.Parse(uri)
	if err != nil {
		return Resource{}, false
	}
	u.RawQuery, u.Fragment = "", ""
	r, ok := s.resources[u.String()]
	return r, ok
}

func (s *Server) sendResult(id *json.RawMessage, result any) {
	s.send(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id *json.RawMessage, code int, msg string, data any) {
	s.send(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg, Data: data}})
}

func (s *Server) send(resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("encoding response", "err", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		s.logger.Error("writing response", "err", err)
	}
}
