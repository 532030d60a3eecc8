package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"runway-dss/internal/engine"
	"runway-dss/internal/session"
	"runway-dss/internal/trajectory"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server holds the state for the MCP server.
type Server struct {
	engine       engine.Client
	session      *session.Session
	synth        *trajectory.Synthesizer
	enableCharts bool

	tools []*tool
}

// NewServer creates a new MCP server.
func NewServer(engineClient engine.Client, enableCharts bool) *Server {
	s := &Server{
		engine:       engineClient,
		session:      session.New(),
		synth:        trajectory.New(),
		enableCharts: enableCharts,
	}
	s.tools = s.buildTools()
	return s
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "runway-dss",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) listTools() interface{} {
	defs := make([]interface{}, 0, len(s.tools))
	for _, t := range s.tools {
		defs = append(defs, map[string]interface{}{
			"name":        t.name,
			"description": t.description,
			"inputSchema": t.schema,
		})
	}
	return map[string]interface{}{"tools": defs}
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	t := s.lookupTool(call.Name)
	if t == nil {
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if call.Arguments == nil {
		call.Arguments = map[string]interface{}{}
	}
	if err := t.resolved.Validate(call.Arguments); err != nil {
		return nil, map[string]interface{}{
			"code":    -32602,
			"message": fmt.Sprintf("Invalid arguments for %s: %v", call.Name, err),
		}
	}

	data, err := t.handler(call.Arguments)
	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) lookupTool(name string) *tool {
	for _, t := range s.tools {
		if t.name == name {
			return t
		}
	}
	return nil
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
