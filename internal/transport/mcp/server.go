package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/ctxmeta"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

// handlerFunc - обработчик метода; *RPCError уходит клиенту со своим кодом.
type handlerFunc func(ctx context.Context, params json.RawMessage) (any, error)

// Server - диспетчер методов MCP поверх ports.ToolService.
type Server struct {
	tools     ports.ToolService
	log       ports.Logger
	info      Implementation
	sessionID string
	handlers  map[string]handlerFunc
}

// NewServer - имя и версия уходят клиенту в serverInfo.
func NewServer(tools ports.ToolService, log ports.Logger, name, version string) *Server {
	s := &Server{
		tools:     tools,
		log:       log,
		info:      Implementation{Name: name, Version: version},
		sessionID: uuid.NewString(),
	}
	s.handlers = map[string]handlerFunc{
		"initialize":                s.handleInitialize,
		"notifications/initialized": s.handleInitialized,
		"ping":                      s.handlePing,
		"tools/list":                s.handleToolsList,
		"tools/call":                s.handleToolsCall,
	}
	return s
}

// SessionID - идентификатор сессии, попадает в логи как session_id.
func (s *Server) SessionID() string { return s.sessionID }

// HandleMessage - обрабатывает одну строку протокола.
// Для уведомлений возвращает nil: ответ не отправляется.
func (s *Server) HandleMessage(ctx context.Context, msg []byte) []byte {
	ctx = ctxmeta.WithSessionID(ctx, s.sessionID)

	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		s.log.Warnf(ctx, "mcp parse error err=%v", err)
		metrics.MCPRequests.WithLabelValues("invalid", strconv.Itoa(CodeParseError)).Inc()
		return s.marshal(ctx, Response{JSONRPC: jsonRPCVersion, Error: newError(CodeParseError, "parse error: %v", err)})
	}
	if req.JSONRPC != jsonRPCVersion || req.Method == "" {
		metrics.MCPRequests.WithLabelValues("invalid", strconv.Itoa(CodeInvalidRequest)).Inc()
		if req.isNotification() {
			return nil
		}
		return s.marshal(ctx, Response{JSONRPC: jsonRPCVersion, ID: req.ID, Error: newError(CodeInvalidRequest, "invalid request")})
	}
	ctx = ctxmeta.WithRequestID(ctx, idString(req.ID))

	start := time.Now()
	handler, ok := s.handlers[req.Method]
	if !ok {
		metrics.MCPRequests.WithLabelValues("unknown", strconv.Itoa(CodeMethodNotFound)).Inc()
		if req.isNotification() {
			return nil
		}
		s.log.Warnf(ctx, "mcp method not found method=%s", req.Method)
		return s.marshal(ctx, Response{JSONRPC: jsonRPCVersion, ID: req.ID, Error: newError(CodeMethodNotFound, "Method not found: %s", req.Method)})
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = newError(CodeInternalError, "%v", err)
		}
		metrics.MCPRequests.WithLabelValues(req.Method, strconv.Itoa(rpcErr.Code)).Inc()
		s.log.Warnf(ctx, "mcp request failed method=%s code=%d err=%s", req.Method, rpcErr.Code, rpcErr.Message)
		if req.isNotification() {
			return nil
		}
		return s.marshal(ctx, Response{JSONRPC: jsonRPCVersion, ID: req.ID, Error: rpcErr})
	}

	metrics.MCPRequests.WithLabelValues(req.Method, "0").Inc()
	s.log.Infof(ctx, "mcp request method=%s took=%s", req.Method, time.Since(start))
	if req.isNotification() {
		return nil
	}
	if result == nil {
		result = struct{}{}
	}
	return s.marshal(ctx, Response{JSONRPC: jsonRPCVersion, ID: req.ID, Result: result})
}

func (s *Server) marshal(ctx context.Context, resp Response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		s.log.Errorf(ctx, "mcp encode response err=%v", err)
		b, _ = json.Marshal(Response{JSONRPC: jsonRPCVersion, ID: resp.ID, Error: newError(CodeInternalError, "encode response: %v", err)})
	}
	return b
}

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (any, error) {
	var p InitializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, newError(CodeInvalidParams, "invalid initialize params: %v", err)
		}
	}
	if p.ProtocolVersion != "" && p.ProtocolVersion != ProtocolVersion {
		s.log.Warnf(ctx, "client protocol version mismatch client=%s server=%s", p.ProtocolVersion, ProtocolVersion)
	}
	if p.ClientInfo.Name != "" {
		s.log.Infof(ctx, "client connected name=%s version=%s", p.ClientInfo.Name, p.ClientInfo.Version)
	}
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ServerCapabilities{Tools: &ToolsCapability{}},
		ServerInfo:      s.info,
	}, nil
}

func (s *Server) handleInitialized(context.Context, json.RawMessage) (any, error) { return nil, nil }

func (s *Server) handlePing(context.Context, json.RawMessage) (any, error) { return struct{}{}, nil }

func (s *Server) handleToolsList(context.Context, json.RawMessage) (any, error) {
	return ListToolsResult{Tools: s.tools.ListTools()}, nil
}

// handleToolsCall - ошибка инструмента не является ошибкой протокола: isError=true в результате.
func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, error) {
	var p CallToolParams
	if len(params) == 0 {
		return nil, newError(CodeInvalidParams, "params are required")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, newError(CodeInvalidParams, "invalid tool call params: %v", err)
	}
	if p.Name == "" {
		return nil, newError(CodeInvalidParams, "tool name is required")
	}
	if p.Arguments == nil {
		p.Arguments = map[string]any{}
	}

	res := s.tools.CallTool(ctx, p.Name, p.Arguments)
	return CallToolResult{
		Content: []Content{{Type: "text", Text: res.Text}},
		IsError: res.IsError,
	}, nil
}
