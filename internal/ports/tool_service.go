package ports

import (
	"context"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// ToolService - контракт диспетчера инструментов для транспортов (HTTP, MCP).
type ToolService interface {
	ListTools() []domain.ToolDescriptor
	CallTool(ctx context.Context, name string, args map[string]any) domain.ToolResult
}
