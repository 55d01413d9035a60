package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SahuH/Data-Analytics-Assistant/internal/analytics"
	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// Handler - HTTP-обвязка над диспетчером инструментов.
type Handler struct {
	service    ports.ToolService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler - reqTimeout <= 0 означает "без таймаута на обработку".
func NewHandler(service ports.ToolService, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, reqTimeout: reqTimeout}
}

type queryRequest struct {
	Query string `json:"query"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": domain.Schema()})
}

func (h *Handler) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.service.ListTools()})
}

// callTool - тело запроса целиком является объектом аргументов; пустое тело = {}.
func (h *Handler) callTool(c *gin.Context) {
	name := c.Param("name")

	args, err := decodeArgs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	res := h.service.CallTool(ctx, name, args)
	if res.IsError {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Text})
		return
	}
	c.JSON(http.StatusOK, res.Payload)
}

// query - вопрос веб-клиента в свободной форме, маршрутизируется через custom_query.
func (h *Handler) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	q := strings.TrimSpace(req.Query)
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty query"})
		return
	}

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	res := h.service.CallTool(ctx, analytics.ToolCustomQuery, map[string]any{"query_description": q})
	if res.IsError {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Text})
		return
	}

	data, _ := res.Payload.Value("results")
	if data == nil {
		data = []domain.Row{}
	}
	response, _ := res.Payload.Value("interpretation")
	c.JSON(http.StatusOK, gin.H{
		"response": response,
		"data":     data,
		"query":    q,
	})
}

// decodeArgs - JSON-объект из тела; null и пустое тело дают пустые аргументы.
func decodeArgs(c *gin.Context) (map[string]any, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	args := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.reqTimeout)
}
