package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports/mocks"
	rest "github.com/SahuH/Data-Analytics-Assistant/internal/transport/http"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func newRouter(t *testing.T, timeout time.Duration) (*gin.Engine, *mocks.MockToolService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockToolService(ctrl)
	h := rest.NewHandler(svc, nopLogger{}, timeout)
	return rest.NewRouter(h, "", ""), svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), "body=%s", w.Body.String())
	return got
}

func TestRouter_PingHealthMetrics(t *testing.T) {
	r, _ := newRouter(t, time.Second)

	w := do(r, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decode(t, w)["status"])

	w = do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.String())
}

func TestRouter_Schema(t *testing.T) {
	r, _ := newRouter(t, time.Second)

	w := do(r, http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Tables map[string][]string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Tables, 4)
	assert.Contains(t, got.Tables["orders"], "order_date")
	assert.Contains(t, got.Tables["products"], "profit_margin")
}

func TestRouter_ListTools(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	svc.EXPECT().ListTools().Return([]domain.ToolDescriptor{
		{Name: "sales_overview", Description: "d", InputSchema: map[string]any{"type": "object"}},
	})

	w := do(r, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, w.Code)

	tools, ok := decode(t, w)["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal(t, "sales_overview", tools[0].(map[string]any)["name"])
	assert.Contains(t, tools[0].(map[string]any), "inputSchema")
}

func TestRouter_CallTool_OK(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	payload := domain.NewRow("analysis_type", "top_products", "limit", 5, "results", []domain.Row{}, "insights", []string{})
	svc.EXPECT().
		CallTool(gomock.Any(), "product_analysis", map[string]any{"analysis_type": "top_products", "limit": float64(5)}).
		Return(domain.ToolResult{Payload: payload, Text: "{}"})

	w := do(r, http.MethodPost, "/tools/product_analysis", `{"analysis_type":"top_products","limit":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	// порядок ключей конверта сохраняется
	require.Equal(t, `{"analysis_type":"top_products","limit":5,"results":[],"insights":[]}`, w.Body.String())
}

func TestRouter_CallTool_EmptyBodyMeansNoArguments(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	svc.EXPECT().
		CallTool(gomock.Any(), "sales_overview", map[string]any{}).
		Return(domain.ToolResult{Payload: domain.NewRow("period", "all"), Text: "{}"})

	w := do(r, http.MethodPost, "/tools/sales_overview", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "all", decode(t, w)["period"])
}

func TestRouter_CallTool_ErrorResult_422(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	svc.EXPECT().
		CallTool(gomock.Any(), "product_analysis", map[string]any{}).
		Return(domain.ToolResult{Text: "Error: invalid argument: analysis_type: required field is missing", IsError: true})

	w := do(r, http.MethodPost, "/tools/product_analysis", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.True(t, strings.HasPrefix(decode(t, w)["error"].(string), "Error: "))
}

func TestRouter_CallTool_UnknownToolIsPlainResult(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	svc.EXPECT().
		CallTool(gomock.Any(), "nope", gomock.Any()).
		Return(domain.ToolResult{Payload: domain.NewRow("error", "Unknown tool: nope"), Text: "{}"})

	w := do(r, http.MethodPost, "/tools/nope", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Unknown tool: nope", decode(t, w)["error"])
}

func TestRouter_CallTool_InvalidJSON_400(t *testing.T) {
	r, _ := newRouter(t, time.Second)

	for _, body := range []string{`{"limit":`, `[1,2]`, `"str"`} {
		w := do(r, http.MethodPost, "/tools/sales_overview", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body=%s", body)
		require.Equal(t, "invalid json body", decode(t, w)["error"])
	}
}

func TestRouter_CallTool_AppliesHandlerTimeout(t *testing.T) {
	r, svc := newRouter(t, 50*time.Millisecond)
	svc.EXPECT().
		CallTool(gomock.Any(), "sales_trends", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ map[string]any) domain.ToolResult {
			_, ok := ctx.Deadline()
			require.True(t, ok, "handler must set a deadline")
			<-ctx.Done()
			return domain.ToolResult{Text: "Error: " + ctx.Err().Error(), IsError: true}
		})

	w := do(r, http.MethodPost, "/tools/sales_trends", `{"trend_type":"monthly_trends"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "Error: context deadline exceeded", decode(t, w)["error"])
}

func TestRouter_Query(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	rows := []domain.Row{domain.NewRow("metric", "Total Orders", "value", 10)}
	svc.EXPECT().
		CallTool(gomock.Any(), "custom_query", map[string]any{"query_description": "how are we doing"}).
		Return(domain.ToolResult{Payload: domain.NewRow(
			"query_description", "how are we doing",
			"results", rows,
			"interpretation", "Analysis for: how are we doing",
		), Text: "{}"})

	w := do(r, http.MethodPost, "/query", `{"query":"  how are we doing "}`)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode(t, w)
	assert.Equal(t, "Analysis for: how are we doing", got["response"])
	assert.Equal(t, "how are we doing", got["query"])
	data, ok := got["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "Total Orders", data[0].(map[string]any)["metric"])
}

func TestRouter_Query_BadRequests(t *testing.T) {
	r, _ := newRouter(t, time.Second)

	w := do(r, http.MethodPost, "/query", `{"query":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "empty query", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/query", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Query_ErrorResult_422(t *testing.T) {
	r, svc := newRouter(t, time.Second)
	svc.EXPECT().
		CallTool(gomock.Any(), "custom_query", gomock.Any()).
		Return(domain.ToolResult{Text: "Error: data unavailable: load dataset: boom", IsError: true})

	w := do(r, http.MethodPost, "/query", `{"query":"revenue by category"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "Error: data unavailable: load dataset: boom", decode(t, w)["error"])
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	r, _ := newRouter(t, time.Second)

	w := do(r, http.MethodGet, "/no/such/route", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "route not found", decode(t, w)["error"])

	w = do(r, http.MethodGet, "/tools/sales_overview", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "method not allowed", decode(t, w)["error"])
}
