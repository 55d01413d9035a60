package mcp_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

func TestServe_LineDelimitedSession(t *testing.T) {
	s, tools := newServer(t)
	tools.EXPECT().ListTools().Return([]domain.ToolDescriptor{{Name: "sales_overview"}})
	tools.EXPECT().
		CallTool(gomock.Any(), "sales_overview", map[string]any{"date_range": "all"}).
		Return(domain.ToolResult{Text: "{}"})

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\r",
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"sales_overview","arguments":{"date_range":"all"}}}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(in), &out))

	sc := bufio.NewScanner(&out)
	ids := []string{}
	for sc.Scan() {
		var resp rpcResponse
		require.NoError(t, json.Unmarshal(sc.Bytes(), &resp), "line=%s", sc.Text())
		require.Nil(t, resp.Error, "line=%s", sc.Text())
		ids = append(ids, string(resp.ID))
	}
	// ответы идут в порядке запросов, уведомление без ответа
	require.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s, _ := newServer(t)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, pr, io.Discard) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
