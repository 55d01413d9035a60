package rest

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/SahuH/Data-Analytics-Assistant/pkg/httpx"
)

// NewRouter - gin с прод-пайплайном: recovery, трассировка (если задан serviceName),
// request id и лог запросов. staticDir - необязательный каталог веб-клиента.
func NewRouter(h *Handler, serviceName, staticDir string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", h.health)
	r.GET("/schema", h.schema)

	r.GET("/tools", h.listTools)
	r.POST("/tools/:name", h.callTool)
	r.POST("/query", h.query)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}
