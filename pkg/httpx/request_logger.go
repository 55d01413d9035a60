package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// Служебные маршруты, которые опрашиваются часто и в логе не нужны.
var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/health":  {},
}

// RequestLogger - строка лога на каждый запрос после его обработки.
// request_id и trace_id добавляет сам логгер из контекста запроса.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, quiet := quietPaths[path]; quiet {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		if status >= 500 {
			logf = log.Errorf
		}
		logf(
			c.Request.Context(),
			"request method=%s path=%s tool=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			c.Param("name"),
			status,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
