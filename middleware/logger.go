package middleware

import (
	"NoteShare/pkg/context"
	"NoteShare/pkg/log"
	"NoteShare/pkg/response"
	"NoteShare/pkg/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinZap 每个请求一行访问日志
func GinZap() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id, ok := context.GetIdentity(c); ok {
			fields = append(fields, zap.Uint64("user_id", id.UserID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		log.L.Info("http request", fields...)
	}
}

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.L.Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", utils.PanicTrace(err)),
				)
				if !c.Writer.Written() {
					response.Abort(c, http.StatusInternalServerError, "Internal server error")
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
