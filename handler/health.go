package handler

import (
	"NoteShare/pkg/log"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Health struct {
	Db    *gorm.DB
	Redis *redis.Client
}

func (h *Health) RegisterRouter(r gin.IRouter) {
	r.GET("/healthz", h.Check)
}

// Check 数据库和 redis 均可用时返回 200
func (h *Health) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok", "redis": "ok"}
	code := http.StatusOK

	sqlDB, err := h.Db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.L.Warn("health check database", zap.Error(err))
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := h.Redis.Ping(ctx).Err(); err != nil {
		log.L.Warn("health check redis", zap.Error(err))
		status["redis"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
