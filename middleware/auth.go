package middleware

import (
	"NoteShare/config"
	"NoteShare/pkg/context"
	"NoteShare/pkg/log"
	"NoteShare/pkg/response"
	"NoteShare/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticate 解析会话令牌并写入身份，令牌无效按匿名处理
func Authenticate(auth service.IAuthService, conf *config.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, conf.CookieName)
		if token == "" {
			c.Next()
			return
		}

		id, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			context.SetIdentity(c, id)
		case errors.Is(err, service.ErrUnauthenticated):
		default:
			log.L.Error("authenticate session", zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.Next()
	}
}

// SessionToken 先取 Cookie，其次 Authorization: Bearer
func SessionToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := context.GetIdentity(c); !ok {
			response.Abort(c, service.ErrUnauthenticated.Code, service.ErrUnauthenticated.Msg)
			return
		}
		c.Next()
	}
}

// RequireAdmin 未登录 401，非管理员 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := context.GetIdentity(c)
		if !ok {
			response.Abort(c, service.ErrUnauthenticated.Code, service.ErrUnauthenticated.Msg)
			return
		}
		if !id.IsAdmin {
			response.Abort(c, service.ErrForbidden.Code, service.ErrForbidden.Msg)
			return
		}
		c.Next()
	}
}
