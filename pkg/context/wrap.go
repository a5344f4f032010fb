package context

import (
	"NoteShare/pkg/log"
	"NoteShare/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxIdentity = "identity"
	CtxUserID   = "user_id"
)

// Identity 当前请求的登录身份，由鉴权中间件写入
type Identity struct {
	SessionID string
	UserID    uint64
	Username  string
	IsAdmin   bool
}

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			var be *response.BizError
			if errors.As(err, &be) {
				if be.Code >= http.StatusInternalServerError {
					log.L.Error("request failed",
						zap.String("path", c.FullPath()),
						zap.Error(err),
					)
				}
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("unhandled error",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			response.Fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}
}

func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(CtxIdentity, id)
	c.Set(CtxUserID, id.UserID)
}

func GetIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}

func GetUserID(c *gin.Context) (uint64, error) {
	id, ok := GetIdentity(c)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}
	return id.UserID, nil
}
