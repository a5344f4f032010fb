package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BizError 业务错误，Code 即 HTTP 状态码，Msg 原样返回给调用方
type BizError struct {
	Code int
	Msg  string
	Err  error
}

func (e *BizError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BizError) Unwrap() error {
	return e.Err
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// Internal 500 错误，cause 只进日志不返回
func Internal(msg string, cause error) *BizError {
	return &BizError{
		Code: http.StatusInternalServerError,
		Msg:  msg,
		Err:  cause,
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: msg})
}
