package handler

import (
	"NoteShare/config"
	"NoteShare/pkg/context"
	"NoteShare/pkg/response"
	"NoteShare/service"
	"NoteShare/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errBadRequest = response.NewError(http.StatusBadRequest, "Invalid request body")

type Auth struct {
	Config      *config.Config
	AuthService service.IAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/auth")
	g.POST("/register", context.Wrap(u.Register))
	g.POST("/login", context.Wrap(u.Login))
	g.POST("/logout", context.Wrap(u.Logout))
	g.GET("/check-auth", context.Wrap(u.CheckAuth))
}

// Register 注册
func (u *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return service.ErrRegisterFields
	}
	user, err := u.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, types.UserResp{Message: "User registered successfully", User: user})
	return nil
}

// Login 登录，令牌同时写入 Cookie 和响应体
func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return errBadRequest
	}
	user, token, err := u.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}

	sess := u.Config.Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sess.CookieName, token, int(sess.TTL.Seconds()), "/", "", sess.Secure, true)
	response.Success(c, types.LoginResp{Message: "Login successful", User: user, Token: token})
	return nil
}

func (u *Auth) Logout(c *gin.Context) error {
	if id, ok := context.GetIdentity(c); ok {
		if err := u.AuthService.Logout(c.Request.Context(), id.SessionID); err != nil {
			return err
		}
	}
	sess := u.Config.Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sess.CookieName, "", -1, "/", "", sess.Secure, true)
	response.Message(c, "Logout successful")
	return nil
}

func (u *Auth) CheckAuth(c *gin.Context) error {
	id, ok := context.GetIdentity(c)
	if !ok {
		response.Success(c, types.CheckAuthResp{Authenticated: false})
		return nil
	}
	user, err := u.AuthService.CurrentUser(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			response.Success(c, types.CheckAuthResp{Authenticated: false})
			return nil
		}
		return err
	}
	response.Success(c, types.CheckAuthResp{Authenticated: true, User: user})
	return nil
}
