package service

import (
	"NoteShare/config"
	"NoteShare/dao"
	"NoteShare/dao/cache"
	"NoteShare/models"
	"NoteShare/pkg/context"
	"NoteShare/pkg/encrypt"
	"NoteShare/pkg/jwt"
	"NoteShare/pkg/log"
	"NoteShare/pkg/snowflake"
	"NoteShare/types"
	stdctx "context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 6

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx stdctx.Context, req *types.RegisterRequest) (*types.UserInfo, error)
	Login(ctx stdctx.Context, req *types.LoginRequest) (*types.UserInfo, string, error)
	Logout(ctx stdctx.Context, sessionID string) error
	// Authenticate 校验会话令牌，无效时返回 ErrUnauthenticated
	Authenticate(ctx stdctx.Context, token string) (*context.Identity, error)
	CurrentUser(ctx stdctx.Context, userID uint64) (*types.UserInfo, error)
	// EnsureAdmin 不存在时创建管理员，已存在的账号不做任何修改
	EnsureAdmin(ctx stdctx.Context, username, email, password string) (bool, error)
}

type AuthService struct {
	Config    *config.Config
	UsersRepo *dao.Users
	Sessions  *cache.SessionStorage
}

// Register 注册普通用户
func (s *AuthService) Register(ctx stdctx.Context, req *types.RegisterRequest) (*types.UserInfo, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrRegisterFields
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	user, err := s.createUser(ctx, username, email, req.Password, false)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *AuthService) createUser(ctx stdctx.Context, username, email, password string, isAdmin bool) (*models.User, error) {
	taken, err := s.UsersRepo.IsTaken(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := encrypt.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.UsersRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login 登录，返回用户信息和会话令牌
func (s *AuthService) Login(ctx stdctx.Context, req *types.LoginRequest) (*types.UserInfo, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.UsersRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if !encrypt.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	sid := snowflake.GenSessionID()
	ttl := s.Config.Session.TTL
	err = s.Sessions.Set(ctx, sid, &cache.Session{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, ttl)
	if err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	token, err := jwt.GenerateToken([]byte(s.Config.Session.Secret), sid, user.ID, user.IsAdmin, jwt.TypeSession, ttl)
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}
	log.L.Info("user login", zap.Uint64("user_id", user.ID), zap.String("sid", sid))
	return toUserInfo(user), token, nil
}

func (s *AuthService) Logout(ctx stdctx.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Del(ctx, sessionID)
}

func (s *AuthService) Authenticate(ctx stdctx.Context, token string) (*context.Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := jwt.ParseToken([]byte(s.Config.Session.Secret), jwt.TypeSession, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	sess, err := s.Sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, cache.ErrSessionNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.UserID != claims.UserID {
		return nil, ErrUnauthenticated
	}
	return &context.Identity{
		SessionID: claims.SessionID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		IsAdmin:   sess.IsAdmin,
	}, nil
}

func (s *AuthService) CurrentUser(ctx stdctx.Context, userID uint64) (*types.UserInfo, error) {
	user, err := s.UsersRepo.FindById(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toUserInfo(user), nil
}

func (s *AuthService) EnsureAdmin(ctx stdctx.Context, username, email, password string) (bool, error) {
	if username == "" || email == "" || len(password) < minPasswordLen {
		return false, errors.New("admin bootstrap requires username, email and a password of at least 6 characters")
	}
	existing, err := s.UsersRepo.FindByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin {
			log.L.Warn("bootstrap admin username belongs to a non-admin user", zap.String("username", username))
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("find admin: %w", err)
	}

	if _, err := s.createUser(ctx, username, email, password, true); err != nil {
		return false, err
	}
	log.L.Info("admin user created", zap.String("username", username))
	return true, nil
}

func toUserInfo(u *models.User) *types.UserInfo {
	return &types.UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
