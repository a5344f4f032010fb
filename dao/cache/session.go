package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// Session 登录会话
type Session struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type SessionStorage struct {
	redis *redis.Client
}

func NewSessionStorage(rds *redis.Client) *SessionStorage {
	return &SessionStorage{redis: rds}
}

// Set 写入会话
// @params sid  会话ID
// @params ttl  过期时间
func (s *SessionStorage) Set(ctx context.Context, sid string, sess *Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, s.name(sid), data, ttl).Err()
}

// Get 读取会话
func (s *SessionStorage) Get(ctx context.Context, sid string) (*Session, error) {
	data, err := s.redis.Get(ctx, s.name(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Del 注销会话
func (s *SessionStorage) Del(ctx context.Context, sid string) error {
	return s.redis.Del(ctx, s.name(sid)).Err()
}

// session:{sid}
func (s *SessionStorage) name(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
