package config

import "time"

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

// Session 登录会话配置
type Session struct {
	Secret     string        `json:"secret" yaml:"secret"`
	TTL        time.Duration `json:"ttl" yaml:"ttl"`
	CookieName string        `json:"cookie_name" yaml:"cookie_name"`
	Secure     bool          `json:"secure" yaml:"secure"`
}

func (s *Session) applyDefaults() {
	if s.TTL <= 0 {
		s.TTL = 7 * 24 * time.Hour
	}
	if s.CookieName == "" {
		s.CookieName = "session"
	}
}
