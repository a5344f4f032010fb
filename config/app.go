package config

type App struct {
	Env      string `json:"env" yaml:"env"`
	Debug    bool   `json:"debug" yaml:"debug"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Bootstrap 启动时创建管理员，默认关闭
type Bootstrap struct {
	AdminEnabled  bool   `json:"admin_enabled" yaml:"admin_enabled"`
	AdminUsername string `json:"admin_username" yaml:"admin_username"`
	AdminEmail    string `json:"admin_email" yaml:"admin_email"`
	AdminPassword string `json:"admin_password" yaml:"admin_password"`
}
