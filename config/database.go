package config

import "fmt"

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Database 数据库配置，driver 为 mysql 或 sqlite
type Database struct {
	Driver       string `json:"driver" yaml:"driver"`
	Host         string `json:"host" yaml:"host"`
	Port         int    `json:"port" yaml:"port"`
	User         string `json:"user" yaml:"user"`
	Password     string `json:"password" yaml:"password"`
	Name         string `json:"name" yaml:"name"`
	Charset      string `json:"charset" yaml:"charset"`
	Path         string `json:"path" yaml:"path"`
	MaxOpenConns int    `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns" yaml:"max_idle_conns"`
}

func (d *Database) applyDefaults() {
	if d.Driver == "" {
		d.Driver = DriverSQLite
	}
	if d.Charset == "" {
		d.Charset = "utf8mb4"
	}
	if d.Port == 0 {
		d.Port = 3306
	}
	if d.Path == "" {
		d.Path = "data/notes.db"
	}
}

// Dsn MySQL 连接串
func (d *Database) Dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name, d.Charset)
}
