package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App            `json:"app" yaml:"app"`
	Server    *Server         `json:"server" yaml:"server"`
	Database  *Database       `json:"database" yaml:"database"`
	Redis     *Redis          `json:"redis" yaml:"redis"`
	Session   *Session        `json:"session" yaml:"session"`
	Storage   *Storage        `json:"storage" yaml:"storage"`
	Oss       *OssConfig      `json:"oss" yaml:"oss"`
	Cache     *Cache          `json:"cache" yaml:"cache"`
	RocketMQ  *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Bootstrap *Bootstrap      `json:"bootstrap" yaml:"bootstrap"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

type Cache struct {
	FacetTTL time.Duration `json:"facet_ttl" yaml:"facet_ttl"`
}

// Load 读取并解析配置文件，缺省项补默认值
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}
	conf.applyDefaults()
	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 5000
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	c.Database.applyDefaults()
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Session == nil {
		c.Session = &Session{}
	}
	c.Session.applyDefaults()
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	c.Storage.applyDefaults()
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Cache.FacetTTL <= 0 {
		c.Cache.FacetTTL = 10 * time.Minute
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.RocketMQ.Topic == "" {
		c.RocketMQ.Topic = "note_moderation"
	}
	if c.Bootstrap == nil {
		c.Bootstrap = &Bootstrap{}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
