package config

import "time"

const (
	StorageLocal = "local"
	StorageOss   = "oss"
)

// Storage 上传文件存储配置
type Storage struct {
	Backend       string        `json:"backend" yaml:"backend"`
	UploadDir     string        `json:"upload_dir" yaml:"upload_dir"`
	MaxFileSize   int64         `json:"max_file_size" yaml:"max_file_size"`
	SweepInterval time.Duration `json:"sweep_interval" yaml:"sweep_interval"`
	SweepGrace    time.Duration `json:"sweep_grace" yaml:"sweep_grace"`
}

func (s *Storage) applyDefaults() {
	if s.Backend == "" {
		s.Backend = StorageLocal
	}
	if s.UploadDir == "" {
		s.UploadDir = "uploads"
	}
	if s.MaxFileSize <= 0 {
		s.MaxFileSize = 16 << 20
	}
	if s.SweepGrace <= 0 {
		s.SweepGrace = time.Hour
	}
}

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	Prefix          string `json:"prefix" yaml:"prefix"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}

func ProvideStorageConfig(cfg *Config) *Storage {
	return cfg.Storage
}
