// Package testutil 测试用的数据库、redis 和配置
package testutil

import (
	"NoteShare/config"
	"NoteShare/pkg/database"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 临时目录下的 sqlite 库，已建表
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	db, err := gorm.Open(database.OpenSQLite(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewRedis 基于 miniredis 的客户端
func NewRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// NewConfig 本地存储 + sqlite 的测试配置
func NewConfig(t testing.TB) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		App:      &config.App{Env: "test", LogLevel: "error"},
		Server:   &config.Server{Http: 0},
		Database: &config.Database{Driver: config.DriverSQLite, Path: filepath.Join(dir, "notes.db")},
		Redis:    &config.Redis{},
		Session: &config.Session{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: "session",
		},
		Storage: &config.Storage{
			Backend:     config.StorageLocal,
			UploadDir:   filepath.Join(dir, "uploads"),
			MaxFileSize: 1 << 20,
			SweepGrace:  time.Hour,
		},
		Oss:       &config.OssConfig{},
		Cache:     &config.Cache{FacetTTL: time.Minute},
		RocketMQ:  &config.RocketMQConfig{Topic: "note_moderation"},
		Bootstrap: &config.Bootstrap{},
	}
}
