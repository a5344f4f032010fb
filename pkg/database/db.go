package database

import (
	"NoteShare/config"
	"NoteShare/models"
	"NoteShare/pkg/log"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) (*gorm.DB, func(), error) {
	dialector, err := dialectorFor(conf.Database)
	if err != nil {
		return nil, nil, err
	}

	gormConf := &gorm.Config{TranslateError: true}
	if !conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(dialector, gormConf)
	if err != nil {
		log.L.Error("failed to connect database", zap.Error(err))
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if conf.Database.Driver == config.DriverSQLite {
		// sqlite 单写者，串行化连接避免 database is locked
		sqlDB.SetMaxOpenConns(1)
	} else {
		if conf.Database.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(conf.Database.MaxOpenConns)
		}
		if conf.Database.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(conf.Database.MaxIdleConns)
		}
	}

	log.L.Info("connect database success", zap.String("driver", conf.Database.Driver))
	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.L.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

func dialectorFor(conf *config.Database) (gorm.Dialector, error) {
	switch conf.Driver {
	case config.DriverMySQL:
		return mysql.Open(conf.Dsn()), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(conf.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return OpenSQLite(conf.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// SQLiteDriverName 注册了 Unicode lower() 的 sqlite 驱动，内置 lower() 只处理 ASCII
const SQLiteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// OpenSQLite 使用 SQLiteDriverName 打开
func OpenSQLite(path string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: SQLiteDriverName,
		DSN:        SQLiteDsn(path),
	})
}

// SQLiteDsn 补上 busy_timeout 和外键约束
func SQLiteDsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_foreign_keys=on"
}

// Migrate 建表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Note{})
}
