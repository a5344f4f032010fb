package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http: 8080\n"), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, conf.Server.Http)
	assert.Equal(t, DriverSQLite, conf.Database.Driver)
	assert.Equal(t, StorageLocal, conf.Storage.Backend)
	assert.Equal(t, int64(16<<20), conf.Storage.MaxFileSize)
	assert.Equal(t, "session", conf.Session.CookieName)
	assert.Equal(t, 10*time.Minute, conf.Cache.FacetTTL)
	assert.False(t, conf.Bootstrap.AdminEnabled)
	assert.False(t, conf.RocketMQ.Enabled)
}

func TestLoad_MySQLDsn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
database:
  driver: mysql
  host: db
  user: notes
  password: secret
  name: notes
session:
  ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "notes:secret@tcp(db:3306)/notes?charset=utf8mb4&parseTime=True&loc=UTC", conf.Database.Dsn())
	assert.Equal(t, time.Hour, conf.Session.TTL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
