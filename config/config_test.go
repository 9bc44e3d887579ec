package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ut "github.com/zdnscloud/cement/unittest"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "kvsession.yaml")
	ut.Equal(t, os.WriteFile(path, []byte(content), 0600), nil)
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	ut.Equal(t, err, nil)
	ut.Equal(t, cfg, Default())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "0.0.0.0:7777"
  http_addr: "0.0.0.0:8080"
storage:
  driver: sqlite
  dir: /var/lib/kvsession
migration:
  lock_dir: /run/kvsession
log:
  level: debug
`)
	cfg, err := Load(path)
	ut.Equal(t, err, nil)
	ut.Equal(t, cfg.Server.Addr, "0.0.0.0:7777")
	ut.Equal(t, cfg.Server.HTTPAddr, "0.0.0.0:8080")
	ut.Equal(t, cfg.Storage.Driver, DriverSqlite)
	ut.Equal(t, cfg.Storage.Dir, "/var/lib/kvsession")
	ut.Equal(t, cfg.Migration.LockDir, "/run/kvsession")
	//untouched keys keep defaults
	ut.Equal(t, cfg.Migration.Retries, 3)
	ut.Equal(t, cfg.Log.Level, "debug")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KVSESSION_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("KVSESSION_STORAGE_DRIVER", "memory")
	t.Setenv("KVSESSION_MIGRATION_RETRIES", "5")
	t.Setenv("KVSESSION_LOG_LEVEL", "warn")

	path := writeConfig(t, `
server:
  addr: "0.0.0.0:7777"
`)
	cfg, err := Load(path)
	ut.Equal(t, err, nil)
	ut.Equal(t, cfg.Server.Addr, "127.0.0.1:9999")
	ut.Equal(t, cfg.Storage.Driver, DriverMemory)
	ut.Equal(t, cfg.Migration.Retries, 5)
	ut.Equal(t, cfg.Log.Level, "warn")

	t.Setenv("KVSESSION_MIGRATION_RETRIES", "many")
	_, err = Load(path)
	ut.Assert(t, err != nil, "bad retries should fail")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	ut.Assert(t, err != nil, "missing file should fail")

	_, err = Load(writeConfig(t, "server: [not, a, map"))
	ut.Assert(t, err != nil, "bad yaml should fail")

	_, err = Load(writeConfig(t, `
storage:
  driver: leveldb
log:
  level: verbose
`))
	ut.Assert(t, err != nil, "")
	ut.Assert(t, strings.Contains(err.Error(), "storage.driver"), "unexpected error %v", err)
	ut.Assert(t, strings.Contains(err.Error(), "log.level"), "unexpected error %v", err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	ut.Equal(t, cfg.Validate(), nil)

	cfg.Storage.Dir = ""
	ut.Assert(t, cfg.Validate() != nil, "bolt needs a dir")
	cfg.Storage.Driver = DriverMemory
	ut.Equal(t, cfg.Validate(), nil)

	cfg.Migration.Retries = -1
	ut.Assert(t, cfg.Validate() != nil, "")
}
