package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	req.NoError(err)
	req.Equal(8080, cfg.Port)
	req.Equal("release", cfg.Mode)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal("badger", cfg.Store.Driver)
	req.Equal([]string{"*"}, cfg.AllowedOrigins)
	req.Equal("drop", cfg.PersistFailure)
	req.Equal(5*time.Second, cfg.PersistTimeout)
}

func TestLoadFile_FileAndEnv(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	req.NoError(os.WriteFile(path, []byte(`
mode: debug
port: 9090
bot_name: Test Bot
store:
  driver: redis
  redis_addr: 127.0.0.1:7000
`), 0o600))
	t.Setenv("RELAY_PORT", "9191")
	t.Setenv("RELAY_STORE_DRIVER", "badger")

	cfg, err := LoadFile(path)

	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9191, cfg.Port)
	req.Equal("Test Bot", cfg.BotName)
	req.Equal("badger", cfg.Store.Driver)
	req.Equal("127.0.0.1:7000", cfg.Store.RedisAddr)
}

func TestLoadFile_RejectsUnknownPersistPolicy(t *testing.T) {
	t.Setenv("RELAY_PERSIST_FAILURE", "retry")

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 64, cfg.SendBuffer)
	require.Equal(t, "Welcome to Relay!", cfg.WelcomeText)
}
