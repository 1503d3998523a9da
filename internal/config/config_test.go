package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Missing keys take defaults", func(t *testing.T) {
		// Given: a config with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf := MustLoad(path)

		// Then: everything else has its default
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, 15, conf.Game.BoardSize)
		assert.Equal(t, 5, conf.Game.WinLength)
		assert.Equal(t, 10, conf.Game.MaxNicknameLength)
		assert.False(t, conf.Game.PairOnConnect)
		assert.Equal(t, "anon_", conf.Game.FallbackPrefix)
		assert.Equal(t, 60*time.Second, conf.Websocket.PongWait)
		assert.Equal(t, int64(4096), conf.Websocket.ReadLimit)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, 24*time.Hour, conf.Redis.ArchiveTTL)
	})

	t.Run("File values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
game:
  board-size: 9
  win-length: 4
  pair-on-connect: true
redis:
  enabled: true
  host: redis
  port: "6380"
`)

		conf := MustLoad(path)

		assert.Equal(t, 9, conf.Game.BoardSize)
		assert.Equal(t, 4, conf.Game.WinLength)
		assert.True(t, conf.Game.PairOnConnect)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Inconsistent game settings panic", func(t *testing.T) {
		path := writeConfig(t, "game:\n  board-size: 3\n  win-length: 5\n")

		assert.Panics(t, func() {
			MustLoad(path)
		})
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Game: Game{BoardSize: 15, WinLength: 5, MaxNicknameLength: 10},
			Websocket: Websocket{
				PingPeriod: 54 * time.Second,
				PongWait:   60 * time.Second,
				WriteWait:  10 * time.Second,
				ReadLimit:  4096,
				SendBuffer: 64,
			},
		}
	}

	t.Run("Valid settings pass", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Board smaller than win length", func(t *testing.T) {
		conf := valid()
		conf.Game.BoardSize = 4

		assert.ErrorIs(t, conf.Validate(), ErrBoardTooSmall)
	})

	t.Run("Non-positive win length", func(t *testing.T) {
		conf := valid()
		conf.Game.WinLength = 0

		assert.ErrorIs(t, conf.Validate(), ErrInvalidWinLength)
	})

	t.Run("Non-positive nickname length", func(t *testing.T) {
		conf := valid()
		conf.Game.MaxNicknameLength = 0

		assert.ErrorIs(t, conf.Validate(), ErrInvalidNicknameLen)
	})

	t.Run("Zero ping period", func(t *testing.T) {
		conf := valid()
		conf.Websocket.PingPeriod = 0

		assert.ErrorIs(t, conf.Validate(), ErrInvalidPingPeriod)
	})

	t.Run("Ping period not shorter than pong wait", func(t *testing.T) {
		conf := valid()
		conf.Websocket.PingPeriod = conf.Websocket.PongWait

		assert.ErrorIs(t, conf.Validate(), ErrInvalidPingPeriod)
	})

	t.Run("Non-positive write wait", func(t *testing.T) {
		conf := valid()
		conf.Websocket.WriteWait = 0

		assert.ErrorIs(t, conf.Validate(), ErrInvalidWriteWait)
	})

	t.Run("Non-positive read limit", func(t *testing.T) {
		conf := valid()
		conf.Websocket.ReadLimit = 0

		assert.ErrorIs(t, conf.Validate(), ErrInvalidReadLimit)
	})

	t.Run("Negative send buffer", func(t *testing.T) {
		conf := valid()
		conf.Websocket.SendBuffer = -1

		assert.ErrorIs(t, conf.Validate(), ErrInvalidSendBuffer)
	})

	t.Run("Unbuffered send queue is allowed", func(t *testing.T) {
		conf := valid()
		conf.Websocket.SendBuffer = 0

		assert.NoError(t, conf.Validate())
	})
}

func TestMustLoad_InvalidWebsocket(t *testing.T) {
	// Given: pings slower than the pong deadline
	path := writeConfig(t, "websocket:\n  ping-period: 1m\n  pong-wait: 30s\n")

	// When/Then: loading aborts before any server starts
	assert.Panics(t, func() {
		MustLoad(path)
	})
}
