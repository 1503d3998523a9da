package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrBoardTooSmall      = errors.New("board size is smaller than win length")
	ErrInvalidWinLength   = errors.New("win length must be positive")
	ErrInvalidNicknameLen = errors.New("max nickname length must be positive")
	ErrInvalidPingPeriod  = errors.New("ping period must be positive and shorter than pong wait")
	ErrInvalidWriteWait   = errors.New("write wait must be positive")
	ErrInvalidReadLimit   = errors.New("read limit must be positive")
	ErrInvalidSendBuffer  = errors.New("send buffer must not be negative")
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game       Game      `yaml:"game"`
	Websocket  Websocket `yaml:"websocket"`
	Redis      Redis     `yaml:"redis"`
}

type Game struct {
	BoardSize         int    `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"15"`
	WinLength         int    `yaml:"win-length" env:"GAME_WIN_LENGTH" env-default:"5"`
	MaxNicknameLength int    `yaml:"max-nickname-length" env:"GAME_MAX_NICKNAME_LENGTH" env-default:"10"`
	PairOnConnect     bool   `yaml:"pair-on-connect" env:"GAME_PAIR_ON_CONNECT" env-default:"false"`
	FallbackPrefix    string `yaml:"fallback-prefix" env:"GAME_FALLBACK_PREFIX" env-default:"anon_"`
}

type Websocket struct {
	PingPeriod time.Duration `yaml:"ping-period" env:"WS_PING_PERIOD" env-default:"54s"`
	PongWait   time.Duration `yaml:"pong-wait" env:"WS_PONG_WAIT" env-default:"60s"`
	WriteWait  time.Duration `yaml:"write-wait" env:"WS_WRITE_WAIT" env-default:"10s"`
	ReadLimit  int64         `yaml:"read-limit" env:"WS_READ_LIMIT" env-default:"4096"`
	SendBuffer int           `yaml:"send-buffer" env:"WS_SEND_BUFFER" env-default:"64"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ArchiveTTL time.Duration `yaml:"archive-ttl" env:"REDIS_ARCHIVE_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

// Validate - checks the game and websocket settings are consistent.
func (that *Config) Validate() error {
	if err := that.Game.validate(); err != nil {
		return err
	}

	return that.Websocket.validate()
}

func (that *Game) validate() error {
	if that.WinLength <= 0 {
		return ErrInvalidWinLength
	}

	if that.BoardSize < that.WinLength {
		return fmt.Errorf("%w: %d < %d", ErrBoardTooSmall, that.BoardSize, that.WinLength)
	}

	if that.MaxNicknameLength <= 0 {
		return ErrInvalidNicknameLen
	}

	return nil
}

// validate - the ping period must leave room for the pong before the read deadline.
func (that *Websocket) validate() error {
	if that.PingPeriod <= 0 || that.PingPeriod >= that.PongWait {
		return fmt.Errorf("%w: ping %s, pong wait %s", ErrInvalidPingPeriod, that.PingPeriod, that.PongWait)
	}

	if that.WriteWait <= 0 {
		return ErrInvalidWriteWait
	}

	if that.ReadLimit <= 0 {
		return ErrInvalidReadLimit
	}

	if that.SendBuffer < 0 {
		return ErrInvalidSendBuffer
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
