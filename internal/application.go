package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/omok-backend/internal/config"
	"github.com/rocketscienceinc/omok-backend/internal/entity"
	"github.com/rocketscienceinc/omok-backend/internal/repository"
	"github.com/rocketscienceinc/omok-backend/internal/repository/storage"
	"github.com/rocketscienceinc/omok-backend/internal/usecase"
	"github.com/rocketscienceinc/omok-backend/transport/rest"
	"github.com/rocketscienceinc/omok-backend/transport/websocket"
)

const archiveBuffer = 128

var ErrAddrNotFound = errors.New("redis address string is empty")

type gameArchive interface {
	Submit(state entity.GameState)
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var (
		archive  gameArchive = usecase.NopArchive{}
		gameRepo repository.GameRepository
	)

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(redisStorage, conf.Redis.ArchiveTTL)

		archiver := usecase.NewArchiver(logger, gameRepo, archiveBuffer)
		go archiver.Run(ctx)

		archive = archiver
	} else {
		log.Info("Redis is disabled, finished games are not archived")
	}

	gameManager := usecase.NewGameManager(logger, settingsFrom(conf.Game), archive)

	hub := websocket.NewHub(logger, gameManager)
	go hub.Run(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, gameRepo, hub)
		if httpErr := rest.Start(ctx, conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, conf.Websocket, hub)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func settingsFrom(conf config.Game) usecase.Settings {
	return usecase.Settings{
		BoardSize:       conf.BoardSize,
		WinLength:       conf.WinLength,
		RequireNickname: !conf.PairOnConnect,
		Nickname: entity.NicknamePolicy{
			MaxLength:      conf.MaxNicknameLength,
			FallbackPrefix: conf.FallbackPrefix,
		},
	}
}
