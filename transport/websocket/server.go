package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/omok-backend/internal/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   *slog.Logger
	conf     config.Websocket
	hub      *Hub
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, conf config.Websocket, hub *Hub) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		conf:   conf,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler - routes of the WebSocket server.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and shuts it down when the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and hands it to the hub under a fresh identity.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(uuid.NewString(), conn, that.hub, that.conf, that.logger)

	if err = that.hub.join(client); err != nil {
		log.Warn("connection refused", "error", err)
		_ = conn.Close()
		return
	}

	log.Info("WebSocket connection established", "playerID", client.id)

	go client.writeLoop()
	go client.readLoop()
}
