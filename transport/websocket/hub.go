package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/omok-backend/internal/usecase"
)

var ErrHubStopped = errors.New("hub is stopped")

type gameManager interface {
	Connect(playerID string) ([]usecase.Notification, error)
	SetNickname(playerID, nickname string) ([]usecase.Notification, error)
	PlaceStone(playerID string, row, col int) ([]usecase.Notification, error)
	Disconnect(playerID string) []usecase.Notification
	Stats() usecase.Stats
}

type inbound struct {
	client  *Client
	message Message
}

// Hub is the single worker that owns the game manager.
// Every connect, message and disconnect is handled here one at a time, in arrival order.
type Hub struct {
	logger  *slog.Logger
	manager gameManager

	// accessed only by the Run goroutine
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	incoming   chan inbound
	stats      chan chan usecase.Stats
	done       chan struct{}

	handlers map[string]handler
}

func NewHub(logger *slog.Logger, manager gameManager) *Hub {
	hub := &Hub{
		logger:  logger.With("component", "hub"),
		manager: manager,

		clients: make(map[string]*Client),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan inbound),
		stats:      make(chan chan usecase.Stats),
		done:       make(chan struct{}),

		handlers: make(map[string]handler),
	}

	hub.handlers[actionSetNickname] = hub.handleSetNickname
	hub.handlers[actionPlaceStone] = hub.handlePlaceStone

	return hub
}

// Run - processes events until the context is canceled. Open connections are closed on exit.
func (that *Hub) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	defer func() {
		close(that.done)

		for id, client := range that.clients {
			delete(that.clients, id)
			close(client.send)
		}

		log.Info("hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-that.register:
			that.connect(client)

		case client := <-that.unregister:
			that.disconnect(client)

		case in := <-that.incoming:
			that.process(in)

		case reply := <-that.stats:
			reply <- that.manager.Stats()
		}
	}
}

// Stats - asks the worker for a snapshot of the lobby.
func (that *Hub) Stats(ctx context.Context) (usecase.Stats, error) {
	reply := make(chan usecase.Stats, 1)

	select {
	case that.stats <- reply:
	case <-that.done:
		return usecase.Stats{}, ErrHubStopped
	case <-ctx.Done():
		return usecase.Stats{}, fmt.Errorf("failed to request stats: %w", ctx.Err())
	}

	return <-reply, nil
}

func (that *Hub) join(client *Client) error {
	select {
	case that.register <- client:
		return nil
	case <-that.done:
		return ErrHubStopped
	}
}

func (that *Hub) leave(client *Client) {
	select {
	case that.unregister <- client:
	case <-that.done:
	}
}

func (that *Hub) receive(client *Client, message Message) {
	select {
	case that.incoming <- inbound{client: client, message: message}:
	case <-that.done:
	}
}

func (that *Hub) connect(client *Client) {
	log := that.logger.With("method", "connect", "playerID", client.id)

	notifications, err := that.manager.Connect(client.id)
	if err != nil {
		log.Error("failed to connect player", "error", err)
		close(client.send)
		return
	}

	that.clients[client.id] = client
	log.Info("player connected")

	that.dispatch(notifications)
}

func (that *Hub) disconnect(client *Client) {
	if registered, ok := that.clients[client.id]; !ok || registered != client {
		return
	}

	delete(that.clients, client.id)
	close(client.send)

	that.logger.Info("player disconnected", "playerID", client.id)

	that.dispatch(that.manager.Disconnect(client.id))
}

// process - rejected messages are dropped without feedback to the client.
func (that *Hub) process(in inbound) {
	log := that.logger.With("method", "process", "playerID", in.client.id, "action", in.message.Action)

	if _, ok := that.clients[in.client.id]; !ok {
		return
	}

	handle, ok := that.handlers[in.message.Action]
	if !ok {
		log.Debug("message dropped", "error", ErrUnknownAction)
		return
	}

	notifications, err := handle(in.client.id, in.message.Payload)
	if err != nil {
		log.Debug("message rejected", "error", err)
		return
	}

	that.dispatch(notifications)
}

// dispatch - queues each notification on its recipient. A client whose queue is full is closed.
func (that *Hub) dispatch(notifications []usecase.Notification) {
	for _, notification := range notifications {
		client, ok := that.clients[notification.To]
		if !ok {
			continue
		}

		message, err := newMessage(notification.Action, notification.Payload)
		if err != nil {
			that.logger.Error("failed to marshal notification", "action", notification.Action, "error", err)
			continue
		}

		select {
		case client.send <- message:
		default:
			that.logger.Warn("send queue is full, closing connection", "playerID", client.id)
			client.close()
		}
	}
}
