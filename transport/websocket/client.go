package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/omok-backend/internal/config"
)

// Client is one WebSocket connection. Its id is the player identity for the game manager.
type Client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	conf   config.Websocket
	logger *slog.Logger

	// drained by writeLoop, closed by the hub
	send chan Message
}

func newClient(id string, conn *websocket.Conn, hub *Hub, conf config.Websocket, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		hub:    hub,
		conf:   conf,
		logger: logger.With("component", "client", "playerID", id),
		send:   make(chan Message, conf.SendBuffer),
	}
}

func (that *Client) close() {
	_ = that.conn.Close()
}

// readLoop - forwards inbound messages to the hub. Any read error ends the connection.
func (that *Client) readLoop() {
	log := that.logger.With("method", "readLoop")

	defer func() {
		that.hub.leave(that)
		that.close()
	}()

	that.conn.SetReadLimit(that.conf.ReadLimit)
	_ = that.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			continue
		}

		that.hub.receive(that, message)
	}
}

// writeLoop - writes queued messages in order and pings the peer.
func (that *Client) writeLoop() {
	log := that.logger.With("method", "writeLoop")

	ticker := time.NewTicker(that.conf.PingPeriod)
	defer func() {
		ticker.Stop()
		that.close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(message); err != nil {
				log.Warn("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteWait))

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
