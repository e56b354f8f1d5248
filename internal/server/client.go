package server

import (
	"geocache-server/internal/domain"
	"geocache-server/internal/engine"
	"geocache-server/pkg/api"
	"geocache-server/pkg/logger"
	"geocache-server/pkg/utils"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string

	done chan struct{}
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
		done: make(chan struct{}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	var updates chan api.ServerResponse
	defer func() {
		close(c.done)
		if updates != nil {
			c.Game.Hub.UnregisterChan(c.SessionID, updates)
			logger.Log.WithField("session", c.SessionID).Info("Client disconnected")
		} else {
			// Handshake не состоялся: писать в сокет больше некому
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}
	c.SessionID = utils.SessionIDOrNew(loginCmd.Token)

	logger.Log.WithFields(logrus.Fields{
		"session": c.SessionID,
		"remote":  c.Conn.RemoteAddr().String(),
	}).Info("Client logged in")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates = c.Game.Hub.Register(c.SessionID)
	go c.forward(updates)

	// Отправляем INIT (триггер первой отрисовки)
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.SessionID}); err != nil {
		logger.Log.WithError(err).Warn("INIT rejected")
		return
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS Error")
			}
			break
		}
		cmd.Token = c.SessionID
		if err := c.Game.ProcessCommand(cmd); err != nil {
			c.sendError(err)
		}
	}
}

// forward пересылает обновления из хаба в writePump.
// Канал хаба закрывается при отписке или при повторном входе с тем же токеном.
func (c *Client) forward(updates chan api.ServerResponse) {
	defer close(c.Send)
	for msg := range updates {
		select {
		case c.Send <- msg:
		case <-c.done:
			return
		}
	}
}

// sendError сообщает клиенту об отвергнутой до очереди команде (неизвестное действие)
func (c *Client) sendError(err error) {
	msg := api.ServerResponse{
		Type:      "ERROR",
		SessionID: c.SessionID,
		Logs: []api.LogEntry{{
			ID:        time.Now().Format(time.RFC3339Nano),
			Text:      err.Error(),
			Type:      domain.LogError,
			Timestamp: time.Now().UnixMilli(),
		}},
	}
	c.Game.Hub.SendTo(c.SessionID, msg)
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
