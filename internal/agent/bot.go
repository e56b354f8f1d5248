package agent

import (
	"context"
	"encoding/json"
	"geocache-server/internal/engine"
	"geocache-server/pkg/api"
	"geocache-server/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultInterval - пауза между ходами бота
const DefaultInterval = 500 * time.Millisecond

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Подписывается на хаб как обычная сессия и шлет команды через ProcessCommand,
// то есть видит ровно то же, что и WebSocket-клиент.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> запоминает последний снимок и раз в Interval отвечает на него командой.
type Bot struct {
	ID       string
	Service  *engine.GameService
	Inbox    chan api.ServerResponse
	Strategy *Strategy
	Interval time.Duration
}

func NewBot(id string, service *engine.GameService) *Bot {
	logger.Log.WithField("session", id).Info("Creating bot")
	return &Bot{
		ID:       id,
		Service:  service,
		Inbox:    service.Hub.Register(id),
		Strategy: NewStrategy(3),
		Interval: DefaultInterval,
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.UnregisterChan(b.ID, b.Inbox)

	// Первый снимок
	b.send(b.Strategy.Decide(api.ServerResponse{}))

	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	var latest *api.ServerResponse
	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("session", b.ID).Info("Bot shut down")
			return

		case msg, ok := <-b.Inbox:
			if !ok {
				return
			}
			latest = &msg

		case <-ticker.C:
			// На один снимок - одна команда, иначе бот повторит ход по устаревшему состоянию
			if latest == nil {
				continue
			}
			cmd := b.Strategy.Decide(*latest)
			latest = nil
			b.send(cmd)
		}
	}
}

func (b *Bot) send(cmd Command) {
	var payload json.RawMessage
	if cmd.Payload != nil {
		data, err := json.Marshal(cmd.Payload)
		if err != nil {
			logger.Log.WithError(err).Error("Bot payload marshal failed")
			return
		}
		payload = data
	}

	err := b.Service.ProcessCommand(api.ClientCommand{
		Action:  cmd.Action.String(),
		Token:   b.ID,
		Payload: payload,
	})
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"session": b.ID,
			"action":  cmd.Action.String(),
		}).WithError(err).Warn("Bot command rejected")
	}
}
