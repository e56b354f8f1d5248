package engine

import (
	"context"
	"errors"
	"fmt"
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
	"geocache-server/internal/engine/handlers/actions"
	"geocache-server/internal/engine/handlers/admin"
	"geocache-server/internal/infrastructure/storage"
	"geocache-server/internal/network"
	"geocache-server/pkg/api"
	"geocache-server/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrStopped - цикл игры уже не принимает команды
var ErrStopped = errors.New("game service stopped")

// query - чтение состояния мира изнутри игрового цикла
type query struct {
	fn   func(w *World)
	done chan struct{}
}

// GameService владеет единственным миром и сериализует все обращения к нему:
// команды клиентов, геопозицию, сохранение, отладочные запросы.
type GameService struct {
	World *World
	Store storage.Transport
	Slot  string

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	handlers map[domain.ActionType]handlers.HandlerFunc
	queries  chan query
	stopped  chan struct{}

	tick   int
	logs   []api.LogEntry
	events []api.EventView
}

// NewService создает мир и сервис вокруг него.
// Сохранение из слота не загружается: это решает вызывающий (LoadGame).
func NewService(cfg Config, store storage.Transport, slot string) (*GameService, error) {
	s := &GameService{
		Store:       store,
		Slot:        slot,
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		queries:     make(chan query),
		stopped:     make(chan struct{}),
		logs:        []api.LogEntry{},
	}

	world, err := NewWorld(cfg, s)
	if err != nil {
		return nil, err
	}
	s.World = world

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionPosition] = handlers.WithPayload(actions.HandlePosition)
	s.handlers[domain.ActionCollect] = handlers.WithPayload(actions.HandleCollect)
	s.handlers[domain.ActionDeposit] = handlers.WithPayload(actions.HandleDeposit)
	s.handlers[domain.ActionReset] = handlers.WithEmptyPayload(actions.HandleReset)
	s.handlers[domain.ActionSave] = handlers.WithEmptyPayload(actions.HandleSave)
	s.handlers[domain.ActionLoad] = handlers.WithEmptyPayload(actions.HandleLoad)
	s.handlers[domain.ActionTeleport] = handlers.WithPayload(admin.HandleTeleport)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, терминал, бот).
// Неизвестное действие отбрасывается сразу, до очереди.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", externalCmd.Action).Warn("Unknown action")
		return fmt.Errorf("unknown action %q", externalCmd.Action)
	}
	if s.isStopped() {
		return ErrStopped
	}

	select {
	case s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	case <-s.stopped:
		return ErrStopped
	}
}

// --- GAME LOOP ---

// Run обрабатывает команды строго по одной: каждая доводит пересчет окрестности
// до конца прежде, чем начнется следующая.
func (s *GameService) Run(ctx context.Context) {
	logger.Log.Info("Game loop started")
	defer close(s.stopped)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Game loop stopped")
			return

		case cmd := <-s.CommandChan:
			s.executeCommand(ctx, cmd)
			s.publishUpdate()

		case q := <-s.queries:
			q.fn(s.World)
			close(q.done)
		}
	}
}

// Do выполняет fn внутри игрового цикла и ждет завершения.
// Для отладочных запросов и тестов: fn не должна удерживать *World после возврата.
func (s *GameService) Do(ctx context.Context, fn func(w *World)) error {
	if s.isStopped() {
		return ErrStopped
	}
	q := query{fn: fn, done: make(chan struct{})}
	select {
	case s.queries <- q:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *GameService) isStopped() bool {
	select {
	case <-s.stopped:
		return true
	default:
		return false
	}
}

// executeCommand выполняет хендлер и пишет логи
func (s *GameService) executeCommand(ctx context.Context, cmd domain.InternalCommand) {
	s.tick++

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	hctx := handlers.Context{
		Ctx:     ctx,
		World:   s.World,
		Storage: s,
		Token:   cmd.Token,
	}

	result, err := handler(hctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"token":  cmd.Token,
		}).WithError(err).Warn("Command rejected")
		s.AddLog(err.Error(), domain.LogError)
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = domain.LogInfo
		}
		s.AddLog(result.Msg, msgType)
	}
}

// Save реализует handlers.Persistence
func (s *GameService) Save(ctx context.Context) error {
	if s.Store == nil {
		return errors.New("no store configured")
	}
	return SaveGame(ctx, s.World, s.Store, s.Slot)
}

// Load реализует handlers.Persistence
func (s *GameService) Load(ctx context.Context) bool {
	if s.Store == nil {
		s.World.Reset()
		return false
	}
	return LoadGame(ctx, s.World, s.Store, s.Slot)
}

// publishUpdate рассылает снимок мира ВСЕМ подключенным сессиям
func (s *GameService) publishUpdate() {
	s.Hub.Broadcast(*s.BuildState())

	// Логи и события уже ушли всем одинаковыми
	s.logs = []api.LogEntry{}
	s.events = nil
}

// --- RENDER HOOKS (domain.Listener) ---

func (s *GameService) OnCacheEvent(ev domain.CacheEvent) {
	s.events = append(s.events, api.EventView{
		Type:     ev.Type.String(),
		Position: api.CellView{I: ev.Position.I, J: ev.Position.J},
		Coins:    len(ev.Coins),
	})
}

// OnPlayerEvent: позиция игрока и так уходит в каждом снимке
func (s *GameService) OnPlayerEvent(domain.PlayerEvent) {}

func (s *GameService) AddLog(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}
