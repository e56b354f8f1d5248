package handlers

import (
	"context"
	"encoding/json"
	"geocache-server/internal/domain"
)

// WorldController описывает мир, над которым работают хендлеры.
// engine.World неявно реализует этот интерфейс.
type WorldController interface {
	MoveTo(p domain.LatLng) error
	Step(di, dj int) error
	TeleportTo(i, j int) error
	Collect(coin domain.Coin, position *domain.Cell) bool
	Deposit(coin domain.Coin, position *domain.Cell) bool
	Reset()
	PlayerCell() *domain.Cell
}

// Persistence сохраняет и загружает мир целиком.
// GameService неявно реализует этот интерфейс.
type Persistence interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) bool
}

// Context передает хендлеру состояние мира.
type Context struct {
	Ctx     context.Context
	World   WorldController
	Storage Persistence
	Token   string // Сессия, приславшая команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, TRADE, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, COLLECT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
