package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный снимок видимой части мира: игрок, его инвентарь и живые кэши окрестности.
// Отправляется после каждой обработанной команды.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Tick порядковый номер обработанной команды. Растёт монотонно.
	Tick int `json:"tick"`

	// SessionID идентификатор сессии, которой адресовано сообщение.
	SessionID string `json:"sessionId,omitempty"`

	// Grid метаданные сетки: шаг тайла и границы окрестности.
	Grid *GridMeta `json:"grid,omitempty"`

	// Player позиция и инвентарь игрока.
	Player *PlayerView `json:"player,omitempty"`

	// Caches живые кэши окрестности в порядке (i, j).
	Caches []CacheView `json:"caches,omitempty"`

	// Events рендер-хуки (SPAWN/UNSPAWN/UPDATE), накопленные с прошлого сообщения.
	Events []EventView `json:"events,omitempty"`

	// Logs новые сообщения для игрока.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta сообщает клиенту, как переводить ячейки в координаты.
type GridMeta struct {
	TileDegrees float64 `json:"tileDegrees"`
	Radius      int     `json:"radius"`
	MinI        int     `json:"minI"`
	MinJ        int     `json:"minJ"`
	MaxI        int     `json:"maxI"`
	MaxJ        int     `json:"maxJ"`
}

// CellView это DTO ячейки сетки.
type CellView struct {
	I int `json:"i"`
	J int `json:"j"`
}

// CoinView это DTO монеты. Label - человекочитаемая форма "i:j#serial".
type CoinView struct {
	Cell   CellView `json:"cell"`
	Serial int      `json:"serial"`
	Label  string   `json:"label,omitempty"`
}

// BoundsView границы ячейки в градусах (для маркера на карте).
type BoundsView struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// CacheView это DTO живого кэша.
type CacheView struct {
	Position CellView   `json:"position"`
	Bounds   BoundsView `json:"bounds"`
	Coins    []CoinView `json:"coins"`
}

// PlayerView это DTO игрока.
type PlayerView struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Cell      CellView   `json:"cell"`
	Inventory []CoinView `json:"inventory"`
}

// EventView один рендер-хук.
type EventView struct {
	Type     string   `json:"type"` // SPAWN, UNSPAWN, UPDATE
	Position CellView `json:"position"`
	Coins    int      `json:"coins"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, TRADE, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор сессии. Обязателен только для первого сообщения (handshake);
	// дальше сервер проставляет его сам.
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload шаг по сетке (MOVE): di - на север/юг, dj - на восток/запад.
type DirectionPayload struct {
	Di int `json:"di"` // -1, 0, 1
	Dj int `json:"dj"` // -1, 0, 1
}

// PositionPayload новая геопозиция игрока (POSITION).
type PositionPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoinPayload используется для COLLECT и DEPOSIT:
// какая монета и кэш в какой ячейке.
type CoinPayload struct {
	Coin  CoinView `json:"coin"`
	Cache CellView `json:"cache"`
}
