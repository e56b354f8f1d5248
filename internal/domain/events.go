package domain

import "strings"

// EventType - Внутренний числовой идентификатор события рендер-хука
type EventType uint8

const (
	EventUnknown EventType = iota
	EventSpawn             // Кэш появился в окрестности
	EventUnspawn           // Кэш выгружен в мементо
	EventUpdate            // Состав монет кэша изменился (collect/deposit)
)

var eventStringToType = map[string]EventType{
	"SPAWN":   EventSpawn,
	"UNSPAWN": EventUnspawn,
	"UPDATE":  EventUpdate,
}

var eventTypeToString = map[EventType]string{
	EventSpawn:   "SPAWN",
	EventUnspawn: "UNSPAWN",
	EventUpdate:  "UPDATE",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToType[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// CacheEvent - уведомление слою отображения: что случилось и с каким кэшем.
// Coins - копия, слушатель может хранить её сколько угодно.
type CacheEvent struct {
	Type     EventType
	Position *Cell
	Coins    []Coin
}

// PlayerEvent - игрок сменил позицию или состав инвентаря.
type PlayerEvent struct {
	Position      LatLng
	Cell          *Cell
	InventorySize int
}

// Listener - подписчик рендер-хуков. Ядро никогда не рисует само.
type Listener interface {
	OnCacheEvent(ev CacheEvent)
	OnPlayerEvent(ev PlayerEvent)
}

// NopListener игнорирует все события
type NopListener struct{}

func (NopListener) OnCacheEvent(CacheEvent)   {}
func (NopListener) OnPlayerEvent(PlayerEvent) {}
