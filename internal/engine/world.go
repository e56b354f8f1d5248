package engine

import (
	"errors"
	"fmt"
	"geocache-server/internal/domain"
	"geocache-server/internal/memento"
	"geocache-server/internal/savegame"
	"geocache-server/internal/systems"
	"geocache-server/pkg/geogrid"
	"geocache-server/pkg/logger"
	"geocache-server/pkg/worldgen"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// World - контроллер мира: позиция игрока, окрестность, живые кэши и их снимки.
// Не потокобезопасен. Все вызовы должен сериализовать владелец (см. GameService).
type World struct {
	cfg  Config
	grid *geogrid.Grid

	registry  *domain.CacheRegistry
	mementos  *domain.MementoStore
	inventory *domain.Inventory

	player domain.LatLng
	area   worldgen.Area

	listener domain.Listener
}

// NewWorld создает мир и сразу наполняет окрестность стартовой точки.
// listener может быть nil.
func NewWorld(cfg Config, listener domain.Listener) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := geogrid.New(cfg.TileDegrees)
	if err != nil {
		return nil, err
	}
	if listener == nil {
		listener = domain.NopListener{}
	}

	w := &World{
		cfg:       cfg,
		grid:      grid,
		registry:  domain.NewCacheRegistry(),
		mementos:  domain.NewMementoStore(),
		inventory: domain.NewInventory(),
		player:    cfg.Start(),
		listener:  listener,
	}
	w.recompute()
	w.notifyPlayer()
	return w, nil
}

// SetListener подменяет подписчика рендер-хуков
func (w *World) SetListener(l domain.Listener) {
	if l == nil {
		l = domain.NopListener{}
	}
	w.listener = l
}

func (w *World) Config() Config           { return w.cfg }
func (w *World) Grid() *geogrid.Grid      { return w.grid }
func (w *World) Player() domain.LatLng    { return w.player }
func (w *World) PlayerCell() *domain.Cell { return w.grid.GetCellFromLatLng(w.player) }

// Inventory возвращает копию инвентаря
func (w *World) Inventory() []domain.Coin { return w.inventory.Coins() }

// Caches - живые кэши в порядке (i, j)
func (w *World) Caches() []*domain.Cache { return w.registry.List() }

// Cache ищет живой кэш в ячейке (nil, если его нет)
func (w *World) Cache(position *domain.Cell) *domain.Cache {
	if position == nil {
		return nil
	}
	return w.registry.Get(position)
}

// Mementos возвращает копию хранилища снимков: ключ -> снимок
func (w *World) Mementos() map[string]string {
	out := make(map[string]string, w.mementos.Len())
	for _, key := range w.mementos.Keys() {
		out[key], _ = w.mementos.Get(key)
	}
	return out
}

// Area - текущая окрестность игрока
func (w *World) Area() worldgen.Area { return w.area }

// --- MOVEMENT ---

// MoveTo переносит игрока в точку и пересчитывает окрестность.
func (w *World) MoveTo(p domain.LatLng) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	w.player = p
	w.recompute()
	w.notifyPlayer()
	return nil
}

// Step сдвигает игрока на целое число тайлов
func (w *World) Step(di, dj int) error {
	tile := w.grid.TileDegrees()
	return w.MoveTo(w.player.Shift(float64(di)*tile, float64(dj)*tile))
}

// TeleportTo переносит игрока в центр ячейки (i, j)
func (w *World) TeleportTo(i, j int) error {
	if err := domain.CheckCellIndex(i, j); err != nil {
		return fmt.Errorf("teleport: %w", err)
	}
	return w.MoveTo(w.grid.Center(w.grid.GetCell(i, j)))
}

// recompute приводит реестр в соответствие с окрестностью игрока.
// Порядок важен:
//  1. выгрузка кэшей, вышедших из окрестности (в снимки);
//  2. материализация кэшей новой окрестности.
func (w *World) recompute() {
	center := w.PlayerCell()
	w.area = worldgen.Around(center, w.cfg.NeighborhoodSize)

	inArea := mapset.New[string]()
	w.area.Each(func(i, j int) {
		inArea.Put(domain.CellKey(i, j))
	})

	// 1. Unspawn
	for _, cache := range w.registry.List() {
		if inArea.Has(cache.PositionKey()) {
			continue
		}
		w.evict(cache)
	}

	// 2. Spawn
	spawned := 0
	w.area.Each(func(i, j int) {
		cell := w.grid.GetCell(i, j)
		if w.registry.Has(cell) || !worldgen.ShouldSpawn(cell, w.cfg.SpawnProbability) {
			return
		}
		cache := w.materialize(cell)
		w.registry.Add(cache)
		w.emitCache(domain.EventSpawn, cache)
		spawned++
	})

	logger.Log.WithFields(logrus.Fields{
		"cell":    center.Key(),
		"live":    w.registry.Len(),
		"spawned": spawned,
	}).Debug("Neighborhood recomputed")
}

// evict снимает кэш в мементо и убирает его из живого мира
func (w *World) evict(cache *domain.Cache) {
	w.mementos.Put(cache.PositionKey(), memento.ToMemento(cache))
	w.registry.Remove(cache.Position)
	w.emitCache(domain.EventUnspawn, cache)
}

// materialize восстанавливает кэш из снимка или чеканит новый
func (w *World) materialize(cell *domain.Cell) *domain.Cache {
	snapshot, ok := w.mementos.Get(cell.Key())
	if !ok {
		return worldgen.Mint(cell, w.cfg.MaxInitialCoins)
	}

	cache, err := memento.FromMemento(snapshot, cell, w.grid)
	if err != nil {
		// Чеканить заново нельзя: монеты могли уже разойтись по инвентарю и другим кэшам
		logger.Log.WithError(err).WithField("cell", cell.Key()).Error("Corrupt memento, cache left empty")
		return domain.NewCache(cell)
	}
	return cache
}

// --- TRANSACTIONS ---

// Collect забирает монету из кэша в ячейке position.
// false - кэша или монеты нет (двойной клик и т.п.), состояние не менялось.
func (w *World) Collect(coin domain.Coin, position *domain.Cell) bool {
	return w.transfer(coin, position, "collect", systems.TryCollect)
}

// Deposit кладет монету из инвентаря в кэш в ячейке position.
func (w *World) Deposit(coin domain.Coin, position *domain.Cell) bool {
	return w.transfer(coin, position, "deposit", systems.TryDeposit)
}

type transferFunc func(inv *domain.Inventory, cache *domain.Cache, coin domain.Coin) error

func (w *World) transfer(coin domain.Coin, position *domain.Cell, op string, fn transferFunc) bool {
	if coin.Cell == nil || position == nil {
		return false
	}
	coin.Cell = w.grid.Canonical(*coin.Cell)

	cache := w.registry.Get(position)
	if err := fn(w.inventory, cache, coin); err != nil {
		entry := logger.Log.WithFields(logrus.Fields{"op": op, "coin": coin.String(), "cell": position.Key()})
		if errors.Is(err, domain.ErrCoinNotFound) || errors.Is(err, domain.ErrCacheNotFound) {
			entry.Debug("Transfer ignored")
		} else {
			entry.WithError(err).Warn("Transfer rejected")
		}
		return false
	}

	// Снимок обновляется сразу, чтобы мементо не отставало от живого кэша
	w.mementos.Put(cache.PositionKey(), memento.ToMemento(cache))
	w.emitCache(domain.EventUpdate, cache)
	w.notifyPlayer()

	logger.Log.WithFields(logrus.Fields{
		"op":        op,
		"coin":      coin.String(),
		"cell":      cache.PositionKey(),
		"inventory": w.inventory.Len(),
	}).Info("Coin transferred")
	return true
}

// --- RESET ---

// Reset возвращает мир в начальное состояние: игрок на старте, инвентарь и снимки пусты.
func (w *World) Reset() {
	w.clearLive()
	w.mementos.Clear()
	w.inventory.Clear()
	w.player = w.cfg.Start()

	w.recompute()
	w.notifyPlayer()
	logger.Log.Info("World reset")
}

// clearLive убирает все живые кэши без снятия снимков
func (w *World) clearLive() {
	for _, cache := range w.registry.List() {
		w.emitCache(domain.EventUnspawn, cache)
	}
	w.registry.Clear()
}

// --- PERSISTENCE ---

// Snapshot собирает запись сохранения за один проход.
// В cacheStates попадают и живые кэши, и все снимки; для живых авторитетен реестр.
func (w *World) Snapshot() *savegame.State {
	s := &savegame.State{
		Version:        savegame.Version,
		TileDegrees:    w.grid.TileDegrees(),
		PlayerPosition: w.player,
		CollectedCoins: memento.CoinsToRecords(w.inventory.Coins()),
		CacheStates:    make(map[string]savegame.CacheState, w.mementos.Len()+w.registry.Len()),
	}

	for _, key := range w.mementos.Keys() {
		if w.registry.GetByKey(key) != nil {
			continue
		}
		snapshot, _ := w.mementos.Get(key)
		i, j, err := domain.ParseCellKey(key)
		if err != nil {
			logger.Log.WithError(err).Error("Skipping memento with bad key")
			continue
		}
		cache, err := memento.FromMemento(snapshot, w.grid.GetCell(i, j), w.grid)
		if err != nil {
			logger.Log.WithError(err).Error("Skipping corrupt memento")
			continue
		}
		s.CacheStates[key] = savegame.CacheState{Coins: memento.CoinsToRecords(cache.Coins)}
	}

	for _, cache := range w.registry.List() {
		s.CacheStates[cache.PositionKey()] = savegame.CacheState{Coins: memento.CoinsToRecords(cache.Coins)}
	}
	return s
}

// Restore полностью заменяет состояние мира записью.
// При ошибке мир остается в прежнем состоянии.
func (w *World) Restore(s *savegame.State) error {
	if s == nil {
		return fmt.Errorf("%w: nil state", savegame.ErrInvalidSave)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	// Под другим шагом сетки те же индексы - другие места на карте
	if s.TileDegrees != w.grid.TileDegrees() {
		return fmt.Errorf("%w: saved with tile %v, world uses %v",
			savegame.ErrInvalidSave, s.TileDegrees, w.grid.TileDegrees())
	}

	// 1. Собираем новое состояние в стороне
	inventory := domain.NewInventory()
	coins, err := memento.RecordsToCoins(s.CollectedCoins, w.grid)
	if err != nil {
		return fmt.Errorf("%w: inventory: %v", savegame.ErrInvalidSave, err)
	}
	for _, c := range coins {
		inventory.Add(c)
	}

	mementos := domain.NewMementoStore()
	for key, cs := range s.CacheStates {
		i, j, err := domain.ParseCellKey(key)
		if err != nil {
			return fmt.Errorf("%w: %v", savegame.ErrInvalidSave, err)
		}
		cache := domain.NewCache(w.grid.GetCell(i, j))
		if cache.Coins, err = memento.RecordsToCoins(cs.Coins, w.grid); err != nil {
			return fmt.Errorf("%w: cache %s: %v", savegame.ErrInvalidSave, key, err)
		}
		mementos.Put(key, memento.ToMemento(cache))
	}

	// 2. Подменяем целиком
	w.clearLive()
	w.inventory = inventory
	w.mementos = mementos
	w.player = s.PlayerPosition

	w.recompute()
	w.notifyPlayer()

	logger.Log.WithFields(logrus.Fields{
		"caches":    mementos.Len(),
		"inventory": inventory.Len(),
	}).Info("World restored")
	return nil
}

// --- HOOKS ---

func (w *World) emitCache(t domain.EventType, cache *domain.Cache) {
	w.listener.OnCacheEvent(domain.CacheEvent{
		Type:     t,
		Position: cache.Position,
		Coins:    cache.CoinsSnapshot(),
	})
}

func (w *World) notifyPlayer() {
	w.listener.OnPlayerEvent(domain.PlayerEvent{
		Position:      w.player,
		Cell:          w.PlayerCell(),
		InventorySize: w.inventory.Len(),
	})
}
