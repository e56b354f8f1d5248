// Package savegame описывает схему сохранения игры и строго её проверяет.
//
// Транспорт (файл, SQLite) видит только непрозрачный []byte; всё знание
// о структуре записи живёт здесь.
package savegame

import (
	"encoding/json"
	"errors"
	"fmt"
	"geocache-server/internal/domain"
	"geocache-server/internal/memento"
	"math"
)

// Version - версия схемы сохранения
const Version = 1

var ErrInvalidSave = errors.New("invalid save record")

// CacheState - монеты одного кэша в сохранении.
type CacheState struct {
	Coins []memento.CoinRecord `json:"coins"`
}

// State - полная запись сохранения.
type State struct {
	Version        int                   `json:"version"`
	TileDegrees    float64               `json:"tileDegrees"`
	PlayerPosition domain.LatLng         `json:"playerPosition"`
	CollectedCoins []memento.CoinRecord  `json:"collectedCoins"`
	CacheStates    map[string]CacheState `json:"cacheStates"`
}

// wireState - форма для декодирования с обязательными полями.
type wireState struct {
	Version        *int                  `json:"version"`
	TileDegrees    *float64              `json:"tileDegrees"`
	PlayerPosition *wireLatLng           `json:"playerPosition"`
	CollectedCoins *[]memento.CoinRecord `json:"collectedCoins"`
	CacheStates    *map[string]wireCache `json:"cacheStates"`
}

type wireLatLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type wireCache struct {
	Coins *[]memento.CoinRecord `json:"coins"`
}

// Encode сериализует состояние. Перед записью оно проверяется тем же Validate,
// что и при чтении, - на диск не попадёт то, что потом не загрузится.
func Encode(s *State) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// Decode разбирает и проверяет запись. Любое несоответствие формы - ErrInvalidSave.
func Decode(data []byte) (*State, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty record", ErrInvalidSave)
	}

	var wire wireState
	if err := memento.DecodeStrict(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}

	// 1. Обязательные поля верхнего уровня
	if wire.Version == nil || wire.TileDegrees == nil || wire.PlayerPosition == nil || wire.CollectedCoins == nil || wire.CacheStates == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidSave)
	}
	if wire.PlayerPosition.Lat == nil || wire.PlayerPosition.Lng == nil {
		return nil, fmt.Errorf("%w: playerPosition requires lat and lng", ErrInvalidSave)
	}

	s := &State{
		Version:        *wire.Version,
		TileDegrees:    *wire.TileDegrees,
		PlayerPosition: domain.LatLng{Lat: *wire.PlayerPosition.Lat, Lng: *wire.PlayerPosition.Lng},
		CollectedCoins: *wire.CollectedCoins,
		CacheStates:    make(map[string]CacheState, len(*wire.CacheStates)),
	}
	for key, wc := range *wire.CacheStates {
		if wc.Coins == nil {
			return nil, fmt.Errorf("%w: cache %s has no coins field", ErrInvalidSave, key)
		}
		s.CacheStates[key] = CacheState{Coins: *wc.Coins}
	}

	// 2. Семантика
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate проверяет смысл записи:
//   - версия схемы совпадает;
//   - шаг сетки конечен и положителен;
//   - позиция игрока конечна и в диапазоне;
//   - ключи кэшей разбираются как "i,j", индексы в пределах int32;
//   - серийные номера неотрицательны;
//   - ни одна монета не встречается дважды во всей записи (инвентарь + все кэши);
//   - ячейка чеканки каждой монеты есть в cacheStates.
//
// Последнее правило держит чеканку однократной: без записи о ячейке
// она при спавне отчеканится заново, и монета раздвоится.
func (s *State) Validate() error {
	if s.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSave, s.Version)
	}
	if math.IsNaN(s.TileDegrees) || math.IsInf(s.TileDegrees, 0) || s.TileDegrees <= 0 {
		return fmt.Errorf("%w: tileDegrees %v", ErrInvalidSave, s.TileDegrees)
	}
	if err := s.PlayerPosition.Validate(); err != nil {
		return fmt.Errorf("%w: playerPosition: %v", ErrInvalidSave, err)
	}

	seen := make(map[domain.CoinKey]string)
	check := func(owner string, recs []memento.CoinRecord) error {
		for _, r := range recs {
			if r.Serial < 0 {
				return fmt.Errorf("%w: %s: negative serial", ErrInvalidSave, owner)
			}
			if err := domain.CheckCellIndex(r.Cell.I, r.Cell.J); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidSave, owner, err)
			}
			mint := domain.CellKey(r.Cell.I, r.Cell.J)
			if _, ok := s.CacheStates[mint]; !ok {
				return fmt.Errorf("%w: %s: coin %s#%d has no record of its mint cell",
					ErrInvalidSave, owner, mint, r.Serial)
			}
			k := domain.CoinKey{I: r.Cell.I, J: r.Cell.J, Serial: r.Serial}
			if prev, dup := seen[k]; dup {
				return fmt.Errorf("%w: coin %d:%d#%d held by both %s and %s",
					ErrInvalidSave, k.I, k.J, k.Serial, prev, owner)
			}
			seen[k] = owner
		}
		return nil
	}

	if err := check("inventory", s.CollectedCoins); err != nil {
		return err
	}
	for key, cs := range s.CacheStates {
		i, j, err := domain.ParseCellKey(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSave, err)
		}
		// Ключ должен быть каноническим, иначе "01,2" и "1,2" станут двумя кэшами одной ячейки
		if domain.CellKey(i, j) != key {
			return fmt.Errorf("%w: non-canonical cache key %q", ErrInvalidSave, key)
		}
		if err := domain.CheckCellIndex(i, j); err != nil {
			return fmt.Errorf("%w: cache key: %v", ErrInvalidSave, err)
		}
		if err := check("cache "+key, cs.Coins); err != nil {
			return err
		}
	}
	return nil
}

// CoinCount - сколько монет всего в записи (инвентарь + кэши).
func (s *State) CoinCount() int {
	n := len(s.CollectedCoins)
	for _, cs := range s.CacheStates {
		n += len(cs.Coins)
	}
	return n
}
