// Package memento сериализует состояние кэша в переносимую строку и обратно.
//
// Формат - версионированная JSON-запись:
//
//	{"v":1,"position":{"i":0,"j":0},"coins":[{"cell":{"i":0,"j":0},"serial":0}]}
//
// Порядок монет сохраняется. Внешние потребители на стабильность формата
// между версиями не рассчитывают; внутри одной игры он обязан быть самосогласованным.
package memento

import (
	"encoding/json"
	"errors"
	"geocache-server/internal/domain"
)

// FormatVersion - текущая версия записи. Снимки другой версии отвергаются.
const FormatVersion = 1

type record struct {
	Version  int          `json:"v"`
	Position CellRecord   `json:"position"`
	Coins    []CoinRecord `json:"coins"`
}

// wireRecord - то же самое, но с указателями, чтобы отличать "поле отсутствует" от нуля.
type wireRecord struct {
	Version  *int          `json:"v"`
	Position *CellRecord   `json:"position"`
	Coins    *[]CoinRecord `json:"coins"`
}

// ToMemento снимает полный снимок кэша.
func ToMemento(c *domain.Cache) string {
	rec := record{
		Version:  FormatVersion,
		Position: CellRecord{I: c.Position.I, J: c.Position.J},
		Coins:    CoinsToRecords(c.Coins),
	}
	// Ошибка невозможна: в записи только числа и срезы
	data, _ := json.Marshal(rec)
	return string(data)
}

// FromMemento - точная инверсия ToMemento.
// Восстанавливает кэш в ячейке position; все ячейки монет канонизируются через grid.
// Любая ошибка - *domain.MementoFormatError; живые объекты не трогаются.
func FromMemento(snapshot string, position *domain.Cell, grid Interner) (*domain.Cache, error) {
	key := position.Key()

	var wire wireRecord
	if err := decodeStrict([]byte(snapshot), &wire); err != nil {
		return nil, &domain.MementoFormatError{Key: key, Reason: "unparseable", Err: err}
	}

	// 1. Проверяем форму
	if wire.Version == nil || wire.Position == nil || wire.Coins == nil {
		return nil, &domain.MementoFormatError{Key: key, Reason: "missing required field"}
	}
	if *wire.Version != FormatVersion {
		return nil, &domain.MementoFormatError{Key: key, Reason: "unsupported version",
			Err: errors.New("expected v1")}
	}

	// 2. Снимок обязан принадлежать той ячейке, для которой его разбирают
	if wire.Position.I != position.I || wire.Position.J != position.J {
		return nil, &domain.MementoFormatError{Key: key, Reason: "position mismatch"}
	}

	// 3. Монеты
	coins, err := RecordsToCoins(*wire.Coins, grid)
	if err != nil {
		return nil, &domain.MementoFormatError{Key: key, Reason: "bad coins", Err: err}
	}

	cache := domain.NewCache(grid.GetCell(position.I, position.J))
	cache.Coins = coins
	return cache, nil
}
