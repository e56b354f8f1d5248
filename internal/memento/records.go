package memento

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"geocache-server/internal/domain"
)

// CellRecord - переносимое представление ячейки {"i":..,"j":..}.
type CellRecord struct {
	I int `json:"i"`
	J int `json:"j"`
}

// CoinRecord - переносимое представление монеты {"cell":{...},"serial":..}.
// Тот же формат используется в файле сохранения.
type CoinRecord struct {
	Cell   CellRecord `json:"cell"`
	Serial int        `json:"serial"`
}

// Interner выдаёт канонические ячейки. geogrid.Grid реализует его неявно.
type Interner interface {
	GetCell(i, j int) *domain.Cell
}

// UnmarshalJSON требует оба поля и не пропускает лишние:
// структура, которой мы не ждём, - это повреждённые данные, а не "нули по умолчанию".
func (r *CellRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		I *int `json:"i"`
		J *int `json:"j"`
	}
	if err := decodeStrict(data, &wire); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	if wire.I == nil || wire.J == nil {
		return errors.New("cell: both i and j are required")
	}
	r.I, r.J = *wire.I, *wire.J
	return nil
}

func (r *CoinRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		Cell   *CellRecord `json:"cell"`
		Serial *int        `json:"serial"`
	}
	if err := decodeStrict(data, &wire); err != nil {
		return fmt.Errorf("coin: %w", err)
	}
	if wire.Cell == nil || wire.Serial == nil {
		return errors.New("coin: both cell and serial are required")
	}
	if *wire.Serial < 0 {
		return fmt.Errorf("coin: negative serial %d", *wire.Serial)
	}
	r.Cell, r.Serial = *wire.Cell, *wire.Serial
	return nil
}

// CoinsToRecords переводит монеты в записи, сохраняя порядок.
func CoinsToRecords(coins []domain.Coin) []CoinRecord {
	out := make([]CoinRecord, 0, len(coins))
	for _, c := range coins {
		out = append(out, CoinRecord{
			Cell:   CellRecord{I: c.Cell.I, J: c.Cell.J},
			Serial: c.Serial,
		})
	}
	return out
}

// RecordsToCoins восстанавливает монеты с каноническими ячейками.
// Дубликаты идентичности внутри списка - ошибка.
func RecordsToCoins(recs []CoinRecord, grid Interner) ([]domain.Coin, error) {
	out := make([]domain.Coin, 0, len(recs))
	seen := make(map[domain.CoinKey]struct{}, len(recs))
	for _, r := range recs {
		if r.Serial < 0 {
			return nil, fmt.Errorf("negative serial %d", r.Serial)
		}
		if err := domain.CheckCellIndex(r.Cell.I, r.Cell.J); err != nil {
			return nil, err
		}
		coin := domain.Coin{Cell: grid.GetCell(r.Cell.I, r.Cell.J), Serial: r.Serial}
		k := coin.Key()
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCoin, coin)
		}
		seen[k] = struct{}{}
		out = append(out, coin)
	}
	return out, nil
}

// decodeStrict - json.Unmarshal с запретом неизвестных полей и мусора в хвосте.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// DecodeStrict экспортирует строгий декодер для соседних форматов (сохранения).
func DecodeStrict(data []byte, v any) error {
	return decodeStrict(data, v)
}
