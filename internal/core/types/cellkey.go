package types

import (
	"fmt"
	"math"
	"strconv"
)

// CellKey - 64-битный упакованный ключ ячейки сетки.
//
// CellKey является value-type: его дёшево копировать, сравнивать и
// использовать как ключ map в таблице интернирования ячеек.
//
// Формат битов (от старших к младшим):
//
//	[ I (32) | J (32) ]
//
// Где:
//   - I - индекс ячейки по широте, floor(lat / TILE)
//   - J - индекс ячейки по долготе, floor(lng / TILE)
//
// Оба индекса знаковые и хранятся в дополнительном коде. При шаге 1e-4
// градуса весь земной шар укладывается в ±3.6 млн, так что 32 бит хватает с запасом.
type CellKey uint64

const (
	// bitsJ - количество бит под индекс J.
	bitsJ = 32

	// bitsI - количество бит под индекс I.
	bitsI = 32

	shiftI = bitsJ

	maskJ = (1 << bitsJ) - 1
	maskI = (1 << bitsI) - 1
)

// PackCellKey собирает CellKey из индексов ячейки.
//
// Значения вне диапазона int32 усекаются: ключ однозначен только при InRange(i, j).
func PackCellKey(i, j int) CellKey {
	return CellKey(
		(uint64(uint32(int32(i))) << shiftI) |
			uint64(uint32(int32(j))),
	)
}

// InRange сообщает, помещаются ли оба индекса в 32-битные половины ключа.
func InRange(i, j int) bool {
	return i >= math.MinInt32 && i <= math.MaxInt32 &&
		j >= math.MinInt32 && j <= math.MaxInt32
}

// I возвращает индекс ячейки по широте.
func (k CellKey) I() int {
	return int(int32(uint32((k >> shiftI) & maskI)))
}

// J возвращает индекс ячейки по долготе.
func (k CellKey) J() int {
	return int(int32(uint32(k & maskJ)))
}

// String возвращает ключ в каноническом виде "i,j".
//
// Этот же формат используется как ключ реестра кэшей и хранилища мементо.
func (k CellKey) String() string {
	return fmt.Sprintf("%d,%d", k.I(), k.J())
}

// MarshalJSON сериализует CellKey как строку с десятичным uint64,
// чтобы JavaScript-клиенты не теряли точность.
func (k CellKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(k), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (k *CellKey) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*k = CellKey(v)
	return nil
}
