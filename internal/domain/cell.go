package domain

import (
	"fmt"
	"geocache-server/internal/core/types"
	"strconv"
	"strings"
)

// Cell - каноническая дискретная координата сетки.
//
// Ячейки создаются только через geogrid.Grid (интернирование): все ссылки
// на одну и ту же (i, j) указывают на один и тот же *Cell.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Key возвращает ключ ячейки в формате "i,j".
// Это первичный ключ кэша во всей системе (реестр, мементо, сохранения).
func (c *Cell) Key() string {
	return CellKey(c.I, c.J)
}

// CheckCellIndex отклоняет индексы вне int32.
func CheckCellIndex(i, j int) error {
	if !types.InRange(i, j) {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOutOfRange, i, j)
	}
	return nil
}

// Equal сравнивает ячейки по координатам.
func (c *Cell) Equal(other *Cell) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.I == other.I && c.J == other.J
}

func (c *Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.I, c.J)
}

// CellKey форматирует пару индексов в ключ "i,j".
func CellKey(i, j int) string {
	return strconv.Itoa(i) + "," + strconv.Itoa(j)
}

// ParseCellKey разбирает ключ "i,j" обратно в индексы.
func ParseCellKey(key string) (int, int, error) {
	left, right, ok := strings.Cut(key, ",")
	if !ok {
		return 0, 0, fmt.Errorf("cell key %q: missing separator", key)
	}
	i, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("cell key %q: bad i: %w", key, err)
	}
	j, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("cell key %q: bad j: %w", key, err)
	}
	return i, j, nil
}
