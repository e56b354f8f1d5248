package domain

import "fmt"

// Coin - неизменяемая монета.
// Идентичность монеты - пара (ячейка чеканки, серийный номер), а не адрес в памяти.
type Coin struct {
	Cell   *Cell `json:"cell"`
	Serial int   `json:"serial"`
}

// CoinKey - сравнимый ключ монеты, годится как ключ map.
type CoinKey struct {
	I, J   int
	Serial int
}

// Key возвращает ключ идентичности монеты.
func (c Coin) Key() CoinKey {
	if c.Cell == nil {
		return CoinKey{Serial: c.Serial}
	}
	return CoinKey{I: c.Cell.I, J: c.Cell.J, Serial: c.Serial}
}

// String - формат "i:j#serial".
func (c Coin) String() string {
	if c.Cell == nil {
		return fmt.Sprintf("?:?#%d", c.Serial)
	}
	return fmt.Sprintf("%d:%d#%d", c.Cell.I, c.Cell.J, c.Serial)
}

// SameCoin - единственное правило равенства монет во всей системе
// (поиск в инвентаре, удаление из кэша, проверка мементо).
func SameCoin(a, b Coin) bool {
	return a.Serial == b.Serial && a.Cell.Equal(b.Cell)
}

// indexOfCoin ищет первую монету с той же идентичностью.
func indexOfCoin(coins []Coin, coin Coin) int {
	for i, c := range coins {
		if SameCoin(c, coin) {
			return i
		}
	}
	return -1
}

// HasDuplicates сообщает, встречается ли какая-то монета в списке дважды.
func HasDuplicates(coins []Coin) bool {
	seen := make(map[CoinKey]struct{}, len(coins))
	for _, c := range coins {
		k := c.Key()
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}
