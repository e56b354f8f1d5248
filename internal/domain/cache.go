package domain

import "slices"

// Cache - тайник в ячейке сетки.
// Position - первичный ключ: на одну ячейку приходится ровно один кэш.
type Cache struct {
	Position *Cell `json:"position"`
	Coins    []Coin `json:"coins"`
}

func NewCache(position *Cell) *Cache {
	return &Cache{
		Position: position,
		Coins:    make([]Coin, 0),
	}
}

// AddCoin добавляет монету в конец списка.
// Проверка на дубликаты - забота вызывающего (монеты только перемещаются, не копируются).
func (c *Cache) AddCoin(coin Coin) {
	c.Coins = append(c.Coins, coin)
}

// RemoveCoin удаляет первую монету с той же идентичностью.
// Удаляет не больше одной монеты за вызов; порядок остальных сохраняется.
func (c *Cache) RemoveCoin(coin Coin) bool {
	idx := indexOfCoin(c.Coins, coin)
	if idx < 0 {
		return false
	}
	c.Coins = slices.Delete(c.Coins, idx, idx+1)
	return true
}

// HasCoin проверяет наличие монеты в кэше
func (c *Cache) HasCoin(coin Coin) bool {
	return indexOfCoin(c.Coins, coin) >= 0
}

func (c *Cache) CoinCount() int {
	return len(c.Coins)
}

// PositionKey возвращает "i,j" ячейки кэша.
func (c *Cache) PositionKey() string {
	return c.Position.Key()
}

// CoinsSnapshot возвращает копию списка монет (для рендер-хуков и DTO).
func (c *Cache) CoinsSnapshot() []Coin {
	return slices.Clone(c.Coins)
}
