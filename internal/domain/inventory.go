package domain

import "slices"

// Inventory - монеты на руках у игрока. Дубликаты идентичности запрещены.
type Inventory struct {
	coins []Coin
}

func NewInventory() *Inventory {
	return &Inventory{coins: make([]Coin, 0)}
}

// Add кладёт монету в инвентарь. Возвращает false, если такая монета уже есть.
func (inv *Inventory) Add(coin Coin) bool {
	if indexOfCoin(inv.coins, coin) >= 0 {
		return false
	}
	inv.coins = append(inv.coins, coin)
	return true
}

// Remove забирает первую монету с той же идентичностью.
func (inv *Inventory) Remove(coin Coin) bool {
	idx := indexOfCoin(inv.coins, coin)
	if idx < 0 {
		return false
	}
	inv.coins = slices.Delete(inv.coins, idx, idx+1)
	return true
}

func (inv *Inventory) Has(coin Coin) bool {
	return indexOfCoin(inv.coins, coin) >= 0
}

func (inv *Inventory) Len() int {
	return len(inv.coins)
}

// Coins возвращает копию содержимого в порядке поступления.
func (inv *Inventory) Coins() []Coin {
	return slices.Clone(inv.coins)
}

func (inv *Inventory) Clear() {
	inv.coins = inv.coins[:0]
}
