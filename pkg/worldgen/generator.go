// Package worldgen решает, где лежат кэши и сколько в них монет.
// Всё выводится из luck по ключу ячейки, поэтому мир один и тот же при каждом запуске.
package worldgen

import (
	"geocache-server/internal/domain"
	"geocache-server/pkg/luck"
)

// Area - прямоугольник ячеек, границы включительно
type Area struct {
	MinI, MinJ, MaxI, MaxJ int
}

// Around строит квадрат Чебышёва радиуса radius вокруг center
func Around(center *domain.Cell, radius int) Area {
	return Area{
		MinI: center.I - radius,
		MinJ: center.J - radius,
		MaxI: center.I + radius,
		MaxJ: center.J + radius,
	}
}

func (a Area) Contains(i, j int) bool {
	return i >= a.MinI && i <= a.MaxI && j >= a.MinJ && j <= a.MaxJ
}

// Size - количество ячеек в области
func (a Area) Size() int {
	if a.MaxI < a.MinI || a.MaxJ < a.MinJ {
		return 0
	}
	return (a.MaxI - a.MinI + 1) * (a.MaxJ - a.MinJ + 1)
}

// Each обходит ячейки построчно: сначала i, затем j
func (a Area) Each(fn func(i, j int)) {
	for i := a.MinI; i <= a.MaxI; i++ {
		for j := a.MinJ; j <= a.MaxJ; j++ {
			fn(i, j)
		}
	}
}

// ShouldSpawn - есть ли в ячейке кэш
func ShouldSpawn(cell *domain.Cell, probability float64) bool {
	return luck.Below(cell.Key(), probability)
}

// InitialCoinCount - сколько монет чеканится в новом кэше: 1..maxCoins
func InitialCoinCount(cell *domain.Cell, maxCoins int) int {
	return 1 + luck.Intn(cell.Key()+domain.InitialCoinsKeySuffix, maxCoins)
}

// Mint создает кэш с монетами, отчеканенными в этой ячейке.
// Серийные номера идут с нуля подряд.
func Mint(cell *domain.Cell, maxCoins int) *domain.Cache {
	cache := domain.NewCache(cell)
	n := InitialCoinCount(cell, maxCoins)
	for serial := 0; serial < n; serial++ {
		cache.AddCoin(domain.Coin{Cell: cell, Serial: serial})
	}
	return cache
}
