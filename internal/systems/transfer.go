package systems

import (
	"fmt"
	"geocache-server/internal/domain"
)

// --- COLLECT ---

// TryCollect перекладывает монету из кэша в инвентарь.
// Либо переход выполнен целиком, либо ничего не изменилось.
func TryCollect(inv *domain.Inventory, cache *domain.Cache, coin domain.Coin) error {
	if cache == nil {
		return domain.ErrCacheNotFound
	}
	if inv.Has(coin) {
		return fmt.Errorf("%w: %s already in inventory", domain.ErrDuplicateCoin, coin)
	}
	if !cache.RemoveCoin(coin) {
		return fmt.Errorf("%w: %s in cache %s", domain.ErrCoinNotFound, coin, cache.PositionKey())
	}
	inv.Add(coin)
	return nil
}

// --- DEPOSIT ---

// TryDeposit перекладывает монету из инвентаря в кэш.
func TryDeposit(inv *domain.Inventory, cache *domain.Cache, coin domain.Coin) error {
	if cache == nil {
		return domain.ErrCacheNotFound
	}
	if cache.HasCoin(coin) {
		return fmt.Errorf("%w: %s already in cache %s", domain.ErrDuplicateCoin, coin, cache.PositionKey())
	}
	if !inv.Remove(coin) {
		return fmt.Errorf("%w: %s in inventory", domain.ErrCoinNotFound, coin)
	}
	cache.AddCoin(coin)
	return nil
}
