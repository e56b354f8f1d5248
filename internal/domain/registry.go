package domain

import (
	"cmp"
	"slices"
)

// CacheRegistry - единственный источник правды о том, какие кэши сейчас
// материализованы в живом мире (ровно те, что в окрестности игрока).
type CacheRegistry struct {
	caches map[string]*Cache
}

func NewCacheRegistry() *CacheRegistry {
	return &CacheRegistry{caches: make(map[string]*Cache)}
}

// Add регистрирует кэш. Предыдущая запись с тем же ключом перезаписывается.
func (r *CacheRegistry) Add(c *Cache) {
	r.caches[c.PositionKey()] = c
}

// Get ищет кэш по ячейке
func (r *CacheRegistry) Get(position *Cell) *Cache {
	return r.caches[position.Key()]
}

// GetByKey ищет кэш по ключу "i,j"
func (r *CacheRegistry) GetByKey(key string) *Cache {
	return r.caches[key]
}

func (r *CacheRegistry) Has(position *Cell) bool {
	_, ok := r.caches[position.Key()]
	return ok
}

// Remove удаляет кэш из реестра (no-op, если его нет)
func (r *CacheRegistry) Remove(position *Cell) {
	delete(r.caches, position.Key())
}

// List возвращает все кэши, отсортированные по (i, j), чтобы обход был стабильным.
func (r *CacheRegistry) List() []*Cache {
	out := make([]*Cache, 0, len(r.caches))
	for _, c := range r.caches {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Cache) int {
		if n := cmp.Compare(a.Position.I, b.Position.I); n != 0 {
			return n
		}
		return cmp.Compare(a.Position.J, b.Position.J)
	})
	return out
}

func (r *CacheRegistry) Len() int {
	return len(r.caches)
}

func (r *CacheRegistry) Clear() {
	clear(r.caches)
}
