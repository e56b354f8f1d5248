package domain

import (
	"maps"
	"slices"
)

// MementoStore хранит последний известный снимок каждого кэша по ключу "i,j".
// Если ключ есть и здесь, и в реестре, авторитетно живое состояние реестра.
type MementoStore struct {
	snapshots map[string]string
}

func NewMementoStore() *MementoStore {
	return &MementoStore{snapshots: make(map[string]string)}
}

func (s *MementoStore) Put(key, snapshot string) {
	s.snapshots[key] = snapshot
}

func (s *MementoStore) Get(key string) (string, bool) {
	v, ok := s.snapshots[key]
	return v, ok
}

func (s *MementoStore) Delete(key string) {
	delete(s.snapshots, key)
}

// Keys возвращает отсортированные ключи
func (s *MementoStore) Keys() []string {
	return slices.Sorted(maps.Keys(s.snapshots))
}

func (s *MementoStore) Len() int {
	return len(s.snapshots)
}

func (s *MementoStore) Clear() {
	clear(s.snapshots)
}
