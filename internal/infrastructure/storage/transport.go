// Package storage хранит непрозрачные записи сохранения в именованных слотах.
// О формате записи транспорт ничего не знает: это забота internal/savegame.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSlotNotFound - в слоте ещё ничего не сохраняли
var ErrSlotNotFound = errors.New("save slot not found")

// ErrCorrupt - запись есть, но заголовок или контрольная сумма не сходятся
var ErrCorrupt = errors.New("corrupt save slot")

// Transport - хранилище слотов сохранения
type Transport interface {
	Save(ctx context.Context, slot string, payload []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	Close() error
}

// Lister умеет перечислить свои слоты (обе реализации)
type Lister interface {
	Slots(ctx context.Context) ([]string, error)
}

// Виды хранилищ для Open
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Open выбирает реализацию по имени.
// Для file path - каталог со слотами, для sqlite - путь к файлу базы.
func Open(kind, path string) (Transport, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindFile, "":
		return NewFileStore(path)
	case KindSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// validSlot - имя слота должно быть безопасным именем файла
func validSlot(slot string) error {
	if slot == "" {
		return errors.New("slot name is required")
	}
	if len(slot) > 64 {
		return fmt.Errorf("slot name too long: %d", len(slot))
	}
	for _, r := range slot {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("invalid slot name %q", slot)
		}
	}
	return nil
}
