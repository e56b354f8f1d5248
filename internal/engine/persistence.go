package engine

import (
	"context"
	"errors"
	"fmt"
	"geocache-server/internal/infrastructure/storage"
	"geocache-server/internal/savegame"
	"geocache-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SaveGame снимает мир и пишет его в слот
func SaveGame(ctx context.Context, w *World, store storage.Transport, slot string) error {
	state := w.Snapshot()
	data, err := savegame.Encode(state)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	if err := store.Save(ctx, slot, data); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"slot":   slot,
		"caches": len(state.CacheStates),
		"coins":  state.CoinCount(),
		"bytes":  len(data),
	}).Info("Game saved")
	return nil
}

// LoadGame восстанавливает мир из слота.
// Ошибок наружу не отдаёт: при отсутствующей или битой записи мир сбрасывается
// в начальное состояние, а результат false.
func LoadGame(ctx context.Context, w *World, store storage.Transport, slot string) bool {
	entry := logger.Log.WithField("slot", slot)

	data, err := store.Load(ctx, slot)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			entry.Info("No saved game, starting fresh")
		} else {
			entry.WithError(err).Warn("Save slot unreadable, starting fresh")
		}
		w.Reset()
		return false
	}

	state, err := savegame.Decode(data)
	if err != nil {
		entry.WithError(err).Warn("Save record rejected, starting fresh")
		w.Reset()
		return false
	}

	if err := w.Restore(state); err != nil {
		entry.WithError(err).Warn("Restore failed, starting fresh")
		w.Reset()
		return false
	}

	entry.WithField("coins", state.CoinCount()).Info("Game loaded")
	return true
}
