package main

import (
	"bytes"
	"context"
	"errors"
	"geocache-server/internal/domain"
	"geocache-server/internal/infrastructure/storage"
	"geocache-server/internal/memento"
	"geocache-server/internal/savegame"
	"path/filepath"
	"strings"
	"testing"
)

func seedStore(t *testing.T, kind, path string) {
	t.Helper()
	store, err := storage.Open(kind, path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	data, err := savegame.Encode(&savegame.State{
		Version:        savegame.Version,
		TileDegrees:    domain.DefaultTileDegrees,
		PlayerPosition: domain.LatLng{Lat: 1, Lng: 2},
		CollectedCoins: []memento.CoinRecord{{Cell: memento.CellRecord{I: 0, J: 0}, Serial: 0}},
		CacheStates: map[string]savegame.CacheState{
			"0,0": {Coins: []memento.CoinRecord{{Cell: memento.CellRecord{I: 0, J: 0}, Serial: 1}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, "gameState", data); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "broken", []byte("not a save")); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "saves")
	seedStore(t, storage.KindFile, dir)

	tests := []struct {
		name    string
		command string
		args    []string
		want    string
		wantErr bool
	}{
		{"slots", "slots", []string{"-path", dir}, "broken\ngameState\n", false},
		{"verify", "verify", []string{"-path", dir}, "OK: slot gameState, player (1.000000, 2.000000), 1 caches, 2 coins (1 in inventory)", false},
		{"dump", "dump", []string{"-path", dir}, `"playerPosition"`, false},
		{"header", "header", []string{"-path", dir}, "magic=GCSV version=1", false},
		{"verify broken", "verify", []string{"-path", dir, "-slot", "broken"}, "", true},
		{"missing slot", "dump", []string{"-path", dir, "-slot", "nothing"}, "", true},
		{"unknown command", "explode", nil, "Commands:", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(ctx, tt.command, tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "saves.db")
	seedStore(t, storage.KindSQLite, db)

	var out bytes.Buffer
	if err := run(ctx, "verify", []string{"-store", "sqlite", "-path", db}, &out); err != nil {
		t.Fatalf("verify: %v", err)
	}

	err := run(ctx, "verify", []string{"-store", "sqlite", "-path", db, "-slot", "broken"}, &out)
	if !errors.Is(err, savegame.ErrInvalidSave) {
		t.Errorf("verify broken = %v, want ErrInvalidSave", err)
	}

	if err := run(ctx, "header", []string{"-store", "sqlite", "-path", db}, &out); err == nil {
		t.Error("header on sqlite store succeeded")
	}
}
