package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"geocache-server/internal/infrastructure/storage"
	"geocache-server/internal/savegame"
	"io"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		printHelp(os.Stdout)
		return
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run выполняет одну команду; вынесено из main для тестов
func run(ctx context.Context, command string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(out)
	kind := fs.String("store", storage.KindFile, "file или sqlite")
	path := fs.String("path", "./saves", "каталог слотов (file) или файл базы (sqlite)")
	slot := fs.String("slot", "gameState", "имя слота")

	switch command {
	case "slots", "dump", "verify", "header":
	default:
		printHelp(out)
		return fmt.Errorf("unknown command %q", command)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.Open(*kind, *path)
	if err != nil {
		return err
	}
	defer store.Close()

	switch command {
	case "slots":
		lister, ok := store.(storage.Lister)
		if !ok {
			return errors.New("store cannot list slots")
		}
		slots, err := lister.Slots(ctx)
		if err != nil {
			return err
		}
		for _, s := range slots {
			fmt.Fprintln(out, s)
		}

	case "dump":
		state, err := load(ctx, store, *slot)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state)

	case "verify":
		state, err := load(ctx, store, *slot)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "OK: slot %s, player (%.6f, %.6f), %d caches, %d coins (%d in inventory)\n",
			*slot, state.PlayerPosition.Lat, state.PlayerPosition.Lng,
			len(state.CacheStates), state.CoinCount(), len(state.CollectedCoins))

	case "header":
		fileStore, ok := store.(*storage.FileStore)
		if !ok {
			return errors.New("header is only available for the file store")
		}
		h, err := fileStore.Stat(*slot)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "magic=%s version=%d saved=%s payload=%d crc32=%08x\n",
			string(h.Magic[:]), h.Version, time.Unix(h.Timestamp, 0).UTC().Format(time.RFC3339), h.PayloadLen, h.Checksum)
	}
	return nil
}

func load(ctx context.Context, store storage.Transport, slot string) (*savegame.State, error) {
	data, err := store.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	return savegame.Decode(data)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Save Tool - просмотр и проверка сохранений
Commands:
  slots   - список слотов
  dump    - запись слота в виде JSON
  verify  - проверить запись слота (форма, диапазоны, дубликаты монет)
  header  - заголовок файла слота (только -store file)
Flags:
  -store file|sqlite  -path <каталог или файл базы>  -slot <имя>`)
}
