package engine

import (
	"errors"
	"geocache-server/internal/domain"
	"geocache-server/internal/memento"
	"geocache-server/internal/savegame"
	"geocache-server/pkg/luck"
	"geocache-server/pkg/worldgen"
	"math/rand"
	"testing"
)

func coinsEqual(a, b []domain.Coin) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !domain.SameCoin(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestNewWorld_SpawnsNeighborhood(t *testing.T) {
	w, rec := newTestWorld(t, testConfig())

	// 1. Вероятность 1: кэш в каждой ячейке квадрата 5x5
	if got := len(w.Caches()); got != 25 {
		t.Fatalf("live caches = %d, want 25", got)
	}
	if rec.count(domain.EventSpawn) != 25 {
		t.Errorf("SPAWN events = %d, want 25", rec.count(domain.EventSpawn))
	}
	if len(rec.player) != 1 {
		t.Errorf("player events = %d, want 1", len(rec.player))
	}

	// 2. Все кэши внутри окрестности и с начальным числом монет
	area := w.Area()
	for _, c := range w.Caches() {
		if !area.Contains(c.Position.I, c.Position.J) {
			t.Errorf("cache %s outside area %+v", c.Position, area)
		}
		if c.CoinCount() != worldgen.InitialCoinCount(c.Position, domain.DefaultMaxInitialCoins) {
			t.Errorf("cache %s has %d coins", c.Position, c.CoinCount())
		}
	}

	if cell := w.PlayerCell(); cell.I != 0 || cell.J != 0 {
		t.Errorf("player cell = %s, want [0,0]", cell)
	}
}

func TestWorld_SpawnDecisionMatchesLuck(t *testing.T) {
	cfg := NewConfig()
	w, _ := newTestWorld(t, cfg)

	w.Area().Each(func(i, j int) {
		key := domain.CellKey(i, j)
		want := luck.Luck(key) < cfg.SpawnProbability
		got := w.Cache(w.Grid().GetCell(i, j)) != nil
		if got != want {
			t.Errorf("cell %s: spawned=%v, luck says %v", key, got, want)
		}
	})
}

func TestWorld_Determinism(t *testing.T) {
	cfg := NewConfig()
	a, _ := newTestWorld(t, cfg)
	b, _ := newTestWorld(t, cfg)

	ca, cb := a.Caches(), b.Caches()
	if len(ca) != len(cb) {
		t.Fatalf("worlds differ: %d vs %d caches", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i].PositionKey() != cb[i].PositionKey() || !coinsEqual(ca[i].Coins, cb[i].Coins) {
			t.Errorf("cache %d differs: %s vs %s", i, ca[i].PositionKey(), cb[i].PositionKey())
		}
	}

	// Тот же мир после прогулки туда и обратно
	if err := a.Step(30, 30); err != nil {
		t.Fatal(err)
	}
	if err := a.Step(-30, -30); err != nil {
		t.Fatal(err)
	}
	ca = a.Caches()
	if len(ca) != len(cb) {
		t.Fatalf("after round trip: %d vs %d caches", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i].PositionKey() != cb[i].PositionKey() || !coinsEqual(ca[i].Coins, cb[i].Coins) {
			t.Errorf("cache %d differs after round trip", i)
		}
	}
}

func TestWorld_CollectScenario(t *testing.T) {
	w, rec := newTestWorld(t, testConfig())
	origin := w.Grid().GetCell(0, 0)
	cache := w.Cache(origin)
	if cache == nil {
		t.Fatal("no cache at (0,0)")
	}
	before := cache.CoinCount()
	coin := domain.Coin{Cell: origin, Serial: 0}
	rec.reset()

	// 1. Первый сбор переносит монету
	if !w.Collect(coin, origin) {
		t.Fatal("Collect returned false")
	}
	if cache.CoinCount() != before-1 || cache.HasCoin(coin) {
		t.Errorf("cache still holds the coin: %v", cache.Coins)
	}
	inv := w.Inventory()
	if len(inv) != 1 || !domain.SameCoin(inv[0], coin) {
		t.Errorf("inventory = %v", inv)
	}
	if rec.count(domain.EventUpdate) != 1 {
		t.Errorf("UPDATE events = %d, want 1", rec.count(domain.EventUpdate))
	}

	// 2. Снимок обновлен сразу
	if snap := w.Mementos()["0,0"]; snap != memento.ToMemento(cache) {
		t.Errorf("memento not refreshed: %s", snap)
	}

	// 3. Повторный сбор - no-op
	if w.Collect(coin, origin) {
		t.Error("second Collect returned true")
	}
	if cache.CoinCount() != before-1 || len(w.Inventory()) != 1 {
		t.Error("second Collect changed state")
	}
}

func TestWorld_CollectNonCanonicalInput(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())

	// Ячейки из внешнего мира не интернированы: мир сам их канонизирует
	if !w.Collect(domain.Coin{Cell: &domain.Cell{I: 0, J: 0}, Serial: 0}, &domain.Cell{I: 0, J: 0}) {
		t.Fatal("Collect with fresh cell pointers failed")
	}
	if w.Inventory()[0].Cell != w.Grid().GetCell(0, 0) {
		t.Error("inventory coin cell is not canonical")
	}
}

func TestWorld_CollectOutOfRangeCell(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	origin := w.Grid().GetCell(0, 0)
	before := w.Cache(origin).CoinCount()

	// (2^32, 0) в 32 битах совпала бы с (0, 0); это другая ячейка и другая монета
	wide := domain.Coin{Cell: &domain.Cell{I: 1 << 32, J: 0}, Serial: 0}
	if w.Collect(wide, origin) {
		t.Fatal("Collect took a coin the player never named")
	}
	if len(w.Inventory()) != 0 || w.Cache(origin).CoinCount() != before {
		t.Errorf("state changed: inventory %v, cache %v", w.Inventory(), w.Cache(origin).Coins)
	}
	if c := w.Grid().GetCell(0, 0); c != origin || c.I != 0 {
		t.Errorf("canonical (0,0) replaced by %s", c)
	}
}

func TestWorld_CollectMissing(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	origin := w.Grid().GetCell(0, 0)

	tests := []struct {
		name     string
		coin     domain.Coin
		position *domain.Cell
	}{
		{"no cache there", domain.Coin{Cell: origin, Serial: 0}, w.Grid().GetCell(100, 100)},
		{"unknown serial", domain.Coin{Cell: origin, Serial: 99}, origin},
		{"coin from another cell", domain.Coin{Cell: w.Grid().GetCell(1, 1), Serial: 0}, origin},
		{"nil position", domain.Coin{Cell: origin, Serial: 0}, nil},
		{"nil coin cell", domain.Coin{Serial: 0}, origin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w.Collect(tt.coin, tt.position) {
				t.Error("Collect returned true")
			}
			if len(w.Inventory()) != 0 {
				t.Error("inventory changed")
			}
		})
	}
}

func TestWorld_Deposit(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	origin := w.Grid().GetCell(0, 0)
	target := w.Grid().GetCell(1, 1)
	coin := domain.Coin{Cell: origin, Serial: 0}

	// Нельзя положить то, чего нет в инвентаре
	if w.Deposit(coin, target) {
		t.Fatal("Deposit of a coin not in inventory succeeded")
	}

	if !w.Collect(coin, origin) {
		t.Fatal("Collect failed")
	}
	before := w.Cache(target).CoinCount()

	if !w.Deposit(coin, target) {
		t.Fatal("Deposit failed")
	}
	if len(w.Inventory()) != 0 {
		t.Error("inventory not empty after deposit")
	}
	if c := w.Cache(target); c.CoinCount() != before+1 || !c.HasCoin(coin) {
		t.Errorf("target cache = %v", c.Coins)
	}
	if w.Mementos()["1,1"] != memento.ToMemento(w.Cache(target)) {
		t.Error("target memento not refreshed")
	}

	// Монету можно вернуть домой
	if !w.Collect(coin, target) || !w.Deposit(coin, origin) {
		t.Error("coin could not travel back")
	}
}

func TestWorld_EvictAndRevisit(t *testing.T) {
	w, rec := newTestWorld(t, testConfig())
	origin := w.Grid().GetCell(0, 0)
	if !w.Collect(domain.Coin{Cell: origin, Serial: 0}, origin) {
		t.Fatal("Collect failed")
	}
	atEviction := w.Cache(origin).CoinsSnapshot()

	// 1. Уходим: кэш (0,0) выгружается в мементо
	rec.reset()
	if err := w.Step(10, 0); err != nil {
		t.Fatal(err)
	}
	if w.Cache(origin) != nil {
		t.Fatal("cache (0,0) still live after moving away")
	}
	if _, ok := w.Mementos()["0,0"]; !ok {
		t.Fatal("no memento for (0,0)")
	}
	if rec.count(domain.EventUnspawn) != 25 {
		t.Errorf("UNSPAWN events = %d, want 25", rec.count(domain.EventUnspawn))
	}

	// 2. Все выгрузки раньше всех спавнов
	seenSpawn := false
	for _, ev := range rec.cache {
		switch ev.Type {
		case domain.EventSpawn:
			seenSpawn = true
		case domain.EventUnspawn:
			if seenSpawn {
				t.Fatal("UNSPAWN after SPAWN in one recompute")
			}
		}
	}

	// 3. Возвращаемся: состояние на момент выгрузки, а не свежая чеканка
	if err := w.Step(-10, 0); err != nil {
		t.Fatal(err)
	}
	back := w.Cache(origin)
	if back == nil {
		t.Fatal("cache (0,0) not respawned")
	}
	if !coinsEqual(back.Coins, atEviction) {
		t.Errorf("revisited coins = %v, want %v", back.Coins, atEviction)
	}
	if back.Position != origin {
		t.Error("respawned cache position is not canonical")
	}
}

func TestWorld_MoveWithinNeighborhood(t *testing.T) {
	w, rec := newTestWorld(t, testConfig())
	rec.reset()

	// Шаг на одну ячейку: уходит один ряд (5), приходит один ряд (5)
	if err := w.Step(0, 1); err != nil {
		t.Fatal(err)
	}
	if rec.count(domain.EventUnspawn) != 5 || rec.count(domain.EventSpawn) != 5 {
		t.Errorf("unspawn=%d spawn=%d, want 5/5", rec.count(domain.EventUnspawn), rec.count(domain.EventSpawn))
	}
	if len(w.Caches()) != 25 {
		t.Errorf("live caches = %d, want 25", len(w.Caches()))
	}
}

func TestWorld_MoveToInvalid(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	before := w.Player()

	if err := w.MoveTo(domain.LatLng{Lat: 95, Lng: 0}); err == nil {
		t.Error("MoveTo accepted lat 95")
	}
	if w.Player() != before {
		t.Error("player moved on invalid input")
	}
}

func TestWorld_TeleportTo(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	if err := w.TeleportTo(40, -7); err != nil {
		t.Fatal(err)
	}
	if c := w.PlayerCell(); c.I != 40 || c.J != -7 {
		t.Errorf("player cell = %s, want [40,-7]", c)
	}
}

func TestWorld_TeleportOutOfRange(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	start := w.Player()

	if err := w.TeleportTo(1<<32, 7); !errors.Is(err, domain.ErrCellOutOfRange) {
		t.Fatalf("TeleportTo error = %v, want ErrCellOutOfRange", err)
	}
	if w.Player() != start {
		t.Errorf("player moved to %+v", w.Player())
	}
}

// Сумма монет в инвентаре и всех кэшах не меняется, и ни одна монета не двоится
func TestWorld_Conservation(t *testing.T) {
	w, _ := newTestWorld(t, testConfig())
	rng := rand.New(rand.NewSource(42))

	total := func() (int, []domain.Coin) {
		all := w.Inventory()
		for _, c := range w.Caches() {
			all = append(all, c.Coins...)
		}
		return len(all), all
	}
	want, _ := total()

	for step := 0; step < 500; step++ {
		caches := w.Caches()
		cache := caches[rng.Intn(len(caches))]
		inv := w.Inventory()

		switch {
		case rng.Intn(2) == 0 && cache.CoinCount() > 0:
			coin := cache.Coins[rng.Intn(cache.CoinCount())]
			w.Collect(coin, cache.Position)
		case len(inv) > 0:
			w.Deposit(inv[rng.Intn(len(inv))], cache.Position)
		default:
			// Пустые руки и пустой кэш: запрос мимо
			w.Collect(domain.Coin{Cell: cache.Position, Serial: 1000}, cache.Position)
		}

		got, all := total()
		if got != want {
			t.Fatalf("step %d: %d coins, want %d", step, got, want)
		}
		if domain.HasDuplicates(all) {
			t.Fatalf("step %d: duplicate coin identity", step)
		}
	}
}

func TestWorld_Reset(t *testing.T) {
	cfg := testConfig()
	w, _ := newTestWorld(t, cfg)
	origin := w.Grid().GetCell(0, 0)
	w.Collect(domain.Coin{Cell: origin, Serial: 0}, origin)
	if err := w.Step(20, 20); err != nil {
		t.Fatal(err)
	}

	w.Reset()

	if w.Player() != cfg.Start() {
		t.Errorf("player = %+v, want start", w.Player())
	}
	if len(w.Inventory()) != 0 {
		t.Error("inventory not cleared")
	}
	if len(w.Mementos()) != 0 {
		t.Errorf("mementos not cleared: %d", len(w.Mementos()))
	}
	if c := w.Cache(origin); c == nil || c.CoinCount() != worldgen.InitialCoinCount(origin, cfg.MaxInitialCoins) {
		t.Error("cache (0,0) not freshly minted")
	}
}

func TestWorld_SnapshotRestore(t *testing.T) {
	cfg := testConfig()
	w, _ := newTestWorld(t, cfg)
	origin := w.Grid().GetCell(0, 0)

	// Собираем, перекладываем, уходим: часть кэшей живая, часть в мементо
	w.Collect(domain.Coin{Cell: origin, Serial: 0}, origin)
	coin := domain.Coin{Cell: w.Grid().GetCell(1, 0), Serial: 0}
	w.Collect(coin, coin.Cell)
	w.Deposit(coin, w.Grid().GetCell(2, 2))
	if err := w.Step(3, 0); err != nil {
		t.Fatal(err)
	}

	snap := w.Snapshot()
	want, err := savegame.Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Новый мир в другом месте восстанавливается из записи
	other, _ := newTestWorld(t, cfg)
	if err := other.TeleportTo(-50, 50); err != nil {
		t.Fatal(err)
	}
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if other.Player() != w.Player() {
		t.Errorf("player = %+v, want %+v", other.Player(), w.Player())
	}
	if !coinsEqual(other.Inventory(), w.Inventory()) {
		t.Errorf("inventory = %v, want %v", other.Inventory(), w.Inventory())
	}
	got, err := savegame.Encode(other.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("snapshot after restore differs:\n got %s\nwant %s", got, want)
	}

	// Ушедший кэш (0,0) вернется в сохраненном виде
	if err := other.TeleportTo(0, 0); err != nil {
		t.Fatal(err)
	}
	if c := other.Cache(other.Grid().GetCell(0, 0)); c == nil || c.HasCoin(domain.Coin{Cell: origin, Serial: 0}) {
		t.Error("cache (0,0) lost its saved state")
	}
}

func TestWorld_RestoreRejectsAndKeepsState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *savegame.State)
	}{
		{
			// Монета одновременно в инвентаре и в кэше
			"coin in inventory and cache",
			func(s *savegame.State) {
				s.CacheStates["0,0"] = savegame.CacheState{Coins: append(s.CacheStates["0,0"].Coins, s.CollectedCoins[0])}
			},
		},
		{
			// Без записи о (0,0) ячейка отчеканилась бы заново
			"mint cell dropped",
			func(s *savegame.State) { delete(s.CacheStates, "0,0") },
		},
		{
			"other tile size",
			func(s *savegame.State) { s.TileDegrees *= 10 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWorld(t, testConfig())
			origin := w.Grid().GetCell(0, 0)
			w.Collect(domain.Coin{Cell: origin, Serial: 0}, origin)

			before, err := savegame.Encode(w.Snapshot())
			if err != nil {
				t.Fatal(err)
			}

			bad := w.Snapshot()
			tt.mutate(bad)

			if err := w.Restore(bad); !errors.Is(err, savegame.ErrInvalidSave) {
				t.Fatalf("Restore error = %v, want ErrInvalidSave", err)
			}
			if err := w.Restore(nil); err == nil {
				t.Error("Restore(nil) succeeded")
			}

			after, _ := savegame.Encode(w.Snapshot())
			if string(after) != string(before) {
				t.Error("rejected restore changed the world")
			}
		})
	}
}
