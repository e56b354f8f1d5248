package engine

import (
	"geocache-server/internal/domain"
	"geocache-server/pkg/api"
	"geocache-server/pkg/geogrid"
	"slices"
)

// BuildState создает снимок мира для клиентов.
// Снимок - копия: после возврата он не связан с живыми объектами.
func (s *GameService) BuildState() *api.ServerResponse {
	return BuildStateFor(s.World, s.tick, s.logs, s.events)
}

// BuildStateFor собирает ServerResponse из мира, логов и событий
func BuildStateFor(w *World, tick int, logs []api.LogEntry, events []api.EventView) *api.ServerResponse {
	area := w.Area()
	player := w.Player()
	cell := w.PlayerCell()

	caches := w.Caches()
	cacheViews := make([]api.CacheView, 0, len(caches))
	for _, c := range caches {
		cacheViews = append(cacheViews, ToCacheView(w.Grid(), c))
	}

	return &api.ServerResponse{
		Type: "UPDATE",
		Tick: tick,
		Grid: &api.GridMeta{
			TileDegrees: w.Grid().TileDegrees(),
			Radius:      w.Config().NeighborhoodSize,
			MinI:        area.MinI,
			MinJ:        area.MinJ,
			MaxI:        area.MaxI,
			MaxJ:        area.MaxJ,
		},
		Player: &api.PlayerView{
			Lat:       player.Lat,
			Lng:       player.Lng,
			Cell:      ToCellView(cell),
			Inventory: ToCoinViews(w.Inventory()),
		},
		Caches: cacheViews,
		Events: slices.Clone(events),
		Logs:   slices.Clone(logs),
	}
}

func ToCellView(c *domain.Cell) api.CellView {
	return api.CellView{I: c.I, J: c.J}
}

func ToCoinViews(coins []domain.Coin) []api.CoinView {
	out := make([]api.CoinView, 0, len(coins))
	for _, c := range coins {
		out = append(out, api.CoinView{
			Cell:   ToCellView(c.Cell),
			Serial: c.Serial,
			Label:  c.String(),
		})
	}
	return out
}

// ToCacheView конвертирует кэш в DTO вместе с границами ячейки для маркера
func ToCacheView(grid *geogrid.Grid, c *domain.Cache) api.CacheView {
	sw, ne := grid.Bounds(c.Position)
	return api.CacheView{
		Position: ToCellView(c.Position),
		Bounds:   api.BoundsView{South: sw.Lat, West: sw.Lng, North: ne.Lat, East: ne.Lng},
		Coins:    ToCoinViews(c.Coins),
	}
}
