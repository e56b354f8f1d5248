package server

import (
	"encoding/json"
	"geocache-server/internal/engine"
	"geocache-server/pkg/api"
	"geocache-server/pkg/logger"
	"net/http"
	"sort"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Все чтения идут через игровой цикл (GameService.Do), мир не трогается из HTTP-горутин.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/caches", h.handleCaches)
	mux.HandleFunc("/debug/mementos", h.handleMementos)
	mux.HandleFunc("/debug/player", h.handlePlayer)
}

// /debug/caches - живые кэши окрестности с монетами
func (h *DebugHandler) handleCaches(w http.ResponseWriter, r *http.Request) {
	views := []api.CacheView{}
	err := h.Service.Do(r.Context(), func(world *engine.World) {
		for _, c := range world.Caches() {
			views = append(views, engine.ToCacheView(world.Grid(), c))
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, views)
}

// /debug/mementos - сырые снимки кэшей: ключ ячейки и строка мементо
func (h *DebugHandler) handleMementos(w http.ResponseWriter, r *http.Request) {
	type MementoView struct {
		Cell     string `json:"cell"`
		Snapshot string `json:"snapshot"`
	}

	dump := []MementoView{}
	err := h.Service.Do(r.Context(), func(world *engine.World) {
		for key, snapshot := range world.Mementos() {
			dump = append(dump, MementoView{Cell: key, Snapshot: snapshot})
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	sort.Slice(dump, func(a, b int) bool { return dump[a].Cell < dump[b].Cell })
	writeJSON(w, dump)
}

// /debug/player - позиция, ячейка и инвентарь
func (h *DebugHandler) handlePlayer(w http.ResponseWriter, r *http.Request) {
	var view api.PlayerView
	err := h.Service.Do(r.Context(), func(world *engine.World) {
		p := world.Player()
		view = api.PlayerView{
			Lat:       p.Lat,
			Lng:       p.Lng,
			Cell:      engine.ToCellView(world.PlayerCell()),
			Inventory: engine.ToCoinViews(world.Inventory()),
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Debug("debug write failed")
	}
}
