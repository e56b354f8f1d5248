package actions

import (
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
	"geocache-server/pkg/api"
)

// HandleMove - шаг на одну ячейку (кнопки север/юг/запад/восток)
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	if err := ctx.World.Step(p.Di, p.Dj); err != nil {
		return handlers.Result{Msg: "Дальше идти некуда.", MsgType: domain.LogError}, nil
	}
	return handlers.EmptyResult(), nil
}

// HandlePosition - абсолютная позиция от геолокации
func HandlePosition(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	if err := ctx.World.MoveTo(domain.LatLng{Lat: p.Lat, Lng: p.Lng}); err != nil {
		return handlers.Result{Msg: "Некорректная позиция.", MsgType: domain.LogError}, nil
	}
	return handlers.EmptyResult(), nil
}
