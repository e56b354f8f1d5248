package admin

import (
	"fmt"
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
)

// TeleportPayload: { "i": 0, "j": 0 }
type TeleportPayload struct {
	I int `json:"i"`
	J int `json:"j"`
}

func (p TeleportPayload) Validate() error {
	return domain.CheckCellIndex(p.I, p.J)
}

// HandleTeleport переносит игрока в центр ячейки
func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	if err := ctx.World.TeleportTo(p.I, p.J); err != nil {
		return handlers.Result{Msg: fmt.Sprintf("Телепорт не удался: %v", err), MsgType: domain.LogError}, nil
	}
	return handlers.Result{Msg: fmt.Sprintf("⚡ Телепорт в [%d,%d]", p.I, p.J), MsgType: domain.LogInfo}, nil
}
