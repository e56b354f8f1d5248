package actions

import (
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
)

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{Msg: "Добро пожаловать. Ищите кэши вокруг себя.", MsgType: domain.LogInfo}, nil
}
