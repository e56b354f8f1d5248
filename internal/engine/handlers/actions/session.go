package actions

import (
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
	"geocache-server/pkg/logger"
)

// HandleReset - начать игру заново
func HandleReset(ctx handlers.Context) (handlers.Result, error) {
	ctx.World.Reset()
	return handlers.Result{Msg: "Игра начата заново.", MsgType: domain.LogInfo}, nil
}

func HandleSave(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Storage.Save(ctx.Ctx); err != nil {
		logger.Log.WithError(err).Error("Save failed")
		return handlers.Result{Msg: "Не удалось сохранить игру.", MsgType: domain.LogError}, nil
	}
	return handlers.Result{Msg: "Игра сохранена.", MsgType: domain.LogInfo}, nil
}

// HandleLoad никогда не падает: без сохранения мир просто начинается заново
func HandleLoad(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Storage.Load(ctx.Ctx) {
		return handlers.Result{Msg: "Сохранение не найдено, начата новая игра.", MsgType: domain.LogInfo}, nil
	}
	return handlers.Result{Msg: "Игра загружена.", MsgType: domain.LogInfo}, nil
}
