package actions

import (
	"fmt"
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
	"geocache-server/pkg/api"
)

// HandleCollect забирает монету из кэша в инвентарь.
// Отсутствие монеты - не ошибка команды (двойной клик), а сообщение игроку.
func HandleCollect(ctx handlers.Context, p api.CoinPayload) (handlers.Result, error) {
	coin, position := fromPayload(p)
	if !ctx.World.Collect(coin, position) {
		return handlers.Result{Msg: fmt.Sprintf("Монеты %s здесь нет.", coin), MsgType: domain.LogError}, nil
	}
	return handlers.Result{Msg: fmt.Sprintf("Подобрана монета %s.", coin), MsgType: domain.LogTrade}, nil
}

// HandleDeposit кладет монету из инвентаря в кэш
func HandleDeposit(ctx handlers.Context, p api.CoinPayload) (handlers.Result, error) {
	coin, position := fromPayload(p)
	if !ctx.World.Deposit(coin, position) {
		return handlers.Result{Msg: fmt.Sprintf("Нельзя положить %s в кэш %s.", coin, position), MsgType: domain.LogError}, nil
	}
	return handlers.Result{Msg: fmt.Sprintf("Монета %s оставлена в кэше %s.", coin, position), MsgType: domain.LogTrade}, nil
}

func fromPayload(p api.CoinPayload) (domain.Coin, *domain.Cell) {
	coin := domain.Coin{
		Cell:   &domain.Cell{I: p.Coin.Cell.I, J: p.Coin.Cell.J},
		Serial: p.Coin.Serial,
	}
	return coin, &domain.Cell{I: p.Cache.I, J: p.Cache.J}
}
