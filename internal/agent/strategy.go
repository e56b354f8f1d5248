package agent

import (
	"geocache-server/internal/domain"
	"geocache-server/pkg/api"

	"github.com/zyedidia/generic/mapset"
)

// Command - решение бота: действие и его payload
type Command struct {
	Action  domain.ActionType
	Payload any
}

// Strategy - мозг бота. Работает только с тем, что прислал сервер.
//
// Порядок правил:
//  1. нет снимка игрока - просим INIT;
//  2. в руках Carry монет и рядом есть пустой кэш - оставляем монету там;
//  3. видна монета в кэше, куда бот сам ничего не клал - подбираем;
//  4. иначе идем на восток.
type Strategy struct {
	Carry int

	// Ячейки, где бот оставил монеты: оттуда он их не забирает
	dropped mapset.Set[string]
}

func NewStrategy(carry int) *Strategy {
	if carry < 1 {
		carry = 1
	}
	return &Strategy{Carry: carry, dropped: mapset.New[string]()}
}

// Decide выбирает следующую команду по снимку мира
func (s *Strategy) Decide(state api.ServerResponse) Command {
	if state.Player == nil {
		return Command{Action: domain.ActionInit}
	}

	inventory := state.Player.Inventory
	if len(inventory) >= s.Carry {
		for _, c := range state.Caches {
			if len(c.Coins) == 0 {
				s.dropped.Put(domain.CellKey(c.Position.I, c.Position.J))
				return Command{
					Action:  domain.ActionDeposit,
					Payload: api.CoinPayload{Coin: stripLabel(inventory[0]), Cache: c.Position},
				}
			}
		}
	}

	for _, c := range state.Caches {
		if len(c.Coins) == 0 || s.dropped.Has(domain.CellKey(c.Position.I, c.Position.J)) {
			continue
		}
		return Command{
			Action:  domain.ActionCollect,
			Payload: api.CoinPayload{Coin: stripLabel(c.Coins[0]), Cache: c.Position},
		}
	}

	return Command{Action: domain.ActionMove, Payload: api.DirectionPayload{Di: 0, Dj: 1}}
}

// Dropped - сколько ячеек бот пометил своими
func (s *Strategy) Dropped() int { return s.dropped.Size() }

func stripLabel(c api.CoinView) api.CoinView {
	c.Label = ""
	return c
}
