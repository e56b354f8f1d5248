package tui

import (
	"encoding/json"
	"geocache-server/internal/domain"
	"geocache-server/pkg/api"

	"github.com/gdamore/tcell/v2"
)

// KeyCommand переводит нажатие в команду для GameService.
// nil - клавиша ничего не делает в текущем состоянии; quit - выход из клиента.
func KeyCommand(key tcell.Key, r rune, state *api.ServerResponse) (cmd *api.ClientCommand, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyUp:
		return step(1, 0), false
	case tcell.KeyDown:
		return step(-1, 0), false
	case tcell.KeyLeft:
		return step(0, -1), false
	case tcell.KeyRight:
		return step(0, 1), false
	case tcell.KeyRune:
	default:
		return nil, false
	}

	switch r {
	case 'q':
		return nil, true
	case 'k':
		return step(1, 0), false
	case 'j':
		return step(-1, 0), false
	case 'h':
		return step(0, -1), false
	case 'l':
		return step(0, 1), false
	case 'c':
		return collectHere(state), false
	case 'd':
		return depositHere(state), false
	case 's':
		return command(domain.ActionSave, nil), false
	case 'o':
		return command(domain.ActionLoad, nil), false
	case 'r':
		return command(domain.ActionReset, nil), false
	}
	return nil, false
}

func step(di, dj int) *api.ClientCommand {
	return command(domain.ActionMove, api.DirectionPayload{Di: di, Dj: dj})
}

// collectHere берет первую монету из кэша под игроком
func collectHere(state *api.ServerResponse) *api.ClientCommand {
	cache := cacheUnderPlayer(state)
	if cache == nil || len(cache.Coins) == 0 {
		return nil
	}
	coin := cache.Coins[0]
	coin.Label = ""
	return command(domain.ActionCollect, api.CoinPayload{Coin: coin, Cache: cache.Position})
}

// depositHere кладет первую монету инвентаря в кэш под игроком
func depositHere(state *api.ServerResponse) *api.ClientCommand {
	cache := cacheUnderPlayer(state)
	if cache == nil || len(state.Player.Inventory) == 0 {
		return nil
	}
	coin := state.Player.Inventory[0]
	coin.Label = ""
	return command(domain.ActionDeposit, api.CoinPayload{Coin: coin, Cache: cache.Position})
}

func cacheUnderPlayer(state *api.ServerResponse) *api.CacheView {
	if state == nil || state.Player == nil {
		return nil
	}
	for i := range state.Caches {
		if state.Caches[i].Position == state.Player.Cell {
			return &state.Caches[i]
		}
	}
	return nil
}

func command(action domain.ActionType, payload any) *api.ClientCommand {
	cmd := &api.ClientCommand{Action: action.String()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil
		}
		cmd.Payload = data
	}
	return cmd
}
