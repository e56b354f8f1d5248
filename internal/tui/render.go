package tui

import (
	"fmt"
	"geocache-server/pkg/api"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// cellWidth - ячейка карты занимает символ и пробел
const cellWidth = 2

var (
	styleText = tcell.StyleDefault
	styleDim  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLog  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// GlyphAt выбирает символ ячейки (i, j) по снимку
func GlyphAt(state *api.ServerResponse, caches map[api.CellView]api.CacheView, i, j int) Glyph {
	pos := api.CellView{I: i, J: j}
	if state.Player != nil && state.Player.Cell == pos {
		return GlyphPlayer
	}
	if c, ok := caches[pos]; ok {
		if len(c.Coins) > 0 {
			return GlyphCache
		}
		return GlyphEmptyCache
	}
	return GlyphGround
}

// Render рисует окрестность (север сверху) и панель состояния под ней
func Render(screen tcell.Screen, state *api.ServerResponse, logs []string) {
	screen.Clear()
	defer screen.Show()

	if state == nil || state.Grid == nil || state.Player == nil {
		drawText(screen, 0, 0, styleDim, "Ожидание мира...")
		return
	}

	g := state.Grid
	caches := make(map[api.CellView]api.CacheView, len(state.Caches))
	for _, c := range state.Caches {
		caches[c.Position] = c
	}

	// 1. Карта
	for i := g.MaxI; i >= g.MinI; i-- {
		y := g.MaxI - i
		for j := g.MinJ; j <= g.MaxJ; j++ {
			glyph := GlyphAt(state, caches, i, j)
			screen.SetContent((j-g.MinJ)*cellWidth, y, rune(glyph.Char()), nil, glyph.Style())
		}
	}

	// 2. Панель
	y := g.MaxI - g.MinI + 2
	p := state.Player
	drawText(screen, 0, y, styleText, fmt.Sprintf("Ячейка %d,%d  (%.6f, %.6f)", p.Cell.I, p.Cell.J, p.Lat, p.Lng))
	y++
	drawText(screen, 0, y, styleText, "Инвентарь: "+labels(p.Inventory))
	y++
	here := "нет"
	if c, ok := caches[p.Cell]; ok {
		here = labels(c.Coins)
	}
	drawText(screen, 0, y, styleText, "Кэш здесь: "+here)
	y += 2

	for _, line := range logs {
		drawText(screen, 0, y, styleLog, line)
		y++
	}
	drawText(screen, 0, y+1, styleDim, "стрелки/hjkl - шаг  c - взять  d - положить  s - сохранить  o - загрузить  r - сброс  q - выход")
}

func labels(coins []api.CoinView) string {
	if len(coins) == 0 {
		return "пусто"
	}
	parts := make([]string, len(coins))
	for i, c := range coins {
		parts[i] = c.Label
	}
	return strings.Join(parts, " ")
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
