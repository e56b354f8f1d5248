// Package tui - терминальный клиент: рисует окрестность игрока и переводит клавиши в команды.
// Подключается к GameService как обычная сессия хаба.
package tui

import (
	"context"
	"geocache-server/internal/engine"
	"geocache-server/pkg/api"
	"geocache-server/pkg/logger"

	"github.com/gdamore/tcell/v2"
)

// maxLogLines - сколько последних сообщений держит панель
const maxLogLines = 5

type App struct {
	Screen  tcell.Screen
	Game    *engine.GameService
	Session string

	state *api.ServerResponse
	logs  []string
}

func NewApp(screen tcell.Screen, game *engine.GameService) *App {
	return &App{Screen: screen, Game: game, Session: "terminal"}
}

// Run крутит клиент до выхода по клавише или отмены ctx
func (a *App) Run(ctx context.Context) error {
	updates := a.Game.Hub.Register(a.Session)
	defer a.Game.Hub.UnregisterChan(a.Session, updates)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return // экран закрыт
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := a.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: a.Session}); err != nil {
		return err
	}
	a.draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-updates:
			if !ok {
				return nil
			}
			a.Apply(msg)
			a.draw()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				cmd, quit := KeyCommand(ev.Key(), ev.Rune(), a.state)
				if quit {
					return nil
				}
				if cmd == nil {
					continue
				}
				cmd.Token = a.Session
				if err := a.Game.ProcessCommand(*cmd); err != nil {
					logger.Log.WithError(err).Warn("Terminal command rejected")
					return err
				}
			case *tcell.EventResize:
				a.Screen.Sync()
				a.draw()
			}
		}
	}
}

// Apply запоминает снимок и новые сообщения лога
func (a *App) Apply(msg api.ServerResponse) {
	if msg.Type == "UPDATE" {
		a.state = &msg
	}
	for _, l := range msg.Logs {
		a.logs = append(a.logs, l.Text)
	}
	if len(a.logs) > maxLogLines {
		a.logs = a.logs[len(a.logs)-maxLogLines:]
	}
}

func (a *App) State() *api.ServerResponse { return a.state }
func (a *App) Logs() []string             { return a.logs }

func (a *App) draw() {
	Render(a.Screen, a.state, a.logs)
}
