package admin

import (
	"encoding/json"
	"errors"
	"geocache-server/internal/domain"
	"geocache-server/internal/engine/handlers"
	"testing"
)

// teleportWorld запоминает только телепорты
type teleportWorld struct {
	handlers.WorldController
	target [2]int
	err    error
}

func (w *teleportWorld) TeleportTo(i, j int) error {
	w.target = [2]int{i, j}
	return w.err
}

func TestHandleTeleport(t *testing.T) {
	w := &teleportWorld{}
	h := handlers.WithPayload(HandleTeleport)

	res, err := h(handlers.Context{World: w}, json.RawMessage(`{"i":-3,"j":7}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.target != [2]int{-3, 7} || res.MsgType != domain.LogInfo {
		t.Errorf("target = %v, res = %+v", w.target, res)
	}

	w.err = errors.New("boom")
	res, _ = h(handlers.Context{World: w}, json.RawMessage(`{"i":0,"j":0}`))
	if res.MsgType != domain.LogError {
		t.Errorf("failed teleport result = %+v", res)
	}

	if _, err := h(handlers.Context{World: w}, json.RawMessage(`{"x":1}`)); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestHandleTeleport_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"i past int32", `{"i":4294967296,"j":7}`},
		{"j below int32", `{"i":0,"j":-2147483649}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &teleportWorld{target: [2]int{9, 9}}
			h := handlers.WithPayload(HandleTeleport)

			if _, err := h(handlers.Context{World: w}, json.RawMessage(tt.payload)); err == nil {
				t.Error("out-of-range teleport accepted")
			}
			if w.target != [2]int{9, 9} {
				t.Errorf("world teleported to %v", w.target)
			}
		})
	}
}
