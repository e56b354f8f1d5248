package handlers

import (
	"encoding/json"
	"errors"
	"geocache-server/pkg/api"
	"testing"
)

func TestWithPayload(t *testing.T) {
	var got api.DirectionPayload
	h := WithPayload(func(ctx Context, p api.DirectionPayload) (Result, error) {
		got = p
		return Result{Msg: "ok"}, nil
	})

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"di":1,"dj":0}`, false},
		{"empty", ``, true},
		{"null", `null`, true},
		{"garbage", `{`, true},
		{"unknown field", `{"di":1,"dx":1}`, true},
		{"fails validation", `{"di":0,"dj":0}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h(Context{}, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (res.Msg != "ok" || got.Di != 1) {
				t.Errorf("handler not called with payload: %+v %+v", res, got)
			}
		})
	}

	if _, err := h(Context{}, nil); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("nil payload error = %v, want ErrEmptyPayload", err)
	}
}

func TestWithEmptyPayload(t *testing.T) {
	called := false
	h := WithEmptyPayload(func(ctx Context) (Result, error) {
		called = true
		return EmptyResult(), nil
	})
	if _, err := h(Context{}, json.RawMessage(`{"ignored":true}`)); err != nil || !called {
		t.Errorf("err = %v, called = %v", err, called)
	}
}
