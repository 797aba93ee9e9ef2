package main

import (
	"slices"
	"testing"

	"github.com/taigrr/voxetype/pkg/render"
)

// key matches a single key name.
type key string

func (k key) MatchString(s ...string) bool {
	return slices.Contains(s, string(k))
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		key  key
		want Input
	}{
		{"q", Input{Action: ActionQuit}},
		{"escape", Input{Action: ActionQuit}},
		{"ctrl+c", Input{Action: ActionQuit}},
		{"space", Input{Action: ActionSpin}},
		{"m", Input{Action: ActionNextMode}},
		{"c", Input{Action: ActionToggleCull}},
		{"?", Input{Action: ActionToggleHUD}},
		{"r", Input{Action: ActionReset}},
		{"w", Input{Action: ActionCamera, Command: render.CommandForward}},
		{"down", Input{Action: ActionCamera, Command: render.CommandBack}},
		{"left", Input{Action: ActionCamera, Command: render.CommandRotateLeft}},
		{"d", Input{Action: ActionCamera, Command: render.CommandRotateRight}},
		{"z", Input{}},
	}
	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			if got := decodeKey(tc.key); got != tc.want {
				t.Errorf("decodeKey(%q) = %+v, want %+v", tc.key, got, tc.want)
			}
		})
	}
}
