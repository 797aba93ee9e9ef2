package main

import "github.com/taigrr/voxetype/pkg/render"

// Action is what a key press asks the frame loop to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCamera // see Input.Command
	ActionSpin
	ActionNextMode
	ActionToggleCull
	ActionToggleHUD
	ActionReset
)

// Input is one decoded key press.
type Input struct {
	Action  Action
	Command render.Command
}

// keyMatcher is satisfied by ultraviolet key events.
type keyMatcher interface {
	MatchString(s ...string) bool
}

// cameraKeys are the key names render.ParseCommand understands.
var cameraKeys = []string{"w", "up", "s", "down", "a", "left", "d", "right"}

// decodeKey maps a key press to an input.
func decodeKey(k keyMatcher) Input {
	switch {
	case k.MatchString("q", "escape", "ctrl+c"):
		return Input{Action: ActionQuit}
	case k.MatchString("space"):
		return Input{Action: ActionSpin}
	case k.MatchString("m"):
		return Input{Action: ActionNextMode}
	case k.MatchString("c"):
		return Input{Action: ActionToggleCull}
	case k.MatchString("?", "shift+/"):
		return Input{Action: ActionToggleHUD}
	case k.MatchString("r"):
		return Input{Action: ActionReset}
	}
	for _, name := range cameraKeys {
		if k.MatchString(name) {
			return Input{Action: ActionCamera, Command: render.ParseCommand(name)}
		}
	}
	return Input{}
}
