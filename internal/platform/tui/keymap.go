package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/commotion/internal/core"
)

// sceneKeys binds keys to scene actions while a scene is running.
var sceneKeys = map[string]core.Action{
	"left":   core.ActionTiltLeft,
	"a":      core.ActionTiltLeft,
	"right":  core.ActionTiltRight,
	"d":      core.ActionTiltRight,
	"up":     core.ActionTiltUp,
	"w":      core.ActionTiltUp,
	"down":   core.ActionTiltDown,
	"s":      core.ActionTiltDown,
	"l":      core.ActionLevel,
	"0":      core.ActionLevel,
	" ":      core.ActionDrop,
	"enter":  core.ActionConfirm,
	"b":      core.ActionBack,
	"esc":    core.ActionBack,
	"p":      core.ActionPause,
	"r":      core.ActionRestart,
	"q":      core.ActionQuit,
	"ctrl+c": core.ActionQuit,
}

// sceneAction maps a key to a scene action. quit reports a request to leave
// the app entirely.
func sceneAction(msg tea.KeyMsg) (action core.Action, quit bool) {
	action, ok := sceneKeys[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}
