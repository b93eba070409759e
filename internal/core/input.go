package core

// Action is a semantic input, abstracted from the physical key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionTiltLeft
	ActionTiltRight
	ActionTiltUp
	ActionTiltDown
	ActionLevel   // recenter keyboard tilt
	ActionDrop    // space: drop a bottle
	ActionConfirm // enter
	ActionBack    // b, esc
	ActionRestart // r
	ActionQuit    // q, ctrl+c
	ActionPause   // p
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionTiltLeft:  "TiltLeft",
	ActionTiltRight: "TiltRight",
	ActionTiltUp:    "TiltUp",
	ActionTiltDown:  "TiltDown",
	ActionLevel:     "Level",
	ActionDrop:      "Drop",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is everything a game sees for one simulation tick: the discrete
// actions triggered since the previous tick and the newest motion sample, if any.
type InputFrame struct {
	Actions map[Action]bool
	Motion  *MotionSample
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SetMotion attaches a motion sample, replacing any earlier one in this frame.
func (f *InputFrame) SetMotion(s MotionSample) {
	f.Motion = &s
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Motion = nil
}
