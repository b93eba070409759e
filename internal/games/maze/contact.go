package maze

import (
	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/scene"
)

// State is the player's lifecycle within one scene instance.
type State int

const (
	StateActive State = iota
	StateRespawning
	StateWon
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateRespawning:
		return "respawning"
	case StateWon:
		return "won"
	}
	return "unknown"
}

// Event is what a tick's contacts ask the scene to do.
type Event int

const (
	EventNone Event = iota
	EventRespawn
	EventWin
)

// Detector turns player contacts into respawn and win events. Once it has
// reported a win it is terminal and ignores everything after.
type Detector struct {
	state      State
	precedence config.Precedence
}

// NewDetector creates a detector in the Active state.
func NewDetector(p config.Precedence) *Detector {
	return &Detector{state: StateActive, precedence: p}
}

// State returns the current state.
func (d *Detector) State() State { return d.state }

// Resolve classifies the contacts reported by one physics step. Only
// contacts involving the player count. A finish contact wins; any other
// contact respawns. When both happen in the same tick the precedence
// decides.
func (d *Detector) Resolve(contacts []scene.Contact) Event {
	if d.state == StateWon {
		return EventNone
	}

	var finish, other bool
	for _, c := range contacts {
		var them *scene.Body
		switch {
		case c.A != nil && c.A.Kind == scene.KindPlayer:
			them = c.B
		case c.B != nil && c.B.Kind == scene.KindPlayer:
			them = c.A
		default:
			continue
		}
		if them != nil && them.Kind == scene.KindFinish {
			finish = true
		} else {
			other = true
		}
	}

	switch {
	case finish && (!other || d.precedence != config.ContactFirst):
		d.state = StateWon
		return EventWin
	case other:
		return EventRespawn
	}
	return EventNone
}

// BeginRespawn marks the transient respawn state. EndRespawn returns to
// Active unless the scene was won meanwhile.
func (d *Detector) BeginRespawn() {
	if d.state == StateActive {
		d.state = StateRespawning
	}
}

// EndRespawn finishes a respawn.
func (d *Detector) EndRespawn() {
	if d.state == StateRespawning {
		d.state = StateActive
	}
}
