// Package tui provides the Bubble Tea front end for commotion: the step
// dashboard, the scene runner and the SSH server that hosts both.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/sensor"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// scene run that scheduled it, so a tick still in flight when a scene closes
// is not delivered to the next one.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// pollMsg asks the dashboard to query the pedometer.
type pollMsg time.Time

func pollCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// stepsMsg carries one pedometer answer back to the event loop.
type stepsMsg struct {
	steps float64
	err   error
}

// queryStepsCmd runs a pedometer query off the event loop.
func queryStepsCmd(ctx context.Context, p sensor.Pedometer, w activity.Window) tea.Cmd {
	return func() tea.Msg {
		steps, err := p.QuerySteps(ctx, w.From, w.To)
		return stepsMsg{steps: steps, err: err}
	}
}

// activityMsg carries one activity update from the monitor goroutine.
type activityMsg activity.Activity

// waitForActivity blocks on the monitor bridge until the next update.
// A nil message is returned once ctx is done or the channel closes.
func waitForActivity(ctx context.Context, ch <-chan activity.Activity) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-ch:
			if !ok {
				return nil
			}
			return activityMsg(a)
		}
	}
}

// motionMsg carries one device-motion sample from the feed.
type motionMsg core.MotionSample

func waitForMotion(ctx context.Context, ch <-chan core.MotionSample) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-ch:
			if !ok {
				return nil
			}
			return motionMsg(s)
		}
	}
}
