// Package sensor adapts step counting, motion-activity and device-motion
// sources for the dashboard and the scenes. Providers are a deterministic
// simulator, the SQLite step history and the live phone feed.
package sensor

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/core"
)

// ErrUnavailable is returned by providers with no backing sensor.
var ErrUnavailable = errors.New("sensor: not available")

// Pedometer answers "how many steps between from and to".
type Pedometer interface {
	Available() bool
	QuerySteps(ctx context.Context, from, to time.Time) (float64, error)
}

// ActivityMonitor pushes activity updates to handler until ctx is done.
// The handler runs on the monitor's goroutine.
type ActivityMonitor interface {
	Available() bool
	Start(ctx context.Context, handler func(activity.Activity)) error
}

// MotionSource streams device-motion samples until ctx is done.
type MotionSource interface {
	Motion(ctx context.Context) <-chan core.MotionSample
}

// StepHistory is the part of the store a StorePedometer needs.
type StepHistory interface {
	StepsBetween(ctx context.Context, from, to time.Time) (float64, error)
}

// StorePedometer answers queries from recorded step samples.
type StorePedometer struct {
	History StepHistory
}

// Available reports whether a history is attached.
func (p StorePedometer) Available() bool { return p.History != nil }

// QuerySteps sums recorded steps in [from, to).
func (p StorePedometer) QuerySteps(ctx context.Context, from, to time.Time) (float64, error) {
	if p.History == nil {
		return 0, ErrUnavailable
	}
	return p.History.StepsBetween(ctx, from, to)
}

// Unavailable stands in for a device without the sensor.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) QuerySteps(context.Context, time.Time, time.Time) (float64, error) {
	return 0, ErrUnavailable
}

func (Unavailable) Start(context.Context, func(activity.Activity)) error {
	return ErrUnavailable
}

// ActivityFeed is the part of the motion feed an activity monitor needs.
type ActivityFeed interface {
	Activities(ctx context.Context) <-chan activity.Activity
}

// FeedActivityMonitor relays activity updates streamed by a phone.
type FeedActivityMonitor struct {
	Feed ActivityFeed
}

// Available reports whether a feed is attached.
func (m FeedActivityMonitor) Available() bool { return m.Feed != nil }

// Start forwards feed updates to handler on a new goroutine.
func (m FeedActivityMonitor) Start(ctx context.Context, handler func(activity.Activity)) error {
	if m.Feed == nil {
		return ErrUnavailable
	}
	ch := m.Feed.Activities(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-ch:
				if !ok {
					return
				}
				handler(a)
			}
		}
	}()
	return nil
}
