package sensor

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/commotion/internal/activity"
)

// SimPedometer produces a deterministic step history: every hour of the
// timeline gets StepsPerHour scaled by a factor in [0.5, 1.5) derived from
// the seed and the hour, and nothing after Now.
type SimPedometer struct {
	StepsPerHour float64
	Seed         int64
	Now          func() time.Time
}

// Available is always true.
func (p SimPedometer) Available() bool { return true }

// QuerySteps integrates the simulated rate over [from, min(to, now)).
func (p SimPedometer) QuerySteps(ctx context.Context, from, to time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	if to.After(now) {
		to = now
	}
	if !to.After(from) {
		return 0, nil
	}

	var total float64
	cur := from
	for cur.Before(to) {
		hour := cur.Truncate(time.Hour)
		next := hour.Add(time.Hour)
		if next.After(to) {
			next = to
		}
		frac := next.Sub(cur).Hours()
		total += p.StepsPerHour * p.factor(hour.Unix()/3600) * frac
		cur = next
	}
	return float64(int64(total)), nil
}

// factor hashes the hour index into [0.5, 1.5).
func (p SimPedometer) factor(hour int64) float64 {
	x := uint64(p.Seed) ^ uint64(hour)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return 0.5 + float64(x>>11)/float64(1<<53)
}

// SimActivityMonitor emits a seeded sequence of activities at a fixed
// interval.
type SimActivityMonitor struct {
	Interval time.Duration
	Seed     int64
}

// Available is always true.
func (m SimActivityMonitor) Available() bool { return true }

// Start emits one activity immediately and then one per interval.
func (m SimActivityMonitor) Start(ctx context.Context, handler func(activity.Activity)) error {
	interval := m.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	rng := rand.New(rand.NewSource(m.Seed))
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		handler(SimActivity(rng, time.Now()))
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				handler(SimActivity(rng, now))
			}
		}
	}()
	return nil
}

// SimActivity draws one plausible activity.
func SimActivity(rng *rand.Rand, at time.Time) activity.Activity {
	a := activity.Activity{Start: at, Confidence: activity.Confidence(rng.Intn(3))}
	switch rng.Intn(10) {
	case 0, 1, 2, 3:
		a.Stationary = true
	case 4, 5, 6:
		a.Walking = true
	case 7:
		a.Running = true
	case 8:
		a.Cycling = true
	default:
		a.Automotive = true
		a.Stationary = rng.Intn(2) == 0
	}
	return a
}
