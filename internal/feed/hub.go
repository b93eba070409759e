package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/core"
)

// Hub fans out samples from every connected phone to local subscribers.
// It satisfies sensor.MotionSource and sensor.ActivityFeed.
type Hub struct {
	buffer int

	mu         sync.Mutex
	motion     map[*subscriber[core.MotionSample]]struct{}
	activities map[*subscriber[activity.Activity]]struct{}
	last       *activity.Activity

	motionCount   atomic.Int64
	activityCount atomic.Int64
	sessions      atomic.Int64
}

// NewHub creates a hub whose subscribers buffer up to buffer values.
func NewHub(buffer int) *Hub {
	return &Hub{
		buffer:     buffer,
		motion:     make(map[*subscriber[core.MotionSample]]struct{}),
		activities: make(map[*subscriber[activity.Activity]]struct{}),
	}
}

// Motion subscribes to motion samples until ctx is done, then closes the
// channel.
func (h *Hub) Motion(ctx context.Context) <-chan core.MotionSample {
	sub := newSubscriber[core.MotionSample](h.buffer)
	h.mu.Lock()
	h.motion[sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.motion, sub)
		h.mu.Unlock()
		sub.close()
	}()
	return sub.ch
}

// Activities subscribes to activity updates until ctx is done. A new
// subscriber first receives the latest known activity, if any.
func (h *Hub) Activities(ctx context.Context) <-chan activity.Activity {
	sub := newSubscriber[activity.Activity](h.buffer)
	h.mu.Lock()
	h.activities[sub] = struct{}{}
	if h.last != nil {
		sub.send(*h.last)
	}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.activities, sub)
		h.mu.Unlock()
		sub.close()
	}()
	return sub.ch
}

// PublishMotion delivers a sample to every motion subscriber.
func (h *Hub) PublishMotion(s core.MotionSample) {
	h.motionCount.Add(1)
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.motion {
		sub.send(s)
	}
}

// PublishActivity delivers an update to every activity subscriber and
// remembers it for late subscribers.
func (h *Hub) PublishActivity(a activity.Activity) {
	h.activityCount.Add(1)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &a
	for sub := range h.activities {
		sub.send(a)
	}
}

// Stats is a snapshot of hub counters.
type Stats struct {
	Sessions    int64
	Motion      int64
	Activities  int64
	Subscribers int
}

// Stats returns current counters.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	subs := len(h.motion) + len(h.activities)
	h.mu.Unlock()
	return Stats{
		Sessions:    h.sessions.Load(),
		Motion:      h.motionCount.Load(),
		Activities:  h.activityCount.Load(),
		Subscribers: subs,
	}
}
