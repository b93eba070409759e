package feed

import "sync"

// subscriber is one buffered listener. Sends never block: when the buffer
// is full the oldest value is dropped so readers always see fresh samples.
type subscriber[T any] struct {
	ch     chan T
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	closed bool
}

func newSubscriber[T any](buffer int) *subscriber[T] {
	if buffer <= 0 {
		buffer = 1
	}
	return &subscriber[T]{
		ch:   make(chan T, buffer),
		done: make(chan struct{}),
	}
}

// send delivers v, dropping the oldest buffered value if needed.
func (s *subscriber[T]) send(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- v:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}

// close ends the subscription and closes the channel. Safe to call twice.
func (s *subscriber[T]) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
		close(s.done)
	})
}
