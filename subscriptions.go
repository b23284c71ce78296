package vgnav

import "sync"

// subscriptions is a list of callbacks that can each be removed through the
// function returned when they were added.
type subscriptions[T any] struct {
	mu   sync.Mutex
	list []*subscription[T]
}

type subscription[T any] struct {
	fn T
}

// add registers fn and returns an idempotent function that removes it.
func (s *subscriptions[T]) add(fn T) (remove func()) {

	sub := &subscription[T]{fn: fn}

	s.mu.Lock()
	s.list = append(s.list, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, x := range s.list {
				if x == sub {
					s.list = append(s.list[:i:i], s.list[i+1:]...)
					return
				}
			}
		})
	}
}

// snapshot returns the callbacks registered at the time of the call, in order.
func (s *subscriptions[T]) snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]T, len(s.list))
	for i, sub := range s.list {
		ret[i] = sub.fn
	}
	return ret
}

func (s *subscriptions[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}
