package http

import "sync"

// RequestHook observes an outgoing request.
// It returns the descriptor to hand to the next hook; nil keeps the current one.
type RequestHook func(*RequestDescriptor) *RequestDescriptor

// ResponseHook observes an incoming response.
// It returns the descriptor to hand to the next hook; nil keeps the current one.
type ResponseHook func(*ResponseDescriptor) *ResponseDescriptor

// ErrorHook observes a failed transaction.
type ErrorHook func(*ErrorDescriptor)

// Unregister removes a previously registered hook. Calling it more than once is a no-op.
type Unregister func()

type hookEntry[H any] struct {
	id   uint64
	hook H
}

// hookSet is an ordered, concurrency-safe list of hooks.
type hookSet[H any] struct {
	mu      sync.RWMutex
	nextID  uint64
	entries []hookEntry[H]
}

func (s *hookSet[H]) add(hook H) Unregister {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, hookEntry[H]{id: id, hook: hook})

	var once sync.Once

	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *hookSet[H]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.entries {
		if entry.id == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)

			return
		}
	}
}

// snapshot returns the hooks in registration order.
// Hooks run outside the lock so they may unregister themselves.
func (s *hookSet[H]) snapshot() []H {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hooks := make([]H, len(s.entries))
	for i, entry := range s.entries {
		hooks[i] = entry.hook
	}

	return hooks
}

func (s *hookSet[H]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
