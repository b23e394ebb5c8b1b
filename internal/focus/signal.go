package focus

import "sync"

// Signal holds the requested verse number. Zero means no verse is requested.
// The host owns and mutates it; controllers only observe it.
type Signal struct {
	mu        sync.Mutex
	value     int
	nextID    int
	listeners map[int]func(int)
}

func NewSignal(initial int) *Signal {
	return &Signal{value: normalizeVerse(initial), listeners: make(map[int]func(int))}
}

func (s *Signal) Get() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and notifies listeners when the value changed. Negative
// values are stored as zero. Listeners run on the caller's goroutine after
// the signal's lock is released, so they may call Set themselves.
func (s *Signal) Set(v int) {
	v = normalizeVerse(v)

	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return
	}
	s.value = v
	fns := make([]func(int), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn for future changes and returns a func that removes
// it. The returned func is safe to call more than once.
func (s *Signal) Subscribe(fn func(int)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Listeners returns the number of active subscriptions.
func (s *Signal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func normalizeVerse(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
