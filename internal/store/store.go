package store

import "sync"

// Store holds the live snapshot and fans out change notifications.
// Observers are notified exactly once per Swap, i.e. once per logical
// operation, no matter how many entities the operation touched. Writers
// (the synchronization engine) serialize their Swap calls.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)
}

// New returns a store holding an empty snapshot.
func New() *Store {
	return &Store{
		snap: NewSnapshot(),
		subs: map[int]func(Snapshot){},
	}
}

// Snapshot returns the current snapshot. The returned value is immutable.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Swap installs next as the current snapshot and notifies observers once.
func (s *Store) Swap(next Snapshot) {
	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// Subscribe registers an observer and returns its unsubscribe function.
// Observers run on the swapping goroutine and should return quickly.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}
