package renderer

import (
	"sync"
	"sync/atomic"
)

// Releaser is implemented by cached values that hold GPU objects.
type Releaser interface {
	Release()
}

// Storage is the per-widget resource cache of the renderer. Entries persist across frames and are
// released once a frame ends without them being used.
type Storage struct {
	mu      *sync.Mutex
	entries map[string]any
	used    map[string]struct{}
	stats   *Stats
}

// NewStorage creates an empty Storage.
//
// Returns:
//   - *Storage: the storage
func NewStorage() *Storage {
	return &Storage{
		mu:      &sync.Mutex{},
		entries: make(map[string]any),
		used:    make(map[string]struct{}),
		stats:   &Stats{},
	}
}

// Get returns the entry stored under key and marks it used for this frame.
//
// Parameters:
//   - key: the widget key
//
// Returns:
//   - any: the entry
//   - bool: false if nothing is stored under key
func (s *Storage) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if ok {
		s.used[key] = struct{}{}
	}
	return v, ok
}

// Store sets the entry under key, releasing the previous entry if it is a different value.
//
// Parameters:
//   - key: the widget key
//   - v: the entry
func (s *Storage) Store(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok && old != v {
		release(old)
	}
	s.entries[key] = v
	s.used[key] = struct{}{}
}

// Len returns the number of entries.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep releases every entry that was not used since the previous Sweep. The renderer calls it
// at the end of every frame.
func (s *Storage) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, v := range s.entries {
		if _, ok := s.used[key]; !ok {
			release(v)
			delete(s.entries, key)
		}
	}
	clear(s.used)
}

// Release releases and removes every entry.
func (s *Storage) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, v := range s.entries {
		release(v)
		delete(s.entries, key)
	}
	clear(s.used)
}

// Stats returns the upload counters shared by every primitive using this storage.
func (s *Storage) Stats() *Stats {
	return s.stats
}

func release(v any) {
	if r, ok := v.(Releaser); ok {
		r.Release()
	}
}

// Stats counts the upload decisions made by primitives. All counters are cumulative.
type Stats struct {
	FullUploads        atomic.Uint64
	IncrementalUploads atomic.Uint64
	SkippedFrames      atomic.Uint64
	Recreations        atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	FullUploads        uint64
	IncrementalUploads uint64
	SkippedFrames      uint64
	Recreations        uint64
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		FullUploads:        s.FullUploads.Load(),
		IncrementalUploads: s.IncrementalUploads.Load(),
		SkippedFrames:      s.SkippedFrames.Load(),
		Recreations:        s.Recreations.Load(),
	}
}

// Sub returns the counter deltas from prev to s.
func (s StatsSnapshot) Sub(prev StatsSnapshot) StatsSnapshot {
	return StatsSnapshot{
		FullUploads:        s.FullUploads - prev.FullUploads,
		IncrementalUploads: s.IncrementalUploads - prev.IncrementalUploads,
		SkippedFrames:      s.SkippedFrames - prev.SkippedFrames,
		Recreations:        s.Recreations - prev.Recreations,
	}
}
