// Package timer provides the schedulers behind debounced evaluation: a
// wall-clock one backed by time.AfterFunc and a manual one driven by tests.
package timer

import (
	"sync"
	"time"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/logger"
)

var (
	_ domain.Scheduler = (*Scheduler)(nil)
	_ domain.Scheduler = (*Manual)(nil)
)

// Scheduler runs callbacks on real timers. Stop cancels everything still
// outstanding; later Schedule calls are ignored.
type Scheduler struct {
	log *logger.Logger

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*time.Timer
	stopped bool
}

// New creates a wall-clock scheduler.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		log:     log,
		pending: make(map[uint64]*time.Timer),
	}
}

// Schedule runs fn on its own goroutine once delay has elapsed, unless the
// returned cancel function runs first. Cancel is idempotent.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.log.Debug("scheduler stopped, dropping callback")
		return func() {}
	}

	s.nextID++
	id := s.nextID
	s.pending[id] = time.AfterFunc(delay, func() {
		if !s.release(id) {
			return
		}
		fn()
	})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.pending[id]; ok {
			t.Stop()
			delete(s.pending, id)
		}
	}
}

// release forgets a fired timer and reports whether it was still wanted.
func (s *Scheduler) release(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every outstanding timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
	s.stopped = true
	s.log.Debug("scheduler stopped")
}
