// Package toast is a process-local store of ephemeral user-facing messages.
// Toasts auto-dismiss after their duration via per-toast cancellable timers;
// insertion order is display order.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind selects icon/color only; it carries no behavioral difference.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// DefaultDuration applies when a non-sticky toast specifies no duration.
const DefaultDuration = 5 * time.Second

type Toast struct {
	ID       string
	Kind     Kind
	Title    string
	Message  string
	Duration time.Duration
	// Sticky pins the toast until an explicit Hide (duration 0 semantics).
	Sticky bool
}

type Store struct {
	mu     sync.Mutex
	order  []string
	toasts map[string]Toast
	timers map[string]*time.Timer
	closed bool
}

func NewStore() *Store {
	return &Store{
		toasts: make(map[string]Toast),
		timers: make(map[string]*time.Timer),
	}
}

// Show enqueues a toast and returns its generated id. Unless the toast is
// sticky, a timer removes it after its duration (DefaultDuration when unset).
func (s *Store) Show(t Toast) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}

	t.ID = uuid.NewString()
	if !t.Sticky && t.Duration <= 0 {
		t.Duration = DefaultDuration
	}
	if t.Kind == "" {
		t.Kind = Info
	}

	s.order = append(s.order, t.ID)
	s.toasts[t.ID] = t

	if !t.Sticky {
		id := t.ID
		s.timers[id] = time.AfterFunc(t.Duration, func() { s.Hide(id) })
	}
	return t.ID
}

// Hide removes a toast and cancels its timer. Hiding an unknown or
// already-hidden id is a no-op.
func (s *Store) Hide(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.toasts[id]; !ok {
		return
	}
	delete(s.toasts, id)
	if tm, ok := s.timers[id]; ok {
		tm.Stop()
		delete(s.timers, id)
	}
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Active returns the live toasts in insertion order.
func (s *Store) Active() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.toasts[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Close stops every pending timer and drops all toasts. The store refuses new
// toasts afterwards; timers never fire on a torn-down store.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, tm := range s.timers {
		tm.Stop()
		delete(s.timers, id)
	}
	s.toasts = make(map[string]Toast)
	s.order = nil
}
