// Package rationals enumerates the positive rational numbers.
// This file contains the Observer pattern used to report Skip progress.
package rationals

import (
	"sync"
)

// ProgressReporter receives the normalized progress (0.0 to 1.0) of a long
// Skip. A nil reporter is allowed wherever one is accepted.
type ProgressReporter func(progress float64)

// ProgressUpdate is a progress notification tagged with the slot of the
// sequence that produced it, for consumers tracking several sequences.
type ProgressUpdate struct {
	// Slot identifies the sequence among those running together.
	Slot int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ProgressObserver receives progress notifications.
type ProgressObserver interface {
	// Update is called when progress changes.
	//
	// Parameters:
	//   - slot: The identifier of the reporting sequence.
	//   - progress: The normalized progress value (0.0 to 1.0).
	Update(slot int, progress float64)
}

// ProgressSubject fans progress notifications out to registered observers.
// ProgressSubject is safe for concurrent use.
type ProgressSubject struct {
	observers []ProgressObserver
	mu        sync.RWMutex
}

// NewProgressSubject creates a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{
		observers: make([]ProgressObserver, 0),
	}
}

// Register adds an observer. Observers are notified in registration order.
// A nil observer is ignored.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer; unknown observers are ignored.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends an update to every observer synchronously.
func (s *ProgressSubject) Notify(slot int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, observer := range s.observers {
		observer.Update(slot, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressReporter binds the subject to a slot so it can be handed to
// Sequence.Skip.
func (s *ProgressSubject) AsProgressReporter(slot int) ProgressReporter {
	return func(progress float64) {
		s.Notify(slot, progress)
	}
}
