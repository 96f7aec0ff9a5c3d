// Package store owns the set of live notifications, their identifiers,
// and the persisted history file.
package store

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/newor0599/ignis/internal/model"
)

// ErrDuplicateID is returned when adding a notification whose id is
// already held by a live notification.
var ErrDuplicateID = errors.New("notification id already in use")

// Store manages live notifications keyed by their bus id. Ids come from a
// monotonically increasing counter that survives restarts through the
// persistence layer and are never reissued.
type Store struct {
	mu      sync.RWMutex
	byID    map[uint32]*model.Notification
	order   []uint32 // insertion order
	counter uint32

	persistence Persistence
	logger      *slog.Logger
}

// NewStore creates a Store. Persistence may be nil (memory-only, used in
// tests).
func NewStore(persistence Persistence, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		byID:        make(map[uint32]*model.Notification),
		persistence: persistence,
		logger:      logger,
	}
}

// Hydrate loads the persisted history. Rehydrated notifications are never
// popups (no process holds live popups across a restart). The id counter
// resumes from the persisted value, clamped up to the highest stored id
// so ids cannot be reissued against a skewed file.
func (s *Store) Hydrate() error {
	if s.persistence == nil {
		return nil
	}

	snap, err := s.persistence.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter = snap.IDCounter
	for i := range snap.Notifications {
		n := snap.Notifications[i]
		n.Popup = false
		if _, exists := s.byID[n.ID]; exists {
			continue
		}
		s.byID[n.ID] = &n
		s.order = append(s.order, n.ID)
		if n.ID > s.counter {
			s.counter = n.ID
		}
	}

	return nil
}

// NextID allocates the next notification id. Ids currently occupied by a
// live notification (an externally supplied replaces_id can run ahead of
// the counter) are skipped.
func (s *Store) NextID() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		s.counter++
		if _, taken := s.byID[s.counter]; !taken {
			return s.counter
		}
	}
}

// Counter returns the current value of the id counter.
func (s *Store) Counter() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counter
}

// Add inserts a notification and persists the new state.
func (s *Store) Add(n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[n.ID]; exists {
		return ErrDuplicateID
	}

	s.byID[n.ID] = n
	s.order = append(s.order, n.ID)
	return s.syncLocked()
}

// Get returns the live notification with the given id, or nil.
func (s *Store) Get(id uint32) *model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Remove deletes the notification with the given id, persists the new
// state, and returns the removed entity. A miss returns nil.
func (s *Store) Remove(id uint32) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.byID[id]
	if !exists {
		return nil, nil
	}

	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if err := s.syncLocked(); err != nil {
		return n, err
	}
	return n, nil
}

// All returns the live notifications in insertion order.
func (s *Store) All() []*model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Notification, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result
}

// Count returns the number of live notifications.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Sync persists the current store contents.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncLocked()
}

// syncLocked serializes the store and rewrites the history file.
// Transient notifications are never written, and records always carry
// popup=false since no popup survives a restart.
// Caller must hold the lock.
func (s *Store) syncLocked() error {
	if s.persistence == nil {
		return nil
	}

	snap := &Snapshot{
		IDCounter:     s.counter,
		Notifications: make([]model.Notification, 0, len(s.order)),
	}
	for _, id := range s.order {
		n := *s.byID[id]
		if n.Transient {
			continue
		}
		n.Popup = false
		snap.Notifications = append(snap.Notifications, n)
	}

	return s.persistence.Save(snap)
}
