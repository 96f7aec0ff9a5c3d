// Package popup maintains the subset of notifications currently shown as
// transient popups and applies the capacity policy.
package popup

import "sync"

// EvictionPolicy selects which existing popup makes room when the popup
// list is at capacity.
type EvictionPolicy int

const (
	// EvictNewest dismisses the most-recently-admitted popup.
	EvictNewest EvictionPolicy = iota
	// EvictOldest dismisses the oldest popup.
	EvictOldest
)

// String returns the string representation of the eviction policy.
func (p EvictionPolicy) String() string {
	switch p {
	case EvictNewest:
		return "newest"
	case EvictOldest:
		return "oldest"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config string to an EvictionPolicy. Unknown values
// fall back to EvictNewest.
func ParsePolicy(s string) EvictionPolicy {
	if s == "oldest" {
		return EvictOldest
	}
	return EvictNewest
}

// Manager holds the ids of currently-visible popups in admission order.
// It holds ids only; the notification store owns the entities.
type Manager struct {
	mu     sync.RWMutex
	order  []uint32
	policy EvictionPolicy
}

// NewManager creates a Manager with the given eviction policy.
func NewManager(policy EvictionPolicy) *Manager {
	return &Manager{policy: policy}
}

// Admit applies the capacity policy and admits id if allowed.
//
// With max <= 0, popups are disabled: nothing is evicted and the id is
// not admitted. At or above capacity (max > 0), exactly one existing
// popup is evicted per the configured policy before the new one is
// admitted. The evicted id, if any, is returned so the caller can drive
// its dismissal.
func (m *Manager) Admit(id uint32, max int) (evicted uint32, didEvict, admitted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if max <= 0 {
		return 0, false, false
	}

	if len(m.order) >= max {
		var idx int
		if m.policy == EvictOldest {
			idx = 0
		} else {
			idx = len(m.order) - 1
		}
		evicted = m.order[idx]
		m.order = append(m.order[:idx], m.order[idx+1:]...)
		didEvict = true
	}

	m.order = append(m.order, id)
	return evicted, didEvict, true
}

// Remove takes id out of the popup set. Returns whether it was present.
func (m *Manager) Remove(id uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is currently a popup.
func (m *Manager) Contains(id uint32) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, oid := range m.order {
		if oid == id {
			return true
		}
	}
	return false
}

// IDs returns the popup ids in admission order.
func (m *Manager) IDs() []uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uint32, len(m.order))
	copy(ids, m.order)
	return ids
}

// Count returns the number of current popups.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
