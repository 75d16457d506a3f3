// Package selection tracks the compare and favorite id sets.
//
// The compare set holds at most CompareLimit ids and evicts the oldest
// insertion first. The favorite set is unbounded. Both hold ids only; callers
// resolve live records through the store. A Manager is not safe for
// concurrent use.
package selection

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// CompareLimit is the maximum number of plans compared side by side.
const CompareLimit = 4

// Snapshot is the persisted form of both sets.
type Snapshot struct {
	Compare   []string `json:"compare"`
	Favorites []string `json:"favorites"`
}

// Manager owns the compare and favorite sets.
type Manager struct {
	compare   *orderedmap.OrderedMap[string, struct{}]
	favorites *orderedmap.OrderedMap[string, struct{}]
}

// NewManager returns a Manager with both sets empty.
func NewManager() *Manager {
	return &Manager{
		compare:   orderedmap.NewOrderedMap[string, struct{}](),
		favorites: orderedmap.NewOrderedMap[string, struct{}](),
	}
}

// ToggleCompare adds id to the compare set, or removes it if present.
// It reports whether id is selected afterwards and which id, if any, was
// evicted to stay within CompareLimit.
func (m *Manager) ToggleCompare(id string) (selected bool, evicted string) {
	if _, ok := m.compare.Get(id); ok {
		m.compare.Delete(id)
		return false, ""
	}

	if m.compare.Len() >= CompareLimit {
		oldest := m.compare.Front()
		evicted = oldest.Key
		m.compare.Delete(evicted)
	}
	m.compare.Set(id, struct{}{})
	return true, evicted
}

// ClearCompare empties the compare set in one step.
func (m *Manager) ClearCompare() {
	m.compare = orderedmap.NewOrderedMap[string, struct{}]()
}

// ToggleFavorite adds id to the favorites, or removes it if present.
// It reports whether id is a favorite afterwards.
func (m *Manager) ToggleFavorite(id string) bool {
	if _, ok := m.favorites.Get(id); ok {
		m.favorites.Delete(id)
		return false
	}
	m.favorites.Set(id, struct{}{})
	return true
}

// Prune drops id from both sets. Unknown ids are ignored.
func (m *Manager) Prune(id string) {
	m.compare.Delete(id)
	m.favorites.Delete(id)
}

// CompareIDs returns the compare set, oldest insertion first.
func (m *Manager) CompareIDs() []string {
	return m.compare.Keys()
}

// FavoriteIDs returns the favorites in the order they were marked.
func (m *Manager) FavoriteIDs() []string {
	return m.favorites.Keys()
}

// IsCompared reports whether id is in the compare set.
func (m *Manager) IsCompared(id string) bool {
	_, ok := m.compare.Get(id)
	return ok
}

// IsFavorite reports whether id is a favorite.
func (m *Manager) IsFavorite(id string) bool {
	_, ok := m.favorites.Get(id)
	return ok
}

// Snapshot captures both sets.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Compare:   m.CompareIDs(),
		Favorites: m.FavoriteIDs(),
	}
}

// Restore replaces both sets with s. Blank and repeated ids are dropped and
// only the last CompareLimit compare ids are kept.
func (m *Manager) Restore(s Snapshot) {
	m.compare = orderedmap.NewOrderedMap[string, struct{}]()
	for _, id := range s.Compare {
		if strings.TrimSpace(id) == "" || m.IsCompared(id) {
			continue
		}
		m.ToggleCompare(id)
	}

	m.favorites = orderedmap.NewOrderedMap[string, struct{}]()
	for _, id := range s.Favorites {
		if strings.TrimSpace(id) == "" {
			continue
		}
		m.favorites.Set(id, struct{}{})
	}
}
