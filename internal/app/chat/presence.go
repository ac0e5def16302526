package chat

import "sync"

// PresenceEntry is the public projection of a Session shared with all clients.
type PresenceEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PresenceTracker maps connection ids to public identities for every
// handshake-completed session. Each change yields a full roster snapshot in
// connection insertion order; there are no delta updates.
type PresenceTracker struct {
	mu      sync.Mutex
	entries map[string]PresenceEntry
	order   []string
}

// NewPresenceTracker constructs an empty PresenceTracker.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		entries: make(map[string]PresenceEntry),
	}
}

// Set records or refreshes the entry for the given connection and returns the
// resulting roster. A refreshed entry keeps its original position.
func (t *PresenceTracker) Set(connectionID string, entry PresenceEntry) []PresenceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[connectionID]; !ok {
		t.order = append(t.order, connectionID)
	}
	t.entries[connectionID] = entry

	return t.rosterLocked()
}

// Remove drops the connection's entry and returns the resulting roster plus
// whether the connection was actually present.
func (t *PresenceTracker) Remove(connectionID string) ([]PresenceEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[connectionID]; !ok {
		return t.rosterLocked(), false
	}

	delete(t.entries, connectionID)
	for i, id := range t.order {
		if id == connectionID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	return t.rosterLocked(), true
}

// Roster returns the current full roster snapshot.
func (t *PresenceTracker) Roster() []PresenceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.rosterLocked()
}

func (t *PresenceTracker) rosterLocked() []PresenceEntry {
	roster := make([]PresenceEntry, 0, len(t.order))
	for _, id := range t.order {
		roster = append(roster, t.entries[id])
	}
	return roster
}
