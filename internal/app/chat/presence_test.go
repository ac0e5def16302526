package chat

import (
	"fmt"
	"testing"
)

func TestPresenceTrackerRosterGrowsAndShrinks(t *testing.T) {
	tr := NewPresenceTracker()

	const n = 5
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("conn-%d", i)
		roster := tr.Set(id, PresenceEntry{ID: id, Name: fmt.Sprintf("user-%d", i), Color: DefaultColor})
		if len(roster) != i+1 {
			t.Fatalf("roster after %d handshakes has %d entries", i+1, len(roster))
		}
	}

	roster, removed := tr.Remove("conn-2")
	if !removed {
		t.Fatal("expected conn-2 to be present")
	}
	if len(roster) != n-1 {
		t.Fatalf("roster after one disconnect has %d entries, want %d", len(roster), n-1)
	}
	for _, entry := range roster {
		if entry.ID == "conn-2" {
			t.Fatal("removed entry still listed")
		}
	}
}

func TestPresenceTrackerInsertionOrder(t *testing.T) {
	tr := NewPresenceTracker()

	tr.Set("a", PresenceEntry{ID: "a", Name: "first"})
	tr.Set("b", PresenceEntry{ID: "b", Name: "second"})
	tr.Set("c", PresenceEntry{ID: "c", Name: "third"})

	// Refreshing an entry keeps its position.
	roster := tr.Set("a", PresenceEntry{ID: "a", Name: "renamed"})

	want := []string{"a", "b", "c"}
	for i, id := range want {
		if roster[i].ID != id {
			t.Fatalf("roster[%d].ID = %q, want %q", i, roster[i].ID, id)
		}
	}
	if roster[0].Name != "renamed" {
		t.Fatalf("refreshed entry not updated: %+v", roster[0])
	}
}

func TestPresenceTrackerRemoveUnknown(t *testing.T) {
	tr := NewPresenceTracker()
	tr.Set("a", PresenceEntry{ID: "a"})

	roster, removed := tr.Remove("ghost")
	if removed {
		t.Fatal("removing an unknown connection must report false")
	}
	if len(roster) != 1 {
		t.Fatalf("roster changed by unknown removal: %d entries", len(roster))
	}
}
