package chat

import "sync"

const (
	// VoiceRoomCapacity is the hard membership limit per voice room.
	// Join attempts beyond it are rejected, never queued.
	VoiceRoomCapacity = 4

	// DefaultVoiceRoom is used when a join request names no room.
	DefaultVoiceRoom = "general"
)

// RoomRegistry tracks voice room membership. Rooms are created lazily on
// first join and destroyed as soon as their membership becomes empty. One
// mutex spans the whole room map so the capacity invariant holds under
// concurrent joins to the same room.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[string]map[string]struct{}
}

// NewRoomRegistry constructs an empty RoomRegistry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to the room, creating the room if absent. It
// returns the other members currently in the room and true on success, or
// nil and false when the room is already at capacity. Joining a room the
// connection is already a member of succeeds without growing the membership.
func (r *RoomRegistry) Join(room, connectionID string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if ok {
		if _, isMember := members[connectionID]; !isMember && len(members) >= VoiceRoomCapacity {
			return nil, false
		}
	} else {
		// Create the room only once the join is known to succeed, so a
		// denied join never leaves an empty room behind.
		members = make(map[string]struct{})
		r.rooms[room] = members
	}

	members[connectionID] = struct{}{}

	peers := make([]string, 0, len(members)-1)
	for id := range members {
		if id != connectionID {
			peers = append(peers, id)
		}
	}

	return peers, true
}

// Leave removes the connection from the room regardless of prior membership
// and destroys the room once empty. It returns the remaining members and
// whether the connection was actually removed.
func (r *RoomRegistry) Leave(room, connectionID string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.leaveLocked(room, connectionID)
}

// CleanupConnection removes the connection from every room it is a member
// of, destroying rooms left empty. It returns the remaining members per
// affected room so the caller can notify them. Iterating all rooms keeps the
// cleanup agnostic to how many rooms a connection may belong to.
func (r *RoomRegistry) CleanupConnection(connectionID string) map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	affected := make(map[string][]string)
	for room, members := range r.rooms {
		if _, ok := members[connectionID]; !ok {
			continue
		}
		remaining, _ := r.leaveLocked(room, connectionID)
		affected[room] = remaining
	}

	return affected
}

// Members returns the current membership of a room, or nil for an unknown room.
func (r *RoomRegistry) Members(room string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	return out
}

func (r *RoomRegistry) leaveLocked(room, connectionID string) ([]string, bool) {
	members, ok := r.rooms[room]
	if !ok {
		return nil, false
	}

	if _, isMember := members[connectionID]; !isMember {
		return nil, false
	}

	delete(members, connectionID)

	if len(members) == 0 {
		delete(r.rooms, room)
		return nil, true
	}

	remaining := make([]string, 0, len(members))
	for id := range members {
		remaining = append(remaining, id)
	}
	return remaining, true
}
