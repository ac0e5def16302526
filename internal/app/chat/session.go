package chat

import "sync"

// Session is the server-side state for one live connection. It is created
// with defaults at connect time, mutated only by that connection's own
// handshake and join events, and destroyed at disconnect.
type Session struct {
	ID        string
	Name      string
	Color     string
	ChannelID string
}

// SessionRegistry holds one Session per live connection, addressable by
// connection id. Every mutator is a silent no-op when the session is already
// gone, since disconnect and in-flight events can race.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionRegistry constructs an empty SessionRegistry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
	}
}

// Create initializes a Session with default identity for the given connection.
func (r *SessionRegistry) Create(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[connectionID] = &Session{
		ID:        connectionID,
		Name:      DefaultName,
		Color:     DefaultColor,
		ChannelID: DefaultChannelID,
	}
}

// Update commits a sanitized identity into the session after a successful
// handshake. Missing sessions are ignored.
func (r *SessionRegistry) Update(connectionID, name, color string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[connectionID]; ok {
		session.Name = name
		session.Color = color
	}
}

// SetChannel switches the session's current channel. Missing sessions are ignored.
func (r *SessionRegistry) SetChannel(connectionID, channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[connectionID]; ok {
		session.ChannelID = channelID
	}
}

// Get returns a copy of the session for the given connection. The second
// return value is false when the session has already been torn down; callers
// must treat that as a no-op, not an error.
func (r *SessionRegistry) Get(connectionID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[connectionID]
	if !ok {
		return Session{}, false
	}

	return *session, true
}

// Delete removes the session at disconnect. Idempotent.
func (r *SessionRegistry) Delete(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, connectionID)
}
