package chat

import "sync"

// DefaultChannelID is the channel every new session starts in.
const DefaultChannelID = "general"

// HistoryLimit caps the per-channel message backlog. Once exceeded, the
// oldest entries are evicted first.
const HistoryLimit = 200

// Channel is a static named chat scope. The catalog is fixed at startup;
// there is no dynamic channel creation.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Channels is the static channel catalog sent to every authenticated client.
var Channels = []Channel{
	{ID: "general", Name: "General"},
	{ID: "gaming", Name: "Gaming"},
	{ID: "music", Name: "Music"},
	{ID: "memes", Name: "Memes"},
}

// HistoryStore keeps the bounded per-channel message logs. One mutex guards
// all logs and also serializes append-then-deliver, so the broadcast order
// observed by clients always equals the append order within a channel.
type HistoryStore struct {
	mu   sync.Mutex
	logs map[string][]Message
}

// NewHistoryStore constructs a HistoryStore with an empty log per catalog channel.
func NewHistoryStore() *HistoryStore {
	logs := make(map[string][]Message, len(Channels))
	for _, channel := range Channels {
		logs[channel.ID] = nil
	}

	return &HistoryStore{logs: logs}
}

// Known reports whether the channel id is part of the catalog.
func (s *HistoryStore) Known(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.logs[channelID]
	return ok
}

// Publish appends the message to the channel's log, evicting the oldest
// entries beyond HistoryLimit, and invokes deliver while the log is still
// locked. It returns false without calling deliver when the channel is
// unknown. Concurrent publishers to the same channel therefore cannot
// interleave their append and their broadcast.
func (s *HistoryStore) Publish(channelID string, msg Message, deliver func(Message)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[channelID]
	if !ok {
		return false
	}

	log = append(log, msg)
	if len(log) > HistoryLimit {
		log = log[len(log)-HistoryLimit:]
	}
	s.logs[channelID] = log

	if deliver != nil {
		deliver(msg)
	}

	return true
}

// Replay returns a copy of the channel's current log, oldest first, or an
// empty slice for an unknown channel.
func (s *HistoryStore) Replay(channelID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[channelID]

	out := make([]Message, len(log))
	copy(out, log)
	return out
}
