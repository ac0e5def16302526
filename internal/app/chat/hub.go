/*
This file defines the Hub, the single in-memory authority orchestrating every
connection: handshake authentication, channel chat, presence, voice room
membership, and point-to-point signaling relay.
*/
package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"chatrelay/internal/pkg/logx"
)

// Conn is the minimal per-connection surface the Hub needs. *Client
// implements it over a WebSocket; tests inject a recording fake.
type Conn interface {
	// ID returns the opaque connection identifier.
	ID() string

	// Send queues an already-encoded event for delivery. It must never block.
	Send(data []byte)

	// Close tears the connection down after flushing queued events.
	Close()
}

// Hub owns the shared registries and routes every inbound event. Malformed
// or policy-violating input is dropped with no signal to the sender; the only
// surfaced-and-fatal case is an invite mismatch during the handshake.
type Hub struct {
	invite string

	mu    sync.RWMutex
	conns map[string]Conn

	sessions *SessionRegistry
	history  *HistoryStore
	presence *PresenceTracker
	voice    *RoomRegistry

	logger zerolog.Logger
}

// NewHub constructs a Hub. An empty inviteCode leaves the server open.
func NewHub(inviteCode string) *Hub {
	return &Hub{
		invite:   inviteCode,
		conns:    make(map[string]Conn),
		sessions: NewSessionRegistry(),
		history:  NewHistoryStore(),
		presence: NewPresenceTracker(),
		voice:    NewRoomRegistry(),
		logger:   logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Connect registers a new connection and creates its default session.
func (h *Hub) Connect(c Conn) {
	h.sessions.Create(c.ID())

	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()

	h.logger.Info().Str("connection_id", c.ID()).Msg("Connection registered.")
}

// Disconnect tears down every trace of the connection: its session, its
// presence entry (with a roster re-broadcast when it was listed), and its
// membership in any voice room (with peer_left notifications).
func (h *Hub) Disconnect(c Conn) {
	id := c.ID()

	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()

	h.sessions.Delete(id)

	if roster, wasListed := h.presence.Remove(id); wasListed {
		h.broadcast(EventPresenceList, roster)
	}

	for room, remaining := range h.voice.CleanupConnection(id) {
		h.notifyPeers(remaining, EventRTCPeerLeft, RTCPeerEventPayload{Room: room, PeerID: id})
	}

	h.logger.Info().Str("connection_id", id).Msg("Connection cleaned up.")
}

// Route dispatches one inbound frame. Unknown events and malformed payloads
// are dropped silently per the permissive-drop contract; a single bad
// connection must never disturb shared state.
func (h *Hub) Route(c Conn, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.logger.Debug().Str("connection_id", c.ID()).Err(err).Msg("Dropping undecodable frame.")
		return
	}

	switch envelope.Event {
	case EventHello:
		h.handleHello(c, envelope.Data)
	case EventJoin:
		h.handleJoin(c, envelope.Data)
	case EventMessage:
		h.handleMessage(c, envelope.Data)
	case EventRTCJoin:
		h.handleRTCJoin(c, envelope.Data)
	case EventRTCLeave:
		h.handleRTCLeave(c, envelope.Data)
	case EventRTCOffer:
		h.handleSignal(EventRTCOffer, c, envelope.Data)
	case EventRTCAnswer:
		h.handleSignal(EventRTCAnswer, c, envelope.Data)
	case EventRTCIce:
		h.handleSignal(EventRTCIce, c, envelope.Data)
	default:
		h.logger.Debug().Str("connection_id", c.ID()).Str("event", envelope.Event).Msg("Dropping unknown event.")
	}
}

// handleHello runs the handshake: sanitize identity, check the invite code,
// then reply with the catalog, the current channel backlog, the auth
// confirmation, and finally publish the updated roster to everyone.
func (h *Hub) handleHello(c Conn, data json.RawMessage) {
	var payload HelloPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			h.logger.Debug().Str("connection_id", c.ID()).Err(err).Msg("Dropping invalid hello payload.")
			return
		}
	}

	name := ClampString(payload.Name, MaxNameLength)
	if name == "" {
		name = DefaultName
	}
	color := NormalizeColor(payload.Color)

	if h.invite != "" && payload.Invite != h.invite {
		h.logger.Warn().Str("connection_id", c.ID()).Msg("Handshake rejected: invite mismatch. Closing connection.")
		h.sendTo(c, EventAuthError, AuthErrorPayload{Message: "Invalid invite code."})
		c.Close()
		return
	}

	h.sessions.Update(c.ID(), name, color)

	session, ok := h.sessions.Get(c.ID())
	if !ok {
		// Disconnect raced the handshake.
		return
	}

	h.sendTo(c, EventChannels, Channels)
	h.sendTo(c, EventHistory, HistoryPayload{
		ChannelID: session.ChannelID,
		Messages:  h.history.Replay(session.ChannelID),
	})
	h.sendTo(c, EventAuthOK, AuthOKPayload{
		Name:      session.Name,
		Color:     session.Color,
		ChannelID: session.ChannelID,
	})

	roster := h.presence.Set(c.ID(), PresenceEntry{ID: c.ID(), Name: session.Name, Color: session.Color})
	h.broadcast(EventPresenceList, roster)

	h.logger.Info().Str("connection_id", c.ID()).Str("name", session.Name).Msg("Handshake completed.")
}

// handleJoin switches the session's current channel and replays that
// channel's backlog to the requesting connection only.
func (h *Hub) handleJoin(c Conn, data json.RawMessage) {
	var payload JoinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	if !h.history.Known(payload.ChannelID) {
		return
	}

	h.sessions.SetChannel(c.ID(), payload.ChannelID)

	h.sendTo(c, EventHistory, HistoryPayload{
		ChannelID: payload.ChannelID,
		Messages:  h.history.Replay(payload.ChannelID),
	})
}

// handleMessage validates a submission, appends it to the sender's current
// channel, and broadcasts it to every connection. Live delivery is global by
// contract; channel membership only scopes replay.
func (h *Hub) handleMessage(c Conn, data json.RawMessage) {
	var payload MessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	kind := ClampString(payload.Type, MaxKindLength)
	if kind == "" {
		kind = KindText
	}
	if kind != KindText && kind != KindSticker {
		return
	}

	text := ClampString(payload.Text, MaxTextLength)
	url := ClampString(payload.URL, MaxURLLength)

	if kind == KindText && text == "" {
		return
	}
	if kind == KindSticker && url == "" {
		return
	}

	session, ok := h.sessions.Get(c.ID())
	if !ok {
		return
	}

	msg := NewMessage(session.ChannelID, session.Name, session.Color, kind, text, url)

	h.history.Publish(session.ChannelID, msg, func(m Message) {
		h.broadcast(EventMessage, m)
	})
}

// handleRTCJoin admits the connection into a voice room or answers with a
// denial when the room is at capacity.
func (h *Hub) handleRTCJoin(c Conn, data json.RawMessage) {
	room := h.roomName(data)

	peers, ok := h.voice.Join(room, c.ID())
	if !ok {
		h.sendTo(c, EventRTCJoinDenied, RTCJoinDeniedPayload{Reason: "Voice room is full."})
		return
	}

	h.sendTo(c, EventRTCPeers, RTCPeersPayload{Room: room, Peers: peers})
	h.notifyPeers(peers, EventRTCPeerJoined, RTCPeerEventPayload{Room: room, PeerID: c.ID()})
}

// handleRTCLeave removes the connection from a voice room. Leaving a room
// the connection never joined is a no-op.
func (h *Hub) handleRTCLeave(c Conn, data json.RawMessage) {
	room := h.roomName(data)

	remaining, removed := h.voice.Leave(room, c.ID())
	if !removed {
		return
	}

	h.notifyPeers(remaining, EventRTCPeerLeft, RTCPeerEventPayload{Room: room, PeerID: c.ID()})
}

// handleSignal forwards an offer, answer, or ICE candidate to the addressed
// connection only. The server never validates that sender and recipient share
// a room; the room tag is advisory and consumed client-side.
func (h *Hub) handleSignal(kind string, c Conn, data json.RawMessage) {
	var payload SignalPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	if payload.To == "" {
		return
	}

	forward := SignalForward{
		From: c.ID(),
		Room: sanitizeRoomName(payload.Room),
	}

	switch kind {
	case EventRTCIce:
		if !rawPresent(payload.Candidate) {
			return
		}
		forward.Candidate = payload.Candidate
	default:
		if !rawPresent(payload.SDP) {
			return
		}
		forward.SDP = payload.SDP
	}

	h.mu.RLock()
	target, ok := h.conns[payload.To]
	h.mu.RUnlock()
	if !ok {
		return
	}

	h.sendTo(target, kind, forward)
}

// Shutdown closes every live connection. Intended for server stop only.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := make([]Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[string]Conn)
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}

	h.logger.Info().Int("connections", len(conns)).Msg("Hub shutdown complete.")
}

// roomName extracts and sanitizes the room name from a rtc:join / rtc:leave payload.
func (h *Hub) roomName(data json.RawMessage) string {
	var payload RoomPayload
	if len(data) > 0 {
		// A malformed payload degrades to the default room rather than erroring.
		_ = json.Unmarshal(data, &payload)
	}

	return sanitizeRoomName(payload.Room)
}

func sanitizeRoomName(room string) string {
	room = ClampString(room, MaxRoomNameLength)
	if room == "" {
		room = DefaultVoiceRoom
	}
	return room
}

// sendTo encodes and queues one event for a single connection.
func (h *Hub) sendTo(c Conn, event string, data any) {
	encoded, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to encode event.")
		return
	}

	c.Send(encoded)
}

// broadcast encodes one event and queues it for every live connection.
func (h *Hub) broadcast(event string, data any) {
	encoded, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to encode broadcast event.")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.conns {
		c.Send(encoded)
	}
}

// notifyPeers queues one event for each listed connection id.
func (h *Hub) notifyPeers(peerIDs []string, event string, data any) {
	if len(peerIDs) == 0 {
		return
	}

	encoded, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to encode peer event.")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range peerIDs {
		if c, ok := h.conns[id]; ok {
			c.Send(encoded)
		}
	}
}
