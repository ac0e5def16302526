package chat

import (
	"bytes"
	"encoding/json"
	"time"

	"chatrelay/internal/pkg/randx"
)

// Wire event names consumed from clients.
const (
	EventHello     = "hello"
	EventJoin      = "join"
	EventMessage   = "message"
	EventRTCJoin   = "rtc:join"
	EventRTCLeave  = "rtc:leave"
	EventRTCOffer  = "rtc:offer"
	EventRTCAnswer = "rtc:answer"
	EventRTCIce    = "rtc:ice"
)

// Wire event names produced by the server.
const (
	EventChannels      = "channels"
	EventHistory       = "history"
	EventAuthOK        = "auth:ok"
	EventAuthError     = "auth:error"
	EventPresenceList  = "presence:list"
	EventRTCPeers      = "rtc:peers"
	EventRTCPeerJoined = "rtc:peer_joined"
	EventRTCPeerLeft   = "rtc:peer_left"
	EventRTCJoinDenied = "rtc:join_denied"
)

// Message kinds.
const (
	KindText    = "text"
	KindSticker = "sticker"
)

// Input length limits applied by the handlers.
const (
	MaxNameLength     = 32
	MaxKindLength     = 16
	MaxTextLength     = 2000
	MaxURLLength      = 400
	MaxRoomNameLength = 32
)

// Envelope is the framing for every event exchanged over a connection.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Message is one immutable chat message. Exactly one of Text and URL is
// populated, depending on Kind.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channelId"`
	Author    string `json:"author"`
	Color     string `json:"color"`
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// NewMessage constructs an immutable Message with a fresh time-ordered id.
// The field matching the kind must already be sanitized by the caller; the
// other one is cleared here so the exactly-one invariant holds structurally.
func NewMessage(channelID, author, color, kind, text, url string) Message {
	if kind == KindSticker {
		text = ""
	} else {
		url = ""
	}

	return Message{
		ID:        randx.MessageID(),
		ChannelID: channelID,
		Author:    author,
		Color:     color,
		Kind:      kind,
		Text:      text,
		URL:       url,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// HelloPayload is the handshake sent by a client right after connecting.
type HelloPayload struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Invite string `json:"invite"`
}

// JoinPayload switches the session's current channel.
type JoinPayload struct {
	ChannelID string `json:"channelId"`
}

// MessagePayload is a chat message submission.
type MessagePayload struct {
	Type string `json:"type"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

// RoomPayload addresses a voice room by name for join/leave requests.
type RoomPayload struct {
	Room string `json:"room"`
}

// SignalPayload carries an offer, answer, or ICE candidate addressed to a
// specific connection. SDP and Candidate stay opaque raw JSON; the server
// forwards them without inspection.
type SignalPayload struct {
	To        string          `json:"to"`
	Room      string          `json:"room"`
	SDP       json.RawMessage `json:"sdp,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// SignalForward is the relayed form of a SignalPayload, tagged with the
// sender's connection id instead of the recipient's.
type SignalForward struct {
	From      string          `json:"from"`
	Room      string          `json:"room"`
	SDP       json.RawMessage `json:"sdp,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// HistoryPayload replays a channel's backlog to a single session.
type HistoryPayload struct {
	ChannelID string    `json:"channelId"`
	Messages  []Message `json:"messages"`
}

// AuthOKPayload confirms a successful handshake with the effective identity.
type AuthOKPayload struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	ChannelID string `json:"channelId"`
}

// AuthErrorPayload precedes the forced disconnect after a failed handshake.
type AuthErrorPayload struct {
	Message string `json:"message"`
}

// RTCPeersPayload answers a successful voice room join with the existing peers.
type RTCPeersPayload struct {
	Room  string   `json:"room"`
	Peers []string `json:"peers"`
}

// RTCPeerEventPayload notifies room members that a peer joined or left.
type RTCPeerEventPayload struct {
	Room   string `json:"room"`
	PeerID string `json:"peerId"`
}

// RTCJoinDeniedPayload tells the requester why a voice room join was refused.
type RTCJoinDeniedPayload struct {
	Reason string `json:"reason"`
}

var jsonNull = []byte("null")

// rawPresent reports whether an opaque raw JSON field actually carries a value.
func rawPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, jsonNull)
}

// encodeEvent wraps data in an Envelope and marshals it for the wire.
func encodeEvent(event string, data any) ([]byte, error) {
	var raw json.RawMessage

	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	return json.Marshal(Envelope{Event: event, Data: raw})
}
