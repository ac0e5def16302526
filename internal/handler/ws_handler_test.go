package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"chatrelay/internal/app/chat"
)

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) chat.Envelope {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}

	var envelope chat.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode event %q: %v", raw, err)
	}
	return envelope
}

func readEventNamed(t *testing.T, conn *websocket.Conn, event string) chat.Envelope {
	t.Helper()

	// Skip unrelated broadcasts (e.g. presence updates from other tests' connections).
	for i := 0; i < 10; i++ {
		envelope := readEvent(t, conn)
		if envelope.Event == event {
			return envelope
		}
	}

	t.Fatalf("never received %q", event)
	return chat.Envelope{}
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()

	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %q data: %v", event, err)
	}
	envelope := chat.Envelope{Event: event, Data: encoded}

	raw, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal %q envelope: %v", event, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatalf("write %q: %v", event, err)
	}
}

func TestWebSocketHandshakeEndToEnd(t *testing.T) {
	deps := testDeps(t)
	server := httptest.NewServer(Router(deps))
	defer server.Close()

	conn := dialWS(t, server)

	sendEvent(t, conn, chat.EventHello, chat.HelloPayload{Name: "alice", Color: "#336699"})

	if got := readEvent(t, conn).Event; got != chat.EventChannels {
		t.Fatalf("first event = %q, want %q", got, chat.EventChannels)
	}
	if got := readEvent(t, conn).Event; got != chat.EventHistory {
		t.Fatalf("second event = %q, want %q", got, chat.EventHistory)
	}

	authEnvelope := readEvent(t, conn)
	if authEnvelope.Event != chat.EventAuthOK {
		t.Fatalf("third event = %q, want %q", authEnvelope.Event, chat.EventAuthOK)
	}

	var authOK chat.AuthOKPayload
	if err := json.Unmarshal(authEnvelope.Data, &authOK); err != nil {
		t.Fatal(err)
	}
	if authOK.Name != "alice" || authOK.ChannelID != chat.DefaultChannelID {
		t.Fatalf("unexpected auth:ok: %+v", authOK)
	}

	if got := readEvent(t, conn).Event; got != chat.EventPresenceList {
		t.Fatalf("fourth event = %q, want %q", got, chat.EventPresenceList)
	}
}

func TestWebSocketInviteRejectionClosesConnection(t *testing.T) {
	deps := testDeps(t)
	deps.Config.InviteCode = "sesame"
	deps.Hub = chat.NewHub(deps.Config.InviteCode)

	server := httptest.NewServer(Router(deps))
	defer server.Close()

	conn := dialWS(t, server)

	sendEvent(t, conn, chat.EventHello, chat.HelloPayload{Invite: "wrong"})

	envelope := readEventNamed(t, conn, chat.EventAuthError)
	var authErr chat.AuthErrorPayload
	if err := json.Unmarshal(envelope.Data, &authErr); err != nil {
		t.Fatal(err)
	}
	if authErr.Message == "" {
		t.Fatal("auth:error carried no message")
	}

	// The server must follow up with a close frame, not more events.
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed after auth:error")
	}
}

func TestWebSocketMessageFanOut(t *testing.T) {
	deps := testDeps(t)
	server := httptest.NewServer(Router(deps))
	defer server.Close()

	alice := dialWS(t, server)
	bob := dialWS(t, server)

	sendEvent(t, alice, chat.EventHello, chat.HelloPayload{Name: "alice"})
	readEventNamed(t, alice, chat.EventAuthOK)
	sendEvent(t, bob, chat.EventHello, chat.HelloPayload{Name: "bob"})
	readEventNamed(t, bob, chat.EventAuthOK)

	sendEvent(t, alice, chat.EventMessage, chat.MessagePayload{Text: "hi bob"})

	envelope := readEventNamed(t, bob, chat.EventMessage)
	var msg chat.Message
	if err := json.Unmarshal(envelope.Data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Author != "alice" || msg.Text != "hi bob" {
		t.Fatalf("unexpected fan-out message: %+v", msg)
	}
}
