package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
)

func TestConversationRecvEvents(t *testing.T) {
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "conversation_initiation_metadata", "conversation_initiation_metadata_event": {"conversation_id": "c1"}}`))
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "audio", "audio": {"chunk": "`+b64("agent-audio")+`"}}`))
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "agent_response", "agent_response_text": "Hi there"}`))
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "user_transcript", "user_transcript_text": "hello agent"}`))
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "interruption"}`))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
	defer srv.Close()

	conv, err := ConnectConversation(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ConnectConversation error: %v", err)
	}
	defer conv.Close()

	var events []*ConversationEvent
	for event, err := range conv.Recv() {
		if err != nil {
			t.Fatalf("Recv error: %v", err)
		}
		events = append(events, event)
	}

	if len(events) != 5 {
		t.Fatalf("received %d events, want 5", len(events))
	}
	if events[0].Type != EventInitiationMetadata {
		t.Errorf("event 0 type = %q", events[0].Type)
	}
	if events[0].Raw == nil {
		t.Error("Raw should carry the full frame")
	}
	if events[1].Type != EventAudio || string(events[1].Audio) != "agent-audio" {
		t.Errorf("event 1 = %+v, want decoded audio", events[1])
	}
	if events[2].AgentResponse != "Hi there" {
		t.Errorf("AgentResponse = %q", events[2].AgentResponse)
	}
	if events[3].UserTranscript != "hello agent" {
		t.Errorf("UserTranscript = %q", events[3].UserTranscript)
	}
	if events[4].Type != EventInterruption {
		t.Errorf("event 4 type = %q", events[4].Type)
	}
}

func TestConversationPingPong(t *testing.T) {
	pong := make(chan map[string]any, 1)
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "ping", "ping_event": {"event_id": 42}}`))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read pong: %v", err)
			return
		}
		var frame map[string]any
		json.Unmarshal(data, &frame)
		pong <- frame
		conn.ReadMessage()
	})
	defer srv.Close()

	conv, err := ConnectConversation(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ConnectConversation error: %v", err)
	}
	defer conv.Close()

	ctx := context.Background()
	for event, err := range conv.Recv() {
		if err != nil {
			t.Fatalf("Recv error: %v", err)
		}
		if event.Type == EventPing {
			if event.PingEventID != 42 {
				t.Errorf("PingEventID = %d, want 42", event.PingEventID)
			}
			if err := conv.SendPong(ctx, event.PingEventID); err != nil {
				t.Fatalf("SendPong error: %v", err)
			}
			break
		}
	}

	frame := <-pong
	if frame["type"] != "pong" {
		t.Errorf("pong type = %v", frame["type"])
	}
	if frame["event_id"] != float64(42) {
		t.Errorf("pong event_id = %v, want 42", frame["event_id"])
	}
}

func TestConversationSendAudio(t *testing.T) {
	frames := make(chan map[string]any, 2)
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				close(frames)
				return
			}
			var frame map[string]any
			json.Unmarshal(data, &frame)
			frames <- frame
		}
	})
	defer srv.Close()

	conv, err := ConnectConversation(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ConnectConversation error: %v", err)
	}

	ctx := context.Background()
	if err := conv.SendAudio(ctx, []byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatalf("SendAudio error: %v", err)
	}
	if err := conv.SendText(ctx, "typed message"); err != nil {
		t.Fatalf("SendText error: %v", err)
	}
	conv.Close()

	audio := <-frames
	if audio["type"] != "user_audio_chunk" {
		t.Errorf("audio frame type = %v", audio["type"])
	}
	if audio["user_audio_chunk"] != "AQID" {
		t.Errorf("user_audio_chunk = %v, want base64 of the bytes", audio["user_audio_chunk"])
	}
	text := <-frames
	if text["type"] != "user_message" || text["text"] != "typed message" {
		t.Errorf("text frame = %v", text)
	}
}

func TestOpenConversationFetchesSignedURL(t *testing.T) {
	wsSrv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type": "conversation_initiation_metadata"}`))
		conn.ReadMessage()
	})
	defer wsSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/convai/conversation/get-signed-url" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("agent_id"); got != "agent1" {
			t.Errorf("agent_id = %q", got)
		}
		json.NewEncoder(w).Encode(SignedURLResponse{SignedURL: wsURL(wsSrv)})
	}))
	defer apiSrv.Close()

	c := NewClient("test-key", WithBaseURL(apiSrv.URL))
	conv, err := c.Agents.OpenConversation(context.Background(), "agent1")
	if err != nil {
		t.Fatalf("OpenConversation error: %v", err)
	}
	defer conv.Close()

	for event, err := range conv.Recv() {
		if err != nil {
			t.Fatalf("Recv error: %v", err)
		}
		if event.Type != EventInitiationMetadata {
			t.Errorf("first event type = %q", event.Type)
		}
		break
	}
}
