package elevenlabs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBuildWSURL(t *testing.T) {
	testCases := []struct {
		name    string
		baseURL string
		path    string
		params  url.Values
		want    string
	}{
		{
			name:    "https upgrades to wss",
			baseURL: "https://api.elevenlabs.io",
			path:    "/v1/text-to-speech/v1/stream-input",
			want:    "wss://api.elevenlabs.io/v1/text-to-speech/v1/stream-input",
		},
		{
			name:    "http upgrades to ws",
			baseURL: "http://localhost:8080",
			path:    "/v1/stream",
			want:    "ws://localhost:8080/v1/stream",
		},
		{
			name:    "ws scheme passes through",
			baseURL: "wss://api.elevenlabs.io",
			path:    "/v1/stream",
			want:    "wss://api.elevenlabs.io/v1/stream",
		},
		{
			name:    "query parameters appended",
			baseURL: "https://api.elevenlabs.io",
			path:    "/v1/stream",
			params:  url.Values{"model_id": {"eleven_turbo_v2"}},
			want:    "wss://api.elevenlabs.io/v1/stream?model_id=eleven_turbo_v2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := buildWSURL(tc.baseURL, tc.path, tc.params)
			if err != nil {
				t.Fatalf("buildWSURL error: %v", err)
			}
			if got != tc.want {
				t.Errorf("buildWSURL = %q, want %q", got, tc.want)
			}
		})
	}
}

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsTestServer upgrades every request and hands the connection to fn.
func wsTestServer(t *testing.T, fn func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		fn(conn)
	}))
}

// wsURL converts an httptest server URL to a ws:// URL.
func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSConnLifecycle(t *testing.T) {
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"hello": "world"}`))
		// Hold until the client closes.
		conn.ReadMessage()
	})
	defer srv.Close()

	w, err := dialWS(context.Background(), wsURL(srv), nil, ttsProtocol{})
	if err != nil {
		t.Fatalf("dialWS error: %v", err)
	}
	if w.currentState() != stateConnected {
		t.Errorf("state = %s, want connected", w.currentState())
	}

	for msg, err := range w.messages() {
		if err != nil {
			t.Fatalf("messages error: %v", err)
		}
		if string(msg.Data) != `{"hello": "world"}` {
			t.Errorf("Data = %q", msg.Data)
		}
		if msg.Kind != KindEvent {
			t.Errorf("Kind = %d, want KindEvent", msg.Kind)
		}
		if msg.Binary {
			t.Error("text frame reported as binary")
		}
		break
	}

	// Breaking out of the range abandons the sequence, which must close
	// the connection.
	deadline := time.After(2 * time.Second)
	for w.currentState() != stateDisconnected {
		select {
		case <-deadline:
			t.Fatal("connection not closed after sequence abandoned")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	if err := w.send([]byte("x"), false); err == nil {
		t.Error("send on closed connection should fail")
	}
	if err := w.close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestWSConnSingleConsumer(t *testing.T) {
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})
	defer srv.Close()

	w, err := dialWS(context.Background(), wsURL(srv), nil, ttsProtocol{})
	if err != nil {
		t.Fatalf("dialWS error: %v", err)
	}
	defer w.close()

	w.consumed.Store(true)
	var gotErr error
	for _, err := range w.messages() {
		gotErr = err
		break
	}
	if gotErr == nil {
		t.Fatal("second consumer should get an error")
	}
	if !strings.Contains(gotErr.Error(), "already consumed") {
		t.Errorf("error = %v", gotErr)
	}
}

func TestWSConnEndsOnPeerClose(t *testing.T) {
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"n": 1}`))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	})
	defer srv.Close()

	w, err := dialWS(context.Background(), wsURL(srv), nil, ttsProtocol{})
	if err != nil {
		t.Fatalf("dialWS error: %v", err)
	}
	defer w.close()

	var count int
	for _, err := range w.messages() {
		if err != nil {
			t.Fatalf("messages error: %v", err)
		}
		count++
	}
	if count != 1 {
		t.Errorf("received %d messages, want 1", count)
	}
}

func TestWSConnSurfacesAbnormalDrop(t *testing.T) {
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"n": 1}`))
		// Kill the TCP connection without a close frame.
		conn.UnderlyingConn().Close()
	})
	defer srv.Close()

	// The drop must surface as an error every time, never as a clean
	// end of stream, and never before the buffered frame.
	for i := 0; i < 20; i++ {
		w, err := dialWS(context.Background(), wsURL(srv), nil, ttsProtocol{})
		if err != nil {
			t.Fatalf("dialWS error: %v", err)
		}

		var frames int
		var gotErr error
		for msg, err := range w.messages() {
			if err != nil {
				gotErr = err
				break
			}
			if string(msg.Data) != `{"n": 1}` {
				t.Errorf("Data = %q", msg.Data)
			}
			frames++
		}
		w.close()

		if frames != 1 {
			t.Fatalf("run %d: received %d frames before the error, want 1", i, frames)
		}
		if gotErr == nil {
			t.Fatalf("run %d: dropped connection ended the sequence without an error", i)
		}
		e, ok := AsError(gotErr)
		if !ok || e.Kind != ErrKindWebSocket {
			t.Fatalf("run %d: error = %v, want websocket kind", i, gotErr)
		}
	}
}

func TestDialWSHandshakeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "nope"}`))
	}))
	defer srv.Close()

	_, err := dialWS(context.Background(), wsURL(srv), nil, ttsProtocol{})
	if err == nil {
		t.Fatal("expected handshake error")
	}
	e, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Kind != ErrKindWebSocket {
		t.Errorf("Kind = %q, want websocket", e.Kind)
	}
	if e.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", e.Status)
	}
	if !strings.Contains(e.Body, "nope") {
		t.Errorf("Body = %q, want the rejection payload", e.Body)
	}
}

func TestWSConnSendSerialized(t *testing.T) {
	received := make(chan string, 20)
	srv := wsTestServer(t, func(conn *websocket.Conn) {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				close(received)
				return
			}
			received <- string(data)
		}
	})
	defer srv.Close()

	w, err := dialWS(context.Background(), wsURL(srv), nil, ttsProtocol{})
	if err != nil {
		t.Fatalf("dialWS error: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			w.sendJSON(map[string]any{"seq": true})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	w.close()

	var count int
	for range received {
		count++
	}
	if count != 10 {
		t.Errorf("server received %d frames, want 10", count)
	}
}
