package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// testClient builds a client pointed at a test server with a fast retry
// backoff.
func testClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithRetryBackoff(time.Millisecond),
	}, opts...)
	return NewClient("test-key", opts...)
}

func TestRequestInjectsCredential(t *testing.T) {
	var gotKey, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	var out struct{}
	if err := c.http.get(context.Background(), "/v1/user", &out); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("xi-api-key = %q, want %q", gotKey, "test-key")
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
}

func TestRequestFailsFastWithoutCredential(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL))
	err := c.http.get(context.Background(), "/v1/user", nil)
	if err == nil {
		t.Fatal("expected error with no API key")
	}
	e, ok := AsError(err)
	if !ok || !e.IsAuth() {
		t.Errorf("expected auth error, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server was hit %d times, want 0", hits.Load())
	}
}

func TestRequestRetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"user_id": "u1"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	var out UserResponse
	if err := c.http.get(context.Background(), "/v1/user", &out); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if out.UserID != "u1" {
		t.Errorf("UserID = %q, want %q", out.UserID, "u1")
	}
	if hits.Load() != 3 {
		t.Errorf("server was hit %d times, want 3", hits.Load())
	}
}

func TestRequestDoesNotRetryTerminalStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "voice not found"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	err := c.http.get(context.Background(), "/v1/voices/nope", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	e, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Kind != ErrKindAPI || e.Status != 404 {
		t.Errorf("got kind=%q status=%d, want api/404", e.Kind, e.Status)
	}
	if e.Message != "voice not found" {
		t.Errorf("Message = %q, want extracted detail", e.Message)
	}
	if hits.Load() != 1 {
		t.Errorf("server was hit %d times, want 1", hits.Load())
	}
}

func TestRequestRetryExhaustionSurfacesRateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail": "slow down"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv, WithMaxRetries(2))
	err := c.http.get(context.Background(), "/v1/user", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	e, ok := AsError(err)
	if !ok || !e.IsRateLimit() {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if e.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %s, want 1s", e.RetryAfter)
	}
	if hits.Load() != 3 {
		t.Errorf("server was hit %d times, want 3 (initial + 2 retries)", hits.Load())
	}
}

func TestRequestAuthErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": {"message": "bad key"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	err := c.http.get(context.Background(), "/v1/user", nil)
	e, ok := AsError(err)
	if !ok || !e.IsAuth() {
		t.Fatalf("expected auth error, got %v", err)
	}
	if e.Message != "bad key" {
		t.Errorf("Message = %q, want nested detail.message", e.Message)
	}
	if hits.Load() != 1 {
		t.Errorf("server was hit %d times, want 1", hits.Load())
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := testClient(t, srv, WithMaxRetries(0), WithTimeout(20*time.Millisecond),
		WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	err := c.http.get(context.Background(), "/v1/user", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	e, ok := AsError(err)
	if !ok || !e.IsTimeout() {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestRequestContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	c := testClient(t, srv)
	err := c.http.get(ctx, "/v1/user", nil)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPostStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req TextToSpeechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte("audio-bytes-here"))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	var got []byte
	for chunk, err := range c.http.postStream(context.Background(), "/v1/tts/stream", &TextToSpeechRequest{Text: "hi"}) {
		if err != nil {
			t.Fatalf("stream error: %v", err)
		}
		got = append(got, chunk...)
	}
	if string(got) != "audio-bytes-here" {
		t.Errorf("streamed body = %q", got)
	}
}

func TestPostStreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "bad key"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	var streamErr error
	for _, err := range c.http.postStream(context.Background(), "/v1/tts/stream", &TextToSpeechRequest{Text: "hi"}) {
		streamErr = err
	}
	e, ok := AsError(streamErr)
	if !ok || !e.IsAuth() {
		t.Errorf("expected auth error from stream, got %v", streamErr)
	}
}

func TestPostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model_id"); got != "scribe_v1" {
			t.Errorf("model_id = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "clip.mp3" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		w.Write([]byte(`{"text": "hello"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	fields := map[string]string{"model_id": "scribe_v1"}
	files := []multipartFile{{field: "file", filename: "clip.mp3", reader: strings.NewReader("fake-audio")}}
	var out SpeechToTextResponse
	if err := c.http.postMultipart(context.Background(), "/v1/speech-to-text", fields, files, &out); err != nil {
		t.Fatalf("postMultipart error: %v", err)
	}
	if out.Text != "hello" {
		t.Errorf("Text = %q", out.Text)
	}
}
