package elevenlabs

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// MessageKind is the classification a protocol handler assigns to an
// inbound streaming message.
type MessageKind int

const (
	// KindEvent is an opaque application event passed through unmodified.
	KindEvent MessageKind = iota
	// KindAck is a subscription acknowledgement.
	KindAck
	// KindControl is a protocol control message. The transport never
	// replies to control messages automatically; both shipped handlers
	// classify everything, pings included, as KindEvent so liveness
	// stays observable by the caller.
	KindControl
)

// ProtocolHandler is the pluggable classification and control logic for
// one streaming use case. The transport depends only on this interface.
type ProtocolHandler interface {
	// Classify assigns a MessageKind to an inbound frame.
	Classify(data []byte) MessageKind

	// CorrelationID extracts a request correlation ID from a frame.
	CorrelationID(data []byte) (string, bool)

	// Topic extracts a subscription topic from a frame.
	Topic(data []byte) (string, bool)

	// BuildSubscribe builds a subscribe control frame for the topics.
	BuildSubscribe(topics []string, id string) []byte

	// BuildUnsubscribe builds an unsubscribe control frame for the topics.
	BuildUnsubscribe(topics []string, id string) []byte
}

// InboundMessage is one raw frame received from the peer, tagged with
// the active protocol handler's classification.
type InboundMessage struct {
	// Data is the raw frame payload.
	Data []byte

	// Binary reports whether the frame was a binary WebSocket message.
	Binary bool

	// Kind is the classification assigned by the protocol handler.
	Kind MessageKind
}

// Connection lifecycle states.
type connState int32

const (
	stateDisconnected connState = iota
	stateConnecting
	stateConnected
	stateClosing
)

func (s connState) String() string {
	switch s {
	case stateDisconnected:
		return "disconnected"
	case stateConnecting:
		return "connecting"
	case stateConnected:
		return "connected"
	case stateClosing:
		return "closing"
	}
	return "unknown"
}

// buildWSURL upgrades the base URL's scheme to its streaming equivalent
// (https→wss, http→ws) and appends the query parameters.
func buildWSURL(baseURL, path string, params url.Values) (string, error) {
	wsBase := baseURL
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		wsBase = "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		wsBase = "ws://" + strings.TrimPrefix(baseURL, "http://")
	}

	u, err := url.Parse(wsBase + path)
	if err != nil {
		return "", wrapError(ErrKindInvalidURL, err, "parse WebSocket URL")
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// wsConn owns one streaming connection: its lifecycle state, a writer
// serialized by mutex, and a reader goroutine feeding the classified
// inbound message sequence.
type wsConn struct {
	conn    *websocket.Conn
	handler ProtocolHandler
	id      string

	state     atomic.Int32
	writeMu   sync.Mutex
	recvCh    chan *InboundMessage
	errCh     chan error
	closeCh   chan struct{}
	closeOnce sync.Once
	consumed  atomic.Bool
}

// dialWS performs the handshake and starts the reader goroutine. A
// failed handshake leaves the connection Disconnected and returns a
// websocket-kind error; connecting is never retried automatically.
func dialWS(ctx context.Context, urlStr string, header http.Header, handler ProtocolHandler) (*wsConn, error) {
	w := &wsConn{
		handler: handler,
		id:      uuid.NewString(),
		recvCh:  make(chan *InboundMessage, 100),
		errCh:   make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	w.state.Store(int32(stateConnecting))

	slog.Debug("connecting WebSocket", "conn_id", w.id, "url", urlStr)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, urlStr, header)
	if err != nil {
		w.state.Store(int32(stateDisconnected))
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			e := wrapError(ErrKindWebSocket, err, "connection failed: "+resp.Status)
			e.Status = resp.StatusCode
			e.Body = string(body)
			return nil, e
		}
		return nil, wrapError(ErrKindWebSocket, err, "connection failed")
	}

	w.conn = conn
	w.state.Store(int32(stateConnected))
	go w.readLoop()

	slog.Debug("WebSocket connected", "conn_id", w.id)
	return w, nil
}

// currentState returns the connection's lifecycle state.
func (w *wsConn) currentState() connState {
	return connState(w.state.Load())
}

// send writes one frame. Writes are serialized so concurrent senders do
// not interleave at the frame level.
func (w *wsConn) send(data []byte, binary bool) error {
	if w.currentState() != stateConnected {
		return newError(ErrKindWebSocket, "connection is not open")
	}

	msgType := websocket.TextMessage
	if binary {
		msgType = websocket.BinaryMessage
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if err := w.conn.WriteMessage(msgType, data); err != nil {
		return wrapError(ErrKindWebSocket, err, "write frame")
	}
	return nil
}

// sendJSON marshals v and writes it as a text frame.
func (w *wsConn) sendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return wrapError(ErrKindValidation, err, "marshal frame")
	}
	return w.send(data, false)
}

// messages returns the lazy inbound message sequence. It is single-pass
// and finite-while-connected: it ends when the peer closes the
// connection or close is called. Abandoning the sequence closes the
// underlying connection.
func (w *wsConn) messages() iter.Seq2[*InboundMessage, error] {
	return func(yield func(*InboundMessage, error) bool) {
		if !w.consumed.CompareAndSwap(false, true) {
			yield(nil, newError(ErrKindWebSocket, "message sequence already consumed"))
			return
		}

		// The read error is buffered in errCh before recvCh closes, so
		// it must be drained whenever the sequence ends: a dropped
		// connection is an error, never a clean end of stream.
		pendingErr := func() error {
			select {
			case err := <-w.errCh:
				return err
			default:
				return nil
			}
		}

		for {
			// Frames already received win over a pending read error so
			// a drop never discards buffered frames.
			select {
			case msg, ok := <-w.recvCh:
				if !ok {
					if err := pendingErr(); err != nil {
						yield(nil, err)
					}
					return
				}
				if !yield(msg, nil) {
					w.close()
					return
				}
				continue
			default:
			}

			select {
			case msg, ok := <-w.recvCh:
				if !ok {
					if err := pendingErr(); err != nil {
						yield(nil, err)
					}
					return
				}
				if !yield(msg, nil) {
					w.close()
					return
				}
			case err := <-w.errCh:
				yield(nil, err)
				return
			case <-w.closeCh:
				if err := pendingErr(); err != nil {
					yield(nil, err)
				}
				return
			}
		}
	}
}

// close sends a close frame and transitions deterministically to
// Disconnected. Safe to call multiple times.
func (w *wsConn) close() error {
	w.closeOnce.Do(func() {
		w.state.Store(int32(stateClosing))
		close(w.closeCh)

		w.writeMu.Lock()
		w.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		w.writeMu.Unlock()

		w.conn.Close()
		w.state.Store(int32(stateDisconnected))
		slog.Debug("WebSocket closed", "conn_id", w.id)
	})
	return nil
}

// readLoop reads frames, classifies them through the protocol handler,
// and feeds the message sequence until the connection drops.
func (w *wsConn) readLoop() {
	defer close(w.recvCh)

	for {
		select {
		case <-w.closeCh:
			return
		default:
		}

		msgType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.state.Store(int32(stateDisconnected))
			select {
			case <-w.closeCh:
				// Local close tore down the read, not the peer.
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					select {
					case w.errCh <- wrapError(ErrKindWebSocket, err, "read frame"):
					default:
					}
				}
			}
			return
		}

		msg := &InboundMessage{
			Data:   data,
			Binary: msgType == websocket.BinaryMessage,
			Kind:   w.handler.Classify(data),
		}

		select {
		case w.recvCh <- msg:
		case <-w.closeCh:
			return
		}
	}
}
