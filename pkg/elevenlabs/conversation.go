package elevenlabs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"iter"
	"log/slog"
)

// Conversation event types, as carried in the "type" field of each
// inbound frame.
const (
	EventInitiationMetadata = "conversation_initiation_metadata"
	EventAudio              = "audio"
	EventAgentResponse      = "agent_response"
	EventUserTranscript     = "user_transcript"
	EventInterruption       = "interruption"
	EventPing               = "ping"
	EventPong               = "pong"
)

// ConversationEvent is one inbound event from a conversational agent.
// Type selects which of the payload fields is meaningful; Raw always
// carries the full frame for event types not modelled here.
type ConversationEvent struct {
	// Type is the event type, e.g. EventAudio or EventPing.
	Type string

	// Raw is the complete frame payload.
	Raw json.RawMessage

	// Audio is the decoded audio chunk for EventAudio events. Nil when
	// the chunk was absent or failed to decode.
	Audio []byte

	// AgentResponse is the agent's text for EventAgentResponse events.
	AgentResponse string

	// UserTranscript is the transcribed user speech for
	// EventUserTranscript events.
	UserTranscript string

	// PingEventID is the ID to echo back via SendPong for EventPing.
	PingEventID int64
}

// conversationFrame is the wire shape of an inbound conversation frame.
type conversationFrame struct {
	Type  string `json:"type"`
	Audio *struct {
		Chunk string `json:"chunk"`
	} `json:"audio"`
	AgentResponseText  string `json:"agent_response_text"`
	UserTranscriptText string `json:"user_transcript_text"`
	PingEvent          *struct {
		EventID int64 `json:"event_id"`
	} `json:"ping_event"`
}

// Conversation is a bidirectional streaming session with a
// Conversational AI agent.
//
// Outbound audio and text go through SendAudio and SendText; inbound
// agent events arrive through Recv. The session never replies to
// server pings on its own — observe EventPing in the event sequence
// and answer with SendPong to keep the connection alive. Turn-taking
// belongs to the remote agent; no client-side state machine is imposed.
type Conversation struct {
	ws *wsConn
}

// ConnectConversation connects to a conversation using a
// pre-authenticated signed URL, typically obtained from
// AgentsService.GetSignedURL.
//
// The handshake is not retried; reconnecting after a drop is an
// explicit caller action.
func ConnectConversation(ctx context.Context, signedURL string) (*Conversation, error) {
	wsURL, err := buildWSURL(signedURL, "", nil)
	if err != nil {
		return nil, err
	}

	ws, err := dialWS(ctx, wsURL, nil, conversationProtocol{})
	if err != nil {
		return nil, err
	}
	return &Conversation{ws: ws}, nil
}

// OpenConversation fetches a signed URL for the agent and connects.
func (s *AgentsService) OpenConversation(ctx context.Context, agentID string) (*Conversation, error) {
	if agentID == "" {
		return nil, newError(ErrKindValidation, "agent ID is required")
	}
	signedURL, err := s.GetSignedURL(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return ConnectConversation(ctx, signedURL)
}

// SendAudio sends a chunk of user audio (raw PCM bytes). The audio is
// base64-encoded on the wire.
func (c *Conversation) SendAudio(ctx context.Context, audio []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.ws.sendJSON(map[string]any{
		"type":             "user_audio_chunk",
		"user_audio_chunk": base64.StdEncoding.EncodeToString(audio),
	})
}

// SendText sends a typed user message to the agent.
func (c *Conversation) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.ws.sendJSON(map[string]any{
		"type": "user_message",
		"text": text,
	})
}

// SendPong answers a server ping. Call this with the PingEventID of
// every EventPing observed in the event sequence.
func (c *Conversation) SendPong(ctx context.Context, eventID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.ws.sendJSON(map[string]any{
		"type":     "pong",
		"event_id": eventID,
	})
}

// Recv returns the lazy sequence of agent events. It ends when the
// peer closes the connection or Close is called; abandoning the
// sequence closes the connection.
func (c *Conversation) Recv() iter.Seq2[*ConversationEvent, error] {
	return func(yield func(*ConversationEvent, error) bool) {
		for msg, err := range c.ws.messages() {
			if err != nil {
				yield(nil, err)
				return
			}
			if msg.Binary {
				// The conversation protocol is JSON text only.
				continue
			}

			var frame conversationFrame
			if err := json.Unmarshal(msg.Data, &frame); err != nil {
				yield(nil, wrapError(ErrKindDeserialization, err, "unmarshal conversation event"))
				return
			}

			event := &ConversationEvent{
				Type:           frame.Type,
				Raw:            msg.Data,
				AgentResponse:  frame.AgentResponseText,
				UserTranscript: frame.UserTranscriptText,
			}
			if frame.Audio != nil && frame.Audio.Chunk != "" {
				audio, err := base64.StdEncoding.DecodeString(frame.Audio.Chunk)
				if err != nil {
					slog.Debug("dropping undecodable agent audio chunk", "err", err)
				} else {
					event.Audio = audio
				}
			}
			if frame.PingEvent != nil {
				event.PingEventID = frame.PingEvent.EventID
			}

			if !yield(event, nil) {
				return
			}
		}
	}
}

// Close closes the conversation.
func (c *Conversation) Close() error {
	return c.ws.close()
}
