package elevenlabs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"iter"
	"log/slog"
	"net/url"
)

// TTSStreamConfig configures a streaming text-to-speech session.
type TTSStreamConfig struct {
	// VoiceID selects the voice (required).
	VoiceID string

	// ModelID selects the model, e.g. "eleven_turbo_v2".
	ModelID string

	// VoiceSettings overrides the stored voice defaults.
	VoiceSettings *VoiceSettings

	// GenerationConfig tunes when buffered text is synthesized.
	GenerationConfig *GenerationConfig

	// OutputFormat overrides the default audio format.
	OutputFormat OutputFormat
}

// GenerationConfig tunes streaming synthesis scheduling.
type GenerationConfig struct {
	// ChunkLengthSchedule is the schedule of buffered-text lengths (in
	// characters) at which the server triggers synthesis.
	ChunkLengthSchedule []int `json:"chunk_length_schedule"`
}

// DefaultGenerationConfig returns the server-recommended chunk schedule.
func DefaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{ChunkLengthSchedule: []int{120, 160, 250, 290}}
}

// TTSAudioChunk is one decoded audio chunk from a streaming session.
type TTSAudioChunk struct {
	// Audio is the decoded audio data. May be empty on the final frame.
	Audio []byte

	// IsFinal marks the last frame of the current generation.
	IsFinal bool

	// Alignment is the raw character-level alignment payload, if any.
	Alignment json.RawMessage

	// NormalizedAlignment is the raw normalized alignment payload, if any.
	NormalizedAlignment json.RawMessage
}

// ttsFrame is the wire shape of an inbound TTS streaming frame.
type ttsFrame struct {
	Audio               string          `json:"audio"`
	IsFinal             bool            `json:"isFinal"`
	Alignment           json.RawMessage `json:"alignment,omitempty"`
	NormalizedAlignment json.RawMessage `json:"normalizedAlignment,omitempty"`
}

// TTSStream is a streaming text-to-speech session.
//
// Usage is append-only: the session's first frame (sent automatically
// on open) carries the voice configuration alongside a leading space,
// then SendText appends text fragments and Flush forces synthesis of
// anything buffered. Recv yields decoded audio until the server marks
// the generation final or the connection closes.
type TTSStream struct {
	ws  *wsConn
	cfg *TTSStreamConfig
	key APIKey
}

// OpenStream opens a streaming TTS session on the input-streaming
// WebSocket endpoint.
//
// Example:
//
//	stream, err := client.TTS.OpenStream(ctx, &elevenlabs.TTSStreamConfig{
//	    VoiceID: "voice123",
//	    ModelID: "eleven_turbo_v2",
//	})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	stream.SendText(ctx, "Hello, world!")
//	stream.Flush(ctx)
//
//	for chunk, err := range stream.Recv() {
//	    if err != nil {
//	        return err
//	    }
//	    play(chunk.Audio)
//	}
func (s *TTSService) OpenStream(ctx context.Context, cfg *TTSStreamConfig) (*TTSStream, error) {
	if cfg == nil || cfg.VoiceID == "" {
		return nil, newError(ErrKindValidation, "voice ID is required")
	}

	params := url.Values{}
	if cfg.ModelID != "" {
		params.Set("model_id", cfg.ModelID)
	}
	if cfg.OutputFormat != "" {
		params.Set("output_format", string(cfg.OutputFormat))
	}

	wsURL, err := buildWSURL(s.client.config.baseURL,
		"/v1/text-to-speech/"+cfg.VoiceID+"/stream-input", params)
	if err != nil {
		return nil, err
	}

	ws, err := dialWS(ctx, wsURL, nil, ttsProtocol{})
	if err != nil {
		return nil, err
	}

	stream := &TTSStream{ws: ws, cfg: cfg, key: s.client.config.apiKey}
	if err := stream.sendBOS(); err != nil {
		ws.close()
		return nil, err
	}
	return stream, nil
}

// sendBOS sends the beginning-of-stream frame carrying the voice
// configuration and the credential.
func (t *TTSStream) sendBOS() error {
	bos := map[string]any{
		"text": " ",
	}
	if t.cfg.VoiceSettings != nil {
		bos["voice_settings"] = t.cfg.VoiceSettings
	}
	if t.cfg.GenerationConfig != nil {
		bos["generation_config"] = t.cfg.GenerationConfig
	}
	if !t.key.IsZero() {
		bos["xi_api_key"] = t.key.Reveal()
	}
	return t.ws.sendJSON(bos)
}

// SendText appends a text fragment to the session.
func (t *TTSStream) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.ws.sendJSON(map[string]any{
		"text":                   text,
		"try_trigger_generation": true,
	})
}

// Flush forces the server to synthesize any buffered text immediately.
func (t *TTSStream) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.ws.sendJSON(map[string]any{
		"text":  " ",
		"flush": true,
	})
}

// Recv returns the lazy sequence of decoded audio chunks.
//
// The sequence ends after the first frame with isFinal set (that
// frame's own audio is still yielded), when the connection closes, or
// when Close is called. A chunk whose audio fails to decode is dropped
// and the sequence continues.
func (t *TTSStream) Recv() iter.Seq2[*TTSAudioChunk, error] {
	return func(yield func(*TTSAudioChunk, error) bool) {
		for msg, err := range t.ws.messages() {
			if err != nil {
				yield(nil, err)
				return
			}

			var frame ttsFrame
			if err := json.Unmarshal(msg.Data, &frame); err != nil {
				yield(nil, wrapError(ErrKindDeserialization, err, "unmarshal TTS frame"))
				return
			}

			chunk := &TTSAudioChunk{
				IsFinal:             frame.IsFinal,
				Alignment:           frame.Alignment,
				NormalizedAlignment: frame.NormalizedAlignment,
			}

			if frame.Audio != "" {
				audio, err := base64.StdEncoding.DecodeString(frame.Audio)
				if err != nil {
					// Drop the undecodable chunk; synthesis continues.
					// A final marker is still delivered, just without
					// its audio, so termination stays uniform.
					slog.Debug("dropping undecodable audio chunk", "err", err)
					if frame.IsFinal {
						yield(chunk, nil)
						return
					}
					continue
				}
				chunk.Audio = audio
			}

			if frame.IsFinal {
				yield(chunk, nil)
				return
			}
			if chunk.Audio == nil {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// End sends the end-of-stream frame. No more text may be sent after
// this; keep consuming Recv until the final chunk arrives.
func (t *TTSStream) End(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.ws.sendJSON(map[string]any{"text": ""})
}

// Close sends the end-of-stream frame and closes the connection.
func (t *TTSStream) Close() error {
	// EOS is an empty text frame. Best effort: the connection may
	// already be gone.
	t.ws.sendJSON(map[string]any{"text": ""})
	return t.ws.close()
}
