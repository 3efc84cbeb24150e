// Package elevenlabs provides a Go client for the ElevenLabs API.
//
// The client covers text-to-speech (synchronous, chunked streaming, and
// WebSocket streaming), voice management, transcription, sound effect
// generation, account information, and conversational AI agents.
//
// # Basic Usage
//
//	client := elevenlabs.NewClient("your-api-key")
//
//	audio, err := client.TTS.Convert(ctx, voiceID, &elevenlabs.TextToSpeechRequest{
//	    Text:    "Hello, world!",
//	    ModelID: "eleven_multilingual_v2",
//	}, elevenlabs.FormatMP344100128)
//
// The API key may also come from the environment:
//
//	client, err := elevenlabs.NewClientFromEnv()
//
// which reads ELEVENLABS_API_KEY and, when set, ELEVENLABS_BASE_URL.
//
// # Streaming
//
// Streaming methods return iter.Seq2 iterators that can be used with Go
// 1.23+ range:
//
//	for chunk, err := range client.TTS.ConvertStream(ctx, voiceID, req, "") {
//	    if err != nil {
//	        return err
//	    }
//	    play(chunk)
//	}
//
// # WebSocket Streaming
//
// For incremental synthesis, open a WebSocket session and feed text as
// it becomes available:
//
//	stream, err := client.TTS.OpenStream(ctx, &elevenlabs.TTSStreamConfig{
//	    VoiceID: voiceID,
//	    ModelID: "eleven_multilingual_v2",
//	})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	stream.SendText(ctx, "Hello, ")
//	stream.SendText(ctx, "world!")
//	stream.Flush(ctx)
//
//	for chunk, err := range stream.Recv() {
//	    if err != nil {
//	        return err
//	    }
//	    play(chunk.Audio)
//	}
//
// # Error Handling
//
// All failures surface as *Error values carrying a Kind:
//
//	audio, err := client.TTS.Convert(ctx, voiceID, req, "")
//	if err != nil {
//	    if e, ok := elevenlabs.AsError(err); ok {
//	        if e.IsRateLimit() {
//	            // back off for e.RetryAfter
//	        }
//	    }
//	    return err
//	}
//
// Retryable failures (HTTP 429, 500, 502, 503, and request timeouts) are
// retried automatically with exponential backoff before being returned.
//
// # Configuration
//
//	client := elevenlabs.NewClient("api-key",
//	    elevenlabs.WithBaseURL("https://api.elevenlabs.io"),
//	    elevenlabs.WithTimeout(30*time.Second),
//	    elevenlabs.WithMaxRetries(3),
//	)
//
// For more information, see: https://elevenlabs.io/docs
package elevenlabs
