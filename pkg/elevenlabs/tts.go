package elevenlabs

import (
	"context"
	"iter"
	"net/url"
)

// TTSService provides text-to-speech operations.
type TTSService struct {
	client *Client
}

func newTTSService(c *Client) *TTSService {
	return &TTSService{client: c}
}

// ttsPath builds a text-to-speech endpoint path with optional query
// parameters.
func ttsPath(voiceID, suffix string, format OutputFormat) string {
	path := "/v1/text-to-speech/" + voiceID + suffix
	if format != "" {
		q := url.Values{}
		q.Set("output_format", string(format))
		path += "?" + q.Encode()
	}
	return path
}

// Convert synthesizes the request text with the given voice and returns
// the complete audio as raw bytes.
//
// format may be empty to use the server default (mp3_44100_128).
func (s *TTSService) Convert(ctx context.Context, voiceID string, req *TextToSpeechRequest, format OutputFormat) ([]byte, error) {
	if voiceID == "" {
		return nil, newError(ErrKindValidation, "voice ID is required")
	}
	if req == nil || req.Text == "" {
		return nil, newError(ErrKindValidation, "text is required")
	}
	return s.client.http.postBytes(ctx, ttsPath(voiceID, "", format), req)
}

// ConvertStream synthesizes the request text and yields audio chunks as
// they arrive from the chunked streaming endpoint.
//
// Example:
//
//	for chunk, err := range client.TTS.ConvertStream(ctx, voiceID, req, "") {
//	    if err != nil {
//	        return err
//	    }
//	    play(chunk)
//	}
func (s *TTSService) ConvertStream(ctx context.Context, voiceID string, req *TextToSpeechRequest, format OutputFormat) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if voiceID == "" {
			yield(nil, newError(ErrKindValidation, "voice ID is required"))
			return
		}
		if req == nil || req.Text == "" {
			yield(nil, newError(ErrKindValidation, "text is required"))
			return
		}
		for chunk, err := range s.client.http.postStream(ctx, ttsPath(voiceID, "/stream", format), req) {
			if !yield(chunk, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
