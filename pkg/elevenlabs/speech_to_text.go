package elevenlabs

import (
	"context"
	"io"
	"strconv"
)

// SpeechToTextService transcribes audio files.
type SpeechToTextService struct {
	client *Client
}

func newSpeechToTextService(c *Client) *SpeechToTextService {
	return &SpeechToTextService{client: c}
}

// Transcribe uploads the audio read from r and returns the transcript.
// filename is used for the multipart part and should carry the right
// extension so the server can sniff the container format.
func (s *SpeechToTextService) Transcribe(ctx context.Context, filename string, r io.Reader, req *SpeechToTextRequest) (*SpeechToTextResponse, error) {
	if r == nil {
		return nil, newError(ErrKindValidation, "audio reader is required")
	}
	if req == nil || req.ModelID == "" {
		return nil, newError(ErrKindValidation, "model ID is required")
	}
	fields := map[string]string{"model_id": req.ModelID}
	if req.LanguageCode != "" {
		fields["language_code"] = req.LanguageCode
	}
	if req.Diarize {
		fields["diarize"] = "true"
	}
	if req.NumSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(req.NumSpeakers)
	}
	if req.TagAudioEvents {
		fields["tag_audio_events"] = "true"
	}
	files := []multipartFile{{field: "file", filename: filename, reader: r}}
	var resp SpeechToTextResponse
	if err := s.client.http.postMultipart(ctx, "/v1/speech-to-text", fields, files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
