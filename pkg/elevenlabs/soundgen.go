package elevenlabs

import "context"

// SoundGenerationService turns text prompts into sound effects.
type SoundGenerationService struct {
	client *Client
}

func newSoundGenerationService(c *Client) *SoundGenerationService {
	return &SoundGenerationService{client: c}
}

// Generate creates a sound effect from the prompt text and returns the
// audio bytes.
func (s *SoundGenerationService) Generate(ctx context.Context, req *SoundGenerationRequest) ([]byte, error) {
	if req == nil || req.Text == "" {
		return nil, newError(ErrKindValidation, "text is required")
	}
	return s.client.http.postBytes(ctx, "/v1/sound-generation", req)
}
