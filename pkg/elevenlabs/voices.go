package elevenlabs

import (
	"context"
	"encoding/json"
	"io"
)

// VoicesService manages the voices available to the account.
type VoicesService struct {
	client *Client
}

func newVoicesService(c *Client) *VoicesService {
	return &VoicesService{client: c}
}

// List returns all voices available to the account.
func (s *VoicesService) List(ctx context.Context) ([]Voice, error) {
	var resp GetVoicesResponse
	if err := s.client.http.get(ctx, "/v1/voices", &resp); err != nil {
		return nil, err
	}
	return resp.Voices, nil
}

// Get returns a single voice by ID.
func (s *VoicesService) Get(ctx context.Context, voiceID string) (*Voice, error) {
	if voiceID == "" {
		return nil, newError(ErrKindValidation, "voice ID is required")
	}
	var v Voice
	if err := s.client.http.get(ctx, "/v1/voices/"+voiceID, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetDefaultSettings returns the default voice settings applied when a
// voice has none of its own.
func (s *VoicesService) GetDefaultSettings(ctx context.Context) (*VoiceSettings, error) {
	var vs VoiceSettings
	if err := s.client.http.get(ctx, "/v1/voices/settings/default", &vs); err != nil {
		return nil, err
	}
	return &vs, nil
}

// GetSettings returns the settings of a specific voice.
func (s *VoicesService) GetSettings(ctx context.Context, voiceID string) (*VoiceSettings, error) {
	if voiceID == "" {
		return nil, newError(ErrKindValidation, "voice ID is required")
	}
	var vs VoiceSettings
	if err := s.client.http.get(ctx, "/v1/voices/"+voiceID+"/settings", &vs); err != nil {
		return nil, err
	}
	return &vs, nil
}

// EditSettings overwrites the settings of a voice.
func (s *VoicesService) EditSettings(ctx context.Context, voiceID string, settings *VoiceSettings) error {
	if voiceID == "" {
		return newError(ErrKindValidation, "voice ID is required")
	}
	var resp EditVoiceResponse
	return s.client.http.post(ctx, "/v1/voices/"+voiceID+"/settings/edit", settings, &resp)
}

// VoiceSampleFile is an audio sample uploaded when adding or editing a
// cloned voice.
type VoiceSampleFile struct {
	Filename string
	Reader   io.Reader
}

// AddVoiceRequest describes a voice to clone from audio samples.
type AddVoiceRequest struct {
	Name        string
	Description string
	Labels      map[string]string
	Samples     []VoiceSampleFile
}

// Add clones a new voice from the given audio samples and returns its
// voice ID.
func (s *VoicesService) Add(ctx context.Context, req *AddVoiceRequest) (string, error) {
	if req == nil || req.Name == "" {
		return "", newError(ErrKindValidation, "voice name is required")
	}
	if len(req.Samples) == 0 {
		return "", newError(ErrKindValidation, "at least one audio sample is required")
	}
	fields, files := voiceFormParts(req.Name, req.Description, req.Labels, req.Samples)
	var resp AddVoiceResponse
	if err := s.client.http.postMultipart(ctx, "/v1/voices/add", fields, files, &resp); err != nil {
		return "", err
	}
	return resp.VoiceID, nil
}

// Edit updates the name, description, labels or samples of an existing
// cloned voice. Samples may be empty to keep the current ones.
func (s *VoicesService) Edit(ctx context.Context, voiceID string, req *AddVoiceRequest) error {
	if voiceID == "" {
		return newError(ErrKindValidation, "voice ID is required")
	}
	if req == nil || req.Name == "" {
		return newError(ErrKindValidation, "voice name is required")
	}
	fields, files := voiceFormParts(req.Name, req.Description, req.Labels, req.Samples)
	var resp EditVoiceResponse
	return s.client.http.postMultipart(ctx, "/v1/voices/"+voiceID+"/edit", fields, files, &resp)
}

// Delete removes a voice from the account.
func (s *VoicesService) Delete(ctx context.Context, voiceID string) error {
	if voiceID == "" {
		return newError(ErrKindValidation, "voice ID is required")
	}
	var resp DeleteVoiceResponse
	return s.client.http.del(ctx, "/v1/voices/"+voiceID, &resp)
}

func voiceFormParts(name, description string, labels map[string]string, samples []VoiceSampleFile) (map[string]string, []multipartFile) {
	fields := map[string]string{"name": name}
	if description != "" {
		fields["description"] = description
	}
	if len(labels) > 0 {
		if data, err := json.Marshal(labels); err == nil {
			fields["labels"] = string(data)
		}
	}
	files := make([]multipartFile, 0, len(samples))
	for _, s := range samples {
		files = append(files, multipartFile{field: "files", filename: s.Filename, reader: s.Reader})
	}
	return fields, files
}
