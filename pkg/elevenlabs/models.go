package elevenlabs

import "context"

// ModelsService lists the speech models the account may use.
type ModelsService struct {
	client *Client
}

func newModelsService(c *Client) *ModelsService {
	return &ModelsService{client: c}
}

// List returns all available models. The endpoint responds with a bare
// JSON array.
func (s *ModelsService) List(ctx context.Context) ([]Model, error) {
	var models []Model
	if err := s.client.http.get(ctx, "/v1/models", &models); err != nil {
		return nil, err
	}
	return models, nil
}
