package elevenlabs

import "context"

// UserService exposes account information.
type UserService struct {
	client *Client
}

func newUserService(c *Client) *UserService {
	return &UserService{client: c}
}

// Get returns the current user profile.
func (s *UserService) Get(ctx context.Context) (*UserResponse, error) {
	var u UserResponse
	if err := s.client.http.get(ctx, "/v1/user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetSubscription returns the subscription attached to the API key.
func (s *UserService) GetSubscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := s.client.http.get(ctx, "/v1/user/subscription", &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
