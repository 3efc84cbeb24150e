package elevenlabs

import (
	"context"
	"net/url"
)

// AgentsService manages conversational AI agents.
type AgentsService struct {
	client *Client
}

func newAgentsService(c *Client) *AgentsService {
	return &AgentsService{client: c}
}

// List returns the agents of the account.
func (s *AgentsService) List(ctx context.Context) ([]AgentSummary, error) {
	var resp GetAgentsResponse
	if err := s.client.http.get(ctx, "/v1/convai/agents", &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

// Get returns a single agent by ID.
func (s *AgentsService) Get(ctx context.Context, agentID string) (*AgentSummary, error) {
	if agentID == "" {
		return nil, newError(ErrKindValidation, "agent ID is required")
	}
	var a AgentSummary
	if err := s.client.http.get(ctx, "/v1/convai/agents/"+agentID, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetSignedURL returns a short-lived signed WebSocket URL for starting a
// conversation with the agent.
func (s *AgentsService) GetSignedURL(ctx context.Context, agentID string) (string, error) {
	if agentID == "" {
		return "", newError(ErrKindValidation, "agent ID is required")
	}
	q := url.Values{}
	q.Set("agent_id", agentID)
	var resp SignedURLResponse
	if err := s.client.http.get(ctx, "/v1/convai/conversation/get-signed-url?"+q.Encode(), &resp); err != nil {
		return "", err
	}
	return resp.SignedURL, nil
}
