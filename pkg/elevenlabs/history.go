package elevenlabs

import (
	"context"
	"net/url"
	"strconv"
)

// HistoryService browses previously generated audio.
type HistoryService struct {
	client *Client
}

func newHistoryService(c *Client) *HistoryService {
	return &HistoryService{client: c}
}

// HistoryQuery narrows a history listing. Zero values are omitted.
type HistoryQuery struct {
	PageSize                int
	StartAfterHistoryItemID string
	VoiceID                 string
}

// List returns a page of generation history items, newest first. Pass
// the LastHistoryItemID of one page as StartAfterHistoryItemID of the
// next to paginate.
func (s *HistoryService) List(ctx context.Context, query *HistoryQuery) (*GetHistoryResponse, error) {
	path := "/v1/history"
	if query != nil {
		q := url.Values{}
		if query.PageSize > 0 {
			q.Set("page_size", strconv.Itoa(query.PageSize))
		}
		if query.StartAfterHistoryItemID != "" {
			q.Set("start_after_history_item_id", query.StartAfterHistoryItemID)
		}
		if query.VoiceID != "" {
			q.Set("voice_id", query.VoiceID)
		}
		if enc := q.Encode(); enc != "" {
			path += "?" + enc
		}
	}
	var resp GetHistoryResponse
	if err := s.client.http.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a single history item.
func (s *HistoryService) Get(ctx context.Context, historyItemID string) (*HistoryItem, error) {
	if historyItemID == "" {
		return nil, newError(ErrKindValidation, "history item ID is required")
	}
	var item HistoryItem
	if err := s.client.http.get(ctx, "/v1/history/"+historyItemID, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAudio downloads the audio of a history item.
func (s *HistoryService) GetAudio(ctx context.Context, historyItemID string) ([]byte, error) {
	if historyItemID == "" {
		return nil, newError(ErrKindValidation, "history item ID is required")
	}
	return s.client.http.getBytes(ctx, "/v1/history/"+historyItemID+"/audio")
}

// Delete removes a history item.
func (s *HistoryService) Delete(ctx context.Context, historyItemID string) error {
	if historyItemID == "" {
		return newError(ErrKindValidation, "history item ID is required")
	}
	var resp DeleteHistoryItemResponse
	return s.client.http.del(ctx, "/v1/history/"+historyItemID, &resp)
}
