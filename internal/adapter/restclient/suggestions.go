package restclient

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type suggestionWire struct {
	EventID      flexString `json:"eventId"`
	EventIDSnake flexString `json:"event_id"`
	Title        string     `json:"title"`
	Name         string     `json:"name"`
	Reason       string     `json:"reason"`
	Description  string     `json:"description"`
	Score        float64    `json:"score"`
}

type suggestionList []suggestionWire

func (l *suggestionList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, (*[]suggestionWire)(l))
	}
	var obj struct {
		Suggestions []suggestionWire `json:"suggestions"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*l = obj.Suggestions
	return nil
}

type suggestRequestWire struct {
	Prompt string `json:"prompt"`
	Limit  int    `json:"limit,omitempty"`
}

func (c *Client) Suggest(ctx context.Context, prompt string, limit int) ([]domain.Suggestion, error) {
	var list suggestionList
	if err := c.do(ctx, "POST", "/ai/suggestions", "/ai/suggestions", suggestRequestWire{Prompt: prompt, Limit: limit}, &list); err != nil {
		return nil, err
	}
	out := make([]domain.Suggestion, 0, len(list))
	for _, w := range list {
		out = append(out, domain.Suggestion{
			EventID: firstNonEmpty(string(w.EventID), string(w.EventIDSnake)),
			Title:   firstNonEmpty(w.Title, w.Name),
			Reason:  firstNonEmpty(w.Reason, w.Description),
			Score:   w.Score,
		})
	}
	return out, nil
}
