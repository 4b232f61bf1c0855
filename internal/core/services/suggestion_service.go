package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
)

const (
	defaultSuggestionLimit = 5
	maxSuggestionLimit     = 20
)

type SuggestionService struct {
	api ports.SuggestionAPI
}

func NewSuggestionService(api ports.SuggestionAPI) *SuggestionService {
	return &SuggestionService{api: api}
}

func (s *SuggestionService) Suggest(ctx context.Context, prompt string, limit int) ([]domain.Suggestion, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.NewValidationError("prompt", domain.MsgEmptyPrompt)
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	out, err := s.api.Suggest(ctx, prompt, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
