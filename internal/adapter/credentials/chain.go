package credentials

import (
	"context"

	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/ports"
)

// Chain asks each provider in order and returns the first non-empty token.
// A failing provider is logged and skipped.
type Chain struct {
	providers []ports.CredentialProvider
	logger    *zap.Logger
}

func NewChain(logger *zap.Logger, providers ...ports.CredentialProvider) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{providers: providers, logger: logger}
}

func (c *Chain) Token(ctx context.Context) (string, error) {
	for _, p := range c.providers {
		token, err := p.Token(ctx)
		if err != nil {
			c.logger.Warn("credential provider failed", zap.Error(err))
			continue
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}
