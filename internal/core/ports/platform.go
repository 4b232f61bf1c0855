package ports

import (
	"context"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

// CredentialProvider yields the bearer token for authenticated calls. An
// empty token with a nil error means "no credentials": callers proceed
// unauthenticated.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.CheckoutEvent) error
}

// Navigator receives the client route the workflow moves to next.
type Navigator interface {
	Navigate(path string)
}
