package ports

import (
	"context"

	"github.com/nuvora-hq/crm-cli/internal/domain"
)

// AuthGateway covers the unauthenticated entry points plus the
// token-resolved identity check.
type AuthGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error)
	Register(ctx context.Context, reg domain.Registration) (domain.User, string, error)
	Me(ctx context.Context) (domain.User, error)
}

// ClientGateway is the typed surface over the client resource
// collection. Every call attaches the current bearer token when one is
// held and proxies transport failures upward unchanged.
type ClientGateway interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id domain.ClientID) (domain.Client, error)
	CreateClient(ctx context.Context, fields domain.ClientFields) (domain.Client, error)
	UpdateClient(ctx context.Context, id domain.ClientID, fields domain.ClientFields) (domain.Client, error)
	DeleteClient(ctx context.Context, id domain.ClientID) error
	TriggerReminders(ctx context.Context) (string, error)
}
