package ports

import "context"

// TokenStore persists the session token across process restarts. Load
// returns domain.ErrTokenNotFound when no token is stored; Delete of a
// missing token is a no-op.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}
