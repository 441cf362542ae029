package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nuvora-hq/crm-cli/internal/domain"
	"github.com/nuvora-hq/crm-cli/internal/ports"
)

const (
	loginFailedMessage    = "Login failed. Please try again."
	registerFailedMessage = "Registration failed. Please try again."
)

// Session is the single authoritative session object for the process.
// It owns the bearer token and current user identity; nothing else
// mutates either. All authenticated calls read the token through
// Token.
type Session struct {
	auth   ports.AuthGateway
	tokens ports.TokenStore
	cache  ports.QueryCache
	logger zerolog.Logger

	mu      sync.RWMutex
	token   string
	user    *domain.User
	loading bool
	lastErr string
}

func NewSession(auth ports.AuthGateway, tokens ports.TokenStore, cache ports.QueryCache, logger zerolog.Logger) *Session {
	return &Session{
		auth:    auth,
		tokens:  tokens,
		cache:   cache,
		logger:  logger,
		loading: true,
	}
}

// Restore reads the persisted token and validates it against the
// identity endpoint. Any failure, transport or auth, silently demotes
// the session to logged-out; restore is never fatal to the process.
func (s *Session) Restore(ctx context.Context) {
	defer s.setLoading(false)

	token, err := s.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			s.logger.Debug().Err(err).Msg("load persisted token")
		}
		return
	}

	s.setToken(token)

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("auth check failed")
		_ = s.tokens.Delete(ctx)
		s.setToken("")
		return
	}

	s.setUser(user)
}

// Login exchanges credentials for a token, persists it, and drops any
// cached client lists so another user's data is never served.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	s.setError("")
	defer s.setLoading(false)

	user, token, err := s.auth.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		s.setError(failureMessage(err, loginFailedMessage))
		return err
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}

	s.setToken(token)
	s.setUser(user)
	s.cache.Invalidate(ClientListKeyPrefix)

	return nil
}

// Register creates an account and opens a session with the returned
// token. Unlike Login it does not invalidate cached client lists; a
// brand-new account has no stale list to worry about.
func (s *Session) Register(ctx context.Context, email, password, name string) error {
	s.setLoading(true)
	s.setError("")
	defer s.setLoading(false)

	user, token, err := s.auth.Register(ctx, domain.Registration{Email: email, Password: password, Name: name})
	if err != nil {
		s.setError(failureMessage(err, registerFailedMessage))
		return err
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}

	s.setToken(token)
	s.setUser(user)

	return nil
}

// Logout discards the persisted token, the in-memory session, and
// every cache entry. Clearing the whole cache trades efficiency for
// the guarantee that nothing survives a session switch.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("discard persisted token: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.cache.Clear()

	return nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, false
	}

	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last login or register failure message, if any.
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) setUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

func (s *Session) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Session) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = message
}

// failureMessage prefers the server's message body field over the
// generic fallback.
func failureMessage(err error, fallback string) string {
	var serverErr *domain.ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}

	return fallback
}
