package application

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memcache "github.com/nuvora-hq/crm-cli/internal/adapters/cache/memory"
	"github.com/nuvora-hq/crm-cli/internal/domain"
	"github.com/nuvora-hq/crm-cli/internal/ports"
)

type fakeAuthGateway struct {
	mu sync.Mutex

	meUser  domain.User
	meErr   error
	meCalls int

	loginUser  domain.User
	loginToken string
	loginErr   error

	registerUser  domain.User
	registerToken string
	registerErr   error
}

func (f *fakeAuthGateway) Me(context.Context) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeAuthGateway) Login(context.Context, domain.Credentials) (domain.User, string, error) {
	return f.loginUser, f.loginToken, f.loginErr
}

func (f *fakeAuthGateway) Register(context.Context, domain.Registration) (domain.User, string, error) {
	return f.registerUser, f.registerToken, f.registerErr
}

type memoryTokenStore struct {
	mu    sync.Mutex
	token string
	held  bool
}

func (s *memoryTokenStore) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held {
		return "", domain.ErrTokenNotFound
	}
	return s.token, nil
}

func (s *memoryTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.held = true
	return nil
}

func (s *memoryTokenStore) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.held = false
	return nil
}

func (s *memoryTokenStore) current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.held
}

func newSessionFixture(auth *fakeAuthGateway) (*Session, *memoryTokenStore, ports.QueryCache) {
	tokens := &memoryTokenStore{}
	cache := memcache.New(0, nil)
	session := NewSession(auth, tokens, cache, zerolog.Nop())
	return session, tokens, cache
}

func populate(t *testing.T, cache ports.QueryCache, key string) *int {
	t.Helper()

	calls := 0
	_, err := cache.Read(context.Background(), key, func(context.Context) (any, error) {
		calls++
		return "cached", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	return &calls
}

func readAgain(t *testing.T, cache ports.QueryCache, key string, calls *int) {
	t.Helper()

	_, err := cache.Read(context.Background(), key, func(context.Context) (any, error) {
		*calls++
		return "refetched", nil
	})
	require.NoError(t, err)
}

func TestRestoreWithValidTokenPopulatesUser(t *testing.T) {
	auth := &fakeAuthGateway{meUser: domain.User{ID: "1", Name: "A", Email: "a@b.com"}}
	session, tokens, _ := newSessionFixture(auth)
	require.NoError(t, tokens.Save(context.Background(), "tok-123"))

	session.Restore(context.Background())

	assert.False(t, session.IsLoading())
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "tok-123", session.Token())

	user, ok := session.User()
	require.True(t, ok)
	assert.Equal(t, domain.UserID("1"), user.ID)
}

func TestRestoreRejectedTokenFallsBackToLoggedOut(t *testing.T) {
	auth := &fakeAuthGateway{meErr: &domain.ServerError{Status: http.StatusUnauthorized}}
	session, tokens, _ := newSessionFixture(auth)
	require.NoError(t, tokens.Save(context.Background(), "expired"))

	session.Restore(context.Background())

	assert.False(t, session.IsLoading())
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())

	_, held := tokens.current()
	assert.False(t, held, "rejected token must be discarded from the store")
}

func TestRestoreWithoutTokenSkipsIdentityCheck(t *testing.T) {
	auth := &fakeAuthGateway{}
	session, _, _ := newSessionFixture(auth)

	session.Restore(context.Background())

	assert.False(t, session.IsLoading())
	assert.False(t, session.IsAuthenticated())
	assert.Zero(t, auth.meCalls)
}

func TestRestoreTransportFailureIsNotFatal(t *testing.T) {
	auth := &fakeAuthGateway{meErr: errors.New("connection refused")}
	session, tokens, _ := newSessionFixture(auth)
	require.NoError(t, tokens.Save(context.Background(), "tok-123"))

	session.Restore(context.Background())

	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())
}

func TestLoginPersistsTokenAndInvalidatesClientLists(t *testing.T) {
	auth := &fakeAuthGateway{
		loginUser:  domain.User{ID: "1", Name: "A"},
		loginToken: "T",
	}
	session, tokens, cache := newSessionFixture(auth)
	listCalls := populate(t, cache, "clients/previous-user")
	entityCalls := populate(t, cache, "client/42")

	require.NoError(t, session.Login(context.Background(), "a@b.com", "x"))

	token, held := tokens.current()
	assert.True(t, held)
	assert.Equal(t, "T", token)
	assert.Equal(t, "T", session.Token())
	assert.True(t, session.IsAuthenticated())
	assert.Empty(t, session.Err())

	readAgain(t, cache, "clients/previous-user", listCalls)
	assert.Equal(t, 2, *listCalls, "cached client lists must be dropped on login")

	readAgain(t, cache, "client/42", entityCalls)
	assert.Equal(t, 1, *entityCalls, "entity entries survive login")
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	auth := &fakeAuthGateway{
		loginErr: &domain.ServerError{Status: http.StatusUnauthorized, Message: "Invalid credentials"},
	}
	session, tokens, _ := newSessionFixture(auth)

	err := session.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", session.Err())
	assert.False(t, session.IsLoading())
	assert.False(t, session.IsAuthenticated())

	_, held := tokens.current()
	assert.False(t, held)
}

func TestLoginTransportFailureUsesGenericMessage(t *testing.T) {
	auth := &fakeAuthGateway{loginErr: errors.New("connection refused")}
	session, _, _ := newSessionFixture(auth)

	err := session.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	assert.Equal(t, "Login failed. Please try again.", session.Err())
}

func TestRegisterOpensSessionWithoutInvalidatingLists(t *testing.T) {
	auth := &fakeAuthGateway{
		registerUser:  domain.User{ID: "2", Name: "B"},
		registerToken: "R",
	}
	session, tokens, cache := newSessionFixture(auth)
	listCalls := populate(t, cache, "clients/previous-user")

	require.NoError(t, session.Register(context.Background(), "b@c.com", "secret1", "B"))

	token, held := tokens.current()
	assert.True(t, held)
	assert.Equal(t, "R", token)
	assert.True(t, session.IsAuthenticated())

	readAgain(t, cache, "clients/previous-user", listCalls)
	assert.Equal(t, 1, *listCalls, "register keeps cached lists, matching upstream behavior")
}

func TestRegisterFailureUsesGenericMessage(t *testing.T) {
	auth := &fakeAuthGateway{registerErr: errors.New("connection refused")}
	session, _, _ := newSessionFixture(auth)

	err := session.Register(context.Background(), "b@c.com", "secret1", "B")
	require.Error(t, err)
	assert.Equal(t, "Registration failed. Please try again.", session.Err())
}

func TestLogoutClearsTokenUserAndCache(t *testing.T) {
	auth := &fakeAuthGateway{
		loginUser:  domain.User{ID: "1", Name: "A"},
		loginToken: "T",
	}
	session, tokens, cache := newSessionFixture(auth)
	require.NoError(t, session.Login(context.Background(), "a@b.com", "x"))

	listCalls := populate(t, cache, "clients/1")
	entityCalls := populate(t, cache, "client/42")

	require.NoError(t, session.Logout(context.Background()))

	assert.Empty(t, session.Token())
	assert.False(t, session.IsAuthenticated())

	_, held := tokens.current()
	assert.False(t, held, "persisted token must be gone after logout")

	readAgain(t, cache, "clients/1", listCalls)
	readAgain(t, cache, "client/42", entityCalls)
	assert.Equal(t, 2, *listCalls, "every cached key must refetch after logout")
	assert.Equal(t, 2, *entityCalls, "logout clears the whole cache, not just list keys")
}
