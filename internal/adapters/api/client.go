package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nuvora-hq/crm-cli/internal/domain"
	"github.com/nuvora-hq/crm-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

// TokenSource yields the current bearer token, or "" when no session
// is held. Calls without a token go out unauthenticated and are
// expected to be rejected by the server.
type TokenSource func() string

// Client is the typed HTTP client over the CRM REST API. It attaches
// the authorization header and proxies failures upward unchanged; no
// retries and no local timeouts beyond transport defaults.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     zerolog.Logger
}

var (
	_ ports.AuthGateway   = (*Client)(nil)
	_ ports.ClientGateway = (*Client)(nil)
)

func New(baseURL string, httpClient *http.Client, token TokenSource, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
		logger:     logger,
	}
}

type authPayload struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &payload); err != nil {
		return domain.User{}, "", fmt.Errorf("login: %w", err)
	}

	return payload.User, payload.Token, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, string, error) {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &payload); err != nil {
		return domain.User{}, "", fmt.Errorf("register: %w", err)
	}

	return payload.User, payload.Token, nil
}

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("resolve current user: %w", err)
	}

	return user, nil
}

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &clients); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	return clients, nil
}

func (c *Client) GetClient(ctx context.Context, id domain.ClientID) (domain.Client, error) {
	var client domain.Client
	if err := c.do(ctx, http.MethodGet, clientPath(id), nil, &client); err != nil {
		return domain.Client{}, fmt.Errorf("get client %s: %w", id, err)
	}

	return client, nil
}

func (c *Client) CreateClient(ctx context.Context, fields domain.ClientFields) (domain.Client, error) {
	var client domain.Client
	if err := c.do(ctx, http.MethodPost, "/clients", fields, &client); err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	return client, nil
}

func (c *Client) UpdateClient(ctx context.Context, id domain.ClientID, fields domain.ClientFields) (domain.Client, error) {
	var client domain.Client
	if err := c.do(ctx, http.MethodPut, clientPath(id), fields, &client); err != nil {
		return domain.Client{}, fmt.Errorf("update client %s: %w", id, err)
	}

	return client, nil
}

func (c *Client) DeleteClient(ctx context.Context, id domain.ClientID) error {
	if err := c.do(ctx, http.MethodDelete, clientPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}

	return nil
}

type reminderPayload struct {
	Message string `json:"message"`
}

func (c *Client) TriggerReminders(ctx context.Context) (string, error) {
	var payload reminderPayload
	if err := c.do(ctx, http.MethodPost, "/reminders/trigger", nil, &payload); err != nil {
		return "", fmt.Errorf("trigger reminders: %w", err)
	}

	return payload.Message, nil
}

func clientPath(id domain.ClientID) string {
	return "/clients/" + url.PathEscape(string(id))
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("api request")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		c.logger.Debug().Int("status", response.StatusCode).Str("path", path).Msg("api error response")
		return statusError(response.StatusCode, data)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	return nil
}

func statusError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	return &domain.ServerError{Status: status, Message: payload.Message, Body: strings.TrimSpace(string(body))}
}
