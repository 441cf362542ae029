package application

import (
	"context"
	"fmt"

	"github.com/nuvora-hq/crm-cli/internal/domain"
	"github.com/nuvora-hq/crm-cli/internal/ports"
)

// ClientListKeyPrefix addresses every per-user client-list entry.
const ClientListKeyPrefix = "clients"

func clientListKey(userID domain.UserID) string {
	return fmt.Sprintf("%s/%s", ClientListKeyPrefix, userID)
}

func clientKey(id domain.ClientID) string {
	return fmt.Sprintf("client/%s", id)
}

// Directory is the cached read/write surface over the client
// collection. Reads go through the query cache; mutations hit the API
// directly and invalidate the affected keys:
//
//	create -> client list
//	update -> client list and the entity key
//	delete -> client list
type Directory struct {
	gateway ports.ClientGateway
	cache   ports.QueryCache
	session *Session
}

func NewDirectory(gateway ports.ClientGateway, cache ports.QueryCache, session *Session) *Directory {
	return &Directory{
		gateway: gateway,
		cache:   cache,
		session: session,
	}
}

func (d *Directory) Clients(ctx context.Context) ([]domain.Client, error) {
	value, err := d.cache.Read(ctx, d.listKey(), func(ctx context.Context) (any, error) {
		return d.gateway.ListClients(ctx)
	})
	if err != nil {
		return nil, err
	}

	clients, ok := value.([]domain.Client)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T for client list", value)
	}

	return clients, nil
}

func (d *Directory) Client(ctx context.Context, id domain.ClientID) (domain.Client, error) {
	value, err := d.cache.Read(ctx, clientKey(id), func(ctx context.Context) (any, error) {
		return d.gateway.GetClient(ctx, id)
	})
	if err != nil {
		return domain.Client{}, err
	}

	client, ok := value.(domain.Client)
	if !ok {
		return domain.Client{}, fmt.Errorf("unexpected cached value type %T for client %s", value, id)
	}

	return client, nil
}

func (d *Directory) CreateClient(ctx context.Context, fields domain.ClientFields) (domain.Client, error) {
	client, err := d.gateway.CreateClient(ctx, fields)
	if err != nil {
		return domain.Client{}, err
	}

	d.cache.Invalidate(ClientListKeyPrefix)

	return client, nil
}

func (d *Directory) UpdateClient(ctx context.Context, id domain.ClientID, fields domain.ClientFields) (domain.Client, error) {
	client, err := d.gateway.UpdateClient(ctx, id, fields)
	if err != nil {
		return domain.Client{}, err
	}

	d.cache.Invalidate(ClientListKeyPrefix)
	d.cache.Invalidate(clientKey(id))

	return client, nil
}

func (d *Directory) DeleteClient(ctx context.Context, id domain.ClientID) error {
	if err := d.gateway.DeleteClient(ctx, id); err != nil {
		return err
	}

	d.cache.Invalidate(ClientListKeyPrefix)

	return nil
}

func (d *Directory) TriggerReminders(ctx context.Context) (string, error) {
	return d.gateway.TriggerReminders(ctx)
}

// listKey scopes the client-list entry to the signed-in user so a
// session switch can never serve another user's list from cache.
func (d *Directory) listKey() string {
	user, ok := d.session.User()
	if !ok {
		return clientListKey("")
	}

	return clientListKey(user.ID)
}
